package profile

import (
	"context"

	dErrors "crosslink/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "profile not found")

// Store is interface-driven so the engine and handlers can run against
// in-memory, SQLite, or PostgreSQL persistence without rewiring. The derived
// suspicion fields are written by the linkage store as part of the scan
// commit, never through this interface.
type Store interface {
	Save(ctx context.Context, p Profile) error
	Get(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Delete(ctx context.Context, id string) error
}
