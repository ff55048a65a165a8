package linkage

import (
	"context"
	"sync"

	"crosslink/internal/profile"
)

// Store persists scan output so the snapshot can be rebuilt after a restart.
// ReplaceAll is the scan commit: it swaps the whole linkage generation and the
// derived profile summaries in one logical write, so either the whole scan
// lands or none of it does. Linkages from earlier runs are discarded because
// edits and deletes can invalidate their evidence.
type Store interface {
	ReplaceAll(ctx context.Context, runID string, linkages []Linkage, summaries map[string]profile.Summary) error
	ListAll(ctx context.Context) ([]Linkage, error)
}

// InMemoryStore keeps the last committed generation in memory, writing the
// derived summaries through to the in-memory profile store. Both writes are
// plain map updates that cannot fail, so the commit stays all-or-nothing.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles *profile.InMemoryStore
	runID    string
	linkages []Linkage
}

func NewInMemoryStore(profiles *profile.InMemoryStore) *InMemoryStore {
	return &InMemoryStore{profiles: profiles}
}

func (s *InMemoryStore) ReplaceAll(ctx context.Context, runID string, linkages []Linkage, summaries map[string]profile.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.profiles.ReplaceSummaries(ctx, summaries); err != nil {
		return err
	}
	s.runID = runID
	s.linkages = append([]Linkage(nil), linkages...)
	return nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]Linkage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Linkage(nil), s.linkages...), nil
}
