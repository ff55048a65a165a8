// Package sqlite opens the embedded single-file database used when the
// service runs without a PostgreSQL instance.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    document          TEXT NOT NULL,
    suspicion_score   INTEGER NOT NULL DEFAULT 0,
    linkage_count     INTEGER NOT NULL DEFAULT 0,
    suspicion_reasons TEXT NOT NULL DEFAULT '[]',
    created_at        INTEGER NOT NULL,
    updated_at        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS linkages (
    source_id  TEXT NOT NULL,
    target_id  TEXT NOT NULL,
    link_type  TEXT NOT NULL,
    strength   INTEGER NOT NULL,
    evidence   TEXT NOT NULL,
    run_id     TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (source_id, target_id, link_type)
);

CREATE INDEX IF NOT EXISTS idx_linkages_source ON linkages (source_id);
CREATE INDEX IF NOT EXISTS idx_linkages_target ON linkages (target_id);
`

// Open creates or opens the database file and ensures the schema exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer; the scan commit is the only heavy write path.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}
