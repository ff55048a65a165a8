package linkage

import (
	"context"
	"database/sql"
	"fmt"

	"crosslink/internal/profile"
	"crosslink/pkg/requestcontext"
)

// SQLiteStore mirrors PostgresStore for the embedded backend.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, runID string, linkages []Linkage, summaries map[string]profile.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles SET suspicion_score = 0, linkage_count = 0, suspicion_reasons = '[]'`); err != nil {
		return fmt.Errorf("reset summaries: %w", err)
	}
	for id, sum := range summaries {
		if _, err := tx.ExecContext(ctx, `
			UPDATE profiles SET suspicion_score = ?, linkage_count = ?, suspicion_reasons = ?
			WHERE id = ?`,
			sum.SuspicionScore, sum.LinkageCount, string(reasonsJSON(sum.SuspicionReasons)), id); err != nil {
			return fmt.Errorf("write summary %s: %w", id, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM linkages`); err != nil {
		return fmt.Errorf("clear linkages: %w", err)
	}
	now := requestcontext.Now(ctx).Unix()
	for _, l := range linkages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO linkages (source_id, target_id, link_type, strength, evidence, run_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.SourceID, l.TargetID, string(l.Type), l.Strength, l.Evidence, runID, now); err != nil {
			return fmt.Errorf("insert linkage %s-%s: %w", l.SourceID, l.TargetID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]Linkage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, target_id, link_type, strength, evidence
		FROM linkages ORDER BY source_id, target_id, link_type`)
	if err != nil {
		return nil, fmt.Errorf("list linkages: %w", err)
	}
	defer rows.Close()

	var out []Linkage
	for rows.Next() {
		var l Linkage
		var t string
		if err := rows.Scan(&l.SourceID, &l.TargetID, &t, &l.Strength, &l.Evidence); err != nil {
			return nil, fmt.Errorf("scan linkage: %w", err)
		}
		l.Type = Type(t)
		out = append(out, l)
	}
	return out, rows.Err()
}
