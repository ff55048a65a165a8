package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crosslink/pkg/requestcontext"
)

// SQLiteStore persists profiles in the embedded database. Mirrors the
// PostgreSQL store with sqlite placeholder syntax and unix timestamps.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, p Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	now := requestcontext.Now(ctx).Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, document, suspicion_score, linkage_count, suspicion_reasons, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, string(doc), p.SuspicionScore, p.LinkageCount, string(mustJSON(p.SuspicionReasons)), now, now)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT document, suspicion_score, linkage_count, suspicion_reasons
		FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (s *SQLiteStore) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document, suspicion_score, linkage_count, suspicion_reasons
		FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
