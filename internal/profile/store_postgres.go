package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"crosslink/pkg/requestcontext"
)

// PostgresStore persists profiles in PostgreSQL. The raw record is kept as a
// JSONB document so tolerant ingestion survives round trips; the derived
// suspicion fields live in columns for indexed queries.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	now := requestcontext.Now(ctx)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, document, suspicion_score, linkage_count, suspicion_reasons, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.Name, doc, p.SuspicionScore, p.LinkageCount, mustJSON(p.SuspicionReasons), now)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT document, suspicion_score, linkage_count, suspicion_reasons
		FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]Profile, error) {
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

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		doc     []byte
		score   int
		count   int
		reasons []byte
	)
	if err := row.Scan(&doc, &score, &count, &reasons); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("scan profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile document: %w", err)
	}
	p.SuspicionScore = score
	p.LinkageCount = count
	if len(reasons) > 0 {
		_ = json.Unmarshal(reasons, &p.SuspicionReasons)
	}
	return p, nil
}

func mustJSON(v []string) []byte {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}
