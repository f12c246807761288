package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS onesheet_generations (
	id             UUID PRIMARY KEY,
	kind           TEXT NOT NULL,
	owner_uuid     UUID,
	request_values JSONB NOT NULL DEFAULT '{}'::jsonb,
	raw_completion TEXT NOT NULL,
	model          TEXT NOT NULL DEFAULT '',
	record_count   INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS onesheet_generations_owner_idx
	ON onesheet_generations (owner_uuid, created_at DESC);

CREATE TABLE IF NOT EXISTS onesheet_records (
	id            UUID PRIMARY KEY,
	generation_id UUID NOT NULL REFERENCES onesheet_generations (id) ON DELETE CASCADE,
	kind          TEXT NOT NULL,
	position      INTEGER NOT NULL,
	payload       JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS onesheet_records_generation_idx
	ON onesheet_records (generation_id, position);
`

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
