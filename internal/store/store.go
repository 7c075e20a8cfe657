// Package store persists knowledge-base entries in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("entry not found")

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
CREATE TABLE IF NOT EXISTS qa_items (
	id         uuid PRIMARY KEY,
	category   text NOT NULL,
	question   text NOT NULL,
	answer     text NOT NULL,
	keywords   text NOT NULL DEFAULT '',
	priority   smallint NOT NULL DEFAULT 2,
	is_active  boolean NOT NULL DEFAULT true,
	source     text NOT NULL,
	account    text NOT NULL,
	origin     text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (question, account)
);
CREATE INDEX IF NOT EXISTS qa_items_category_idx ON qa_items (category);`

// Migrate creates the qa_items table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
