// Package db provides PostgreSQL persistence for parsing sessions and their
// reconciled shifts.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema is the storage layout for sessions. Shift IDs are session-scoped
// UUIDs; they exist only so the review UI can address individual rows.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	status       TEXT NOT NULL DEFAULT 'processing',
	warnings     TEXT[] NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS session_images (
	session_id  UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	image_index INT NOT NULL,
	transcript  TEXT NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (session_id, image_index)
);

CREATE TABLE IF NOT EXISTS shifts (
	id           UUID PRIMARY KEY,
	session_id   UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	shift_date   TEXT NOT NULL,
	start_time   TEXT NOT NULL,
	end_time     TEXT NOT NULL,
	title        TEXT NOT NULL,
	source_index INT NOT NULL
);

CREATE INDEX IF NOT EXISTS shifts_session_order
	ON shifts (session_id, shift_date, start_time);
`

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
