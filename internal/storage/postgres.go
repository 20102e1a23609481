package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS client_storage (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	loadQuery   = `SELECT value FROM client_storage WHERE key = $1`
	upsertQuery = `INSERT INTO client_storage (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Postgres stores values in the client_storage table, one row per key.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the client_storage table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create client_storage table: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, loadQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres storage load %q: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Save(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.ExecContext(ctx, upsertQuery, key, value); err != nil {
		return fmt.Errorf("postgres storage save %q: %w", key, err)
	}
	return nil
}
