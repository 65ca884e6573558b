package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores each collection as a single jsonb document row.
// The whole-document contract keeps the engine's read-modify-write cycle
// identical across backends.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(ctx context.Context, url string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	b := &PostgresBackend{pool: pool}
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create collections table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, collection string) ([]byte, bool, error) {
	var doc []byte
	err := b.pool.QueryRow(ctx,
		`SELECT doc FROM collections WHERE name = $1`, collection).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load collection %s: %w", collection, err)
	}
	return doc, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, collection string, doc []byte) error {
	_, err := b.pool.Exec(ctx, `
		INSERT INTO collections (name, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`, collection, doc)
	if err != nil {
		return fmt.Errorf("save collection %s: %w", collection, err)
	}
	return nil
}

func (b *PostgresBackend) Close() {
	b.pool.Close()
}
