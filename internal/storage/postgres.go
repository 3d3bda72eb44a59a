package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/airgo3d/panorama-api/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultDBTimeout = 5 * time.Second

// NewPostgresPool connects to PostgreSQL using pgx.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultDBTimeout)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

const panoramasDDL = `
CREATE TABLE IF NOT EXISTS panoramas (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    filename      TEXT NOT NULL UNIQUE,
    original_name TEXT NOT NULL,
    size_bytes    BIGINT NOT NULL,
    mime_type     TEXT NOT NULL,
    preview_url   TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL,
    is_bookmarked BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS panoramas_created_at_idx ON panoramas (created_at DESC);
CREATE INDEX IF NOT EXISTS panoramas_is_bookmarked_idx ON panoramas (is_bookmarked);
`

// EnsureSchema creates the panoramas table and indexes if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultDBTimeout)
	defer cancel()

	if _, err := pool.Exec(ctx, panoramasDDL); err != nil {
		return fmt.Errorf("ensure panoramas schema: %w", err)
	}
	return nil
}
