package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/config"
)

// Postgres only holds finished interview archives: one upsert per completed
// interview plus the occasional readback. The pool defaults stay small and
// idle connections are reclaimed quickly.
const (
	defaultMaxConns    = 8
	defaultMinConns    = 1
	defaultIdleTimeout = 5 * time.Minute
)

// DB wraps the archive connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB opens the archive pool and verifies connectivity before returning.
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = defaultMaxConns
	}
	poolConfig.MinConns = cfg.MinConns
	if poolConfig.MinConns <= 0 {
		poolConfig.MinConns = defaultMinConns
	}
	poolConfig.MaxConnIdleTime = defaultIdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the archive pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping verifies archive connectivity. Used by the readiness endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
