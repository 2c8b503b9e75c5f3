// Package repository provides the PostgreSQL-backed card and pack source.
package repository

import (
	"context"
	"fmt"

	"github.com/dtdb/deckcheck/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Schema creates the tables read by CardRepository.
const Schema = `
CREATE TABLE IF NOT EXISTS packs (
	code         TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	available    DATE,
	date_release DATE
);

CREATE TABLE IF NOT EXISTS cards (
	code        TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL DEFAULT '',
	type_code   TEXT NOT NULL,
	faction     TEXT NOT NULL DEFAULT '',
	traits      TEXT[] NOT NULL DEFAULT '{}',
	keywords    TEXT NOT NULL DEFAULT '',
	text        TEXT NOT NULL DEFAULT '',
	loyal       BOOLEAN NOT NULL DEFAULT FALSE,
	cost        INTEGER NOT NULL DEFAULT 0,
	value       INTEGER NOT NULL DEFAULT 0,
	deck_limit  INTEGER NOT NULL DEFAULT 0,
	pack_code   TEXT NOT NULL REFERENCES packs(code)
);
`

// NewDB opens a connection pool and verifies connectivity.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is not configured")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)

	return pool, nil
}

// EnsureSchema creates the card tables when they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
