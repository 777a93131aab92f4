package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables on first start. The schema is small and
// append-only, so idempotent CREATE IF NOT EXISTS statements stand in for a
// migration tool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
	id BIGSERIAL PRIMARY KEY,
	author_id BIGINT NOT NULL,
	body TEXT NOT NULL,
	photo_id TEXT,
	video_id TEXT,
	status TEXT NOT NULL DEFAULT 'PENDING',
	rejection_reason TEXT,
	accept_comment TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	decided_at TIMESTAMPTZ,
	decided_by BIGINT
)`,
		`CREATE TABLE IF NOT EXISTS bot_users (
	tg_id BIGINT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	username TEXT NOT NULL DEFAULT '',
	first_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_seen_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS moderators (
	tg_id BIGINT PRIMARY KEY,
	added_by BIGINT NOT NULL DEFAULT 0,
	added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS admins (
	tg_id BIGINT PRIMARY KEY,
	added_by BIGINT NOT NULL DEFAULT 0,
	added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
		`CREATE TABLE IF NOT EXISTS settings (
	id SMALLINT PRIMARY KEY,
	channel_chat_id BIGINT NOT NULL,
	cooldown_seconds BIGINT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS bans (
	tg_id BIGINT PRIMARY KEY,
	reason TEXT NOT NULL DEFAULT '',
	banned_by BIGINT NOT NULL DEFAULT 0,
	banned_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
