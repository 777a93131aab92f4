package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BansRepo records ban decisions taken from the review screen. Nothing in
// submission intake consults this table yet; the enforcement check was never
// wired in the original workflow either.
type BansRepo struct {
	pool *pgxpool.Pool
}

func NewBansRepo(pool *pgxpool.Pool) *BansRepo {
	return &BansRepo{pool: pool}
}

func (r *BansRepo) Ban(ctx context.Context, tgID int64, reason string, bannedBy int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if tgID <= 0 {
		return fmt.Errorf("invalid ban tg id")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO bans (tg_id, reason, banned_by, banned_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (tg_id) DO UPDATE
SET reason = EXCLUDED.reason,
	banned_by = EXCLUDED.banned_by,
	banned_at = NOW()
`, tgID, reason, bannedBy); err != nil {
		return fmt.Errorf("insert ban: %w", err)
	}

	return nil
}
