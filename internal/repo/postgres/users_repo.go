package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Upsert(ctx context.Context, user model.BotUser) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if user.TgID <= 0 {
		return fmt.Errorf("invalid user tg id")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO bot_users (tg_id, first_name, username, first_seen_at, last_seen_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (tg_id) DO UPDATE
SET first_name = EXCLUDED.first_name,
	username = EXCLUDED.username,
	last_seen_at = NOW()
`, user.TgID, user.FirstName, user.Username); err != nil {
		return fmt.Errorf("upsert bot user: %w", err)
	}

	return nil
}

// ListIDs returns every known user chat id, the broadcast audience.
func (r *UsersRepo) ListIDs(ctx context.Context) ([]int64, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `SELECT tg_id FROM bot_users ORDER BY tg_id`)
	if err != nil {
		return nil, fmt.Errorf("list bot users: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan bot user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bot users: %w", err)
	}

	return ids, nil
}
