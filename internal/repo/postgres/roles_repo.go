package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RolesRepo struct {
	pool *pgxpool.Pool
}

func NewRolesRepo(pool *pgxpool.Pool) *RolesRepo {
	return &RolesRepo{pool: pool}
}

func (r *RolesRepo) ListModerators(ctx context.Context) ([]int64, error) {
	return r.listIDs(ctx, `SELECT tg_id FROM moderators ORDER BY tg_id`)
}

func (r *RolesRepo) ListAdmins(ctx context.Context) ([]int64, error) {
	return r.listIDs(ctx, `SELECT tg_id FROM admins ORDER BY tg_id`)
}

func (r *RolesRepo) AddModerator(ctx context.Context, tgID, addedBy int64) error {
	return r.insert(ctx, `
INSERT INTO moderators (tg_id, added_by, added_at)
VALUES ($1, $2, NOW())
ON CONFLICT (tg_id) DO NOTHING
`, tgID, addedBy)
}

func (r *RolesRepo) AddAdmin(ctx context.Context, tgID, addedBy int64) error {
	return r.insert(ctx, `
INSERT INTO admins (tg_id, added_by, added_at)
VALUES ($1, $2, NOW())
ON CONFLICT (tg_id) DO NOTHING
`, tgID, addedBy)
}

func (r *RolesRepo) listIDs(ctx context.Context, query string) ([]int64, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list role ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan role id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate role ids: %w", err)
	}

	return ids, nil
}

func (r *RolesRepo) insert(ctx context.Context, query string, tgID, addedBy int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if tgID <= 0 {
		return fmt.Errorf("invalid role tg id")
	}

	if _, err := r.pool.Exec(ctx, query, tgID, addedBy); err != nil {
		return fmt.Errorf("insert role id: %w", err)
	}
	return nil
}
