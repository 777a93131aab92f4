package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
)

const settingsRowID = 1

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// EnsureDefaults seeds the singleton row on first start and leaves any
// runtime-modified values alone afterwards.
func (r *SettingsRepo) EnsureDefaults(ctx context.Context, defaults model.Settings) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO settings (id, channel_chat_id, cooldown_seconds)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING
`, settingsRowID, defaults.ChannelChatID, defaults.CooldownSeconds); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return nil
}

func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	if r.pool == nil {
		return model.Settings{}, fmt.Errorf("postgres pool is nil")
	}

	var settings model.Settings
	err := r.pool.QueryRow(ctx, `
SELECT channel_chat_id, cooldown_seconds
FROM settings
WHERE id = $1
`, settingsRowID).Scan(&settings.ChannelChatID, &settings.CooldownSeconds)
	if err != nil {
		return model.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	return settings, nil
}

func (r *SettingsRepo) SetChannelChatID(ctx context.Context, chatID int64) error {
	return r.update(ctx, `UPDATE settings SET channel_chat_id = $2 WHERE id = $1`, chatID)
}

func (r *SettingsRepo) SetCooldownSeconds(ctx context.Context, seconds int64) error {
	if seconds < 0 {
		return fmt.Errorf("cooldown seconds must be non-negative")
	}
	return r.update(ctx, `UPDATE settings SET cooldown_seconds = $2 WHERE id = $1`, seconds)
}

func (r *SettingsRepo) update(ctx context.Context, query string, value int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, query, settingsRowID, value); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
