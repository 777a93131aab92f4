package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
)

// Store persists the last-accepted stamp per submitter.
type Store interface {
	LastAccepted(ctx context.Context, userID int64) (time.Time, bool, error)
	Stamp(ctx context.Context, userID int64, at time.Time) error
}

// SettingsSource yields the current runtime settings. The limiter reads the
// cooldown duration on every check, so an admin change takes effect for the
// very next submission.
type SettingsSource interface {
	Get(ctx context.Context) (model.Settings, error)
}

type CooldownError struct {
	Remaining int64
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %d seconds remaining", e.Remaining)
}

type Limiter struct {
	store    Store
	settings SettingsSource
}

func NewLimiter(store Store, settings SettingsSource) *Limiter {
	return &Limiter{store: store, settings: settings}
}

// CheckAndRecord allows the submission and stamps `now`, or returns a
// *CooldownError with the remaining seconds and leaves the stamp untouched.
// Privilege exemption is the caller's concern; every id passed here is rated.
func (l *Limiter) CheckAndRecord(ctx context.Context, userID int64, now time.Time) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	if l.store == nil || l.settings == nil {
		return fmt.Errorf("cooldown limiter dependencies are not configured")
	}

	settings, err := l.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("read cooldown settings: %w", err)
	}

	window := time.Duration(settings.CooldownSeconds) * time.Second
	if window > 0 {
		last, found, err := l.store.LastAccepted(ctx, userID)
		if err != nil {
			return err
		}
		if found {
			elapsed := now.Sub(last)
			if elapsed < window {
				return &CooldownError{Remaining: ceilSeconds(window - elapsed)}
			}
		}
	}

	if err := l.store.Stamp(ctx, userID, now); err != nil {
		return err
	}
	return nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
