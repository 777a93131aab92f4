package cooldown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/model"
	redrepo "github.com/KamalidenovRustem/KursivMedia/internal/repo/redis"
)

type fakeSettings struct {
	cooldownSeconds int64
}

func (f *fakeSettings) Get(ctx context.Context) (model.Settings, error) {
	return model.Settings{CooldownSeconds: f.cooldownSeconds}, nil
}

func TestLimiterBlocksWithinWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewCooldownRepo(client), &fakeSettings{cooldownSeconds: 60})
	ctx := context.Background()
	userID := int64(42)
	base := time.Unix(1700000000, 0)

	if err := limiter.CheckAndRecord(ctx, userID, base); err != nil {
		t.Fatalf("first attempt: %v", err)
	}

	err := limiter.CheckAndRecord(ctx, userID, base.Add(10*time.Second))
	var cdErr *CooldownError
	if !errors.As(err, &cdErr) {
		t.Fatalf("expected CooldownError, got %v", err)
	}
	if cdErr.Remaining != 50 {
		t.Fatalf("unexpected remaining: got %d want 50", cdErr.Remaining)
	}
}

func TestLimiterDeniedAttemptKeepsStamp(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewCooldownRepo(client), &fakeSettings{cooldownSeconds: 60})
	ctx := context.Background()
	userID := int64(7)
	base := time.Unix(1700000000, 0)

	if err := limiter.CheckAndRecord(ctx, userID, base); err != nil {
		t.Fatalf("first attempt: %v", err)
	}

	// Denied attempts must not extend the window.
	if err := limiter.CheckAndRecord(ctx, userID, base.Add(30*time.Second)); err == nil {
		t.Fatalf("expected denial at 30s")
	}
	if err := limiter.CheckAndRecord(ctx, userID, base.Add(61*time.Second)); err != nil {
		t.Fatalf("expected allow after full window from first stamp: %v", err)
	}
}

func TestLimiterReadsSettingsEachCheck(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	settings := &fakeSettings{cooldownSeconds: 60}
	limiter := NewLimiter(redrepo.NewCooldownRepo(client), settings)
	ctx := context.Background()
	userID := int64(9)
	base := time.Unix(1700000000, 0)

	if err := limiter.CheckAndRecord(ctx, userID, base); err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if err := limiter.CheckAndRecord(ctx, userID, base.Add(10*time.Second)); err == nil {
		t.Fatalf("expected denial under 60s window")
	}

	// Shrinking the window takes effect on the very next check.
	settings.cooldownSeconds = 5
	if err := limiter.CheckAndRecord(ctx, userID, base.Add(10*time.Second)); err != nil {
		t.Fatalf("expected allow under shrunk window: %v", err)
	}
}

func TestLimiterZeroWindowDisablesCooldown(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewCooldownRepo(client), &fakeSettings{cooldownSeconds: 0})
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	for i := 0; i < 3; i++ {
		if err := limiter.CheckAndRecord(ctx, 11, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("attempt #%d with zero window: %v", i+1, err)
		}
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
