package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CooldownRepo keeps one key per submitter holding the unix timestamp of
// their last accepted submission. Keys carry no TTL: the cooldown window is
// computed by the limiter against the configured duration, and the entry set
// stays bounded by the set of distinct submitters.
type CooldownRepo struct {
	client *goredis.Client
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewCooldownRepo(client *goredis.Client) *CooldownRepo {
	return &CooldownRepo{client: client}
}

func (r *CooldownRepo) LastAccepted(ctx context.Context, userID int64) (time.Time, bool, error) {
	if r.client == nil {
		return time.Time{}, false, fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return time.Time{}, false, fmt.Errorf("invalid user id")
	}

	raw, err := r.client.Get(ctx, cooldownKey(userID)).Result()
	if err == goredis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get cooldown stamp: %w", err)
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse cooldown stamp %q: %w", raw, err)
	}

	return time.Unix(unix, 0), true, nil
}

func (r *CooldownRepo) Stamp(ctx context.Context, userID int64, at time.Time) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if err := r.client.Set(ctx, cooldownKey(userID), strconv.FormatInt(at.Unix(), 10), 0).Err(); err != nil {
		return fmt.Errorf("set cooldown stamp: %w", err)
	}
	return nil
}

func cooldownKey(userID int64) string {
	return "cooldown:last:" + strconv.FormatInt(userID, 10)
}
