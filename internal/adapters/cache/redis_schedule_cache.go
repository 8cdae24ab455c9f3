package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisScheduleCache is a Redis-backed implementation of the
// ScheduleCache port, keyed by day. Commit handlers invalidate the
// affected day so agendas never serve a stale assignment picture longer
// than the TTL.
type RedisScheduleCache struct {
	client *redis.Client
}

func NewRedisScheduleCache(client *redis.Client) *RedisScheduleCache {
	return &RedisScheduleCache{client: client}
}

func dayKey(date time.Time) string {
	return "schedule:" + date.Format("2006-01-02")
}

// GetDay fetches the cached agenda payload for a day. A miss is
// (nil, false, nil).
func (c *RedisScheduleCache) GetDay(ctx context.Context, date time.Time) ([]byte, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("schedule cache: client is nil")
	}

	raw, err := c.client.Get(ctx, dayKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("schedule cache: get %s: %w", dayKey(date), err)
	}
	return raw, true, nil
}

// PutDay stores the agenda payload for a day with the given TTL.
func (c *RedisScheduleCache) PutDay(ctx context.Context, date time.Time, payload []byte, ttl time.Duration) error {
	if c.client == nil {
		return errors.New("schedule cache: client is nil")
	}

	if err := c.client.Set(ctx, dayKey(date), payload, ttl).Err(); err != nil {
		return fmt.Errorf("schedule cache: set %s: %w", dayKey(date), err)
	}
	return nil
}

// InvalidateDay drops the cached agenda for a day.
func (c *RedisScheduleCache) InvalidateDay(ctx context.Context, date time.Time) error {
	if c.client == nil {
		return errors.New("schedule cache: client is nil")
	}

	if err := c.client.Del(ctx, dayKey(date)).Err(); err != nil {
		return fmt.Errorf("schedule cache: del %s: %w", dayKey(date), err)
	}
	return nil
}
