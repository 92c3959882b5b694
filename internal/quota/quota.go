// Package quota enforces the per-user daily generation limit with Redis.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tripplanner:gen"

// counterTTL outlives the UTC day the key is named after, so a counter never
// expires while its day is still current.
const counterTTL = 24 * time.Hour

// Limiter counts generation attempts per user per UTC day.
type Limiter struct {
	rdb   redis.Cmdable
	limit int64
	now   func() time.Time
}

// NewLimiter returns a Limiter allowing limit attempts per user per UTC day.
func NewLimiter(rdb redis.Cmdable, limit int) *Limiter {
	return &Limiter{rdb: rdb, limit: int64(limit), now: time.Now}
}

// Allow records one attempt for userID and reports whether it is within the
// limit. Attempts over the limit are still counted.
func (l *Limiter) Allow(ctx context.Context, userID uuid.UUID) (bool, error) {
	key := Key(userID, l.now())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("quota.Limiter.Allow: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// Used returns how many attempts userID made today without recording one.
func (l *Limiter) Used(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := l.rdb.Get(ctx, Key(userID, l.now())).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota.Limiter.Used: %w", err)
	}
	return n, nil
}

// Key is the counter key for userID on the UTC day containing t.
func Key(userID uuid.UUID, t time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, t.UTC().Format(time.DateOnly))
}

// StartOfDay returns midnight UTC of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
