package security

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a redis fixed-window request limiter keyed by user id when
// authenticated, falling back to client IP. Redis outages fail open: rate
// limiting is protection, not a dependency.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  perMinute,
		window: time.Minute,
	}
}

// Limit is a route middleware for the booking endpoints.
func (r *RateLimiter) Limit(e *core.RequestEvent) error {
	identity := e.RealIP()
	if e.Auth != nil {
		identity = "user:" + e.Auth.Id
	}

	ok, err := r.allow(e.Request.Context(), identity)
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "error", err)
		return e.Next()
	}
	if !ok {
		return apis.NewApiError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
	}

	return e.Next()
}

func (r *RateLimiter) allow(ctx context.Context, identity string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", identity)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.redis.Expire(ctx, key, r.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
