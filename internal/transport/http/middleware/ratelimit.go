package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gatelink/gatelink/internal/constants"
	"github.com/gatelink/gatelink/pkg/httputils"
	"github.com/redis/go-redis/v9"
)

// RedisFixedWindowLimiter enforces a simple counter per caller per fixed
// time window, backed by Redis INCR with an expiry on first hit.
type RedisFixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisFixedWindowLimiter(client *redis.Client, limitPerMinute int) *RedisFixedWindowLimiter {
	if limitPerMinute <= 0 {
		limitPerMinute = 60
	}
	return &RedisFixedWindowLimiter{
		client: client,
		limit:  int64(limitPerMinute),
		window: time.Minute,
		now:    time.Now,
	}
}

// Incr bumps the counter for key in the current window and returns the
// new count.
func (l *RedisFixedWindowLimiter) Incr(ctx context.Context, key string) (int64, error) {
	windowStart := l.now().UTC().Truncate(l.window)
	redisKey := "ratelimit:" + key + ":" + windowStart.Format("200601021504")

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window+10*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func RateLimitMiddleware(limiter *RedisFixedWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)
			ctx, cancel := context.WithTimeout(r.Context(), 200*time.Millisecond)
			defer cancel()

			count, err := limiter.Incr(ctx, key)
			if err != nil {
				// Fail open: do not block admin writes if Redis is
				// temporarily unavailable.
				next.ServeHTTP(w, r)
				return
			}
			if count > limiter.limit {
				httputils.WriteAPIError(w, r, constants.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if adminKey := strings.TrimSpace(r.Header.Get(AdminKeyHeader)); adminKey != "" {
		return "admin_key:" + adminKey
	}

	// Fallback: use client IP (best-effort).
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return "ip:" + host
	}
	return "ip:unknown"
}
