package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window per-client limiter backed by Redis counters.
type RateLimiter struct {
	rdb     *redis.Client
	maxReqs int
	window  time.Duration
	log     *zap.Logger
}

func NewRateLimiter(rdb *redis.Client, config utils.RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:     rdb,
		maxReqs: config.Requests,
		window:  config.Window,
		log:     log.With(zap.String("middleware", "ratelimit")),
	}
}

// Handler passes every request through when no Redis client is configured.
// Redis errors fail open.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl == nil || rl.rdb == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := fmt.Sprintf("ratelimit:%s", clientIP(r))

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			rl.log.Warn("Rate limit counter unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}

		ttl, err := rl.rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = rl.window
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(rl.maxReqs)-count), 10))
		h.Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if count > int64(rl.maxReqs) {
			h.Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			utils.ResponseTooManyRequests(w, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
