package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// RateLimitWindow is the fixed counting window per client IP.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests per window.
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for per-IP counters.
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for temporarily blocked IPs.
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked after exceeding the
	// window limit.
	BlockedIPDuration = 1 * time.Hour
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. When Redis is
// unavailable requests are allowed through (fail open).
func RateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ctx := r.Context()

			blocked, err := rdb.Exists(ctx, BlockedIPKeyPrefix+ip).Result()
			if err == nil && blocked > 0 {
				tooManyRequests(w)
				return
			}

			key := RateLimitKeyPrefix + ip
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, RateLimitWindow)
			}

			if count > RateLimitMaxRequests {
				rdb.Set(ctx, BlockedIPKeyPrefix+ip, fmt.Sprintf("exceeded %d requests in window", RateLimitMaxRequests), BlockedIPDuration)
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"error":"Too many requests. Please try again later."}`))
}

// clientIP returns the client address from r.RemoteAddr only (no proxy
// headers; traffic reaches the app directly).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
