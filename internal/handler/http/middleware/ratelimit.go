package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit throttles requests per client IP using a fixed Redis window.
// Redis being unreachable must never take the endpoint down with it, so
// any Redis failure lets the request through unthrottled.
func RateLimit(client *redis.Client, prefix string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("ratelimit:%s:%s", prefix, clientIP(r))

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				slog.Warn("Rate limit check failed, letting request through", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				// First hit in this window owns the expiry
				if err := client.Expire(r.Context(), key, window).Err(); err != nil {
					slog.Warn("Failed to set rate limit window", "key", key, "error", err)
				}
			}

			if count > int64(limit) {
				response.TooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
