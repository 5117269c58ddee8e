package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/utils"
)

// RateLimitMessage is returned with every 429.
const RateLimitMessage = "Too many requests from this IP, please try again later."

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	// Hit records one request for key and returns the count in the current
	// window and the time until the window resets.
	Hit(ctx context.Context, key string) (count int64, reset time.Duration, err error)
}

// RedisLimiter keeps the window counters in Redis so several instances share
// them.
type RedisLimiter struct {
	redis  *redis.Client
	window time.Duration
	prefix string
}

// NewRedisLimiter returns a Limiter backed by client.
func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{redis: client, window: window, prefix: "ratelimit"}
}

func (l *RedisLimiter) Hit(ctx context.Context, key string) (int64, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.window).Err(); err != nil {
			return count, l.window, err
		}
		return count, l.window, nil
	}

	ttl, err := l.redis.TTL(ctx, k).Result()
	if err != nil {
		return count, l.window, err
	}
	if ttl < 0 {
		// Expire was lost; start a fresh window.
		l.redis.Expire(ctx, k, l.window)
		ttl = l.window
	}
	return count, ttl, nil
}

type bucket struct {
	count int64
	start time.Time
}

// MemoryLimiter keeps the window counters in process.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryLimiter returns an in-process Limiter.
func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{window: window, buckets: map[string]*bucket{}, now: time.Now}
}

func (l *MemoryLimiter) Hit(_ context.Context, key string) (int64, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > 10000 {
		for k, b := range l.buckets {
			if now.Sub(b.start) >= l.window {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}
	b.count++
	return b.count, l.window - now.Sub(b.start), nil
}

// RateLimit rejects clients that exceed max requests per window with a 429.
// Limiter failures let the request through. X-Forwarded-For is only used to
// key clients when trustProxy is set.
func RateLimit(l Limiter, max int, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, reset, err := l.Hit(r.Context(), ClientIP(r, trustProxy))
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(max) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("RateLimit-Reset", strconv.Itoa(int(reset.Round(time.Second).Seconds())))

			if count > int64(max) {
				w.Header().Set("Retry-After", strconv.Itoa(int(reset.Round(time.Second).Seconds())))
				utils.WriteJSONResponse(w, http.StatusTooManyRequests, dto.ErrorResponse{Message: RateLimitMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the socket address of the caller. Behind a trusted proxy
// the first X-Forwarded-For hop wins instead; anywhere else the header is
// client controlled and ignored.
func ClientIP(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
