package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key fits in its budget.
// retryAfter is meaningful only when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// ── In-memory token buckets ───────────────────────────────────────────────────

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewMemoryLimiter allows perMinute requests per key, refilled evenly.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now
	m.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// Purge drops buckets idle for longer than maxIdle and returns how many.
func (m *MemoryLimiter) Purge(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for key, b := range m.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(m.buckets, key)
			purged++
		}
	}
	return purged
}

const purgeInterval = 5 * time.Minute

// Run purges idle buckets until ctx is done.
func (m *MemoryLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Purge(purgeInterval); n > 0 {
				log.Debug().Int("purged", n).Msg("rate limiter buckets purged")
			}
		}
	}
}

// ── Redis fixed window ────────────────────────────────────────────────────────

// RedisLimiter counts requests per key in a fixed window shared by every
// instance. Redis calls go through a circuit breaker; while it is open, or
// when a call fails, the decision is delegated to the fallback limiter.
type RedisLimiter struct {
	rdb      redis.Cmdable
	breaker  *infra.CircuitBreaker
	fallback Limiter
	limit    int64
	window   time.Duration
	now      func() time.Time
}

func NewRedisLimiter(rdb redis.Cmdable, breaker *infra.CircuitBreaker, fallback Limiter, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		rdb:      rdb,
		breaker:  breaker,
		fallback: fallback,
		limit:    int64(perMinute),
		window:   time.Minute,
		now:      time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, slot)

	var count int64
	err := l.breaker.Execute(func() error {
		var incr *redis.IntCmd
		_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, redisKey)
			pipe.Expire(ctx, redisKey, l.window)
			return nil
		})
		if err != nil {
			return err
		}
		count = incr.Val()
		return nil
	})
	if err != nil {
		if !errors.Is(err, infra.ErrCircuitOpen) {
			log.Warn().Err(err).Msg("redis rate limiter unavailable, using memory fallback")
		}
		return l.fallback.Allow(ctx, key)
	}

	if count > l.limit {
		windowEnd := time.Unix(0, (slot+1)*int64(l.window))
		return false, windowEnd.Sub(now), nil
	}
	return true, 0, nil
}

// ── Middleware ────────────────────────────────────────────────────────────────

// RateLimit rejects requests over the per-client budget with a 429 envelope.
// Limiter errors let the request through.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("rate limiter failed")
			c.Next()
			return
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Envelope{
				Success: false,
				Status:  http.StatusTooManyRequests,
				Message: "Too many requests. Try again later.",
				Details: nil,
			})
			return
		}
		c.Next()
	}
}
