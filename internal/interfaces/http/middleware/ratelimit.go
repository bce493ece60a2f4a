package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LimitResult is the outcome of one rate check.
type LimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (LimitResult, error)
	Limit() int
}

// RateLimiter is a token bucket per client kept in process memory. Buckets
// hold limit tokens and refill completely over window.
type RateLimiter struct {
	limit  int
	every  rate.Limit
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter starts a sweeper dropping idle buckets; call Stop to end it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		every:   rate.Every(window / time.Duration(max(limit, 1))),
		window:  window,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) Limit() int { return rl.limit }

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep() {
	t := time.NewTicker(rl.window * 2)
	defer t.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-t.C:
			rl.mu.Lock()
			for key, b := range rl.buckets {
				// an idle bucket is full again, dropping it changes nothing
				if now.Sub(b.lastSeen) > rl.window {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) bucketFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.every, rl.limit)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (LimitResult, error) {
	now := time.Now()
	lim := rl.bucketFor(key, now)
	if lim.AllowN(now, 1) {
		return LimitResult{Allowed: true, Remaining: floorTokens(lim.TokensAt(now))}, nil
	}
	r := lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return LimitResult{RetryAfter: wait}, nil
}

// Remaining reports the whole tokens left for key.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	rl.mu.Unlock()
	if !ok {
		return rl.limit
	}
	return floorTokens(b.lim.Tokens())
}

func floorTokens(t float64) int {
	return max(int(math.Floor(t)), 0)
}

// RedisRateLimiter shares the limit across server instances through Redis
// (GCRA, via redis_rate).
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
	rule    redis_rate.Limit
	prefix  string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		limiter: redis_rate.NewLimiter(client),
		rule:    redis_rate.Limit{Rate: limit, Burst: limit, Period: window},
		prefix:  "sirepre:ratelimit:",
	}
}

func (r *RedisRateLimiter) Limit() int { return r.rule.Rate }

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (LimitResult, error) {
	res, err := r.limiter.Allow(ctx, r.prefix+key, r.rule)
	if err != nil {
		return LimitResult{}, err
	}
	return LimitResult{Allowed: res.Allowed > 0, Remaining: res.Remaining, RetryAfter: res.RetryAfter}, nil
}

// RateLimit limits requests per client IP. A limiter error lets the
// request through.
func RateLimit(limiter Limiter, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	limit := strconv.Itoa(limiter.Limit())
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				"Demasiadas solicitudes. Intente nuevamente más tarde.",
				c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}

var (
	_ Limiter = (*RateLimiter)(nil)
	_ Limiter = (*RedisRateLimiter)(nil)
)
