package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/response"
)

// tokenBucket refills fractionally so rates below one token per second work.
//
//	KEYS[1] = bucket key
//	ARGV[1] = burst (max tokens)
//	ARGV[2] = refill rate (tokens per second)
//	ARGV[3] = now (ms)
//
// Returns {allowed, wait_ms}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local burst = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local bucket = redis.call('HMGET', key, 'tokens', 'last')
local tokens = tonumber(bucket[1]) or burst
local last = tonumber(bucket[2]) or now
local elapsed = math.max(0, now - last) / 1000
tokens = math.min(burst, tokens + elapsed * rate)
local allowed = 0
local wait = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) / rate * 1000)
end
redis.call('HSET', key, 'tokens', tostring(tokens), 'last', ARGV[3])
redis.call('EXPIRE', key, math.ceil(burst / rate) + 1)
return {allowed, wait}
`)

// RateLimiter is a Redis-backed token bucket, so the limit holds across every
// API instance.
type RateLimiter struct {
	rdb     redis.UniversalClient
	name    string
	rate    float64
	burst   int
	keyFunc func(c *gin.Context) string
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing burst requests at once and
// ratePerSec sustained.
func NewRateLimiter(
	rdb redis.UniversalClient,
	name string,
	ratePerSec float64,
	burst int,
	keyFunc func(c *gin.Context) string,
	m *metrics.Metrics,
	log zerolog.Logger,
) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rdb:     rdb,
		name:    name,
		rate:    ratePerSec,
		burst:   burst,
		keyFunc: keyFunc,
		metrics: m,
		log:     log.With().Str("component", "rate_limiter").Str("limiter", name).Logger(),
		now:     time.Now,
	}
}

// LoginKey buckets login attempts by client IP.
func LoginKey(c *gin.Context) string {
	return config.CacheKey.LoginRateLimitKey(c.ClientIP())
}

// Middleware returns a Gin middleware enforcing the limit. Redis failures let
// the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFunc(c)

		allowed, wait, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			rl.log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !allowed {
			rl.metrics.ObserveRateLimited(rl.name)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

// Allow takes one token from key's bucket. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := rl.now().UnixMilli()
	res, err := tokenBucket.Run(ctx, rl.rdb, []string{key}, rl.burst, rl.rate, now).Result()
	if err != nil {
		return false, 0, err
	}

	vals, ok := res.([]any)
	if !ok || len(vals) != 2 {
		return false, 0, fmt.Errorf("unexpected token bucket reply %v", res)
	}
	allowed, _ := vals[0].(int64)
	waitMs, _ := vals[1].(int64)

	return allowed == 1, time.Duration(waitMs) * time.Millisecond, nil
}
