package middleware

import (
  "fmt"
  "net/http"
  "strconv"
  "sync"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/redis/go-redis/v9"
  "github.com/centenniallife/wellness-backend/internal/logger"
)

type rateBucket struct {
  count     int
  resetAt   time.Time
}

// RateLimiter applies a fixed window per client IP. With a Redis client the
// counters are shared across instances; without one they live in memory and a
// background sweep clears expired windows. Redis failures fail open.
type RateLimiter struct {
  log        *logger.Logger
  limit      int
  window     time.Duration
  rdb        *redis.Client

  mu         sync.Mutex
  buckets    map[string]*rateBucket

  stop       chan struct{}
  stopOnce   sync.Once
}

func NewRateLimiter(log *logger.Logger, limit int, window time.Duration, rdb *redis.Client) *RateLimiter {
  if limit <= 0 {
    limit = 100
  }
  if window <= 0 {
    window = time.Minute
  }
  rl := &RateLimiter{
    log:     log.With("Middleware", "RateLimiter"),
    limit:   limit,
    window:  window,
    rdb:     rdb,
    buckets: make(map[string]*rateBucket),
    stop:    make(chan struct{}),
  }
  if rdb == nil {
    go rl.sweep()
  }
  return rl
}

// Stop ends the background sweep. Idempotent.
func (rl *RateLimiter) Stop() {
  rl.stopOnce.Do(func() {
    close(rl.stop)
  })
}

func (rl *RateLimiter) sweep() {
  ticker := time.NewTicker(rl.window)
  defer ticker.Stop()
  for {
    select {
    case <-rl.stop:
      return
    case now := <-ticker.C:
      rl.mu.Lock()
      for key, bucket := range rl.buckets {
        if now.After(bucket.resetAt) {
          delete(rl.buckets, key)
        }
      }
      rl.mu.Unlock()
    }
  }
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
  return func(c *gin.Context) {
    count, resetAt := rl.hit(c)

    remaining := rl.limit - count
    if remaining < 0 {
      remaining = 0
    }
    c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
    c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
    c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

    if count > rl.limit {
      retryAfter := int(time.Until(resetAt).Seconds())
      if retryAfter < 1 {
        retryAfter = 1
      }
      c.Header("Retry-After", strconv.Itoa(retryAfter))
      c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
      return
    }
    c.Next()
  }
}

func (rl *RateLimiter) hit(c *gin.Context) (int, time.Time) {
  key := c.ClientIP()
  if rl.rdb != nil {
    return rl.hitRedis(c, key)
  }
  return rl.hitMemory(key)
}

func (rl *RateLimiter) hitMemory(key string) (int, time.Time) {
  now := time.Now()
  rl.mu.Lock()
  defer rl.mu.Unlock()

  bucket, ok := rl.buckets[key]
  if !ok || now.After(bucket.resetAt) {
    bucket = &rateBucket{resetAt: now.Add(rl.window)}
    rl.buckets[key] = bucket
  }
  bucket.count++
  return bucket.count, bucket.resetAt
}

func (rl *RateLimiter) hitRedis(c *gin.Context, key string) (int, time.Time) {
  ctx := c.Request.Context()
  redisKey := fmt.Sprintf("ratelimit:%s", key)

  count, err := rl.rdb.Incr(ctx, redisKey).Result()
  if err != nil {
    rl.log.Warn("Rate limit Redis incr failed, allowing request", "error", err)
    return 1, time.Now().Add(rl.window)
  }
  if count == 1 {
    if eErr := rl.rdb.Expire(ctx, redisKey, rl.window).Err(); eErr != nil {
      rl.log.Warn("Rate limit Redis expire failed", "error", eErr)
    }
  }
  ttl, tErr := rl.rdb.TTL(ctx, redisKey).Result()
  if tErr != nil || ttl <= 0 {
    ttl = rl.window
  }
  return int(count), time.Now().Add(ttl)
}
