package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter is implemented by the in-memory and the Redis rate limiters.
type Limiter interface {
	Middleware() gin.HandlerFunc
}

// RedisRateLimiter allows limit requests per window and key, counted in Redis
// so that every API instance shares the same budget.
type RedisRateLimiter struct {
	rdb      *redis.Client
	resource string
	limit    int
	window   time.Duration
	key      KeyFunc
}

func NewRedisRateLimiter(rdb *redis.Client, resource string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:      rdb,
		resource: resource,
		limit:    limit,
		window:   window,
		key:      ClientIP,
	}
}

// Allow counts one request for id. The counter expires one window after the
// first request in it.
func (rl *RedisRateLimiter) Allow(ctx context.Context, id string) (bool, error) {
	key := fmt.Sprintf("rl:%s:%s", rl.resource, id)

	cnt, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(rl.limit), nil
}

// Middleware lets requests through when Redis is unreachable.
func (rl *RedisRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := rl.Allow(c.Request.Context(), rl.key(c))
		if err != nil {
			log.Printf("WARNING: rate limit store unavailable for %s: %v", rl.resource, err)
			c.Next()
			return
		}
		if !allowed {
			RateLimited.WithLabelValues(c.FullPath()).Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
