package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter keyed by client IP, backed by Redis.
type RateLimiter struct {
	client func() *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter limits every client to limit requests per window. The Redis
// client is looked up per request since Redis connects after the router is built.
func NewRateLimiter(limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: config.GetRedisDB,
		limit:  limit,
		window: window,
	}
}

// UseClient pins the limiter to one Redis client instead of the configured one.
func (rl *RateLimiter) UseClient(client *redis.Client) *RateLimiter {
	rl.client = func() *redis.Client { return client }
	return rl
}

// hit counts one request in the current window. The TTL is set only when the key
// has none, so a failed expire on an earlier request cannot leave the key without one.
func (rl *RateLimiter) hit(ctx context.Context, client *redis.Client, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// RateLimitMiddleware lets everything through when Redis is not configured.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := rl.client()
		if client == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := "RateLimit:" + c.ClientIP()

		count, err := rl.hit(ctx, client, key)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		if count > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
				"kind":  "rate_limited",
			})
			return
		}
		c.Next()
	}
}
