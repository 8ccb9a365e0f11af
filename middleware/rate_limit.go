package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a Redis-backed fixed-window limiter. Counters live in a
// shared store so the limit holds across server instances, not per process.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Middleware limits authenticated requests per user; it must run after
// AuthMiddleware so user_id is set.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, userID)

		pipe := rl.client.TxPipeline()
		countCmd := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rl.window)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis trouble should not take the endpoint down.
			log.Printf("Rate limiter unavailable: %v", err)
			utils.TrackError("cache", "rate_limit_unavailable")
			c.Next()
			return
		}

		if countCmd.Val() > int64(rl.limit) {
			utils.TrackError("http", "rate_limited")
			utils.TooManyRequests(c, "Too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
