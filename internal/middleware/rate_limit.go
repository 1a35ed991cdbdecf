package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// allow increments a fixed-window counter for key and reports whether
// the request is within limit
func (rl *RateLimiter) allow(c *gin.Context, key string, limit int, window time.Duration) (bool, error) {
	ctx := c.Request.Context()
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// PerUser rate-limits authenticated requests per user and endpoint
func (rl *RateLimiter) PerUser(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := fmt.Sprintf("rate_limit:%d:%s", userID, c.Request.URL.Path)
		allowed, err := rl.allow(c, key, limit, window)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limit check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate limit exceeded",
				"message": fmt.Sprintf("too many requests, limit: %d per %v", limit, window),
			})
			return
		}

		c.Next()
	}
}

// PerIP rate-limits public routes by client IP
func (rl *RateLimiter) PerIP(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.Request.URL.Path)
		allowed, err := rl.allow(c, key, limit, window)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limit check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
