package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/empowrai/empowr-backend/internal/errors"
)

// Middleware enforces the per-IP rate limit on every request
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		result, err := rl.AllowIP(c.Request.Context(), ip)
		if err != nil {
			// Limiter failure must not take the service down
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			rl.metrics.IncrementRateLimitIPBlock()
			appErr := errors.NewRateLimitError(result.RetryAfter.String())
			errors.LogError(c, appErr)
			c.Header("Retry-After", result.RetryAfter.String())
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}

		c.Next()
	}
}
