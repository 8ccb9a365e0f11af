package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControlMiddleware marks responses cacheable for the given duration.
// Used on the achievement catalog, which only changes with a deploy.
func CacheControlMiddleware(duration time.Duration) gin.HandlerFunc {
	value := fmt.Sprintf("private, max-age=%d", int(duration.Seconds()))
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
