package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a token-bucket limiter middleware. Used on the
// public verification form, which is the only endpoint exposed to
// anonymous traffic.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
