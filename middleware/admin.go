package middleware

import (
	"crypto/subtle"
	"net/http"

	"slotify/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the administrative endpoints with a static key
// supplied in the X-Admin-Key header. An empty configured key disables the
// admin surface entirely.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := config.AppConfig.AdminAPIKey
		if configured == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin API is disabled"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(configured)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
