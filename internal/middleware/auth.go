package middleware

import (
	"crypto/subtle"
	"net/http"

	"lirivelle/internal/logger"

	"github.com/gin-gonic/gin"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminRequired guards the content management routes. With no token
// configured every request is refused.
func AdminRequired(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			logger.WithContext("http", "admin").WithField("client_ip", c.ClientIP()).Warn("Admin request refused")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}
