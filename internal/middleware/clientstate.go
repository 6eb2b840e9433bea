package middleware

import (
	"lirivelle/internal/clientstate"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ClientState attaches the visitor's session-backed cache. It must run after
// the sessions middleware.
func ClientState() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientstate.ContextKey, clientstate.New(sessions.Default(c)))
		c.Next()
	}
}
