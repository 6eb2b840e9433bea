package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"lirivelle/internal/clientstate"
	"lirivelle/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		status     int
	}{
		{"matching token", "s3cret", "s3cret", http.StatusNoContent},
		{"wrong token", "s3cret", "guess", http.StatusForbidden},
		{"missing header", "s3cret", "", http.StatusForbidden},
		{"not configured", "", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", AdminRequired(tt.configured), func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(AdminTokenHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestClientStateAttachesCache(t *testing.T) {
	r := gin.New()
	r.Use(sessions.Sessions("s", cookie.NewStore([]byte("secret"))), ClientState())
	r.GET("/", func(c *gin.Context) {
		v, ok := c.Get(clientstate.ContextKey)
		assert.True(t, ok)
		assert.IsType(t, &clientstate.Cache{}, v)
		assert.Same(t, v, clientstate.FromContext(c))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	out := logger.Log.Out
	logger.Log.SetOutput(&buf)
	defer logger.Log.SetOutput(out)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing?deleteToken=abc", nil))

	line := buf.String()
	assert.Contains(t, line, "status=404")
	assert.Contains(t, line, "path=/missing")
	assert.NotContains(t, line, "deleteToken")
	assert.Contains(t, line, "level=warning")
}
