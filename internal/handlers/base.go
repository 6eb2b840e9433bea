package handlers

import (
	"errors"
	"io"
	"net/http"

	"lirivelle/internal/apperr"
	"lirivelle/internal/logger"

	"github.com/gin-gonic/gin"
)

// RespondError writes the JSON error envelope for err. Server-side failures
// are logged with their cause and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext("http", c.Request.Method+" "+c.FullPath()).WithError(err).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   apperr.Message(err),
	})
}

// RespondOK writes a success envelope with the given extra fields.
func RespondOK(c *gin.Context, status int, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["success"] = true
	c.JSON(status, obj)
}

// bindOptionalJSON decodes a JSON body when one was sent. An empty body is
// not an error.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validation("invalid request body")
	}
	return nil
}
