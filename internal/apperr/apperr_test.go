package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("content is required"), http.StatusBadRequest, "content is required"},
		{"not found", NotFound("comment not found"), http.StatusNotFound, "comment not found"},
		{"forbidden", Forbidden("unauthorized to delete this comment"), http.StatusForbidden, "unauthorized to delete this comment"},
		{"store", Store("create comment", errors.New("connection reset")), http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"wrapped validation", fmt.Errorf("post comment: %w", Validation("content is required")), http.StatusBadRequest, "content is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Store("delete comment", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "delete comment")
}
