package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"lirivelle/internal/apperr"
	"lirivelle/internal/clientstate"
	"lirivelle/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Show answers GET /session with the remembered author and owned comments.
func (h *SessionHandler) Show(c *gin.Context) {
	state := clientstate.FromContext(c)
	author, _ := state.AuthorName()
	c.JSON(http.StatusOK, gin.H{
		"author":   author,
		"comments": state.OwnedIDs(),
	})
}

// RememberAuthor answers PUT /session/author. A blank name clears it.
func (h *SessionHandler) RememberAuthor(c *gin.Context) {
	var req struct {
		Author *string `json:"author"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Author == nil {
		RespondError(c, apperr.Validation("author is required"))
		return
	}
	name := strings.TrimSpace(*req.Author)
	if utf8.RuneCountInString(name) > services.MaxAuthorLength {
		RespondError(c, apperr.Validation(fmt.Sprintf("author must be at most %d characters", services.MaxAuthorLength)))
		return
	}

	state := clientstate.FromContext(c)
	state.RememberAuthorName(name)
	if err := state.Save(); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
