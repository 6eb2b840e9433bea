package services

import (
	"strings"

	"lirivelle/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenAuthority issues per-comment delete tokens and checks them.
type TokenAuthority struct {
	cost             int
	allowAuthorMatch bool
}

// NewTokenAuthority returns an authority hashing with the given bcrypt cost.
// When allowAuthorMatch is set, a request naming the stored author may also
// delete; blank and default author names never match.
func NewTokenAuthority(cost int, allowAuthorMatch bool) *TokenAuthority {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &TokenAuthority{cost: cost, allowAuthorMatch: allowAuthorMatch}
}

// Issue returns a fresh random token and the hash to store for it.
func (a *TokenAuthority) Issue() (token, hash string, err error) {
	token = uuid.NewString()
	h, err := bcrypt.GenerateFromPassword([]byte(token), a.cost)
	if err != nil {
		return "", "", err
	}
	return token, string(h), nil
}

// Authorize reports whether the caller may delete c.
func (a *TokenAuthority) Authorize(c *models.Comment, author, token string) bool {
	if token != "" && c.DeleteTokenHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(c.DeleteTokenHash), []byte(token)) == nil {
			return true
		}
	}
	if !a.allowAuthorMatch {
		return false
	}
	author = strings.TrimSpace(author)
	if author == "" || author == models.DefaultAuthor {
		return false
	}
	return author == c.Author
}
