// Package clientstate remembers, per browser session, which comments this
// visitor created and the name they like to post under. It only drives UI
// affordances; the server still checks every delete token against its hash.
package clientstate

import (
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKey is where the middleware stores the Cache on the gin context.
	ContextKey = "clientstate"

	// MaxTokens bounds how many delete tokens one session keeps. Cookies are
	// capped at 4KB, so the oldest tokens are forgotten first.
	MaxTokens = 30

	ownedKey  = "owned"
	authorKey = "author"
	tokPrefix = "tok:"
)

type Cache struct {
	session sessions.Session
}

func New(s sessions.Session) *Cache {
	return &Cache{session: s}
}

// FromContext returns the Cache attached by the middleware, or wraps the
// request session directly.
func FromContext(c *gin.Context) *Cache {
	if v, ok := c.Get(ContextKey); ok {
		if cache, ok := v.(*Cache); ok {
			return cache
		}
	}
	return New(sessions.Default(c))
}

func tokenKey(id uint) string {
	return tokPrefix + strconv.FormatUint(uint64(id), 10)
}

func (c *Cache) RememberToken(id uint, token string) {
	owned := c.OwnedIDs()
	kept := owned[:0]
	for _, o := range owned {
		if o != id {
			kept = append(kept, o)
		}
	}
	kept = append(kept, id)
	for len(kept) > MaxTokens {
		c.session.Delete(tokenKey(kept[0]))
		kept = kept[1:]
	}
	c.session.Set(tokenKey(id), token)
	c.session.Set(ownedKey, append([]uint(nil), kept...))
}

func (c *Cache) LookupToken(id uint) (string, bool) {
	tok, ok := c.session.Get(tokenKey(id)).(string)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// ForgetToken drops the token, typically after the comment was deleted.
func (c *Cache) ForgetToken(id uint) {
	owned := c.OwnedIDs()
	kept := make([]uint, 0, len(owned))
	for _, o := range owned {
		if o != id {
			kept = append(kept, o)
		}
	}
	c.session.Delete(tokenKey(id))
	c.session.Set(ownedKey, kept)
}

func (c *Cache) RememberAuthorName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.session.Delete(authorKey)
		return
	}
	c.session.Set(authorKey, name)
}

func (c *Cache) AuthorName() (string, bool) {
	name, ok := c.session.Get(authorKey).(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// OwnedIDs lists comments this session holds a token for, oldest first.
func (c *Cache) OwnedIDs() []uint {
	owned, _ := c.session.Get(ownedKey).([]uint)
	return append([]uint{}, owned...)
}

// Owns reports whether the session holds a token for comment id.
func (c *Cache) Owns(id uint) bool {
	_, ok := c.LookupToken(id)
	return ok
}

func (c *Cache) Save() error {
	return c.session.Save()
}
