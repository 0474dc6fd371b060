package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renkon/ident"
)

// Session returns a middleware that derives the session id from the
// x-renkon-session header, minting a fresh UUID when the header is absent.
// The minted id is not reflected back in a response header; surrounding
// transport middleware may choose to do that.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(SessionKey, ident.Session(id))
		c.Next()
	}
}

// SelectedSession returns the session id attached by the Session
// middleware.
func SelectedSession(c *gin.Context) (ident.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return "", false
	}
	id, ok := value.(ident.Session)
	return id, ok
}
