package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderSessionID is the header name for the visitor session ID.
	HeaderSessionID = "X-Session-ID"

	// SessionCookieName is the cookie carrying the visitor session ID.
	SessionCookieName = "qd_session"

	// ContextKeySessionID is the context key for storing the session ID.
	ContextKeySessionID = "session_id"

	// sessionCookieMaxAge keeps the visitor's deck position for 30 days.
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// SessionConfig configures the session identity middleware.
type SessionConfig struct {
	// CookieSecure marks the session cookie Secure so browsers only send
	// it over HTTPS. Off by default for plain-HTTP local development.
	CookieSecure bool
}

// SessionID returns the session middleware with default settings.
func SessionID() gin.HandlerFunc {
	return SessionIDWithConfig(SessionConfig{})
}

// SessionIDWithConfig returns middleware that identifies the visitor
// session. The session ID is resolved in order:
//   - X-Session-ID header (API clients managing their own identity)
//   - qd_session cookie (browser visitors)
//   - freshly generated UUID v4
//
// The resolved ID is stored in the gin.Context, echoed in the response
// header, and refreshed as a cookie so the visitor's deck position and
// theme survive across visits.
func SessionIDWithConfig(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderSessionID)

		if id == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				id = cookie
			}
		}

		// Reject garbage identities rather than trusting arbitrary input.
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Set(ContextKeySessionID, id)
		c.Header(HeaderSessionID, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, id, sessionCookieMaxAge, "/", "", cfg.CookieSecure, true)

		c.Next()
	}
}

// GetSessionID extracts the session ID from the gin.Context.
// Returns empty string if not set.
func GetSessionID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeySessionID)
}
