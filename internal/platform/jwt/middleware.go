package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys and the cookie carrying the session token.
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
	CookieName       = "news_session"
)

// TokenParser verifies session tokens.
type TokenParser interface {
	ParseToken(tokenStr string) (*Claims, error)
}

// IdentityResolver reports which user a server-side session belongs to.
// ok is false for unknown, revoked and expired sessions.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, sessionID string) (userID uint, ok bool, err error)
}

// LoadIdentity returns a Gin middleware that resolves the caller's identity
// from the session cookie or an "Authorization: Bearer" header.
// It never rejects a request: routes that need an identity add RequireAuth.
func LoadIdentity(parser TokenParser, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			slog.Debug("ignoring invalid session token", "remote_addr", c.ClientIP())
			c.Next()
			return
		}

		userID, ok, err := resolver.CurrentIdentity(c.Request.Context(), claims.SessionID)
		if err != nil {
			// Treat the request as anonymous; gated routes answer 401.
			slog.Error("session lookup failed", "error", err)
			c.Next()
			return
		}
		if !ok || userID != claims.UserID {
			c.Next()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless LoadIdentity found a live session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserIDFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// UserIDFrom returns the authenticated user id stored by LoadIdentity.
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// SessionIDFrom returns the session id stored by LoadIdentity.
func SessionIDFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSessionID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
