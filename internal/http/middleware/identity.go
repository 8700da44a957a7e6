// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides Identity, which binds the caller's identity as resolved
// by the external account/session provider. The application never performs
// authentication itself: a fronting auth proxy validates the session and
// injects the user id via the X-User-ID header. Absent or blank values leave
// the request anonymous; there is deliberately no development fallback, so
// mutating services can refuse anonymous callers uniformly.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID is the trusted header carrying the upstream-authenticated
// user identity.
const HeaderUserID = "X-User-ID"

// ctxKeyUserID is the Gin context key under which the identity is stored.
const ctxKeyUserID = "userID"

// Identity returns a middleware that copies the upstream-resolved user id
// into the Gin context. Handlers and downstream middleware (rate limiting,
// idempotency, logging) read it via UserIDFrom or the "userID" context key.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" {
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	}
}

// UserIDFrom returns the bound identity, or "" for anonymous requests.
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
