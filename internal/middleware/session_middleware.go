package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/utils"
)

// Session key resolution: an authenticated request maps to a stable
// per-user store key; a guest presents an opaque session key in the
// X-Session-Id header. New guests get a key minted here, echoed back in
// the response header so the client can persist it.
const (
	SessionHeader = "X-Session-Id"
	sessionCtxKey = "session_key"
	userPrefix    = "user:"
)

// SessionMiddleware resolves the store session key for every request.
// It must run after JWT parsing so a signed-in user's cart follows the
// account rather than the guest key.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetString("user_id"); userID != "" {
			c.Set(sessionCtxKey, userPrefix+userID)
			c.Next()
			return
		}

		if key := c.GetHeader(SessionHeader); key != "" {
			c.Set(sessionCtxKey, key)
			c.Header(SessionHeader, key)
			c.Next()
			return
		}

		key, err := utils.GenerateSessionKey()
		if err != nil {
			// Entropy failure is effectively fatal, but a per-request
			// throwaway key degrades to a cartless response instead of 500.
			key = "sess_ephemeral"
		}
		c.Set(sessionCtxKey, key)
		c.Header(SessionHeader, key)
		c.Next()
	}
}

// SessionKey returns the resolved store key for the request.
func SessionKey(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

// UserSessionKey maps a user id to its store key, for callers outside the
// request path (e.g. reconciliation after sign-in).
func UserSessionKey(userID string) string {
	return userPrefix + userID
}
