package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/store"
)

// sessionStore resolves the request's store and makes sure a token-backed
// identity is installed in it. A store hydrated from a snapshot that
// predates the sign-in (or lost its user record) would otherwise treat an
// authenticated request as a guest.
func sessionStore(c *gin.Context, stores *store.Manager) *store.Store {
	st := stores.Get(c.Request.Context(), middleware.SessionKey(c))
	userID := c.GetString("user_id")
	if userID == "" {
		return st
	}
	if state := st.State(); state.User == nil || state.User.ID != userID {
		st.Dispatch(store.AuthSet(&models.Session{ID: userID, Email: c.GetString("email")}))
	}
	return st
}
