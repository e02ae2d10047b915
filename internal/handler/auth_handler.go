package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/service"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// AuthHandler handles account endpoints: sign-up, sign-in, sign-out and
// session introspection. Signing in adopts the guest session's cart and
// favorites into the account store, then reconciles favorites with the
// remote store.
type AuthHandler struct {
	auth      *service.AuthService
	favorites *service.FavoritesService
	stores    *store.Manager
	catalog   *catalog.Catalog
	limiter   *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService, favorites *service.FavoritesService, stores *store.Manager, cat *catalog.Catalog) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		favorites: favorites,
		stores:    stores,
		catalog:   cat,
		limiter:   middleware.NewInvalidAuthRateLimiter(),
	}
}

// SignUp registers an account and signs it in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	session, token, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if err == utils.ErrEmailTaken {
			utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create account")
		return
	}

	state := h.activateSession(c, session)
	utils.Success(c, 201, "Account created", gin.H{
		"token":     token,
		"user":      session,
		"favorites": favoritesView(state, h.catalog),
	})
}

// SignIn verifies credentials and activates the account session. Invalid
// attempts are rate limited per IP.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	// Blocked IPs are turned away before the password check runs.
	ip := c.ClientIP()
	if h.limiter.Blocked(ip) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed sign-in attempts, try again later")
		return
	}

	session, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !h.limiter.Allow(ip) {
			utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed sign-in attempts, try again later")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	state := h.activateSession(c, session)
	utils.Success(c, 200, "Sign-in successful", gin.H{
		"token":     token,
		"user":      session,
		"favorites": favoritesView(state, h.catalog),
	})
}

// SignOut ends the account session. Local favorites are cleared wholesale:
// a guest has no favorites.
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID := c.GetString("user_id")
	key := middleware.UserSessionKey(userID)

	st := h.stores.Get(c.Request.Context(), key)
	st.Dispatch(store.AuthSignOut())
	st.Dispatch(store.FavReplace(nil))
	h.stores.Persist(c.Request.Context(), key)

	h.auth.SignOut(userID, c.GetString("email"))
	utils.Success(c, 200, "Signed out", nil)
}

// Me returns the session identity and derived store counts.
func (h *AuthHandler) Me(c *gin.Context) {
	session := h.auth.SessionFromClaims(c.Request.Context(), c.GetString("user_id"), c.GetString("email"))
	st := h.stores.Get(c.Request.Context(), middleware.UserSessionKey(session.ID))
	state := st.State()

	utils.Success(c, 200, "Session retrieved", gin.H{
		"user":      session,
		"cartCount": state.CartCount(),
		"favCount":  state.FavCount(),
	})
}

// activateSession hydrates the account store, folds in the guest session's
// cart and favorites, and runs the favorites reconciliation against the
// remote store. Returns the resulting state.
func (h *AuthHandler) activateSession(c *gin.Context, session *models.Session) store.State {
	ctx := c.Request.Context()
	key := middleware.UserSessionKey(session.ID)
	st := h.stores.Get(ctx, key)
	st.Dispatch(store.AuthSet(session))

	h.adoptGuest(ctx, c.GetHeader(middleware.SessionHeader), st)

	// Push-then-pull reconciliation; a failure leaves local favorites as
	// they are, which is exactly the offline behavior.
	_ = h.favorites.SyncOnSignIn(ctx, st)

	h.stores.Persist(ctx, key)
	return st.State()
}

// adoptGuest merges a guest session's snapshot into the account store so
// a cart built before signing in survives the transition. Cart adds
// saturate per the usual clamp; favorites union.
func (h *AuthHandler) adoptGuest(ctx context.Context, guestKey string, st *store.Store) {
	if guestKey == "" {
		return
	}
	guestStore := h.stores.Get(ctx, guestKey)
	guest := guestStore.State()

	for id, qty := range guest.Cart {
		st.Dispatch(store.CartAdd(id, qty))
	}

	if len(guest.Favorites) > 0 {
		union := make(map[string]bool, len(guest.Favorites))
		for id := range st.State().Favorites {
			union[id] = true
		}
		for id := range guest.Favorites {
			union[id] = true
		}
		st.Dispatch(store.FavReplace(union))
	}

	// Adoption consumes the guest session: a later sign-in carrying the
	// same header must not merge the same cart and favorites again.
	guestStore.Dispatch(store.CartClear())
	guestStore.Dispatch(store.FavReplace(nil))
	h.stores.Persist(ctx, guestKey)
}
