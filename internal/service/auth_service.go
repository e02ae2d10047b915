package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/sse"
	"github.com/lumierefi/store_api/internal/utils"
)

// UserStore is the account surface of the remote store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileStore is the profile surface of the remote store.
type ProfileStore interface {
	Upsert(ctx context.Context, id string, fullName *string) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// AuthService handles sign-up, sign-in and session resolution. Session
// change notifications fan out through the event hub so interested parties
// (favorites reconciliation, SSE clients) can react.
type AuthService struct {
	users    UserStore
	profiles ProfileStore
	hub      *sse.Hub
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, profiles ProfileStore, hub *sse.Hub) *AuthService {
	return &AuthService{users: users, profiles: profiles, hub: hub}
}

// SignUp registers a new account and returns the session plus a signed
// token. The optional full name lands on the profile row.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*models.Session, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	fullName = strings.TrimSpace(fullName)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", utils.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	var name *string
	if fullName != "" {
		name = &fullName
	}
	if err := s.profiles.Upsert(ctx, user.ID, name); err != nil {
		// The account exists; a missing profile row only loses the display
		// name, so log and continue.
		log.Warn().Err(err).Str("user_id", user.ID).Msg("profile creation failed")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	session := &models.Session{ID: user.ID, Email: user.Email, Name: fullName}
	s.hub.Broadcast(sse.StoreEvent{Event: sse.EventSessionSignedIn, UserID: user.ID, Email: user.Email})
	log.Info().Str("email", email).Msg("sign-up successful")
	return session, token, nil
}

// SignIn verifies credentials and returns the session plus a signed token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("password verification failed")
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	session := &models.Session{ID: user.ID, Email: user.Email, Name: s.displayName(ctx, user.ID)}
	s.hub.Broadcast(sse.StoreEvent{Event: sse.EventSessionSignedIn, UserID: user.ID, Email: user.Email})
	log.Info().Str("email", email).Msg("sign-in successful")
	return session, token, nil
}

// SignOut announces the session end. Tokens are stateless, so there is
// nothing to revoke server-side; local store cleanup happens at the
// dispatch site.
func (s *AuthService) SignOut(userID, email string) {
	s.hub.Broadcast(sse.StoreEvent{Event: sse.EventSessionSignedOut, UserID: userID, Email: email})
}

// SessionFromClaims rebuilds the session for validated token claims,
// enriched with the profile display name.
func (s *AuthService) SessionFromClaims(ctx context.Context, userID, email string) *models.Session {
	return &models.Session{ID: userID, Email: email, Name: s.displayName(ctx, userID)}
}

func (s *AuthService) displayName(ctx context.Context, userID string) string {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil || profile == nil || profile.FullName == nil {
		return ""
	}
	return *profile.FullName
}
