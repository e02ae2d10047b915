package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/sse"
	"github.com/lumierefi/store_api/internal/utils"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// fakeProfileStore is an in-memory ProfileStore.
type fakeProfileStore struct {
	names map[string]*string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{names: map[string]*string{}}
}

func (f *fakeProfileStore) Upsert(_ context.Context, id string, fullName *string) error {
	f.names[id] = fullName
	return nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*models.Profile, error) {
	name, ok := f.names[id]
	if !ok {
		return nil, nil
	}
	return &models.Profile{ID: id, FullName: name}, nil
}

func authFixture() (*fakeUserStore, *fakeProfileStore, *AuthService) {
	utils.SetJWTSecret("test-secret")
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	return users, profiles, NewAuthService(users, profiles, sse.NewHub())
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and issues a token", func(t *testing.T) {
		users, profiles, svc := authFixture()

		session, token, err := svc.SignUp(ctx, "  Aino@Example.FI ", "hunter2secret", "Aino Virtanen")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "aino@example.fi", session.Email)
		assert.Equal(t, "Aino Virtanen", session.Name)

		claims, err := utils.ValidateJWT(token)
		require.NoError(t, err)
		assert.Equal(t, session.ID, claims.UserID)
		assert.Equal(t, "aino@example.fi", claims.Email)

		stored := users.byEmail["aino@example.fi"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "hunter2secret", stored.PasswordHash)
		require.NotNil(t, profiles.names[stored.ID])
		assert.Equal(t, "Aino Virtanen", *profiles.names[stored.ID])
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		_, _, svc := authFixture()
		_, _, err := svc.SignUp(ctx, "a@b.fi", "hunter2secret", "")
		require.NoError(t, err)

		_, _, err = svc.SignUp(ctx, "A@B.FI", "otherpassword", "")
		assert.ErrorIs(t, err, utils.ErrEmailTaken)
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips credentials", func(t *testing.T) {
		_, _, svc := authFixture()
		_, _, err := svc.SignUp(ctx, "a@b.fi", "hunter2secret", "Aino")
		require.NoError(t, err)

		session, token, err := svc.SignIn(ctx, "a@b.fi", "hunter2secret")
		require.NoError(t, err)
		assert.Equal(t, "a@b.fi", session.Email)
		assert.Equal(t, "Aino", session.Name)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		_, _, svc := authFixture()
		_, _, err := svc.SignUp(ctx, "a@b.fi", "hunter2secret", "")
		require.NoError(t, err)

		_, _, err = svc.SignIn(ctx, "a@b.fi", "wrongpassword")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

		_, _, err = svc.SignIn(ctx, "nobody@b.fi", "hunter2secret")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})
}

func TestSessionFromClaims(t *testing.T) {
	ctx := context.Background()
	_, profiles, svc := authFixture()

	name := "Aino"
	profiles.names["u1"] = &name

	session := svc.SessionFromClaims(ctx, "u1", "a@b.fi")
	assert.Equal(t, "u1", session.ID)
	assert.Equal(t, "Aino", session.Name)

	// No profile row: empty display name, never an error.
	session = svc.SessionFromClaims(ctx, "u2", "b@b.fi")
	assert.Empty(t, session.Name)
}
