package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/platform/logger"
	"backoffice/pkg/sentinel"
)

type fakeAuth struct {
	result domain.LoginResult
	err    error
	calls  int
}

func (f *fakeAuth) Login(context.Context, domain.LoginRequest) (domain.LoginResult, error) {
	f.calls++
	if f.err != nil {
		return domain.LoginResult{}, f.err
	}
	return f.result, nil
}

type fakeAvatar struct {
	image *domain.Image
	err   error
}

func (f *fakeAvatar) MainImage(context.Context, domain.EntityType, int) (*domain.Image, error) {
	return f.image, f.err
}

func okAuth() *fakeAuth {
	return &fakeAuth{result: domain.LoginResult{
		UserIdentifier: "42",
		Name:           "Ana Admin",
		Role:           "administrator",
		Token:          "tok-ana",
		ExpireIn:       3600,
	}}
}

func TestLoginPersistsSessionAndReportsIdentity(t *testing.T) {
	store := NewMemoryStore()
	guard := NewGuard(store, okAuth(), nil, logger.Discard())
	ctx := context.Background()

	require.False(t, guard.IsAuthenticated(ctx))

	identity, err := guard.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ana Admin", identity.Name)
	assert.Equal(t, "administrator", identity.Role)
	assert.Equal(t, "ana@example.com", identity.Email)

	assert.True(t, guard.IsAuthenticated(ctx))
	creds, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-ana", creds.Token)
	assert.Equal(t, "42", creds.UserIdentifier)
}

func TestRejectedLoginLeavesGuardAnonymous(t *testing.T) {
	store := NewMemoryStore()
	auth := &fakeAuth{err: sentinel.ErrUnauthorized}
	guard := NewGuard(store, auth, nil, logger.Discard())
	ctx := context.Background()

	_, err := guard.Login(ctx, "ana@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrUnauthorized))
	assert.False(t, guard.IsAuthenticated(ctx))
}

func TestLogoutIsIdempotentAndResetsStores(t *testing.T) {
	store := NewMemoryStore()
	guard := NewGuard(store, okAuth(), nil, logger.Discard())
	ctx := context.Background()

	resets := 0
	guard.OnReset(func() { resets++ })

	_, err := guard.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	resetsAfterLogin := resets

	require.NoError(t, guard.Logout(ctx))
	assert.False(t, guard.IsAuthenticated(ctx))
	assert.Equal(t, resetsAfterLogin+1, resets)

	// Logging out while already anonymous is a no-op, not an error.
	require.NoError(t, guard.Logout(ctx))
	assert.False(t, guard.IsAuthenticated(ctx))
}

func TestInvalidationTearsDownSynchronously(t *testing.T) {
	store := NewMemoryStore()
	guard := NewGuard(store, okAuth(), nil, logger.Discard())
	ctx := context.Background()

	resets := 0
	guard.OnReset(func() { resets++ })

	_, err := guard.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	resetsAfterLogin := resets

	guard.HandleInvalidation(ctx)
	assert.False(t, guard.IsAuthenticated(ctx))
	assert.Equal(t, resetsAfterLogin+1, resets)
}

func TestLoginWithoutLogoutStartsFreshSession(t *testing.T) {
	store := NewMemoryStore()
	guard := NewGuard(store, okAuth(), nil, logger.Discard())
	ctx := context.Background()

	resets := 0
	guard.OnReset(func() { resets++ })

	_, err := guard.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, resets)

	// Signing in again without logging out still resets the dependent stores.
	_, err = guard.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, resets)
}

func TestAvatarLoadIsBestEffort(t *testing.T) {
	t.Run("failure never blocks login", func(t *testing.T) {
		guard := NewGuard(NewMemoryStore(), okAuth(), &fakeAvatar{err: sentinel.ErrUnavailable}, logger.Discard())

		identity, err := guard.Login(context.Background(), "ana@example.com", "secret")
		require.NoError(t, err)
		assert.Empty(t, identity.AvatarURL)

		guard.profileWG.Wait()
		got, ok := guard.CheckAuth(context.Background())
		require.True(t, ok)
		assert.Empty(t, got.AvatarURL)
	})

	t.Run("success shows up on the identity", func(t *testing.T) {
		avatar := &fakeAvatar{image: &domain.Image{ThumbnailURL: "https://cdn/thumb.png"}}
		guard := NewGuard(NewMemoryStore(), okAuth(), avatar, logger.Discard())

		_, err := guard.Login(context.Background(), "ana@example.com", "secret")
		require.NoError(t, err)

		guard.profileWG.Wait()
		got, ok := guard.CheckAuth(context.Background())
		require.True(t, ok)
		assert.Equal(t, "https://cdn/thumb.png", got.AvatarURL)
	})
}

func TestTokenInfoPeeksClaimsWithoutVerification(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expires),
	}).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)

	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), Credentials{Token: token}))
	guard := NewGuard(store, okAuth(), nil, logger.Discard())

	info, err := guard.TokenInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(expires))
}

func TestTokenInfoWithoutSessionFails(t *testing.T) {
	guard := NewGuard(NewMemoryStore(), okAuth(), nil, logger.Discard())
	_, err := guard.TokenInfo(context.Background())
	require.Error(t, err)
}
