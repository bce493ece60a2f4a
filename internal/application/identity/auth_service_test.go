package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "sirepre-test",
	})
}

func newTestUser(t *testing.T) *identity.StaffUser {
	t.Helper()
	u, err := identity.NewStaffUser("revisor", "secreto123", "Ana Quispe", identity.RoleReviewer)
	require.NoError(t, err)
	return u
}

func setupAuthService(t *testing.T) (*AuthService, *testutil.MockStaffUserRepository, *auth.InMemoryTokenBlacklist) {
	t.Helper()
	repo := new(testutil.MockStaffUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewAuthService(repo, newTestJWT(), blacklist, zap.NewNop()), repo, blacklist
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "revisor").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "secreto123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "Ana Quispe", result.User.DisplayName)
		assert.Equal(t, "reviewer", result.User.Role)
		assert.NotNil(t, user.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("FindByUsername", ctx, "nadie").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Username: "nadie", Password: "x"})
		assertDomainCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("FindByUsername", ctx, "revisor").Return(newTestUser(t), nil)

		_, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "otra1234"})
		assertDomainCode(t, err, "INVALID_CREDENTIALS")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("deactivated", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		user := newTestUser(t)
		user.Active = false
		repo.On("FindByUsername", ctx, "revisor").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "secreto123"})
		assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("FindByUsername", ctx, "revisor").Return(nil, errors.New("connection refused"))

		_, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "secreto123"})
		assertDomainCode(t, err, "INTERNAL_ERROR")
	})

	t.Run("login stamp failure does not fail login", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "revisor").Return(user, nil)
		repo.On("Update", ctx, user).Return(errors.New("timeout"))

		result, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "secreto123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAuthService(t)
	user := newTestUser(t)
	repo.On("FindByUsername", ctx, "revisor").Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	login, err := svc.Login(ctx, LoginInput{Username: "revisor", Password: "secreto123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// a refresh token is single use
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assertDomainCode(t, err, "TOKEN_REVOKED")

	_, err = svc.Refresh(ctx, "not-a-token")
	assertDomainCode(t, err, "TOKEN_INVALID")

	// access tokens are not accepted as refresh tokens
	_, err = svc.Refresh(ctx, login.AccessToken)
	assertDomainCode(t, err, "TOKEN_INVALID")
}

func TestAuthService_Refresh_DeactivatedUser(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAuthService(t)
	user := newTestUser(t)
	pair, err := newTestJWT().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	user.Active = false
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist := setupAuthService(t)
	user := newTestUser(t)

	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: user.ID, TokenJTI: "jti-1", TokenTTL: time.Minute}))
	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// expired tokens need no entry
	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: user.ID, TokenJTI: "jti-2"}))
	revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	noBlacklist := NewAuthService(new(testutil.MockStaffUserRepository), newTestJWT(), nil, zap.NewNop())
	assert.NoError(t, noBlacklist.Logout(ctx, LogoutInput{TokenJTI: "jti-3", TokenTTL: time.Minute}))
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupAuthService(t)
	user := newTestUser(t)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	missing := testutil.NewTestUUID("missing")
	repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	info, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "revisor", info.Username)

	_, err = svc.Me(ctx, missing)
	assertDomainCode(t, err, "USER_NOT_FOUND")
}

func TestAuthService_CreateStaffUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("ExistsByUsername", ctx, "admin").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.StaffUser")).Return(nil)

		info, err := svc.CreateStaffUser(ctx, CreateStaffUserInput{
			Username: "admin", Password: "cambiar123", FullName: "Administrador", Role: "admin",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", info.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("ExistsByUsername", ctx, "admin").Return(true, nil)

		_, err := svc.CreateStaffUser(ctx, CreateStaffUserInput{Username: "admin", Password: "cambiar123", Role: "admin"})
		assertDomainCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, repo, _ := setupAuthService(t)
		repo.On("ExistsByUsername", ctx, "admin").Return(false, nil)

		_, err := svc.CreateStaffUser(ctx, CreateStaffUserInput{Username: "admin", Password: "cambiar123", Role: "root"})
		assertDomainCode(t, err, "INVALID_ROLE")
	})
}
