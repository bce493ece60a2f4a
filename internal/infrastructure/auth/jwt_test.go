package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "sirepre-test",
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "revisor",
		Role:     "reviewer",
	}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "only-secret", Issuer: "x"})
	assert.Equal(t, svc.keys[TokenTypeAccess].secret, svc.keys[TokenTypeRefresh].secret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestGenerateTokenPair_RequiresUser(t *testing.T) {
	_, err := newTestJWTService().GenerateTokenPair(GenerateTokenInput{Username: "x"})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "revisor", claims.Username)
	assert.Equal(t, "reviewer", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, id)
	assert.InDelta(t, (15 * time.Minute).Seconds(), claims.GetRemainingTTL().Seconds(), 5)
}

func TestValidateAccessToken_ExpiredToken(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "sirepre-test",
	})
	otherIssuer := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "someone-else",
	})

	tests := []struct {
		name  string
		svc   *JWTService
		token string
		want  error
	}{
		{"garbage", svc, "not-a-token", ErrInvalidToken},
		{"refresh used as access", NewJWTService(config.JWTConfig{Secret: "test-refresh-secret-key-32-chars", Issuer: "sirepre-test"}), pair.RefreshToken, ErrInvalidTokenType},
		{"different secret", other, pair.AccessToken, ErrInvalidToken},
		{"different issuer", otherIssuer, pair.AccessToken, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Empty(t, claims.Role)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token is signed with the access secret")
}
