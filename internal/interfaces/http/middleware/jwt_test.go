package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  ttl,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "sirepre-test",
	})
}

type failingBlacklist struct{}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func setupJWTRouter(svc *auth.JWTService, blacklist auth.TokenBlacklist, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuthMiddleware(svc, blacklist, nil)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		id, ok := GetJWTUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  id.String(),
			"ok":       ok,
			"username": GetJWTUsername(c),
			"role":     GetJWTClaims(c).Role,
		})
	})
	router.GET("/protected", chain...)
	return router
}

func doAuthRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Username: "revisor1", Role: "reviewer"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := doAuthRequest(setupJWTRouter(svc, nil), pair.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "revisor1", body["username"])
		assert.Equal(t, "reviewer", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := doAuthRequest(setupJWTRouter(svc, nil), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doAuthRequest(setupJWTRouter(svc, nil), "not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		w := doAuthRequest(setupJWTRouter(svc, nil), pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w))
	})

	t.Run("expired token", func(t *testing.T) {
		expiring := testJWTService(time.Millisecond)
		short, err := expiring.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Username: "revisor1"})
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		w := doAuthRequest(setupJWTRouter(expiring, nil), short.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w))
	})

	t.Run("blacklisted token", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

		w := doAuthRequest(setupJWTRouter(svc, blacklist), pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_REVOKED", errorCode(t, w))
	})

	t.Run("blacklist outage lets the request through", func(t *testing.T) {
		w := doAuthRequest(setupJWTRouter(svc, failingBlacklist{}), pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: testJWTService(time.Minute),
		SkipPaths:  []string{"/public"},
	}))
	router.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	router := setupJWTRouter(svc, nil, RequireRole("admin"))

	admin, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Username: "admin", Role: "admin"})
	require.NoError(t, err)
	reviewer, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Username: "rev", Role: "reviewer"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doAuthRequest(router, admin.AccessToken).Code)

	w := doAuthRequest(router, reviewer.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))
}
