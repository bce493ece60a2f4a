package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open: a blacklist outage must not lock staff out
				cfg.Logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if blacklisted {
				handleAuthError(c, cfg, auth.ErrTokenBlacklisted)
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return "", errMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

var errMissingToken = errors.New("missing bearer token")

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	cfg.Logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path))

	code, message := dto.ErrCodeUnauthorized, "Autenticación requerida"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = "TOKEN_EXPIRED", "El token ha expirado"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, message = "TOKEN_REVOKED", "El token ha sido revocado"
	case errors.Is(err, errMissingToken):
	default:
		code, message = "TOKEN_INVALID", "Token inválido"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, c.GetString(RequestIDKey)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(JWTUserIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetJWTUsername retrieves the username from JWT claims in context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// RequireRole lets the request through only when the token carries one of
// roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(JWTRoleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.ErrCodeForbidden, "No tiene permisos para esta operación", c.GetString(RequestIDKey)))
	}
}
