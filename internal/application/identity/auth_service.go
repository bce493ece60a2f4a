package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles staff authentication operations
type AuthService struct {
	userRepo   identity.StaffUserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService. blacklist may be nil, in which
// case logout only clears the client side.
func NewAuthService(
	userRepo identity.StaffUserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Usuario o contraseña incorrectos")

// Login authenticates a staff user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username), zap.String("ip", input.IP))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		s.logger.Error("Login failed: user lookup", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Error al iniciar sesión")
	}

	// Password first so an attacker cannot probe for deactivated accounts
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Login failed: invalid password", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("Login failed: account deactivated", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "La cuenta está desactivada")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Error al generar el token")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the session is valid, only the login stamp is lost
		s.logger.Warn("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return &LoginResult{TokenResult: toTokenResult(pair), User: toUserInfo(user)}, nil
}

// Refresh issues a new token pair from a valid refresh token. The role is
// re-read from the user so a demotion takes effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Blacklist lookup failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Error al validar el token")
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "El token fue revocado")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Token inválido")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Usuario no encontrado")
	}
	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "La cuenta está desactivada")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Error al generar el token")
	}

	// single use: the old refresh token dies with this refresh
	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Warn("Failed to revoke used refresh token", zap.Error(err))
		}
	}

	result := toTokenResult(pair)
	return &result, nil
}

// Logout revokes the caller's access token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if s.blacklist == nil || input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Error al cerrar sesión")
	}
	return nil
}

// Me returns the current user's information
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Usuario no encontrado")
	}
	info := toUserInfo(user)
	return &info, nil
}

// CreateStaffUser registers a new staff account. Used by the bootstrap
// command and the admin seeding path.
func (s *AuthService) CreateStaffUser(ctx context.Context, input CreateStaffUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "El usuario ya existe")
	}

	user, err := identity.NewStaffUser(input.Username, input.Password, input.FullName, identity.Role(input.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Staff user created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	info := toUserInfo(user)
	return &info, nil
}

func toTokenResult(pair *auth.TokenPair) TokenResult {
	return TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "El token ha expirado")
	case errors.Is(err, auth.ErrInvalidTokenType):
		return shared.NewDomainError("TOKEN_INVALID", "Tipo de token inválido")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Token inválido")
	}
}
