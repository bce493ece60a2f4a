package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/infrastructure/config"
)

// TokenType tells access tokens from refresh tokens. Each type is signed
// with its own secret.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims of a staff session token. RegisteredClaims.ID (jti) is what the
// blacklist stores on logout.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}

func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL is how long the token stays valid, never negative.
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

type tokenKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService issues and checks HS256 staff tokens.
type JWTService struct {
	keys   map[TokenType]tokenKey
	issuer string
	now    func() time.Time
}

// NewJWTService signs refresh tokens with cfg.RefreshSecret, or with
// cfg.Secret when that is empty.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refresh := cfg.RefreshSecret
	if refresh == "" {
		refresh = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType]tokenKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refresh), ttl: cfg.RefreshTokenExpiration},
		},
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	if input.UserID == uuid.Nil {
		return nil, ErrMissingUserID
	}
	now := s.now()
	access, accessExp, err := s.issue(TokenTypeAccess, input, now)
	if err != nil {
		return nil, err
	}
	// the role is looked up again on refresh, so it is left out here
	input.Role = ""
	refresh, refreshExp, err := s.issue(TokenTypeRefresh, input, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) issue(typ TokenType, in GenerateTokenInput, now time.Time) (string, time.Time, error) {
	key := s.keys[typ]
	exp := now.Add(key.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   in.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:    in.UserID.String(),
		Username:  in.Username,
		Role:      in.Role,
		TokenType: typ,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	return signed, exp, err
}

func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.parse(token, TokenTypeAccess)
}

func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.parse(token, TokenTypeRefresh)
}

func (s *JWTService) parse(raw string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.keys[want].secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.TokenType != want:
		return nil, ErrInvalidTokenType
	case claims.UserID == "":
		return nil, ErrMissingUserID
	}
	return claims, nil
}
