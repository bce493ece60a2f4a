package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/identity"
)

// LoginInput contains the input for staff login
type LoginInput struct {
	Username string
	Password string
	IP       string // client IP, logged only
}

// TokenResult is the token pair handed to the client.
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	TokenResult
	User UserInfo `json:"user"`
}

// UserInfo is the public view of a staff user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LogoutInput identifies the access token being revoked.
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	// TokenTTL is the remaining lifetime of the access token
	TokenTTL time.Duration
}

// CreateStaffUserInput contains the input for creating a staff account
type CreateStaffUserInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

func toUserInfo(u *identity.StaffUser) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}
