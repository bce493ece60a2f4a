package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/sereci/sirepre/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the staff permission level.
type Role string

const (
	RoleAdmin    Role = "admin"    // manages configuration, imports and staff
	RoleReviewer Role = "reviewer" // reviews and exports applicants
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleReviewer
}

// Password cost for bcrypt
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.\-]{3,50}$`)

// StaffUser is a member of staff allowed into the administrative API.
type StaffUser struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	FullName     string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewStaffUser creates an active staff user with a hashed password.
func NewStaffUser(username, password, fullName string, role Role) (*StaffUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME",
			"Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	u := &StaffUser{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		FullName:   strings.TrimSpace(fullName),
		Role:       role,
		Active:     true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *StaffUser) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *StaffUser) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login.
func (u *StaffUser) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// DisplayName is the full name, or the username when no name is set.
func (u *StaffUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// IsAdmin reports whether the user has the admin role
func (u *StaffUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}
