package identity

import (
	"testing"

	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaffUser(t *testing.T) {
	u, err := NewStaffUser(" Revisor.01 ", "secreto123", "Ana Flores", RoleReviewer)
	require.NoError(t, err)

	assert.Equal(t, "revisor.01", u.Username)
	assert.True(t, u.Active)
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "Ana Flores", u.DisplayName())
	assert.NotEqual(t, "secreto123", u.PasswordHash)
	assert.True(t, u.VerifyPassword("secreto123"))
	assert.False(t, u.VerifyPassword("otra-clave1"))
}

func TestNewStaffUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		role     Role
		code     string
	}{
		{"short username", "ab", "secreto123", RoleAdmin, "INVALID_USERNAME"},
		{"bad characters", "ana flores", "secreto123", RoleAdmin, "INVALID_USERNAME"},
		{"short password", "admin", "abc1", RoleAdmin, "INVALID_PASSWORD"},
		{"password without digits", "admin", "abcdefghij", RoleAdmin, "INVALID_PASSWORD"},
		{"unknown role", "admin", "secreto123", Role("root"), "INVALID_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaffUser(tt.username, tt.password, "", tt.role)
			require.Error(t, err)
			de, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestStaffUser_RecordLogin(t *testing.T) {
	u, err := NewStaffUser("admin", "secreto123", "", RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, u.LastLoginAt)

	u.RecordLogin()
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, "admin", u.DisplayName())
}
