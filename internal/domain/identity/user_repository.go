package identity

import (
	"context"

	"github.com/google/uuid"
)

// StaffUserRepository defines the interface for staff user persistence
type StaffUserRepository interface {
	Create(ctx context.Context, user *StaffUser) error
	Update(ctx context.Context, user *StaffUser) error

	// FindByID returns shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*StaffUser, error)

	// FindByUsername looks up a user by lower-cased username
	FindByUsername(ctx context.Context, username string) (*StaffUser, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
