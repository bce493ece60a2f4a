package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// GormStaffUserRepository implements identity.StaffUserRepository
type GormStaffUserRepository struct {
	db *gorm.DB
}

// NewGormStaffUserRepository creates a new GormStaffUserRepository
func NewGormStaffUserRepository(db *gorm.DB) *GormStaffUserRepository {
	return &GormStaffUserRepository{db: db}
}

// Create inserts a staff user
func (r *GormStaffUserRepository) Create(ctx context.Context, u *identity.StaffUser) error {
	err := r.db.WithContext(ctx).Create(models.StaffUserModelFromDomain(u)).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Update saves an existing staff user
func (r *GormStaffUserRepository) Update(ctx context.Context, u *identity.StaffUser) error {
	result := r.db.WithContext(ctx).
		Model(&models.StaffUserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"password_hash": u.PasswordHash,
			"full_name":     u.FullName,
			"role":          string(u.Role),
			"active":        u.Active,
			"last_login_at": u.LastLoginAt,
			"updated_at":    u.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a staff user by ID
func (r *GormStaffUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.StaffUser, error) {
	var m models.StaffUserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}

// FindByUsername finds a staff user by username, ignoring case
func (r *GormStaffUserRepository) FindByUsername(ctx context.Context, username string) (*identity.StaffUser, error) {
	var m models.StaffUserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}

// ExistsByUsername checks if a username is taken
func (r *GormStaffUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffUserModel{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
