package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// GormUploadedFileRepository implements registration.UploadedFileRepository
type GormUploadedFileRepository struct {
	db *gorm.DB
}

// NewGormUploadedFileRepository creates a new GormUploadedFileRepository
func NewGormUploadedFileRepository(db *gorm.DB) *GormUploadedFileRepository {
	return &GormUploadedFileRepository{db: db}
}

// Create inserts the upload record
func (r *GormUploadedFileRepository) Create(ctx context.Context, f *registration.UploadedFile) error {
	return r.db.WithContext(ctx).Create(models.UploadedFileModelFromDomain(f)).Error
}

// FindByID finds an upload by ID
func (r *GormUploadedFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.UploadedFile, error) {
	var m models.UploadedFileModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}
