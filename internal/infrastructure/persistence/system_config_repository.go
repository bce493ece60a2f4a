package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// singletonConfigID is the only row of configuracion_sistema.
const singletonConfigID = 1

// GormSystemConfigRepository implements registration.SystemConfigRepository
type GormSystemConfigRepository struct {
	db *gorm.DB
}

// NewGormSystemConfigRepository creates a new GormSystemConfigRepository
func NewGormSystemConfigRepository(db *gorm.DB) *GormSystemConfigRepository {
	return &GormSystemConfigRepository{db: db}
}

// Get returns the configuration row, inserting the default one first when
// the table is empty.
func (r *GormSystemConfigRepository) Get(ctx context.Context) (*registration.SystemConfig, error) {
	var m models.SystemConfigModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", singletonConfigID).Error
	if err == nil {
		return m.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cfg := registration.DefaultSystemConfig()
	cfg.ID = singletonConfigID
	if err := r.db.WithContext(ctx).Create(models.SystemConfigModelFromDomain(cfg)).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration row
func (r *GormSystemConfigRepository) Save(ctx context.Context, cfg *registration.SystemConfig) error {
	cfg.ID = singletonConfigID
	return r.db.WithContext(ctx).Save(models.SystemConfigModelFromDomain(cfg)).Error
}
