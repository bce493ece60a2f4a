package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// GormVenueRepository implements registration.VenueRepository
type GormVenueRepository struct {
	db *gorm.DB
}

// NewGormVenueRepository creates a new GormVenueRepository
func NewGormVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

// FindAll returns every venue ordered by name
func (r *GormVenueRepository) FindAll(ctx context.Context) ([]registration.Venue, error) {
	var rows []models.VenueModel
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]registration.Venue, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a venue by ID
func (r *GormVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Venue, error) {
	var m models.VenueModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}

// FindByIDs loads several venues at once. Unknown IDs are absent from the
// result.
func (r *GormVenueRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]registration.Venue, error) {
	out := make(map[uuid.UUID]registration.Venue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.VenueModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindByCodigo finds a venue by its unique code
func (r *GormVenueRepository) FindByCodigo(ctx context.Context, codigo string) (*registration.Venue, error) {
	var m models.VenueModel
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}

// Upsert inserts the venue or overwrites the one with the same code,
// keeping the stored ID.
func (r *GormVenueRepository) Upsert(ctx context.Context, v *registration.Venue) (bool, error) {
	existing, err := r.FindByCodigo(ctx, v.Codigo)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		if err := r.db.WithContext(ctx).Create(models.VenueModelFromDomain(v)).Error; err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(models.VenueModelFromDomain(v)).Error; err != nil {
		return false, err
	}
	return false, nil
}
