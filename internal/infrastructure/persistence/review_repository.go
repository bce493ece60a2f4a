package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// GormReviewRepository implements registration.ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a review
func (r *GormReviewRepository) Create(ctx context.Context, review *registration.Review) error {
	return r.db.WithContext(ctx).Create(models.ReviewModelFromDomain(review)).Error
}

// FindByApplicant returns the reviews of one applicant, newest first
func (r *GormReviewRepository) FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]registration.Review, error) {
	var rows []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where("postulante_id = ?", applicantID).
		Order("fecha_revision DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]registration.Review, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// inListBatch caps the ids bound into one IN list; postgres accepts at
// most 65535 parameters per statement.
var inListBatch = 1000

// FindByApplicants groups the reviews of several applicants, querying the
// ids in batches of inListBatch
func (r *GormReviewRepository) FindByApplicants(ctx context.Context, applicantIDs []uuid.UUID) (map[uuid.UUID][]registration.Review, error) {
	out := make(map[uuid.UUID][]registration.Review, len(applicantIDs))
	for start := 0; start < len(applicantIDs); start += inListBatch {
		batch := applicantIDs[start:min(start+inListBatch, len(applicantIDs))]
		var rows []models.ReviewModel
		if err := r.db.WithContext(ctx).
			Where("postulante_id IN ?", batch).
			Order("fecha_revision DESC").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			out[rows[i].ApplicantID] = append(out[rows[i].ApplicantID], *rows[i].ToDomain())
		}
	}
	return out, nil
}
