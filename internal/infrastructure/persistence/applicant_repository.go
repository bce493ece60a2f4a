package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/infrastructure/persistence/models"
)

// GormApplicantRepository implements registration.ApplicantRepository
type GormApplicantRepository struct {
	db *gorm.DB
}

// NewGormApplicantRepository creates a new GormApplicantRepository
func NewGormApplicantRepository(db *gorm.DB) *GormApplicantRepository {
	return &GormApplicantRepository{db: db}
}

// Create inserts a new applicant
func (r *GormApplicantRepository) Create(ctx context.Context, a *registration.Applicant) error {
	err := r.db.WithContext(ctx).Create(models.ApplicantModelFromDomain(a)).Error
	if isUniqueViolation(err) {
		return registration.ErrDuplicateApplicant
	}
	return err
}

// FindByID finds an applicant by ID
func (r *GormApplicantRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Applicant, error) {
	var m models.ApplicantModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToDomain(), nil
}

// FindByCedula returns every applicant registered under the card number,
// newest first.
func (r *GormApplicantRepository) FindByCedula(ctx context.Context, cedula int64) ([]registration.Applicant, error) {
	var rows []models.ApplicantModel
	if err := r.db.WithContext(ctx).
		Where("cedula_identidad = ?", cedula).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toApplicants(rows), nil
}

// ExistsByIdentity checks the (cédula, complemento) pair
func (r *GormApplicantRepository) ExistsByIdentity(ctx context.Context, key registration.IdentityKey) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ApplicantModel{}).
		Where("cedula_identidad = ? AND complemento = ?", key.CedulaIdentidad, key.Complemento).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of applicants and the total matching the filter
func (r *GormApplicantRepository) List(ctx context.Context, filter registration.ApplicantFilter) ([]registration.Applicant, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ApplicantModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	var rows []models.ApplicantModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toApplicants(rows), total, nil
}

// FindAll returns every applicant, newest first
func (r *GormApplicantRepository) FindAll(ctx context.Context) ([]registration.Applicant, error) {
	var rows []models.ApplicantModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toApplicants(rows), nil
}

// Count returns the number of applicants
func (r *GormApplicantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ApplicantModel{}).Count(&count).Error
	return count, err
}

func countAlias(col string) string { return "cnt_" + col }

// CountDeclarations counts, per declaration, the applicants who ticked it
func (r *GormApplicantRepository) CountDeclarations(ctx context.Context) (map[string]int64, error) {
	fields := make([]string, 0, len(models.DeclarationColumns))
	for _, item := range (registration.Declarations{}).Items() {
		fields = append(fields, item.Field)
	}
	selects := make([]string, len(fields))
	for i, f := range fields {
		col := models.DeclarationColumns[f]
		// aliases must not match a model column or gorm scans into its bool type
		selects[i] = fmt.Sprintf("COALESCE(SUM(CASE WHEN %s THEN 1 ELSE 0 END), 0) AS %s", col, countAlias(col))
	}

	result := map[string]any{}
	if err := r.db.WithContext(ctx).
		Model(&models.ApplicantModel{}).
		Select(strings.Join(selects, ", ")).
		Take(&result).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(fields))
	for _, f := range fields {
		n, err := toInt64(result[countAlias(models.DeclarationColumns[f])])
		if err != nil {
			return nil, fmt.Errorf("declaration count %s: %w", f, err)
		}
		counts[f] = n
	}
	return counts, nil
}

// RegistrationsPerMinute buckets registrations since the given instant by
// minute, oldest first.
func (r *GormApplicantRepository) RegistrationsPerMinute(ctx context.Context, since time.Time) ([]registration.MinuteBucket, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.ApplicantModel{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	buckets := make([]registration.MinuteBucket, 0)
	for _, ts := range stamps {
		minute := ts.Truncate(time.Minute)
		if n := len(buckets); n > 0 && buckets[n-1].Minute.Equal(minute) {
			buckets[n-1].Count++
			continue
		}
		buckets = append(buckets, registration.MinuteBucket{Minute: minute, Count: 1})
	}
	return buckets, nil
}

func (r *GormApplicantRepository) applyFilter(query *gorm.DB, filter registration.ApplicantFilter) *gorm.DB {
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(nombre || ' ' || COALESCE(apellido_paterno, '') || ' ' || COALESCE(apellido_materno, '')) LIKE ? OR CAST(cedula_identidad AS TEXT) LIKE ?",
			like, like,
		)
	}
	if filter.VenueID != nil {
		query = query.Where("recinto_primera_opcion_id = ? OR recinto_segunda_opcion_id = ?", *filter.VenueID, *filter.VenueID)
	}
	return query
}

func toApplicants(rows []models.ApplicantModel) []registration.Applicant {
	out := make([]registration.Applicant, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		var out int64
		_, err := fmt.Sscan(string(n), &out)
		return out, err
	case string:
		var out int64
		_, err := fmt.Sscan(n, &out)
		return out, err
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
