package registration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// ApplicantFilter narrows applicant listings.
type ApplicantFilter struct {
	shared.Filter
	VenueID *uuid.UUID // first or second choice
}

// MinuteBucket is the number of registrations within one minute.
type MinuteBucket struct {
	Minute time.Time `json:"minute"`
	Count  int64     `json:"count"`
}

// ApplicantRepository defines persistence for applicants
type ApplicantRepository interface {
	// Create persists a new applicant. A violation of the identity
	// uniqueness constraint is reported as ErrDuplicateApplicant.
	Create(ctx context.Context, applicant *Applicant) error

	// FindByID returns shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Applicant, error)

	// FindByCedula returns the applicants registered under a card number
	FindByCedula(ctx context.Context, cedula int64) ([]Applicant, error)

	// ExistsByIdentity checks the (cédula, complemento) pair
	ExistsByIdentity(ctx context.Context, key IdentityKey) (bool, error)

	// List returns one page, newest registrations first
	List(ctx context.Context, filter ApplicantFilter) ([]Applicant, int64, error)

	// FindAll returns every applicant, newest first
	FindAll(ctx context.Context) ([]Applicant, error)

	// Count returns the number of applicants
	Count(ctx context.Context) (int64, error)

	// CountDeclarations returns, per declaration field, how many applicants
	// declared it true
	CountDeclarations(ctx context.Context) (map[string]int64, error)

	// RegistrationsPerMinute groups registrations since the given instant
	RegistrationsPerMinute(ctx context.Context, since time.Time) ([]MinuteBucket, error)
}

// VenueRepository defines persistence for venues
type VenueRepository interface {
	FindAll(ctx context.Context) ([]Venue, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Venue, error)
	FindByCodigo(ctx context.Context, codigo string) (*Venue, error)
	// Upsert inserts the venue or updates the one with the same código.
	// It reports whether a new row was created.
	Upsert(ctx context.Context, venue *Venue) (bool, error)
}

// ReviewRepository defines persistence for reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	// FindByApplicant returns reviews newest first
	FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Review, error)
	// FindByApplicants groups reviews per applicant, each slice newest first
	FindByApplicants(ctx context.Context, applicantIDs []uuid.UUID) (map[uuid.UUID][]Review, error)
}

// SystemConfigRepository stores the singleton configuration
type SystemConfigRepository interface {
	// Get returns the configuration, creating the default row when missing
	Get(ctx context.Context) (*SystemConfig, error)
	Save(ctx context.Context, cfg *SystemConfig) error
}

// UploadedFileRepository stores pre-uploaded documents
type UploadedFileRepository interface {
	Create(ctx context.Context, file *UploadedFile) error
	FindByID(ctx context.Context, id uuid.UUID) (*UploadedFile, error)
}
