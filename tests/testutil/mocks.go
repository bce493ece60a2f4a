package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/identity"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/stretchr/testify/mock"
)

// MockApplicantRepository is a mock implementation of registration.ApplicantRepository
type MockApplicantRepository struct {
	mock.Mock
}

func (m *MockApplicantRepository) Create(ctx context.Context, a *registration.Applicant) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockApplicantRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Applicant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) FindByCedula(ctx context.Context, cedula int64) ([]registration.Applicant, error) {
	args := m.Called(ctx, cedula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registration.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) ExistsByIdentity(ctx context.Context, key registration.IdentityKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicantRepository) List(ctx context.Context, filter registration.ApplicantFilter) ([]registration.Applicant, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]registration.Applicant), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicantRepository) FindAll(ctx context.Context) ([]registration.Applicant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registration.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicantRepository) CountDeclarations(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockApplicantRepository) RegistrationsPerMinute(ctx context.Context, since time.Time) ([]registration.MinuteBucket, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registration.MinuteBucket), args.Error(1)
}

// MockVenueRepository is a mock implementation of registration.VenueRepository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) FindAll(ctx context.Context) ([]registration.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registration.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]registration.Venue, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]registration.Venue), args.Error(1)
}

func (m *MockVenueRepository) FindByCodigo(ctx context.Context, codigo string) (*registration.Venue, error) {
	args := m.Called(ctx, codigo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.Venue), args.Error(1)
}

func (m *MockVenueRepository) Upsert(ctx context.Context, v *registration.Venue) (bool, error) {
	args := m.Called(ctx, v)
	return args.Bool(0), args.Error(1)
}

// MockReviewRepository is a mock implementation of registration.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *registration.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]registration.Review, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registration.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByApplicants(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]registration.Review, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]registration.Review), args.Error(1)
}

// MockSystemConfigRepository is a mock implementation of registration.SystemConfigRepository
type MockSystemConfigRepository struct {
	mock.Mock
}

func (m *MockSystemConfigRepository) Get(ctx context.Context) (*registration.SystemConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.SystemConfig), args.Error(1)
}

func (m *MockSystemConfigRepository) Save(ctx context.Context, cfg *registration.SystemConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

// MockUploadedFileRepository is a mock implementation of registration.UploadedFileRepository
type MockUploadedFileRepository struct {
	mock.Mock
}

func (m *MockUploadedFileRepository) Create(ctx context.Context, f *registration.UploadedFile) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockUploadedFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.UploadedFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registration.UploadedFile), args.Error(1)
}

// MockStaffUserRepository is a mock implementation of identity.StaffUserRepository
type MockStaffUserRepository struct {
	mock.Mock
}

func (m *MockStaffUserRepository) Create(ctx context.Context, u *identity.StaffUser) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockStaffUserRepository) Update(ctx context.Context, u *identity.StaffUser) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockStaffUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.StaffUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) FindByUsername(ctx context.Context, username string) (*identity.StaffUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
