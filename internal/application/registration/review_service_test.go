package registration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewFixture struct {
	svc        *ReviewService
	applicants *testutil.MockApplicantRepository
	venues     *testutil.MockVenueRepository
	reviews    *testutil.MockReviewRepository
	configs    *testutil.MockSystemConfigRepository
	publisher  *testutil.RecordingPublisher
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		applicants: new(testutil.MockApplicantRepository),
		venues:     new(testutil.MockVenueRepository),
		reviews:    new(testutil.MockReviewRepository),
		configs:    new(testutil.MockSystemConfigRepository),
		publisher:  testutil.NewRecordingPublisher(nil),
	}
	f.svc = NewReviewService(f.applicants, f.venues, f.reviews, f.configs, f.publisher, nil, zap.NewNop())
	return f
}

func review(t *testing.T, applicantID uuid.UUID, at time.Time, verdicts ...registration.Verdict) registration.Review {
	t.Helper()
	in := registration.ReviewInput{ApplicantID: applicantID, ReviewerName: "revisor"}
	if len(verdicts) == 3 {
		in.ExperienciaEspecifica, in.NoMilitancia, in.BachillerOSuperior = verdicts[0], verdicts[1], verdicts[2]
	}
	r, err := registration.NewReview(in)
	require.NoError(t, err)
	r.ReviewedAt = at
	return *r
}

func TestReviewService_List(t *testing.T) {
	f := newReviewFixture()
	now := time.Now()
	a1 := newTestApplicant(t, 111, "Ana", now)
	a2 := newTestApplicant(t, 222, "Luis", now.Add(-time.Hour))

	f.applicants.On("List", mock.Anything, mock.MatchedBy(func(filter registration.ApplicantFilter) bool {
		return filter.Page == 1 && filter.PageSize == 10 && filter.Search == "ana"
	})).Return([]registration.Applicant{a1, a2}, int64(12), nil)
	meets := registration.VerdictMeets
	f.reviews.On("FindByApplicants", mock.Anything, []uuid.UUID{a1.ID, a2.ID}).Return(map[uuid.UUID][]registration.Review{
		a1.ID: {
			review(t, a1.ID, now.Add(-2*time.Hour)),
			review(t, a1.ID, now, meets, meets, meets),
		},
	}, nil)

	page, err := f.svc.List(context.Background(), ListInput{Search: "ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, string(registration.StatusMeetsAll), page.Items[0].EstadoRevision)
	assert.Equal(t, 2, page.Items[0].TotalRevisiones)
	assert.Equal(t, string(registration.StatusNotReviewed), page.Items[1].EstadoRevision)
}

func TestReviewService_ListClampsLimit(t *testing.T) {
	f := newReviewFixture()
	f.applicants.On("List", mock.Anything, mock.MatchedBy(func(filter registration.ApplicantFilter) bool {
		return filter.PageSize == maxListLimit && filter.Page == 3
	})).Return([]registration.Applicant{}, int64(0), nil)
	f.reviews.On("FindByApplicants", mock.Anything, []uuid.UUID{}).Return(map[uuid.UUID][]registration.Review{}, nil)

	page, err := f.svc.List(context.Background(), ListInput{Page: 3, Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestReviewService_Get(t *testing.T) {
	f := newReviewFixture()
	now := time.Now()
	a := newTestApplicant(t, 333, "Rosa", now)
	venue, err := registration.NewVenue("LP-1", "Colegio")
	require.NoError(t, err)
	a.RecintoPrimeraOpcionID = &venue.ID
	gone := testutil.NewTestUUID("gone")
	a.RecintoSegundaOpcionID = &gone

	f.applicants.On("FindByID", mock.Anything, a.ID).Return(&a, nil)
	older := review(t, a.ID, now.Add(-time.Hour))
	newer := review(t, a.ID, now)
	f.reviews.On("FindByApplicant", mock.Anything, a.ID).Return([]registration.Review{older, newer}, nil)
	f.venues.On("FindByID", mock.Anything, venue.ID).Return(venue, nil)
	f.venues.On("FindByID", mock.Anything, gone).Return(nil, shared.ErrNotFound)

	detail, err := f.svc.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rosa Mamani Condori", detail.NombreCompleto)
	require.Len(t, detail.Revisiones, 2)
	assert.Equal(t, newer.ID, detail.Revisiones[0].ID, "newest review first")
	require.NotNil(t, detail.RecintoPrimeraOpcion)
	assert.Equal(t, "Colegio", detail.RecintoPrimeraOpcion.Nombre)
	assert.Nil(t, detail.RecintoSegundaOpcion)
	assert.True(t, detail.Requisitos["es_boliviano"])
	assert.Equal(t, "1990-02-03", detail.FechaNacimiento)
}

func TestReviewService_RecordReview(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()
	a := newTestApplicant(t, 444, "Eva", time.Now())
	reviewer := testutil.NewTestUUID("reviewer")
	f.applicants.On("FindByID", mock.Anything, a.ID).Return(&a, nil)
	f.reviews.On("Create", mock.Anything, mock.AnythingOfType("*registration.Review")).Return(nil)

	dto, err := f.svc.RecordReview(ctx, RecordReviewInput{
		ApplicantID:                 a.ID,
		ReviewerID:                  &reviewer,
		ReviewerName:                "Ana Quispe",
		CumpleExperienciaEspecifica: "CUMPLE",
		CumpleNoMilitancia:          "NO_CUMPLE",
		ObservacionesNoMilitancia:   "Registrado en partido",
	})
	require.NoError(t, err)
	assert.Equal(t, "NO_REVISADO", dto.CumpleBachillerOSuperior)
	assert.Equal(t, string(registration.StatusWithObservations), dto.Estado)
	assert.Equal(t, &reviewer, dto.RevisadoPorID)
	assert.Equal(t, []string{registration.EventTypeReviewRecorded}, f.publisher.EventTypes())

	_, err = f.svc.RecordReview(ctx, RecordReviewInput{ApplicantID: a.ID, CumpleNoMilitancia: "TAL_VEZ"})
	assertCode(t, err, "INVALID_VERDICT")

	missing := testutil.NewTestUUID("missing")
	f.applicants.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	_, err = f.svc.RecordReview(ctx, RecordReviewInput{ApplicantID: missing})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReviewService_Config(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture()
	cfg := registration.DefaultSystemConfig()
	f.configs.On("Get", mock.Anything).Return(cfg, nil)
	f.configs.On("Save", mock.Anything, cfg).Return(nil)

	got, err := f.svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.True(t, got.SistemaActivo)

	updated, err := f.svc.UpdateConfig(ctx, UpdateConfigInput{SistemaActivo: false, Mensaje: "  "})
	require.NoError(t, err)
	assert.False(t, updated.SistemaActivo)
	assert.Equal(t, registration.DefaultClosureMessage, updated.Mensaje)
	f.configs.AssertExpectations(t)
}
