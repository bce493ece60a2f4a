package printing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	infra "github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHTMLRenderer struct {
	req *infra.RenderRequest
	err error
}

func (r *fakeHTMLRenderer) Render(_ context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	r.req = req
	if r.err != nil {
		return nil, r.err
	}
	return &infra.RenderResult{PDFData: []byte("%PDF-1.4"), PageCount: 1, RenderDuration: time.Millisecond}, nil
}

func (r *fakeHTMLRenderer) Close() error { return nil }

func TestRosterService_Generate(t *testing.T) {
	ctx := context.Background()
	applicants := new(testutil.MockApplicantRepository)
	venues := new(testutil.MockVenueRepository)
	reviews := new(testutil.MockReviewRepository)
	renderer := &fakeHTMLRenderer{}
	svc := NewRosterService(applicants, venues, reviews, renderer, zap.NewNop())

	venue, err := registration.NewVenue("LP-010", "Unidad Educativa Bolívar")
	require.NoError(t, err)
	first := newApplicant(t, 5550001, &venue.ID)
	second := newApplicant(t, 5550002, nil)
	second.RecintoSegundaOpcionID = &venue.ID

	venues.On("FindByID", mock.Anything, venue.ID).Return(venue, nil)
	applicants.On("List", mock.Anything, mock.MatchedBy(func(f registration.ApplicantFilter) bool {
		return f.VenueID != nil && *f.VenueID == venue.ID
	})).Return([]registration.Applicant{*first, *second}, int64(2), nil)

	review, err := registration.NewReview(registration.ReviewInput{
		ApplicantID:           first.ID,
		ExperienciaEspecifica: registration.VerdictMeets,
		NoMilitancia:          registration.VerdictMeets,
		BachillerOSuperior:    registration.VerdictMeets,
	})
	require.NoError(t, err)
	reviews.On("FindByApplicants", mock.Anything, []uuid.UUID{first.ID, second.ID}).
		Return(map[uuid.UUID][]registration.Review{first.ID: {*review}}, nil)

	result, err := svc.Generate(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "nomina_LP-010.pdf", result.Filename)
	assert.Equal(t, 2, result.Rows)

	require.NotNil(t, renderer.req)
	assert.Contains(t, renderer.req.HTML, "Unidad Educativa Bolívar")
	assert.Contains(t, renderer.req.HTML, "5550001")
	assert.Contains(t, renderer.req.HTML, "CUMPLE TODO")
	assert.Contains(t, renderer.req.HTML, "Sin revisión")
	assert.Contains(t, renderer.req.HTML, "1ra")
	assert.Contains(t, renderer.req.HTML, "2da")
}

func TestRosterService_Unavailable(t *testing.T) {
	ctx := context.Background()
	venueID := testutil.NewTestUUID("venue")

	t.Run("no renderer", func(t *testing.T) {
		svc := NewRosterService(nil, nil, nil, nil, zap.NewNop())
		_, err := svc.Generate(ctx, venueID)
		assert.ErrorIs(t, err, ErrRosterUnavailable)
	})

	t.Run("browser missing", func(t *testing.T) {
		applicants := new(testutil.MockApplicantRepository)
		venues := new(testutil.MockVenueRepository)
		reviews := new(testutil.MockReviewRepository)
		renderer := &fakeHTMLRenderer{err: infra.NewRenderError(infra.ErrCodeBrowserUnavailable, "no chrome", nil)}
		svc := NewRosterService(applicants, venues, reviews, renderer, zap.NewNop())

		venue, err := registration.NewVenue("LP-011", "Escuela")
		require.NoError(t, err)
		venues.On("FindByID", mock.Anything, venueID).Return(venue, nil)
		applicants.On("List", mock.Anything, mock.Anything).Return([]registration.Applicant{}, int64(0), nil)
		reviews.On("FindByApplicants", mock.Anything, []uuid.UUID{}).Return(map[uuid.UUID][]registration.Review{}, nil)

		_, err = svc.Generate(ctx, venueID)
		assert.ErrorIs(t, err, ErrRosterUnavailable)
	})
}
