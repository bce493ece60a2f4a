package registration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatsService_Stats(t *testing.T) {
	applicants := new(testutil.MockApplicantRepository)
	reviews := new(testutil.MockReviewRepository)
	svc := NewStatsService(applicants, reviews, zap.NewNop())
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a1 := newTestApplicant(t, 1, "Ana", now)
	a1.Documents.CI = "2025/07/x.pdf"
	a2 := newTestApplicant(t, 2, "Luis", now)
	fails := registration.VerdictFails

	applicants.On("Count", mock.Anything).Return(int64(2), nil)
	applicants.On("RegistrationsPerMinute", mock.Anything, now.Add(-24*time.Hour)).Return([]registration.MinuteBucket{
		{Minute: now.Truncate(time.Minute), Count: 2},
	}, nil)
	applicants.On("CountDeclarations", mock.Anything).Return(map[string]int64{"es_boliviano": 2}, nil)
	applicants.On("FindAll", mock.Anything).Return([]registration.Applicant{a1, a2}, nil)
	reviews.On("FindByApplicants", mock.Anything, []uuid.UUID{a1.ID, a2.ID}).Return(map[uuid.UUID][]registration.Review{
		a2.ID: {review(t, a2.ID, now, fails, fails, fails)},
	}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPostulantes)
	require.Len(t, stats.PorMinuto, 1)
	assert.Equal(t, int64(2), stats.PorMinuto[0].Count)
	assert.Equal(t, int64(2), stats.Requisitos["es_boliviano"])
	assert.Equal(t, int64(1), stats.EstadosRevision[string(registration.StatusNotReviewed)])
	assert.Equal(t, int64(1), stats.EstadosRevision[string(registration.StatusWithObservations)])
	assert.Equal(t, int64(0), stats.EstadosRevision[string(registration.StatusMeetsAll)])
	assert.Equal(t, int64(1), stats.DocumentosAdjuntos[string(registration.DocumentCI)])
}
