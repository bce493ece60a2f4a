package registration

import (
	"context"
	"time"

	"github.com/sereci/sirepre/internal/domain/registration"
	"go.uber.org/zap"
)

// statsWindow is how far back registrations per minute are reported.
const statsWindow = 24 * time.Hour

// StatsService computes the staff dashboard figures.
type StatsService struct {
	applicants registration.ApplicantRepository
	reviews    registration.ReviewRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(applicants registration.ApplicantRepository, reviews registration.ReviewRepository, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{applicants: applicants, reviews: reviews, logger: logger, now: time.Now}
}

// Stats returns totals, the per-minute series of the last 24 hours, the
// count of each declaration and the count of each latest review status.
func (s *StatsService) Stats(ctx context.Context) (*StatsResult, error) {
	now := s.now()

	total, err := s.applicants.Count(ctx)
	if err != nil {
		return nil, err
	}
	perMinute, err := s.applicants.RegistrationsPerMinute(ctx, now.Add(-statsWindow))
	if err != nil {
		return nil, err
	}
	declarations, err := s.applicants.CountDeclarations(ctx)
	if err != nil {
		return nil, err
	}

	applicants, err := s.applicants.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByApplicants(ctx, applicantIDs(applicants))
	if err != nil {
		return nil, err
	}

	statuses := map[string]int64{
		string(registration.StatusNotReviewed):      0,
		string(registration.StatusMeetsAll):         0,
		string(registration.StatusWithObservations): 0,
	}
	documents := make(map[string]int64)
	for _, kind := range registration.AllDocumentKinds() {
		documents[string(kind)] = 0
	}
	for i := range applicants {
		statuses[string(registration.LatestStatus(reviews[applicants[i].ID]))]++
		for _, kind := range registration.AllDocumentKinds() {
			if applicants[i].Documents.Attached(kind) {
				documents[string(kind)]++
			}
		}
	}

	if perMinute == nil {
		perMinute = []registration.MinuteBucket{}
	}
	return &StatsResult{
		TotalPostulantes:   total,
		PorMinuto:          perMinute,
		Requisitos:         declarations,
		EstadosRevision:    statuses,
		DocumentosAdjuntos: documents,
		GeneradoEn:         now,
	}, nil
}
