package registration

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ReviewService is the staff side of the registration context.
type ReviewService struct {
	applicants registration.ApplicantRepository
	venues     registration.VenueRepository
	reviews    registration.ReviewRepository
	configs    registration.SystemConfigRepository
	publisher  shared.EventPublisher
	metrics    *telemetry.RegistrationMetrics
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	applicants registration.ApplicantRepository,
	venues registration.VenueRepository,
	reviews registration.ReviewRepository,
	configs registration.SystemConfigRepository,
	publisher shared.EventPublisher,
	metrics *telemetry.RegistrationMetrics,
	logger *zap.Logger,
) *ReviewService {
	if metrics == nil {
		metrics = telemetry.NewNoopRegistrationMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		applicants: applicants,
		venues:     venues,
		reviews:    reviews,
		configs:    configs,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// List returns one page of applicants, newest first, with their latest
// review status.
func (s *ReviewService) List(ctx context.Context, input ListInput) (*shared.Paginated[ApplicantSummary], error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := registration.ApplicantFilter{Filter: shared.Filter{
		Page:     page,
		PageSize: limit,
		Search:   input.Search,
	}}
	applicants, total, err := s.applicants.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.FindByApplicants(ctx, applicantIDs(applicants))
	if err != nil {
		return nil, err
	}

	items := make([]ApplicantSummary, len(applicants))
	for i := range applicants {
		items[i] = toSummary(&applicants[i], reviews[applicants[i].ID])
	}
	result := shared.NewPaginated(items, total, page, limit)
	return &result, nil
}

// Get returns one applicant with venues and reviews, newest review first.
func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*ApplicantDetail, error) {
	a, err := s.applicants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByApplicant(ctx, id)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].ReviewedAt.After(reviews[j].ReviewedAt)
	})

	detail := &ApplicantDetail{
		ApplicantSummary:         toSummary(a, reviews),
		Nombre:                   a.Nombre,
		ApellidoPaterno:          a.ApellidoPaterno,
		ApellidoMaterno:          a.ApellidoMaterno,
		FechaNacimiento:          a.FechaNacimiento.Format("2006-01-02"),
		GradoInstruccion:         a.GradoInstruccion,
		Carrera:                  a.Carrera,
		Ciudad:                   a.Ciudad,
		Zona:                     a.Zona,
		CalleAvenida:             a.CalleAvenida,
		NumeroDomicilio:          a.NumeroDomicilio,
		Telefono:                 a.Telefono,
		ExperienciaEspecifica:    a.ExperienciaEspecifica,
		ExperienciaGeneral:       a.ExperienciaGeneral,
		ExperienciaProcesosRural: a.ExperienciaProcesosRural,
		Observacion:              a.Observacion,
		Requisitos:               make(map[string]bool),
		Documentos:               make(map[string]string),
		Revisiones:               make([]ReviewDTO, len(reviews)),
	}
	for _, item := range a.Declarations.Items() {
		detail.Requisitos[item.Field] = item.Value
	}
	for _, kind := range registration.AllDocumentKinds() {
		if key := a.Documents.Get(kind); key != "" {
			detail.Documentos[string(kind)] = key
		}
	}
	for i := range reviews {
		detail.Revisiones[i] = toReviewDTO(&reviews[i])
	}
	detail.RecintoPrimeraOpcion = s.venueDTO(ctx, a.RecintoPrimeraOpcionID)
	detail.RecintoSegundaOpcion = s.venueDTO(ctx, a.RecintoSegundaOpcionID)
	return detail, nil
}

func (s *ReviewService) venueDTO(ctx context.Context, id *uuid.UUID) *VenueDTO {
	if id == nil {
		return nil
	}
	v, err := s.venues.FindByID(ctx, *id)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("venue lookup failed", zap.String("venue_id", id.String()), zap.Error(err))
		}
		return nil
	}
	dto := toVenueDTO(v)
	return &dto
}

// RecordReview stores a new review of an applicant and publishes
// ReviewRecorded.
func (s *ReviewService) RecordReview(ctx context.Context, input RecordReviewInput) (*ReviewDTO, error) {
	if _, err := s.applicants.FindByID(ctx, input.ApplicantID); err != nil {
		return nil, err
	}

	review, err := registration.NewReview(registration.ReviewInput{
		ApplicantID:                        input.ApplicantID,
		ReviewerID:                         input.ReviewerID,
		ReviewerName:                       input.ReviewerName,
		ExperienciaEspecifica:              registration.Verdict(input.CumpleExperienciaEspecifica),
		NoMilitancia:                       registration.Verdict(input.CumpleNoMilitancia),
		BachillerOSuperior:                 registration.Verdict(input.CumpleBachillerOSuperior),
		ObservacionesExperienciaEspecifica: input.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          input.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    input.ObservacionesBachillerOSuperior,
	})
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	status := review.Status()
	s.metrics.ReviewRecorded(ctx, string(status))
	s.logger.Info("review recorded",
		zap.String("applicant_id", input.ApplicantID.String()),
		zap.String("reviewer", review.ReviewerName),
		zap.String("status", string(status)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, registration.NewReviewRecordedEvent(review)); err != nil {
			s.logger.Warn("failed to publish review event", zap.Error(err))
		}
	}

	dto := toReviewDTO(review)
	return &dto, nil
}

// GetConfig returns the registration switch.
func (s *ReviewService) GetConfig(ctx context.Context) (*StatusResult, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusResult{SistemaActivo: cfg.SistemaActivo, Mensaje: cfg.Mensaje}, nil
}

// UpdateConfig opens or closes registration.
func (s *ReviewService) UpdateConfig(ctx context.Context, input UpdateConfigInput) (*StatusResult, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Update(input.SistemaActivo, input.Mensaje)
	if err := s.configs.Save(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("system configuration updated",
		zap.Bool("sistema_activo", cfg.SistemaActivo),
		zap.String("mensaje", cfg.Mensaje))
	return &StatusResult{SistemaActivo: cfg.SistemaActivo, Mensaje: cfg.Mensaje}, nil
}

func applicantIDs(applicants []registration.Applicant) []uuid.UUID {
	ids := make([]uuid.UUID, len(applicants))
	for i := range applicants {
		ids[i] = applicants[i].ID
	}
	return ids
}
