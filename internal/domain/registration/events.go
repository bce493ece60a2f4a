package registration

import (
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeApplicant = "Applicant"
)

// Event types
const (
	EventTypeApplicantRegistered = "ApplicantRegistered"
	EventTypeReviewRecorded      = "ReviewRecorded"
)

// ApplicantRegisteredEvent is raised when a new applicant is created.
type ApplicantRegisteredEvent struct {
	shared.BaseDomainEvent
	CedulaIdentidad  int64      `json:"cedula_identidad"`
	Complemento      string     `json:"complemento,omitempty"`
	NombreCompleto   string     `json:"nombre_completo"`
	CargoPostulacion string     `json:"cargo_postulacion"`
	RecintoPrimera   *uuid.UUID `json:"recinto_primera_opcion,omitempty"`
}

// NewApplicantRegisteredEvent creates the event from an unsaved applicant.
func NewApplicantRegisteredEvent(a *Applicant) *ApplicantRegisteredEvent {
	return &ApplicantRegisteredEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeApplicantRegistered, AggregateTypeApplicant, a.ID),
		CedulaIdentidad:  a.CedulaIdentidad,
		Complemento:      a.Complemento,
		NombreCompleto:   a.FullName(),
		CargoPostulacion: a.CargoPostulacion,
		RecintoPrimera:   a.RecintoPrimeraOpcionID,
	}
}

// ReviewRecordedEvent is raised when staff record a review.
type ReviewRecordedEvent struct {
	shared.BaseDomainEvent
	ReviewID   uuid.UUID    `json:"review_id"`
	ReviewedBy string       `json:"reviewed_by"`
	ReviewedAt time.Time    `json:"reviewed_at"`
	Status     ReviewStatus `json:"status"`
}

// NewReviewRecordedEvent creates the event for r.
func NewReviewRecordedEvent(r *Review) *ReviewRecordedEvent {
	return &ReviewRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewRecorded, AggregateTypeApplicant, r.ApplicantID),
		ReviewID:        r.ID,
		ReviewedBy:      r.ReviewerName,
		ReviewedAt:      r.ReviewedAt,
		Status:          r.Status(),
	}
}
