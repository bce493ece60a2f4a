package registration

import (
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// Verdict is the outcome of checking one requirement.
type Verdict string

const (
	VerdictNotReviewed Verdict = "NO_REVISADO"
	VerdictMeets       Verdict = "CUMPLE"
	VerdictFails       Verdict = "NO_CUMPLE"
)

// IsValid checks if the verdict is a known value
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictNotReviewed, VerdictMeets, VerdictFails:
		return true
	}
	return false
}

// DisplayName returns the verdict as shown in exports.
func (v Verdict) DisplayName() string {
	switch v {
	case VerdictMeets:
		return "CUMPLE"
	case VerdictFails:
		return "NO CUMPLE"
	default:
		return "NO REVISADO"
	}
}

// ReviewStatus summarises the latest review of an applicant.
type ReviewStatus string

const (
	StatusNotReviewed      ReviewStatus = "Sin revisión"
	StatusMeetsAll         ReviewStatus = "CUMPLE TODO"
	StatusWithObservations ReviewStatus = "CON OBSERVACIONES"
)

// Review is one staff compliance check of an applicant.
type Review struct {
	shared.BaseEntity
	ApplicantID  uuid.UUID
	ReviewerID   *uuid.UUID
	ReviewerName string
	ReviewedAt   time.Time

	ExperienciaEspecifica Verdict
	NoMilitancia          Verdict
	BachillerOSuperior    Verdict

	ObservacionesExperienciaEspecifica string
	ObservacionesNoMilitancia          string
	ObservacionesBachillerOSuperior    string
}

// ReviewInput carries the verdicts of a new review.
type ReviewInput struct {
	ApplicantID                        uuid.UUID
	ReviewerID                         *uuid.UUID
	ReviewerName                       string
	ExperienciaEspecifica              Verdict
	NoMilitancia                       Verdict
	BachillerOSuperior                 Verdict
	ObservacionesExperienciaEspecifica string
	ObservacionesNoMilitancia          string
	ObservacionesBachillerOSuperior    string
}

// NewReview validates the verdicts and creates a review stamped now.
// Empty verdicts default to NO_REVISADO.
func NewReview(input ReviewInput) (*Review, error) {
	if input.ApplicantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPLICANT", "Postulante requerido")
	}
	verdicts := []*Verdict{&input.ExperienciaEspecifica, &input.NoMilitancia, &input.BachillerOSuperior}
	for _, v := range verdicts {
		if *v == "" {
			*v = VerdictNotReviewed
		}
		if !v.IsValid() {
			return nil, shared.NewDomainError("INVALID_VERDICT", "Valor de revisión inválido: "+string(*v))
		}
	}

	base := shared.NewBaseEntity()
	return &Review{
		BaseEntity:                         base,
		ApplicantID:                        input.ApplicantID,
		ReviewerID:                         input.ReviewerID,
		ReviewerName:                       input.ReviewerName,
		ReviewedAt:                         base.CreatedAt,
		ExperienciaEspecifica:              input.ExperienciaEspecifica,
		NoMilitancia:                       input.NoMilitancia,
		BachillerOSuperior:                 input.BachillerOSuperior,
		ObservacionesExperienciaEspecifica: input.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          input.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    input.ObservacionesBachillerOSuperior,
	}, nil
}

// Status is CUMPLE TODO only when all three verdicts are CUMPLE.
func (r *Review) Status() ReviewStatus {
	if r.ExperienciaEspecifica == VerdictMeets &&
		r.NoMilitancia == VerdictMeets &&
		r.BachillerOSuperior == VerdictMeets {
		return StatusMeetsAll
	}
	return StatusWithObservations
}

// LatestStatus returns the status of the most recent review in reviews, or
// "Sin revisión" when there is none. reviews need not be sorted.
func LatestStatus(reviews []Review) ReviewStatus {
	latest := LatestReview(reviews)
	if latest == nil {
		return StatusNotReviewed
	}
	return latest.Status()
}

// LatestReview returns the review with the newest ReviewedAt, or nil.
func LatestReview(reviews []Review) *Review {
	var latest *Review
	for i := range reviews {
		if latest == nil || reviews[i].ReviewedAt.After(latest.ReviewedAt) {
			latest = &reviews[i]
		}
	}
	return latest
}
