package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RegistrationMetrics counts registration traffic.
type RegistrationMetrics struct {
	registered    *Counter
	rejected      *Counter
	reviews       *Counter
	receipts      *Counter
	receiptRender *Histogram
}

// NewRegistrationMetrics creates the instruments on meter.
func NewRegistrationMetrics(meter metric.Meter) (*RegistrationMetrics, error) {
	var (
		m   RegistrationMetrics
		err error
	)
	if m.registered, err = NewCounter(meter, "sirepre.applicants.registered",
		"Applicants registered", "{applicant}"); err != nil {
		return nil, err
	}
	if m.rejected, err = NewCounter(meter, "sirepre.applicants.rejected",
		"Submissions rejected before persisting", "{submission}"); err != nil {
		return nil, err
	}
	if m.reviews, err = NewCounter(meter, "sirepre.reviews.recorded",
		"Reviews recorded by staff", "{review}"); err != nil {
		return nil, err
	}
	if m.receipts, err = NewCounter(meter, "sirepre.receipts.generated",
		"Receipt generation attempts", "{receipt}"); err != nil {
		return nil, err
	}
	if m.receiptRender, err = NewHistogram(meter, "sirepre.receipts.duration",
		"Time to lay out, render and store a receipt", "s", RenderDurationBuckets...); err != nil {
		return nil, err
	}
	return &m, nil
}

// NewNoopRegistrationMetrics returns metrics bound to the no-op meter.
func NewNoopRegistrationMetrics() *RegistrationMetrics {
	m, _ := NewRegistrationMetrics(noopMeter())
	return m
}

// Registered counts a stored applicant.
func (m *RegistrationMetrics) Registered(ctx context.Context, cargo string) {
	m.registered.Inc(ctx, AttrCargo.String(cargo))
}

// Rejected counts a submission refused with the given error code.
func (m *RegistrationMetrics) Rejected(ctx context.Context, reason string) {
	m.rejected.Inc(ctx, AttrReason.String(reason))
}

// ReviewRecorded counts a review by resulting status.
func (m *RegistrationMetrics) ReviewRecorded(ctx context.Context, status string) {
	m.reviews.Inc(ctx, AttrReviewStatus.String(status))
}

// ReceiptGenerated records one generation attempt.
func (m *RegistrationMetrics) ReceiptGenerated(ctx context.Context, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.receipts.Inc(ctx, AttrOutcome.String(outcome))
	m.receiptRender.RecordDuration(ctx, d, AttrOutcome.String(outcome))
}
