package event

import (
	"context"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per registration event.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates the handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle implements shared.EventHandler.
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("applicant_id", event.AggregateID().String()),
	}
	switch e := event.(type) {
	case *registration.ApplicantRegisteredEvent:
		fields = append(fields,
			zap.Int64("cedula", e.CedulaIdentidad),
			zap.String("cargo", e.CargoPostulacion))
	case *registration.ReviewRecordedEvent:
		fields = append(fields,
			zap.String("reviewed_by", e.ReviewedBy),
			zap.String("status", string(e.Status)))
	}
	h.logger.Info("registration event", fields...)
	return nil
}

// EventTypes implements shared.EventHandler.
func (h *AuditLogHandler) EventTypes() []string {
	return []string{registration.EventTypeApplicantRegistered, registration.EventTypeReviewRecorded}
}
