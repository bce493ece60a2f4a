// Package registration holds the use cases of the applicant registration
// context: public submission, staff review, exports and venue management.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	printingapp "github.com/sereci/sirepre/internal/application/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/storage"
	"github.com/sereci/sirepre/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReceiptGenerator writes the receipt of a freshly stored applicant.
type ReceiptGenerator interface {
	GenerateFor(ctx context.Context, applicant *registration.Applicant) (*printingapp.ReceiptResult, error)
}

// SubmissionService registers applicants from the public form.
type SubmissionService struct {
	applicants registration.ApplicantRepository
	uploads    registration.UploadedFileRepository
	configs    registration.SystemConfigRepository
	documents  storage.DocumentStorage
	receipts   ReceiptGenerator
	publisher  shared.EventPublisher
	metrics    *telemetry.RegistrationMetrics
	logger     *zap.Logger
}

// NewSubmissionService creates a new SubmissionService. metrics may be nil.
func NewSubmissionService(
	applicants registration.ApplicantRepository,
	uploads registration.UploadedFileRepository,
	configs registration.SystemConfigRepository,
	documents storage.DocumentStorage,
	receipts ReceiptGenerator,
	publisher shared.EventPublisher,
	metrics *telemetry.RegistrationMetrics,
	logger *zap.Logger,
) *SubmissionService {
	if metrics == nil {
		metrics = telemetry.NewNoopRegistrationMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		applicants: applicants,
		uploads:    uploads,
		configs:    configs,
		documents:  documents,
		receipts:   receipts,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Submit registers one applicant. The receipt is generated exactly once;
// a receipt failure is logged and leaves the receipt fields nil.
func (s *SubmissionService) Submit(ctx context.Context, input SubmitInput) (result *SubmitResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "registration", "submit")
	defer func() {
		if err != nil {
			telemetry.RecordError(span, err)
			if de, ok := shared.AsDomainError(err); ok {
				s.metrics.Rejected(ctx, de.Code)
			} else {
				s.metrics.Rejected(ctx, "INTERNAL")
			}
		}
		span.End()
	}()

	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.AcceptsSubmissions(); err != nil {
		s.logger.Info("submission refused, registration closed")
		return nil, err
	}

	form, err := registration.DecodeApplicantForm(input.Values)
	if err != nil {
		return nil, err
	}
	applicant, err := registration.NewApplicant(form.Input)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCedula, applicant.CedulaIdentidad)

	exists, err := s.applicants.ExistsByIdentity(ctx, applicant.Key())
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("duplicate submission",
			zap.Int64("cedula", applicant.CedulaIdentidad),
			zap.String("complemento", applicant.Complemento))
		return nil, registration.ErrDuplicateApplicant
	}

	stored, err := s.attachDocuments(ctx, applicant, form.DocumentRefs, input.Files)
	if err != nil {
		s.discard(ctx, stored)
		return nil, err
	}

	if err := s.applicants.Create(ctx, applicant); err != nil {
		s.discard(ctx, stored)
		return nil, err
	}
	s.metrics.Registered(ctx, applicant.CargoPostulacion)
	telemetry.SetAttributes(span, telemetry.SpanAttrApplicantID, applicant.ID.String())
	s.logger.Info("applicant registered",
		zap.String("applicant_id", applicant.ID.String()),
		zap.Int64("cedula", applicant.CedulaIdentidad),
		zap.String("cargo", applicant.CargoPostulacion))

	s.publish(ctx, applicant)

	result = &SubmitResult{ID: applicant.ID, NombreCompleto: applicant.FullName()}
	if receipt, err := s.receipts.GenerateFor(ctx, applicant); err != nil {
		s.logger.Error("receipt not generated, continuing without it",
			zap.String("applicant_id", applicant.ID.String()),
			zap.Error(err))
	} else {
		result.PDFFilename = &receipt.Filename
		result.PDFURL = &receipt.URL
	}
	return result, nil
}

// attachDocuments stores direct file parts and resolves uploaded-file
// references. It returns the keys it stored so the caller can discard them
// if the applicant is not persisted.
func (s *SubmissionService) attachDocuments(
	ctx context.Context,
	applicant *registration.Applicant,
	refs map[registration.DocumentKind]string,
	files map[string]DocumentUpload,
) ([]string, error) {
	var stored []string
	direct := make(map[registration.DocumentKind]bool)

	for key, file := range files {
		kind, ok := registration.DocumentKindForKey(key)
		if !ok {
			continue
		}
		if !registration.IsAllowedDocument(file.Filename) {
			return stored, shared.NewDomainError("INVALID_FILE_TYPE", "Tipo de archivo no permitido: "+file.Filename)
		}
		objectKey := storage.NewDocumentKey(file.Filename, time.Now())
		if err := s.documents.Put(ctx, objectKey, file.Body, file.Size, file.ContentType); err != nil {
			return stored, err
		}
		stored = append(stored, objectKey)
		applicant.Documents.Set(kind, objectKey)
		direct[kind] = true
	}

	for kind, ref := range refs {
		if direct[kind] {
			continue
		}
		file, err := s.resolveUpload(ctx, ref)
		if err != nil {
			return stored, err
		}
		if file == nil {
			s.logger.Warn("uploaded document not found, left unattached",
				zap.String("document", string(kind)),
				zap.String("ref", ref))
			continue
		}
		applicant.Documents.Set(kind, file.StorageKey)
	}
	return stored, nil
}

// resolveUpload returns nil without error when ref names no uploaded file.
func (s *SubmissionService) resolveUpload(ctx context.Context, ref string) (*registration.UploadedFile, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, nil
	}
	file, err := s.uploads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

func (s *SubmissionService) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.documents.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to remove orphaned document", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *SubmissionService) publish(ctx context.Context, applicant *registration.Applicant) {
	events := applicant.GetDomainEvents()
	applicant.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish registration events",
			zap.String("applicant_id", applicant.ID.String()),
			zap.Error(err))
	}
}

// Exists checks whether (ci, complemento) is already registered. The
// complemento values "null" and "" both mean none.
func (s *SubmissionService) Exists(ctx context.Context, ci int64, complemento string) (*ExistsResult, error) {
	if ci <= 0 {
		return nil, registration.ErrMissingCedula
	}
	exists, err := s.applicants.ExistsByIdentity(ctx, registration.IdentityKey{
		CedulaIdentidad: ci,
		Complemento:     registration.NormalizeComplemento(complemento),
	})
	if err != nil {
		return nil, err
	}
	if exists {
		return &ExistsResult{Existe: true, Mensaje: registration.ErrDuplicateApplicant.Message}, nil
	}
	return &ExistsResult{Existe: false, Mensaje: "Cédula de identidad disponible"}, nil
}

// Status returns the public state of the registration switch.
func (s *SubmissionService) Status(ctx context.Context) (*StatusResult, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusResult{SistemaActivo: cfg.SistemaActivo, Mensaje: cfg.Mensaje}, nil
}
