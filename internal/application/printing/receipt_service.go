// Package printing generates the applicant receipt and the venue roster.
package printing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DocumentRenderer turns a laid out receipt into PDF bytes.
type DocumentRenderer interface {
	Render(doc *printing.Document) ([]byte, error)
}

// QREncoder writes a verification code image the caller must Remove.
type QREncoder interface {
	Encode(payload printing.QRPayload, ci int64) (string, error)
	Remove(path string)
}

// ReceiptStore keeps receipts at paths derived from the cédula.
type ReceiptStore interface {
	Save(ctx context.Context, ci int64, data []byte) (string, error)
	Open(ci int64) (*os.File, error)
	URL(ci int64) string
	LogoPath() string
}

// ReceiptService generates applicant receipts.
type ReceiptService struct {
	applicants registration.ApplicantRepository
	venues     registration.VenueRepository
	measurer   printing.Measurer
	renderer   DocumentRenderer
	qr         QREncoder
	store      ReceiptStore
	style      printing.ReceiptStyle
	metrics    *telemetry.RegistrationMetrics
	logger     *zap.Logger
	now        func() time.Time
}

// ReceiptServiceOption configures a ReceiptService.
type ReceiptServiceOption func(*ReceiptService)

// WithReceiptMetrics records generation counts and durations.
func WithReceiptMetrics(m *telemetry.RegistrationMetrics) ReceiptServiceOption {
	return func(s *ReceiptService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithReceiptStyle overrides the default receipt style.
func WithReceiptStyle(style printing.ReceiptStyle) ReceiptServiceOption {
	return func(s *ReceiptService) { s.style = style }
}

// WithClock overrides the issue time source.
func WithClock(now func() time.Time) ReceiptServiceOption {
	return func(s *ReceiptService) { s.now = now }
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	applicants registration.ApplicantRepository,
	venues registration.VenueRepository,
	measurer printing.Measurer,
	renderer DocumentRenderer,
	qr QREncoder,
	store ReceiptStore,
	logger *zap.Logger,
	opts ...ReceiptServiceOption,
) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReceiptService{
		applicants: applicants,
		venues:     venues,
		measurer:   measurer,
		renderer:   renderer,
		qr:         qr,
		store:      store,
		style:      printing.DefaultReceiptStyle(),
		metrics:    telemetry.NewNoopRegistrationMetrics(),
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate loads the applicant and writes its receipt.
func (s *ReceiptService) Generate(ctx context.Context, applicantID uuid.UUID) (*ReceiptResult, error) {
	applicant, err := s.applicants.FindByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return s.GenerateFor(ctx, applicant)
}

// GenerateFor writes the receipt of an applicant already in hand. The
// temporary QR image is removed on every return path.
func (s *ReceiptService) GenerateFor(ctx context.Context, applicant *registration.Applicant) (result *ReceiptResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receipt", "generate",
		telemetry.SpanAttrApplicantID, applicant.ID.String(),
		telemetry.SpanAttrCedula, applicant.CedulaIdentidad)
	start := time.Now()
	defer func() {
		s.metrics.ReceiptGenerated(ctx, time.Since(start), err)
		if err != nil {
			telemetry.RecordError(span, err)
			s.logger.Error("receipt generation failed",
				zap.String("applicant_id", applicant.ID.String()),
				zap.Int64("cedula", applicant.CedulaIdentidad),
				zap.Error(err))
		}
		span.End()
	}()

	venue := s.firstChoice(ctx, applicant)
	snapshot := printing.NewReceiptSnapshot(applicant, venue, s.now())

	qrPath, err := s.qr.Encode(printing.NewQRPayload(snapshot), applicant.CedulaIdentidad)
	if err != nil {
		return nil, err
	}
	defer s.qr.Remove(qrPath)

	doc, err := printing.LayoutReceipt(snapshot, printing.ReceiptAssets{
		LogoPath:    s.store.LogoPath(),
		QRImagePath: qrPath,
	}, s.measurer, s.style)
	if err != nil {
		return nil, fmt.Errorf("laying out receipt: %w", err)
	}

	data, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}
	filename, err := s.store.Save(ctx, applicant.CedulaIdentidad, data)
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrPages, doc.PageCount())
	s.logger.Info("receipt generated",
		zap.String("applicant_id", applicant.ID.String()),
		zap.String("filename", filename),
		zap.Int("pages", doc.PageCount()),
		zap.Duration("elapsed", time.Since(start)))

	return &ReceiptResult{
		Filename: filename,
		URL:      s.store.URL(applicant.CedulaIdentidad),
		Pages:    doc.PageCount(),
	}, nil
}

// firstChoice resolves the first-choice venue. A lookup failure only
// leaves the venue block empty.
func (s *ReceiptService) firstChoice(ctx context.Context, a *registration.Applicant) *registration.Venue {
	if a.RecintoPrimeraOpcionID == nil {
		return nil
	}
	venue, err := s.venues.FindByID(ctx, *a.RecintoPrimeraOpcionID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("venue lookup failed",
				zap.String("venue_id", a.RecintoPrimeraOpcionID.String()),
				zap.Error(err))
		}
		return nil
	}
	return venue
}

// Open returns the stored receipt of ci for streaming.
func (s *ReceiptService) Open(ci int64) (*ReceiptFile, error) {
	if ci <= 0 {
		return nil, registration.ErrMissingCedula
	}
	f, err := s.store.Open(ci)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat receipt: %w", err)
	}
	return &ReceiptFile{
		Filename: printing.ReceiptFilename(ci),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Body:     f,
	}, nil
}
