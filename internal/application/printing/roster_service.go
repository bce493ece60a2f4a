package printing

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	infra "github.com/sereci/sirepre/internal/infrastructure/printing"
	"github.com/sereci/sirepre/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// maxRosterRows bounds one roster; a venue never has more applicants.
const maxRosterRows = 5000

// ErrRosterUnavailable is returned when no HTML renderer is configured or
// the browser cannot be started.
var ErrRosterUnavailable = shared.NewDomainError("SERVICE_UNAVAILABLE",
	"La generación de nóminas no está disponible")

// RosterService prints the applicants of a venue through headless Chrome.
type RosterService struct {
	applicants registration.ApplicantRepository
	venues     registration.VenueRepository
	reviews    registration.ReviewRepository
	renderer   infra.HTMLRenderer
	logger     *zap.Logger
	now        func() time.Time
}

// NewRosterService creates a new RosterService. renderer may be nil.
func NewRosterService(
	applicants registration.ApplicantRepository,
	venues registration.VenueRepository,
	reviews registration.ReviewRepository,
	renderer infra.HTMLRenderer,
	logger *zap.Logger,
) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		applicants: applicants,
		venues:     venues,
		reviews:    reviews,
		renderer:   renderer,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate renders the roster of venueID: every applicant whose first or
// second choice is the venue, newest first.
func (s *RosterService) Generate(ctx context.Context, venueID uuid.UUID) (*RosterResult, error) {
	if s.renderer == nil {
		return nil, ErrRosterUnavailable
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "roster", "generate", telemetry.SpanAttrVenueID, venueID.String())
	defer span.End()

	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	filter := registration.ApplicantFilter{
		Filter:  shared.Filter{Page: 1, PageSize: maxRosterRows},
		VenueID: &venueID,
	}
	applicants, _, err := s.applicants.List(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(applicants))
	for i := range applicants {
		ids[i] = applicants[i].ID
	}
	reviews, err := s.reviews.FindByApplicants(ctx, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	html, err := infra.RenderRosterHTML(buildRosterData(venue, applicants, reviews, s.now()))
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		PaperSize:   printing.PaperSizeA4,
		Orientation: printing.OrientationLandscape,
		Margins:     printing.UniformMargins(28),
		Title:       "Nómina " + venue.Codigo,
		FooterHTML:  infra.RosterFooterHTML(),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if infra.IsRenderErrorCode(err, infra.ErrCodeBrowserUnavailable) {
			s.logger.Warn("roster requested without a browser", zap.Error(err))
			return nil, ErrRosterUnavailable
		}
		s.logger.Error("roster rendering failed", zap.String("venue_id", venueID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("roster generated",
		zap.String("venue", venue.Codigo),
		zap.Int("rows", len(applicants)),
		zap.Int("pages", out.PageCount),
		zap.Duration("elapsed", out.RenderDuration))

	return &RosterResult{
		Filename:  "nomina_" + venue.Codigo + ".pdf",
		PDF:       out.PDFData,
		Rows:      len(applicants),
		PageCount: out.PageCount,
	}, nil
}

func buildRosterData(venue *registration.Venue, applicants []registration.Applicant,
	reviews map[uuid.UUID][]registration.Review, now time.Time) infra.RosterData {
	data := infra.RosterData{
		VenueName:   venue.Nombre,
		VenueCode:   venue.Codigo,
		Municipio:   venue.Municipio,
		Direccion:   venue.Direccion(),
		GeneratedAt: now,
		Rows:        make([]infra.RosterRow, 0, len(applicants)),
	}
	for i := range applicants {
		a := &applicants[i]
		choice := "2da"
		if a.RecintoPrimeraOpcionID != nil && *a.RecintoPrimeraOpcionID == venue.ID {
			choice = "1ra"
		}
		data.Rows = append(data.Rows, infra.RosterRow{
			Number:   i + 1,
			FullName: a.FullName(),
			Identity: a.IdentityLabel(),
			Celular:  strconv.FormatInt(a.Celular, 10),
			Cargo:    a.CargoPostulacion,
			Choice:   choice,
			Status:   string(registration.LatestStatus(reviews[a.ID])),
		})
	}
	return data
}
