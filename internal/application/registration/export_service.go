package registration

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportHeaders are the columns of the applicant spreadsheet.
var ExportHeaders = []string{
	"ID", "Nombre", "Apellido Paterno", "Apellido Materno", "CI", "Exp", "Celular", "Email",
	"Cargo Postulación", "Fecha Registro", "Recinto 1ra Opción", "Recinto 2da Opción",
	"Revisiones Totales", "Último Estado", "Cumple Exp. Específica", "Cumple No Militancia",
	"Cumple Bachiller", "Revisado Por", "Fecha Última Revisión",
}

const exportSheet = "Postulantes"

// ExportService writes every applicant to an Excel workbook.
type ExportService struct {
	applicants registration.ApplicantRepository
	venues     registration.VenueRepository
	reviews    registration.ReviewRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	applicants registration.ApplicantRepository,
	venues registration.VenueRepository,
	reviews registration.ReviewRepository,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{applicants: applicants, venues: venues, reviews: reviews, logger: logger, now: time.Now}
}

// ExportResult is a generated workbook.
type ExportResult struct {
	Filename string
	Data     []byte
	Rows     int
}

// Export builds the workbook, newest registrations first.
func (s *ExportService) Export(ctx context.Context) (*ExportResult, error) {
	applicants, err := s.applicants.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByApplicants(ctx, applicantIDs(applicants))
	if err != nil {
		return nil, err
	}
	venues, err := s.venues.FindByIDs(ctx, venueIDs(applicants))
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := s.writeHeader(f); err != nil {
		return nil, err
	}
	for i := range applicants {
		row := exportRow(&applicants[i], reviews[applicants[i].ID], venues)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	s.logger.Info("applicants exported", zap.Int("rows", len(applicants)), zap.Int("bytes", buf.Len()))
	return &ExportResult{
		Filename: "postulantes_" + s.now().Format("20060102_150405") + ".xlsx",
		Data:     buf.Bytes(),
		Rows:     len(applicants),
	}, nil
}

func (s *ExportService) writeHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"474747"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	header := make([]any, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ExportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(ExportHeaders))
	if err != nil {
		return err
	}
	return f.SetColWidth(exportSheet, "A", lastCol, 18)
}

func exportRow(a *registration.Applicant, reviews []registration.Review, venues map[uuid.UUID]registration.Venue) []any {
	row := []any{
		a.ID.String(),
		a.Nombre,
		a.ApellidoPaterno,
		a.ApellidoMaterno,
		a.IdentityLabel(),
		a.Expedicion.String(),
		a.Celular,
		a.Email,
		a.CargoPostulacion,
		a.CreatedAt.Format("02/01/2006 15:04"),
		venueName(venues, a.RecintoPrimeraOpcionID),
		venueName(venues, a.RecintoSegundaOpcionID),
		len(reviews),
		string(registration.LatestStatus(reviews)),
	}
	if latest := registration.LatestReview(reviews); latest != nil {
		row = append(row,
			latest.ExperienciaEspecifica.DisplayName(),
			latest.NoMilitancia.DisplayName(),
			latest.BachillerOSuperior.DisplayName(),
			latest.ReviewerName,
			latest.ReviewedAt.Format("02/01/2006 15:04"),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}
	return row
}

func venueName(venues map[uuid.UUID]registration.Venue, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if v, ok := venues[*id]; ok {
		return v.Nombre
	}
	return ""
}

func venueIDs(applicants []registration.Applicant) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range applicants {
		for _, id := range []*uuid.UUID{applicants[i].RecintoPrimeraOpcionID, applicants[i].RecintoSegundaOpcionID} {
			if id == nil {
				continue
			}
			if _, ok := seen[*id]; !ok {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	return ids
}
