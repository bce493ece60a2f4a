package csvimport

import (
	"context"
	"errors"
	"io"

	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Venue CSV columns.
const (
	ColCodigo       = "Código"
	ColNombre       = "Nombre"
	ColDepartamento = "Departamento"
	ColProvincia    = "Provincia"
	ColMunicipio    = "Municipio"
	ColAsiento      = "Asiento"
	ColZona         = "Zona"
	ColLongitud     = "Longitud"
	ColLatitud      = "Latitud"
)

// RequiredVenueColumns must appear in the header row.
var RequiredVenueColumns = []string{ColCodigo, ColNombre}

// ImportResult summarises a venue import.
type ImportResult struct {
	Created     int        `json:"created"`
	Updated     int        `json:"updated"`
	Failed      int        `json:"failed"`
	Errors      []RowError `json:"errors,omitempty"`
	IsTruncated bool       `json:"is_truncated,omitempty"`
}

// Total is the number of data rows processed.
func (r *ImportResult) Total() int {
	return r.Created + r.Updated + r.Failed
}

// VenueImporter upserts venues by código from a CSV file.
type VenueImporter struct {
	repo      registration.VenueRepository
	logger    *zap.Logger
	maxErrors int
}

// NewVenueImporter creates an importer
func NewVenueImporter(repo registration.VenueRepository, logger *zap.Logger) *VenueImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueImporter{repo: repo, logger: logger, maxErrors: 100}
}

// Import reads every row of r. File-level problems (encoding, header) fail
// the whole import; row problems are collected and the row is skipped.
func (i *VenueImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(RequiredVenueColumns); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	result := &ImportResult{}
	errs := NewErrorCollection(i.maxErrors)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			var rowErr RowError
			if errors.As(err, &rowErr) {
				errs.Add(rowErr)
				result.Failed++
				continue
			}
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}

		venue, rowErr := venueFromRow(row)
		if rowErr != nil {
			errs.Add(*rowErr)
			result.Failed++
			continue
		}
		created, err := i.repo.Upsert(ctx, venue)
		if err != nil {
			i.logger.Warn("venue upsert failed",
				zap.Int("row", row.LineNumber),
				zap.String("codigo", venue.Codigo),
				zap.Error(err))
			errs.Add(RowError{Row: row.LineNumber, Column: ColCodigo, Code: ErrCodeImportStore,
				Message: err.Error(), Value: venue.Codigo})
			result.Failed++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.Errors = errs.Errors()
	result.IsTruncated = errs.IsTruncated()
	i.logger.Info("venue import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func venueFromRow(row *Row) (*registration.Venue, *RowError) {
	codigo := row.Get(ColCodigo)
	if codigo == "" {
		e := NewRowError(row.LineNumber, ColCodigo, ErrCodeImportRequiredField, "field 'Código' is required")
		return nil, &e
	}
	venue, err := registration.NewVenue(codigo, row.Get(ColNombre))
	if err != nil {
		e := RowError{Row: row.LineNumber, Column: ColNombre, Code: ErrCodeImportInvalidValue,
			Message: err.Error(), Value: codigo}
		return nil, &e
	}
	venue.Departamento = row.Get(ColDepartamento)
	venue.Provincia = row.Get(ColProvincia)
	venue.Municipio = row.Get(ColMunicipio)
	venue.Asiento = row.Get(ColAsiento)
	venue.Zona = row.Get(ColZona)
	venue.Longitud = parseCoordinate(row.Get(ColLongitud))
	venue.Latitud = parseCoordinate(row.Get(ColLatitud))
	return venue, nil
}

// parseCoordinate returns null for blank or malformed values. A decimal
// comma is accepted.
func parseCoordinate(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		if d2, err2 := decimal.NewFromString(replaceComma(s)); err2 == nil {
			return decimal.NewNullDecimal(d2)
		}
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func replaceComma(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c == ',' {
			b[i] = '.'
		}
	}
	return string(b)
}
