package registration

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// Venue is a polling venue (recinto) an applicant can choose.
type Venue struct {
	shared.BaseEntity
	Nombre       string
	Codigo       string
	Departamento string
	Provincia    string
	Municipio    string
	Asiento      string
	Zona         string
	Longitud     decimal.NullDecimal
	Latitud      decimal.NullDecimal
}

// NewVenue creates a venue with the mandatory name and unique code.
func NewVenue(codigo, nombre string) (*Venue, error) {
	codigo = strings.TrimSpace(codigo)
	nombre = strings.TrimSpace(nombre)
	if codigo == "" {
		return nil, shared.NewDomainError("INVALID_CODIGO", "El código del recinto es obligatorio")
	}
	if nombre == "" {
		return nil, shared.NewDomainError("INVALID_NOMBRE", "El nombre del recinto es obligatorio")
	}
	if len(codigo) > 50 {
		return nil, shared.NewDomainError("INVALID_CODIGO", "El código no puede exceder 50 caracteres")
	}
	return &Venue{
		BaseEntity: shared.NewBaseEntity(),
		Codigo:     codigo,
		Nombre:     nombre,
	}, nil
}

// Direccion joins the zone and locality for display. Empty when neither is
// known.
func (v *Venue) Direccion() string {
	parts := make([]string, 0, 2)
	if z := strings.TrimSpace(v.Zona); z != "" {
		parts = append(parts, z)
	}
	if a := strings.TrimSpace(v.Asiento); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether both coordinates are set.
func (v *Venue) HasCoordinates() bool {
	return v.Latitud.Valid && v.Longitud.Valid
}
