package printing

import (
	"time"
	"unicode/utf8"

	"github.com/sereci/sirepre/internal/domain/registration"
)

// fixedMeasurer gives every rune half the font size.
type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(text string, font Font) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size * 0.5
}

func fullSnapshot() ReceiptSnapshot {
	var decl registration.Declarations
	decl.Set("es_boliviano", true)
	decl.Set("registrado_en_padron_electoral", true)
	decl.Set("ci_vigente", true)
	return ReceiptSnapshot{
		CedulaIdentidad:       4567890,
		Complemento:           "1A",
		Nombre:                "María",
		ApellidoPaterno:       "Quispe",
		ApellidoMaterno:       "Mamani",
		FechaNacimiento:       time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
		Expedicion:            "LP",
		GradoInstruccion:      "Licenciatura",
		Carrera:               "Derecho",
		Ciudad:                "El Alto",
		Zona:                  "Villa Adela",
		CalleAvenida:          "Av. Bolivia",
		NumeroDomicilio:       "123",
		Email:                 "maria@example.com",
		Celular:               "71234567",
		CargoPostulacion:      "Notario Electoral",
		ExperienciaGeneral:    "SI",
		ExperienciaEspecifica: "3",
		Venue: &VenueSnapshot{
			Nombre:    "U.E. Bolivia",
			Municipio: "El Alto",
			Direccion: "Villa Adela, El Alto",
		},
		Documents: []DocumentStatus{
			{Label: "CI", Attached: true},
			{Label: "No Militancia", Attached: false},
			{Label: "Hoja de Vida", Attached: true},
			{Label: "Certificado Exp.", Attached: false},
		},
		Declarations: decl.Items(),
		RegisteredAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		IssuedAt:     time.Date(2025, 6, 1, 10, 30, 5, 0, time.UTC),
	}
}

func layout(s ReceiptSnapshot) (*Document, error) {
	return LayoutReceipt(s, ReceiptAssets{LogoPath: "logo.png", QRImagePath: "qr.png"}, fixedMeasurer{}, DefaultReceiptStyle())
}
