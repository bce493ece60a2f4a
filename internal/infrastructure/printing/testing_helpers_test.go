package printing

import (
	"image"
	_ "image/png"
	"os"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sereci/sirepre/internal/domain/printing"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(ci int64) printing.ReceiptSnapshot {
	var decl registration.Declarations
	decl.Set("es_boliviano", true)
	decl.Set("ci_vigente", true)
	decl.Set("linea_entel", true)
	return printing.ReceiptSnapshot{
		CedulaIdentidad:  ci,
		Nombre:           "Juan Carlos",
		ApellidoPaterno:  "Mamani",
		ApellidoMaterno:  "Ñusta",
		FechaNacimiento:  time.Date(1990, 2, 3, 0, 0, 0, 0, time.UTC),
		Expedicion:       "LP",
		GradoInstruccion: "Bachiller",
		Carrera:          registration.DefaultCarrera,
		Ciudad:           "La Paz",
		Zona:             "Sopocachi",
		CalleAvenida:     "Av. 6 de Agosto",
		Email:            "juan@example.com",
		Celular:          "76543210",
		CargoPostulacion: "Operador de Registro",
		Venue: &printing.VenueSnapshot{
			Nombre:    "Colegio Don Bosco",
			Municipio: "La Paz",
			Direccion: "Sopocachi, La Paz",
		},
		Documents: []printing.DocumentStatus{
			{Label: "CI", Attached: true},
			{Label: "No Militancia", Attached: true},
			{Label: "Hoja de Vida", Attached: false},
			{Label: "Certificado Exp.", Attached: false},
		},
		Declarations: decl.Items(),
		RegisteredAt: time.Date(2025, 7, 10, 8, 0, 0, 0, time.UTC),
		IssuedAt:     time.Date(2025, 7, 10, 8, 0, 1, 0, time.UTC),
	}
}

// decodeQR reads the text of the QR code stored at path.
func decodeQR(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, _, err := image.Decode(f)
	require.NoError(t, err)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return result.GetText()
}
