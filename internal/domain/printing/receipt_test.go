package printing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sereci/sirepre/internal/domain/registration"
)

func TestNewReceiptSnapshot(t *testing.T) {
	tel := int64(2212345)
	a, err := registration.NewApplicant(registration.ApplicantInput{
		Nombre:           "Juan",
		ApellidoPaterno:  "Pérez",
		FechaNacimiento:  time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		CedulaIdentidad:  1234567,
		Expedicion:       "cb",
		Ciudad:           "La Paz",
		Zona:             "Sopocachi",
		CalleAvenida:     "Av. 6 de Agosto",
		Email:            "juan@example.com",
		Telefono:         &tel,
		Celular:          71111111,
		CargoPostulacion: "Notario Electoral",
	})
	require.NoError(t, err)
	a.Documents.Set(registration.DocumentCI, "uploads/ci.pdf")

	venue, err := registration.NewVenue("LP-001", "Colegio Ayacucho")
	require.NoError(t, err)
	venue.Municipio = "La Paz"
	venue.Zona = "Centro"

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewReceiptSnapshot(a, venue, issued)

	assert.Equal(t, "Juan Pérez", s.FullName())
	assert.Equal(t, "CB", s.Expedicion)
	assert.Equal(t, "2212345", s.Telefono)
	assert.Equal(t, "71111111", s.Celular)
	assert.Equal(t, "NO APLICA", s.Carrera)
	require.NotNil(t, s.Venue)
	assert.Equal(t, "Colegio Ayacucho", s.Venue.Nombre)
	require.Len(t, s.Documents, 4)
	assert.Equal(t, DocumentStatus{Label: "CI", Attached: true}, s.Documents[0])
	assert.False(t, s.Documents[1].Attached)
	assert.Len(t, s.Declarations, 10)
	assert.Equal(t, "1234567-1748779200000", s.RegistrationNumber())
}

func TestReceiptSnapshot_Content(t *testing.T) {
	s := fullSnapshot()
	s.ExperienciaGeneral = "no"
	s.ExperienciaEspecifica = ""
	content := s.Content()

	require.Len(t, content.Sections, 4)
	assert.Nil(t, content.Observation)

	app := content.Sections[2].Blocks[0].Fields
	assert.Equal(t, Field{Label: "Experiencia", Value: "NO"}, app[1])
	assert.Equal(t, Field{Label: "Nro. Procesos", Value: "0"}, app[2])

	docs := content.Sections[3].Blocks[0].Fields
	assert.Equal(t, "ADJUNTO", docs[0].Value)
	assert.Equal(t, "NO ADJUNTO", docs[1].Value)

	assert.Equal(t, 3, content.Sections[0].Blocks[0].Rows())
	assert.Equal(t, 1, content.Sections[0].Blocks[1].Rows())
}
