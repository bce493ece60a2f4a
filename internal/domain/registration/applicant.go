package registration

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// DefaultCarrera is stored when the applicant leaves the career blank.
const DefaultCarrera = "NO APLICA"

// Applicant is a registered candidate (postulante). It is the aggregate root
// of the registration context and is never modified after submission except
// for venue links being cleared when a venue is removed.
type Applicant struct {
	shared.BaseAggregateRoot

	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	FechaNacimiento time.Time
	CedulaIdentidad int64
	Complemento     string
	Expedicion      IssuingRegion

	GradoInstruccion string
	Carrera          string

	Ciudad          string
	Zona            string
	CalleAvenida    string
	NumeroDomicilio string

	Email    string
	Telefono *int64
	Celular  int64

	CargoPostulacion         string
	ExperienciaEspecifica    string
	ExperienciaGeneral       string
	ExperienciaProcesosRural string
	Observacion              string

	Declarations Declarations
	Documents    Documents

	RecintoPrimeraOpcionID *uuid.UUID
	RecintoSegundaOpcionID *uuid.UUID
}

// ApplicantInput carries already-mapped form values into NewApplicant.
type ApplicantInput struct {
	Nombre                   string
	ApellidoPaterno          string
	ApellidoMaterno          string
	FechaNacimiento          time.Time
	CedulaIdentidad          int64
	Complemento              string
	Expedicion               string
	GradoInstruccion         string
	Carrera                  string
	Ciudad                   string
	Zona                     string
	CalleAvenida             string
	NumeroDomicilio          string
	Email                    string
	Telefono                 *int64
	Celular                  int64
	CargoPostulacion         string
	ExperienciaEspecifica    string
	ExperienciaGeneral       string
	ExperienciaProcesosRural string
	Observacion              string
	Declarations             Declarations
	Documents                Documents
	RecintoPrimeraOpcionID   *uuid.UUID
	RecintoSegundaOpcionID   *uuid.UUID
}

// NewApplicant validates input and creates an applicant. It raises
// ApplicantRegisteredEvent.
func NewApplicant(input ApplicantInput) (*Applicant, error) {
	region, ok := ParseIssuingRegion(input.Expedicion)
	if !ok {
		return nil, shared.NewDomainError("INVALID_EXPEDICION",
			fmt.Sprintf("Expedición '%s' no es válida", input.Expedicion))
	}

	a := &Applicant{
		BaseAggregateRoot:        shared.NewBaseAggregateRoot(),
		Nombre:                   strings.TrimSpace(input.Nombre),
		ApellidoPaterno:          strings.TrimSpace(input.ApellidoPaterno),
		ApellidoMaterno:          strings.TrimSpace(input.ApellidoMaterno),
		FechaNacimiento:          input.FechaNacimiento,
		CedulaIdentidad:          input.CedulaIdentidad,
		Complemento:              NormalizeComplemento(input.Complemento),
		Expedicion:               region,
		GradoInstruccion:         strings.TrimSpace(input.GradoInstruccion),
		Carrera:                  strings.TrimSpace(input.Carrera),
		Ciudad:                   strings.TrimSpace(input.Ciudad),
		Zona:                     strings.TrimSpace(input.Zona),
		CalleAvenida:             strings.TrimSpace(input.CalleAvenida),
		NumeroDomicilio:          strings.TrimSpace(input.NumeroDomicilio),
		Email:                    strings.ToLower(strings.TrimSpace(input.Email)),
		Telefono:                 input.Telefono,
		Celular:                  input.Celular,
		CargoPostulacion:         strings.TrimSpace(input.CargoPostulacion),
		ExperienciaEspecifica:    strings.TrimSpace(input.ExperienciaEspecifica),
		ExperienciaGeneral:       strings.TrimSpace(input.ExperienciaGeneral),
		ExperienciaProcesosRural: strings.TrimSpace(input.ExperienciaProcesosRural),
		Observacion:              strings.TrimSpace(input.Observacion),
		Declarations:             input.Declarations,
		Documents:                input.Documents,
		RecintoPrimeraOpcionID:   input.RecintoPrimeraOpcionID,
		RecintoSegundaOpcionID:   input.RecintoSegundaOpcionID,
	}
	if a.Carrera == "" {
		a.Carrera = DefaultCarrera
	}

	if err := a.validate(); err != nil {
		return nil, err
	}

	a.AddDomainEvent(NewApplicantRegisteredEvent(a))
	return a, nil
}

// MaxObservacionLength bounds the free-text observation in runes.
const MaxObservacionLength = 2000

func (a *Applicant) validate() error {
	required := []struct {
		field string
		value string
		max   int
	}{
		{"nombre", a.Nombre, 250},
		{"ciudad", a.Ciudad, 100},
		{"zona", a.Zona, 100},
		{"calle_avenida", a.CalleAvenida, 100},
		{"email", a.Email, 255},
		{"cargo_postulacion", a.CargoPostulacion, 100},
	}
	for _, r := range required {
		if r.value == "" {
			return NewFieldError(r.field, "Este campo es obligatorio")
		}
		if utf8.RuneCountInString(r.value) > r.max {
			return NewFieldError(r.field, fmt.Sprintf("No puede exceder %d caracteres", r.max))
		}
	}

	optional := []struct {
		field string
		value string
		max   int
	}{
		{"apellido_paterno", a.ApellidoPaterno, 250},
		{"apellido_materno", a.ApellidoMaterno, 250},
		{"complemento", a.Complemento, 2},
		{"grado_instruccion", a.GradoInstruccion, 50},
		{"carrera", a.Carrera, 255},
		{"numero_domicilio", a.NumeroDomicilio, 10},
		{"experiencia_especifica", a.ExperienciaEspecifica, 24},
		{"experiencia_general", a.ExperienciaGeneral, 24},
		{"experiencia_procesos_rural", a.ExperienciaProcesosRural, 512},
		{"observacion", a.Observacion, MaxObservacionLength},
	}
	for _, o := range optional {
		if utf8.RuneCountInString(o.value) > o.max {
			return NewFieldError(o.field, fmt.Sprintf("No puede exceder %d caracteres", o.max))
		}
	}

	if a.CedulaIdentidad <= 0 {
		return NewFieldError("cedula_identidad", "Debe ser un número positivo")
	}
	if a.Celular <= 0 {
		return NewFieldError("celular", "Este campo es obligatorio")
	}
	if a.FechaNacimiento.IsZero() {
		return NewFieldError("fecha_nacimiento", "Este campo es obligatorio")
	}
	if a.FechaNacimiento.After(time.Now()) {
		return NewFieldError("fecha_nacimiento", "No puede ser una fecha futura")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return NewFieldError("email", "Introduzca una dirección de correo electrónico válida")
	}
	return nil
}

// FullName joins the non-empty name parts with single spaces.
func (a *Applicant) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Nombre, a.ApellidoPaterno, a.ApellidoMaterno} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// IdentityLabel renders the card number followed by its complemento.
func (a *Applicant) IdentityLabel() string {
	return strings.TrimSpace(strconv.FormatInt(a.CedulaIdentidad, 10) + " " + a.Complemento)
}

// Key returns the uniqueness key of the applicant.
func (a *Applicant) Key() IdentityKey {
	return IdentityKey{CedulaIdentidad: a.CedulaIdentidad, Complemento: a.Complemento}
}

// HasDisagreementMarker reports whether the observation flags that the
// applicant rejects the venue designation.
func (a *Applicant) HasDisagreementMarker() bool {
	return ContainsDisagreementMarker(a.Observacion)
}

// IdentityKey is the (cédula, complemento) pair that identifies an applicant.
type IdentityKey struct {
	CedulaIdentidad int64
	Complemento     string
}

// NormalizeComplemento upper-cases the complemento and maps the values the
// public form sends for "none" to the empty string.
func NormalizeComplemento(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
		return ""
	}
	return strings.ToUpper(s)
}
