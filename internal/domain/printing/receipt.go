package printing

import (
	"strconv"
	"strings"
	"time"

	"github.com/sereci/sirepre/internal/domain/registration"
)

// Receipt section titles
const (
	SectionPersonal     = "I. INFORMACIÓN PERSONAL Y ACADÉMICA"
	SectionAddress      = "II. DIRECCIÓN Y CONTACTO"
	SectionApplication  = "III. DATOS DE LA POSTULACIÓN Y RECINTO"
	SectionDocuments    = "IV. REQUISITOS Y DOCUMENTOS"
	SectionDeclarations = "REQUISITOS DECLARADOS"
	SectionObservation  = "OBSERVACIÓN"
)

// ReceiptSnapshot is the read-only view of an applicant the receipt is laid
// out from. It is resolved completely before layout starts.
type ReceiptSnapshot struct {
	CedulaIdentidad int64
	Complemento     string
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	FechaNacimiento time.Time
	Expedicion      string

	GradoInstruccion string
	Carrera          string

	Ciudad          string
	Zona            string
	CalleAvenida    string
	NumeroDomicilio string
	Email           string
	Celular         string
	Telefono        string

	CargoPostulacion      string
	ExperienciaGeneral    string
	ExperienciaEspecifica string
	ExperienciaRural      string

	Venue *VenueSnapshot

	Documents    []DocumentStatus
	Declarations []registration.DeclarationItem
	Observacion  string

	RegisteredAt time.Time
	IssuedAt     time.Time
}

// VenueSnapshot is the first-choice venue as printed.
type VenueSnapshot struct {
	Nombre    string
	Municipio string
	Direccion string
}

// DocumentStatus tells whether one supporting document was attached.
type DocumentStatus struct {
	Label    string
	Attached bool
}

// NewReceiptSnapshot captures applicant and its first-choice venue (nil
// when none was chosen or it no longer exists).
func NewReceiptSnapshot(a *registration.Applicant, firstChoice *registration.Venue, issuedAt time.Time) ReceiptSnapshot {
	s := ReceiptSnapshot{
		CedulaIdentidad:       a.CedulaIdentidad,
		Complemento:           a.Complemento,
		Nombre:                a.Nombre,
		ApellidoPaterno:       a.ApellidoPaterno,
		ApellidoMaterno:       a.ApellidoMaterno,
		FechaNacimiento:       a.FechaNacimiento,
		Expedicion:            a.Expedicion.String(),
		GradoInstruccion:      a.GradoInstruccion,
		Carrera:               a.Carrera,
		Ciudad:                a.Ciudad,
		Zona:                  a.Zona,
		CalleAvenida:          a.CalleAvenida,
		NumeroDomicilio:       a.NumeroDomicilio,
		Email:                 a.Email,
		CargoPostulacion:      a.CargoPostulacion,
		ExperienciaGeneral:    a.ExperienciaGeneral,
		ExperienciaEspecifica: a.ExperienciaEspecifica,
		ExperienciaRural:      a.ExperienciaProcesosRural,
		Declarations:          a.Declarations.Items(),
		Observacion:           a.Observacion,
		RegisteredAt:          a.CreatedAt,
		IssuedAt:              issuedAt,
	}
	if a.Celular > 0 {
		s.Celular = strconv.FormatInt(a.Celular, 10)
	}
	if a.Telefono != nil && *a.Telefono > 0 {
		s.Telefono = strconv.FormatInt(*a.Telefono, 10)
	}
	for _, kind := range registration.AllDocumentKinds() {
		s.Documents = append(s.Documents, DocumentStatus{Label: kind.Label(), Attached: a.Documents.Attached(kind)})
	}
	if firstChoice != nil {
		s.Venue = &VenueSnapshot{
			Nombre:    firstChoice.Nombre,
			Municipio: firstChoice.Municipio,
			Direccion: firstChoice.Direccion(),
		}
	}
	return s
}

// FullName joins the non-empty name parts.
func (s ReceiptSnapshot) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Nombre, s.ApellidoPaterno, s.ApellidoMaterno} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// RegistrationNumber is the card number joined to the issue time in
// milliseconds.
func (s ReceiptSnapshot) RegistrationNumber() string {
	return strconv.FormatInt(s.CedulaIdentidad, 10) + "-" + strconv.FormatInt(s.IssuedAt.UnixMilli(), 10)
}

// ShowsObservation reports whether the observation gets its own section.
func (s ReceiptSnapshot) ShowsObservation() bool {
	return strings.TrimSpace(s.Observacion) != "" && !registration.IsCanonicalDisagreement(s.Observacion)
}

// ShowsStamp reports whether the disagreement stamp is drawn. The canonical
// disagreement text also gets the stamp even though its section is hidden.
func (s ReceiptSnapshot) ShowsStamp() bool {
	return registration.ContainsDisagreementMarker(s.Observacion)
}

// Field is one label/value cell.
type Field struct {
	Label string
	Value string
}

// FieldBlock is a run of rows holding Columns cells each.
type FieldBlock struct {
	Fields  []Field
	Columns int
}

// Rows returns the number of rows the block occupies.
func (b FieldBlock) Rows() int {
	cols := b.Columns
	if cols < 1 {
		cols = 1
	}
	return (len(b.Fields) + cols - 1) / cols
}

// Section is a titled group of field blocks.
type Section struct {
	Title  string
	Blocks []FieldBlock
}

// Checklist is a titled list of yes/no items.
type Checklist struct {
	Title string
	Items []registration.DeclarationItem
}

// ReceiptContent is the flowing part of the receipt, in order.
type ReceiptContent struct {
	Sections    []Section
	Checklist   Checklist
	Observation *Section
}

// Content builds the sections printed for the snapshot.
func (s ReceiptSnapshot) Content() ReceiptContent {
	ci := strings.TrimSpace(strconv.FormatInt(s.CedulaIdentidad, 10) + " " + s.Complemento)
	birth := ""
	if !s.FechaNacimiento.IsZero() {
		birth = s.FechaNacimiento.Format("2006-01-02")
	}

	experiencia := "NO"
	if strings.EqualFold(strings.TrimSpace(s.ExperienciaGeneral), "SI") {
		experiencia = "SI"
	}
	procesos := strings.TrimSpace(s.ExperienciaEspecifica)
	if procesos == "" {
		procesos = "0"
	}

	venue := []Field{{Label: "Recinto", Value: "NO SELECCIONADO"}}
	if s.Venue != nil {
		venue = []Field{
			{Label: "Recinto", Value: OrPlaceholder(s.Venue.Nombre)},
			{Label: "Municipio", Value: OrPlaceholder(s.Venue.Municipio)},
			{Label: "Dirección", Value: OrPlaceholder(s.Venue.Direccion)},
			{Label: "Estado", Value: "PENDIENTE ASIGNACIÓN"},
		}
	}

	docs := make([]Field, 0, len(s.Documents))
	for _, d := range s.Documents {
		v := "NO ADJUNTO"
		if d.Attached {
			v = "ADJUNTO"
		}
		docs = append(docs, Field{Label: d.Label, Value: v})
	}

	content := ReceiptContent{
		Sections: []Section{
			{
				Title: SectionPersonal,
				Blocks: []FieldBlock{
					{Columns: 2, Fields: []Field{
						{Label: "Nombre(s)", Value: OrPlaceholder(s.Nombre)},
						{Label: "Apellido Paterno", Value: OrPlaceholder(s.ApellidoPaterno)},
						{Label: "Apellido Materno", Value: OrPlaceholder(s.ApellidoMaterno)},
						{Label: "Fecha Nacimiento", Value: OrPlaceholder(birth)},
						{Label: "CI", Value: ci},
						{Label: "Expedición", Value: OrPlaceholder(s.Expedicion)},
					}},
					{Columns: 2, Fields: []Field{
						{Label: "Instrucción", Value: OrPlaceholder(s.GradoInstruccion)},
						{Label: "Carrera", Value: OrPlaceholder(s.Carrera)},
					}},
				},
			},
			{
				Title: SectionAddress,
				Blocks: []FieldBlock{
					{Columns: 2, Fields: []Field{
						{Label: "Ciudad / Loc.", Value: OrPlaceholder(s.Ciudad)},
						{Label: "Zona / Barrio", Value: OrPlaceholder(s.Zona)},
						{Label: "Calle / Av.", Value: OrPlaceholder(s.CalleAvenida)},
						{Label: "Nro.", Value: OrPlaceholder(s.NumeroDomicilio)},
					}},
					{Columns: 2, Fields: []Field{
						{Label: "Email", Value: OrPlaceholder(s.Email)},
						{Label: "Celular", Value: OrPlaceholder(s.Celular)},
						{Label: "Cel. Respaldo", Value: OrPlaceholder(s.Telefono)},
					}},
				},
			},
			{
				Title: SectionApplication,
				Blocks: []FieldBlock{
					{Columns: 2, Fields: []Field{
						{Label: "Cargo", Value: OrPlaceholder(s.CargoPostulacion)},
						{Label: "Experiencia", Value: experiencia},
						{Label: "Nro. Procesos", Value: procesos},
						{Label: "Exp. Rural", Value: OrPlaceholder(s.ExperienciaRural)},
					}},
					{Columns: 2, Fields: venue},
				},
			},
			{
				Title:  SectionDocuments,
				Blocks: []FieldBlock{{Columns: 2, Fields: docs}},
			},
		},
		Checklist: Checklist{Title: SectionDeclarations, Items: s.Declarations},
	}

	if s.ShowsObservation() {
		content.Observation = &Section{
			Title: SectionObservation,
			Blocks: []FieldBlock{{Columns: 1, Fields: []Field{
				{Label: "Observación", Value: strings.TrimSpace(s.Observacion)},
			}}},
		}
	}
	return content
}
