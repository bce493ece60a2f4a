package registration

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sereci/sirepre/internal/domain/registration"
)

// DocumentUpload is a file part sent directly with the submission form.
type DocumentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubmitInput is the raw submission form.
type SubmitInput struct {
	// Values are the text parts keyed by their external name
	Values map[string][]string
	// Files are the file parts keyed by their external name
	Files map[string]DocumentUpload
}

// SubmitResult is returned after a successful registration. The receipt
// fields are nil when the receipt could not be generated.
type SubmitResult struct {
	ID             uuid.UUID `json:"id"`
	NombreCompleto string    `json:"nombreCompleto"`
	PDFFilename    *string   `json:"pdfFilename"`
	PDFURL         *string   `json:"pdfUrl"`
}

// ExistsResult answers the duplicate pre-check of the public form.
type ExistsResult struct {
	Existe  bool   `json:"existe"`
	Mensaje string `json:"mensaje"`
}

// StatusResult is the public view of the system switch.
type StatusResult struct {
	SistemaActivo bool   `json:"sistema_activo"`
	Mensaje       string `json:"mensaje"`
}

// UpdateConfigInput changes the system switch.
type UpdateConfigInput struct {
	SistemaActivo bool   `json:"sistema_activo"`
	Mensaje       string `json:"mensaje"`
}

// UploadResult describes a pre-uploaded document.
type UploadResult struct {
	ID   uuid.UUID `json:"id"`
	URL  string    `json:"url"`
	Name string    `json:"name"`
}

// VenueDTO is a venue as served to clients.
type VenueDTO struct {
	ID           uuid.UUID           `json:"id"`
	Codigo       string              `json:"codigo"`
	Nombre       string              `json:"nombre"`
	Departamento string              `json:"departamento"`
	Provincia    string              `json:"provincia"`
	Municipio    string              `json:"municipio"`
	Asiento      string              `json:"asiento"`
	Zona         string              `json:"zona"`
	Longitud     decimal.NullDecimal `json:"longitud"`
	Latitud      decimal.NullDecimal `json:"latitud"`
}

// ApplicantSummary is one row of the staff listing.
type ApplicantSummary struct {
	ID               uuid.UUID `json:"id"`
	NombreCompleto   string    `json:"nombre_completo"`
	CedulaIdentidad  int64     `json:"cedula_identidad"`
	Complemento      string    `json:"complemento"`
	Expedicion       string    `json:"expedicion"`
	Celular          int64     `json:"celular"`
	Email            string    `json:"email"`
	CargoPostulacion string    `json:"cargo_postulacion"`
	FechaRegistro    time.Time `json:"fecha_registro"`
	EstadoRevision   string    `json:"estado_revision"`
	TotalRevisiones  int       `json:"total_revisiones"`
}

// ApplicantDetail is the full staff view of one applicant.
type ApplicantDetail struct {
	ApplicantSummary
	Nombre                   string            `json:"nombre"`
	ApellidoPaterno          string            `json:"apellido_paterno"`
	ApellidoMaterno          string            `json:"apellido_materno"`
	FechaNacimiento          string            `json:"fecha_nacimiento"`
	GradoInstruccion         string            `json:"grado_instruccion"`
	Carrera                  string            `json:"carrera"`
	Ciudad                   string            `json:"ciudad"`
	Zona                     string            `json:"zona"`
	CalleAvenida             string            `json:"calle_avenida"`
	NumeroDomicilio          string            `json:"numero_domicilio"`
	Telefono                 *int64            `json:"telefono"`
	ExperienciaEspecifica    string            `json:"experiencia_especifica"`
	ExperienciaGeneral       string            `json:"experiencia_general"`
	ExperienciaProcesosRural string            `json:"experiencia_procesos_rural"`
	Observacion              string            `json:"observacion"`
	Requisitos               map[string]bool   `json:"requisitos"`
	Documentos               map[string]string `json:"documentos"`
	RecintoPrimeraOpcion     *VenueDTO         `json:"recinto_primera_opcion"`
	RecintoSegundaOpcion     *VenueDTO         `json:"recinto_segunda_opcion"`
	Revisiones               []ReviewDTO       `json:"revisiones"`
}

// ReviewDTO is one review as served to staff.
type ReviewDTO struct {
	ID                                 uuid.UUID  `json:"id"`
	RevisadoPorID                      *uuid.UUID `json:"revisado_por_id"`
	RevisadoPor                        string     `json:"revisado_por"`
	FechaRevision                      time.Time  `json:"fecha_revision"`
	CumpleExperienciaEspecifica        string     `json:"cumple_experiencia_especifica"`
	CumpleNoMilitancia                 string     `json:"cumple_no_militancia"`
	CumpleBachillerOSuperior           string     `json:"cumple_bachiller_o_superior"`
	ObservacionesExperienciaEspecifica string     `json:"observaciones_experiencia_especifica"`
	ObservacionesNoMilitancia          string     `json:"observaciones_no_militancia"`
	ObservacionesBachillerOSuperior    string     `json:"observaciones_bachiller_o_superior"`
	Estado                             string     `json:"estado"`
}

// RecordReviewInput contains the verdicts of a new review. The reviewer
// fields default to the authenticated caller.
type RecordReviewInput struct {
	ApplicantID                        uuid.UUID
	ReviewerID                         *uuid.UUID
	ReviewerName                       string
	CumpleExperienciaEspecifica        string
	CumpleNoMilitancia                 string
	CumpleBachillerOSuperior           string
	ObservacionesExperienciaEspecifica string
	ObservacionesNoMilitancia          string
	ObservacionesBachillerOSuperior    string
}

// ListInput is the staff listing query.
type ListInput struct {
	Page   int
	Limit  int
	Search string
}

// StatsResult summarises registrations for the staff dashboard.
type StatsResult struct {
	TotalPostulantes   int64                       `json:"total_postulantes"`
	PorMinuto          []registration.MinuteBucket `json:"registros_por_minuto"`
	Requisitos         map[string]int64            `json:"requisitos"`
	EstadosRevision    map[string]int64            `json:"estados_revision"`
	DocumentosAdjuntos map[string]int64           `json:"documentos_adjuntos"`
	GeneradoEn         time.Time                   `json:"generado_en"`
}

func toVenueDTO(v *registration.Venue) VenueDTO {
	return VenueDTO{
		ID:           v.ID,
		Codigo:       v.Codigo,
		Nombre:       v.Nombre,
		Departamento: v.Departamento,
		Provincia:    v.Provincia,
		Municipio:    v.Municipio,
		Asiento:      v.Asiento,
		Zona:         v.Zona,
		Longitud:     v.Longitud,
		Latitud:      v.Latitud,
	}
}

func toReviewDTO(r *registration.Review) ReviewDTO {
	return ReviewDTO{
		ID:                                 r.ID,
		RevisadoPorID:                      r.ReviewerID,
		RevisadoPor:                        r.ReviewerName,
		FechaRevision:                      r.ReviewedAt,
		CumpleExperienciaEspecifica:        string(r.ExperienciaEspecifica),
		CumpleNoMilitancia:                 string(r.NoMilitancia),
		CumpleBachillerOSuperior:           string(r.BachillerOSuperior),
		ObservacionesExperienciaEspecifica: r.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          r.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    r.ObservacionesBachillerOSuperior,
		Estado:                             string(r.Status()),
	}
}

func toSummary(a *registration.Applicant, reviews []registration.Review) ApplicantSummary {
	return ApplicantSummary{
		ID:               a.ID,
		NombreCompleto:   a.FullName(),
		CedulaIdentidad:  a.CedulaIdentidad,
		Complemento:      a.Complemento,
		Expedicion:       a.Expedicion.String(),
		Celular:          a.Celular,
		Email:            a.Email,
		CargoPostulacion: a.CargoPostulacion,
		FechaRegistro:    a.CreatedAt,
		EstadoRevision:   string(registration.LatestStatus(reviews)),
		TotalRevisiones:  len(reviews),
	}
}
