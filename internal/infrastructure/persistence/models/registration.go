package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// ApplicantModel is the persistence model of the applicant aggregate.
type ApplicantModel struct {
	BaseModel
	Nombre          string    `gorm:"type:varchar(250);not null"`
	ApellidoPaterno string    `gorm:"type:varchar(250)"`
	ApellidoMaterno string    `gorm:"type:varchar(250)"`
	FechaNacimiento time.Time `gorm:"type:date;not null"`
	CedulaIdentidad int64     `gorm:"not null;uniqueIndex:uq_postulante_identidad"`
	Complemento     string    `gorm:"type:varchar(2);not null;uniqueIndex:uq_postulante_identidad"`
	Expedicion      string    `gorm:"type:varchar(2);not null"`

	GradoInstruccion string `gorm:"type:varchar(50)"`
	Carrera          string `gorm:"type:varchar(255)"`

	Ciudad          string `gorm:"type:varchar(100);not null"`
	Zona            string `gorm:"type:varchar(100);not null"`
	CalleAvenida    string `gorm:"type:varchar(100);not null"`
	NumeroDomicilio string `gorm:"type:varchar(10)"`

	Email    string `gorm:"type:varchar(255);not null"`
	Telefono *int64
	Celular  int64 `gorm:"not null"`

	CargoPostulacion         string `gorm:"type:varchar(100);not null"`
	ExperienciaEspecifica    string `gorm:"type:varchar(24)"`
	ExperienciaGeneral       string `gorm:"type:varchar(24)"`
	ExperienciaProcesosRural string `gorm:"type:varchar(512)"`
	Observacion              string `gorm:"type:text"`

	EsBoliviano                   bool `gorm:"not null"`
	RegistradoEnPadronElectoral   bool `gorm:"not null"`
	CIVigente                     bool `gorm:"column:ci_vigente;not null"`
	DisponibilidadTiempoCompleto  bool `gorm:"not null"`
	LineaEntel                    bool `gorm:"not null"`
	NingunaMilitanciaPolitica     bool `gorm:"not null"`
	SinConflictosConLaInstitucion bool `gorm:"not null"`
	SinSentenciaEjecutoriada      bool `gorm:"not null"`
	CuentaConCelularAndroid       bool `gorm:"not null"`
	CuentaConPowerbank            bool `gorm:"not null"`

	ArchivoCI                   string `gorm:"column:archivo_ci;type:varchar(500)"`
	ArchivoNoMilitancia         string `gorm:"type:varchar(500)"`
	ArchivoHojaDeVida           string `gorm:"type:varchar(500)"`
	ArchivoCertificadoOfimatica string `gorm:"type:varchar(500)"`

	RecintoPrimeraOpcionID *uuid.UUID `gorm:"type:uuid;index"`
	RecintoSegundaOpcionID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ApplicantModel) TableName() string {
	return "postulantes"
}

// ToDomain converts the model to an applicant. Pending events are not
// restored.
func (m *ApplicantModel) ToDomain() *registration.Applicant {
	return &registration.Applicant{
		BaseAggregateRoot:        shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Nombre:                   m.Nombre,
		ApellidoPaterno:          m.ApellidoPaterno,
		ApellidoMaterno:          m.ApellidoMaterno,
		FechaNacimiento:          m.FechaNacimiento,
		CedulaIdentidad:          m.CedulaIdentidad,
		Complemento:              m.Complemento,
		Expedicion:               registration.IssuingRegion(m.Expedicion),
		GradoInstruccion:         m.GradoInstruccion,
		Carrera:                  m.Carrera,
		Ciudad:                   m.Ciudad,
		Zona:                     m.Zona,
		CalleAvenida:             m.CalleAvenida,
		NumeroDomicilio:          m.NumeroDomicilio,
		Email:                    m.Email,
		Telefono:                 m.Telefono,
		Celular:                  m.Celular,
		CargoPostulacion:         m.CargoPostulacion,
		ExperienciaEspecifica:    m.ExperienciaEspecifica,
		ExperienciaGeneral:       m.ExperienciaGeneral,
		ExperienciaProcesosRural: m.ExperienciaProcesosRural,
		Observacion:              m.Observacion,
		Declarations: registration.Declarations{
			EsBoliviano:                   m.EsBoliviano,
			RegistradoEnPadronElectoral:   m.RegistradoEnPadronElectoral,
			CIVigente:                     m.CIVigente,
			DisponibilidadTiempoCompleto:  m.DisponibilidadTiempoCompleto,
			LineaEntel:                    m.LineaEntel,
			NingunaMilitanciaPolitica:     m.NingunaMilitanciaPolitica,
			SinConflictosConLaInstitucion: m.SinConflictosConLaInstitucion,
			SinSentenciaEjecutoriada:      m.SinSentenciaEjecutoriada,
			CuentaConCelularAndroid:       m.CuentaConCelularAndroid,
			CuentaConPowerbank:            m.CuentaConPowerbank,
		},
		Documents: registration.Documents{
			CI:                   m.ArchivoCI,
			NoMilitancia:         m.ArchivoNoMilitancia,
			HojaDeVida:           m.ArchivoHojaDeVida,
			CertificadoOfimatica: m.ArchivoCertificadoOfimatica,
		},
		RecintoPrimeraOpcionID: m.RecintoPrimeraOpcionID,
		RecintoSegundaOpcionID: m.RecintoSegundaOpcionID,
	}
}

// ApplicantModelFromDomain creates a model from an applicant.
func ApplicantModelFromDomain(a *registration.Applicant) *ApplicantModel {
	m := &ApplicantModel{
		Nombre:                        a.Nombre,
		ApellidoPaterno:               a.ApellidoPaterno,
		ApellidoMaterno:               a.ApellidoMaterno,
		FechaNacimiento:               a.FechaNacimiento,
		CedulaIdentidad:               a.CedulaIdentidad,
		Complemento:                   a.Complemento,
		Expedicion:                    a.Expedicion.String(),
		GradoInstruccion:              a.GradoInstruccion,
		Carrera:                       a.Carrera,
		Ciudad:                        a.Ciudad,
		Zona:                          a.Zona,
		CalleAvenida:                  a.CalleAvenida,
		NumeroDomicilio:               a.NumeroDomicilio,
		Email:                         a.Email,
		Telefono:                      a.Telefono,
		Celular:                       a.Celular,
		CargoPostulacion:              a.CargoPostulacion,
		ExperienciaEspecifica:         a.ExperienciaEspecifica,
		ExperienciaGeneral:            a.ExperienciaGeneral,
		ExperienciaProcesosRural:      a.ExperienciaProcesosRural,
		Observacion:                   a.Observacion,
		EsBoliviano:                   a.Declarations.EsBoliviano,
		RegistradoEnPadronElectoral:   a.Declarations.RegistradoEnPadronElectoral,
		CIVigente:                     a.Declarations.CIVigente,
		DisponibilidadTiempoCompleto:  a.Declarations.DisponibilidadTiempoCompleto,
		LineaEntel:                    a.Declarations.LineaEntel,
		NingunaMilitanciaPolitica:     a.Declarations.NingunaMilitanciaPolitica,
		SinConflictosConLaInstitucion: a.Declarations.SinConflictosConLaInstitucion,
		SinSentenciaEjecutoriada:      a.Declarations.SinSentenciaEjecutoriada,
		CuentaConCelularAndroid:       a.Declarations.CuentaConCelularAndroid,
		CuentaConPowerbank:            a.Declarations.CuentaConPowerbank,
		ArchivoCI:                     a.Documents.CI,
		ArchivoNoMilitancia:           a.Documents.NoMilitancia,
		ArchivoHojaDeVida:             a.Documents.HojaDeVida,
		ArchivoCertificadoOfimatica:   a.Documents.CertificadoOfimatica,
		RecintoPrimeraOpcionID:        a.RecintoPrimeraOpcionID,
		RecintoSegundaOpcionID:        a.RecintoSegundaOpcionID,
	}
	m.BaseModel = baseFrom(a.BaseEntity)
	return m
}

// DeclarationColumns maps declaration field names to their columns. The
// names coincide; the map doubles as an allow-list for raw SQL.
var DeclarationColumns = map[string]string{
	"es_boliviano":                      "es_boliviano",
	"registrado_en_padron_electoral":    "registrado_en_padron_electoral",
	"ci_vigente":                        "ci_vigente",
	"disponibilidad_tiempo_completo":    "disponibilidad_tiempo_completo",
	"linea_entel":                       "linea_entel",
	"ninguna_militancia_politica":       "ninguna_militancia_politica",
	"sin_conflictos_con_la_institucion": "sin_conflictos_con_la_institucion",
	"sin_sentencia_ejecutoriada":        "sin_sentencia_ejecutoriada",
	"cuenta_con_celular_android":        "cuenta_con_celular_android",
	"cuenta_con_powerbank":              "cuenta_con_powerbank",
}

// VenueModel is the persistence model of a venue.
type VenueModel struct {
	BaseModel
	Nombre       string              `gorm:"type:varchar(255);not null"`
	Codigo       string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Departamento string              `gorm:"type:varchar(100)"`
	Provincia    string              `gorm:"type:varchar(100)"`
	Municipio    string              `gorm:"type:varchar(100)"`
	Asiento      string              `gorm:"type:varchar(255)"`
	Zona         string              `gorm:"type:varchar(255)"`
	Longitud     decimal.NullDecimal `gorm:"type:decimal(11,8)"`
	Latitud      decimal.NullDecimal `gorm:"type:decimal(10,8)"`
}

// TableName returns the table name for GORM
func (VenueModel) TableName() string {
	return "recintos"
}

// ToDomain converts the model to a venue.
func (m *VenueModel) ToDomain() *registration.Venue {
	return &registration.Venue{
		BaseEntity:   m.BaseModel.ToDomain(),
		Nombre:       m.Nombre,
		Codigo:       m.Codigo,
		Departamento: m.Departamento,
		Provincia:    m.Provincia,
		Municipio:    m.Municipio,
		Asiento:      m.Asiento,
		Zona:         m.Zona,
		Longitud:     m.Longitud,
		Latitud:      m.Latitud,
	}
}

// VenueModelFromDomain creates a model from a venue.
func VenueModelFromDomain(v *registration.Venue) *VenueModel {
	m := &VenueModel{
		Nombre:       v.Nombre,
		Codigo:       v.Codigo,
		Departamento: v.Departamento,
		Provincia:    v.Provincia,
		Municipio:    v.Municipio,
		Asiento:      v.Asiento,
		Zona:         v.Zona,
		Longitud:     v.Longitud,
		Latitud:      v.Latitud,
	}
	m.BaseModel = baseFrom(v.BaseEntity)
	return m
}

// ReviewModel is the persistence model of a review.
type ReviewModel struct {
	BaseModel
	ApplicantID  uuid.UUID  `gorm:"column:postulante_id;type:uuid;not null;index"`
	ReviewerID   *uuid.UUID `gorm:"column:revisado_por_id;type:uuid"`
	ReviewerName string     `gorm:"column:revisado_por;type:varchar(150)"`
	ReviewedAt   time.Time  `gorm:"column:fecha_revision;not null;index"`

	ExperienciaEspecifica string `gorm:"type:varchar(20);not null"`
	NoMilitancia          string `gorm:"type:varchar(20);not null"`
	BachillerOSuperior    string `gorm:"column:bachiller_o_superior;type:varchar(20);not null"`

	ObservacionesExperienciaEspecifica string `gorm:"type:text"`
	ObservacionesNoMilitancia          string `gorm:"type:text"`
	ObservacionesBachillerOSuperior    string `gorm:"column:observaciones_bachiller_o_superior;type:text"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "revisiones_postulante"
}

// ToDomain converts the model to a review.
func (m *ReviewModel) ToDomain() *registration.Review {
	return &registration.Review{
		BaseEntity:                         m.BaseModel.ToDomain(),
		ApplicantID:                        m.ApplicantID,
		ReviewerID:                         m.ReviewerID,
		ReviewerName:                       m.ReviewerName,
		ReviewedAt:                         m.ReviewedAt,
		ExperienciaEspecifica:              registration.Verdict(m.ExperienciaEspecifica),
		NoMilitancia:                       registration.Verdict(m.NoMilitancia),
		BachillerOSuperior:                 registration.Verdict(m.BachillerOSuperior),
		ObservacionesExperienciaEspecifica: m.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          m.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    m.ObservacionesBachillerOSuperior,
	}
}

// ReviewModelFromDomain creates a model from a review.
func ReviewModelFromDomain(r *registration.Review) *ReviewModel {
	m := &ReviewModel{
		ApplicantID:                        r.ApplicantID,
		ReviewerID:                         r.ReviewerID,
		ReviewerName:                       r.ReviewerName,
		ReviewedAt:                         r.ReviewedAt,
		ExperienciaEspecifica:              string(r.ExperienciaEspecifica),
		NoMilitancia:                       string(r.NoMilitancia),
		BachillerOSuperior:                 string(r.BachillerOSuperior),
		ObservacionesExperienciaEspecifica: r.ObservacionesExperienciaEspecifica,
		ObservacionesNoMilitancia:          r.ObservacionesNoMilitancia,
		ObservacionesBachillerOSuperior:    r.ObservacionesBachillerOSuperior,
	}
	m.BaseModel = baseFrom(r.BaseEntity)
	return m
}

// SystemConfigModel is the singleton registration switch.
type SystemConfigModel struct {
	ID            int       `gorm:"primaryKey;autoIncrement:false"`
	SistemaActivo bool      `gorm:"not null"`
	Mensaje       string    `gorm:"type:text"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SystemConfigModel) TableName() string {
	return "configuracion_sistema"
}

// ToDomain converts the model to the configuration.
func (m *SystemConfigModel) ToDomain() *registration.SystemConfig {
	return &registration.SystemConfig{
		ID:            m.ID,
		SistemaActivo: m.SistemaActivo,
		Mensaje:       m.Mensaje,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SystemConfigModelFromDomain creates a model from the configuration.
func SystemConfigModelFromDomain(c *registration.SystemConfig) *SystemConfigModel {
	return &SystemConfigModel{
		ID:            c.ID,
		SistemaActivo: c.SistemaActivo,
		Mensaje:       c.Mensaje,
		UpdatedAt:     c.UpdatedAt,
	}
}

// UploadedFileModel is a document uploaded before submission.
type UploadedFileModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null"`
	StorageKey  string `gorm:"type:varchar(500);not null"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UploadedFileModel) TableName() string {
	return "archivos_subidos"
}

// ToDomain converts the model to an uploaded file.
func (m *UploadedFileModel) ToDomain() *registration.UploadedFile {
	return &registration.UploadedFile{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		Size:        m.Size,
	}
}

// UploadedFileModelFromDomain creates a model from an uploaded file.
func UploadedFileModelFromDomain(f *registration.UploadedFile) *UploadedFileModel {
	m := &UploadedFileModel{
		Name:        f.Name,
		StorageKey:  f.StorageKey,
		ContentType: f.ContentType,
		Size:        f.Size,
	}
	m.BaseModel = baseFrom(f.BaseEntity)
	return m
}
