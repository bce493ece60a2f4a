package registration

import "github.com/sereci/sirepre/internal/domain/shared"

// Registration error codes
const (
	CodeRegistrationClosed = "REGISTRATION_CLOSED"
	CodeDuplicateApplicant = "DUPLICATE_APPLICANT"
	CodeMissingCedula      = "MISSING_CEDULA"
	CodeInvalidField       = "INVALID_FIELD"
	CodeInvalidRequisitos  = "INVALID_DECLARATIONS"
	CodeDocumentNotFound   = "DOCUMENT_NOT_FOUND"
	CodeVenueNotFound      = "VENUE_NOT_FOUND"
)

var (
	ErrDuplicateApplicant = shared.NewDomainError(CodeDuplicateApplicant,
		"Ya existe un postulante con esta cédula de identidad y complemento")
	ErrMissingCedula = shared.NewDomainError(CodeMissingCedula,
		"El parámetro cedula_identidad es requerido")
	ErrInvalidRequisitos = shared.NewDomainError(CodeInvalidRequisitos,
		"Formato de requisitos inválido")
	ErrVenueNotFound = shared.NewDomainError(CodeVenueNotFound, "Recinto no encontrado")
)

// FieldError is a validation failure on a single applicant field.
type FieldError struct {
	*shared.DomainError
	Field string
}

// NewFieldError creates a FieldError for field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{
		DomainError: shared.NewDomainError(CodeInvalidField, field+": "+message),
		Field:       field,
	}
}

// Unwrap exposes the embedded domain error to errors.As.
func (e *FieldError) Unwrap() error {
	return e.DomainError
}

// ClosedError is returned when the registration window is closed.
func ClosedError(message string) *shared.DomainError {
	return shared.NewDomainError(CodeRegistrationClosed, message)
}

// DocumentNotFoundError reports an uploaded-file reference that does not exist.
func DocumentNotFoundError(field string) *shared.DomainError {
	return shared.NewDomainError(CodeDocumentNotFound, "Archivo no encontrado: "+field)
}
