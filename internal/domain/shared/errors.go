package shared

import "errors"

// DomainError is a business rule failure. Code is stable and reaches API
// clients; Message is the human-readable text.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code, so a copy with a more specific message still
// satisfies errors.Is against the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Recurso no encontrado")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "El recurso ya existe")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Datos inválidos")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "No autenticado")
	ErrForbidden     = NewDomainError("FORBIDDEN", "No tiene permiso para esta acción")
)

// AsDomainError finds the first *DomainError in err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}
