package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// registration
	"REGISTRATION_CLOSED": http.StatusForbidden,
	"DUPLICATE_APPLICANT": http.StatusBadRequest,
	"MISSING_CEDULA":      http.StatusBadRequest,
	"DOCUMENT_NOT_FOUND":  http.StatusBadRequest,
	"VENUE_NOT_FOUND":     http.StatusNotFound,
	"FILE_TOO_LARGE":      http.StatusRequestEntityTooLarge,
	"RECEIPT_NOT_FOUND":   http.StatusNotFound,
	"SERVICE_UNAVAILABLE": http.StatusServiceUnavailable,
	"ALREADY_EXISTS":      http.StatusConflict,

	// authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"USER_NOT_FOUND":      http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes
// starting with INVALID_ or MISSING_ are input errors; anything else
// unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "MISSING_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
