package csvimport

import (
	"errors"
	"fmt"
)

// Import error codes
const (
	ErrCodeImportMalformedRow  = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeImportRequiredField = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeImportInvalidValue  = "ERR_IMPORT_INVALID_VALUE"
	ErrCodeImportStore         = "ERR_IMPORT_STORE"
)

var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not UTF-8
	ErrInvalidEncoding = errors.New("CSV file must be UTF-8 encoded")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// MissingColumnsError lists required headers the file lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("CSV file is missing required columns: %v", e.Columns)
}

// RowError is a problem with one row. The import goes on with the next row.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}

// ErrorCollection keeps the first maxErrors row errors and counts the rest.
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection; maxErrors <= 0 means 100.
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{maxErrors: maxErrors}
}

// Add records err.
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// Errors returns the kept errors.
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount includes errors dropped past the limit.
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// IsTruncated reports whether errors were dropped.
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}
