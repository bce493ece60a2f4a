package dto

import "github.com/sereci/sirepre/internal/domain/shared"

// Response is the envelope of staff API responses. Message duplicates
// Error.Message at the top level, where the public form clients read it.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the page returned in Data.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	p := shared.NewPaginated[struct{}](nil, total, page, pageSize)
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: p.Total, Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages},
	}
}

func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Message: message,
		Error:   &ErrorInfo{Code: code, Message: message, RequestID: requestID},
	}
}

// NewValidationErrorResponse is a VALIDATION_ERROR listing the failed
// fields.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	r := NewErrorResponse(ErrCodeValidation, message, requestID)
	r.Error.Details = details
	return r
}
