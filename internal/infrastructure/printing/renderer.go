package printing

import (
	"context"
	"errors"
	"time"

	"github.com/sereci/sirepre/internal/domain/printing"
)

// HTMLRenderer turns an HTML report into a PDF.
type HTMLRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

type RenderRequest struct {
	HTML        string
	PaperSize   printing.PaperSize
	Orientation printing.Orientation
	Margins     printing.Margins // points
	Title       string
	// FooterHTML is a Chrome footer template; page numbers go in
	// <span class="pageNumber"></span>
	FooterHTML string
	Timeout    time.Duration
}

type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// ErrorCode classifies printing failures for callers that map them to
// HTTP statuses.
type ErrorCode string

const (
	ErrCodeRenderTimeout      ErrorCode = "RENDER_TIMEOUT"
	ErrCodeRenderFailed       ErrorCode = "RENDER_FAILED"
	ErrCodeInvalidHTML        ErrorCode = "INVALID_HTML"
	ErrCodeBrowserUnavailable ErrorCode = "BROWSER_UNAVAILABLE"
	ErrCodeInvalidPaperSize   ErrorCode = "INVALID_PAPER_SIZE"
	ErrCodeStorageFailed      ErrorCode = "STORAGE_FAILED"
	ErrCodeQRFailed           ErrorCode = "QR_FAILED"
	ErrCodeNotFound           ErrorCode = "RECEIPT_NOT_FOUND"
)

// RenderError is returned by every component in this package.
type RenderError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func NewRenderError(code ErrorCode, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }

// IsRenderErrorCode reports whether err wraps a RenderError with code.
func IsRenderErrorCode(err error, code ErrorCode) bool {
	var re *RenderError
	return errors.As(err, &re) && re.Code == code
}
