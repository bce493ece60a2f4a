package printing

import (
	"io"
	"time"
)

// ReceiptResult describes a stored receipt.
type ReceiptResult struct {
	Filename string `json:"pdfFilename"`
	URL      string `json:"pdfUrl"`
	Pages    int    `json:"pages"`
}

// ReceiptFile is an open receipt ready to be streamed. The caller closes
// Body.
type ReceiptFile struct {
	Filename string
	Size     int64
	ModTime  time.Time
	Body     io.ReadSeekCloser
}

// RosterResult is a rendered venue roster.
type RosterResult struct {
	Filename  string
	PDF       []byte
	Rows      int
	PageCount int
}
