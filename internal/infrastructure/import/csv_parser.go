// Package csvimport loads reference data such as venues from CSV files.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// CSVParser reads a header row followed by data rows addressed by header
// name. A leading UTF-8 BOM is dropped.
type CSVParser struct {
	delimiter  rune
	headerMap  map[string]int
	headers    []string
	currentRow int
	reader     *csv.Reader
}

// ParserOption configures CSVParser
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// NewCSVParser wraps r. It fails on empty input and on input that is not
// UTF-8.
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	p := &CSVParser{delimiter: ',', headerMap: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}

	br := bufio.NewReaderSize(r, 8192)
	bom, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(head))) == 0 {
		return nil, ErrEmptyFile
	}
	if !validUTF8Prefix(head) {
		return nil, ErrInvalidEncoding
	}

	p.reader = csv.NewReader(br)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1
	return p, nil
}

// validUTF8Prefix allows the peek window to end inside a multi-byte rune.
func validUTF8Prefix(b []byte) bool {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

// ParseHeader reads the header row.
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	p.headers = make([]string, len(record))
	for i, h := range record {
		h = strings.TrimSpace(h)
		p.headers[i] = h
		p.headerMap[h] = i
	}
	p.currentRow = 1
	return nil
}

// Headers returns the parsed header names
func (p *CSVParser) Headers() []string {
	return p.headers
}

// MissingHeaders returns the required headers absent from the file.
func (p *CSVParser) MissingHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.headerMap[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a data row keyed by header. LineNumber counts the header as 1.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed value of a column, empty when absent.
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty reports whether every cell is blank.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next row or io.EOF.
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, NewRowError(p.currentRow, "", ErrCodeImportMalformedRow, err.Error())
	}

	row := &Row{LineNumber: p.currentRow, Data: make(map[string]string, len(p.headers))}
	for i, header := range p.headers {
		if i < len(record) {
			row.Data[header] = strings.TrimSpace(record[i])
		} else {
			row.Data[header] = ""
		}
	}
	return row, nil
}
