package printing

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/sereci/sirepre/internal/domain/printing"
	"golang.org/x/text/encoding/charmap"
)

// toWinAnsi encodes s in Windows-1252, the encoding of the PDF core fonts.
// Runes outside the code page become '?'.
func toWinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

// FPDFMeasurer measures text with the fpdf core font metrics, so the
// layout engine and FPDFRenderer agree on every width.
type FPDFMeasurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
}

// NewFPDFMeasurer creates a measurer working in points.
func NewFPDFMeasurer() *FPDFMeasurer {
	return &FPDFMeasurer{pdf: fpdf.New("P", "pt", "A4", "")}
}

// StringWidth implements printing.Measurer.
func (m *FPDFMeasurer) StringWidth(text string, font printing.Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(toWinAnsi(text))
}

var _ printing.Measurer = (*FPDFMeasurer)(nil)
