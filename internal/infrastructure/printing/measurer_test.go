package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/sereci/sirepre/internal/domain/printing"
	"github.com/stretchr/testify/assert"
)

func TestToWinAnsi(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "SIREPRE 2025", "SIREPRE 2025"},
		{"latin accents", "Ñandú", "\xd1and\xfa"},
		{"em dash", "a — b", "a \x97 b"},
		{"outside code page", "✓ ok", "? ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toWinAnsi(tt.in))
		})
	}
}

func TestFPDFMeasurer_StringWidth(t *testing.T) {
	m := NewFPDFMeasurer()

	// Helvetica "A" is 667 units wide
	assert.InDelta(t, 6.67, m.StringWidth("A", printing.Helvetica(10)), 0.001)
	assert.InDelta(t, 13.34, m.StringWidth("AA", printing.Helvetica(10)), 0.001)
	assert.Zero(t, m.StringWidth("", printing.Helvetica(10)))

	// uppercase glyphs share widths across weights, lowercase ones do not
	regular := m.StringWidth("recinto", printing.Helvetica(8))
	bold := m.StringWidth("recinto", printing.HelveticaBold(8))
	assert.Greater(t, bold, regular)

	// accented letters measure like their base letter
	assert.InDelta(t, m.StringWidth("E", printing.Helvetica(9)), m.StringWidth("É", printing.Helvetica(9)), 0.001)
}

func TestFPDFMeasurer_TruncateFits(t *testing.T) {
	m := NewFPDFMeasurer()
	font := printing.Helvetica(7.5)
	long := "Unidad Educativa Mariscal Andrés de Santa Cruz y Calahumana turno tarde"

	got := printing.Truncate(long, font, 120, m)
	assert.NotEqual(t, long, got)
	assert.LessOrEqual(t, m.StringWidth(got, font), 120.0)
	assert.Equal(t, "...", got[len(got)-3:])
}

func TestFPDFMeasurer_TruncateLongValue(t *testing.T) {
	m := NewFPDFMeasurer()
	font := printing.Helvetica(9)

	start := time.Now()
	got := printing.Truncate(strings.Repeat("a", 100_000), font, 400, m)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.LessOrEqual(t, m.StringWidth(got, font), 400.0)
	assert.True(t, strings.HasSuffix(got, printing.Ellipsis))
}
