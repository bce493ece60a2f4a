package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	m := fixedMeasurer{}
	font := Helvetica(10) // 5pt per rune

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     string
	}{
		{name: "fits", text: "abc", maxWidth: 50, want: "abc"},
		{name: "exactly at width", text: "abcdefghij", maxWidth: 50, want: "abcdefghij"},
		{name: "one point over", text: "abcdefghij", maxWidth: 49, want: "abcdef..."},
		{name: "trailing space trimmed", text: "abcd efghij", maxWidth: 40, want: "abcd..."},
		{name: "nothing fits", text: "abcdefghij", maxWidth: 5, want: Ellipsis},
		{name: "multibyte runes", text: "ñandú ñandú ñandú", maxWidth: 50, want: "ñandú ñ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.text, font, tt.maxWidth, m)
			assert.Equal(t, tt.want, got)
			if got != Ellipsis {
				assert.LessOrEqual(t, m.StringWidth(got, font), tt.maxWidth)
			}
		})
	}
}

func TestTruncate_LongInputStaysFast(t *testing.T) {
	m := fixedMeasurer{}
	font := Helvetica(10)
	text := strings.Repeat("a", 100_000)

	start := time.Now()
	got := Truncate(text, font, 400, m)
	elapsed := time.Since(start)

	assert.Equal(t, strings.Repeat("a", 77)+Ellipsis, got)
	assert.Less(t, elapsed, time.Second)
}

func TestWrapText(t *testing.T) {
	m := fixedMeasurer{}
	font := Helvetica(10)

	lines := WrapText("uno dos tres cuatro cinco", font, 40, m)
	assert.Equal(t, []string{"uno dos", "tres", "cuatro", "cinco"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, m.StringWidth(l, font), 40.0)
	}

	assert.Nil(t, WrapText("   ", font, 40, m))
	assert.Equal(t, []string{"supercalifragilistico"}, WrapText("supercalifragilistico", font, 40, m))

	decl := WrapText(DeclarationText, HelveticaOblique(8), 465, m)
	assert.Equal(t, DeclarationText, strings.Join(decl, " "))
}

func TestOrPlaceholder(t *testing.T) {
	assert.Equal(t, Placeholder, OrPlaceholder(""))
	assert.Equal(t, Placeholder, OrPlaceholder("  "))
	assert.Equal(t, "x", OrPlaceholder(" x "))
}
