package printing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sereci/sirepre/internal/domain/shared"
)

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeA4     PaperSize = "A4"
	PaperSizeA5     PaperSize = "A5"
	PaperSizeLetter PaperSize = "LETTER"
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA4, PaperSizeA5, PaperSizeLetter:
		return true
	}
	return false
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// Points returns the portrait page size in PostScript points.
func (p PaperSize) Points() PageSize {
	switch p {
	case PaperSizeA5:
		return PageSize{Width: 419.53, Height: 595.28}
	case PaperSizeLetter:
		return PageSize{Width: 612, Height: 792}
	default:
		return PageSize{Width: 595.28, Height: 841.89}
	}
}

// Orientation represents the page orientation for printing
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// PageSize is a page extent in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Oriented swaps width and height for landscape.
func (s PageSize) Oriented(o Orientation) PageSize {
	if o == OrientationLandscape {
		return PageSize{Width: s.Height, Height: s.Width}
	}
	return s
}

// Margins represents the page margins in points
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left float64) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top > 200 || right > 200 || bottom > 200 || left > 200 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 200pt")
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// UniformMargins returns equal margins on all sides
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// Point is a position on the page, y growing downwards.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box, y growing downwards.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Bottom returns the y of the lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Color is an opaque RGB colour.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for package-level constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
