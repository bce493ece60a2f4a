package printing

// Font styles understood by the renderer.
const (
	StyleRegular = ""
	StyleBold    = "B"
	StyleOblique = "I"
)

// Font selects a core PDF font.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Helvetica returns the regular Helvetica face at size.
func Helvetica(size float64) Font {
	return Font{Family: "Helvetica", Style: StyleRegular, Size: size}
}

// HelveticaBold returns the bold Helvetica face at size.
func HelveticaBold(size float64) Font {
	return Font{Family: "Helvetica", Style: StyleBold, Size: size}
}

// HelveticaOblique returns the oblique Helvetica face at size.
func HelveticaOblique(size float64) Font {
	return Font{Family: "Helvetica", Style: StyleOblique, Size: size}
}

// Measurer reports the advance width of text set in a font, in points.
type Measurer interface {
	StringWidth(text string, font Font) float64
}
