package printing

// Tags classify operations so renderers and tests can find them.
const (
	TagWatermark       = "watermark"
	TagHeader          = "header"
	TagLogo            = "logo"
	TagQRCode          = "qr"
	TagBanner          = "banner"
	TagSectionHeader   = "section-header"
	TagFieldRow        = "field-row"
	TagFieldLabel      = "field-label"
	TagFieldValue      = "field-value"
	TagChecklistHeader = "checklist-header"
	TagChecklistRow    = "checklist-row"
	TagCheckGlyph      = "check-glyph"
	TagFooter          = "footer"
	TagStamp           = "stamp"
)

// Align is the horizontal anchoring of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Meta is shared by every operation. Group names the section an operation
// belongs to, empty outside sections.
type Meta struct {
	Tag   string
	Group string
}

// Op is one drawing operation. Implementations are value types.
type Op interface {
	meta() Meta
}

// RectOp draws a filled and/or stroked rectangle.
type RectOp struct {
	Meta
	Rect      Rect
	Fill      *Color
	Stroke    *Color
	LineWidth float64
}

// LineOp draws a straight segment.
type LineOp struct {
	Meta
	From  Point
	To    Point
	Color Color
	Width float64
}

// PolylineOp strokes an open path through Points.
type PolylineOp struct {
	Meta
	Points []Point
	Color  Color
	Width  float64
}

// TextOp draws a single line of text with its baseline at Y. X is the left
// edge, centre or right edge depending on Align. A non-zero Rotation turns
// the run counter-clockwise by that many degrees around (X, Y).
type TextOp struct {
	Meta
	X        float64
	Y        float64
	Text     string
	Font     Font
	Color    Color
	Align    Align
	Alpha    float64 // 0 means opaque
	Rotation float64
}

// ImageOp places an image file into Rect.
type ImageOp struct {
	Meta
	Path string
	Rect Rect
}

// StampOp draws centred lines rotated around Center. Line i has its
// baseline LineGap*(len(Lines)-1-i) above Center before rotation, so the
// last line sits on the centre.
type StampOp struct {
	Meta
	Center   Point
	Lines    []string
	LineGap  float64
	Font     Font
	Color    Color
	Alpha    float64
	Rotation float64
}

func (o RectOp) meta() Meta     { return o.Meta }
func (o LineOp) meta() Meta     { return o.Meta }
func (o PolylineOp) meta() Meta { return o.Meta }
func (o TextOp) meta() Meta     { return o.Meta }
func (o ImageOp) meta() Meta    { return o.Meta }
func (o StampOp) meta() Meta    { return o.Meta }

// TagOf returns the tag of op.
func TagOf(op Op) string {
	return op.meta().Tag
}

// GroupOf returns the section group of op.
func GroupOf(op Op) string {
	return op.meta().Group
}

// Page is the ordered list of operations painted on one page. Later
// operations are drawn on top of earlier ones.
type Page struct {
	Ops []Op
}

// Document is a laid out, renderer-independent document.
type Document struct {
	Size  PageSize
	Pages []Page
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Find returns every operation with tag, with the index of its page.
func (d *Document) Find(tag string) []Located {
	var out []Located
	for p, page := range d.Pages {
		for i, op := range page.Ops {
			if TagOf(op) == tag {
				out = append(out, Located{Page: p, Index: i, Op: op})
			}
		}
	}
	return out
}

// Texts returns the text of every TextOp and StampOp line, in paint order.
func (d *Document) Texts() []string {
	var out []string
	for _, page := range d.Pages {
		for _, op := range page.Ops {
			switch o := op.(type) {
			case TextOp:
				out = append(out, o.Text)
			case StampOp:
				out = append(out, o.Lines...)
			}
		}
	}
	return out
}

// Located is an operation together with its position in the document.
type Located struct {
	Page  int
	Index int
	Op    Op
}
