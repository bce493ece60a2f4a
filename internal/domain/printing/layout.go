package printing

import (
	"errors"
	"strconv"
	"strings"
)

// Receipt header texts
const (
	HeaderInstitution = "ÓRGANO ELECTORAL PLURINACIONAL"
	HeaderOffice      = "SERECI - SERVICIO DE REGISTRO CIVICO LA PAZ"
	BannerTitle       = "COMPROBANTE DE POSTULACIÓN — SIREPRE"
	QRCaption         = "Verificación digital"
)

// ReceiptAssets are the image files placed on the receipt. An empty path
// skips the image.
type ReceiptAssets struct {
	LogoPath    string
	QRImagePath string
}

// Cursor is the current page and vertical position of the flowing content.
type Cursor struct {
	Page int
	Y    float64
}

var (
	errNilMeasurer = errors.New("printing: measurer is required")
	errNoCedula    = errors.New("printing: receipt requires a cédula de identidad")
)

const (
	logoSize   = 72.0
	qrSize     = 66.0
	headerGap  = 12.0 // between banner and first section
	sectionGap = 3.0  // between a section bar and its first block
	tileStep   = 35.0
)

// receiptLayout accumulates operations while the receipt is laid out.
type receiptLayout struct {
	style ReceiptStyle
	m     Measurer
	doc   *Document
	page  PageSize
	group string
}

// LayoutReceipt lays out the receipt of snapshot as a display list. The
// first page carries the header, the last page the footer and, when the
// observation carries the disagreement marker, the stamp as its final
// operation.
func LayoutReceipt(s ReceiptSnapshot, assets ReceiptAssets, m Measurer, style ReceiptStyle) (*Document, error) {
	if m == nil {
		return nil, errNilMeasurer
	}
	if s.CedulaIdentidad <= 0 {
		return nil, errNoCedula
	}

	l := &receiptLayout{
		style: style,
		m:     m,
		page:  style.Paper.Points(),
	}
	l.doc = &Document{Size: l.page}
	l.addPage()

	c := l.header(s, assets)
	content := s.Content()
	for _, section := range content.Sections {
		c = l.section(c, section)
	}
	c = l.checklist(c, content.Checklist)
	if content.Observation != nil {
		c = l.section(c, *content.Observation)
	}

	l.footer(s)
	if s.ShowsStamp() {
		l.stamp()
	}
	return l.doc, nil
}

// ContentBottom is the lowest y flowing content may reach on any page.
func (s ReceiptStyle) ContentBottom() float64 {
	return s.Paper.Points().Height - s.FooterReserve
}

// ContentTop is the y where content resumes on continuation pages.
func (s ReceiptStyle) ContentTop() float64 {
	return s.Margin + s.ContinueTop
}

func (l *receiptLayout) width() float64  { return l.page.Width }
func (l *receiptLayout) height() float64 { return l.page.Height }
func (l *receiptLayout) innerWidth() float64 {
	return l.page.Width - 2*l.style.Margin
}

func (l *receiptLayout) emit(page int, op Op) {
	l.doc.Pages[page].Ops = append(l.doc.Pages[page].Ops, op)
}

func (l *receiptLayout) last() int {
	return len(l.doc.Pages) - 1
}

func (l *receiptLayout) addPage() int {
	l.doc.Pages = append(l.doc.Pages, Page{})
	p := l.last()
	l.watermark(p)
	return p
}

// ensure moves the cursor to a new page when needed points do not fit
// above the footer reservation.
func (l *receiptLayout) ensure(c Cursor, needed float64) Cursor {
	if c.Y+needed <= l.style.ContentBottom() {
		return c
	}
	return Cursor{Page: l.addPage(), Y: l.style.ContentTop()}
}

func (l *receiptLayout) capacity() float64 {
	return l.style.ContentBottom() - l.style.ContentTop()
}

func (l *receiptLayout) watermark(page int) {
	st := l.style
	font := Helvetica(6)
	textW := l.m.StringWidth(st.WatermarkText, font)
	if textW <= 0 {
		return
	}
	meta := Meta{Tag: TagWatermark}
	for i := -10; i < 30; i++ {
		for j := -5; j < 15; j++ {
			l.emit(page, TextOp{
				Meta:     meta,
				X:        float64(j) * textW,
				Y:        l.height() - float64(i)*tileStep,
				Text:     st.WatermarkText,
				Font:     font,
				Color:    st.Watermark,
				Alpha:    st.WatermarkAlpha,
				Rotation: 35,
			})
		}
	}
}

func (l *receiptLayout) header(s ReceiptSnapshot, assets ReceiptAssets) Cursor {
	st := l.style
	mg := st.Margin
	white := Color{R: 255, G: 255, B: 255}
	meta := Meta{Tag: TagHeader}

	l.emit(0, RectOp{Meta: meta, Rect: Rect{X: mg, Y: mg, W: l.innerWidth(), H: st.HeaderHeight}, Fill: &white})
	l.emit(0, LineOp{
		Meta:  meta,
		From:  Point{X: mg, Y: mg + st.HeaderHeight},
		To:    Point{X: l.width() - mg, Y: mg + st.HeaderHeight},
		Color: st.Gold,
		Width: 2.5,
	})

	if assets.LogoPath != "" {
		l.emit(0, ImageOp{
			Meta: Meta{Tag: TagLogo},
			Path: assets.LogoPath,
			Rect: Rect{X: mg + 4, Y: mg + 9, W: logoSize, H: logoSize},
		})
	}

	qrX := l.width() - mg - qrSize - 4
	qrY := mg + 12
	if assets.QRImagePath != "" {
		qrMeta := Meta{Tag: TagQRCode}
		border := st.Border
		l.emit(0, RectOp{Meta: qrMeta, Rect: Rect{X: qrX - 2, Y: qrY - 2, W: qrSize + 4, H: qrSize + 4}, Stroke: &border, LineWidth: 0.5})
		l.emit(0, ImageOp{Meta: qrMeta, Path: assets.QRImagePath, Rect: Rect{X: qrX, Y: qrY, W: qrSize, H: qrSize}})
		l.emit(0, TextOp{
			Meta:  qrMeta,
			X:     qrX + qrSize/2,
			Y:     qrY + qrSize + 8,
			Text:  QRCaption,
			Font:  Helvetica(5.5),
			Color: st.Label,
			Align: AlignCenter,
		})
	}

	textX := mg + logoSize + 12
	cx := textX + (qrX-12-textX)/2
	midY := mg + st.HeaderHeight/2
	l.emit(0, TextOp{Meta: meta, X: cx, Y: midY - 24, Text: HeaderInstitution, Font: HelveticaBold(10.5), Color: st.Primary, Align: AlignCenter})
	l.emit(0, TextOp{Meta: meta, X: cx, Y: midY - 10, Text: HeaderOffice, Font: HelveticaBold(9), Color: st.Primary, Align: AlignCenter})
	l.emit(0, TextOp{
		Meta:  meta,
		X:     cx,
		Y:     midY + 12,
		Text:  "Fecha de emisión: " + s.IssuedAt.Format("02/01/2006  15:04:05"),
		Font:  Helvetica(7.5),
		Color: st.Label,
		Align: AlignCenter,
	})

	bannerY := mg + st.HeaderHeight
	banner := Meta{Tag: TagBanner}
	primary := st.Primary
	l.emit(0, RectOp{Meta: banner, Rect: Rect{X: mg, Y: bannerY, W: l.innerWidth(), H: st.BannerHeight}, Fill: &primary})
	l.emit(0, TextOp{
		Meta:  banner,
		X:     l.width() / 2,
		Y:     bannerY + st.BannerHeight - 8,
		Text:  BannerTitle,
		Font:  HelveticaBold(11),
		Color: white,
		Align: AlignCenter,
	})
	l.emit(0, LineOp{
		Meta:  banner,
		From:  Point{X: mg, Y: bannerY + st.BannerHeight},
		To:    Point{X: l.width() - mg, Y: bannerY + st.BannerHeight},
		Color: st.Gold,
		Width: 2,
	})

	return Cursor{Page: 0, Y: bannerY + st.BannerHeight + headerGap}
}

func (l *receiptLayout) blockHeight(b FieldBlock) float64 {
	return float64(b.Rows())*l.style.RowHeight + l.style.BlockGap
}

// sectionBar draws the header bar at c without any page check.
func (l *receiptLayout) sectionBar(c Cursor, title, tag string) Cursor {
	st := l.style
	mg := st.Margin
	meta := Meta{Tag: tag, Group: title}
	primary, gold := st.Primary, st.Gold
	l.emit(c.Page, RectOp{Meta: meta, Rect: Rect{X: mg, Y: c.Y, W: l.innerWidth(), H: st.SectionHeight}, Fill: &primary})
	l.emit(c.Page, RectOp{Meta: meta, Rect: Rect{X: mg, Y: c.Y, W: 5, H: st.SectionHeight}, Fill: &gold})
	l.emit(c.Page, TextOp{
		Meta:  meta,
		X:     mg + 12,
		Y:     c.Y + 16,
		Text:  title,
		Font:  HelveticaBold(10),
		Color: Color{R: 255, G: 255, B: 255},
	})
	c.Y += st.SectionHeight
	return c
}

func (l *receiptLayout) section(c Cursor, s Section) Cursor {
	l.group = s.Title
	defer func() { l.group = "" }()

	needed := l.style.SectionHeight + sectionGap
	if len(s.Blocks) > 0 {
		first := s.Blocks[0]
		if h := needed + l.blockHeight(first); h <= l.capacity() {
			needed = h
		} else {
			needed += l.style.RowHeight
		}
	}
	c = l.ensure(c, needed)
	c = l.sectionBar(c, s.Title, TagSectionHeader)
	c.Y += sectionGap

	for _, b := range s.Blocks {
		c = l.fieldBlock(c, b)
	}
	return c
}

func (l *receiptLayout) fieldBlock(c Cursor, b FieldBlock) Cursor {
	st := l.style
	cols := b.Columns
	if cols < 1 {
		cols = 1
	}
	whole := l.blockHeight(b) <= l.capacity()
	if whole {
		c = l.ensure(c, l.blockHeight(b))
	}

	colW := l.innerWidth() / float64(cols)
	labelFont := HelveticaBold(9)
	valueFont := Helvetica(9)
	labelW := l.labelWidth(b, labelFont)

	for r := 0; r < b.Rows(); r++ {
		if !whole {
			c = l.ensure(c, st.RowHeight)
		}
		fill := st.RowEven
		if r%2 == 1 {
			fill = st.RowOdd
		}
		for col := 0; col < cols; col++ {
			i := r*cols + col
			if i >= len(b.Fields) {
				break
			}
			f := b.Fields[i]
			cellX := st.Margin + float64(col)*colW
			border := st.Border
			cellFill := fill
			l.emit(c.Page, RectOp{
				Meta:      Meta{Tag: TagFieldRow, Group: l.group},
				Rect:      Rect{X: cellX, Y: c.Y, W: colW, H: st.RowHeight},
				Fill:      &cellFill,
				Stroke:    &border,
				LineWidth: 0.3,
			})
			l.emit(c.Page, TextOp{
				Meta:  Meta{Tag: TagFieldLabel, Group: l.group},
				X:     cellX + 6,
				Y:     c.Y + 9.5,
				Text:  f.Label + ":",
				Font:  labelFont,
				Color: st.Label,
			})
			l.emit(c.Page, TextOp{
				Meta:  Meta{Tag: TagFieldValue, Group: l.group},
				X:     cellX + labelW + 12,
				Y:     c.Y + 9.5,
				Text:  Truncate(OrPlaceholder(f.Value), valueFont, colW-labelW-16, l.m),
				Font:  valueFont,
				Color: st.Text,
			})
		}
		c.Y += st.RowHeight
	}
	c.Y += st.BlockGap
	return c
}

// labelWidth is the widest label of the block, so values line up.
func (l *receiptLayout) labelWidth(b FieldBlock, font Font) float64 {
	w := 0.0
	for _, f := range b.Fields {
		if fw := l.m.StringWidth(f.Label+":", font); fw > w {
			w = fw
		}
	}
	return w
}

func (l *receiptLayout) checklist(c Cursor, cl Checklist) Cursor {
	st := l.style
	l.group = cl.Title
	defer func() { l.group = "" }()

	rows := (len(cl.Items) + 1) / 2
	needed := st.SectionHeight + float64(rows)*st.CheckRowH + st.BlockGap
	whole := needed <= l.capacity()
	if whole {
		c = l.ensure(c, needed)
	} else {
		c = l.ensure(c, st.SectionHeight+st.CheckRowH)
	}
	c = l.sectionBar(c, cl.Title, TagChecklistHeader)

	colW := l.innerWidth() / 2
	for r := 0; r < rows; r++ {
		if !whole {
			c = l.ensure(c, st.CheckRowH)
		}
		for col := 0; col < 2; col++ {
			i := r*2 + col
			if i >= len(cl.Items) {
				break
			}
			l.checkItem(c, st.Margin+float64(col)*colW, cl.Items[i].Label, cl.Items[i].Value)
		}
		c.Y += st.CheckRowH
	}
	c.Y += st.BlockGap
	return c
}

func (l *receiptLayout) checkItem(c Cursor, cellX float64, label string, value bool) {
	st := l.style
	color := st.Unchecked
	if value {
		color = st.Checked
	}
	top := c.Y
	row := Meta{Tag: TagChecklistRow, Group: l.group}
	glyph := Meta{Tag: TagCheckGlyph, Group: l.group}

	boxColor := color
	l.emit(c.Page, RectOp{Meta: row, Rect: Rect{X: cellX + 6, Y: top + 2, W: 9, H: 9}, Stroke: &boxColor, LineWidth: 1.2})
	if value {
		l.emit(c.Page, PolylineOp{
			Meta:   glyph,
			Points: []Point{{X: cellX + 7.5, Y: top + 6.5}, {X: cellX + 10, Y: top + 9.5}, {X: cellX + 14, Y: top + 3.5}},
			Color:  color,
			Width:  1.5,
		})
	} else {
		l.emit(c.Page, LineOp{Meta: glyph, From: Point{X: cellX + 8, Y: top + 4}, To: Point{X: cellX + 13, Y: top + 9}, Color: color, Width: 1.2})
		l.emit(c.Page, LineOp{Meta: glyph, From: Point{X: cellX + 8, Y: top + 9}, To: Point{X: cellX + 13, Y: top + 4}, Color: color, Width: 1.2})
	}
	l.emit(c.Page, TextOp{
		Meta:  row,
		X:     cellX + 22,
		Y:     top + 10,
		Text:  label,
		Font:  Helvetica(8.5),
		Color: st.Text,
	})
}

// footer draws the declaration and signature block at a fixed position on
// the last page.
func (l *receiptLayout) footer(s ReceiptSnapshot) {
	st := l.style
	p := l.last()
	mg := st.Margin
	w, h := l.width(), l.height()
	meta := Meta{Tag: TagFooter}

	fill := st.FooterFill
	l.emit(p, RectOp{Meta: meta, Rect: Rect{X: mg, Y: h - 210, W: l.innerWidth(), H: 105}, Fill: &fill})
	l.emit(p, LineOp{Meta: meta, From: Point{X: mg, Y: h - 204}, To: Point{X: w - mg, Y: h - 204}, Color: st.Primary, Width: 1.5})
	l.emit(p, LineOp{Meta: meta, From: Point{X: mg, Y: h - 201}, To: Point{X: w - mg, Y: h - 201}, Color: st.Gold, Width: 0.8})
	l.emit(p, TextOp{Meta: meta, X: mg, Y: h - 190, Text: "DECLARACIÓN.", Font: HelveticaBold(7.5), Color: st.Primary})

	declFont := HelveticaOblique(8)
	lines := WrapText(DeclarationText, declFont, l.innerWidth()-40, l.m)
	for i, line := range lines {
		l.emit(p, TextOp{
			Meta:  meta,
			X:     mg,
			Y:     h - 159 - float64(len(lines)-1-i)*11,
			Text:  line,
			Font:  declFont,
			Color: st.Text,
		})
	}

	l.emit(p, LineOp{Meta: meta, From: Point{X: w/2 - 110, Y: h - 120}, To: Point{X: w/2 + 110, Y: h - 120}, Color: st.Primary, Width: 0.8})
	l.emit(p, TextOp{Meta: meta, X: w / 2, Y: h - 108, Text: strings.ToUpper(OrPlaceholder(s.FullName())), Font: HelveticaBold(9), Color: st.Text, Align: AlignCenter})
	l.emit(p, TextOp{Meta: meta, X: w / 2, Y: h - 98, Text: "Firma del postulante", Font: Helvetica(7.5), Color: st.Label, Align: AlignCenter})

	small := Helvetica(6.5)
	l.emit(p, TextOp{Meta: meta, X: mg, Y: h - 75, Text: "Nro. de registro: " + s.RegistrationNumber(), Font: small, Color: st.Label})
	l.emit(p, TextOp{Meta: meta, X: w - mg, Y: h - 75, Text: "Documento generado electrónicamente", Font: small, Color: st.Label, Align: AlignRight})
}

func (l *receiptLayout) stamp() {
	st := l.style
	l.emit(l.last(), StampOp{
		Meta:     Meta{Tag: TagStamp},
		Center:   Point{X: l.width() / 2, Y: l.height() / 2},
		Lines:    StampLines,
		LineGap:  30,
		Font:     HelveticaBold(20),
		Color:    st.StampColor,
		Alpha:    st.StampAlpha,
		Rotation: st.StampRotation,
	})
}

// ReceiptFilename is the fixed file name of the receipt of ci.
func ReceiptFilename(ci int64) string {
	return "comprobante_" + strconv.FormatInt(ci, 10) + ".pdf"
}
