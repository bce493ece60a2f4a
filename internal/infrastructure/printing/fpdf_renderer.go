package printing

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/sereci/sirepre/internal/domain/printing"
)

// FPDFRendererConfig contains configuration for the fpdf renderer
type FPDFRendererConfig struct {
	Title   string
	Author  string
	Creator string
	// Compress enables stream compression. Tests disable it to inspect the
	// content stream.
	Compress bool
}

// DefaultFPDFRendererConfig returns the configuration used for receipts.
func DefaultFPDFRendererConfig() FPDFRendererConfig {
	return FPDFRendererConfig{
		Title:    "Comprobante de postulación",
		Author:   "SERECI La Paz",
		Creator:  "SIREPRE",
		Compress: true,
	}
}

// FPDFRenderer paints a printing.Document with go-pdf/fpdf.
type FPDFRenderer struct {
	config FPDFRendererConfig
}

// NewFPDFRenderer creates a renderer.
func NewFPDFRenderer(config FPDFRendererConfig) *FPDFRenderer {
	return &FPDFRenderer{config: config}
}

// Render replays every page of doc in order and returns the PDF bytes.
func (r *FPDFRenderer) Render(doc *printing.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "document has no pages", nil)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Size.Width, Ht: doc.Size.Height},
	})
	pdf.SetCompression(r.config.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(r.config.Title, true)
	pdf.SetAuthor(r.config.Author, true)
	pdf.SetCreator(r.config.Creator, true)

	p := &painter{pdf: pdf}
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			p.paint(op)
			if pdf.Err() {
				return nil, NewRenderError(ErrCodeRenderFailed,
					fmt.Sprintf("painting %s operation", printing.TagOf(op)), pdf.Error())
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "writing PDF", err)
	}
	return buf.Bytes(), nil
}

type painter struct {
	pdf *fpdf.Fpdf
}

func (p *painter) paint(op printing.Op) {
	switch o := op.(type) {
	case printing.RectOp:
		p.rect(o)
	case printing.LineOp:
		p.setDraw(o.Color)
		p.pdf.SetLineWidth(o.Width)
		p.pdf.Line(o.From.X, o.From.Y, o.To.X, o.To.Y)
	case printing.PolylineOp:
		if len(o.Points) < 2 {
			return
		}
		p.setDraw(o.Color)
		p.pdf.SetLineWidth(o.Width)
		p.pdf.SetLineCapStyle("round")
		p.pdf.SetLineJoinStyle("round")
		p.pdf.MoveTo(o.Points[0].X, o.Points[0].Y)
		for _, pt := range o.Points[1:] {
			p.pdf.LineTo(pt.X, pt.Y)
		}
		p.pdf.DrawPath("D")
		p.pdf.SetLineCapStyle("butt")
		p.pdf.SetLineJoinStyle("miter")
	case printing.TextOp:
		p.text(o)
	case printing.ImageOp:
		p.image(o)
	case printing.StampOp:
		p.stamp(o)
	}
}

func (p *painter) rect(o printing.RectOp) {
	style := ""
	if o.Fill != nil {
		p.setFill(*o.Fill)
		style += "F"
	}
	if o.Stroke != nil {
		p.setDraw(*o.Stroke)
		p.pdf.SetLineWidth(o.LineWidth)
		style += "D"
	}
	if style == "" {
		return
	}
	p.pdf.Rect(o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, style)
}

func (p *painter) text(o printing.TextOp) {
	p.pdf.SetFont(o.Font.Family, o.Font.Style, o.Font.Size)
	p.pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
	s := toWinAnsi(o.Text)

	x := o.X
	switch o.Align {
	case printing.AlignCenter:
		x -= p.pdf.GetStringWidth(s) / 2
	case printing.AlignRight:
		x -= p.pdf.GetStringWidth(s)
	}

	translucent := o.Alpha > 0 && o.Alpha < 1
	if translucent {
		p.pdf.SetAlpha(o.Alpha, "Normal")
	}
	if o.Rotation != 0 {
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(o.Rotation, o.X, o.Y)
	}
	p.pdf.Text(x, o.Y, s)
	if o.Rotation != 0 {
		p.pdf.TransformEnd()
	}
	if translucent {
		p.pdf.SetAlpha(1, "Normal")
	}
}

func (p *painter) image(o printing.ImageOp) {
	imageType := strings.ToUpper(strings.TrimPrefix(filepath.Ext(o.Path), "."))
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	p.pdf.ImageOptions(o.Path, o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, false,
		fpdf.ImageOptions{ImageType: imageType}, 0, "")
}

func (p *painter) stamp(o printing.StampOp) {
	p.pdf.SetFont(o.Font.Family, o.Font.Style, o.Font.Size)
	p.pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
	p.pdf.SetAlpha(o.Alpha, "Normal")
	p.pdf.TransformBegin()
	p.pdf.TransformRotate(o.Rotation, o.Center.X, o.Center.Y)
	n := len(o.Lines)
	for i, line := range o.Lines {
		s := toWinAnsi(line)
		y := o.Center.Y - o.LineGap*float64(n-1-i)
		p.pdf.Text(o.Center.X-p.pdf.GetStringWidth(s)/2, y, s)
	}
	p.pdf.TransformEnd()
	p.pdf.SetAlpha(1, "Normal")
}

func (p *painter) setFill(c printing.Color) {
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (p *painter) setDraw(c printing.Color) {
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
