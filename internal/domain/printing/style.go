package printing

// ReceiptStyle holds the palette and metrics of the receipt.
type ReceiptStyle struct {
	Paper  PaperSize
	Margin float64

	Primary    Color
	Gold       Color
	Label      Color
	Text       Color
	Border     Color
	RowEven    Color
	RowOdd     Color
	FooterFill Color
	Checked    Color
	Unchecked  Color
	Watermark  Color
	StampColor Color

	HeaderHeight  float64
	BannerHeight  float64
	SectionHeight float64
	RowHeight     float64
	CheckRowH     float64
	BlockGap      float64
	FooterReserve float64
	ContinueTop   float64

	WatermarkText  string
	WatermarkAlpha float64
	StampAlpha     float64
	StampRotation  float64
}

// DefaultReceiptStyle returns the institutional receipt style.
func DefaultReceiptStyle() ReceiptStyle {
	return ReceiptStyle{
		Paper:  PaperSizeA4,
		Margin: 45,

		Primary:    MustHex("#474747"),
		Gold:       MustHex("#828282"),
		Label:      MustHex("#2C3E50"),
		Text:       MustHex("#1A1A1A"),
		Border:     MustHex("#95A5A6"),
		RowEven:    MustHex("#FCFCFC"),
		RowOdd:     MustHex("#FFFFFF"),
		FooterFill: MustHex("#F4F6FA"),
		Checked:    MustHex("#1C1C1C"),
		Unchecked:  MustHex("#B71C1C"),
		Watermark:  MustHex("#E5E8E8"),
		StampColor: Color{R: 199, G: 0, B: 0},

		HeaderHeight:  90,
		BannerHeight:  26,
		SectionHeight: 22,
		RowHeight:     14,
		CheckRowH:     16,
		BlockGap:      4,
		FooterReserve: 216,
		ContinueTop:   50,

		WatermarkText:  "SERVICIO DE REGISTRO CÍVICO LA PAZ      ",
		WatermarkAlpha: 0.4,
		StampAlpha:     0.4,
		StampRotation:  30,
	}
}

// DeclarationText is printed above the signature line.
const DeclarationText = "Yo, el/la postulante, declaro que toda la información consignada en el " +
	"presente formulario es veraz, completa y fidedigna. Acepto que cualquier dato falso, " +
	"incompleto o alterado será motivo de inhabilitación automática e irrevocable de mi " +
	"postulación. Asimismo, manifiesto mi conformidad con la asignación de recintos " +
	"electorales de acuerdo a requerimiento del SERECI La Paz."

// StampLines is the text of the disagreement stamp.
var StampLines = []string{
	"OBSERVADO: NO ESTA DE ACUERDO CON LA",
	"ASIGNACION DE RECINTOS",
}
