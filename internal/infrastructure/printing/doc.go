// Package printing turns laid out documents into PDF files.
//
// FPDFRenderer replays a display list from the domain printing package onto
// go-pdf/fpdf using the core Helvetica faces, and FPDFMeasurer gives the
// layout engine the same glyph metrics. QREncoder writes the verification
// QR image and ReceiptStorage owns the receipt and temporary QR directories.
// ChromedpRenderer prints HTML reports through headless Chrome.
package printing
