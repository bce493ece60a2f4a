package printing

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/printing"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// QRFill is the module colour of the verification code.
var QRFill = color.RGBA{R: 0x00, G: 0x3A, B: 0x70, A: 0xFF}

const defaultQRPixels = 300

// QREncoder writes verification QR codes as PNG files in a temporary
// directory. Each call gets its own file, so concurrent receipts for the
// same cédula never share an image.
type QREncoder struct {
	dir    string
	pixels int
	logger *zap.Logger
}

// NewQREncoder creates an encoder writing into dir, creating it if needed.
func NewQREncoder(dir string, logger *zap.Logger) (*QREncoder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create QR directory: "+dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QREncoder{dir: dir, pixels: defaultQRPixels, logger: logger}, nil
}

// Encode renders payload with medium error correction and returns the
// path of the new image. The caller owns the file and must Remove it.
func (e *QREncoder) Encode(payload printing.QRPayload, ci int64) (string, error) {
	text, err := payload.Encode()
	if err != nil {
		return "", NewRenderError(ErrCodeQRFailed, "encoding QR payload", err)
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", NewRenderError(ErrCodeQRFailed, "building QR code", err)
	}
	code.ForegroundColor = QRFill
	code.BackgroundColor = color.White

	path := filepath.Join(e.dir, "qr_"+strconv.FormatInt(ci, 10)+"_"+uuid.NewString()[:8]+".png")
	if err := code.WriteFile(e.pixels, path); err != nil {
		_ = os.Remove(path)
		return "", NewRenderError(ErrCodeQRFailed, fmt.Sprintf("writing QR image for %d", ci), err)
	}
	return path, nil
}

// Remove deletes an image returned by Encode. A missing file is ignored.
func (e *QREncoder) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("failed to remove temporary QR image", zap.String("path", path), zap.Error(err))
	}
}
