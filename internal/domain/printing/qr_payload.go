package printing

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// QRPayload is the data embedded in the receipt QR code.
type QRPayload struct {
	CI               string `json:"ci"`
	Complemento      string `json:"complemento"`
	Nombres          string `json:"nombres"`
	FechaNacimiento  string `json:"fechaNacimiento"`
	FechaPostulacion string `json:"fechaPostulacion"`
}

// NewQRPayload builds the payload for snapshot.
func NewQRPayload(s ReceiptSnapshot) QRPayload {
	p := QRPayload{
		CI:          strconv.FormatInt(s.CedulaIdentidad, 10),
		Complemento: s.Complemento,
		Nombres:     s.FullName(),
	}
	if !s.FechaNacimiento.IsZero() {
		p.FechaNacimiento = s.FechaNacimiento.Format("2006-01-02")
	}
	if !s.RegisteredAt.IsZero() {
		p.FechaPostulacion = s.RegisteredAt.Format("2006-01-02T15:04:05")
	}
	return p
}

// Encode returns the base64 encoded JSON text stored in the QR code.
func (p QRPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal qr payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeQRPayload parses text read back from a QR code.
func DecodeQRPayload(text string) (QRPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return QRPayload{}, fmt.Errorf("invalid qr payload encoding: %w", err)
	}
	var p QRPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return QRPayload{}, fmt.Errorf("invalid qr payload: %w", err)
	}
	return p, nil
}
