package credential

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the rendered PNG edge length in pixels.
const DefaultQRSize = 256

// RenderQR renders a token as a QR PNG. Medium error correction keeps the
// symbol scannable from a phone screen while staying well inside QR
// capacity for our compact payload.
func RenderQR(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}
