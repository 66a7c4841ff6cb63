package ocr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// encodePNG serializes the processed pixel buffer for providers that take
// encoded bytes or files.
func encodePNG(img *entity.ProcessedImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
