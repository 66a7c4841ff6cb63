package entity

import (
	"image"

	"github.com/kharcha-app/receipt-engine/constants"
)

// RawImage is a validated upload. Immutable once created; the pipeline never
// writes back into it.
type RawImage struct {
	Data     []byte
	Filename string
	Size     int64
}

// ProcessedImage is the preprocessor output handed to OCR providers. It owns
// its pixel buffer and never aliases the RawImage bytes.
type ProcessedImage struct {
	Image   image.Image
	Width   int
	Height  int
	Quality constants.QualityRating
}

// NewProcessedImage wraps a pixel buffer and rates it by its dimensions.
func NewProcessedImage(img image.Image) *ProcessedImage {
	b := img.Bounds()
	return &ProcessedImage{
		Image:   img,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Quality: constants.QualityFromDimensions(b.Dx(), b.Dy()),
	}
}
