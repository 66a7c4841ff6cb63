package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kharcha-app/receipt-engine/constants"
)

func TestNewProcessedImage(t *testing.T) {
	tests := []struct {
		w, h int
		want constants.QualityRating
	}{
		{100, 100, constants.QualityPoor},
		{640, 480, constants.QualityFair},
		{1024, 768, constants.QualityGood},
	}
	for _, tt := range tests {
		pi := NewProcessedImage(image.NewGray(image.Rect(0, 0, tt.w, tt.h)))
		assert.Equal(t, tt.w, pi.Width)
		assert.Equal(t, tt.h, pi.Height)
		assert.Equal(t, tt.want, pi.Quality)
	}
}

func TestNewProcessedImage_NonZeroOrigin(t *testing.T) {
	pi := NewProcessedImage(image.NewGray(image.Rect(10, 10, 910, 710)))
	assert.Equal(t, 900, pi.Width)
	assert.Equal(t, 700, pi.Height)
	assert.Equal(t, constants.QualityGood, pi.Quality)
}
