package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityFromDimensions(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		want   QualityRating
	}{
		{"narrow", 199, 1000, QualityPoor},
		{"short", 1000, 199, QualityPoor},
		{"exactly at poor boundary", 200, 200, QualityFair},
		{"good threshold", 800, 600, QualityGood},
		{"just below good width", 799, 600, QualityFair},
		{"just below good height", 800, 599, QualityFair},
		{"large", 2000, 2000, QualityGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualityFromDimensions(tt.w, tt.h))
		})
	}
}

func TestConfidenceScore(t *testing.T) {
	assert.Equal(t, 0.9, ConfidenceHigh.Score())
	assert.Equal(t, 0.6, ConfidenceMedium.Score())
	assert.Equal(t, 0.3, ConfidenceLow.Score())
	assert.Equal(t, 0.0, ConfidenceLevel("").Score())
}
