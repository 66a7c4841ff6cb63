package ocr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kharcha-app/receipt-engine/internal/common"
)

func TestGemini_IsAvailable(t *testing.T) {
	withKey := NewGeminiProvider(common.OCRConfig{GeminiAPIKey: "k"}, nil)
	assert.True(t, withKey.IsAvailable())

	noKey := NewGeminiProvider(common.OCRConfig{}, nil)
	assert.False(t, noKey.IsAvailable())
}

func TestGemini_Defaults(t *testing.T) {
	g := NewGeminiProvider(common.OCRConfig{GeminiAPIKey: "k"}, nil)
	assert.Equal(t, "gemini", g.Name())
	assert.Equal(t, "gemini-2.0-flash", g.model)
	assert.Equal(t, 30*time.Second, g.timeout)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "STAR BAZAAR\nTOTAL 5", stripFences("```text\nSTAR BAZAAR\nTOTAL 5\n```"))
	assert.Equal(t, "plain", stripFences("plain"))
	assert.Equal(t, "fenced", stripFences("```\nfenced\n```"))
}

func TestGosseract_Availability(t *testing.T) {
	g := NewGosseractProvider(common.OCRConfig{}, nil)
	assert.Equal(t, "gosseract", g.Name())
	assert.True(t, g.IsAvailable())

	g.clientFactory = nil
	assert.False(t, g.IsAvailable())
}
