package ingest

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
	"github.com/kharcha-app/receipt-engine/internal/ocr"
	"github.com/kharcha-app/receipt-engine/internal/pipeline"
)

type staticProvider struct{ text string }

func (s staticProvider) Name() string      { return "static" }
func (s staticProvider) IsAvailable() bool { return true }
func (s staticProvider) ExtractText(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error) {
	return &entity.ExtractionResult{Text: s.text, Success: true}, nil
}

func newScanProcessor(t *testing.T) *pipeline.Processor {
	t.Helper()
	cfg := common.LoadConfig()
	p, err := pipeline.NewProcessor(cfg, nil)
	require.NoError(t, err)
	p.Registry = ocr.NewRegistry(nil, staticProvider{text: "CORNER SHOP\nTOTAL 10.00"})
	return p
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 64, 64))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func pngExts() map[string]struct{} {
	return map[string]struct{}{"png": {}}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writePNG(t, filepath.Join(sub, "c.png"))

	results, stats, err := ScanDirectory(context.Background(), newScanProcessor(t), dir, pngExts(), true, nil)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(3), stats.Succeeded)
	assert.Equal(t, uint32(0), stats.Failed)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NotNil(t, r.Receipt, r.Path)
		assert.Empty(t, r.Err)
	}
}

func TestScanDirectory_SkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, ".hidden.png"))

	hiddenDir := filepath.Join(dir, ".cache")
	require.NoError(t, os.Mkdir(hiddenDir, 0o755))
	writePNG(t, filepath.Join(hiddenDir, "b.png"))

	_, stats, err := ScanDirectory(context.Background(), newScanProcessor(t), dir, pngExts(), true, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stats.Matched)
	assert.Equal(t, uint32(1), stats.Succeeded)
}

func TestScanDirectory_BadFileDoesNotStopWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.png"), []byte("junk"), 0o644))
	writePNG(t, filepath.Join(dir, "ok.png"))

	results, stats, err := ScanDirectory(context.Background(), newScanProcessor(t), dir, pngExts(), false, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(1), stats.Succeeded)
	assert.Equal(t, uint32(1), stats.Failed)

	var sawErr bool
	for _, r := range results {
		if r.Err != "" {
			sawErr = true
		}
	}
	assert.True(t, sawErr)
}

func TestScanDirectory_EmptyRoot(t *testing.T) {
	_, _, err := ScanDirectory(context.Background(), newScanProcessor(t), "  ", pngExts(), false, nil)
	assert.Error(t, err)
}

func TestAllowed(t *testing.T) {
	exts := map[string]struct{}{"png": {}, "jpg": {}}
	assert.True(t, allowed("/x/a.PNG", exts))
	assert.True(t, allowed("a.jpg", exts))
	assert.False(t, allowed("a.gif", exts))
	assert.False(t, allowed("noext", exts))
}
