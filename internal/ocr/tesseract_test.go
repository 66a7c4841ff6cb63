package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kharcha-app/receipt-engine/internal/common"
)

type stubRunner struct {
	stdout map[string][]byte // keyed by last arg ("" for plain text mode)
	err    error
	calls  [][]string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	if s.err != nil {
		return nil, []byte("stderr output"), s.err
	}
	key := ""
	if args[len(args)-1] == "tsv" {
		key = "tsv"
	}
	return s.stdout[key], nil, nil
}

func newTestTesseract(r Runner, found bool) *TesseractProvider {
	p := NewTesseractProvider(common.OCRConfig{Tesseract: "tesseract", TesseractLang: "eng"}, nil)
	p.runner = r
	p.lookPath = func(string) (string, error) {
		if found {
			return "/usr/bin/tesseract", nil
		}
		return "", errors.New("not found")
	}
	return p
}

func TestTesseract_IsAvailable(t *testing.T) {
	assert.True(t, newTestTesseract(&stubRunner{}, true).IsAvailable())
	assert.False(t, newTestTesseract(&stubRunner{}, false).IsAvailable())
}

func TestTesseract_ExtractText(t *testing.T) {
	runner := &stubRunner{stdout: map[string][]byte{
		"": []byte("STAR BAZAAR\r\n\r\n\r\n\r\nTOTAL   1245.50\n"),
	}}
	p := newTestTesseract(runner, true)

	res, err := p.ExtractText(context.Background(), testImage())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "STAR BAZAAR\n\nTOTAL 1245.50", res.Text)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "tesseract", call[0])
	assert.Equal(t, "stdout", call[2])
	assert.Equal(t, []string{"-l", "eng"}, call[3:5])
}

func TestTesseract_ExtractText_CommandError(t *testing.T) {
	p := newTestTesseract(&stubRunner{err: errors.New("exit status 1")}, true)
	_, err := p.ExtractText(context.Background(), testImage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
	assert.Contains(t, err.Error(), "stderr output")
}

func TestTesseract_TessdataDirFlag(t *testing.T) {
	runner := &stubRunner{stdout: map[string][]byte{"": []byte("x")}}
	p := NewTesseractProvider(common.OCRConfig{
		Tesseract: "tesseract", TesseractLang: "eng", TessdataDir: "/opt/tessdata",
	}, nil)
	p.runner = runner

	_, err := p.ExtractText(context.Background(), testImage())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(runner.calls[0], " "), "--tessdata-dir /opt/tessdata")
}

func TestTesseract_MeanWordConfidence(t *testing.T) {
	tsv := strings.Join([]string{
		"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
		"1\t1\t0\t0\t0\t0\t0\t0\t100\t100\t-1\t",
		"5\t1\t1\t1\t1\t1\t10\t10\t40\t12\t90\tSTAR",
		"5\t1\t1\t1\t1\t2\t60\t10\t50\t12\t70\tBAZAAR",
		"",
	}, "\n")
	runner := &stubRunner{stdout: map[string][]byte{
		"":    []byte("STAR BAZAAR"),
		"tsv": []byte(tsv),
	}}
	p := newTestTesseract(runner, true)
	p.tsvConfidence = true

	res, err := p.ExtractText(context.Background(), testImage())
	require.NoError(t, err)
	assert.InDelta(t, 0.80, float64(res.Confidence), 1e-6)
}

func TestTesseract_MeanWordConfidence_NoWords(t *testing.T) {
	tsv := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n"
	runner := &stubRunner{stdout: map[string][]byte{
		"":    []byte("text"),
		"tsv": []byte(tsv),
	}}
	p := newTestTesseract(runner, true)
	p.tsvConfidence = true

	res, err := p.ExtractText(context.Background(), testImage())
	require.NoError(t, err)
	assert.Zero(t, res.Confidence)
}
