package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// TesseractProvider shells out to the tesseract binary. It is the default
// first choice because it needs no cgo toolchain and no credentials.
type TesseractProvider struct {
	bin           string
	lang          string
	tessdataDir   string
	tsvConfidence bool

	runner   Runner
	lookPath func(string) (string, error)
	logger   *slog.Logger
}

func NewTesseractProvider(cfg common.OCRConfig, logger *slog.Logger) *TesseractProvider {
	if logger == nil {
		logger = slog.Default()
	}
	bin := cfg.Tesseract
	if bin == "" {
		bin = "tesseract"
	}
	lang := cfg.TesseractLang
	if lang == "" {
		lang = "eng"
	}
	return &TesseractProvider{
		bin:           bin,
		lang:          lang,
		tessdataDir:   cfg.TessdataDir,
		tsvConfidence: cfg.TSVConfidence,
		runner:        newExecRunner(logger),
		lookPath:      exec.LookPath,
		logger:        logger,
	}
}

func (t *TesseractProvider) Name() string { return "tesseract" }

func (t *TesseractProvider) IsAvailable() bool {
	_, err := t.lookPath(t.bin)
	return err == nil
}

func (t *TesseractProvider) ExtractText(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error) {
	path, cleanup, err := t.writeTempPNG(img)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// tesseract <file> stdout -l <lang>
	args := []string{path, "stdout", "-l", t.lang}
	if t.tessdataDir != "" {
		args = append(args, "--tessdata-dir", t.tessdataDir)
	}
	out, errb, err := t.runner.Run(ctx, t.bin, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}

	res := &entity.ExtractionResult{
		Text:    Normalize(string(out)),
		Success: true,
	}

	if t.tsvConfidence {
		if conf, err := t.meanWordConfidence(ctx, path); err == nil {
			res.Confidence = conf
		} else {
			t.logger.Warn("tesseract tsv confidence failed", "error", err)
		}
	}
	return res, nil
}

func (t *TesseractProvider) writeTempPNG(img *entity.ProcessedImage) (string, func(), error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", nil, err
	}
	f, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { _ = os.Remove(f.Name()) }, nil
}

// meanWordConfidence runs tesseract in TSV mode and returns mean word conf in 0..1.
func (t *TesseractProvider) meanWordConfidence(ctx context.Context, path string) (float32, error) {
	args := []string{path, "stdout", "-l", t.lang}
	if t.tessdataDir != "" {
		args = append(args, "--tessdata-dir", t.tessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.runner.Run(ctx, t.bin, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract TSV: %w: %s", err, truncate(string(errb), 512))
	}

	lines := strings.Split(string(out), "\n")
	// conf is column 11 of 12; the header line is skipped
	var sum, n float64
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, err := strconv.ParseFloat(confStr, 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	mean := sum / n // 0..100
	return float32(mean / 100.0), nil
}
