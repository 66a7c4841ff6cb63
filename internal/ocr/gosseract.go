package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// GosseractProvider runs tesseract in-process through the gosseract bindings,
// avoiding a process spawn per receipt.
type GosseractProvider struct {
	lang          string
	tessdataDir   string
	clientFactory func() *gosseract.Client
	logger        *slog.Logger
}

func NewGosseractProvider(cfg common.OCRConfig, logger *slog.Logger) *GosseractProvider {
	if logger == nil {
		logger = slog.Default()
	}
	lang := cfg.TesseractLang
	if lang == "" {
		lang = "eng"
	}
	return &GosseractProvider{
		lang:          lang,
		tessdataDir:   cfg.TessdataDir,
		clientFactory: gosseract.NewClient,
		logger:        logger,
	}
}

func (g *GosseractProvider) Name() string { return "gosseract" }

func (g *GosseractProvider) IsAvailable() bool { return g.clientFactory != nil }

func (g *GosseractProvider) ExtractText(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	c := g.clientFactory()
	defer func() { _ = c.Close() }()

	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(g.lang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if g.tessdataDir != "" {
		if err := c.SetTessdataPrefix(g.tessdataDir); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	return &entity.ExtractionResult{
		Text:    Normalize(text),
		Success: true,
	}, nil
}
