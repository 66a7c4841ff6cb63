package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// Provider is a pluggable OCR backend capable of turning a processed image
// into raw text.
type Provider interface {
	Name() string
	IsAvailable() bool
	ExtractText(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error)
}

// Registry holds an ordered set of providers and delegates extraction to the
// first available one. No retries, no cycling: provider availability changes
// rarely (a missing API key, an uninstalled binary), so a simple first-match
// failover is enough at this layer.
type Registry struct {
	providers []Provider
	logger    *slog.Logger
}

func NewRegistry(logger *slog.Logger, providers ...Provider) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{providers: providers, logger: logger}
}

// BuildRegistry assembles a registry from the configured provider order.
func BuildRegistry(cfg common.OCRConfig, logger *slog.Logger) (*Registry, error) {
	var providers []Provider
	for _, name := range cfg.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "tesseract":
			providers = append(providers, NewTesseractProvider(cfg, logger))
		case "gosseract":
			providers = append(providers, NewGosseractProvider(cfg, logger))
		case "gemini":
			providers = append(providers, NewGeminiProvider(cfg, logger))
		default:
			return nil, common.NewAppError(common.CodeConfigError,
				fmt.Sprintf("unknown OCR provider %q", name), common.ErrInvalidInput)
		}
	}
	return NewRegistry(logger, providers...), nil
}

// Providers returns the configured provider names in order.
func (r *Registry) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Extract picks the first available provider and delegates to it.
func (r *Registry) Extract(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error) {
	var chosen Provider
	for _, p := range r.providers {
		if p.IsAvailable() {
			chosen = p
			break
		}
		r.logger.Debug("ocr provider unavailable", "provider", p.Name())
	}
	if chosen == nil {
		return nil, common.NoProviderError("no OCR provider is available")
	}

	start := time.Now()
	res, err := chosen.ExtractText(ctx, img)
	if err != nil {
		return nil, common.ExtractionError(fmt.Sprintf("provider %s failed", chosen.Name()), err)
	}
	if !res.Success {
		return nil, common.ExtractionError(
			fmt.Sprintf("provider %s reported failure: %s", chosen.Name(), res.Error), nil)
	}

	res.Provider = chosen.Name()
	res.Duration = time.Since(start)
	res.Quality = img.Quality
	r.logger.Info("ocr extraction ok",
		"provider", chosen.Name(),
		"duration_ms", res.Duration.Milliseconds(),
		"text_bytes", len(res.Text),
	)
	return res, nil
}
