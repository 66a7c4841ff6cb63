package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

const transcribePrompt = `Transcribe every piece of text visible on this receipt image exactly as printed.
Keep one output line per printed line, top to bottom. Output plain text only, no commentary, no markdown.`

// GeminiProvider uses the Gemini vision API as a network-bound OCR backend.
// Available only when an API key is configured.
type GeminiProvider struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGeminiProvider(cfg common.OCRConfig, logger *slog.Logger) *GeminiProvider {
	if logger == nil {
		logger = slog.Default()
	}
	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.GeminiTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		apiKey:  cfg.GeminiAPIKey,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) IsAvailable() bool { return g.apiKey != "" }

func (g *GeminiProvider) ExtractText(ctx context.Context, img *entity.ProcessedImage) (*entity.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData("png", data),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return &entity.ExtractionResult{Success: false, Error: "gemini returned no text"}, nil
	}

	return &entity.ExtractionResult{
		Text:    Normalize(stripFences(text)),
		Success: true,
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}

// stripFences removes markdown code fences the model sometimes wraps replies in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
