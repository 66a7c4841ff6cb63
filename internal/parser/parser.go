package parser

import (
	"log/slog"
	"strings"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// WarnNoUsableText is emitted when OCR legitimately yields nothing.
const WarnNoUsableText = "no usable text extracted from image"

// WarnMultipleDates is emitted when more than one plausible date survives.
const WarnMultipleDates = "multiple dates found on receipt"

// Config holds the engine's heuristic bounds. The merge tolerance and the
// implausibility ceiling come from the upstream heuristics unchanged; their
// exact values are receipt-locale-specific, so they stay configurable rather
// than hardcoded.
type Config struct {
	LineItemMergeTolerance float64
	MaxPlausibleLineAmount float64
	MaxLineItems           int
}

// DefaultConfig returns the stock heuristic bounds.
func DefaultConfig() Config {
	return Config{
		LineItemMergeTolerance: 1.0,
		MaxPlausibleLineAmount: 50000,
		MaxLineItems:           20,
	}
}

// Parser is the receipt field extraction engine. It runs a cascade of
// pattern strategies over raw OCR text and never fails on content: absence
// or ambiguity becomes a null field, a confidence tag, or a warning.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LineItemMergeTolerance <= 0 {
		cfg.LineItemMergeTolerance = 1.0
	}
	if cfg.MaxPlausibleLineAmount <= 0 {
		cfg.MaxPlausibleLineAmount = 50000
	}
	if cfg.MaxLineItems <= 0 {
		cfg.MaxLineItems = 20
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Parse converts extracted text plus extraction metadata into a ParsedReceipt.
func (p *Parser) Parse(res *entity.ExtractionResult) *entity.ParsedReceipt {
	receipt := &entity.ParsedReceipt{
		CurrencyCode: "USD",
		Category:     constants.Uncategorized,
		Confidence:   make(map[string]entity.FieldConfidence),
		RawText:      res.Text,
		Quality:      res.Quality,
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		receipt.Warnings = append(receipt.Warnings, WarnNoUsableText)
		receipt.OverallConfidence = 0
		return receipt
	}

	lines := splitLines(text)

	p.extractMerchant(receipt, lines)
	p.extractAmount(receipt, lines, text)
	p.extractDate(receipt, text)
	p.extractTax(receipt, lines)
	p.extractSubtotal(receipt, lines)
	p.extractPaymentMethod(receipt, text)
	receipt.CurrencyCode = detectCurrency(text)
	receipt.LineItems = p.extractLineItems(lines)
	receipt.Category = suggestCategory(receipt.Merchant, text)
	receipt.OverallConfidence = overallConfidence(receipt.Confidence)

	p.logger.Debug("receipt parsed",
		"merchant_found", receipt.Merchant != nil,
		"amount_found", receipt.Amount != nil,
		"date_found", receipt.Date != nil,
		"line_items", len(receipt.LineItems),
		"overall_confidence", receipt.OverallConfidence,
	)
	return receipt
}

func suggestCategory(merchant *string, text string) constants.Category {
	haystack := text
	if merchant != nil {
		haystack = *merchant + "\n" + haystack
	}
	return constants.Suggest(haystack)
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

func setConfidence(r *entity.ParsedReceipt, field string, level constants.ConfidenceLevel, reason string) {
	r.Confidence[field] = entity.FieldConfidence{
		Level:  level,
		Score:  level.Score(),
		Reason: reason,
	}
}
