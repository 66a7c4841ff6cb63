package entity

import (
	"time"

	"github.com/kharcha-app/receipt-engine/constants"
)

// Field names used as keys in the ParsedReceipt confidence map. The set is
// closed: absence of an entry means the field was not attempted.
const (
	FieldMerchant = "merchant"
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldTax      = "tax"
)

// ExtractionResult is the OCR stage output for a single pipeline run.
type ExtractionResult struct {
	Text       string                  `json:"text"`
	Provider   string                  `json:"provider"`
	Success    bool                    `json:"success"`
	Error      string                  `json:"error,omitempty"`
	Confidence float32                 `json:"confidence,omitempty"`
	Duration   time.Duration           `json:"duration"`
	Quality    constants.QualityRating `json:"quality"`
}

// FieldConfidence grades one extracted field.
type FieldConfidence struct {
	Level  constants.ConfidenceLevel `json:"level"`
	Score  float64                   `json:"score"`
	Reason string                    `json:"reason"`
}

// ExtractedLineItem is one purchased entry parsed from the receipt body.
type ExtractedLineItem struct {
	Description string                    `json:"description"`
	Quantity    int                       `json:"quantity"`
	UnitPrice   float64                   `json:"unit_price"`
	TotalPrice  float64                   `json:"total_price"`
	Confidence  constants.ConfidenceLevel `json:"confidence"`
}

// ParsedReceipt is the terminal aggregate of the pipeline.
type ParsedReceipt struct {
	Merchant      *string    `json:"merchant,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Tax           *float64   `json:"tax,omitempty"`
	Subtotal      *float64   `json:"subtotal,omitempty"`
	CurrencyCode  string     `json:"currency_code"`
	PaymentMethod *string    `json:"payment_method,omitempty"`

	LineItems []ExtractedLineItem `json:"line_items,omitempty"`

	Confidence        map[string]FieldConfidence `json:"confidence"`
	OverallConfidence float64                    `json:"overall_confidence"`

	Category constants.Category `json:"category"`
	Warnings []string           `json:"warnings,omitempty"`

	RawText        string                  `json:"raw_text"`
	Quality        constants.QualityRating `json:"quality"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
