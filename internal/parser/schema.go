package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kharcha-app/receipt-engine/constants"
)

// buildReceiptJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// serialized ParsedReceipt. Downstream consumers (expense creation) rely on
// this shape, so the CLI validates its output against it.
func buildReceiptJSONSchema() map[string]any {
	confidenceEntry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"level":  map[string]any{"type": "string", "enum": []string{"LOW", "MEDIUM", "HIGH"}},
			"score":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"reason": map[string]any{"type": "string"},
		},
		"required": []string{"level", "score", "reason"},
	}

	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "integer", "minimum": 1},
			"unit_price":  map[string]any{"type": "number"},
			"total_price": map[string]any{"type": "number"},
			"confidence":  map[string]any{"type": "string", "enum": []string{"LOW", "MEDIUM", "HIGH"}},
		},
		"required": []string{"description", "quantity", "total_price", "confidence"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"merchant":       map[string]any{"type": "string", "minLength": 1},
			"amount":         map[string]any{"type": "number", "minimum": 0.0},
			"date":           map[string]any{"type": "string"},
			"tax":            map[string]any{"type": "number", "minimum": 0.0},
			"subtotal":       map[string]any{"type": "number", "minimum": 0.0},
			"currency_code":  map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"payment_method": map[string]any{"type": "string"},
			"line_items":     map[string]any{"type": "array", "maxItems": 20, "items": lineItem},
			"confidence": map[string]any{
				"type":                 "object",
				"additionalProperties": confidenceEntry,
			},
			"overall_confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"category":           map[string]any{"type": "string", "enum": constants.AsStringSlice()},
			"warnings":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"raw_text":           map[string]any{"type": "string"},
			"quality":            map[string]any{"type": "string", "enum": []string{"POOR", "FAIR", "GOOD"}},
		},
		"required": []string{"currency_code", "confidence", "overall_confidence", "category", "quality"},
	}
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func receiptSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := json.Marshal(buildReceiptJSONSchema())
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("receipt.schema.json", bytes.NewReader(raw)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("receipt.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateReceiptJSON checks a serialized ParsedReceipt against the output
// schema.
func ValidateReceiptJSON(data []byte) error {
	sch, err := receiptSchema()
	if err != nil {
		return fmt.Errorf("compile receipt schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse receipt json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("receipt json does not match schema: %w", err)
	}
	return nil
}
