package parser

import (
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// fieldWeights drive the overall score: the amount matters most, the date
// next, tax the least.
var fieldWeights = map[string]float64{
	entity.FieldAmount:   3.0,
	entity.FieldDate:     2.0,
	entity.FieldMerchant: 1.0,
	entity.FieldTax:      0.5,
}

const defaultFieldWeight = 1.0

// overallConfidence is the weighted mean over exactly the fields present in
// the confidence map; absent fields contribute neither numerator nor
// denominator.
func overallConfidence(confidence map[string]entity.FieldConfidence) float64 {
	if len(confidence) == 0 {
		return 0
	}
	var num, den float64
	for field, fc := range confidence {
		w, ok := fieldWeights[field]
		if !ok {
			w = defaultFieldWeight
		}
		num += w * fc.Score
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}
