package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// knownChains is a curated list of retail chain substrings (lowercase).
var knownChains = []string{
	"star bazaar", "big bazaar", "dmart", "d-mart", "d mart",
	"reliance fresh", "reliance retail", "reliance smart",
	"more supermarket", "spencer", "nature's basket", "nilgiris",
	"croma", "vijay sales", "westside", "pantaloons", "shoppers stop",
	"lifestyle", "max fashion", "decathlon",
	"apollo pharmacy", "medplus", "wellness forever",
	"mcdonald", "domino", "kfc", "subway", "starbucks",
	"cafe coffee day", "haldiram", "barbeque nation",
	"walmart", "tesco", "carrefour", "costco", "target",
}

// legalSuffixes mark lines that carry a registered business name.
var legalSuffixes = []string{
	"pvt ltd", "pvt. ltd", "private limited", "limited", "ltd",
	"llp", "inc", "enterprises", "stores", "traders", "retail",
	"& co", "and co", "corporation",
}

// reMerchantNoise matches header lines that are never merchant names:
// tax/invoice/payment identifiers, date-like and time-like lines.
var reMerchantNoise = regexp.MustCompile(`(?i)\b(gstin|gst|cgst|sgst|igst|vat|tax|invoice|receipt|bill\s*no|order|cash|credit|debit|card|upi|payment|total|amount|subtotal|qty|rate|price|hsn|fssai|tin|date|time|tel|phone|mob|www|email|thank|welcome)\b|\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}:\d{2}`)

const merchantCandidateLines = 5

func (p *Parser) extractMerchant(r *entity.ParsedReceipt, lines []string) {
	// Tier a: known retail chains anywhere in the line.
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, chain := range knownChains {
			if strings.Contains(lower, chain) {
				name := cleanMerchantLine(line)
				r.Merchant = &name
				setConfidence(r, entity.FieldMerchant, constants.ConfidenceHigh,
					"matched known retail chain")
				return
			}
		}
	}

	// Tier b: legal entity suffix on a non-noise line.
	for _, line := range lines {
		if reMerchantNoise.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		for _, suffix := range legalSuffixes {
			if strings.Contains(lower, suffix) {
				name := cleanMerchantLine(line)
				r.Merchant = &name
				setConfidence(r, entity.FieldMerchant, constants.ConfidenceHigh,
					"matched legal entity suffix")
				return
			}
		}
	}

	// Tier c: first plausible header line.
	limit := merchantCandidateLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if reMerchantNoise.MatchString(line) || numericDominant(line) {
			continue
		}
		name := cleanMerchantLine(line)
		if name == "" {
			continue
		}
		r.Merchant = &name
		setConfidence(r, entity.FieldMerchant, constants.ConfidenceLow,
			"fallback: first plausible header line")
		return
	}

	setConfidence(r, entity.FieldMerchant, constants.ConfidenceLow, "merchant not found")
}

// numericDominant reports whether digits outnumber (or tie) letters.
func numericDominant(s string) bool {
	var digits, letters int
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if letters == 0 {
		return true
	}
	return digits >= letters
}

var reSpaces = regexp.MustCompile(`\s+`)

func cleanMerchantLine(line string) string {
	line = reSpaces.ReplaceAllString(line, " ")
	return strings.Trim(line, " *-_.,:")
}
