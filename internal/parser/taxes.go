package parser

import (
	"regexp"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// labeledLineEnd matches "<label> ... <amount>" with the amount anchored at
// the end of the line, so percentages like "CGST @2.5%" are not captured.
func labeledLineEnd(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + label + `)\b.*?` + currencyPrefix + moneyGroup + `\s*$`)
}

// taxPatterns is tried in priority order; first match wins. There is no
// numeric fallback for tax.
var taxPatterns = []*regexp.Regexp{
	labeledLineEnd(`total\s+tax`),
	labeledLineEnd(`cgst`),
	labeledLineEnd(`sgst`),
	labeledLineEnd(`igst`),
	labeledLineEnd(`gst`),
	labeledLineEnd(`cess`),
	labeledLineEnd(`vat`),
	labeledLineEnd(`hst`),
	labeledLineEnd(`tax`),
}

// subtotalPatterns mirror the tax approach for the pre-tax amount.
var subtotalPatterns = []*regexp.Regexp{
	labeledLineEnd(`sub\s*-?\s*total`),
	labeledLineEnd(`taxable\s+(?:amount|value)`),
	labeledLineEnd(`net\s+taxable`),
}

func (p *Parser) extractTax(r *entity.ParsedReceipt, lines []string) {
	if v, ok := firstLabeledMatch(taxPatterns, lines); ok {
		r.Tax = &v
		setConfidence(r, entity.FieldTax, constants.ConfidenceHigh, "matched tax label pattern")
	}
}

func (p *Parser) extractSubtotal(r *entity.ParsedReceipt, lines []string) {
	if v, ok := firstLabeledMatch(subtotalPatterns, lines); ok {
		r.Subtotal = &v
	}
}

func firstLabeledMatch(patterns []*regexp.Regexp, lines []string) (float64, bool) {
	for _, pat := range patterns {
		for _, line := range lines {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if v, ok := parseMoney(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}
