package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

const (
	moneyGroup     = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)`
	currencyPrefix = `(?:rs\.?|inr|₹|\$|€|£|¥)?\s*`
)

func labeledAmount(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + label + `)\b\s*[:\-]?\s*` + currencyPrefix + moneyGroup)
}

// totalPatterns is tried in priority order; the first label that matches any
// line wins regardless of larger numbers elsewhere in the text.
var totalPatterns = []*regexp.Regexp{
	labeledAmount(`total\s+invoice\s+amount`),
	labeledAmount(`grand\s+total`),
	labeledAmount(`invoice\s+(?:amount|total)`),
	labeledAmount(`net\s+(?:amount|payable)`),
	labeledAmount(`bill\s+amount`),
	labeledAmount(`amount\s+(?:payable|due)`),
	labeledAmount(`balance\s+due|balance`),
	labeledAmount(`amount\s+paid|payment`),
	labeledAmount(`total\s+amount`),
	labeledAmount(`total`),
}

var reSubtotalLine = regexp.MustCompile(`(?i)sub\s*-?\s*total`)

// reCurrencyNumber finds currency-formatted numbers for the fallback branch:
// either symbol/code-prefixed, or bare with two decimal places.
var reCurrencyNumber = regexp.MustCompile(
	`(?i)(?:rs\.?|inr|₹|\$|€|£|¥)\s*((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)|((?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2})`)

func (p *Parser) extractAmount(r *entity.ParsedReceipt, lines []string, text string) {
	for _, pat := range totalPatterns {
		for _, line := range lines {
			if reSubtotalLine.MatchString(line) {
				continue
			}
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if v, ok := parseMoney(m[1]); ok {
				r.Amount = &v
				setConfidence(r, entity.FieldAmount, constants.ConfidenceHigh,
					"matched labeled total pattern")
				return
			}
		}
	}

	// No labeled total: fall back to the largest currency-formatted number.
	var best float64
	found := false
	for _, m := range reCurrencyNumber.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		v, ok := parseMoney(raw)
		if !ok {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	if found {
		r.Amount = &best
		setConfidence(r, entity.FieldAmount, constants.ConfidenceMedium,
			"largest currency amount in text (no labeled total)")
		return
	}

	setConfidence(r, entity.FieldAmount, constants.ConfidenceLow, "no amount found")
}

// parseMoney converts a captured currency string into a float. Malformed
// captures are treated as "no match", never as failures.
func parseMoney(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
