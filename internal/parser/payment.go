package parser

import (
	"regexp"
	"strings"

	"github.com/kharcha-app/receipt-engine/internal/entity"
)

func wholeWord(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + expr + `)\b`)
}

// paymentKeywords maps receipt tokens to canonical payment labels. Checked in
// slice order so the mapping is deterministic, first hit wins.
var paymentKeywords = []struct {
	re    *regexp.Regexp
	label string
}{
	{wholeWord(`upi`), "UPI"},
	{wholeWord(`phonepe`), "UPI"},
	{wholeWord(`gpay|google\s+pay`), "UPI"},
	{wholeWord(`paytm`), "UPI"},
	{wholeWord(`bhim`), "UPI"},
	{wholeWord(`visa`), "Credit Card"},
	{wholeWord(`mastercard|master\s+card`), "Credit Card"},
	{wholeWord(`amex|american\s+express`), "Credit Card"},
	{wholeWord(`credit\s+card`), "Credit Card"},
	{wholeWord(`rupay`), "Debit Card"},
	{wholeWord(`debit\s+card`), "Debit Card"},
	{wholeWord(`net\s*banking`), "Net Banking"},
	{wholeWord(`neft|imps|rtgs`), "Bank Transfer"},
	{wholeWord(`cash`), "Cash"},
}

func (p *Parser) extractPaymentMethod(r *entity.ParsedReceipt, text string) {
	for _, kw := range paymentKeywords {
		if kw.re.MatchString(text) {
			label := kw.label
			r.PaymentMethod = &label
			return
		}
	}
}

// detectCurrency sniffs symbols first, then textual markers. "$" is overridden
// to INR when the text also carries an "RS" token, a common OCR rendering of
// the rupee sign.
func detectCurrency(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(text, "₹"):
		return "INR"
	case strings.Contains(text, "€"):
		return "EUR"
	case strings.Contains(text, "£"):
		return "GBP"
	case strings.Contains(text, "¥"):
		return "JPY"
	case strings.Contains(text, "$"):
		if reRsToken.MatchString(upper) {
			return "INR"
		}
		return "USD"
	}
	if reRsToken.MatchString(upper) || reINRToken.MatchString(upper) ||
		strings.Contains(upper, "RUPEE") || reIndianTaxToken.MatchString(upper) {
		return "INR"
	}
	return "USD"
}

var (
	reRsToken        = regexp.MustCompile(`\bRS\b`)
	reINRToken       = regexp.MustCompile(`\bINR\b`)
	reIndianTaxToken = regexp.MustCompile(`\b(?:CGST|SGST|IGST|GSTIN|FSSAI)\b`)
)
