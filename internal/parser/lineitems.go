package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// pendingState models the coded-row merge: a matched coded row waits for the
// following description line before it becomes an item.
type pendingState int

const (
	stateIdle pendingState = iota
	stateAwaitingDescription
)

type pendingRow struct {
	quantity   int
	unitPrice  float64
	totalPrice float64
}

var (
	// reSkipLine filters receipt-level lines out of item parsing.
	reSkipLine = regexp.MustCompile(`(?i)\b(sub\s*-?\s*total|total|tax|gst|cgst|sgst|igst|vat|cess|invoice|receipt|bill|balance|due|change|cash|card|upi|tender|amount|gstin|fssai|hsn|thank|date|time|phone|tel)\b|\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}|\d{1,2}:\d{2}`)

	// tier 1: "code qty unit unitPrice totalPrice"
	reCodedRow = regexp.MustCompile(`^(\d{4,})\s+(\d{1,3})\s+(\S+)\s+(\d+(?:\.\d{1,2})?)\s+(\d+(?:\.\d{1,2})?)$`)

	// tier 2: "description code(8-digit) taxableAmount"
	reDescCode = regexp.MustCompile(`^(.+?)\s+(\d{8})\s+((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)$`)

	// tier 3: "description xQty price"
	reDescQty = regexp.MustCompile(`(?i)^(.+?)\s+x\s*(\d{1,3})\s+(?:rs\.?|₹|\$)?\s*((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{1,2})?)$`)

	// tier 4: bare "description amount"
	reDescAmount = regexp.MustCompile(`(?i)^(.+?)\s+(?:rs\.?|₹|\$)?\s*(\d{1,3}(?:,\d{3})*\.\d{2})$`)
)

func (p *Parser) extractLineItems(lines []string) []entity.ExtractedLineItem {
	var items []entity.ExtractedLineItem
	seen := make(map[string]struct{})

	// Dedup by (lower-cased description, total price); first seen wins.
	add := func(desc string, qty int, unitPrice, totalPrice float64, conf constants.ConfidenceLevel) {
		if len(items) >= p.cfg.MaxLineItems {
			return
		}
		desc = cleanItemDescription(desc)
		if !plausibleDescription(desc) {
			return
		}
		if totalPrice <= 0 || totalPrice > p.cfg.MaxPlausibleLineAmount {
			return
		}
		if qty < 1 {
			qty = 1
		}
		key := strings.ToLower(desc) + "|" + strconv.FormatFloat(totalPrice, 'f', 2, 64)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		items = append(items, entity.ExtractedLineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
			Confidence:  conf,
		})
	}

	state := stateIdle
	var pending pendingRow

	for _, raw := range lines {
		line := reSpaces.ReplaceAllString(strings.TrimSpace(raw), " ")
		if line == "" || reSkipLine.MatchString(line) {
			continue
		}

		if m := reCodedRow.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.Atoi(m[2])
			unitPrice, okU := parseMoney(m[4])
			totalPrice, okT := parseMoney(m[5])
			if okU && okT && totalPrice <= p.cfg.MaxPlausibleLineAmount {
				pending = pendingRow{quantity: qty, unitPrice: unitPrice, totalPrice: totalPrice}
				state = stateAwaitingDescription
			}
			continue
		}

		if m := reDescCode.FindStringSubmatch(line); m != nil {
			taxable, ok := parseMoney(m[3])
			if !ok {
				continue
			}
			if state == stateAwaitingDescription &&
				math.Abs(taxable-pending.totalPrice) < p.cfg.LineItemMergeTolerance {
				add(m[1], pending.quantity, pending.unitPrice, pending.totalPrice, constants.ConfidenceHigh)
				state = stateIdle
				continue
			}
			add(m[1], 1, taxable, taxable, constants.ConfidenceMedium)
			continue
		}

		if m := reDescQty.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.Atoi(m[2])
			total, ok := parseMoney(m[3])
			if ok && qty > 0 {
				add(m[1], qty, total/float64(qty), total, constants.ConfidenceMedium)
				continue
			}
		}

		if m := reDescAmount.FindStringSubmatch(line); m != nil {
			amt, ok := parseMoney(m[2])
			if ok {
				add(m[1], 1, amt, amt, constants.ConfidenceLow)
			}
		}
	}

	return items
}

func cleanItemDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	desc = strings.Trim(desc, ".,;:-_*#@")
	return strings.TrimSpace(desc)
}

// plausibleDescription requires some letters so code/number fragments do not
// become items.
func plausibleDescription(desc string) bool {
	if len(desc) < 2 {
		return false
	}
	var letters int
	for _, r := range desc {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}
