package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// Reasonableness window for parsed dates.
const (
	maxYearsPast   = 5
	maxYearsFuture = 1
)

type dateShape int

const (
	shapeYMD dateShape = iota // YYYY/MM/DD
	shapeDMY                  // DD/MM/YYYY or DD/MM/YY
	shapeDayMonthYear         // "12 Jun 2024"
	shapeMonthDayYear         // "Jun 12, 2024"
)

var datePatterns = []struct {
	re    *regexp.Regexp
	shape dateShape
}{
	{regexp.MustCompile(`\b(\d{4})[/\-.](\d{1,2})[/\-.](\d{1,2})\b`), shapeYMD},
	{regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})\b`), shapeDMY},
	{regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})\b`), shapeDMY},
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s*(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+(\d{4})\b`), shapeDayMonthYear},
	{regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`), shapeMonthDayYear},
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func (p *Parser) extractDate(r *entity.ParsedReceipt, text string) {
	now := time.Now()
	earliest := now.AddDate(-maxYearsPast, 0, 0)
	latest := now.AddDate(maxYearsFuture, 0, 0)

	seen := make(map[time.Time]struct{})
	var candidates []time.Time

	for _, dp := range datePatterns {
		for _, m := range dp.re.FindAllStringSubmatch(text, -1) {
			t, ok := buildDate(m, dp.shape)
			if !ok {
				continue
			}
			if t.Before(earliest) || t.After(latest) {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		setConfidence(r, entity.FieldDate, constants.ConfidenceLow, "no date found")
		return
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	selected := candidates[len(candidates)-1]
	r.Date = &selected

	if len(candidates) > 1 {
		r.Warnings = append(r.Warnings, WarnMultipleDates)
		setConfidence(r, entity.FieldDate, constants.ConfidenceMedium,
			"multiple plausible dates, selected most recent")
		return
	}
	setConfidence(r, entity.FieldDate, constants.ConfidenceHigh, "matched date pattern")
}

func buildDate(m []string, shape dateShape) (time.Time, bool) {
	var day, month, year int
	switch shape {
	case shapeYMD:
		year = atoi(m[1])
		month = atoi(m[2])
		day = atoi(m[3])
	case shapeDMY:
		day = atoi(m[1])
		month = atoi(m[2])
		year = atoi(m[3])
		if year < 100 {
			year += 2000
		}
		// OCR and locale ambiguity: treat an impossible month as MM/DD input.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
	case shapeDayMonthYear:
		day = atoi(m[1])
		mon, ok := monthsByPrefix[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		month = int(mon)
		year = atoi(m[3])
	case shapeMonthDayYear:
		mon, ok := monthsByPrefix[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		month = int(mon)
		day = atoi(m[2])
		year = atoi(m[3])
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject dates that normalize away, e.g. 31/02
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
