package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountSource records where the final amount came from.
type AmountSource string

// Amount provenance values.
const (
	SourceModel    AmountSource = "model"
	SourceFallback AmountSource = "fallback"
	SourceNone     AmountSource = "none"
)

const numberPattern = `\d{1,3}(?:[\d,]*)(?:\.\d+)?`

var (
	numberRe = regexp.MustCompile(numberPattern)
	// "Subtotal" is not a total line; OCR often glues the number to the keyword.
	totalRe = regexp.MustCompile(`(?i)\btotal([^\d]*)(` + numberPattern + `)`)
	// A total followed by one of these counts lines, not money.
	countLabelRe = regexp.MustCompile(`(?i)\b(items?|qty|quantity|count|units?)\b`)
)

// modelAmountKeys are checked in order for an amount the model supplied.
var modelAmountKeys = []string{"amount", "total", "Total"}

// AmountFromText recovers an amount from free text. The number following the
// last money "total" keyword wins; otherwise the largest positive number does.
// Values that do not fit a finite float64 are skipped.
func AmountFromText(s string) (float64, bool) {
	matches := totalRe.FindAllStringSubmatch(s, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if countLabelRe.MatchString(matches[i][1]) {
			continue
		}
		if v, ok := parseNumber(matches[i][2]); ok && v > 0 {
			return v, true
		}
	}

	best := 0.0
	found := false
	for _, token := range numberRe.FindAllString(s, -1) {
		v, ok := parseNumber(token)
		if !ok || v <= 0 {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}

// parseNumber reads a number token with thousands separators. Tokens too large
// for a finite float64 are rejected.
func parseNumber(token string) (float64, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return 0, false
	}
	v, _ := d.Float64()
	if !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// modelAmount returns the first amount-like field of parsed that coerces to a
// finite non-negative number.
func modelAmount(parsed map[string]any) (float64, bool) {
	for _, key := range modelAmountKeys {
		v, present := parsed[key]
		if !present || v == nil {
			continue
		}
		return coerceAmount(v)
	}
	return 0, false
}

// coerceAmount converts a JSON value to a finite non-negative number. Strings
// may carry a currency symbol and thousands separators.
func coerceAmount(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9', r == '.', r == '-':
				return r
			default:
				return -1
			}
		}, val)
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return 0, false
		}
		f, _ = d.Float64()
	default:
		return 0, false
	}

	if !isFinite(f) || f < 0 {
		return 0, false
	}
	return f, true
}

// resolveAmount sets parsed["amount"] and the provenance marker. Candidate
// texts are searched in order when the model gave no usable amount.
func resolveAmount(parsed map[string]any, texts ...string) AmountSource {
	v, ok := modelAmount(parsed)
	return resolveMoneyField(parsed, FieldAmount, v, ok, texts)
}

// resolveIncome is resolveAmount for the onboarding income field. The
// provenance marker is shared since a form carries one headline amount.
func resolveIncome(parsed map[string]any, texts ...string) AmountSource {
	var v float64
	ok := false
	if raw, present := parsed[FieldIncome]; present && raw != nil {
		v, ok = coerceAmount(raw)
	}
	return resolveMoneyField(parsed, FieldIncome, v, ok, texts)
}

func resolveMoneyField(parsed map[string]any, field string, modelValue float64, modelOK bool, texts []string) AmountSource {
	if modelOK {
		parsed[field] = modelValue
		parsed[FieldAmountSource] = string(SourceModel)
		return SourceModel
	}

	delete(parsed, field)
	for _, text := range texts {
		if v, ok := AmountFromText(text); ok {
			parsed[field] = v
			parsed[FieldAmountSource] = string(SourceFallback)
			return SourceFallback
		}
	}
	parsed[FieldAmountSource] = string(SourceNone)
	return SourceNone
}
