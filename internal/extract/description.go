package extract

import (
	"regexp"
	"strings"
)

// MaxDescriptionWords bounds the length of an expense description.
const MaxDescriptionWords = 6

// DefaultDescription is used when the input has no usable words.
const DefaultDescription = "Expense"

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// ShortDescription collapses whitespace and keeps at most MaxDescriptionWords words.
func ShortDescription(s string) string {
	words := strings.Fields(s)
	if len(words) > MaxDescriptionWords {
		words = words[:MaxDescriptionWords]
	}
	return strings.Join(words, " ")
}

// FallbackDescription builds a description from raw input by dropping
// punctuation and keeping the first words.
func FallbackDescription(text string) string {
	if desc := ShortDescription(nonWordRe.ReplaceAllString(text, " ")); desc != "" {
		return desc
	}
	return DefaultDescription
}

// resolveDescription shortens the model's description or derives one from text.
func resolveDescription(parsed map[string]any, text string) {
	if desc, ok := parsed[FieldDescription].(string); ok {
		if short := ShortDescription(desc); short != "" {
			parsed[FieldDescription] = short
			return
		}
	}
	parsed[FieldDescription] = FallbackDescription(text)
}
