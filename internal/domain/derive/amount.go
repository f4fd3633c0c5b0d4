package derive

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount normalizes display-formatted currency text ("$1,234.56",
// "123.45 kr") into a number. Every rune that is not a digit or a dot is
// dropped before parsing; anything unparsable after that coerces to 0.
// The function is total: it never fails, whatever the input.
func ParseAmount(text string) float64 {
	var digits strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

// CurrencySymbol is the complement of ParseAmount: it keeps whatever the
// amount text carries besides the number. Digits, dots, commas and
// whitespace are stripped; an empty remainder means "no symbol".
func CurrencySymbol(text string) string {
	var symbol strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || unicode.IsSpace(r) {
			continue
		}
		symbol.WriteRune(r)
	}
	return symbol.String()
}
