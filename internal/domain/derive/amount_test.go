package derive

import (
	"strconv"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"$123.45", 123.45},
		{"123.45", 123.45},
		{"$1,234.56", 1234.56},
		{"€50", 50},
		{"", 0},
		{"--", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"$0.99 USD", 0.99},
	}

	for _, tc := range cases {
		if got := ParseAmount(tc.input); got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseAmountIdempotent(t *testing.T) {
	inputs := []string{"$123.45", "9.99", "kr 1 200.50", "", "garbage", "$0"}

	for _, input := range inputs {
		first := ParseAmount(input)
		again := ParseAmount(strconv.FormatFloat(first, 'f', -1, 64))
		if again != first {
			t.Errorf("ParseAmount not idempotent for %q: first %v, again %v", input, first, again)
		}
	}
}

func TestCurrencySymbol(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"$123.45", "$"},
		{"123.45", ""},
		{"€1.234,56", "€"},
		{"1 200 kr", "kr"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CurrencySymbol(tc.input); got != tc.want {
			t.Errorf("CurrencySymbol(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
