package format_test

import (
	"testing"

	"github.com/pulseboard/market-feed/internal/format"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"grouped_with_two_decimals", 1234.5, "$1,234.50"},
		{"negative_sign_before_symbol", -1234.5, "-$1,234.50"},
		{"rounds_half_up", 0.005, "$0.01"},
		{"zero", 0, "$0.00"},
		{"millions_grouping", 1284850.25, "$1,284,850.25"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := format.Currency(tc.amount); got != tc.want {
				t.Errorf("Currency(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestCurrencyN(t *testing.T) {
	if got := format.CurrencyN(43250.8, 4); got != "$43,250.8000" {
		t.Errorf("CurrencyN(43250.8, 4) = %q, want %q", got, "$43,250.8000")
	}
	if got := format.CurrencyN(0.000042, 6); got != "$0.000042" {
		t.Errorf("CurrencyN(0.000042, 6) = %q, want %q", got, "$0.000042")
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		want  string
	}{
		{"positive_gets_explicit_plus", 2, "+2.00%"},
		{"negative_keeps_minus", -3.456, "-3.46%"},
		{"zero_counts_as_non_negative", 0, "+0.00%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := format.Percentage(tc.value); got != tc.want {
				t.Errorf("Percentage(%v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestPercentageN(t *testing.T) {
	if got := format.PercentageN(1.2345, 3); got != "+1.234%" {
		t.Errorf("PercentageN(1.2345, 3) = %q, want %q", got, "+1.234%")
	}
}
