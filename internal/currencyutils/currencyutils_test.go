package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "", expected: "0"},
		{input: "   ", expected: "0"},
		{input: "12.50", expected: "12.5"},
		{input: "1'234.56", expected: "1234.56"},
		{input: "1’234.56", expected: "1234.56"},
		{input: "1.234,56", expected: "1234.56"},
		{input: "1,234.56", expected: "1234.56"},
		{input: "1234,5", expected: "1234.5"},
		{input: "1,234", expected: "1234"},
		{input: "CHF 99.90", expected: "99.9"},
		{input: "-3.20", expected: "-3.2"},
		{input: "abc", wantErr: true},
		{input: "CHF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(amount),
				"expected %s, got %s", tt.expected, amount)
		})
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		amount  string
		wantOut string
		wantIn  string
	}{
		{amount: "-12.5", wantOut: "12.50", wantIn: ""},
		{amount: "1500", wantOut: "", wantIn: "1500.00"},
		{amount: "0", wantOut: "", wantIn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			out, in := SplitAmount(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantIn, in)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "CHF 10.00", FormatAmount(decimal.NewFromInt(10), "chf"))
	assert.Equal(t, "-0.50", FormatAmount(decimal.RequireFromString("-0.5"), ""))
}
