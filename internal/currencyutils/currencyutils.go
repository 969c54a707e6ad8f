// Package currencyutils provides the amount parsing and formatting used for the
// amount_out / amount_in columns.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyNoise = regexp.MustCompile(`CHF|EUR|USD|GBP|[€$£¥\s]`)

// ParseAmount parses a string representation of an amount into a decimal value.
// An empty string is zero. It handles formats like "1'234.56", "1.234,56",
// "1,234.56", "1234,56" and a leading currency code or symbol.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': no digits", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard
// format that decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyNoise.ReplaceAllString(amountStr, "")

	// Apostrophes are the Swiss thousands separator (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")
	amountStr = strings.ReplaceAll(amountStr, "’", "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			// Comma used as thousand separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// SplitAmount splits a signed amount into the outgoing and incoming columns.
// The side that does not apply is returned as an empty string; both are
// formatted with two decimals.
func SplitAmount(amount decimal.Decimal) (out, in string) {
	switch {
	case amount.IsNegative():
		return amount.Neg().StringFixed(2), ""
	case amount.IsPositive():
		return "", amount.StringFixed(2)
	default:
		return "", ""
	}
}

// FormatAmount formats a decimal amount with two decimal places and an optional currency code.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)
	if currency != "" {
		return strings.ToUpper(currency) + " " + formattedAmount
	}
	return formattedAmount
}
