// Package dateutils provides the date handling shared by the CSV reader, the
// writer and the aggregator.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	MonthLayout        = "2006-01"
	YearLayout         = "2006"
)

// patternTokens translates the user-facing date pattern tokens to Go layout
// elements. Longer tokens come first so that "YYYY" is not read as two "YY".
var patternTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
}

// LayoutFromPattern converts a pattern such as "DD.MM.YYYY" into the
// equivalent Go layout ("02.01.2006"). A value that already is a Go layout
// (it contains "2006" or "06") is returned unchanged.
func LayoutFromPattern(pattern string) (string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", fmt.Errorf("empty date pattern")
	}
	if strings.Contains(pattern, "2006") || strings.Contains(pattern, "06") {
		return pattern, nil
	}

	var b strings.Builder
	seen := map[string]bool{}
	for rest := pattern; rest != ""; {
		matched := false
		for _, pt := range patternTokens {
			if strings.HasPrefix(rest, pt.token) {
				b.WriteString(pt.layout)
				seen[pt.token[:1]] = true
				rest = rest[len(pt.token):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := rest[0]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			return "", fmt.Errorf("unsupported token in date pattern %q", pattern)
		}
		b.WriteByte(c)
		rest = rest[1:]
	}

	if !seen["Y"] || !seen["M"] || !seen["D"] {
		return "", fmt.Errorf("date pattern %q must contain a year, a month and a day", pattern)
	}
	return b.String(), nil
}

// ParseDate parses dateStr strictly with layout after trimming surrounding space.
func ParseDate(dateStr, layout string) (time.Time, error) {
	if layout == "" {
		layout = DateLayoutEuropean
	}
	t, err := time.Parse(layout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected date as %s: %w", layout, err)
	}
	return t, nil
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutEuropean is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutEuropean
	}
	return date.Format(layout)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfYear returns the first day of the year for a given date
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}
