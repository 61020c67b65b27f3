// Package listing holds the pure listing logic: normalization of form
// input, parsing and formatting helpers, filtering and derived metrics.
package listing

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a typed money or area value into a number. Both
// "1.234,56" and "1234.56" yield 1234.56. Anything unparseable yields 0,
// which callers treat as "not specified".
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ",") {
		// Dots are thousands separators, the first comma is the decimal mark.
		cleaned := strings.ReplaceAll(s, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
		return finite(cleaned)
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	return finite(b.String())
}

func finite(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// OnlyDigits strips every non-digit character.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCEP masks a postal code as 00000-000. Input is reduced to at most
// eight digits and the dash appears once a sixth digit is present.
func FormatCEP(s string) string {
	d := OnlyDigits(s)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// parseCount reads a feature counter. Fractions are truncated and
// anything unparseable, negative or too large for an int becomes 0.
func parseCount(s string) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n >= float64(math.MaxInt) {
		return 0
	}
	return int(n)
}
