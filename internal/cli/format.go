// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var yenPrinter = message.NewPrinter(language.Japanese)

// FormatYen formats a whole-yen amount with ja-JP digit grouping.
// e.g., 1234567 -> "¥1,234,567", -500 -> "-¥500"
func FormatYen(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	n := int64(math.Round(v))
	if n < 0 {
		return "-¥" + yenPrinter.Sprintf("%d", -n)
	}
	return "¥" + yenPrinter.Sprintf("%d", n)
}

// FormatMan formats yen compactly in man (10,000) and oku (100,000,000) units.
// e.g., 123456789 -> "1.23億", 12345678 -> "1,235万", 9999 -> "¥9,999"
func FormatMan(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}

	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Sprint(v)
	case abs >= 100_000_000:
		return fmt.Sprintf("%s%.2f億", sign, abs/100_000_000)
	case abs >= 10_000:
		return sign + humanize.Comma(int64(math.Round(abs/10_000))) + "万"
	default:
		return FormatYen(v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a rate already expressed in percent.
// e.g., 2 -> "2.0%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the signed difference between two yen amounts.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatYen(delta)
	}
	return FormatYen(delta)
}

// FormatAge formats an age, or "-" for none.
func FormatAge(age int) string {
	if age <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", age)
}
