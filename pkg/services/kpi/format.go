package kpi

import (
	"fmt"
	"strings"
)

// FormatKRW renders a won amount with a compact scale suffix.
func FormatKRW(value float64) string {
	switch {
	case value >= 1e12:
		return fmt.Sprintf("₩%.1fT", value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("₩%.1fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("₩%.1fM", value/1e6)
	default:
		return "₩" + groupDigits(fmt.Sprintf("%.0f", value))
	}
}

// FormatUSD renders a dollar amount with a compact scale suffix.
func FormatUSD(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("$%.1fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("$%.0fM", value/1e6)
	default:
		return "$" + groupDigits(fmt.Sprintf("%.0f", value))
	}
}

func FormatPercent(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(value int64) string {
	return groupDigits(fmt.Sprintf("%d", value))
}

// TrendIndicator maps period-over-period change to an arrow glyph.
// Moves within 5 percent either way read as flat.
func TrendIndicator(current, previous float64) string {
	if previous == 0 {
		return "→"
	}
	change := (current - previous) / previous * 100
	switch {
	case change > 5:
		return "↑"
	case change < -5:
		return "↓"
	default:
		return "→"
	}
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
