package newsletter

import (
	"fmt"
	"math"
)

// FormatMoney renders a dollar amount with a T/B/M magnitude suffix, two
// decimals, or "N/A" when the value is missing (NaN or non-positive).
func FormatMoney(v float64) string {
	if math.IsNaN(v) || v <= 0 {
		return "N/A"
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPercentChange renders a signed percentage with one decimal, or
// "N/A" when the value is missing.
func FormatPercentChange(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", v)
}

// SentimentBadge maps a sentiment score to a CSS badge class.
func SentimentBadge(score float64) string {
	switch {
	case score > 0.1:
		return "badge-positive"
	case score < -0.1:
		return "badge-negative"
	default:
		return "badge-neutral"
	}
}
