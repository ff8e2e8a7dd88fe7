package game

import (
	"fmt"
	"math"
)

// FormatMoney renders a dollar amount with K/M/B suffixes.
func FormatMoney(amount float64) string {
	abs := math.Abs(amount)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", amount/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", amount/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", amount/1e3)
	default:
		return fmt.Sprintf("$%.2f", amount)
	}
}

// FormatPrice renders an asset price with precision scaled to magnitude,
// so sub-cent crypto doesn't collapse to $0.00.
func FormatPrice(price float64) string {
	switch {
	case price >= 1:
		return fmt.Sprintf("%.2f", price)
	case price >= 0.01:
		return fmt.Sprintf("%.4f", price)
	default:
		return fmt.Sprintf("%.8f", price)
	}
}

// FormatPercent renders a fraction as a percentage.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
