package screen

import (
	"fmt"
	"math"
)

// FormatUSD renders a dollar amount compactly: $1.2B, $34.5M, $120.3K, $512.
func FormatUSD(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	case abs == 0:
		return "-"
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatPrice renders a token price with precision scaled to its magnitude;
// micro-cap tokens need many decimals to show anything at all.
func FormatPrice(v float64) string {
	switch {
	case v == 0:
		return "-"
	case v >= 1:
		return fmt.Sprintf("$%.2f", v)
	case v >= 0.0001:
		return fmt.Sprintf("$%.6f", v)
	default:
		return fmt.Sprintf("$%.10f", v)
	}
}

// FormatChange renders a signed percentage change.
func FormatChange(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}
