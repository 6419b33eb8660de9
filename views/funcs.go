package views

import "strconv"

// FormatPercent prints a percentage with at most two decimals and no
// trailing zeros: 33.33, 50, 0.5.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
