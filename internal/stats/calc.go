package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole as a percentage rounded half away from zero to
// two decimal places. A zero or negative whole yields 0, and the result is
// kept within [0, 100].
func Percent(part, whole int64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	return decimal.NewFromInt(part).
		Mul(hundred).
		Div(decimal.NewFromInt(whole)).
		Round(2).
		InexactFloat64()
}

// DaysSince returns the number of calendar days from day to now, with now
// read in loc. Dates after now count as 0.
func DaysSince(day, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	y, m, d = day.Date()
	then := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	days := int(today.Sub(then).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// FormatDate renders a sitting date the way the site displays it, e.g. "09 Dec 2025".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// Ordinal renders 54 as "54th", 53 as "53rd", 111 as "111th".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// EstimatedTotal reconciles a bill total with the bills already counted under
// urgency. The counter is an estimate that can lag the bills table; a known
// total below the urgent count is raised to it. Zero means unknown and is
// kept.
func EstimatedTotal(total, urgent int64) int64 {
	if total > 0 && total < urgent {
		return urgent
	}
	return total
}
