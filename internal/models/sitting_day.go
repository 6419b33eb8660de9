package models

import "time"

// SittingDay is one day the House sat, flagged when an urgency motion was agreed to.
type SittingDay struct {
	ID         int64
	Date       time.Time
	InUrgency  bool
	Parliament int
}
