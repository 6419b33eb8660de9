package models

import "time"

// UrgentBill is a bill with at least one stage taken under urgency.
// Name, Members and Description are operator-entered free text.
type UrgentBill struct {
	ID          int64
	Name        string
	URL         string
	Members     string
	Description string
	Parliament  int
}

// BillCounter is the running estimate of bills considered this term,
// as written by the ingestion job.
type BillCounter struct {
	Total int64
	AsOf  time.Time
}
