package models

// ParliamentStats holds the derived figures for one parliamentary term.
// Never stored; rebuilt on every request.
type ParliamentStats struct {
	Parliament         int
	DaysSat            int64
	DaysUrgent         int64
	PercentUrgent      float64
	TotalBills         int64
	BillsUrgent        int64
	PercentBillsUrgent float64
	LastUpdated        string
}

// NotAvailable is rendered in place of a date or day count that does not exist yet.
const NotAvailable = "N/A"
