package stats

import (
	"context"
	"time"

	"nzpt/internal/models"
)

type termData struct {
	daysSat, daysUrgent, billsUrgent int64
	latest                           *time.Time
	bills                            []models.UrgentBill
}

type fakeSource struct {
	terms map[int]termData
	err   error
	calls int
}

func (f *fakeSource) CountSittingDays(_ context.Context, p int) (int64, error) {
	f.calls++
	return f.terms[p].daysSat, f.err
}

func (f *fakeSource) CountUrgentDays(_ context.Context, p int) (int64, error) {
	f.calls++
	return f.terms[p].daysUrgent, f.err
}

func (f *fakeSource) LatestUrgentDay(_ context.Context, p int) (*time.Time, error) {
	f.calls++
	return f.terms[p].latest, f.err
}

func (f *fakeSource) CountUrgentBills(_ context.Context, p int) (int64, error) {
	f.calls++
	return f.terms[p].billsUrgent, f.err
}

func (f *fakeSource) ListUrgentBills(_ context.Context, p int) ([]models.UrgentBill, error) {
	f.calls++
	return f.terms[p].bills, f.err
}

type fakeArtifacts struct {
	lastUpdated string
	counter     models.BillCounter
	err         error
}

func (f *fakeArtifacts) LastUpdated() (string, error) {
	return f.lastUpdated, f.err
}

func (f *fakeArtifacts) BillCounter() (models.BillCounter, error) {
	return f.counter, f.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
