// Package stats turns raw sitting-day and bill records into the figures the
// site displays: counts, percentages, days since urgency and the
// parliament-by-parliament comparison.
package stats

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"nzpt/internal/models"
)

// Source is the read side of the data store. *db.DB implements it.
type Source interface {
	CountSittingDays(ctx context.Context, parliament int) (int64, error)
	CountUrgentDays(ctx context.Context, parliament int) (int64, error)
	LatestUrgentDay(ctx context.Context, parliament int) (*time.Time, error)
	CountUrgentBills(ctx context.Context, parliament int) (int64, error)
	ListUrgentBills(ctx context.Context, parliament int) ([]models.UrgentBill, error)
}

// Artifacts supplies the scalar values kept outside the database.
// *artifacts.Files implements it.
type Artifacts interface {
	LastUpdated() (string, error)
	BillCounter() (models.BillCounter, error)
}

// Snapshot is the raw data behind the home page, read in one pass.
type Snapshot struct {
	Parliament   int
	DaysSat      int64
	DaysUrgent   int64
	BillsUrgent  int64
	LatestUrgent *time.Time
	Counter      models.BillCounter
	LastUpdated  string
}

// Summary is everything the home page shows about the current parliament.
type Summary struct {
	models.ParliamentStats
	ParliamentOrdinal string
	LastUrgentDate    string // "02 Jan 2006" or N/A
	DaysSinceUrgency  string // integer or N/A
	CounterAsOf       string
}

// BillList is the bills page data.
type BillList struct {
	Parliament        int
	ParliamentOrdinal string
	Bills             []models.UrgentBill
}

// Count is the number of bills listed.
func (b *BillList) Count() int {
	return len(b.Bills)
}

// Service aggregates statistics for the configured parliaments.
type Service struct {
	source    Source
	artifacts Artifacts
	current   int
	terms     []Term
	loc       *time.Location
}

// NewService creates a stats service. Terms are shown ascending by number
// whatever their order here; nil is fine when the historical comparison is
// not needed.
func NewService(source Source, artifacts Artifacts, current int, terms []Term, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	sorted := slices.Clone(terms)
	slices.SortStableFunc(sorted, func(a, b Term) int { return a.Number - b.Number })

	return &Service{
		source:    source,
		artifacts: artifacts,
		current:   current,
		terms:     sorted,
		loc:       loc,
	}
}

// CurrentParliament returns the term shown on the home and bills pages.
func (s *Service) CurrentParliament() int {
	return s.current
}

// Load reads the current parliament's raw figures.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Parliament: s.current}
	var err error

	if snap.DaysSat, err = s.source.CountSittingDays(ctx, s.current); err != nil {
		return nil, fmt.Errorf("count sitting days: %w", err)
	}
	if snap.DaysUrgent, err = s.source.CountUrgentDays(ctx, s.current); err != nil {
		return nil, fmt.Errorf("count urgent days: %w", err)
	}
	if snap.BillsUrgent, err = s.source.CountUrgentBills(ctx, s.current); err != nil {
		return nil, fmt.Errorf("count urgent bills: %w", err)
	}
	if snap.LatestUrgent, err = s.source.LatestUrgentDay(ctx, s.current); err != nil {
		return nil, fmt.Errorf("latest urgent day: %w", err)
	}
	if snap.LastUpdated, err = s.artifacts.LastUpdated(); err != nil {
		return nil, err
	}
	if snap.Counter, err = s.artifacts.BillCounter(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Summarize derives the home page figures from a snapshot.
func Summarize(snap *Snapshot, now time.Time, loc *time.Location) Summary {
	total := EstimatedTotal(snap.Counter.Total, snap.BillsUrgent)
	sum := Summary{
		ParliamentStats: models.ParliamentStats{
			Parliament:         snap.Parliament,
			DaysSat:            snap.DaysSat,
			DaysUrgent:         snap.DaysUrgent,
			PercentUrgent:      Percent(snap.DaysUrgent, snap.DaysSat),
			TotalBills:         total,
			BillsUrgent:        snap.BillsUrgent,
			PercentBillsUrgent: Percent(snap.BillsUrgent, total),
			LastUpdated:        snap.LastUpdated,
		},
		ParliamentOrdinal: Ordinal(snap.Parliament),
		LastUrgentDate:    models.NotAvailable,
		DaysSinceUrgency:  models.NotAvailable,
	}

	if !snap.Counter.AsOf.IsZero() {
		sum.CounterAsOf = FormatDate(snap.Counter.AsOf)
	}

	if snap.LatestUrgent != nil {
		sum.LastUrgentDate = FormatDate(*snap.LatestUrgent)
		sum.DaysSinceUrgency = strconv.Itoa(DaysSince(*snap.LatestUrgent, now, loc))
	}

	return sum
}

// Current loads and summarizes the current parliament.
func (s *Service) Current(ctx context.Context, now time.Time) (*Summary, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	sum := Summarize(snap, now, s.loc)
	return &sum, nil
}

// Bills returns the current parliament's bills affected by urgency, ordered
// by name byte-wise so the order doesn't depend on database collation.
func (s *Service) Bills(ctx context.Context) (*BillList, error) {
	bills, err := s.source.ListUrgentBills(ctx, s.current)
	if err != nil {
		return nil, fmt.Errorf("list urgent bills: %w", err)
	}

	slices.SortStableFunc(bills, func(a, b models.UrgentBill) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &BillList{
		Parliament:        s.current,
		ParliamentOrdinal: Ordinal(s.current),
		Bills:             bills,
	}, nil
}
