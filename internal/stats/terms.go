package stats

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"nzpt/internal/config"
	"nzpt/internal/models"
)

var (
	// ErrUnknownSource is returned for a term whose source is neither measured nor literal.
	ErrUnknownSource = errors.New("unknown term source")
	// ErrInvalidTerm is returned for a term whose figures can't be shown as given.
	ErrInvalidTerm = errors.New("invalid term")
)

// TermSource says where a term's figures come from. It is either Measured or Literal.
type TermSource interface {
	resolve(ctx context.Context, s *Service, parliament int) (models.ParliamentStats, error)
}

// Measured terms are counted live from the sitting-day and bill tables.
type Measured struct {
	// TotalBills pins a finalized bill total. When nil, UseCounter takes the
	// running estimate from billcounter.txt; otherwise the total is unknown (0).
	TotalBills *int64
	UseCounter bool
	AsOf       string // "Last Updated" label; lastupdate.txt when empty
}

// Literal terms carry fixed figures for parliaments with no tabular data.
type Literal struct {
	DaysSat     int64
	DaysUrgent  int64
	TotalBills  int64
	BillsUrgent int64
	AsOf        string
}

// Term is one parliament on the historical page.
type Term struct {
	Number int
	Label  string
	Years  string
	Source TermSource
}

// TermStats is a resolved term, ready to render.
type TermStats struct {
	models.ParliamentStats
	Label   string
	Years   string
	Ordinal string
}

// Chart is the comparison chart payload: three arrays aligned by term.
type Chart struct {
	Labels       []string  `json:"labels"`
	BillsPercent []float64 `json:"billsPercent"`
	DaysPercent  []float64 `json:"daysPercent"`
}

// History is the historical page data, ascending by term number.
type History struct {
	Current int
	Terms   []TermStats
	Chart   Chart
}

func (m Measured) resolve(ctx context.Context, s *Service, parliament int) (models.ParliamentStats, error) {
	st := models.ParliamentStats{Parliament: parliament, LastUpdated: m.AsOf}
	var err error

	if st.DaysSat, err = s.source.CountSittingDays(ctx, parliament); err != nil {
		return st, fmt.Errorf("count sitting days for %d: %w", parliament, err)
	}
	if st.DaysUrgent, err = s.source.CountUrgentDays(ctx, parliament); err != nil {
		return st, fmt.Errorf("count urgent days for %d: %w", parliament, err)
	}
	if st.BillsUrgent, err = s.source.CountUrgentBills(ctx, parliament); err != nil {
		return st, fmt.Errorf("count urgent bills for %d: %w", parliament, err)
	}

	switch {
	case m.TotalBills != nil:
		st.TotalBills = *m.TotalBills
	case m.UseCounter:
		counter, err := s.artifacts.BillCounter()
		if err != nil {
			return st, err
		}
		st.TotalBills = counter.Total
	}

	st.TotalBills = EstimatedTotal(st.TotalBills, st.BillsUrgent)

	if st.LastUpdated == "" {
		if st.LastUpdated, err = s.artifacts.LastUpdated(); err != nil {
			return st, err
		}
	}

	st.PercentUrgent = Percent(st.DaysUrgent, st.DaysSat)
	st.PercentBillsUrgent = Percent(st.BillsUrgent, st.TotalBills)
	return st, nil
}

func (l Literal) resolve(_ context.Context, _ *Service, parliament int) (models.ParliamentStats, error) {
	return models.ParliamentStats{
		Parliament:         parliament,
		DaysSat:            l.DaysSat,
		DaysUrgent:         l.DaysUrgent,
		PercentUrgent:      Percent(l.DaysUrgent, l.DaysSat),
		TotalBills:         l.TotalBills,
		BillsUrgent:        l.BillsUrgent,
		PercentBillsUrgent: Percent(l.BillsUrgent, l.TotalBills),
		LastUpdated:        l.AsOf,
	}, nil
}

// TermsFromConfig converts the parliaments file into terms, ascending by number.
// Every invalid term is reported, not just the first.
func TermsFromConfig(cfg *config.ParliamentsConfig) ([]Term, error) {
	var result *multierror.Error
	terms := make([]Term, 0, len(cfg.Terms))
	seen := make(map[int]bool, len(cfg.Terms))

	for _, tc := range cfg.Terms {
		if err := validateTerm(tc); err != nil {
			result = multierror.Append(result, err)
		}
		if seen[tc.Number] {
			result = multierror.Append(result, fmt.Errorf("%w: parliament %d is listed more than once", ErrInvalidTerm, tc.Number))
		}
		seen[tc.Number] = true

		term := Term{Number: tc.Number, Label: tc.Label, Years: tc.Years}
		if term.Label == "" {
			term.Label = Ordinal(tc.Number) + " Parliament of New Zealand"
		}

		switch tc.Source {
		case config.SourceMeasured:
			term.Source = Measured{TotalBills: tc.TotalBills, UseCounter: tc.UseCounter, AsOf: tc.AsOf}
		case config.SourceLiteral:
			lit := Literal{
				DaysSat:     tc.DaysSat,
				DaysUrgent:  tc.DaysUrgent,
				BillsUrgent: tc.BillsUrgent,
				AsOf:        tc.AsOf,
			}
			if tc.TotalBills != nil {
				lit.TotalBills = *tc.TotalBills
			}
			term.Source = lit
		default:
			result = multierror.Append(result, fmt.Errorf("%w %q for parliament %d", ErrUnknownSource, tc.Source, tc.Number))
		}

		terms = append(terms, term)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(terms, func(a, b Term) int { return a.Number - b.Number })
	return terms, nil
}

// validateTerm checks one term's figures are counts and that no part exceeds
// its whole. A total of 0 means unknown.
func validateTerm(tc config.TermConfig) error {
	var result *multierror.Error
	invalid := func(format string, args ...any) {
		args = append([]any{ErrInvalidTerm, tc.Number}, args...)
		result = multierror.Append(result, fmt.Errorf("%w: parliament %d: "+format, args...))
	}

	if tc.Number <= 0 {
		invalid("number must be positive")
	}
	if tc.DaysSat < 0 || tc.DaysUrgent < 0 || tc.BillsUrgent < 0 {
		invalid("days_sat, days_urgent and bills_urgent must not be negative")
	}
	if tc.TotalBills != nil && *tc.TotalBills < 0 {
		invalid("total_bills must not be negative")
	}

	if tc.Source == config.SourceLiteral {
		if tc.DaysUrgent > tc.DaysSat {
			invalid("days_urgent %d exceeds days_sat %d", tc.DaysUrgent, tc.DaysSat)
		}
		if tc.TotalBills != nil && *tc.TotalBills > 0 && tc.BillsUrgent > *tc.TotalBills {
			invalid("bills_urgent %d exceeds total_bills %d", tc.BillsUrgent, *tc.TotalBills)
		}
	}

	return result.ErrorOrNil()
}

// Historical resolves every configured term and builds the comparison chart.
func (s *Service) Historical(ctx context.Context) (*History, error) {
	h := &History{
		Current: s.current,
		Terms:   make([]TermStats, 0, len(s.terms)),
	}

	for _, term := range s.terms {
		if term.Source == nil {
			return nil, fmt.Errorf("%w for parliament %d", ErrUnknownSource, term.Number)
		}
		st, err := term.Source.resolve(ctx, s, term.Number)
		if err != nil {
			return nil, err
		}
		h.Terms = append(h.Terms, TermStats{
			ParliamentStats: st,
			Label:           term.Label,
			Years:           term.Years,
			Ordinal:         Ordinal(term.Number),
		})
	}

	h.Chart = BuildChart(h.Terms)
	return h, nil
}

// BuildChart lays the terms out as parallel arrays, index i being terms[i].
func BuildChart(terms []TermStats) Chart {
	c := Chart{
		Labels:       make([]string, len(terms)),
		BillsPercent: make([]float64, len(terms)),
		DaysPercent:  make([]float64, len(terms)),
	}
	for i, t := range terms {
		c.Labels[i] = t.Ordinal
		c.BillsPercent[i] = t.PercentBillsUrgent
		c.DaysPercent[i] = t.PercentUrgent
	}
	return c
}
