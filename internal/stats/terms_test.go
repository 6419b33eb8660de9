package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nzpt/internal/config"
	"nzpt/internal/models"
)

func int64Ptr(n int64) *int64 { return &n }

func TestTermsFromConfig(t *testing.T) {
	cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{
		{Number: 54, Source: config.SourceMeasured, UseCounter: true},
		{Number: 50, Source: config.SourceLiteral, DaysSat: 10, DaysUrgent: 5, BillsUrgent: 2, TotalBills: int64Ptr(8), AsOf: "2014"},
		{Number: 52, Source: config.SourceMeasured, Label: "Custom label", TotalBills: int64Ptr(300)},
	}}

	terms, err := TermsFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, terms, 3)

	assert.Equal(t, []int{50, 52, 54}, []int{terms[0].Number, terms[1].Number, terms[2].Number})
	assert.Equal(t, "50th Parliament of New Zealand", terms[0].Label)
	assert.Equal(t, "Custom label", terms[1].Label)

	lit, ok := terms[0].Source.(Literal)
	require.True(t, ok)
	assert.EqualValues(t, 8, lit.TotalBills)

	measured, ok := terms[2].Source.(Measured)
	require.True(t, ok)
	assert.True(t, measured.UseCounter)
	assert.Nil(t, measured.TotalBills)
}

func TestTermsFromConfig_UnknownSource(t *testing.T) {
	cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{{Number: 54, Source: "guessed"}}}

	_, err := TermsFromConfig(cfg)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func historicalFixture() (*fakeSource, *fakeArtifacts, []Term) {
	source := &fakeSource{terms: map[int]termData{
		52: {daysSat: 200, daysUrgent: 20, billsUrgent: 40},
		53: {daysSat: 250, daysUrgent: 50, billsUrgent: 75},
		54: {daysSat: 150, daysUrgent: 45, billsUrgent: 60},
	}}
	arts := &fakeArtifacts{lastUpdated: "2025-12-24", counter: models.BillCounter{Total: 240}}

	var terms []Term
	// Deliberately out of order.
	terms = append(terms, Term{Number: 54, Source: Measured{UseCounter: true}})
	for n := int64(48); n <= 51; n++ {
		terms = append(terms, Term{Number: int(n), Source: Literal{DaysSat: 100, DaysUrgent: n - 40, TotalBills: 200, BillsUrgent: n, AsOf: "archive"}})
	}
	terms = append(terms,
		Term{Number: 53, Source: Measured{TotalBills: int64Ptr(300), AsOf: "December 24th 2025"}},
		Term{Number: 52, Source: Measured{AsOf: "December 24th 2025"}},
	)
	return source, arts, terms
}

func TestService_Historical(t *testing.T) {
	source, arts, terms := historicalFixture()
	svc := NewService(source, arts, 54, terms, nil)

	h, err := svc.Historical(context.Background())
	require.NoError(t, err)
	require.Len(t, h.Terms, 7)

	for i, term := range h.Terms {
		assert.Equal(t, 48+i, term.Parliament, "terms ascend by number")
	}

	// Literal
	assert.EqualValues(t, 8, h.Terms[0].DaysUrgent)
	assert.Equal(t, 8.0, h.Terms[0].PercentUrgent)
	assert.Equal(t, 24.0, h.Terms[0].PercentBillsUrgent)
	assert.Equal(t, "archive", h.Terms[0].LastUpdated)

	// Measured without a known total: bill percentage guarded to 0.
	t52 := h.Terms[4]
	assert.EqualValues(t, 40, t52.BillsUrgent)
	assert.Zero(t, t52.TotalBills)
	assert.Zero(t, t52.PercentBillsUrgent)
	assert.Equal(t, 10.0, t52.PercentUrgent)

	// Measured with a pinned total.
	t53 := h.Terms[5]
	assert.EqualValues(t, 300, t53.TotalBills)
	assert.Equal(t, 25.0, t53.PercentBillsUrgent)

	// Measured from the counter, "last updated" from lastupdate.txt.
	t54 := h.Terms[6]
	assert.EqualValues(t, 240, t54.TotalBills)
	assert.Equal(t, 25.0, t54.PercentBillsUrgent)
	assert.Equal(t, 30.0, t54.PercentUrgent)
	assert.Equal(t, "2025-12-24", t54.LastUpdated)
	assert.Equal(t, "54th", t54.Ordinal)
}

func TestService_Historical_ChartAligned(t *testing.T) {
	source, arts, terms := historicalFixture()
	svc := NewService(source, arts, 54, terms, nil)

	h, err := svc.Historical(context.Background())
	require.NoError(t, err)

	c := h.Chart
	require.Len(t, c.Labels, 7)
	require.Len(t, c.BillsPercent, 7)
	require.Len(t, c.DaysPercent, 7)

	for i, term := range h.Terms {
		assert.Equal(t, term.Ordinal, c.Labels[i])
		assert.Equal(t, term.PercentBillsUrgent, c.BillsPercent[i])
		assert.Equal(t, term.PercentUrgent, c.DaysPercent[i])
	}
	assert.Equal(t, "48th", c.Labels[0])
	assert.Equal(t, "54th", c.Labels[6])
}

func TestService_Historical_Error(t *testing.T) {
	boom := errors.New("unreachable")
	terms := []Term{{Number: 54, Source: Measured{}}}
	svc := NewService(&fakeSource{err: boom}, &fakeArtifacts{}, 54, terms, nil)

	_, err := svc.Historical(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_Historical_NilSource(t *testing.T) {
	svc := NewService(&fakeSource{}, &fakeArtifacts{}, 54, []Term{{Number: 54}}, nil)

	_, err := svc.Historical(context.Background())
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestBuildChart_Empty(t *testing.T) {
	c := BuildChart(nil)
	assert.Empty(t, c.Labels)
	assert.NotNil(t, c.Labels, "serializes as [] not null")
}

func TestTermsFromConfig_RejectsImpossibleFigures(t *testing.T) {
	tests := []struct {
		name string
		term config.TermConfig
	}{
		{"negative days sat", config.TermConfig{Number: 50, Source: config.SourceLiteral, DaysSat: -4}},
		{"more urgent days than days sat", config.TermConfig{Number: 50, Source: config.SourceLiteral, DaysSat: 10, DaysUrgent: 25}},
		{"more urgent bills than bills", config.TermConfig{Number: 50, Source: config.SourceLiteral, BillsUrgent: 30, TotalBills: int64Ptr(10)}},
		{"negative pinned total", config.TermConfig{Number: 52, Source: config.SourceMeasured, TotalBills: int64Ptr(-1)}},
		{"zero term number", config.TermConfig{Number: 0, Source: config.SourceMeasured}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{tt.term}}

			terms, err := TermsFromConfig(cfg)
			assert.ErrorIs(t, err, ErrInvalidTerm)
			assert.Nil(t, terms)
		})
	}
}

func TestTermsFromConfig_RejectsDuplicateNumbers(t *testing.T) {
	cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{
		{Number: 51, Source: config.SourceLiteral, DaysSat: 10, DaysUrgent: 1},
		{Number: 51, Source: config.SourceMeasured},
	}}

	_, err := TermsFromConfig(cfg)
	require.ErrorIs(t, err, ErrInvalidTerm)
	assert.Contains(t, err.Error(), "parliament 51 is listed more than once")
}

func TestTermsFromConfig_ReportsEveryProblem(t *testing.T) {
	cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{
		{Number: 49, Source: config.SourceLiteral, DaysSat: 10, DaysUrgent: 25},
		{Number: 50, Source: "guessed"},
	}}

	_, err := TermsFromConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTerm)
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.Contains(t, err.Error(), "parliament 49")
	assert.Contains(t, err.Error(), "parliament 50")
}

func TestTermsFromConfig_UnknownTotalAllowed(t *testing.T) {
	cfg := &config.ParliamentsConfig{Terms: []config.TermConfig{
		{Number: 50, Source: config.SourceLiteral, DaysSat: 10, DaysUrgent: 5, BillsUrgent: 30},
	}}

	terms, err := TermsFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, terms, 1)
}

func TestService_Historical_CounterBehindBills(t *testing.T) {
	source := &fakeSource{terms: map[int]termData{54: {daysSat: 10, daysUrgent: 4, billsUrgent: 50}}}
	arts := &fakeArtifacts{lastUpdated: "today", counter: models.BillCounter{Total: 20}}
	svc := NewService(source, arts, 54, []Term{{Number: 54, Source: Measured{UseCounter: true}}}, nil)

	h, err := svc.Historical(context.Background())
	require.NoError(t, err)
	require.Len(t, h.Terms, 1)

	assert.EqualValues(t, 50, h.Terms[0].TotalBills)
	assert.Equal(t, 100.0, h.Terms[0].PercentBillsUrgent)
}
