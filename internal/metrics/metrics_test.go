package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nzpt/internal/models"
	"nzpt/internal/stats"
)

type stubSource struct {
	err error
}

func (s stubSource) CountSittingDays(context.Context, int) (int64, error) { return 150, s.err }
func (s stubSource) CountUrgentDays(context.Context, int) (int64, error)  { return 45, s.err }
func (s stubSource) LatestUrgentDay(context.Context, int) (*time.Time, error) {
	return nil, s.err
}
func (s stubSource) CountUrgentBills(context.Context, int) (int64, error) { return 60, s.err }
func (s stubSource) ListUrgentBills(context.Context, int) ([]models.UrgentBill, error) {
	return nil, s.err
}

type stubArtifacts struct{}

func (stubArtifacts) LastUpdated() (string, error) { return "today", nil }
func (stubArtifacts) BillCounter() (models.BillCounter, error) {
	return models.BillCounter{Total: 240}, nil
}

func TestStatsCollector(t *testing.T) {
	svc := stats.NewService(stubSource{}, stubArtifacts{}, 54, nil, nil)
	collector := NewStatsCollector(svc)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(collector))

	expected := `
# HELP nzpt_sitting_days Days the parliament has sat
# TYPE nzpt_sitting_days gauge
nzpt_sitting_days{parliament="54"} 150
# HELP nzpt_urgent_days Sitting days spent in urgency
# TYPE nzpt_urgent_days gauge
nzpt_urgent_days{parliament="54"} 45
# HELP nzpt_urgent_bills Bills with at least one stage taken under urgency
# TYPE nzpt_urgent_bills gauge
nzpt_urgent_bills{parliament="54"} 60
# HELP nzpt_estimated_bills Estimated bills considered this term, from the bill counter
# TYPE nzpt_estimated_bills gauge
nzpt_estimated_bills{parliament="54"} 240
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestStatsCollector_SourceError(t *testing.T) {
	svc := stats.NewService(stubSource{err: errors.New("locked")}, stubArtifacts{}, 54, nil, nil)

	assert.Equal(t, 0, testutil.CollectAndCount(NewStatsCollector(svc)))
}

func TestRecordPageView(t *testing.T) {
	before := testutil.ToFloat64(pageViews.WithLabelValues("bills"))
	RecordPageView("bills")
	assert.Equal(t, before+1, testutil.ToFloat64(pageViews.WithLabelValues("bills")))
}
