package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nzpt/internal/stats"
)

var (
	daysSatDesc = prometheus.NewDesc(
		"nzpt_sitting_days",
		"Days the parliament has sat",
		[]string{"parliament"},
		nil,
	)
	daysUrgentDesc = prometheus.NewDesc(
		"nzpt_urgent_days",
		"Sitting days spent in urgency",
		[]string{"parliament"},
		nil,
	)
	billsUrgentDesc = prometheus.NewDesc(
		"nzpt_urgent_bills",
		"Bills with at least one stage taken under urgency",
		[]string{"parliament"},
		nil,
	)
	totalBillsDesc = prometheus.NewDesc(
		"nzpt_estimated_bills",
		"Estimated bills considered this term, from the bill counter",
		[]string{"parliament"},
		nil,
	)

	pageViews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nzpt_page_views_total",
		Help: "Rendered pages by page name",
	}, []string{"page"})
)

// StatsCollector is a custom Prometheus collector that reads the current
// parliament's figures from the data source on each scrape.
type StatsCollector struct {
	stats   *stats.Service
	timeout time.Duration
}

// NewStatsCollector creates a collector over the given stats service.
func NewStatsCollector(svc *stats.Service) *StatsCollector {
	return &StatsCollector{stats: svc, timeout: 5 * time.Second}
}

// Describe sends the metric descriptors to the channel.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- daysSatDesc
	ch <- daysUrgentDesc
	ch <- billsUrgentDesc
	ch <- totalBillsDesc
}

// Collect loads a fresh snapshot and emits it as gauges. A failed load emits
// nothing; the scrape still succeeds.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	snap, err := c.stats.Load(ctx)
	if err != nil {
		slog.Error("failed to collect urgency metrics", "error", err)
		return
	}

	parliament := strconv.Itoa(snap.Parliament)
	ch <- prometheus.MustNewConstMetric(daysSatDesc, prometheus.GaugeValue, float64(snap.DaysSat), parliament)
	ch <- prometheus.MustNewConstMetric(daysUrgentDesc, prometheus.GaugeValue, float64(snap.DaysUrgent), parliament)
	ch <- prometheus.MustNewConstMetric(billsUrgentDesc, prometheus.GaugeValue, float64(snap.BillsUrgent), parliament)
	ch <- prometheus.MustNewConstMetric(totalBillsDesc, prometheus.GaugeValue, float64(snap.Counter.Total), parliament)
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(svc *stats.Service) {
	initOnce.Do(func() {
		prometheus.MustRegister(pageViews, NewStatsCollector(svc))
	})
}

// RecordPageView counts a successfully rendered page.
func RecordPageView(page string) {
	pageViews.WithLabelValues(page).Inc()
}

// Handler exposes the default registry to Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
