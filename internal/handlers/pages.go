package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"nzpt/internal/chart"
	"nzpt/internal/config"
	"nzpt/internal/metrics"
	"nzpt/internal/stats"
	"nzpt/internal/validation"
)

// BillCard is one bill as rendered on the bills page. URL is empty when the
// stored link is not safe to emit as an href.
type BillCard struct {
	Name        string
	Members     string
	Description string
	URL         string
}

// PageHandler serves the home, bills and historical pages.
type PageHandler struct {
	stats       *stats.Service
	cfg         *config.Config
	pageUpdated string
	now         func() time.Time
}

// NewPageHandler creates a new page handler. pageUpdated is the note shown on
// the historical page.
func NewPageHandler(svc *stats.Service, cfg *config.Config, pageUpdated string) *PageHandler {
	return &PageHandler{
		stats:       svc,
		cfg:         cfg,
		pageUpdated: pageUpdated,
		now:         time.Now,
	}
}

// Home renders the current parliament's urgency statistics.
func (h *PageHandler) Home(c fiber.Ctx) error {
	sum, err := h.stats.Current(c.Context(), h.now())
	if err != nil {
		return err
	}

	percentTweet := fmt.Sprintf("Did you know that %s%% of the %s New Zealand Parliament sitting days has been in urgency?",
		percentText(sum.PercentUrgent), sum.ParliamentOrdinal)
	daysSinceTweet := fmt.Sprintf("There has been %s days since the NZ Government has been in Urgency!", sum.DaysSinceUrgency)

	metrics.RecordPageView("home")
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":             "Urgency Statistics",
		"Active":            "home",
		"Description":       "Tracking the use of urgency in the New Zealand Parliament.",
		"SocialTitle":       "New Zealand Politics Tracker",
		"SocialDescription": fmt.Sprintf("%s%% of sitting days in the %s Parliament have been under urgency.", percentText(sum.PercentUrgent), sum.ParliamentOrdinal),
		"Stats":             sum,
		"TweetPercentURL":   tweetURL(percentTweet, h.cfg.BaseURL+"/"),
		"TweetDaysSinceURL": tweetURL(daysSinceTweet, h.cfg.BaseURL+"/"),
	}, h.cfg))
}

// Bills renders the current parliament's bills affected by urgency.
func (h *PageHandler) Bills(c fiber.Ctx) error {
	list, err := h.stats.Bills(c.Context())
	if err != nil {
		return err
	}

	cards := make([]BillCard, 0, list.Count())
	for _, b := range list.Bills {
		cards = append(cards, BillCard{
			Name:        b.Name,
			Members:     b.Members,
			Description: b.Description,
			URL:         validation.LinkableURL(b.URL),
		})
	}

	social := fmt.Sprintf("The NZ Govt has passed %d bills under urgency!", list.Count())

	metrics.RecordPageView("bills")
	return c.Render("bills", MergeBranding(fiber.Map{
		"Title":             fmt.Sprintf("The %d bills passed under urgency", list.Count()),
		"Active":            "bills",
		"Description":       social,
		"SocialTitle":       "Urgency Bill Viewer - New Zealand Politics Tracker",
		"SocialDescription": social,
		"CanonicalURL":      h.cfg.BaseURL + "/bills",
		"Bills":             list,
		"Cards":             cards,
	}, h.cfg))
}

// Historical renders the parliament-by-parliament comparison.
func (h *PageHandler) Historical(c fiber.Ctx) error {
	history, err := h.stats.Historical(c.Context())
	if err != nil {
		return err
	}

	var billsUrgent int64
	for _, t := range history.Terms {
		if t.Parliament == history.Current {
			billsUrgent = t.BillsUrgent
		}
	}
	social := fmt.Sprintf("The NZ Govt has passed %d bills under urgency! How does this compare?", billsUrgent)

	metrics.RecordPageView("historical")
	return c.Render("historical", MergeBranding(fiber.Map{
		"Title":             "Historical Data",
		"Active":            "historical",
		"Description":       social,
		"SocialTitle":       "New Zealand Politics Tracker",
		"SocialDescription": social,
		"CanonicalURL":      h.cfg.BaseURL + "/historical",
		"History":           history,
		"PageUpdated":       h.pageUpdated,
	}, h.cfg))
}

// HistoricalChart renders the comparison chart as an SVG image.
func (h *PageHandler) HistoricalChart(c fiber.Ctx) error {
	history, err := h.stats.Historical(c.Context())
	if err != nil {
		return err
	}

	svg, err := chart.SVG(history.Chart)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(svg)
}
