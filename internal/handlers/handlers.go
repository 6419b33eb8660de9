// Package handlers renders the site's pages from the stats service.
package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"nzpt/internal/config"
	"nzpt/views"
)

// tweetURL builds a share link to the tweet intent with the text and link
// query-encoded.
func tweetURL(text, link string) string {
	q := url.Values{}
	q.Set("text", text)
	q.Set("url", link)
	return "https://twitter.com/intent/tweet?" + q.Encode()
}

// RenderError renders the error page. Used by the app's error handler.
func RenderError(c fiber.Ctx, cfg *config.Config, code int, message string) error {
	return c.Status(code).Render("error", MergeBranding(fiber.Map{
		"Title":       strconv.Itoa(code) + " " + statusTitle(code),
		"Message":     message,
		"Description": message,
	}, cfg))
}

func statusTitle(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusTooManyRequests:
		return "Too Many Requests"
	default:
		return "Error"
	}
}

// percentText prints a percentage the way the pages do.
func percentText(v float64) string {
	return views.FormatPercent(v)
}
