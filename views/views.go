// Package views embeds the page templates rendered by the Fiber HTML engine.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS

// NewEngine parses the embedded templates. reload re-reads them on every
// render, which only matters when templates are served from disk.
func NewEngine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.Reload(reload)
	engine.AddFunc("pct", FormatPercent)
	return engine
}
