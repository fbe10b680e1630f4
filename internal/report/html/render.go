// Package html renders the self-contained dashboard: one file, no
// external assets, with the aggregated report inlined as JSON for the
// client-side filters.
package html

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/mpavlovic/rankwatch/internal/stats"
)

//go:embed dashboard.html
var dashboardTmpl string

var tmpl = template.Must(template.New("dashboard").Parse(dashboardTmpl))

// Payload is everything the dashboard needs for one run.
type Payload struct {
	Title       string
	Engine      string
	GeneratedAt time.Time
	Groups      *stats.Groups
	Overall     stats.Overall
}

// Render writes the dashboard HTML. The groups/overall structures are
// the sole contract with the page's scripts: queries stay in order,
// numbers stay numbers.
func Render(w io.Writer, p Payload) error {
	data, err := json.Marshal(struct {
		Overall stats.Overall `json:"overall"`
		Groups  *stats.Groups `json:"groups"`
		Bands   []string      `json:"bands"`
	}{p.Overall, p.Groups, stats.Bands})
	if err != nil {
		return fmt.Errorf("marshal report data: %w", err)
	}

	return tmpl.Execute(w, map[string]any{
		"Title":       p.Title,
		"Engine":      p.Engine,
		"GeneratedAt": p.GeneratedAt.Format(time.RFC1123),
		"Data":        template.JS(data),
	})
}
