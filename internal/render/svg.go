package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

const (
	svgWidth     = 800
	svgHeight    = 500
	svgLanguages = 5
)

const svgStyle = `  <style>
    .title { font: bold 24px Arial, sans-serif; fill: #58a6ff; }
    .heading { font: bold 18px Arial, sans-serif; fill: #c9d1d9; }
    .org { font: bold 14px Arial, sans-serif; fill: #c9d1d9; }
    .stat { font: 14px Arial, sans-serif; fill: #8b949e; }
    .footer { font: 12px Arial, sans-serif; fill: #6e7681; }
  </style>
`

// SVG draws the 800x500 dark badge.
type SVG struct{}

func (SVG) Filename() string { return "github-stats.svg" }

func (SVG) Render(stats *domain.Stats, meta Meta) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		svgWidth, svgHeight, svgWidth, svgHeight)
	b.WriteString(svgStyle)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" rx="10" ry="10" fill="#0d1117"/>`+"\n", svgWidth, svgHeight)

	text(&b, 40, 50, "title", fmt.Sprintf("%s's GitHub Stats", meta.DisplayName))

	// Left column.
	text(&b, 40, 100, "heading", "Total Contributions")
	text(&b, 40, 130, "stat", fmt.Sprintf("Commits: %d", stats.TotalCommits))
	text(&b, 40, 155, "stat", fmt.Sprintf("Pull Requests: %d", stats.TotalPRs))
	text(&b, 40, 180, "stat", fmt.Sprintf("Issues: %d", stats.TotalIssues))

	// Right column.
	text(&b, 420, 100, "heading", "Top Languages")
	for i, lang := range TopLanguages(stats.Languages, svgLanguages) {
		text(&b, 420, 130+25*i, "stat", lang.Name+": "+formatPercent(lang.Percent, 1))
	}

	text(&b, 40, 270, "heading", "Organization Contributions")
	for i, name := range stats.Organizations.Keys() {
		org, _ := stats.Organizations.Get(name)
		y := 300 + 45*i
		text(&b, 40, y, "org", name)
		text(&b, 60, y+20, "stat", fmt.Sprintf("Commits: %d | PRs: %d | Issues: %d | Repositories: %d",
			org.TotalCommits, org.TotalPRs, org.TotalIssues, org.Repositories))
	}

	text(&b, 40, 480, "footer", "Last updated: "+meta.Date.Format(dateLayout))
	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func text(b *strings.Builder, x, y int, class, content string) {
	fmt.Fprintf(b, `  <text x="%d" y="%d" class="%s">%s</text>`+"\n", x, y, class, html.EscapeString(content))
}
