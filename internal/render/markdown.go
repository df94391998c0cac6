package render

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

const markdownLanguages = 10

// Markdown writes the README-friendly report.
type Markdown struct{}

func (Markdown) Filename() string { return "github-stats.md" }

func (Markdown) Render(stats *domain.Stats, meta Meta) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s's GitHub Stats\n\n", meta.DisplayName)

	b.WriteString("## Overall Stats\n\n")
	fmt.Fprintf(&b, "- Total Commits: %d\n", stats.TotalCommits)
	fmt.Fprintf(&b, "- Total Pull Requests: %d\n", stats.TotalPRs)
	fmt.Fprintf(&b, "- Total Issues: %d\n\n", stats.TotalIssues)

	b.WriteString("## Organization Contributions\n\n")
	for _, name := range stats.Organizations.Keys() {
		org, _ := stats.Organizations.Get(name)
		fmt.Fprintf(&b, "### %s\n\n", name)
		fmt.Fprintf(&b, "- Commits: %d\n", org.TotalCommits)
		fmt.Fprintf(&b, "- Pull Requests: %d\n", org.TotalPRs)
		fmt.Fprintf(&b, "- Issues: %d\n", org.TotalIssues)
		fmt.Fprintf(&b, "- Repositories: %d\n\n", org.Repositories)
	}

	b.WriteString("## Top Languages\n\n")
	for _, lang := range TopLanguages(stats.Languages, markdownLanguages) {
		fmt.Fprintf(&b, "- %s: %s\n", lang.Name, formatPercent(lang.Percent, 2))
	}

	fmt.Fprintf(&b, "\n---\n\n*Last updated: %s*\n", meta.Date.Format(dateLayout))
	return []byte(b.String()), nil
}
