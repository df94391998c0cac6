package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// WriteSummary prints a per-repository table to w. Counts whose fetch
// never succeeded are shown as "-".
func WriteSummary(w io.Writer, stats *domain.Stats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Repository", "Commits", "PRs", "Issues"})

	for _, name := range stats.Repos.Keys() {
		rs, _ := stats.Repos.Get(name)
		tbl.AppendRow(table.Row{name, count(rs.Commits), count(rs.PRs), count(rs.Issues)})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("Total (%d failed fetches)", len(stats.Failures)),
		stats.TotalCommits,
		stats.TotalPRs,
		stats.TotalIssues,
	})
	var total uint64
	for _, name := range stats.Languages.Keys() {
		b, _ := stats.Languages.Get(name)
		total += b
	}
	tbl.SetCaption("%d languages, %s of code", stats.Languages.Len(), humanize.Bytes(total))
	tbl.Render()
}

func count(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
