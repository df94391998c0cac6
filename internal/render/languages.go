package render

import (
	"sort"
	"strconv"

	mstats "github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// LanguageShare is one language's share of all recorded bytes.
type LanguageShare struct {
	Name    string
	Bytes   uint64
	Percent float64
}

// TopLanguages returns up to n languages with the most bytes, largest first.
// Percentages are taken against the sum over every language, not only the returned ones.
// Equal byte counts keep their insertion order.
func TopLanguages(languages *domain.OrderedMap[uint64], n int) []LanguageShare {
	names := languages.Keys()
	sizes := make(mstats.Float64Data, 0, len(names))
	shares := make([]LanguageShare, 0, len(names))
	for _, name := range names {
		b, _ := languages.Get(name)
		sizes = append(sizes, float64(b))
		shares = append(shares, LanguageShare{Name: name, Bytes: b})
	}

	// Sum only fails on empty input.
	total, err := mstats.Sum(sizes)
	if err != nil {
		total = 0
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Bytes > shares[j].Bytes
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	for i := range shares {
		if total > 0 {
			shares[i].Percent = float64(shares[i].Bytes) / total * 100
		}
	}
	return shares
}

// formatPercent rounds halves up before formatting, so 0.25 at one place prints as "0.3".
func formatPercent(p float64, places int) string {
	rounded, err := mstats.Round(p, places)
	if err != nil {
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', places, 64) + "%"
}
