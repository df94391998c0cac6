// Package domain contains the core data structures and domain logic for the application.
package domain

// Stats is the aggregate built once per run and handed read-only to the renderers.
type Stats struct {
	TotalCommits  int                     `json:"totalCommits"`
	TotalPRs      int                     `json:"totalPRs"`
	TotalIssues   int                     `json:"totalIssues"`
	Languages     *OrderedMap[uint64]     `json:"languages"`
	Organizations *OrderedMap[*OrgStats]  `json:"organizations"`
	Repos         *OrderedMap[*RepoStats] `json:"repos"`

	// Failures lists every sub-fetch that did not succeed. A failed fetch
	// contributes nothing to the counters above, so this is the only place
	// where "fetch failed" can be told apart from "zero activity".
	Failures []Failure `json:"-"`
}

// NewStats returns an empty Stats with all maps initialized.
func NewStats() *Stats {
	return &Stats{
		Languages:     NewOrderedMap[uint64](),
		Organizations: NewOrderedMap[*OrgStats](),
		Repos:         NewOrderedMap[*RepoStats](),
	}
}

// OrgStats holds the sub-aggregate of a single organization.
type OrgStats struct {
	TotalCommits int `json:"totalCommits"`
	TotalPRs     int `json:"totalPRs"`
	TotalIssues  int `json:"totalIssues"`
	Repositories int `json:"repositories"`
}

// RepoStats holds the raw counts recorded for one "owner/name" key.
// A nil field means the corresponding fetch never succeeded.
type RepoStats struct {
	Commits *int `json:"commits,omitempty"`
	PRs     *int `json:"prs,omitempty"`
	Issues  *int `json:"issues,omitempty"`
}

// Repository identifies a repository returned by a listing.
type Repository struct {
	Owner   string
	Name    string
	Private bool
}

// FullName returns the "owner/name" key used in Stats.Repos.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}
