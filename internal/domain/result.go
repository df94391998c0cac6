package domain

import "fmt"

// Result is the outcome of a single sub-fetch: either a value or the reason it failed.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// ResultOf wraps a (value, error) pair.
func ResultOf[T any](value T, err error) Result[T] {
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: err}
	}
	return Result[T]{Value: value}
}

// Operation names a sub-fetch.
type Operation string

const (
	OpListRepos Operation = "list-repos"
	OpCommits   Operation = "commits"
	OpPRs       Operation = "pull-requests"
	OpIssues    Operation = "issues"
	OpLanguages Operation = "languages"
)

// Failure records a sub-fetch that was skipped.
type Failure struct {
	// Target is "owner/name" for repository fetches, or the organization name for listings.
	Target string
	Op     Operation
	Err    error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Target, f.Err)
}
