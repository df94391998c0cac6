// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
	"github.com/naka-gawa/github-contrib-stats/internal/gateway"
)

// Options is the per-run input of the Aggregator.
type Options struct {
	User          string
	Organizations []string
	// ExcludedRepos holds repository names matched exactly, regardless of owner.
	ExcludedRepos map[string]struct{}
	// Concurrency is the number of repositories fetched at once. Values below 2 keep the run sequential.
	Concurrency int
}

// Aggregator is the use case for aggregating GitHub stats.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// repoResult is the independent partial result of one repository.
type repoResult struct {
	repo      domain.Repository
	commits   domain.Result[int]
	prs       domain.Result[int]
	issues    domain.Result[int]
	languages domain.Result[map[string]int]
}

// Aggregate walks the user's own repositories and then every configured
// organization, and returns the accumulated Stats.
// Only a failure to list the user's own repositories, or a cancelled context,
// is returned as an error; every other failed fetch is logged and recorded in Stats.Failures.
func (a *Aggregator) Aggregate(ctx context.Context, opts Options) (*domain.Stats, error) {
	a.logger.Info("starting data aggregation", zap.String("user", opts.User))
	stats := domain.NewStats()

	owned, err := a.fetcher.ListOwnedRepos(ctx)
	if err != nil {
		return nil, err
	}
	owned = filterExcluded(owned, opts.ExcludedRepos)
	a.logger.Info("processing personal repositories", zap.Int("count", len(owned)))

	results, err := a.collect(ctx, owned, opts)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		a.merge(stats, nil, res)
	}

	for _, org := range opts.Organizations {
		orgStats := &domain.OrgStats{}
		stats.Organizations.Set(org, orgStats)

		repos, err := a.fetcher.ListOrgRepos(ctx, org)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			a.logger.Warn("skipping organization", zap.String("org", org), zap.Error(err))
			stats.Failures = append(stats.Failures, domain.Failure{Target: org, Op: domain.OpListRepos, Err: err})
			continue
		}
		repos = filterExcluded(repos, opts.ExcludedRepos)
		orgStats.Repositories = len(repos)
		a.logger.Info("processing organization repositories", zap.String("org", org), zap.Int("count", len(repos)))

		results, err := a.collect(ctx, repos, opts)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			a.merge(stats, orgStats, res)
		}
	}

	a.logger.Info("aggregation complete",
		zap.Int("commits", stats.TotalCommits),
		zap.Int("prs", stats.TotalPRs),
		zap.Int("issues", stats.TotalIssues),
		zap.Int("failures", len(stats.Failures)),
	)
	return stats, nil
}

// collect fetches every repository and returns the results in listing order.
func (a *Aggregator) collect(ctx context.Context, repos []domain.Repository, opts Options) ([]repoResult, error) {
	results := make([]repoResult, len(repos))
	if opts.Concurrency < 2 {
		for i, repo := range repos {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = a.fetchRepo(ctx, repo, opts.User)
		}
		// A deadline hit during the last repository is only visible here.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return results, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)
	for i, repo := range repos {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = a.fetchRepo(egCtx, repo, opts.User)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// Sub-fetches swallow their errors, so a deadline hit mid-flight only shows up here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetchRepo runs the four sub-fetches of one repository independently.
func (a *Aggregator) fetchRepo(ctx context.Context, repo domain.Repository, user string) repoResult {
	a.logger.Debug("processing repository", zap.String("repo", repo.FullName()), zap.Bool("private", repo.Private))
	return repoResult{
		repo:      repo,
		commits:   domain.ResultOf(a.fetcher.CountCommits(ctx, repo.Owner, repo.Name, user)),
		prs:       domain.ResultOf(a.fetcher.CountPullRequests(ctx, repo.Owner, repo.Name, user)),
		issues:    domain.ResultOf(a.fetcher.CountIssues(ctx, repo.Owner, repo.Name, user)),
		languages: domain.ResultOf(a.fetcher.ListLanguages(ctx, repo.Owner, repo.Name)),
	}
}

// merge folds one repository's partial result into stats, and into org when the repository belongs to one.
func (a *Aggregator) merge(stats *domain.Stats, org *domain.OrgStats, res repoResult) {
	key := res.repo.FullName()

	record := func() *domain.RepoStats {
		rs, ok := stats.Repos.Get(key)
		if !ok {
			rs = &domain.RepoStats{}
			stats.Repos.Set(key, rs)
		}
		return rs
	}

	if res.commits.OK() {
		n := res.commits.Value
		stats.TotalCommits += n
		if org != nil {
			org.TotalCommits += n
		}
		record().Commits = &n
	} else {
		a.fail(stats, key, domain.OpCommits, res.commits.Err)
	}

	if res.prs.OK() {
		n := res.prs.Value
		stats.TotalPRs += n
		if org != nil {
			org.TotalPRs += n
		}
		record().PRs = &n
	} else {
		a.fail(stats, key, domain.OpPRs, res.prs.Err)
	}

	if res.issues.OK() {
		n := res.issues.Value
		stats.TotalIssues += n
		if org != nil {
			org.TotalIssues += n
		}
		record().Issues = &n
	} else {
		a.fail(stats, key, domain.OpIssues, res.issues.Err)
	}

	if res.languages.OK() {
		for _, lang := range languageOrder(res.languages.Value) {
			size := res.languages.Value[lang]
			if size < 0 {
				continue
			}
			total, _ := stats.Languages.Get(lang)
			stats.Languages.Set(lang, total+uint64(size))
		}
	} else {
		a.fail(stats, key, domain.OpLanguages, res.languages.Err)
	}
}

func (a *Aggregator) fail(stats *domain.Stats, target string, op domain.Operation, err error) {
	a.logger.Warn("fetch failed, skipping", zap.String("repo", target), zap.String("op", string(op)), zap.Error(err))
	stats.Failures = append(stats.Failures, domain.Failure{Target: target, Op: op, Err: err})
}

func filterExcluded(repos []domain.Repository, excluded map[string]struct{}) []domain.Repository {
	kept := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if _, skip := excluded[repo.Name]; skip {
			continue
		}
		kept = append(kept, repo)
	}
	return kept
}

// ExcludeSet builds the exclusion set from a list of repository names.
func ExcludeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// languageOrder returns the languages largest first, the order GitHub lists them in,
// so new languages enter Stats.Languages deterministically.
func languageOrder(languages map[string]int) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
