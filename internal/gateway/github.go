// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// DefaultPerPage is the page-size cap GitHub accepts for list endpoints.
const DefaultPerPage = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
// Every list call returns a single page; no pagination is chained.
type Fetcher interface {
	ListOwnedRepos(ctx context.Context) ([]domain.Repository, error)
	ListOrgRepos(ctx context.Context, org string) ([]domain.Repository, error)
	CountCommits(ctx context.Context, owner, repo, author string) (int, error)
	CountPullRequests(ctx context.Context, owner, repo, creator string) (int, error)
	CountIssues(ctx context.Context, owner, repo, creator string) (int, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	FetchDisplayName(ctx context.Context, login string) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	perPage       int
	logger        *zap.Logger
}

// userNameQuery resolves the profile name shown in rendered headers.
type userNameQuery struct {
	User struct {
		Login githubv4.String
		Name  githubv4.String
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// A perPage outside 1..100 falls back to DefaultPerPage.
func NewGitHubGateway(token string, perPage int, logger *zap.Logger) (*GitHubGateway, error) {
	if token == "" {
		return nil, fmt.Errorf("access token is empty")
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return newGateway(github.NewClient(httpClient), githubv4.NewClient(httpClient), perPage, logger), nil
}

func newGateway(rest *github.Client, gql *githubv4.Client, perPage int, logger *zap.Logger) *GitHubGateway {
	if perPage < 1 || perPage > DefaultPerPage {
		perPage = DefaultPerPage
	}
	return &GitHubGateway{
		restClient:    rest,
		graphqlClient: gql,
		perPage:       perPage,
		logger:        logger,
	}
}

func (g *GitHubGateway) listOptions() github.ListOptions {
	return github.ListOptions{PerPage: g.perPage}
}

// ListOwnedRepos lists repositories owned by the authenticated user, private ones included.
func (g *GitHubGateway) ListOwnedRepos(ctx context.Context) ([]domain.Repository, error) {
	g.logger.Debug("listing repositories of the authenticated user")
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		ListOptions: g.listOptions(),
	}
	repos, _, err := g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of the authenticated user: %w", err)
	}
	return convertRepos(repos, ""), nil
}

// ListOrgRepos lists public and private repositories of an organization.
func (g *GitHubGateway) ListOrgRepos(ctx context.Context, org string) ([]domain.Repository, error) {
	g.logger.Debug("listing organization repositories", zap.String("org", org))
	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: g.listOptions(),
	}
	repos, _, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of organization %s: %w", org, err)
	}
	return convertRepos(repos, org), nil
}

func (g *GitHubGateway) CountCommits(ctx context.Context, owner, repo, author string) (int, error) {
	opts := &github.CommitsListOptions{
		Author:      author,
		ListOptions: g.listOptions(),
	}
	commits, _, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
	}
	return len(commits), nil
}

// CountPullRequests counts pull requests in any state opened by creator.
// The pulls endpoint has no creator parameter, so the page is filtered here.
func (g *GitHubGateway) CountPullRequests(ctx context.Context, owner, repo, creator string) (int, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: g.listOptions(),
	}
	pulls, _, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
	}
	count := 0
	for _, pr := range pulls {
		if strings.EqualFold(pr.GetUser().GetLogin(), creator) {
			count++
		}
	}
	return count, nil
}

func (g *GitHubGateway) CountIssues(ctx context.Context, owner, repo, creator string) (int, error) {
	opts := &github.IssueListByRepoOptions{
		Creator:     creator,
		State:       "all",
		ListOptions: g.listOptions(),
	}
	issues, _, err := g.restClient.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list issues for %s/%s: %w", owner, repo, err)
	}
	return len(issues), nil
}

// ListLanguages returns the language byte counts reported for a repository.
func (g *GitHubGateway) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages for %s/%s: %w", owner, repo, err)
	}
	return languages, nil
}

// FetchDisplayName returns the profile name of login, or login itself when the profile has no name.
func (g *GitHubGateway) FetchDisplayName(ctx context.Context, login string) (string, error) {
	var q userNameQuery
	variables := map[string]interface{}{"login": githubv4.String(login)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL query for user %s: %w", login, err)
	}
	if name := strings.TrimSpace(string(q.User.Name)); name != "" {
		return name, nil
	}
	return login, nil
}

func convertRepos(list []*github.Repository, fallbackOwner string) []domain.Repository {
	repos := make([]domain.Repository, 0, len(list))
	for _, repo := range list {
		owner := repo.GetOwner().GetLogin()
		if owner == "" {
			owner = fallbackOwner
		}
		repos = append(repos, domain.Repository{
			Owner:   owner,
			Name:    repo.GetName(),
			Private: repo.GetPrivate(),
		})
	}
	return repos
}
