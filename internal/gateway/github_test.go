package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-contrib-stats/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) *GitHubGateway {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	return newGateway(restClient, graphqlClient, 100, zap.NewNop())
}

func TestNewGitHubGateway_RejectsEmptyToken(t *testing.T) {
	_, err := NewGitHubGateway("", 100, zap.NewNop())
	assert.Error(t, err)

	g, err := NewGitHubGateway("token", 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, g.perPage)
}

func TestGitHubGateway_ListOwnedRepos(t *testing.T) {
	g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/repos", r.URL.Path)
		assert.Equal(t, "owner", r.URL.Query().Get("affiliation"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"name": "dotfiles", "private": false, "owner": {"login": "octocat"}},
			{"name": "secret", "private": true, "owner": {"login": "octocat"}}
		]`)
	}))

	repos, err := g.ListOwnedRepos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{
		{Owner: "octocat", Name: "dotfiles"},
		{Owner: "octocat", Name: "secret", Private: true},
	}, repos)
}

func TestGitHubGateway_ListOrgRepos(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Repository
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - owner falls back to the organization",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs/acme/repos", r.URL.Path)
				assert.Equal(t, "all", r.URL.Query().Get("type"))
				fmt.Fprint(w, `[{"name": "api", "owner": {"login": "acme"}}, {"name": "web"}]`)
			},
			expected: []domain.Repository{{Owner: "acme", Name: "api"}, {Owner: "acme", Name: "web"}},
		},
		{
			name: "empty organization",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `[]`)
			},
			expected: []domain.Repository{},
		},
		{
			name: "error case - organization not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to list repositories of organization acme",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			repos, err := g.ListOrgRepos(context.Background(), "acme")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, repos)
			}
		})
	}
}

// TestGitHubGateway_Counts consolidates the per-repository count endpoints into a single table-driven test.
func TestGitHubGateway_Counts(t *testing.T) {
	testCases := []struct {
		name           string
		methodToTest   func(g *GitHubGateway) (int, error)
		path           string
		query          map[string]string
		responseStatus int
		responseBody   string
		expected       int
		expectedErrMsg string
	}{
		{
			name: "CountCommits - filters by author",
			methodToTest: func(g *GitHubGateway) (int, error) {
				return g.CountCommits(context.Background(), "octocat", "hello", "octocat")
			},
			path:           "/repos/octocat/hello/commits",
			query:          map[string]string{"author": "octocat", "per_page": "100"},
			responseStatus: http.StatusOK,
			responseBody:   `[{"sha": "a"}, {"sha": "b"}, {"sha": "c"}]`,
			expected:       3,
		},
		{
			name: "CountCommits - empty repository returns an error",
			methodToTest: func(g *GitHubGateway) (int, error) {
				return g.CountCommits(context.Background(), "octocat", "hello", "octocat")
			},
			path:           "/repos/octocat/hello/commits",
			responseStatus: http.StatusConflict,
			responseBody:   `{"message": "Git Repository is empty."}`,
			expectedErrMsg: "failed to list commits for octocat/hello",
		},
		{
			name: "CountPullRequests - counts only the creator's pull requests",
			methodToTest: func(g *GitHubGateway) (int, error) {
				return g.CountPullRequests(context.Background(), "octocat", "hello", "OctoCat")
			},
			path:           "/repos/octocat/hello/pulls",
			query:          map[string]string{"state": "all"},
			responseStatus: http.StatusOK,
			responseBody:   `[{"number": 1, "user": {"login": "octocat"}}, {"number": 2, "user": {"login": "someone"}}, {"number": 3, "user": {"login": "octocat"}}]`,
			expected:       2,
		},
		{
			name: "CountIssues - filters by creator and state",
			methodToTest: func(g *GitHubGateway) (int, error) {
				return g.CountIssues(context.Background(), "octocat", "hello", "octocat")
			},
			path:           "/repos/octocat/hello/issues",
			query:          map[string]string{"creator": "octocat", "state": "all"},
			responseStatus: http.StatusOK,
			responseBody:   `[{"number": 4}]`,
			expected:       1,
		},
		{
			name: "CountIssues - error case",
			methodToTest: func(g *GitHubGateway) (int, error) {
				return g.CountIssues(context.Background(), "octocat", "hello", "octocat")
			},
			path:           "/repos/octocat/hello/issues",
			responseStatus: http.StatusInternalServerError,
			responseBody:   `{"message": "Internal Server Error"}`,
			expectedErrMsg: "failed to list issues for octocat/hello",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.path, r.URL.Path)
				for key, want := range tc.query {
					assert.Equal(t, want, r.URL.Query().Get(key), "query parameter %s", key)
				}
				w.WriteHeader(tc.responseStatus)
				fmt.Fprint(w, tc.responseBody)
			}))

			count, err := tc.methodToTest(g)
			if tc.expectedErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, count)
			}
		})
	}
}

func TestGitHubGateway_ListLanguages(t *testing.T) {
	g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello/languages", r.URL.Path)
		fmt.Fprint(w, `{"Go": 12000, "Shell": 300}`)
	}))

	languages, err := g.ListLanguages(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 12000, "Shell": 300}, languages)
}

func TestGitHubGateway_FetchDisplayName(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       string
		expectedErrMsg string
	}{
		{
			name:         "profile name is returned",
			responseBody: `{"data":{"user":{"login":"octocat","name":"The Octocat"}}}`,
			expected:     "The Octocat",
		},
		{
			name:         "empty profile name falls back to the login",
			responseBody: `{"data":{"user":{"login":"octocat","name":""}}}`,
			expected:     "octocat",
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Could not resolve to a User"}]}`,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), `"login":"octocat"`)
				fmt.Fprint(w, tc.responseBody)
			}))

			name, err := g.FetchDisplayName(context.Background(), "octocat")
			if tc.expectedErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, name)
			}
		})
	}
}
