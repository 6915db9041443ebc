package githubissues

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

const (
	// requestTimeout bounds each API call.
	requestTimeout = 30 * time.Second

	// requestsPerSecond keeps issue listing under the API's secondary
	// rate limits.
	requestsPerSecond = 1.2

	// pageSize is the API maximum.
	pageSize = 100
)

const (
	settingToken = "token"
	settingState = "state"
)

// issueColumns is the fixed column order of the produced dataset.
var issueColumns = []string{"number", "title", "body", "state", "author", "created_at"}

// Source reads the issues of a repository into a dataset. Pull requests
// are dropped even though the API lists them alongside issues.
type Source struct {
	tokens  driven.TokenProvider
	limiter *rate.Limiter
}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a GitHub issues source. The provider supplies the
// API token when the settings carry none; it may be nil for anonymous
// access to public repositories.
func NewSource(tokens driven.TokenProvider) *Source {
	return &Source{
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindGitHubIssues
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         settingToken,
			Label:       "Token",
			Description: "Access token, falls back to the configured provider",
			Secret:      true,
		},
		{
			Key:         settingState,
			Label:       "State",
			Description: "Issue state filter: open, closed, or all",
			Default:     "all",
		},
	}
}

// Load lists every issue of the repository named by cfg.Location.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	owner, repo, err := splitRepo(cfg.Location)
	if err != nil {
		return nil, err
	}

	client, err := s.newClient(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	state := cfg.Setting(settingState)
	if state == "" {
		state = "all"
	}
	opts := &gh.IssueListByRepoOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}

	var all []*gh.Issue
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		issues, resp, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			if resp == nil {
				return nil, &domain.ConnectionError{Target: "api.github.com", Err: err}
			}
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrSourceNotFound)
			}
			return nil, &domain.QueryError{Query: "issues " + cfg.Location, Err: err}
		}

		all = append(all, issues...)

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	dataset := datasetFromIssues(all)
	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}

// newClient builds the API client, authenticated when a token is
// available from the settings or the provider.
func (s *Source) newClient(ctx context.Context, cfg *domain.SourceConfig) (*gh.Client, error) {
	token := cfg.Setting(settingToken)
	if token == "" && s.tokens != nil {
		provided, err := s.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		token = provided
	}
	if token == "" {
		return gh.NewClient(nil), nil
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = requestTimeout
	return gh.NewClient(tc), nil
}

// splitRepo parses an "owner/repo" locator.
func splitRepo(location string) (string, string, error) {
	parts := strings.Split(location, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &domain.ConfigurationError{
			Field:  "source.location",
			Value:  location,
			Reason: `must be "owner/repo"`,
		}
	}
	return parts[0], parts[1], nil
}

// datasetFromIssues flattens the listing, dropping pull requests.
func datasetFromIssues(issues []*gh.Issue) *domain.Dataset {
	dataset := domain.NewDataset(issueColumns)
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		dataset.Append(rowFromIssue(issue))
	}
	return dataset
}

// rowFromIssue flattens one issue into a dataset row.
func rowFromIssue(issue *gh.Issue) domain.Row {
	return domain.Row{
		"number":     issue.GetNumber(),
		"title":      issue.GetTitle(),
		"body":       issue.GetBody(),
		"state":      issue.GetState(),
		"author":     issue.GetUser().GetLogin(),
		"created_at": issue.GetCreatedAt().Format(time.RFC3339),
	}
}
