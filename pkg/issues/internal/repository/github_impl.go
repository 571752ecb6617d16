package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/compozy/issues-action/pkg/issues/internal/config"
	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

const (
	searchPageSize   = 100
	defaultGithubAPI = "https://api.github.com"
)

// githubRepository is the implementation of the IssueRepository interface.
type githubRepository struct {
	client *github.Client
	retry  RetryPolicy
}

// NewGithubRepository creates a new IssueRepository with validation. An empty
// apiURL or the public API URL targets github.com; anything else is treated as
// a GitHub Enterprise Server API root.
func NewGithubRepository(token, apiURL string, policy RetryPolicy) (IssueRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)
	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultGithubAPI {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}
	return NewGithubRepositoryFromClient(client, policy), nil
}

// NewGithubRepositoryFromClient wraps an already configured client.
func NewGithubRepositoryFromClient(client *github.Client, policy RetryPolicy) IssueRepository {
	return newGithubRepository(client, policy)
}

func newGithubRepository(client *github.Client, policy RetryPolicy) *githubRepository {
	return &githubRepository{client: client, retry: policy}
}

// GetIssueBody fetches the issue and returns its body.
func (r *githubRepository) GetIssueBody(ctx context.Context, issue domain.Issue) (string, error) {
	var fetched *github.Issue
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		fetched, _, err = r.client.Issues.Get(ctx, issue.Owner, issue.Repo, issue.Number)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get issue %s: %w", issue, err)
	}
	return fetched.GetBody(), nil
}

// UpdateIssueBody replaces the issue body.
func (r *githubRepository) UpdateIssueBody(ctx context.Context, issue domain.Issue, body string) error {
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		_, _, err := r.client.Issues.Edit(ctx, issue.Owner, issue.Repo, issue.Number, &github.IssueRequest{
			Body: &body,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update body of %s: %w", issue, err)
	}
	return nil
}

// AddLabels adds labels to the issue.
func (r *githubRepository) AddLabels(ctx context.Context, issue domain.Issue, labels []string) ([]string, error) {
	var added []*github.Label
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		added, _, err = r.client.Issues.AddLabelsToIssue(ctx, issue.Owner, issue.Repo, issue.Number, labels)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add labels to %s: %w", issue, err)
	}
	return labelNames(added), nil
}

// RemoveLabel removes a label from the issue. The client puts the label into
// the path verbatim, so names such as "area/api" are escaped here.
func (r *githubRepository) RemoveLabel(ctx context.Context, issue domain.Issue, name string) error {
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		_, err := r.client.Issues.RemoveLabelForIssue(ctx, issue.Owner, issue.Repo, issue.Number, url.PathEscape(name))
		return err
	})
	if err == nil {
		return nil
	}
	if statusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %s from %s: %w", ErrLabelNotFound, name, issue, err)
	}
	return fmt.Errorf("failed to remove label %s from %s: %w", name, issue, err)
}

// CreateComment posts a comment on the issue.
func (r *githubRepository) CreateComment(ctx context.Context, issue domain.Issue, body string) (string, error) {
	var created *github.IssueComment
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		created, _, err = r.client.Issues.CreateComment(ctx, issue.Owner, issue.Repo, issue.Number, &github.IssueComment{
			Body: &body,
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to comment on %s: %w", issue, err)
	}
	return created.GetHTMLURL(), nil
}

// ListPullRequestsForCommit lists the pull requests associated with a commit.
func (r *githubRepository) ListPullRequestsForCommit(
	ctx context.Context,
	repo domain.Repository,
	sha string,
) ([]int, error) {
	var numbers []int
	opts := &github.ListOptions{PerPage: searchPageSize}
	for {
		var (
			pulls []*github.PullRequest
			resp  *github.Response
		)
		err := r.retry.Do(ctx, func(ctx context.Context) error {
			var err error
			pulls, resp, err = r.client.PullRequests.ListPullRequestsWithCommit(ctx, repo.Owner, repo.Name, sha, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s@%s: %w", repo, sha, err)
		}
		for _, pr := range pulls {
			numbers = append(numbers, pr.GetNumber())
		}
		if resp == nil || resp.NextPage == 0 {
			return numbers, nil
		}
		opts.Page = resp.NextPage
	}
}

// SearchIssues runs an issue search and returns every page of results.
func (r *githubRepository) SearchIssues(ctx context.Context, query string) ([]domain.Issue, error) {
	var issues []domain.Issue
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: searchPageSize}}
	for {
		var (
			result *github.IssuesSearchResult
			resp   *github.Response
		)
		err := r.retry.Do(ctx, func(ctx context.Context) error {
			var err error
			result, resp, err = r.client.Search.Issues(ctx, query, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search issues with %q: %w", query, err)
		}
		for _, found := range result.Issues {
			repo, err := repositoryFromURL(found.GetRepositoryURL())
			if err != nil {
				return nil, fmt.Errorf("search result #%d: %w", found.GetNumber(), err)
			}
			issues = append(issues, domain.NewIssue(repo, found.GetNumber()).WithBody(found.GetBody()))
		}
		if resp == nil || resp.NextPage == 0 {
			return issues, nil
		}
		opts.Page = resp.NextPage
	}
}

// repositoryFromURL extracts owner/name from an API URL such as
// https://api.github.com/repos/octo/hello.
func repositoryFromURL(raw string) (domain.Repository, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return domain.Repository{}, fmt.Errorf("invalid repository url %q: %w", raw, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[len(parts)-3] != "repos" {
		return domain.Repository{}, fmt.Errorf("unexpected repository url %q", raw)
	}
	return domain.Repository{Owner: parts[len(parts)-2], Name: parts[len(parts)-1]}, nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}

func statusCode(err error) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}
