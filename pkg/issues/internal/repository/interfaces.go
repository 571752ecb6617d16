package repository

import (
	"context"
	"errors"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/spf13/afero"
)

// ErrLabelNotFound is returned by RemoveLabel when the label is not on the issue.
var ErrLabelNotFound = errors.New("label not found on issue")

// IssueRepository is the GitHub boundary used by the use cases.
type IssueRepository interface {
	// GetIssueBody returns the current body; an issue without a body yields "".
	GetIssueBody(ctx context.Context, issue domain.Issue) (string, error)
	// UpdateIssueBody replaces the body of the issue.
	UpdateIssueBody(ctx context.Context, issue domain.Issue, body string) error
	// AddLabels adds labels and returns the names of all labels now on the issue.
	AddLabels(ctx context.Context, issue domain.Issue, labels []string) ([]string, error)
	// RemoveLabel removes a single label. Missing labels yield ErrLabelNotFound.
	RemoveLabel(ctx context.Context, issue domain.Issue, name string) error
	// CreateComment posts a comment and returns its HTML URL.
	CreateComment(ctx context.Context, issue domain.Issue, body string) (string, error)
	// ListPullRequestsForCommit returns the numbers of the pull requests associated with sha.
	ListPullRequestsForCommit(ctx context.Context, repo domain.Repository, sha string) ([]int, error)
	// SearchIssues returns every issue matching query, bodies included.
	SearchIssues(ctx context.Context, query string) ([]domain.Issue, error)
}

// EventRepository resolves the issue the triggering event refers to.
type EventRepository interface {
	ReadIssue(wc domain.WorkflowContext) (domain.Issue, bool, error)
}

// FileSystemRepository is the filesystem used to read the event payload.
type FileSystemRepository interface {
	afero.Fs
}
