package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/issues-action/pkg/issues/internal/body"
	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/logger"
)

// UpdateBodyUseCase keeps the block owned by the current workflow job up to date in an issue body.
type UpdateBodyUseCase struct {
	GithubRepo repository.IssueRepository
	Workflow   domain.WorkflowContext
	DryRun     bool
}

// Execute merges content into the issue body and writes it back only when it
// changed. It reports whether a write was (or, in dry run, would be) issued.
func (uc *UpdateBodyUseCase) Execute(ctx context.Context, issue domain.Issue, content string) (bool, error) {
	log := logger.FromContext(ctx)
	current, err := uc.currentBody(ctx, issue)
	if err != nil {
		return false, err
	}
	marker := body.Marker(uc.Workflow)
	next := body.Merge(current, content, marker)
	if next == current {
		if body.Count(current, marker) == 1 {
			log.Warn("issue body has a single marker, leaving it untouched", "issue", issue.String(), "marker", marker)
			return false, nil
		}
		log.Info("issue body is already in desired state", "issue", issue.String())
		return false, nil
	}
	if uc.DryRun {
		log.Info("dry run: would update issue body", "issue", issue.String())
		return true, nil
	}
	if err := uc.GithubRepo.UpdateIssueBody(ctx, issue, next); err != nil {
		return false, err
	}
	log.Info("updated issue body", "issue", issue.String())
	return true, nil
}

// currentBody returns the known body, fetching it only when it was not supplied.
func (uc *UpdateBodyUseCase) currentBody(ctx context.Context, issue domain.Issue) (string, error) {
	if issue.HasBody() {
		return *issue.Body, nil
	}
	fetched, err := uc.GithubRepo.GetIssueBody(ctx, issue)
	if err != nil {
		return "", fmt.Errorf("failed to fetch body: %w", err)
	}
	logger.FromContext(ctx).Debug("fetched issue body", "issue", issue.String())
	return fetched, nil
}
