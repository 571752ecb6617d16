package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/logger"
)

// AddLabelsUseCase adds labels to an issue.
type AddLabelsUseCase struct {
	GithubRepo repository.IssueRepository
	DryRun     bool
}

// Execute adds labels in a single call. An empty list is a no-op.
func (uc *AddLabelsUseCase) Execute(ctx context.Context, issue domain.Issue, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)
	if uc.DryRun {
		log.Info("dry run: would add labels", "issue", issue.String(), "labels", strings.Join(labels, ", "))
		return nil
	}
	current, err := uc.GithubRepo.AddLabels(ctx, issue, labels)
	if err != nil {
		return err
	}
	log.Info("added labels", "issue", issue.String(), "labels", strings.Join(current, ", "))
	return nil
}

// RemoveLabelsUseCase removes labels from an issue.
type RemoveLabelsUseCase struct {
	GithubRepo repository.IssueRepository
	Actions    *logger.Actions
	DryRun     bool
}

// Execute removes each label in turn. Labels that are not on the issue are
// reported as warnings; any other failure stops and is returned.
func (uc *RemoveLabelsUseCase) Execute(ctx context.Context, issue domain.Issue, labels []string) error {
	log := logger.FromContext(ctx)
	for _, name := range labels {
		if uc.DryRun {
			log.Info("dry run: would remove label", "issue", issue.String(), "label", name)
			continue
		}
		err := uc.GithubRepo.RemoveLabel(ctx, issue, name)
		if errors.Is(err, repository.ErrLabelNotFound) {
			log.Warn("could not remove label", "issue", issue.String(), "label", name, "error", err)
			uc.Actions.Warning(fmt.Sprintf("could not remove label %s from %s: %v", name, issue, err))
			continue
		}
		if err != nil {
			return err
		}
		log.Info("removed label", "issue", issue.String(), "label", name)
	}
	return nil
}
