package usecase

import (
	"context"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/logger"
)

// PostCommentUseCase contains the logic for posting a comment.
type PostCommentUseCase struct {
	GithubRepo repository.IssueRepository
	DryRun     bool
}

// Execute posts comment on the issue. An empty comment is a no-op.
func (uc *PostCommentUseCase) Execute(ctx context.Context, issue domain.Issue, comment string) error {
	if comment == "" {
		return nil
	}
	log := logger.FromContext(ctx)
	if uc.DryRun {
		log.Info("dry run: would post a comment", "issue", issue.String())
		return nil
	}
	url, err := uc.GithubRepo.CreateComment(ctx, issue, comment)
	if err != nil {
		return err
	}
	log.Info("created a comment", "issue", issue.String(), "url", url)
	return nil
}
