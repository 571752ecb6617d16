package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/issues/internal/usecase"
	"github.com/compozy/issues-action/pkg/logger"
)

// RunConfig contains the operations requested for a run.
type RunConfig struct {
	// IssueNumbers is nil when no numbers were given, empty when an empty list was.
	IssueNumbers []int
	SHA          string
	Query        string
	AddLabels    []string
	RemoveLabels []string
	PostComment  string
	UpdateBody   string
	DryRun       bool
}

// RunOrchestrator applies the requested operations to every target issue, one at a time.
type RunOrchestrator struct {
	githubRepo repository.IssueRepository
	eventRepo  repository.EventRepository
	workflow   domain.WorkflowContext
	actions    *logger.Actions
}

// NewRunOrchestrator creates a new run orchestrator.
func NewRunOrchestrator(
	githubRepo repository.IssueRepository,
	eventRepo repository.EventRepository,
	workflow domain.WorkflowContext,
	actions *logger.Actions,
) *RunOrchestrator {
	return &RunOrchestrator{
		githubRepo: githubRepo,
		eventRepo:  eventRepo,
		workflow:   workflow,
		actions:    actions,
	}
}

// Execute resolves the targets and processes them in order. The first failure
// stops the run; issues after it are not touched. A failure is also reported
// as an error annotation.
func (o *RunOrchestrator) Execute(ctx context.Context, cfg RunConfig) error {
	if err := o.execute(ctx, cfg); err != nil {
		o.actions.Error(err.Error())
		return err
	}
	return nil
}

func (o *RunOrchestrator) execute(ctx context.Context, cfg RunConfig) error {
	ctx, cancel := context.WithTimeout(ctx, RunTimeout)
	defer cancel()
	log := logger.FromContext(ctx)
	resolver := &usecase.ResolveIssuesUseCase{
		GithubRepo: o.githubRepo,
		EventRepo:  o.eventRepo,
		Workflow:   o.workflow,
	}
	issues, err := resolver.Execute(ctx, usecase.ResolveInput{
		IssueNumbers: cfg.IssueNumbers,
		SHA:          cfg.SHA,
		Query:        cfg.Query,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve target issues: %w", err)
	}
	if cfg.DryRun {
		log.Info("dry run: no changes will be written", "issues", len(issues))
	}
	steps := o.newSteps(cfg)
	for _, issue := range issues {
		if err := o.processIssue(ctx, issue, cfg, steps); err != nil {
			return fmt.Errorf("failed to process %s: %w", issue, err)
		}
	}
	return nil
}

type steps struct {
	addLabels    *usecase.AddLabelsUseCase
	removeLabels *usecase.RemoveLabelsUseCase
	postComment  *usecase.PostCommentUseCase
	updateBody   *usecase.UpdateBodyUseCase
}

func (o *RunOrchestrator) newSteps(cfg RunConfig) steps {
	return steps{
		addLabels:    &usecase.AddLabelsUseCase{GithubRepo: o.githubRepo, DryRun: cfg.DryRun},
		removeLabels: &usecase.RemoveLabelsUseCase{GithubRepo: o.githubRepo, Actions: o.actions, DryRun: cfg.DryRun},
		postComment:  &usecase.PostCommentUseCase{GithubRepo: o.githubRepo, DryRun: cfg.DryRun},
		updateBody: &usecase.UpdateBodyUseCase{
			GithubRepo: o.githubRepo,
			Workflow:   o.workflow,
			DryRun:     cfg.DryRun,
		},
	}
}

// processIssue runs add labels, remove labels, comment and body update, in that order.
func (o *RunOrchestrator) processIssue(ctx context.Context, issue domain.Issue, cfg RunConfig, s steps) error {
	endGroup := o.actions.Group(fmt.Sprintf("processing %s", issue))
	defer endGroup()
	ctx = logger.ContextWithLogger(ctx, logger.FromContext(ctx).With("issue", issue.String()))
	if err := s.addLabels.Execute(ctx, issue, cfg.AddLabels); err != nil {
		return err
	}
	if err := s.removeLabels.Execute(ctx, issue, cfg.RemoveLabels); err != nil {
		return err
	}
	if err := s.postComment.Execute(ctx, issue, cfg.PostComment); err != nil {
		return err
	}
	if cfg.UpdateBody == "" {
		return nil
	}
	_, err := s.updateBody.Execute(ctx, issue, cfg.UpdateBody)
	return err
}
