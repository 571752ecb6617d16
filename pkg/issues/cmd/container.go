package cmd

import (
	"io"

	"github.com/compozy/issues-action/pkg/issues/internal/config"
	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/orchestrator"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/logger"
	"github.com/spf13/afero"
)

// container holds all the dependencies of a run.
type container struct {
	githubRepo repository.IssueRepository
	eventRepo  repository.EventRepository
	actions    *logger.Actions
}

// newContainer creates a new container with all the dependencies.
func newContainer(cfg *config.Config, out io.Writer) (*container, error) {
	githubRepo, err := repository.NewGithubRepository(
		cfg.GitHub.Token.Value(),
		cfg.GitHub.APIURL,
		repository.RetryPolicy{
			MaxRetries: uint64(cfg.Retry.MaxRetries),
			BaseDelay:  cfg.Retry.BaseDelay,
			MaxDelay:   cfg.Retry.MaxDelay,
		},
	)
	if err != nil {
		return nil, err
	}
	return &container{
		githubRepo: githubRepo,
		eventRepo:  repository.NewEventReader(afero.NewOsFs()),
		actions:    logger.NewActions(out, cfg.GitHub.Actions),
	}, nil
}

// NewRunnerFactory returns the factory wiring a run against the GitHub API.
// Workflow commands are written to out.
func NewRunnerFactory(out io.Writer) RunnerFactory {
	return func(cfg *config.Config, wc domain.WorkflowContext) (Runner, error) {
		c, err := newContainer(cfg, out)
		if err != nil {
			return nil, err
		}
		return orchestrator.NewRunOrchestrator(c.githubRepo, c.eventRepo, wc, c.actions), nil
	}
}
