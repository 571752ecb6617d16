package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/compozy/issues-action/pkg/issues/internal/config"
	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/orchestrator"
	"github.com/compozy/issues-action/pkg/issues/internal/usecase"
	"github.com/compozy/issues-action/pkg/logger"
	"github.com/compozy/issues-action/pkg/version"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Runner executes a run.
type Runner interface {
	Execute(ctx context.Context, cfg orchestrator.RunConfig) error
}

// RunnerFactory builds the runner for a loaded configuration.
type RunnerFactory func(cfg *config.Config, wc domain.WorkflowContext) (Runner, error)

// NewRunCmd creates the run command
func NewRunCmd(factory RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply labels, comments and body updates to the target issues",
		Long: `Apply the requested operations to every target issue, in order:
- Add labels
- Remove labels (missing labels only produce a warning)
- Post a comment
- Insert or replace the block owned by this workflow job in the issue body

The run stops at the first issue that fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := config.NewService()
			cfg, err := loadConfig(cmd, svc)
			if err != nil {
				return err
			}
			ctx, err := withRunLogger(cmd, cfg)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Debug("configuration loaded",
				"repository", cfg.GitHub.Repository,
				"token", cfg.GitHub.Token,
				"token_source", svc.SourceOf("github.token"),
				"dry_run", cfg.Inputs.DryRun,
			)
			numbers, err := usecase.ParseIssueNumbers(cfg.Inputs.IssueNumbers)
			if err != nil {
				return err
			}
			wc, err := workflowContext(cfg)
			if err != nil {
				return err
			}
			runner, err := factory(cfg, wc)
			if err != nil {
				return err
			}
			return runner.Execute(ctx, orchestrator.RunConfig{
				IssueNumbers: numbers,
				SHA:          cfg.Inputs.SHA,
				Query:        cfg.Inputs.Query,
				AddLabels:    cfg.Inputs.AddLabels,
				RemoveLabels: cfg.Inputs.RemoveLabels,
				PostComment:  cfg.Inputs.PostComment,
				UpdateBody:   cfg.Inputs.UpdateBody,
				DryRun:       cfg.Inputs.DryRun,
			})
		},
	}

	cmd.Flags().String("token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	cmd.Flags().String("repository", "", "Repository as owner/name (defaults to GITHUB_REPOSITORY)")
	cmd.Flags().String("issue-numbers", "", "Issue number or JSON array of issue numbers")
	cmd.Flags().String("sha", "", "Commit whose associated pull requests are targeted")
	cmd.Flags().String("query", "", "Issue search query whose results are targeted")
	cmd.Flags().StringArray("add-labels", nil, "Label to add; repeat the flag for more (commas are kept)")
	cmd.Flags().StringArray("remove-labels", nil, "Label to remove; repeat the flag for more (commas are kept)")
	cmd.Flags().String("post-comment", "", "Comment to post")
	cmd.Flags().String("update-body", "", "Content of the block owned by this workflow job")
	cmd.Flags().Bool("dry-run", false, "Log the changes without writing them")
	return cmd
}

// loadConfig loads the configuration, with the flags set on the command line on top.
func loadConfig(cmd *cobra.Command, svc config.Service) (*config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var sources []config.Source
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	sources = append(sources, config.NewCLIProvider(changedFlags(cmd.Flags())))
	return svc.Load(cmd.Context(), sources...)
}

// changedFlags returns the flags explicitly set on the command line.
func changedFlags(flags *pflag.FlagSet) map[string]any {
	changed := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		switch v := f.Value.(type) {
		case pflag.SliceValue:
			changed[f.Name] = v.GetSlice()
		default:
			if f.Value.Type() == "bool" {
				b, err := strconv.ParseBool(f.Value.String())
				if err == nil {
					changed[f.Name] = b
					return
				}
			}
			changed[f.Name] = f.Value.String()
		}
	})
	return changed
}

// withRunLogger installs the configured logger, tagged with a fresh run id, on the command context.
func withRunLogger(cmd *cobra.Command, cfg *config.Config) (context.Context, error) {
	_, _, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := logger.SetupLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON, logSource); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.GetDefault().With("run_id", uuid.NewString())
	log.Debug("starting run", "version", version.Get().Version)
	return logger.ContextWithLogger(ctx, log), nil
}

func workflowContext(cfg *config.Config) (domain.WorkflowContext, error) {
	repo, err := domain.ParseRepository(cfg.GitHub.Repository)
	if err != nil {
		return domain.WorkflowContext{}, err
	}
	return domain.WorkflowContext{
		Workflow:   cfg.GitHub.Workflow,
		Job:        cfg.GitHub.Job,
		Repository: repo,
		EventName:  cfg.GitHub.EventName,
		EventPath:  cfg.GitHub.EventPath,
	}, nil
}
