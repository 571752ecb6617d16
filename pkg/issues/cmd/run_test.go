package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compozy/issues-action/pkg/issues/internal/config"
	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/orchestrator"
	"github.com/compozy/issues-action/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Execute(ctx context.Context, cfg orchestrator.RunConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, m := range config.GenerateMappings("env") {
		t.Setenv(m.Name, "")
	}
	for _, m := range config.GenerateMappings("input") {
		t.Setenv("INPUT_"+strings.ToUpper(m.Name), "")
	}
	t.Setenv("GITHUB_TOKEN", "ghs_test_token_value")
	t.Setenv("GITHUB_REPOSITORY", "octo/hello")
	t.Setenv("GITHUB_WORKFLOW", "CI")
	t.Setenv("GITHUB_JOB", "build")
}

func executeRoot(t *testing.T, runner Runner, args ...string) (domain.WorkflowContext, string, error) {
	t.Helper()
	var wc domain.WorkflowContext
	root := NewRootCmd(func(_ *config.Config, got domain.WorkflowContext) (Runner, error) {
		wc = got
		return runner, nil
	})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return wc, buf.String(), err
}

func TestNewRunCmd(t *testing.T) {
	t.Run("Should pass the flags to the runner", func(t *testing.T) {
		isolateEnv(t)
		runner := new(mockRunner)
		runner.On("Execute", mock.Anything, orchestrator.RunConfig{
			IssueNumbers: []int{1, 2},
			SHA:          "abc",
			AddLabels:    []string{"bug", "needs info, please"},
			RemoveLabels: []string{"stale"},
			PostComment:  "hi",
			UpdateBody:   "status",
			DryRun:       true,
		}).Return(nil).Once()

		wc, _, err := executeRoot(t, runner,
			"run",
			"--issue-numbers", "[1,2]",
			"--sha", "abc",
			"--add-labels", "bug",
			"--add-labels", "needs info, please",
			"--remove-labels", "stale",
			"--post-comment", "hi",
			"--update-body", "status",
			"--dry-run",
		)

		require.NoError(t, err)
		runner.AssertExpectations(t)
		assert.Equal(t, domain.WorkflowContext{
			Workflow:   "CI",
			Job:        "build",
			Repository: domain.Repository{Owner: "octo", Name: "hello"},
		}, wc)
	})

	t.Run("Should read action inputs from the environment", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("INPUT_ISSUE-NUMBERS", "7")
		t.Setenv("INPUT_ADD-LABELS", "bug\nneeds review\n")
		runner := new(mockRunner)
		runner.On("Execute", mock.Anything, mock.MatchedBy(func(cfg orchestrator.RunConfig) bool {
			return assert.ObjectsAreEqual([]int{7}, cfg.IssueNumbers) &&
				assert.ObjectsAreEqual([]string{"bug", "needs review"}, cfg.AddLabels)
		})).Return(nil).Once()

		_, _, err := executeRoot(t, runner, "run")

		require.NoError(t, err)
		runner.AssertExpectations(t)
	})

	t.Run("Should hand the token input to the runner ahead of GITHUB_TOKEN", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("GITHUB_TOKEN", "ghs_ambient_env_token")
		t.Setenv("INPUT_TOKEN", "ghp_explicit_input_pat")
		var token string
		root := NewRootCmd(func(cfg *config.Config, _ domain.WorkflowContext) (Runner, error) {
			token = cfg.GitHub.Token.Value()
			runner := new(mockRunner)
			runner.On("Execute", mock.Anything, mock.Anything).Return(nil)
			return runner, nil
		})
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs([]string{"run"})

		require.NoError(t, root.ExecuteContext(context.Background()))
		assert.Equal(t, "ghp_explicit_input_pat", token)
	})

	t.Run("Should let flags override the YAML file", func(t *testing.T) {
		isolateEnv(t)
		path := filepath.Join(t.TempDir(), "issues.yaml")
		require.NoError(t, os.WriteFile(path, []byte("inputs:\n  query: label:stale\n  post_comment: from yaml\n"), 0o600))
		runner := new(mockRunner)
		runner.On("Execute", mock.Anything, mock.MatchedBy(func(cfg orchestrator.RunConfig) bool {
			return cfg.Query == "label:stale" && cfg.PostComment == "from flag"
		})).Return(nil).Once()

		_, _, err := executeRoot(t, runner, "run", "--config", path, "--post-comment", "from flag")

		require.NoError(t, err)
		runner.AssertExpectations(t)
	})

	t.Run("Should tag the run logger with a run id", func(t *testing.T) {
		isolateEnv(t)
		runner := new(mockRunner)
		runner.On("Execute", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			logger.FromContext(ctx).Info("probe")
		}).Return(nil).Once()

		_, out, err := executeRoot(t, runner, "run", "--log-level", "debug", "--log-json")

		require.NoError(t, err)
		runner.AssertExpectations(t)
		assert.Contains(t, out, `"msg":"probe"`)
		assert.Contains(t, out, `"run_id":"`)
	})

	t.Run("Should reject malformed issue numbers", func(t *testing.T) {
		isolateEnv(t)
		runner := new(mockRunner)

		_, _, err := executeRoot(t, runner, "run", "--issue-numbers", `[1,"a"]`)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `non-number "a"`)
		runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("Should fail without a token", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv("GITHUB_TOKEN", "")
		runner := new(mockRunner)

		_, _, err := executeRoot(t, runner, "run")

		require.Error(t, err)
		runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown log level", func(t *testing.T) {
		isolateEnv(t)

		_, _, err := executeRoot(t, new(mockRunner), "run", "--log-level", "loud")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})

	t.Run("Should return the runner error", func(t *testing.T) {
		isolateEnv(t)
		runner := new(mockRunner)
		runner.On("Execute", mock.Anything, mock.Anything).Return(errors.New("failed to process octo/hello#1: boom")).Once()

		_, _, err := executeRoot(t, runner, "run", "--issue-numbers", "1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "octo/hello#1")
	})
}

func TestNewRunnerFactory(t *testing.T) {
	t.Run("Should reject an invalid token", func(t *testing.T) {
		cfg := config.Default()
		cfg.GitHub.Token = "bad token"
		_, err := NewRunnerFactory(&bytes.Buffer{})(cfg, domain.WorkflowContext{})
		require.Error(t, err)
	})

	t.Run("Should build an orchestrator", func(t *testing.T) {
		cfg := config.Default()
		cfg.GitHub.Token = "ghs_test_token_value"
		runner, err := NewRunnerFactory(&bytes.Buffer{})(cfg, domain.WorkflowContext{})
		require.NoError(t, err)
		assert.IsType(t, &orchestrator.RunOrchestrator{}, runner)
	})
}

func TestNewRootCmd(t *testing.T) {
	t.Run("Should print the build version", func(t *testing.T) {
		_, out, err := executeRoot(t, new(mockRunner), "--version")
		require.NoError(t, err)
		assert.Contains(t, out, "dev (commit unknown")
	})
}
