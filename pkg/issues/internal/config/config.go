package config

import (
	"encoding/json"
	"time"
)

// Config holds the whole configuration of a run.
type Config struct {
	GitHub GitHubConfig `koanf:"github" validate:"required"`
	Inputs InputsConfig `koanf:"inputs"`
	Retry  RetryConfig  `koanf:"retry"`
	Log    LogConfig    `koanf:"log"`
}

// GitHubConfig describes the repository and the workflow run, as exported by GitHub Actions.
type GitHubConfig struct {
	Token      SensitiveString `koanf:"token"      env:"GITHUB_TOKEN"      input:"token" flag:"token" sensitive:"true" validate:"required"`
	Repository string          `koanf:"repository" env:"GITHUB_REPOSITORY"                flag:"repository"               validate:"required,github_repo"`
	APIURL     string          `koanf:"api_url"    env:"GITHUB_API_URL"`
	Workflow   string          `koanf:"workflow"   env:"GITHUB_WORKFLOW"`
	Job        string          `koanf:"job"        env:"GITHUB_JOB"`
	EventName  string          `koanf:"event_name" env:"GITHUB_EVENT_NAME"`
	EventPath  string          `koanf:"event_path" env:"GITHUB_EVENT_PATH"`
	Actions    bool            `koanf:"actions"    env:"GITHUB_ACTIONS"`
}

// InputsConfig holds the operations requested for this run.
type InputsConfig struct {
	IssueNumbers string   `koanf:"issue_numbers" env:"ISSUES_ISSUE_NUMBERS" input:"issue-numbers" flag:"issue-numbers"`
	SHA          string   `koanf:"sha"           env:"ISSUES_SHA"           input:"sha"           flag:"sha"`
	Query        string   `koanf:"query"         env:"ISSUES_QUERY"         input:"query"         flag:"query"`
	AddLabels    []string `koanf:"add_labels"    env:"ISSUES_ADD_LABELS"    input:"add-labels"    flag:"add-labels"`
	RemoveLabels []string `koanf:"remove_labels" env:"ISSUES_REMOVE_LABELS" input:"remove-labels" flag:"remove-labels"`
	PostComment  string   `koanf:"post_comment"  env:"ISSUES_POST_COMMENT"  input:"post-comment"  flag:"post-comment"`
	UpdateBody   string   `koanf:"update_body"   env:"ISSUES_UPDATE_BODY"   input:"update-body"   flag:"update-body"`
	DryRun       bool     `koanf:"dry_run"       env:"ISSUES_DRY_RUN"       input:"dry-run"       flag:"dry-run"`
}

// RetryConfig controls retries of GitHub API calls.
type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries" env:"ISSUES_RETRY_MAX_RETRIES" validate:"min=0,max=10"`
	BaseDelay  time.Duration `koanf:"base_delay"  env:"ISSUES_RETRY_BASE_DELAY"  validate:"min=0"`
	MaxDelay   time.Duration `koanf:"max_delay"   env:"ISSUES_RETRY_MAX_DELAY"   validate:"min=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `koanf:"level" env:"ISSUES_LOG_LEVEL" flag:"log-level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"  env:"ISSUES_LOG_JSON"  flag:"log-json"`
}

// Default returns the configuration used before any source is applied.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
		Inputs: InputsConfig{
			AddLabels:    []string{},
			RemoveLabels: []string{},
		},
		Retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SensitiveString is a string that never shows up in logs or serialized output.
type SensitiveString string

const redacted = "[REDACTED]"

// String implements fmt.Stringer.
func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

// MarshalJSON implements json.Marshaler.
func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
