package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ownerPattern follows GitHub's rules for user and organization names.
	ownerPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)
	repoPattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("github_repo", validateGitHubRepo)
}

// validateGitHubRepo validates an owner/name repository reference
func validateGitHubRepo(fl validator.FieldLevel) bool {
	owner, repo, ok := strings.Cut(fl.Field().String(), "/")
	if !ok {
		return false
	}
	return ValidateGitHubOwnerRepo(owner, repo) == nil
}

// ValidateGitHubToken checks that a token is present and well formed.
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("GitHub token is required")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("GitHub token must not contain whitespace")
	}
	if len(token) < 8 {
		return fmt.Errorf("GitHub token is too short")
	}
	return nil
}

// ValidateGitHubOwnerRepo checks owner and repository names.
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("invalid GitHub owner %q", owner)
	}
	if !repoPattern.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid GitHub repository name %q", repo)
	}
	return nil
}
