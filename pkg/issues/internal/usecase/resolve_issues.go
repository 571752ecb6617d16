package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/compozy/issues-action/pkg/issues/internal/repository"
	"github.com/compozy/issues-action/pkg/logger"
	"github.com/tidwall/gjson"
)

// ResolveInput names the targets of a run. A nil IssueNumbers means the input
// was not given; an empty, non-nil one is an explicit empty list.
type ResolveInput struct {
	IssueNumbers []int
	SHA          string
	Query        string
}

func (in ResolveInput) explicit() bool {
	return in.IssueNumbers != nil || in.SHA != "" || in.Query != ""
}

// ResolveIssuesUseCase turns the run inputs into an ordered list of issues.
type ResolveIssuesUseCase struct {
	GithubRepo repository.IssueRepository
	EventRepo  repository.EventRepository
	Workflow   domain.WorkflowContext
}

// Execute returns explicit numbers first, then pull requests of SHA, then
// search results. When none of these is given it falls back to the issue of
// the triggering event. Duplicates keep their first position.
func (uc *ResolveIssuesUseCase) Execute(ctx context.Context, in ResolveInput) ([]domain.Issue, error) {
	log := logger.FromContext(ctx)
	targets := newIssueSet()
	for _, n := range in.IssueNumbers {
		targets.add(domain.NewIssue(uc.Workflow.Repository, n))
	}
	if in.SHA != "" {
		log.Info("listing pull requests associated with commit", "sha", in.SHA)
		numbers, err := uc.GithubRepo.ListPullRequestsForCommit(ctx, uc.Workflow.Repository, in.SHA)
		if err != nil {
			return nil, err
		}
		for _, n := range numbers {
			targets.add(domain.NewIssue(uc.Workflow.Repository, n))
		}
	}
	if in.Query != "" {
		log.Info("searching issues", "query", in.Query)
		found, err := uc.GithubRepo.SearchIssues(ctx, in.Query)
		if err != nil {
			return nil, err
		}
		for _, issue := range found {
			targets.add(issue)
		}
	}
	if !in.explicit() && uc.EventRepo != nil {
		issue, ok, err := uc.EventRepo.ReadIssue(uc.Workflow)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve issue from event: %w", err)
		}
		if ok {
			log.Info("using issue of the triggering event", "event", uc.Workflow.EventName, "issue", issue.String())
			targets.add(issue)
		}
	}
	if len(targets.issues) == 0 {
		log.Warn("no target issues resolved")
	}
	return targets.issues, nil
}

// issueSet keeps insertion order and drops duplicates.
type issueSet struct {
	issues []domain.Issue
	index  map[string]int
}

func newIssueSet() *issueSet {
	return &issueSet{index: make(map[string]int)}
}

func (s *issueSet) add(issue domain.Issue) {
	key := issue.String()
	if i, ok := s.index[key]; ok {
		if !s.issues[i].HasBody() && issue.HasBody() {
			s.issues[i].Body = issue.Body
		}
		return
	}
	s.index[key] = len(s.issues)
	s.issues = append(s.issues, issue)
}

// ParseIssueNumbers parses a JSON number or a JSON array of numbers. An empty
// string yields nil; "[]" yields an empty, non-nil slice.
func ParseIssueNumbers(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !gjson.Valid(s) {
		return nil, fmt.Errorf("issue-numbers must be a number or array of numbers in JSON format")
	}
	parsed := gjson.Parse(s)
	switch {
	case parsed.Type == gjson.Number:
		n, err := issueNumber(parsed)
		if err != nil {
			return nil, err
		}
		return []int{n}, nil
	case parsed.IsArray():
		elements := parsed.Array()
		numbers := make([]int, 0, len(elements))
		for _, e := range elements {
			n, err := issueNumber(e)
			if err != nil {
				return nil, err
			}
			numbers = append(numbers, n)
		}
		return numbers, nil
	default:
		return nil, fmt.Errorf("issue-numbers must be a number or array of numbers in JSON format")
	}
}

func issueNumber(v gjson.Result) (int, error) {
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("issue-numbers contains non-number %s", v.Raw)
	}
	if v.Num != math.Trunc(v.Num) || v.Num < 1 || v.Num > math.MaxInt32 {
		return 0, fmt.Errorf("issue-numbers contains invalid issue number %s", v.Raw)
	}
	return int(v.Num), nil
}
