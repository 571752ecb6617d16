package usecase

import (
	"context"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockIssueRepository struct {
	mock.Mock
}

func (m *mockIssueRepository) GetIssueBody(ctx context.Context, issue domain.Issue) (string, error) {
	args := m.Called(ctx, issue)
	return args.String(0), args.Error(1)
}

func (m *mockIssueRepository) UpdateIssueBody(ctx context.Context, issue domain.Issue, body string) error {
	args := m.Called(ctx, issue, body)
	return args.Error(0)
}

func (m *mockIssueRepository) AddLabels(ctx context.Context, issue domain.Issue, labels []string) ([]string, error) {
	args := m.Called(ctx, issue, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockIssueRepository) RemoveLabel(ctx context.Context, issue domain.Issue, name string) error {
	args := m.Called(ctx, issue, name)
	return args.Error(0)
}

func (m *mockIssueRepository) CreateComment(ctx context.Context, issue domain.Issue, body string) (string, error) {
	args := m.Called(ctx, issue, body)
	return args.String(0), args.Error(1)
}

func (m *mockIssueRepository) ListPullRequestsForCommit(
	ctx context.Context,
	repo domain.Repository,
	sha string,
) ([]int, error) {
	args := m.Called(ctx, repo, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockIssueRepository) SearchIssues(ctx context.Context, query string) ([]domain.Issue, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) ReadIssue(wc domain.WorkflowContext) (domain.Issue, bool, error) {
	args := m.Called(wc)
	return args.Get(0).(domain.Issue), args.Bool(1), args.Error(2)
}
