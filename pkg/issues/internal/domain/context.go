package domain

// WorkflowContext describes the GitHub Actions run that invoked the tool.
type WorkflowContext struct {
	Workflow   string
	Job        string
	Repository Repository
	EventName  string
	EventPath  string
}

// Event names whose payload points at a single issue or pull request.
const (
	EventIssues                   = "issues"
	EventIssueComment             = "issue_comment"
	EventPullRequest              = "pull_request"
	EventPullRequestTarget        = "pull_request_target"
	EventPullRequestReview        = "pull_request_review"
	EventPullRequestReviewComment = "pull_request_review_comment"
)

// IsPullRequestEvent reports whether the payload carries a pull_request object.
func (c WorkflowContext) IsPullRequestEvent() bool {
	switch c.EventName {
	case EventPullRequest, EventPullRequestTarget, EventPullRequestReview, EventPullRequestReviewComment:
		return true
	}
	return false
}

// IsIssueEvent reports whether the payload carries an issue object.
func (c WorkflowContext) IsIssueEvent() bool {
	return c.EventName == EventIssues || c.EventName == EventIssueComment
}
