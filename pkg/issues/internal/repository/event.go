package repository

import (
	"fmt"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// EventReader extracts the target issue from the payload of the triggering event.
type EventReader struct {
	Fs FileSystemRepository
}

// NewEventReader returns a reader over fs.
func NewEventReader(fs afero.Fs) *EventReader {
	return &EventReader{Fs: fs}
}

// ReadIssue returns the issue or pull request the event refers to. The second
// return value is false when the event does not carry one (push, schedule, ...).
// The body is left unset: the payload is a snapshot taken when the run started
// and an earlier step may have edited the issue since.
func (r *EventReader) ReadIssue(wc domain.WorkflowContext) (domain.Issue, bool, error) {
	var path string
	switch {
	case wc.IsIssueEvent():
		path = "issue.number"
	case wc.IsPullRequestEvent():
		path = "pull_request.number"
	default:
		return domain.Issue{}, false, nil
	}
	if wc.EventPath == "" {
		return domain.Issue{}, false, fmt.Errorf("event %s has no payload path", wc.EventName)
	}
	data, err := afero.ReadFile(r.Fs, wc.EventPath)
	if err != nil {
		return domain.Issue{}, false, fmt.Errorf("failed to read event payload: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return domain.Issue{}, false, fmt.Errorf("event payload %s is not valid JSON", wc.EventPath)
	}
	number := gjson.GetBytes(data, path)
	if number.Type != gjson.Number || number.Int() <= 0 {
		return domain.Issue{}, false, fmt.Errorf("event payload has no %s", path)
	}
	repo := wc.Repository
	if fullName := gjson.GetBytes(data, "repository.full_name"); fullName.Exists() {
		parsed, err := domain.ParseRepository(fullName.String())
		if err != nil {
			return domain.Issue{}, false, fmt.Errorf("event payload: %w", err)
		}
		repo = parsed
	}
	return domain.NewIssue(repo, int(number.Int())), true, nil
}
