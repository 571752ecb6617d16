package domain

import (
	"fmt"
	"strings"
)

// Issue identifies an issue or pull request. Body stays nil until it is fetched.
type Issue struct {
	Owner  string
	Repo   string
	Number int
	Body   *string
}

// NewIssue returns an issue whose body has not been fetched yet.
func NewIssue(repo Repository, number int) Issue {
	return Issue{Owner: repo.Owner, Repo: repo.Name, Number: number}
}

// WithBody returns a copy of the issue carrying a known body.
func (i Issue) WithBody(body string) Issue {
	i.Body = &body
	return i
}

// HasBody reports whether the body is already known.
func (i Issue) HasBody() bool {
	return i.Body != nil
}

// String renders the issue as owner/repo#number.
func (i Issue) String() string {
	return fmt.Sprintf("%s/%s#%d", i.Owner, i.Repo, i.Number)
}

// Repository is a GitHub owner/name pair.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses "owner/name".
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("repository must be in owner/name format, got %q", s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}
