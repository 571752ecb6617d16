package logger

import (
	"fmt"
	"io"
	"strings"
)

// Actions writes GitHub Actions workflow commands. When disabled every call is a no-op.
type Actions struct {
	out     io.Writer
	enabled bool
}

// NewActions returns a workflow command writer; enabled should reflect GITHUB_ACTIONS.
func NewActions(out io.Writer, enabled bool) *Actions {
	return &Actions{out: out, enabled: enabled}
}

// Group opens a collapsible log group and returns the function closing it.
func (a *Actions) Group(title string) func() {
	if a == nil || !a.enabled {
		return func() {}
	}
	fmt.Fprintf(a.out, "::group::%s\n", escapeData(title))
	return func() {
		fmt.Fprintln(a.out, "::endgroup::")
	}
}

// Warning emits a warning annotation.
func (a *Actions) Warning(msg string) {
	a.command("warning", msg)
}

// Error emits an error annotation.
func (a *Actions) Error(msg string) {
	a.command("error", msg)
}

func (a *Actions) command(name, msg string) {
	if a == nil || !a.enabled {
		return
	}
	fmt.Fprintf(a.out, "::%s::%s\n", name, escapeData(msg))
}

// escapeData escapes a command message the way the actions toolkit does.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
