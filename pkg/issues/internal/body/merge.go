// Package body computes issue bodies that carry a managed, marker-delimited block.
package body

import (
	"fmt"
	"strings"

	"github.com/compozy/issues-action/pkg/issues/internal/domain"
)

// MarkerPrefix namespaces every marker written by this tool.
const MarkerPrefix = "issues-action"

// Marker returns the HTML comment that delimits the block owned by the given workflow job.
func Marker(wc domain.WorkflowContext) string {
	return fmt.Sprintf("<!-- %s/%s/%s -->", MarkerPrefix, wc.Workflow, wc.Job)
}

// wrap surrounds the marker with newlines so it never fuses with adjacent Markdown.
func wrap(marker string) string {
	return "\n" + marker + "\n"
}

// Merge installs content between the first pair of markers in body.
//
// Without any marker the block is appended to body. A lone marker leaves the
// body untouched. Blocks after the first pair are kept verbatim.
func Merge(body, content, marker string) string {
	wrapped := wrap(marker)
	segments := strings.Split(body, wrapped)
	switch len(segments) {
	case 1:
		return segments[0] + wrapped + content + wrapped
	case 2:
		return body
	default:
		return segments[0] + wrapped + content + wrapped + strings.Join(segments[2:], wrapped)
	}
}

// Count returns how many wrapped markers appear in body.
func Count(body, marker string) int {
	return strings.Count(body, wrap(marker))
}
