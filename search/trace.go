package search

import (
	"fmt"

	"github.com/google/uuid"
)

// Trace accumulates ordered, human-readable stage descriptions for one
// search. It exists for observability and test assertions, never for
// control flow.
type Trace struct {
	lines []string
}

func newTrace() *Trace {
	return &Trace{}
}

func (t *Trace) addf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the recorded stage descriptions in order.
func (t *Trace) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// newSearchID returns an identifier correlating one search's trace and
// log lines.
func newSearchID() string {
	return uuid.NewString()
}
