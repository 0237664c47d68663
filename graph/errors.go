package graph

import (
	"fmt"
)

// FormatError reports a line of an edge list that does not contain two
// parseable node identifiers.
type FormatError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("graph: %s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
}

// IOError reports an edge list that could not be opened or read.
//
// The original underlying error can be accessed via errors.Unwrap.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("graph: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
