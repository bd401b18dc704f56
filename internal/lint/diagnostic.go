package lint

import "fmt"

// Diagnostic represents a single lint finding. A zero Line marks a
// file-level finding that is not anchored to any particular line.
type Diagnostic struct {
	File    string
	Line    int
	Rule    string
	Message string
}

// FileLevel reports whether the diagnostic applies to the file as a whole.
func (d Diagnostic) FileLevel() bool {
	return d.Line <= 0
}

// String renders the diagnostic in the canonical single-line form:
// "path: message" for file-level findings and "path:line: message" otherwise.
func (d Diagnostic) String() string {
	if d.FileLevel() {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}
