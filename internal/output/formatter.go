// Package output renders diagnostics and maps run results to exit codes.
package output

import (
	"io"

	"github.com/jeduden/ahklint/internal/lint"
)

// Exit codes.
const (
	// ExitOK means no violations were found.
	ExitOK = 0
	// ExitViolations means at least one diagnostic was reported.
	ExitViolations = 1
	// ExitConfigError means the tool was invoked or configured incorrectly,
	// or a script could not be read.
	ExitConfigError = 2
)

// Formatter defines the interface for outputting diagnostics.
type Formatter interface {
	Format(w io.Writer, diagnostics []lint.Diagnostic) error
}

// ExitCode maps the outcome of a run to a process exit code. Errors take
// precedence over violations.
func ExitCode(diagnostics []lint.Diagnostic, errs []error) int {
	switch {
	case len(errs) > 0:
		return ExitConfigError
	case len(diagnostics) > 0:
		return ExitViolations
	default:
		return ExitOK
	}
}
