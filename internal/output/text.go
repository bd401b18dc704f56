package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jeduden/ahklint/internal/lint"
)

// TextFormatter outputs diagnostics in human-readable text format, one per
// line: "path: message" or "path:line: message". When Color is true the
// location is printed in cyan.
type TextFormatter struct {
	Color bool
}

// Format writes each diagnostic on its own line.
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	for _, d := range diagnostics {
		if err := f.Write(w, d); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a single diagnostic. It lets callers stream output while
// rules are still running.
func (f *TextFormatter) Write(w io.Writer, d lint.Diagnostic) error {
	if !f.Color {
		_, err := fmt.Fprintln(w, d.String())
		return err
	}

	loc := d.File
	if !d.FileLevel() {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	cyan := color.New(color.FgCyan)
	cyan.EnableColor()
	_, err := fmt.Fprintf(w, "%s %s\n", cyan.Sprint(loc+":"), d.Message)
	return err
}
