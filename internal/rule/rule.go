// Package rule defines the contract every lint rule implements and the
// registry that maps bare rule names to rule instances.
package rule

import (
	"iter"

	"github.com/jeduden/ahklint/internal/lint"
)

// Rule is a single lint rule that checks an AutoHotkey script.
//
// Check must be a pure function of f: it must not retain or modify f and
// must be safe to call concurrently for different files. The returned
// sequence is lazy and finite.
type Rule interface {
	Name() string
	Check(f *lint.File) iter.Seq[lint.Diagnostic]
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Describer is implemented by rules that carry a one-line description.
type Describer interface {
	Description() string
}

// Collect drains a rule's diagnostics for f into a slice.
func Collect(r Rule, f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for d := range r.Check(f) {
		diags = append(diags, d)
	}
	return diags
}
