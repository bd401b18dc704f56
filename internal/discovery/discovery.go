// Package discovery finds AutoHotkey scripts under a scripts directory by
// matching include patterns and dropping ignored paths.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// DefaultPatterns selects every .ahk file at any depth.
var DefaultPatterns = []string{"**/*.ahk"}

// Options controls how file discovery behaves.
type Options struct {
	// Patterns are doublestar patterns matched against paths relative to
	// BaseDir. Nil means DefaultPatterns.
	Patterns []string

	// Ignore holds glob patterns for paths to skip. Each pattern is tried
	// against the path relative to Root, relative to BaseDir, and the base
	// name.
	Ignore []string

	// BaseDir is the directory to walk. Defaults to "." if empty.
	BaseDir string

	// Root is the project root display paths are relative to. Defaults to
	// BaseDir.
	Root string
}

// Discover walks BaseDir and returns the absolute paths of matching files,
// sorted component by component on their slash path relative to Root.
func Discover(opts Options) ([]string, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	absRoot := absBase
	if opts.Root != "" {
		if absRoot, err = filepath.Abs(opts.Root); err != nil {
			return nil, err
		}
	}

	patterns := opts.Patterns
	if patterns == nil {
		patterns = DefaultPatterns
	}
	validPatterns, err := validatePatterns(patterns)
	if err != nil {
		return nil, err
	}
	ignores, err := compileIgnores(opts.Ignore)
	if err != nil {
		return nil, err
	}

	w := &walker{
		absBase:  absBase,
		absRoot:  absRoot,
		patterns: validPatterns,
		ignores:  ignores,
		seen:     make(map[string]bool),
	}

	if err := filepath.WalkDir(absBase, w.visit); err != nil {
		return nil, fmt.Errorf("walking %q: %w", baseDir, err)
	}

	slices.SortFunc(w.result, func(a, b entry) int {
		return comparePaths(a.display, b.display)
	})
	paths := make([]string, len(w.result))
	for i, e := range w.result {
		paths[i] = e.path
	}
	return paths, nil
}

// comparePaths orders slash paths one component at a time, so "a/b.ahk"
// sorts before "a-b/c.ahk" and "a.ahk" even though '-' and '.' are below '/'.
func comparePaths(a, b string) int {
	return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
}

// validatePatterns rejects syntactically invalid include patterns.
func validatePatterns(patterns []string) ([]string, error) {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
		valid = append(valid, p)
	}
	return valid, nil
}

func compileIgnores(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

type entry struct {
	path    string
	display string
}

// walker holds state for the directory walk.
type walker struct {
	absBase  string
	absRoot  string
	patterns []string
	ignores  []glob.Glob
	seen     map[string]bool
	result   []entry
}

// visit is the fs.WalkDirFunc callback.
func (w *walker) visit(path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	rel, err := filepath.Rel(w.absBase, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)
	display := rel
	if r, err := filepath.Rel(w.absRoot, path); err == nil {
		display = filepath.ToSlash(r)
	}

	if w.isIgnored(rel, display) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if d.IsDir() {
		return nil
	}

	if w.matchesAny(rel) && !w.seen[path] {
		w.seen[path] = true
		w.result = append(w.result, entry{path: path, display: display})
	}
	return nil
}

// isIgnored returns true if any ignore glob matches the path.
func (w *walker) isIgnored(rel, display string) bool {
	base := filepath.Base(rel)
	for _, g := range w.ignores {
		if g.Match(display) || g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchesAny returns true if rel matches any of the include patterns.
func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}
