// Package selection computes the ordered, de-duplicated list of rule names
// to run from a rule-name file, explicit arguments and the registry.
package selection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseRuleList reads one rule name per line. A '#' starts a comment that
// runs to the end of the line; surrounding whitespace is trimmed and empty
// lines are skipped.
func ParseRuleList(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ReadRuleFile parses the rule-name file at path.
func ReadRuleFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	names, err := ParseRuleList(f)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %q: %w", path, err)
	}
	return names, nil
}

// SplitArgs expands comma-separated flag values into individual names,
// dropping empty entries.
func SplitArgs(values []string) []string {
	var names []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}

// Resolve merges rule names: names from the rule file come first, then
// explicit arguments. all is consulted only when both are empty. The result
// keeps the first occurrence of each name.
func Resolve(fromFile, fromArgs []string, all func() []string) []string {
	names := make([]string, 0, len(fromFile)+len(fromArgs))
	names = append(names, fromFile...)
	names = append(names, fromArgs...)
	if len(names) == 0 && all != nil {
		names = all()
	}
	return Dedup(names)
}

// Dedup removes repeated names, keeping the first occurrence in place.
func Dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	return result
}
