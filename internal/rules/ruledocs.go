// Package rules lists the registered lint rules for `ahklint rules`.
package rules

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jeduden/ahklint/internal/rule"
)

// RuleInfo describes one registered rule. Unit is the prefixed unit name
// (rule.Prefix plus Name) shown next to the bare name.
type RuleInfo struct {
	Name        string
	Unit        string
	Description string
	Settings    map[string]any
}

// ListRules returns all registered rules sorted by name.
func ListRules() []RuleInfo {
	all := rule.All()
	infos := make([]RuleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, infoOf(r))
	}
	return infos
}

// LookupRule finds a registered rule by its exact name.
func LookupRule(name string) (RuleInfo, error) {
	r := rule.ByName(name)
	if r == nil {
		return RuleInfo{}, &rule.UnknownRuleError{Name: name}
	}
	return infoOf(r), nil
}

func infoOf(r rule.Rule) RuleInfo {
	info := RuleInfo{Name: r.Name(), Unit: rule.Qualified(r.Name())}
	if d, ok := r.(rule.Describer); ok {
		info.Description = d.Description()
	}
	if c, ok := r.(rule.Configurable); ok {
		info.Settings = c.DefaultSettings()
	}
	return info
}

// WriteTable renders infos as a table.
func WriteTable(w io.Writer, infos []RuleInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Unit", "Settings", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Unit, formatSettings(info.Settings), info.Description})
	}
	t.Render()
}

// formatSettings renders settings as "key=value" pairs in key order.
func formatSettings(settings map[string]any) string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, settings[k])
	}
	return strings.Join(parts, " ")
}
