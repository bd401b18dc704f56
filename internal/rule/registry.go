package rule

import (
	"fmt"
	"regexp"
	"sort"
)

// Prefix is the naming convention for rule units: a rule called
// "trailing_whitespace" is the unit "rule_trailing_whitespace".
const Prefix = "rule_"

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var registry = map[string]Rule{}

// UnknownRuleError is returned by Load when a name has no registered rule.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return "Unknown rule: " + e.Name
}

// Qualified returns the unit name for a bare rule name.
func Qualified(name string) string {
	return Prefix + name
}

// Register adds a rule to the global registry. It panics on a nil rule, an
// invalid name or a name that is already taken; all three are programming
// errors caught at init time.
func Register(r Rule) {
	if r == nil {
		panic("rule: Register called with nil rule")
	}
	name := r.Name()
	if !namePattern.MatchString(name) {
		panic(fmt.Sprintf("rule: invalid rule name %q", name))
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("rule: duplicate rule %q", name))
	}
	registry[name] = r
}

// Names returns every registered rule name in lexicographic order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered rule ordered by name.
func All() []Rule {
	names := Names()
	result := make([]Rule, len(names))
	for i, name := range names {
		result[i] = registry[name]
	}
	return result
}

// ByName returns the registered rule with the given name, or nil.
// Names are matched exactly.
func ByName(name string) Rule {
	return registry[name]
}

// Load resolves names to rules, preserving order. It is all or nothing: the
// first unknown name aborts with an *UnknownRuleError.
func Load(names []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		r := ByName(name)
		if r == nil {
			return nil, &UnknownRuleError{Name: name}
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Reset clears the registry. Used for testing.
func Reset() {
	registry = map[string]Rule{}
}
