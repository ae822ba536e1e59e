package script

import (
	"regexp"
	"strings"
)

// Var is a single named script variable.
type Var struct {
	Name  string
	Value string
}

// Vars is an ordered variable mapping. Order follows declaration; when a name
// repeats, the later declaration wins on lookup.
type Vars []Var

// Lookup returns the value for name, preferring the latest declaration.
func (v Vars) Lookup(name string) (string, bool) {
	for i := len(v) - 1; i >= 0; i-- {
		if v[i].Name == name {
			return v[i].Value, true
		}
	}
	return "", false
}

// FromStringMap builds Vars from a plain map. Ordering is not guaranteed,
// which is fine for substitution: occurrences are resolved by name.
func FromStringMap(m map[string]string) Vars {
	out := make(Vars, 0, len(m))
	for k, v := range m {
		out = append(out, Var{Name: k, Value: v})
	}
	return out
}

// placeholderRe matches {{name}} and {{.name}} placeholders.
var placeholderRe = regexp.MustCompile(`\{\{\s*\.?([A-Za-z_][A-Za-z0-9_-]*)\s*}}`)

// Substitute expands every known placeholder occurrence in body with its
// value. Placeholders whose name is not in vars stay literal. Pure transform:
// it runs once, before statement splitting, so substituted values may contain
// statement markers themselves.
func Substitute(body string, vars Vars) string {
	if len(vars) == 0 || !strings.Contains(body, "{{") {
		return body
	}
	return placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if val, ok := vars.Lookup(name); ok {
			return val
		}
		return m
	})
}
