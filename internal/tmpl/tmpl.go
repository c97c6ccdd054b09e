// Package tmpl parses code templates containing ${name} placeholders and
// renders them against a set of bindings.
package tmpl

import (
	"errors"
	"fmt"
	"strings"
)

// Fragment is either a run of literal text or the name inside a ${...}
// placeholder.
type Fragment struct {
	value      string
	isVariable bool
}

// Value returns the literal text or, for a placeholder, its raw name.
func (f *Fragment) Value() string { return f.value }

// IsVariable reports whether the fragment is a placeholder.
func (f *Fragment) IsVariable() bool { return f.isVariable }

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	value     string
	fragments []*Fragment
}

// Value returns the original template text.
func (t *Template) Value() string { return t.value }

// Fragments returns the parsed fragments in order.
func (t *Template) Fragments() []*Fragment { return t.fragments }

// Placeholders returns the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	var names []string
	seen := map[string]bool{}
	for _, f := range t.fragments {
		name := strings.TrimSpace(f.value)
		if f.isVariable && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Render substitutes each placeholder with its binding. Surrounding spaces
// inside the braces are ignored when looking a name up. Every placeholder
// must be bound.
func (t *Template) Render(bindings map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(t.value))
	for _, f := range t.fragments {
		if !f.isVariable {
			out.WriteString(f.value)
			continue
		}
		name := strings.TrimSpace(f.value)
		v, ok := bindings[name]
		if !ok {
			return "", fmt.Errorf("unbound placeholder ${%s} in template: %s", name, t.value)
		}
		out.WriteString(v)
	}
	return out.String(), nil
}

// Parse splits s into literal and placeholder fragments. A "$" not followed
// by "{" is literal text.
func Parse(s string) (*Template, error) {
	t := &Template{value: s}
	var lit strings.Builder
	rest := s
	for len(rest) > 0 {
		start := strings.Index(rest, "${")
		if start < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:start])
		end := strings.IndexByte(rest[start+2:], '}')
		if end < 0 {
			return nil, errors.New("missing '}' in template: " + s)
		}
		if lit.Len() > 0 {
			t.fragments = append(t.fragments, &Fragment{value: lit.String()})
			lit.Reset()
		}
		t.fragments = append(t.fragments, &Fragment{
			value:      rest[start+2 : start+2+end],
			isVariable: true,
		})
		rest = rest[start+2+end+1:]
	}
	if lit.Len() > 0 {
		t.fragments = append(t.fragments, &Fragment{value: lit.String()})
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is intended for templates
// defined at package initialization.
func MustParse(s string) *Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
