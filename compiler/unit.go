package compiler

import (
	"bytes"
	"fmt"
	goast "go/ast"
	"go/format"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/deepnoodle-ai/boxgo/ast"
)

// RuntimeImport is the import path generated code uses for package rt.
const RuntimeImport = "github.com/deepnoodle-ai/boxgo/rt"

// Unit is the output of transpiling one compilation unit.
type Unit struct {
	// ID identifies the unit in generated headers and logs.
	ID uuid.UUID

	// Filename is the source file the unit was parsed from, if any.
	Filename string

	// Fragments holds one statement per top-level source statement, in
	// source order.
	Fragments []*Fragment

	trace   []*Fragment
	origins map[goast.Node]ast.Node
}

func newUnit(filename string) *Unit {
	return &Unit{
		ID:       uuid.Must(uuid.NewV4()),
		Filename: filename,
	}
}

func (u *Unit) index(trace []*Fragment) {
	u.trace = trace
	u.origins = make(map[goast.Node]ast.Node, len(trace))
	for _, f := range trace {
		if f.Node != nil {
			u.origins[f.Node] = f.Origin
		}
	}
}

// Trace returns every fragment synthesized for the unit in render order.
// Children are rendered before their parents.
func (u *Unit) Trace() []*Fragment {
	return u.trace
}

// Origin returns the AST node a fragment's Go syntax was synthesized from.
func (u *Unit) Origin(n goast.Node) (ast.Node, bool) {
	origin, ok := u.origins[n]
	return origin, ok
}

// Body returns the unit's statements as Go source, ending in a return.
func (u *Unit) Body() string {
	lines := make([]string, 0, len(u.Fragments)+1)
	for _, f := range u.Fragments {
		lines = append(lines, f.code)
	}
	if n := len(u.Fragments); n == 0 || u.Fragments[n-1].Origin.Kind() != ast.KindReturn {
		lines = append(lines, "return nil")
	}
	return strings.Join(lines, "\n")
}

// GoSource renders the unit as a formatted Go file declaring
//
//	func Run(ctx *rt.Context) any
func (u *Unit) GoSource() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by boxgo. DO NOT EDIT.\n")
	fmt.Fprintf(&buf, "// Unit: %s\n", u.ID)
	if u.Filename != "" {
		fmt.Fprintf(&buf, "// Source: %s\n", u.Filename)
	}
	fmt.Fprintf(&buf, "\npackage main\n\nimport %q\n\n", RuntimeImport)
	fmt.Fprintf(&buf, "func Run(%s *rt.Context) any {\n%s\n}\n", DefaultContextName, u.Body())
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format unit %s: %w", u.ID, err)
	}
	return src, nil
}
