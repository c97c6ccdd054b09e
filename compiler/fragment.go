package compiler

import (
	goast "go/ast"
	"strings"

	"github.com/deepnoodle-ai/boxgo/ast"
)

// Fragment is the Go code synthesized for one AST node.
type Fragment struct {
	// Origin is the node the fragment was generated from.
	Origin ast.Node

	// Node is the parsed Go syntax: a goast.Expr or a goast.Stmt. It is nil
	// for key pairs.
	Node goast.Node

	code string
	keys []string
}

// Code returns the rendered Go source text.
func (f *Fragment) Code() string { return f.code }

// Expr returns the fragment as a Go expression.
func (f *Fragment) Expr() (goast.Expr, bool) {
	e, ok := f.Node.(goast.Expr)
	return e, ok
}

// Stmt returns the fragment as a Go statement.
func (f *Fragment) Stmt() (goast.Stmt, bool) {
	s, ok := f.Node.(goast.Stmt)
	return s, ok
}

// IsKeyPair reports whether the fragment is the intermediate result of an
// identifier.identifier access, which has no code of its own.
func (f *Fragment) IsKeyPair() bool { return f.keys != nil }

// Keys returns the key pair of an identifier.identifier access.
func (f *Fragment) Keys() []string { return f.keys }

func (f *Fragment) String() string {
	if f.IsKeyPair() {
		return "<keys " + strings.Join(f.keys, ".") + ">"
	}
	return f.code
}

// isCall reports whether the fragment is a call of rt.<name>, returning the
// call when it is.
func (f *Fragment) isCall(name string) (*goast.CallExpr, bool) {
	call, ok := f.Node.(*goast.CallExpr)
	if !ok {
		return nil, false
	}
	sel, ok := call.Fun.(*goast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return nil, false
	}
	pkg, ok := sel.X.(*goast.Ident)
	if !ok || pkg.Name != "rt" {
		return nil, false
	}
	return call, true
}
