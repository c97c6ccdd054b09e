// Package compiler transpiles a boxgo abstract syntax tree (AST) into Go
// source code that runs against the rt package.
//
// # Dispatch
//
// Every AST node kind has exactly one transformer, registered in a fixed
// table indexed by ast.Kind. The table is filled once during package
// initialization and never changes afterwards, so it is shared freely by
// concurrent Transpilers. A node kind without a transformer aborts the unit
// with an E2001 compile error.
//
// # Synthesis
//
// Transformers never build Go syntax by hand. They render a code template,
// binding its placeholders to the already rendered code of their children,
// and parse the result with go/parser. Text that does not parse aborts the
// unit with an E2002 compile error.
//
// # Contexts
//
// Generated code reads and writes variables through an *rt.Context. At unit
// level it is named ctx. Each function body gets its own context, named fctx
// for the outermost function and fctx2, fctx3 and so on for functions
// declared inside it. The Transpiler keeps these names on a stack that is
// pushed when a function body is entered and popped when it is left.
//
// # Access chains
//
// Dotted access is limited to the forms a scope can resolve directly:
//
//	variables.a      rt.Get(ctx.Scope("variables"), "a")
//	variables.a.b    rt.Get(rt.Get(ctx.Scope("variables"), "a"), "b")
//
// Any other chain is rejected with an E2003 compile error.
package compiler

import (
	gotoken "go/token"
	"strconv"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/internal/token"
)

// DefaultContextName is the Go identifier of the unit-level context.
const DefaultContextName = "ctx"

// Config holds settings for a Transpiler.
type Config struct {
	// Filename is recorded in compile error locations and generated headers.
	Filename string

	// Observer is notified of every synthesized fragment. Defaults to
	// NoOpObserver.
	Observer Observer
}

// Transpiler converts one compilation unit. It is not safe for concurrent
// use; create one per unit.
type Transpiler struct {
	cfg    Config
	fset   *gotoken.FileSet
	scopes []string
	trace  []*Fragment
}

// New returns a Transpiler configured by cfg.
func New(cfg Config) *Transpiler {
	if cfg.Observer == nil {
		cfg.Observer = NoOpObserver{}
	}
	return &Transpiler{
		cfg:    cfg,
		fset:   gotoken.NewFileSet(),
		scopes: []string{DefaultContextName},
	}
}

// Transpile converts node into a Unit using a new Transpiler.
func Transpile(node ast.Node, cfg Config) (*Unit, error) {
	return New(cfg).Transpile(node)
}

// Transpile converts node into a Unit. A Program yields one fragment per
// top-level statement. Any other statement yields a single fragment, and an
// expression is treated as an expression statement. The first error aborts
// the unit and no partial output is returned.
func (t *Transpiler) Transpile(node ast.Node) (*Unit, error) {
	var stmts []ast.Node
	switch n := node.(type) {
	case *ast.Program:
		for _, s := range n.Statements() {
			stmts = append(stmts, s)
		}
	case nil:
		return nil, errors.NewCompileError(errors.E2001, token.Range{}, "", "nothing to transpile")
	default:
		stmts = []ast.Node{n}
	}
	unit := newUnit(t.cfg.Filename)
	for _, s := range stmts {
		frag, err := t.statement(s)
		if err != nil {
			return nil, err
		}
		unit.Fragments = append(unit.Fragments, frag)
	}
	unit.index(t.trace)
	return unit, nil
}

// Transform dispatches node to its transformer. It is exported for tools
// that want the code of a single node rather than a whole unit.
func (t *Transpiler) Transform(node ast.Node, ctx Context) (*Fragment, error) {
	return t.transform(node, ctx)
}

func (t *Transpiler) transform(node ast.Node, ctx Context) (*Fragment, error) {
	kind := node.Kind()
	if kind >= ast.KindCount || registry[kind] == nil {
		return nil, t.errorf(errors.E2001, node, "no transformer for node kind %s", kind)
	}
	return registry[kind](t, node, ctx)
}

// expr transforms an expression whose code is consumed by its parent. Key
// pairs have no code and are rejected here.
func (t *Transpiler) expr(node ast.Node, ctx Context) (*Fragment, error) {
	frag, err := t.transform(node, ctx)
	if err != nil {
		return nil, err
	}
	if frag.IsKeyPair() {
		return nil, t.illegalAccess(node)
	}
	return frag, nil
}

// statement transforms node into a Go statement. Expressions become
// expression statements.
func (t *Transpiler) statement(node ast.Node) (*Fragment, error) {
	if _, ok := node.(ast.Stmt); ok {
		return t.transform(node, None)
	}
	frag, err := t.expr(node, Right)
	if err != nil {
		return nil, err
	}
	return t.exprStmt(node, frag)
}

// contextName returns the Go identifier of the current execution context.
func (t *Transpiler) contextName() string {
	return t.scopes[len(t.scopes)-1]
}

// pushScope enters a function body and returns its context name.
func (t *Transpiler) pushScope() string {
	name := "fctx"
	if depth := len(t.scopes); depth > 1 {
		name += strconv.Itoa(depth)
	}
	t.scopes = append(t.scopes, name)
	return name
}

func (t *Transpiler) popScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *Transpiler) errorf(code errors.ErrorCode, node ast.Node, format string, args ...any) *errors.CompileError {
	e := errors.NewCompileError(code, node.Range(), node.Source(), format, args...)
	if e.Filename == "" {
		e.Filename = t.cfg.Filename
	}
	return e
}

func (t *Transpiler) illegalAccess(node ast.Node) *errors.CompileError {
	return t.errorf(errors.E2003, node, "illegal access chain %s", node.String())
}
