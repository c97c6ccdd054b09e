// Package ast defines the abstract syntax tree consumed by the transpiler.
//
// The tree is produced by an external parser. Every node owns its children and
// holds a back-reference to its parent. The back-reference is set exactly once,
// by the constructor of the parent, and is only ever changed by Replace, which
// re-parents atomically. Attaching a node that already belongs to another
// parent is a parser defect and panics.
package ast

import (
	"fmt"
	"reflect"

	"github.com/deepnoodle-ai/boxgo/internal/token"
)

// Node represents a portion of the syntax tree.
type Node interface {
	// Kind returns the node's discriminator, used for transformer dispatch.
	Kind() Kind

	// Range returns the span of source text the node was parsed from.
	Range() token.Range

	// Source returns the verbatim source text of the node.
	Source() string

	// Parent returns the node that owns this node, or nil for a root.
	Parent() Node

	// Children returns the owned child nodes in source order.
	Children() []Node

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string

	header() *base
	replaceChild(old, new Node) error
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Meta carries the source information the parser attaches to every node.
type Meta struct {
	Range token.Range
	Text  string
}

// At is a shorthand for a Meta starting at pos and spanning text.
func At(pos token.Position, text string) Meta {
	return Meta{
		Range: token.Range{Start: pos, End: pos.Advance(len(text))},
		Text:  text,
	}
}

type base struct {
	meta   Meta
	parent Node
}

func (b *base) header() *base       { return b }
func (b *base) Range() token.Range  { return b.meta.Range }
func (b *base) Pos() token.Position { return b.meta.Range.Start }
func (b *base) Parent() Node        { return b.parent }
func (b *base) sourceText() string  { return b.meta.Text }

// adopt records parent as the owner of child. A nil child is ignored.
func adopt(parent, child Node) {
	if isNil(child) {
		return
	}
	h := child.header()
	if h.parent != nil && h.parent != parent {
		panic(fmt.Sprintf("ast: %s node is already attached to a %s node",
			child.Kind(), h.parent.Kind()))
	}
	h.parent = parent
}

func adoptAll[T Node](parent Node, children []T) {
	for _, c := range children {
		adopt(parent, c)
	}
}

// isNil reports whether n is nil, including typed nil pointers stored in
// the interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Replace swaps the child old of parent for new. On success old is detached
// (its parent becomes nil) and new is attached to parent. If old is not a
// child of parent, new already has a parent, new is parent or one of its
// ancestors, or new cannot occupy the slot held by old, an error is returned
// and the tree is left unchanged.
func Replace(parent, old, new Node) error {
	if isNil(parent) || isNil(old) || isNil(new) {
		return fmt.Errorf("ast: replace requires non-nil nodes")
	}
	if old.Parent() != parent {
		return fmt.Errorf("ast: %s node is not a child of %s node", old.Kind(), parent.Kind())
	}
	if new.Parent() != nil {
		return fmt.Errorf("ast: %s node is already attached to a %s node",
			new.Kind(), new.Parent().Kind())
	}
	for n := parent; n != nil; n = n.Parent() {
		if n == new {
			return fmt.Errorf("ast: %s node is an ancestor of %s node", new.Kind(), parent.Kind())
		}
	}
	if err := parent.replaceChild(old, new); err != nil {
		return err
	}
	old.header().parent = nil
	new.header().parent = parent
	return nil
}

// Root follows parent references up to the root of the tree.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

func errNotChild(parent, old Node) error {
	return fmt.Errorf("ast: %s node is not a child of %s node", old.Kind(), parent.Kind())
}

func errSlot(parent, new Node, want string) error {
	return fmt.Errorf("ast: %s node cannot replace a child of %s node (want %s)",
		new.Kind(), parent.Kind(), want)
}

// swapExpr replaces *slot with new when *slot is old.
func swapExpr(parent Node, slot *Expr, old, new Node) (bool, error) {
	if isNil(*slot) || Node(*slot) != old {
		return false, nil
	}
	e, ok := new.(Expr)
	if !ok {
		return true, errSlot(parent, new, "expression")
	}
	*slot = e
	return true, nil
}

func swapStmt(parent Node, slot *Stmt, old, new Node) (bool, error) {
	if isNil(*slot) || Node(*slot) != old {
		return false, nil
	}
	s, ok := new.(Stmt)
	if !ok {
		return true, errSlot(parent, new, "statement")
	}
	*slot = s
	return true, nil
}

func swapExprIn(parent Node, list []Expr, old, new Node) (bool, error) {
	for i := range list {
		if found, err := swapExpr(parent, &list[i], old, new); found {
			return true, err
		}
	}
	return false, nil
}

func swapStmtIn(parent Node, list []Stmt, old, new Node) (bool, error) {
	for i := range list {
		if found, err := swapStmt(parent, &list[i], old, new); found {
			return true, err
		}
	}
	return false, nil
}

func exprNodes(list []Expr) []Node {
	out := make([]Node, 0, len(list))
	for _, e := range list {
		out = append(out, e)
	}
	return out
}

func stmtNodes(list []Stmt) []Node {
	out := make([]Node, 0, len(list))
	for _, s := range list {
		out = append(out, s)
	}
	return out
}

// appendNonNil appends the non-nil nodes to out.
func appendNonNil(out []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if !isNil(n) {
			out = append(out, n)
		}
	}
	return out
}

// source returns the verbatim text if the parser provided it, else the
// reconstructed form.
func source(n interface {
	sourceText() string
	String() string
}) string {
	if s := n.sourceText(); s != "" {
		return s
	}
	return n.String()
}
