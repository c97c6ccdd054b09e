package ast

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/boxgo/internal/token"
)

// ToMap converts a tree into nested maps suitable for JSON encoding. Every
// map carries "kind", "source" and "range" entries plus the attributes of
// the node. Decode reverses the conversion.
func ToMap(n Node) map[string]any {
	if isNil(n) {
		return nil
	}
	m := map[string]any{
		"kind":   n.Kind().String(),
		"source": n.header().meta.Text,
		"range":  rangeToMap(n.Range()),
	}
	switch n := n.(type) {
	case *Program:
		m["statements"] = stmtsToMaps(n.stmts)
	case *ExpressionStatement:
		m["expression"] = ToMap(n.expr)
	case *Assignment:
		m["left"] = ToMap(n.left)
		m["right"] = ToMap(n.right)
	case *IfElse:
		m["condition"] = ToMap(n.cond)
		m["then"] = stmtsToMaps(n.thenBody)
		m["else"] = stmtsToMaps(n.elseBody)
	case *While:
		m["condition"] = ToMap(n.cond)
		m["body"] = stmtsToMaps(n.body)
	case *For:
		m["init"] = ToMap(n.init)
		m["condition"] = ToMap(n.cond)
		m["step"] = ToMap(n.step)
		m["body"] = stmtsToMaps(n.body)
	case *FunctionDeclaration:
		args := make([]any, 0, len(n.args))
		for _, a := range n.args {
			args = append(args, ToMap(a))
		}
		m["name"] = n.name
		m["arguments"] = args
		m["body"] = stmtsToMaps(n.body)
		m["returnType"] = n.returnType
	case *ArgumentDeclaration:
		m["required"] = n.required
		m["type"] = n.typ
		m["name"] = n.name
		m["default"] = ToMap(n.def)
		m["hint"] = n.hint
		if len(n.metadata) > 0 {
			md := make(map[string]any, len(n.metadata))
			for k, v := range n.metadata {
				md[k] = v
			}
			m["metadata"] = md
		}
	case *Return:
		m["expression"] = ToMap(n.expr)
	case *Scope:
		m["name"] = n.name
	case *Identifier:
		m["name"] = n.name
	case *ObjectAccess:
		m["context"] = ToMap(n.context)
		m["access"] = ToMap(n.access)
	case *ArrayAccess:
		m["context"] = ToMap(n.context)
		m["index"] = ToMap(n.index)
	case *IntegerLiteral:
		m["value"] = n.value
	case *DecimalLiteral:
		m["value"] = n.value
	case *StringLiteral:
		m["value"] = n.value
	case *BooleanLiteral:
		m["value"] = n.value
	case *NullLiteral:
	case *StringInterpolation:
		m["parts"] = exprsToMaps(n.parts)
	case *StructLiteral:
		m["type"] = n.typ.String()
		m["values"] = exprsToMaps(n.values)
	case *ArrayLiteral:
		m["values"] = exprsToMaps(n.values)
	case *UnaryOperation:
		m["operator"] = n.op.String()
		m["operand"] = ToMap(n.operand)
	case *BinaryOperation:
		m["operator"] = n.op.String()
		m["left"] = ToMap(n.left)
		m["right"] = ToMap(n.right)
	case *TernaryOperation:
		m["condition"] = ToMap(n.cond)
		m["whenTrue"] = ToMap(n.whenTrue)
		m["whenFalse"] = ToMap(n.whenFalse)
	case *FunctionInvocation:
		args := make([]any, 0, len(n.args))
		for _, a := range n.args {
			args = append(args, ToMap(a))
		}
		m["name"] = n.name
		m["arguments"] = args
	case *Argument:
		m["name"] = n.name
		m["value"] = ToMap(n.value)
	}
	return m
}

// MarshalJSON encodes a tree using the ToMap layout.
func MarshalJSON(n Node) ([]byte, error) {
	return json.Marshal(ToMap(n))
}

// Decode parses a JSON document produced by MarshalJSON (or an external
// parser emitting the same layout) into a tree.
func Decode(data []byte) (Node, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("ast: decode: %w", err)
	}
	return FromMap(m)
}

// DecodeProgram is like Decode but requires the root to be a Program.
func DecodeProgram(data []byte) (*Program, error) {
	n, err := Decode(data)
	if err != nil {
		return nil, err
	}
	p, ok := n.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: decode: root is %s, not Program", n.Kind())
	}
	return p, nil
}

// FromMap builds a tree from the ToMap layout.
func FromMap(m map[string]any) (Node, error) {
	d := &decoder{}
	n := d.node(m, "root")
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

type decoder struct {
	err error
}

func (d *decoder) fail(path, format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("ast: decode %s: %s", path, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) node(m map[string]any, path string) Node {
	if d.err != nil || m == nil {
		return nil
	}
	name, _ := m["kind"].(string)
	kind, ok := ParseKind(name)
	if !ok {
		d.fail(path, "unknown node kind %q", name)
		return nil
	}
	meta := Meta{Range: mapToRange(m["range"])}
	meta.Text, _ = m["source"].(string)

	switch kind {
	case KindProgram:
		return NewProgram(d.stmts(m, "statements", path), meta)
	case KindExpressionStatement:
		return NewExpressionStatement(d.expr(m, "expression", path, true), meta)
	case KindAssignment:
		return NewAssignment(d.expr(m, "left", path, true), d.expr(m, "right", path, true), meta)
	case KindIfElse:
		return NewIfElse(d.expr(m, "condition", path, true), d.stmts(m, "then", path), d.stmts(m, "else", path), meta)
	case KindWhile:
		return NewWhile(d.expr(m, "condition", path, true), d.stmts(m, "body", path), meta)
	case KindFor:
		var init Stmt
		if sub, ok := m["init"].(map[string]any); ok {
			init = d.stmt(sub, path+".init")
		}
		return NewFor(init, d.expr(m, "condition", path, false), d.expr(m, "step", path, false), d.stmts(m, "body", path), meta)
	case KindFunctionDeclaration:
		var args []*ArgumentDeclaration
		for i, raw := range d.list(m, "arguments", path) {
			sub := d.child(raw, fmt.Sprintf("%s.arguments[%d]", path, i))
			if a, ok := sub.(*ArgumentDeclaration); ok {
				args = append(args, a)
			} else if sub != nil {
				d.fail(path, "argument %d is %s, not ArgumentDeclaration", i, sub.Kind())
			}
		}
		name, _ := m["name"].(string)
		rt, _ := m["returnType"].(string)
		return NewFunctionDeclaration(name, args, d.stmts(m, "body", path), rt, meta)
	case KindArgumentDeclaration:
		required, _ := m["required"].(bool)
		typ, _ := m["type"].(string)
		name, _ := m["name"].(string)
		hint, _ := m["hint"].(string)
		var md map[string]string
		if raw, ok := m["metadata"].(map[string]any); ok {
			md = make(map[string]string, len(raw))
			for k, v := range raw {
				md[k] = fmt.Sprint(v)
			}
		}
		return NewArgumentDeclaration(required, typ, name, d.expr(m, "default", path, false), hint, md, meta)
	case KindReturn:
		return NewReturn(d.expr(m, "expression", path, false), meta)
	case KindScope:
		return NewScope(d.str(m, "name", path), meta)
	case KindIdentifier:
		return NewIdentifier(d.str(m, "name", path), meta)
	case KindObjectAccess:
		return NewObjectAccess(d.expr(m, "context", path, true), d.expr(m, "access", path, true), meta)
	case KindArrayAccess:
		return NewArrayAccess(d.expr(m, "context", path, true), d.expr(m, "index", path, true), meta)
	case KindIntegerLiteral:
		return NewIntegerLiteral(d.str(m, "value", path), meta)
	case KindDecimalLiteral:
		return NewDecimalLiteral(d.str(m, "value", path), meta)
	case KindStringLiteral:
		s, _ := m["value"].(string)
		return NewStringLiteral(s, meta)
	case KindBooleanLiteral:
		return NewBooleanLiteral(d.str(m, "value", path), meta)
	case KindNullLiteral:
		return NewNullLiteral(meta)
	case KindStringInterpolation:
		return NewStringInterpolation(d.exprs(m, "parts", path), meta)
	case KindStructLiteral:
		typ := Unordered
		if s, _ := m["type"].(string); s == Ordered.String() {
			typ = Ordered
		}
		values := d.exprs(m, "values", path)
		if len(values)%2 != 0 {
			d.fail(path, "struct literal has an odd number of values")
		}
		return NewStructLiteral(typ, values, meta)
	case KindArrayLiteral:
		return NewArrayLiteral(d.exprs(m, "values", path), meta)
	case KindUnaryOperation:
		op, ok := ParseUnaryOperator(d.str(m, "operator", path))
		if !ok {
			d.fail(path, "unknown unary operator %v", m["operator"])
		}
		return NewUnaryOperation(op, d.expr(m, "operand", path, true), meta)
	case KindBinaryOperation:
		op, ok := ParseBinaryOperator(d.str(m, "operator", path))
		if !ok {
			d.fail(path, "unknown binary operator %v", m["operator"])
		}
		return NewBinaryOperation(d.expr(m, "left", path, true), op, d.expr(m, "right", path, true), meta)
	case KindTernaryOperation:
		return NewTernaryOperation(d.expr(m, "condition", path, true), d.expr(m, "whenTrue", path, true), d.expr(m, "whenFalse", path, true), meta)
	case KindFunctionInvocation:
		var args []*Argument
		for i, raw := range d.list(m, "arguments", path) {
			sub := d.child(raw, fmt.Sprintf("%s.arguments[%d]", path, i))
			if a, ok := sub.(*Argument); ok {
				args = append(args, a)
			} else if e, ok := sub.(Expr); ok {
				// A bare expression is shorthand for a positional argument.
				args = append(args, NewArgument("", e, Meta{Range: e.Range()}))
			} else if sub != nil {
				d.fail(path, "argument %d is %s", i, sub.Kind())
			}
		}
		return NewFunctionInvocation(d.str(m, "name", path), args, meta)
	case KindArgument:
		name, _ := m["name"].(string)
		return NewArgument(name, d.expr(m, "value", path, true), meta)
	}
	d.fail(path, "cannot decode %s", kind)
	return nil
}

func (d *decoder) child(raw any, path string) Node {
	sub, ok := raw.(map[string]any)
	if !ok {
		d.fail(path, "expected an object, got %T", raw)
		return nil
	}
	return d.node(sub, path)
}

func (d *decoder) str(m map[string]any, field, path string) string {
	s, ok := m[field].(string)
	if !ok {
		d.fail(path, "missing string field %q", field)
	}
	return s
}

func (d *decoder) list(m map[string]any, field, path string) []any {
	raw, ok := m[field]
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		d.fail(path, "field %q is not a list", field)
	}
	return items
}

func (d *decoder) expr(m map[string]any, field, path string, required bool) Expr {
	sub, ok := m[field].(map[string]any)
	if !ok {
		if required {
			d.fail(path, "missing expression field %q", field)
		}
		return nil
	}
	n := d.node(sub, path+"."+field)
	if n == nil {
		return nil
	}
	e, ok := n.(Expr)
	if !ok {
		d.fail(path, "field %q holds %s, not an expression", field, n.Kind())
		return nil
	}
	return e
}

func (d *decoder) stmt(m map[string]any, path string) Stmt {
	n := d.node(m, path)
	if n == nil {
		return nil
	}
	s, ok := n.(Stmt)
	if !ok {
		d.fail(path, "%s is not a statement", n.Kind())
		return nil
	}
	return s
}

func (d *decoder) stmts(m map[string]any, field, path string) []Stmt {
	items := d.list(m, field, path)
	out := make([]Stmt, 0, len(items))
	for i, raw := range items {
		sub, ok := raw.(map[string]any)
		if !ok {
			d.fail(path, "%s[%d] is not an object", field, i)
			continue
		}
		if s := d.stmt(sub, fmt.Sprintf("%s.%s[%d]", path, field, i)); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) exprs(m map[string]any, field, path string) []Expr {
	items := d.list(m, field, path)
	out := make([]Expr, 0, len(items))
	for i, raw := range items {
		n := d.child(raw, fmt.Sprintf("%s.%s[%d]", path, field, i))
		if n == nil {
			continue
		}
		e, ok := n.(Expr)
		if !ok {
			d.fail(path, "%s[%d] is %s, not an expression", field, i, n.Kind())
			continue
		}
		out = append(out, e)
	}
	return out
}

func stmtsToMaps(stmts []Stmt) []any {
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, ToMap(s))
	}
	return out
}

func exprsToMaps(exprs []Expr) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, ToMap(e))
	}
	return out
}

func rangeToMap(r token.Range) map[string]any {
	m := map[string]any{
		"start": posToMap(r.Start),
		"end":   posToMap(r.End),
	}
	if r.Start.File != "" {
		m["file"] = r.Start.File
	}
	return m
}

func posToMap(p token.Position) map[string]any {
	return map[string]any{"char": p.Char, "line": p.Line, "column": p.Column}
}

func mapToRange(raw any) token.Range {
	m, ok := raw.(map[string]any)
	if !ok {
		return token.Range{}
	}
	file, _ := m["file"].(string)
	return token.Range{Start: mapToPos(m["start"], file), End: mapToPos(m["end"], file)}
}

func mapToPos(raw any, file string) token.Position {
	m, _ := raw.(map[string]any)
	num := func(k string) int {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case int:
			return v
		}
		return 0
	}
	return token.Position{Char: num("char"), Line: num("line"), Column: num("column"), File: file}
}
