package ast

import (
	"strconv"
	"strings"
)

// IntegerLiteral holds the literal text of an integer.
type IntegerLiteral struct {
	base
	value string
}

func NewIntegerLiteral(value string, meta Meta) *IntegerLiteral {
	return &IntegerLiteral{base: base{meta: meta}, value: value}
}

func (n *IntegerLiteral) exprNode()                      {}
func (n *IntegerLiteral) Kind() Kind                     { return KindIntegerLiteral }
func (n *IntegerLiteral) Source() string                 { return source(n) }
func (n *IntegerLiteral) Children() []Node               { return nil }
func (n *IntegerLiteral) Value() string                  { return n.value }
func (n *IntegerLiteral) String() string                 { return n.value }
func (n *IntegerLiteral) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// DecimalLiteral holds the literal text of a floating point number.
type DecimalLiteral struct {
	base
	value string
}

func NewDecimalLiteral(value string, meta Meta) *DecimalLiteral {
	return &DecimalLiteral{base: base{meta: meta}, value: value}
}

func (n *DecimalLiteral) exprNode()                      {}
func (n *DecimalLiteral) Kind() Kind                     { return KindDecimalLiteral }
func (n *DecimalLiteral) Source() string                 { return source(n) }
func (n *DecimalLiteral) Children() []Node               { return nil }
func (n *DecimalLiteral) Value() string                  { return n.value }
func (n *DecimalLiteral) String() string                 { return n.value }
func (n *DecimalLiteral) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// StringLiteral holds an unquoted string value.
type StringLiteral struct {
	base
	value string
}

func NewStringLiteral(value string, meta Meta) *StringLiteral {
	return &StringLiteral{base: base{meta: meta}, value: value}
}

func (n *StringLiteral) exprNode()                      {}
func (n *StringLiteral) Kind() Kind                     { return KindStringLiteral }
func (n *StringLiteral) Source() string                 { return source(n) }
func (n *StringLiteral) Children() []Node               { return nil }
func (n *StringLiteral) Value() string                  { return n.value }
func (n *StringLiteral) String() string                 { return strconv.Quote(n.value) }
func (n *StringLiteral) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// BooleanLiteral holds the literal text "true" or "false" in any case.
type BooleanLiteral struct {
	base
	value string
}

func NewBooleanLiteral(value string, meta Meta) *BooleanLiteral {
	return &BooleanLiteral{base: base{meta: meta}, value: value}
}

func (n *BooleanLiteral) exprNode()                      {}
func (n *BooleanLiteral) Kind() Kind                     { return KindBooleanLiteral }
func (n *BooleanLiteral) Source() string                 { return source(n) }
func (n *BooleanLiteral) Children() []Node               { return nil }
func (n *BooleanLiteral) Value() string                  { return n.value }
func (n *BooleanLiteral) Bool() bool                     { return strings.EqualFold(n.value, "true") }
func (n *BooleanLiteral) String() string                 { return n.value }
func (n *BooleanLiteral) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// NullLiteral is the null value.
type NullLiteral struct {
	base
}

func NewNullLiteral(meta Meta) *NullLiteral {
	return &NullLiteral{base: base{meta: meta}}
}

func (n *NullLiteral) exprNode()                      {}
func (n *NullLiteral) Kind() Kind                     { return KindNullLiteral }
func (n *NullLiteral) Source() string                 { return source(n) }
func (n *NullLiteral) Children() []Node               { return nil }
func (n *NullLiteral) String() string                 { return "null" }
func (n *NullLiteral) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// StringInterpolation concatenates its parts, left to right.
type StringInterpolation struct {
	base
	parts []Expr
}

func NewStringInterpolation(parts []Expr, meta Meta) *StringInterpolation {
	n := &StringInterpolation{base: base{meta: meta}, parts: parts}
	adoptAll(n, parts)
	return n
}

func (n *StringInterpolation) exprNode()        {}
func (n *StringInterpolation) Kind() Kind       { return KindStringInterpolation }
func (n *StringInterpolation) Source() string   { return source(n) }
func (n *StringInterpolation) Children() []Node { return exprNodes(n.parts) }
func (n *StringInterpolation) Parts() []Expr    { return n.parts }

func (n *StringInterpolation) replaceChild(old, new Node) error {
	if found, err := swapExprIn(n, n.parts, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *StringInterpolation) String() string {
	var out strings.Builder
	out.WriteString(`"`)
	for _, p := range n.parts {
		if s, ok := p.(*StringLiteral); ok {
			out.WriteString(s.value)
			continue
		}
		out.WriteString("#" + p.String() + "#")
	}
	out.WriteString(`"`)
	return out.String()
}

// StructLiteral builds a struct from a flat list of alternating keys and
// values. A bare Identifier in key position stands for its own name.
type StructLiteral struct {
	base
	typ    StructType
	values []Expr
}

func NewStructLiteral(typ StructType, values []Expr, meta Meta) *StructLiteral {
	n := &StructLiteral{base: base{meta: meta}, typ: typ, values: values}
	adoptAll(n, values)
	return n
}

func (n *StructLiteral) exprNode()        {}
func (n *StructLiteral) Kind() Kind       { return KindStructLiteral }
func (n *StructLiteral) Source() string   { return source(n) }
func (n *StructLiteral) Children() []Node { return exprNodes(n.values) }
func (n *StructLiteral) Type() StructType { return n.typ }
func (n *StructLiteral) Values() []Expr   { return n.values }

func (n *StructLiteral) replaceChild(old, new Node) error {
	if found, err := swapExprIn(n, n.values, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *StructLiteral) String() string {
	pairs := make([]string, 0, len(n.values)/2)
	for i := 0; i+1 < len(n.values); i += 2 {
		pairs = append(pairs, n.values[i].String()+": "+n.values[i+1].String())
	}
	if n.typ == Ordered {
		return "[" + strings.Join(pairs, ", ") + "]"
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// ArrayLiteral builds an array from its values.
type ArrayLiteral struct {
	base
	values []Expr
}

func NewArrayLiteral(values []Expr, meta Meta) *ArrayLiteral {
	n := &ArrayLiteral{base: base{meta: meta}, values: values}
	adoptAll(n, values)
	return n
}

func (n *ArrayLiteral) exprNode()        {}
func (n *ArrayLiteral) Kind() Kind       { return KindArrayLiteral }
func (n *ArrayLiteral) Source() string   { return source(n) }
func (n *ArrayLiteral) Children() []Node { return exprNodes(n.values) }
func (n *ArrayLiteral) Values() []Expr   { return n.values }

func (n *ArrayLiteral) replaceChild(old, new Node) error {
	if found, err := swapExprIn(n, n.values, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *ArrayLiteral) String() string {
	parts := make([]string, 0, len(n.values))
	for _, v := range n.values {
		parts = append(parts, v.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
