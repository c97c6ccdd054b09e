package ast

import (
	"bytes"
	"strings"
)

// Scope references a named variable scope such as "variables" or "local".
type Scope struct {
	base
	name string
}

func NewScope(name string, meta Meta) *Scope {
	return &Scope{base: base{meta: meta}, name: name}
}

func (n *Scope) exprNode()                      {}
func (n *Scope) Kind() Kind                     { return KindScope }
func (n *Scope) Source() string                 { return source(n) }
func (n *Scope) Children() []Node               { return nil }
func (n *Scope) Name() string                   { return n.name }
func (n *Scope) String() string                 { return n.name }
func (n *Scope) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// Identifier is a bare name.
type Identifier struct {
	base
	name string
}

func NewIdentifier(name string, meta Meta) *Identifier {
	return &Identifier{base: base{meta: meta}, name: name}
}

func (n *Identifier) exprNode()                      {}
func (n *Identifier) Kind() Kind                     { return KindIdentifier }
func (n *Identifier) Children() []Node               { return nil }
func (n *Identifier) Name() string                   { return n.name }
func (n *Identifier) String() string                 { return n.name }
func (n *Identifier) replaceChild(old, _ Node) error { return errNotChild(n, old) }

// Source returns the literal text of the identifier. This is the text used
// whenever the identifier acts as a key rather than a variable reference.
func (n *Identifier) Source() string { return source(n) }

// ObjectAccess is a dotted member access: context.access.
type ObjectAccess struct {
	base
	context Expr
	access  Expr
}

func NewObjectAccess(context, access Expr, meta Meta) *ObjectAccess {
	n := &ObjectAccess{base: base{meta: meta}, context: context, access: access}
	adopt(n, context)
	adopt(n, access)
	return n
}

func (n *ObjectAccess) exprNode()        {}
func (n *ObjectAccess) Kind() Kind       { return KindObjectAccess }
func (n *ObjectAccess) Source() string   { return source(n) }
func (n *ObjectAccess) Children() []Node { return []Node{n.context, n.access} }
func (n *ObjectAccess) Context() Expr    { return n.context }
func (n *ObjectAccess) Access() Expr     { return n.access }
func (n *ObjectAccess) String() string   { return n.context.String() + "." + n.access.String() }

func (n *ObjectAccess) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.context, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.access, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

// ArrayAccess is a bracketed access with a computed key: context[index].
type ArrayAccess struct {
	base
	context Expr
	index   Expr
}

func NewArrayAccess(context, index Expr, meta Meta) *ArrayAccess {
	n := &ArrayAccess{base: base{meta: meta}, context: context, index: index}
	adopt(n, context)
	adopt(n, index)
	return n
}

func (n *ArrayAccess) exprNode()        {}
func (n *ArrayAccess) Kind() Kind       { return KindArrayAccess }
func (n *ArrayAccess) Source() string   { return source(n) }
func (n *ArrayAccess) Children() []Node { return []Node{n.context, n.index} }
func (n *ArrayAccess) Context() Expr    { return n.context }
func (n *ArrayAccess) Index() Expr      { return n.index }
func (n *ArrayAccess) String() string   { return n.context.String() + "[" + n.index.String() + "]" }

func (n *ArrayAccess) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.context, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.index, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

// UnaryOperation applies a prefix or postfix operator to one operand.
type UnaryOperation struct {
	base
	op      UnaryOperator
	operand Expr
}

func NewUnaryOperation(op UnaryOperator, operand Expr, meta Meta) *UnaryOperation {
	n := &UnaryOperation{base: base{meta: meta}, op: op, operand: operand}
	adopt(n, operand)
	return n
}

func (n *UnaryOperation) exprNode()               {}
func (n *UnaryOperation) Kind() Kind              { return KindUnaryOperation }
func (n *UnaryOperation) Source() string          { return source(n) }
func (n *UnaryOperation) Children() []Node        { return []Node{n.operand} }
func (n *UnaryOperation) Operator() UnaryOperator { return n.op }
func (n *UnaryOperation) Operand() Expr           { return n.operand }

func (n *UnaryOperation) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.operand, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *UnaryOperation) String() string {
	if n.op.IsPostfix() {
		return n.operand.String() + n.op.symbol()
	}
	return n.op.symbol() + n.operand.String()
}

// BinaryOperation applies an infix operator to two operands.
type BinaryOperation struct {
	base
	left  Expr
	op    BinaryOperator
	right Expr
}

func NewBinaryOperation(left Expr, op BinaryOperator, right Expr, meta Meta) *BinaryOperation {
	n := &BinaryOperation{base: base{meta: meta}, left: left, op: op, right: right}
	adopt(n, left)
	adopt(n, right)
	return n
}

func (n *BinaryOperation) exprNode()                {}
func (n *BinaryOperation) Kind() Kind               { return KindBinaryOperation }
func (n *BinaryOperation) Source() string           { return source(n) }
func (n *BinaryOperation) Children() []Node         { return []Node{n.left, n.right} }
func (n *BinaryOperation) Left() Expr               { return n.left }
func (n *BinaryOperation) Operator() BinaryOperator { return n.op }
func (n *BinaryOperation) Right() Expr              { return n.right }

func (n *BinaryOperation) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.left, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.right, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *BinaryOperation) String() string {
	return "(" + n.left.String() + " " + binarySymbols[n.op] + " " + n.right.String() + ")"
}

// TernaryOperation is condition ? whenTrue : whenFalse.
type TernaryOperation struct {
	base
	cond      Expr
	whenTrue  Expr
	whenFalse Expr
}

func NewTernaryOperation(cond, whenTrue, whenFalse Expr, meta Meta) *TernaryOperation {
	n := &TernaryOperation{base: base{meta: meta}, cond: cond, whenTrue: whenTrue, whenFalse: whenFalse}
	adopt(n, cond)
	adopt(n, whenTrue)
	adopt(n, whenFalse)
	return n
}

func (n *TernaryOperation) exprNode()        {}
func (n *TernaryOperation) Kind() Kind       { return KindTernaryOperation }
func (n *TernaryOperation) Source() string   { return source(n) }
func (n *TernaryOperation) Children() []Node { return []Node{n.cond, n.whenTrue, n.whenFalse} }
func (n *TernaryOperation) Condition() Expr  { return n.cond }
func (n *TernaryOperation) WhenTrue() Expr   { return n.whenTrue }
func (n *TernaryOperation) WhenFalse() Expr  { return n.whenFalse }

func (n *TernaryOperation) replaceChild(old, new Node) error {
	for _, slot := range []*Expr{&n.cond, &n.whenTrue, &n.whenFalse} {
		if found, err := swapExpr(n, slot, old, new); found {
			return err
		}
	}
	return errNotChild(n, old)
}

func (n *TernaryOperation) String() string {
	return "(" + n.cond.String() + " ? " + n.whenTrue.String() + " : " + n.whenFalse.String() + ")"
}

// FunctionInvocation calls a function by name. Arguments are either all
// positional or all named.
type FunctionInvocation struct {
	base
	name string
	args []*Argument
}

func NewFunctionInvocation(name string, args []*Argument, meta Meta) *FunctionInvocation {
	n := &FunctionInvocation{base: base{meta: meta}, name: name, args: args}
	adoptAll(n, args)
	return n
}

func (n *FunctionInvocation) exprNode()              {}
func (n *FunctionInvocation) Kind() Kind             { return KindFunctionInvocation }
func (n *FunctionInvocation) Source() string         { return source(n) }
func (n *FunctionInvocation) Name() string           { return n.name }
func (n *FunctionInvocation) Arguments() []*Argument { return n.args }

func (n *FunctionInvocation) Children() []Node {
	out := make([]Node, 0, len(n.args))
	for _, a := range n.args {
		out = append(out, a)
	}
	return out
}

func (n *FunctionInvocation) replaceChild(old, new Node) error {
	for i, a := range n.args {
		if Node(a) != old {
			continue
		}
		arg, ok := new.(*Argument)
		if !ok {
			return errSlot(n, new, "argument")
		}
		n.args[i] = arg
		return nil
	}
	return errNotChild(n, old)
}

func (n *FunctionInvocation) String() string {
	args := make([]string, 0, len(n.args))
	for _, a := range n.args {
		args = append(args, a.String())
	}
	return n.name + "(" + strings.Join(args, ", ") + ")"
}

// Argument is one call-site argument. Name is empty for positional arguments.
type Argument struct {
	base
	name  string
	value Expr
}

func NewArgument(name string, value Expr, meta Meta) *Argument {
	n := &Argument{base: base{meta: meta}, name: name, value: value}
	adopt(n, value)
	return n
}

func (n *Argument) Kind() Kind       { return KindArgument }
func (n *Argument) Source() string   { return source(n) }
func (n *Argument) Children() []Node { return []Node{n.value} }
func (n *Argument) Name() string     { return n.name }
func (n *Argument) Value() Expr      { return n.value }
func (n *Argument) IsNamed() bool    { return n.name != "" }

func (n *Argument) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.value, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *Argument) String() string {
	var out bytes.Buffer
	if n.name != "" {
		out.WriteString(n.name + "=")
	}
	out.WriteString(n.value.String())
	return out.String()
}
