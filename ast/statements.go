package ast

import (
	"bytes"
	"strings"
)

// Program is the root of a compilation unit.
type Program struct {
	base
	stmts []Stmt
}

// NewProgram creates a Program owning the given top-level statements.
func NewProgram(stmts []Stmt, meta Meta) *Program {
	n := &Program{base: base{meta: meta}, stmts: stmts}
	adoptAll(n, stmts)
	return n
}

func (n *Program) Kind() Kind         { return KindProgram }
func (n *Program) Source() string     { return source(n) }
func (n *Program) Children() []Node   { return stmtNodes(n.stmts) }
func (n *Program) Statements() []Stmt { return n.stmts }

func (n *Program) replaceChild(old, new Node) error {
	if found, err := swapStmtIn(n, n.stmts, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *Program) String() string {
	return joinStmts(n.stmts, "\n")
}

// ExpressionStatement evaluates an expression and discards its value.
type ExpressionStatement struct {
	base
	expr Expr
}

func NewExpressionStatement(expr Expr, meta Meta) *ExpressionStatement {
	n := &ExpressionStatement{base: base{meta: meta}, expr: expr}
	adopt(n, expr)
	return n
}

func (n *ExpressionStatement) stmtNode()        {}
func (n *ExpressionStatement) Kind() Kind       { return KindExpressionStatement }
func (n *ExpressionStatement) Source() string   { return source(n) }
func (n *ExpressionStatement) Children() []Node { return []Node{n.expr} }
func (n *ExpressionStatement) Expression() Expr { return n.expr }
func (n *ExpressionStatement) String() string   { return n.expr.String() }

func (n *ExpressionStatement) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.expr, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

// Assignment stores the value of Right into the location named by Left.
type Assignment struct {
	base
	left  Expr
	right Expr
}

func NewAssignment(left, right Expr, meta Meta) *Assignment {
	n := &Assignment{base: base{meta: meta}, left: left, right: right}
	adopt(n, left)
	adopt(n, right)
	return n
}

func (n *Assignment) stmtNode()        {}
func (n *Assignment) Kind() Kind       { return KindAssignment }
func (n *Assignment) Source() string   { return source(n) }
func (n *Assignment) Children() []Node { return []Node{n.left, n.right} }
func (n *Assignment) Left() Expr       { return n.left }
func (n *Assignment) Right() Expr      { return n.right }
func (n *Assignment) String() string   { return n.left.String() + " = " + n.right.String() }

func (n *Assignment) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.left, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.right, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

// IfElse is a conditional statement with an optional else body.
type IfElse struct {
	base
	cond     Expr
	thenBody []Stmt
	elseBody []Stmt
}

func NewIfElse(cond Expr, thenBody, elseBody []Stmt, meta Meta) *IfElse {
	n := &IfElse{base: base{meta: meta}, cond: cond, thenBody: thenBody, elseBody: elseBody}
	adopt(n, cond)
	adoptAll(n, thenBody)
	adoptAll(n, elseBody)
	return n
}

func (n *IfElse) stmtNode()        {}
func (n *IfElse) Kind() Kind       { return KindIfElse }
func (n *IfElse) Source() string   { return source(n) }
func (n *IfElse) Condition() Expr  { return n.cond }
func (n *IfElse) ThenBody() []Stmt { return n.thenBody }
func (n *IfElse) ElseBody() []Stmt { return n.elseBody }

func (n *IfElse) Children() []Node {
	out := []Node{n.cond}
	out = append(out, stmtNodes(n.thenBody)...)
	return append(out, stmtNodes(n.elseBody)...)
}

func (n *IfElse) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.cond, old, new); found {
		return err
	}
	if found, err := swapStmtIn(n, n.thenBody, old, new); found {
		return err
	}
	if found, err := swapStmtIn(n, n.elseBody, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *IfElse) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(n.cond.String())
	out.WriteString(") { ")
	out.WriteString(joinStmts(n.thenBody, "; "))
	out.WriteString(" }")
	if len(n.elseBody) > 0 {
		out.WriteString(" else { ")
		out.WriteString(joinStmts(n.elseBody, "; "))
		out.WriteString(" }")
	}
	return out.String()
}

// While repeats its body while the condition holds.
type While struct {
	base
	cond Expr
	body []Stmt
}

func NewWhile(cond Expr, body []Stmt, meta Meta) *While {
	n := &While{base: base{meta: meta}, cond: cond, body: body}
	adopt(n, cond)
	adoptAll(n, body)
	return n
}

func (n *While) stmtNode()       {}
func (n *While) Kind() Kind      { return KindWhile }
func (n *While) Source() string  { return source(n) }
func (n *While) Condition() Expr { return n.cond }
func (n *While) Body() []Stmt    { return n.body }

func (n *While) Children() []Node {
	return append([]Node{n.cond}, stmtNodes(n.body)...)
}

func (n *While) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.cond, old, new); found {
		return err
	}
	if found, err := swapStmtIn(n, n.body, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *While) String() string {
	return "while (" + n.cond.String() + ") { " + joinStmts(n.body, "; ") + " }"
}

// For is a C-style loop. Any of init, cond and step may be nil.
type For struct {
	base
	init Stmt
	cond Expr
	step Expr
	body []Stmt
}

func NewFor(init Stmt, cond, step Expr, body []Stmt, meta Meta) *For {
	n := &For{base: base{meta: meta}, init: init, cond: cond, step: step, body: body}
	adopt(n, init)
	adopt(n, cond)
	adopt(n, step)
	adoptAll(n, body)
	return n
}

func (n *For) stmtNode()       {}
func (n *For) Kind() Kind      { return KindFor }
func (n *For) Source() string  { return source(n) }
func (n *For) Init() Stmt      { return n.init }
func (n *For) Condition() Expr { return n.cond }
func (n *For) Step() Expr      { return n.step }
func (n *For) Body() []Stmt    { return n.body }

func (n *For) Children() []Node {
	out := appendNonNil(nil, n.init, n.cond, n.step)
	return append(out, stmtNodes(n.body)...)
}

func (n *For) replaceChild(old, new Node) error {
	if found, err := swapStmt(n, &n.init, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.cond, old, new); found {
		return err
	}
	if found, err := swapExpr(n, &n.step, old, new); found {
		return err
	}
	if found, err := swapStmtIn(n, n.body, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *For) String() string {
	var parts [3]string
	if n.init != nil {
		parts[0] = n.init.String()
	}
	if n.cond != nil {
		parts[1] = n.cond.String()
	}
	if n.step != nil {
		parts[2] = n.step.String()
	}
	return "for (" + strings.Join(parts[:], "; ") + ") { " + joinStmts(n.body, "; ") + " }"
}

// FunctionDeclaration declares a named user function.
type FunctionDeclaration struct {
	base
	name       string
	args       []*ArgumentDeclaration
	body       []Stmt
	returnType string
}

func NewFunctionDeclaration(name string, args []*ArgumentDeclaration, body []Stmt, returnType string, meta Meta) *FunctionDeclaration {
	n := &FunctionDeclaration{base: base{meta: meta}, name: name, args: args, body: body, returnType: returnType}
	adoptAll(n, args)
	adoptAll(n, body)
	return n
}

func (n *FunctionDeclaration) stmtNode()                         {}
func (n *FunctionDeclaration) Kind() Kind                        { return KindFunctionDeclaration }
func (n *FunctionDeclaration) Source() string                    { return source(n) }
func (n *FunctionDeclaration) Name() string                      { return n.name }
func (n *FunctionDeclaration) Arguments() []*ArgumentDeclaration { return n.args }
func (n *FunctionDeclaration) Body() []Stmt                      { return n.body }
func (n *FunctionDeclaration) ReturnType() string                { return n.returnType }

func (n *FunctionDeclaration) Children() []Node {
	out := make([]Node, 0, len(n.args)+len(n.body))
	for _, a := range n.args {
		out = append(out, a)
	}
	return append(out, stmtNodes(n.body)...)
}

func (n *FunctionDeclaration) replaceChild(old, new Node) error {
	for i, a := range n.args {
		if Node(a) != old {
			continue
		}
		decl, ok := new.(*ArgumentDeclaration)
		if !ok {
			return errSlot(n, new, "argument declaration")
		}
		n.args[i] = decl
		return nil
	}
	if found, err := swapStmtIn(n, n.body, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *FunctionDeclaration) String() string {
	args := make([]string, 0, len(n.args))
	for _, a := range n.args {
		args = append(args, a.String())
	}
	return "function " + n.name + "(" + strings.Join(args, ", ") + ") { " + joinStmts(n.body, "; ") + " }"
}

// ArgumentDeclaration declares one parameter of a FunctionDeclaration.
type ArgumentDeclaration struct {
	base
	required bool
	typ      string
	name     string
	def      Expr
	hint     string
	metadata map[string]string
}

func NewArgumentDeclaration(required bool, typ, name string, def Expr, hint string, metadata map[string]string, meta Meta) *ArgumentDeclaration {
	if typ == "" {
		typ = "any"
	}
	n := &ArgumentDeclaration{
		base:     base{meta: meta},
		required: required,
		typ:      typ,
		name:     name,
		def:      def,
		hint:     hint,
		metadata: metadata,
	}
	adopt(n, def)
	return n
}

func (n *ArgumentDeclaration) Kind() Kind                  { return KindArgumentDeclaration }
func (n *ArgumentDeclaration) Source() string              { return source(n) }
func (n *ArgumentDeclaration) Children() []Node            { return appendNonNil(nil, n.def) }
func (n *ArgumentDeclaration) Required() bool              { return n.required }
func (n *ArgumentDeclaration) Type() string                { return n.typ }
func (n *ArgumentDeclaration) Name() string                { return n.name }
func (n *ArgumentDeclaration) Default() Expr               { return n.def }
func (n *ArgumentDeclaration) Hint() string                { return n.hint }
func (n *ArgumentDeclaration) Metadata() map[string]string { return n.metadata }

func (n *ArgumentDeclaration) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.def, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *ArgumentDeclaration) String() string {
	var out bytes.Buffer
	if n.required {
		out.WriteString("required ")
	}
	out.WriteString(n.typ + " " + n.name)
	if n.def != nil {
		out.WriteString(" = " + n.def.String())
	}
	return out.String()
}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	base
	expr Expr
}

func NewReturn(expr Expr, meta Meta) *Return {
	n := &Return{base: base{meta: meta}, expr: expr}
	adopt(n, expr)
	return n
}

func (n *Return) stmtNode()        {}
func (n *Return) Kind() Kind       { return KindReturn }
func (n *Return) Source() string   { return source(n) }
func (n *Return) Children() []Node { return appendNonNil(nil, n.expr) }
func (n *Return) Expression() Expr { return n.expr }

func (n *Return) replaceChild(old, new Node) error {
	if found, err := swapExpr(n, &n.expr, old, new); found {
		return err
	}
	return errNotChild(n, old)
}

func (n *Return) String() string {
	if n.expr == nil {
		return "return"
	}
	return "return " + n.expr.String()
}

func joinStmts(stmts []Stmt, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}
