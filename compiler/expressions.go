package compiler

import (
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

func transformScope(t *Transpiler, n *ast.Scope, _ Context) (*Fragment, error) {
	return t.render(n, tplScope, map[string]string{"name": strconv.Quote(n.Name())})
}

func transformIdentifier(t *Transpiler, n *ast.Identifier, ctx Context) (*Fragment, error) {
	tpl := tplIdentGet
	if ctx == Left {
		tpl = tplIdentPut
	}
	return t.render(n, tpl, map[string]string{"key": strconv.Quote(n.Name())})
}

// transformObjectAccess handles dotted access. Only a scope may head a chain:
//
//	scope.a      reads or writes key a of the scope
//	scope.a.b    reads or writes key b of scope.a
//	a.b          yields the key pair (a, b) for the enclosing scope access
//
// Everything else is an illegal access chain.
func transformObjectAccess(t *Transpiler, n *ast.ObjectAccess, ctx Context) (*Fragment, error) {
	switch head := n.Context().(type) {
	case *ast.Scope:
		scope, err := t.expr(head, Right)
		if err != nil {
			return nil, err
		}
		switch access := n.Access().(type) {
		case *ast.Identifier:
			return t.storage(n, scope.code, strconv.Quote(access.Name()), ctx)
		case *ast.ObjectAccess:
			pair, err := t.transform(access, ctx)
			if err != nil {
				return nil, err
			}
			if !pair.IsKeyPair() {
				return nil, t.illegalAccess(n)
			}
			outer, err := t.render(access, tplGet, map[string]string{
				"container": scope.code,
				"key":       strconv.Quote(pair.keys[0]),
			})
			if err != nil {
				return nil, err
			}
			return t.storage(n, outer.code, strconv.Quote(pair.keys[1]), ctx)
		}
	case *ast.Identifier:
		if access, ok := n.Access().(*ast.Identifier); ok {
			return &Fragment{Origin: n, keys: []string{head.Name(), access.Name()}}, nil
		}
	}
	return nil, t.illegalAccess(n)
}

func transformArrayAccess(t *Transpiler, n *ast.ArrayAccess, ctx Context) (*Fragment, error) {
	container, err := t.expr(n.Context(), Right)
	if err != nil {
		return nil, err
	}
	key, err := t.expr(n.Index(), Right)
	if err != nil {
		return nil, err
	}
	return t.storage(n, container.code, key.code, ctx)
}

// storage renders a read of key in container, or a reference to it when the
// node is an assignment target.
func (t *Transpiler) storage(origin ast.Node, container, key string, ctx Context) (*Fragment, error) {
	tpl := tplGet
	if ctx == Left {
		tpl = tplPut
	}
	return t.render(origin, tpl, map[string]string{"container": container, "key": key})
}

var mutators = map[ast.UnaryOperator]string{
	ast.PrePlusPlus:    "IncrementPre",
	ast.PostPlusPlus:   "IncrementPost",
	ast.PreMinusMinus:  "DecrementPre",
	ast.PostMinusMinus: "DecrementPost",
}

func transformUnaryOperation(t *Transpiler, n *ast.UnaryOperation, _ Context) (*Fragment, error) {
	op := n.Operator()
	if op.Mutates() {
		operand, err := t.expr(n.Operand(), Right)
		if err != nil {
			return nil, err
		}
		// The operand must be a storage read; its container and key are
		// handed to the runtime so the new value can be written back.
		call, ok := operand.isCall("Get")
		if !ok || len(call.Args) != 2 {
			return nil, t.errorf(errors.E2003, n, "%s needs a variable operand, got %s", op, n.Operand())
		}
		return t.render(n, tplMutate, map[string]string{
			"op":        mutators[op],
			"container": nodeText(call.Args[0]),
			"key":       nodeText(call.Args[1]),
		})
	}
	switch op {
	case ast.Minus, ast.Plus:
		operand, err := t.expr(n.Operand(), Right)
		if err != nil {
			return nil, err
		}
		tpl := tplNegate
		if op == ast.Plus {
			tpl = tplNumeric
		}
		return t.render(n, tpl, map[string]string{"operand": operand.code})
	case ast.Not:
		cond, err := t.condition(n.Operand())
		if err != nil {
			return nil, err
		}
		return t.render(n, tplNot, map[string]string{"operand": cond})
	}
	return nil, t.errorf(errors.E2001, n, "unsupported unary operator %s", op)
}

var binaryFuncs = map[ast.BinaryOperator]string{
	ast.Add:               "Add",
	ast.Subtract:          "Sub",
	ast.Multiply:          "Mul",
	ast.Divide:            "Div",
	ast.Modulo:            "Mod",
	ast.Concat:            "Concat",
	ast.Equal:             "Equal",
	ast.NotEqual:          "NotEqual",
	ast.LessThan:          "LessThan",
	ast.LessThanEquals:    "LessThanEquals",
	ast.GreaterThan:       "GreaterThan",
	ast.GreaterThanEquals: "GreaterThanEquals",
}

func transformBinaryOperation(t *Transpiler, n *ast.BinaryOperation, _ Context) (*Fragment, error) {
	op := n.Operator()
	if op.IsLogical() {
		left, err := t.condition(n.Left())
		if err != nil {
			return nil, err
		}
		right, err := t.condition(n.Right())
		if err != nil {
			return nil, err
		}
		symbol := "&&"
		if op == ast.Or {
			symbol = "||"
		}
		return t.render(n, tplLogical, map[string]string{"left": left, "op": symbol, "right": right})
	}
	name, ok := binaryFuncs[op]
	if !ok {
		return nil, t.errorf(errors.E2001, n, "unsupported binary operator %s", op)
	}
	left, err := t.expr(n.Left(), Right)
	if err != nil {
		return nil, err
	}
	right, err := t.expr(n.Right(), Right)
	if err != nil {
		return nil, err
	}
	return t.render(n, tplBinary, map[string]string{"op": name, "left": left.code, "right": right.code})
}

func transformTernaryOperation(t *Transpiler, n *ast.TernaryOperation, _ Context) (*Fragment, error) {
	cond, err := t.condition(n.Condition())
	if err != nil {
		return nil, err
	}
	whenTrue, err := t.expr(n.WhenTrue(), Right)
	if err != nil {
		return nil, err
	}
	whenFalse, err := t.expr(n.WhenFalse(), Right)
	if err != nil {
		return nil, err
	}
	return t.render(n, tplTernary, map[string]string{
		"condition": cond,
		"whenTrue":  whenTrue.code,
		"whenFalse": whenFalse.code,
	})
}

// condition renders node as a Go bool. Nodes that already produce one are
// used as they are; everything else is cast with rt.Bool.
func (t *Transpiler) condition(node ast.Node) (string, error) {
	frag, err := t.expr(node, Right)
	if err != nil {
		return "", err
	}
	if isBoolean(node) {
		return frag.code, nil
	}
	cast, err := t.render(node, tplBool, map[string]string{"value": frag.code})
	if err != nil {
		return "", err
	}
	return cast.code, nil
}

// isBoolean reports whether node renders to a Go bool.
func isBoolean(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.BooleanLiteral:
		return true
	case *ast.BinaryOperation:
		return n.Operator().IsComparison() || n.Operator().IsLogical()
	case *ast.UnaryOperation:
		return n.Operator() == ast.Not
	}
	return false
}

func transformFunctionInvocation(t *Transpiler, n *ast.FunctionInvocation, _ Context) (*Fragment, error) {
	args := n.Arguments()
	named := 0
	for _, a := range args {
		if a.IsNamed() {
			named++
		}
	}
	if named > 0 && named < len(args) {
		return nil, t.errorf(errors.E2004, n, "cannot mix positional and named arguments in call to %s", n.Name())
	}
	codes := make([]string, 0, len(args))
	for _, a := range args {
		frag, err := t.expr(a, Right)
		if err != nil {
			return nil, err
		}
		codes = append(codes, frag.code)
	}
	name := strconv.Quote(n.Name())
	if named > 0 {
		return t.render(n, tplInvokeNamed, map[string]string{"name": name, "args": strings.Join(codes, ", ")})
	}
	var list string
	if len(codes) > 0 {
		list = ", " + strings.Join(codes, ", ")
	}
	return t.render(n, tplInvoke, map[string]string{"name": name, "args": list})
}

func transformArgument(t *Transpiler, n *ast.Argument, _ Context) (*Fragment, error) {
	value, err := t.expr(n.Value(), Right)
	if err != nil {
		return nil, err
	}
	if !n.IsNamed() {
		return value, nil
	}
	return t.render(n, tplNamedArg, map[string]string{
		"name":  strconv.Quote(n.Name()),
		"value": value.code,
	})
}
