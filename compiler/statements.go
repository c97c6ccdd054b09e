package compiler

import (
	goast "go/ast"
	"sort"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

// transformProgram renders a whole program as a function literal taking the
// unit context.
func transformProgram(t *Transpiler, n *ast.Program, _ Context) (*Fragment, error) {
	body, err := t.functionBody(n.Statements())
	if err != nil {
		return nil, err
	}
	return t.render(n, tplProgram, map[string]string{"body": body})
}

func transformExpressionStatement(t *Transpiler, n *ast.ExpressionStatement, _ Context) (*Fragment, error) {
	frag, err := t.expr(n.Expression(), Right)
	if err != nil {
		return nil, err
	}
	return t.exprStmt(n, frag)
}

// exprStmt turns an expression fragment into a statement. Go only allows
// calls to stand alone, so other values are assigned to the blank
// identifier.
func (t *Transpiler) exprStmt(origin ast.Node, frag *Fragment) (*Fragment, error) {
	tpl := tplDiscard
	if _, ok := frag.Node.(*goast.CallExpr); ok {
		tpl = tplExprStmt
	}
	return t.renderStmt(origin, tpl, map[string]string{"expr": frag.code})
}

func transformAssignment(t *Transpiler, n *ast.Assignment, _ Context) (*Fragment, error) {
	left, err := t.expr(n.Left(), Left)
	if err != nil {
		return nil, err
	}
	if _, ok := left.isCall("Put"); !ok {
		return nil, t.errorf(errors.E2003, n.Left(), "cannot assign to %s", n.Left())
	}
	right, err := t.expr(n.Right(), Right)
	if err != nil {
		return nil, err
	}
	return t.renderStmt(n, tplAssign, map[string]string{"left": left.code, "right": right.code})
}

func transformIfElse(t *Transpiler, n *ast.IfElse, _ Context) (*Fragment, error) {
	cond, err := t.condition(n.Condition())
	if err != nil {
		return nil, err
	}
	then, err := t.block(n.ThenBody())
	if err != nil {
		return nil, err
	}
	bindings := map[string]string{"condition": cond, "then": then}
	elseBody := n.ElseBody()
	switch {
	case len(elseBody) == 0:
		return t.renderStmt(n, tplIf, bindings)
	case len(elseBody) == 1 && elseBody[0].Kind() == ast.KindIfElse:
		elseIf, err := t.transform(elseBody[0], None)
		if err != nil {
			return nil, err
		}
		bindings["else"] = elseIf.code
		return t.renderStmt(n, tplIfElseIf, bindings)
	}
	block, err := t.block(elseBody)
	if err != nil {
		return nil, err
	}
	bindings["else"] = block
	return t.renderStmt(n, tplIfElse, bindings)
}

func transformWhile(t *Transpiler, n *ast.While, _ Context) (*Fragment, error) {
	cond, err := t.condition(n.Condition())
	if err != nil {
		return nil, err
	}
	body, err := t.block(n.Body())
	if err != nil {
		return nil, err
	}
	return t.renderStmt(n, tplWhile, map[string]string{"condition": cond, "body": body})
}

func transformFor(t *Transpiler, n *ast.For, _ Context) (*Fragment, error) {
	var init, cond, step string
	if n.Init() != nil {
		frag, err := t.statement(n.Init())
		if err != nil {
			return nil, err
		}
		init = frag.code
	}
	if n.Condition() != nil {
		var err error
		if cond, err = t.condition(n.Condition()); err != nil {
			return nil, err
		}
	}
	if n.Step() != nil {
		frag, err := t.expr(n.Step(), Right)
		if err != nil {
			return nil, err
		}
		if frag, err = t.exprStmt(n.Step(), frag); err != nil {
			return nil, err
		}
		step = frag.code
	}
	body, err := t.block(n.Body())
	if err != nil {
		return nil, err
	}
	return t.renderStmt(n, tplFor, map[string]string{
		"init":      init,
		"condition": cond,
		"step":      step,
		"body":      body,
	})
}

func transformReturn(t *Transpiler, n *ast.Return, _ Context) (*Fragment, error) {
	value := "nil"
	if n.Expression() != nil {
		frag, err := t.expr(n.Expression(), Right)
		if err != nil {
			return nil, err
		}
		value = frag.code
	}
	return t.renderStmt(n, tplReturn, map[string]string{"value": value})
}

// transformFunctionDeclaration defines the function in the current context.
// Parameter defaults are rendered in the declaring context, so they are
// evaluated once when the declaration runs. The body is rendered against a
// new context name.
func transformFunctionDeclaration(t *Transpiler, n *ast.FunctionDeclaration, _ Context) (*Fragment, error) {
	params := make([]string, 0, len(n.Arguments()))
	for _, a := range n.Arguments() {
		frag, err := t.expr(a, None)
		if err != nil {
			return nil, err
		}
		params = append(params, frag.code)
	}
	fctx := t.pushScope()
	body, err := t.functionBody(n.Body())
	t.popScope()
	if err != nil {
		return nil, err
	}
	return t.renderStmt(n, tplDefineFunc, map[string]string{
		"name":            strconv.Quote(n.Name()),
		"returnType":      strconv.Quote(n.ReturnType()),
		"params":          strings.Join(params, ", "),
		"functionContext": fctx,
		"body":            body,
	})
}

func transformArgumentDeclaration(t *Transpiler, n *ast.ArgumentDeclaration, _ Context) (*Fragment, error) {
	var def string
	if n.Default() != nil {
		frag, err := t.expr(n.Default(), Right)
		if err != nil {
			return nil, err
		}
		def = ", " + frag.code
	}
	var options strings.Builder
	if n.Hint() != "" {
		options.WriteString(".WithHint(" + strconv.Quote(n.Hint()) + ")")
	}
	meta := n.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		options.WriteString(".WithMetadata(" + strconv.Quote(k) + ", " + strconv.Quote(meta[k]) + ")")
	}
	return t.render(n, tplParam, map[string]string{
		"required": strconv.FormatBool(n.Required()),
		"type":     strconv.Quote(n.Type()),
		"name":     strconv.Quote(n.Name()),
		"default":  def,
		"options":  options.String(),
	})
}

// block renders a statement list, one statement per line.
func (t *Transpiler) block(stmts []ast.Stmt) (string, error) {
	lines := make([]string, 0, len(stmts))
	for _, s := range stmts {
		frag, err := t.statement(s)
		if err != nil {
			return "", err
		}
		lines = append(lines, frag.code)
	}
	return strings.Join(lines, "\n"), nil
}

// functionBody renders a block that must end in a return statement.
func (t *Transpiler) functionBody(stmts []ast.Stmt) (string, error) {
	body, err := t.block(stmts)
	if err != nil {
		return "", err
	}
	if endsInReturn(stmts) {
		return body, nil
	}
	if body == "" {
		return "return nil", nil
	}
	return body + "\nreturn nil", nil
}

func endsInReturn(stmts []ast.Stmt) bool {
	return len(stmts) > 0 && stmts[len(stmts)-1].Kind() == ast.KindReturn
}
