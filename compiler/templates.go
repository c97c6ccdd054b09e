package compiler

import (
	"bytes"
	goast "go/ast"
	"go/parser"
	"go/printer"
	gotoken "go/token"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/internal/tmpl"
)

// Code templates. Every template renders either a single Go expression or a
// single Go statement. ${contextName} is bound to the execution context
// variable that is current when the template is rendered.
var (
	tplScope       = tmpl.MustParse(`${contextName}.Scope(${name})`)
	tplIdentGet    = tmpl.MustParse(`rt.Get(${contextName}.Lookup(${key}), ${key})`)
	tplIdentPut    = tmpl.MustParse(`rt.Put(${contextName}.Lookup(${key}), ${key})`)
	tplGet         = tmpl.MustParse(`rt.Get(${container}, ${key})`)
	tplPut         = tmpl.MustParse(`rt.Put(${container}, ${key})`)
	tplMutate      = tmpl.MustParse(`rt.${op}(${container}, ${key})`)
	tplNegate      = tmpl.MustParse(`rt.Negate(${operand})`)
	tplNumeric     = tmpl.MustParse(`rt.Numeric(${operand})`)
	tplNot         = tmpl.MustParse(`!${operand}`)
	tplBool        = tmpl.MustParse(`rt.Bool(${value})`)
	tplString      = tmpl.MustParse(`rt.String(${value})`)
	tplBinary      = tmpl.MustParse(`rt.${op}(${left}, ${right})`)
	tplLogical     = tmpl.MustParse(`(${left} ${op} ${right})`)
	tplTernary     = tmpl.MustParse(`rt.Ternary(${condition}, func() any { return ${whenTrue} }, func() any { return ${whenFalse} })`)
	tplCall        = tmpl.MustParse(`rt.${fn}(${values})`)
	tplInvoke      = tmpl.MustParse(`${contextName}.Invoke(${name}${args})`)
	tplInvokeNamed = tmpl.MustParse(`${contextName}.InvokeNamed(${name}, rt.Named{${args}})`)
	tplNamedArg    = tmpl.MustParse(`rt.NamedArg{Name: ${name}, Value: ${value}}`)
	tplParam       = tmpl.MustParse(`rt.NewParam(${required}, ${type}, ${name}${default})${options}`)
	tplLiteral     = tmpl.MustParse(`${value}`)
	tplTyped       = tmpl.MustParse(`${type}(${value})`)

	tplExprStmt   = tmpl.MustParse(`${expr}`)
	tplDiscard    = tmpl.MustParse(`_ = ${expr}`)
	tplAssign     = tmpl.MustParse(`${left}.Set(${right})`)
	tplReturn     = tmpl.MustParse(`return ${value}`)
	tplIf         = tmpl.MustParse("if ${condition} {\n${then}\n}")
	tplIfElse     = tmpl.MustParse("if ${condition} {\n${then}\n} else {\n${else}\n}")
	tplIfElseIf   = tmpl.MustParse("if ${condition} {\n${then}\n} else ${else}")
	tplWhile      = tmpl.MustParse("for ${condition} {\n${contextName}.Tick()\n${body}\n}")
	tplFor        = tmpl.MustParse("for ${init}; ${condition}; ${step} {\n${contextName}.Tick()\n${body}\n}")
	tplDefineFunc = tmpl.MustParse("${contextName}.DefineFunction(${name}, ${returnType}, []rt.Param{${params}}, func(${functionContext} *rt.Context) any {\n${body}\n})")
	tplProgram    = tmpl.MustParse("func(${contextName} *rt.Context) any {\n${body}\n}")
)

// bind renders tpl, supplying the current context variable name.
func (t *Transpiler) bind(origin ast.Node, tpl *tmpl.Template, bindings map[string]string) (string, error) {
	if bindings == nil {
		bindings = map[string]string{}
	}
	if _, ok := bindings["contextName"]; !ok {
		bindings["contextName"] = t.contextName()
	}
	code, err := tpl.Render(bindings)
	if err != nil {
		return "", t.synthesisError(origin, err)
	}
	return code, nil
}

// render synthesizes an expression fragment for origin.
func (t *Transpiler) render(origin ast.Node, tpl *tmpl.Template, bindings map[string]string) (*Fragment, error) {
	code, err := t.bind(origin, tpl, bindings)
	if err != nil {
		return nil, err
	}
	expr, err := parser.ParseExprFrom(t.fset, t.cfg.Filename, code, parser.SkipObjectResolution)
	if err != nil {
		return nil, t.synthesisError(origin, err)
	}
	return t.emit(&Fragment{Origin: origin, Node: expr, code: code}), nil
}

// renderStmt synthesizes a statement fragment for origin. The rendered text
// must hold exactly one statement.
func (t *Transpiler) renderStmt(origin ast.Node, tpl *tmpl.Template, bindings map[string]string) (*Fragment, error) {
	code, err := t.bind(origin, tpl, bindings)
	if err != nil {
		return nil, err
	}
	stmts, err := t.parseStmts(code)
	if err != nil {
		return nil, t.synthesisError(origin, err)
	}
	if len(stmts) != 1 {
		return nil, t.errorf(errors.E2002, origin, "template produced %d statements, want 1", len(stmts))
	}
	return t.emit(&Fragment{Origin: origin, Node: stmts[0], code: code}), nil
}

// parseStmts parses code as the body of a synthetic function.
func (t *Transpiler) parseStmts(code string) ([]goast.Stmt, error) {
	src := "package p\nfunc _() {\n" + code + "\n}\n"
	file, err := parser.ParseFile(t.fset, t.cfg.Filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	return file.Decls[0].(*goast.FuncDecl).Body.List, nil
}

func (t *Transpiler) emit(f *Fragment) *Fragment {
	t.trace = append(t.trace, f)
	t.cfg.Observer.OnFragment(f)
	return f
}

func (t *Transpiler) synthesisError(origin ast.Node, err error) *errors.CompileError {
	e := t.errorf(errors.E2002, origin, "cannot synthesize code for %s", origin.Kind())
	e.Err = err
	return e
}

// nodeText prints a parsed Go node back to source text.
func nodeText(n goast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, gotoken.NewFileSet(), n); err != nil {
		return ""
	}
	return buf.String()
}
