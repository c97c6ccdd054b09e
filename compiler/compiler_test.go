package compiler

import (
	"bytes"
	goparser "go/parser"
	gotoken "go/token"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

var m ast.Meta

func ident(name string) *ast.Identifier    { return ast.NewIdentifier(name, m) }
func scope(name string) *ast.Scope         { return ast.NewScope(name, m) }
func str(v string) *ast.StringLiteral      { return ast.NewStringLiteral(v, m) }
func integer(v string) *ast.IntegerLiteral { return ast.NewIntegerLiteral(v, m) }

func access(context, access ast.Expr) *ast.ObjectAccess {
	return ast.NewObjectAccess(context, access, m)
}

func binary(left ast.Expr, op ast.BinaryOperator, right ast.Expr) *ast.BinaryOperation {
	return ast.NewBinaryOperation(left, op, right, m)
}

func call(name string, args ...*ast.Argument) *ast.ExpressionStatement {
	return ast.NewExpressionStatement(ast.NewFunctionInvocation(name, args, m), m)
}

func arg(name string, value ast.Expr) *ast.Argument {
	return ast.NewArgument(name, value, m)
}

func code(t *testing.T, node ast.Node, ctx Context) string {
	t.Helper()
	frag, err := New(Config{}).Transform(node, ctx)
	require.NoError(t, err)
	return frag.Code()
}

func compileError(t *testing.T, node ast.Node) *errors.CompileError {
	t.Helper()
	_, err := Transpile(node, Config{Filename: "test.box"})
	require.Error(t, err)
	var ce *errors.CompileError
	require.ErrorAs(t, err, &ce)
	return ce
}

func TestEveryKindHasTransformer(t *testing.T) {
	for _, k := range ast.Kinds() {
		require.True(t, Supports(k), "no transformer for %s", k)
	}
	require.False(t, Supports(ast.KindInvalid))
	require.False(t, Supports(ast.KindCount))
}

func TestContextString(t *testing.T) {
	require.Equal(t, "None", None.String())
	require.Equal(t, "Left", Left.String())
	require.Equal(t, "Right", Right.String())
}

func TestIdentifier(t *testing.T) {
	require.Equal(t, `rt.Get(ctx.Lookup("x"), "x")`, code(t, ident("x"), Right))
	require.Equal(t, `rt.Put(ctx.Lookup("x"), "x")`, code(t, ident("x"), Left))
	require.Equal(t, `ctx.Scope("variables")`, code(t, scope("variables"), Right))
}

func TestScopeAccess(t *testing.T) {
	require.Equal(t, `rt.Get(ctx.Scope("variables"), "a")`,
		code(t, access(scope("variables"), ident("a")), Right))
	require.Equal(t, `rt.Put(ctx.Scope("variables"), "a")`,
		code(t, access(scope("variables"), ident("a")), Left))
}

func TestNestedScopeAccess(t *testing.T) {
	node := func() ast.Node { return access(scope("variables"), access(ident("a"), ident("b"))) }
	require.Equal(t, `rt.Get(rt.Get(ctx.Scope("variables"), "a"), "b")`, code(t, node(), Right))
	require.Equal(t, `rt.Put(rt.Get(ctx.Scope("variables"), "a"), "b")`, code(t, node(), Left))
}

func TestKeyPair(t *testing.T) {
	frag, err := New(Config{}).Transform(access(ident("a"), ident("b")), Right)
	require.NoError(t, err)
	require.True(t, frag.IsKeyPair())
	require.Equal(t, []string{"a", "b"}, frag.Keys())
	require.Nil(t, frag.Node)
}

func TestIllegalAccessChains(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
	}{
		{"bare key pair", ast.NewExpressionStatement(access(ident("a"), ident("b")), m)},
		{"too deep", ast.NewExpressionStatement(
			access(scope("variables"), access(ident("a"), access(ident("b"), ident("c")))), m)},
		{"literal key", ast.NewExpressionStatement(access(scope("variables"), str("a")), m)},
		{"call head", ast.NewExpressionStatement(
			access(ast.NewFunctionInvocation("f", nil, m), ident("a")), m)},
		{"key pair as argument", call("f", arg("", access(ident("a"), ident("b"))))},
		{"assign to literal", ast.NewAssignment(integer("1"), integer("2"), m)},
		{"increment literal", ast.NewExpressionStatement(
			ast.NewUnaryOperation(ast.PostPlusPlus, integer("1"), m), m)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := compileError(t, tt.node)
			require.Equal(t, errors.E2003, ce.Code)
			require.Equal(t, "test.box", ce.Filename)
		})
	}
}

func TestIncrementDecrement(t *testing.T) {
	tests := []struct {
		op   ast.UnaryOperator
		want string
	}{
		{ast.PostPlusPlus, `rt.IncrementPost(ctx.Lookup("x"), "x")`},
		{ast.PrePlusPlus, `rt.IncrementPre(ctx.Lookup("x"), "x")`},
		{ast.PostMinusMinus, `rt.DecrementPost(ctx.Lookup("x"), "x")`},
		{ast.PreMinusMinus, `rt.DecrementPre(ctx.Lookup("x"), "x")`},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			require.Equal(t, tt.want, code(t, ast.NewUnaryOperation(tt.op, ident("x"), m), Right))
		})
	}
	nested := ast.NewUnaryOperation(ast.PrePlusPlus,
		access(scope("variables"), access(ident("a"), ident("b"))), m)
	require.Equal(t, `rt.IncrementPre(rt.Get(ctx.Scope("variables"), "a"), "b")`, code(t, nested, Right))
}

func TestOtherUnaryOperators(t *testing.T) {
	require.Equal(t, `rt.Negate(int64(1))`,
		code(t, ast.NewUnaryOperation(ast.Minus, integer("1"), m), Right))
	require.Equal(t, `rt.Numeric("2")`,
		code(t, ast.NewUnaryOperation(ast.Plus, str("2"), m), Right))
	require.Equal(t, `!rt.Bool(rt.Get(ctx.Lookup("b"), "b"))`,
		code(t, ast.NewUnaryOperation(ast.Not, ident("b"), m), Right))
	require.Equal(t, `!true`,
		code(t, ast.NewUnaryOperation(ast.Not, ast.NewBooleanLiteral("TRUE", m), m), Right))
}

func TestBinaryOperations(t *testing.T) {
	require.Equal(t, `rt.Add(int64(1), int64(2))`, code(t, binary(integer("1"), ast.Add, integer("2")), Right))
	require.Equal(t, `rt.Concat("a", "b")`, code(t, binary(str("a"), ast.Concat, str("b")), Right))
	require.Equal(t, `rt.LessThanEquals(int64(1), int64(2))`,
		code(t, binary(integer("1"), ast.LessThanEquals, integer("2")), Right))
	require.Equal(t, `(rt.Bool(rt.Get(ctx.Lookup("a"), "a")) || rt.Equal(int64(1), int64(1)))`,
		code(t, binary(ident("a"), ast.Or, binary(integer("1"), ast.Equal, integer("1"))), Right))
}

func TestIfElseIf(t *testing.T) {
	inner := ast.NewIfElse(ident("x"), []ast.Stmt{call("g")}, nil, m)
	node := ast.NewIfElse(ast.NewBooleanLiteral("true", m), []ast.Stmt{call("f")}, []ast.Stmt{inner}, m)
	want := "if true {\nctx.Invoke(\"f\")\n} else if rt.Bool(rt.Get(ctx.Lookup(\"x\"), \"x\")) {\nctx.Invoke(\"g\")\n}"
	require.Equal(t, want, code(t, node, None))
}

func TestIfElse(t *testing.T) {
	node := ast.NewIfElse(binary(integer("1"), ast.GreaterThan, integer("2")),
		[]ast.Stmt{call("f")}, []ast.Stmt{call("g"), call("h")}, m)
	want := "if rt.GreaterThan(int64(1), int64(2)) {\nctx.Invoke(\"f\")\n} else {\nctx.Invoke(\"g\")\nctx.Invoke(\"h\")\n}"
	require.Equal(t, want, code(t, node, None))

	bare := ast.NewIfElse(ident("x"), []ast.Stmt{call("f")}, nil, m)
	require.NotContains(t, code(t, bare, None), "else")
}

func TestLoops(t *testing.T) {
	while := ast.NewWhile(ast.NewBooleanLiteral("false", m), []ast.Stmt{call("f")}, m)
	require.Equal(t, "for false {\nctx.Tick()\nctx.Invoke(\"f\")\n}", code(t, while, None))

	loop := ast.NewFor(
		ast.NewAssignment(ident("i"), integer("1"), m),
		binary(ident("i"), ast.LessThanEquals, integer("3")),
		ast.NewUnaryOperation(ast.PostPlusPlus, ident("i"), m),
		[]ast.Stmt{call("f", arg("", ident("i")))}, m)
	want := "for rt.Put(ctx.Lookup(\"i\"), \"i\").Set(int64(1)); " +
		"rt.LessThanEquals(rt.Get(ctx.Lookup(\"i\"), \"i\"), int64(3)); " +
		"rt.IncrementPost(ctx.Lookup(\"i\"), \"i\") {\n" +
		"ctx.Tick()\n" +
		"ctx.Invoke(\"f\", rt.Get(ctx.Lookup(\"i\"), \"i\"))\n}"
	require.Equal(t, want, code(t, loop, None))

	forever := ast.NewFor(nil, nil, nil, nil, m)
	frag, err := New(Config{}).Transform(forever, None)
	require.NoError(t, err)
	_, ok := frag.Stmt()
	require.True(t, ok)
}

func TestStringInterpolation(t *testing.T) {
	node := ast.NewStringInterpolation([]ast.Expr{str("Hello "), ident("name"), str("!")}, m)
	require.Equal(t, `"Hello " + rt.String(rt.Get(ctx.Lookup("name"), "name")) + "!"`, code(t, node, Right))
	require.Equal(t, `""`, code(t, ast.NewStringInterpolation(nil, m), Right))
}

func TestTernary(t *testing.T) {
	node := ast.NewTernaryOperation(binary(ident("x"), ast.GreaterThan, integer("1")), str("big"), str("small"), m)
	want := `rt.Ternary(rt.GreaterThan(rt.Get(ctx.Lookup("x"), "x"), int64(1)), ` +
		`func() any { return "big" }, func() any { return "small" })`
	require.Equal(t, want, code(t, node, Right))

	coerced := ast.NewTernaryOperation(ident("flag"), integer("1"), integer("2"), m)
	require.True(t, strings.HasPrefix(code(t, coerced, Right), `rt.Ternary(rt.Bool(`))
}

func TestLiterals(t *testing.T) {
	require.Equal(t, `int64(42)`, code(t, integer("42"), Right))
	require.Equal(t, `float64(1.5)`, code(t, ast.NewDecimalLiteral("1.50", m), Right))
	require.Equal(t, `true`, code(t, ast.NewBooleanLiteral("TRUE", m), Right))
	require.Equal(t, `false`, code(t, ast.NewBooleanLiteral("False", m), Right))
	require.Equal(t, `nil`, code(t, ast.NewNullLiteral(m), Right))
	require.Equal(t, `"a\"b"`, code(t, str(`a"b`), Right))

	for _, node := range []ast.Node{
		integer("4x"),
		integer("99999999999999999999"),
		ast.NewDecimalLiteral("1.2.3", m),
		ast.NewBooleanLiteral("yes", m),
	} {
		ce := compileError(t, ast.NewExpressionStatement(node.(ast.Expr), m))
		require.Equal(t, errors.E2002, ce.Code)
	}
}

func TestStructAndArrayLiterals(t *testing.T) {
	require.Equal(t, `rt.StructOf("foo", int64(1))`,
		code(t, ast.NewStructLiteral(ast.Unordered, []ast.Expr{ident("foo"), integer("1")}, m), Right))
	require.Equal(t, `rt.LinkedStructOf("a", rt.Get(ctx.Lookup("b"), "b"))`,
		code(t, ast.NewStructLiteral(ast.Ordered, []ast.Expr{ident("a"), ident("b")}, m), Right))
	require.Equal(t, `rt.NewStruct()`, code(t, ast.NewStructLiteral(ast.Unordered, nil, m), Right))
	require.Equal(t, `rt.NewLinkedStruct()`, code(t, ast.NewStructLiteral(ast.Ordered, nil, m), Right))
	require.Equal(t, `rt.ArrayOf(int64(1), "x")`,
		code(t, ast.NewArrayLiteral([]ast.Expr{integer("1"), str("x")}, m), Right))
	require.Equal(t, `rt.NewArray()`, code(t, ast.NewArrayLiteral(nil, m), Right))

	odd := ast.NewStructLiteral(ast.Unordered, []ast.Expr{ident("a")}, m)
	require.Equal(t, errors.E2002, compileError(t, ast.NewExpressionStatement(odd, m)).Code)
}

func TestArrayAccess(t *testing.T) {
	node := func() ast.Node { return ast.NewArrayAccess(ident("list"), integer("2"), m) }
	require.Equal(t, `rt.Get(rt.Get(ctx.Lookup("list"), "list"), int64(2))`, code(t, node(), Right))
	require.Equal(t, `rt.Put(rt.Get(ctx.Lookup("list"), "list"), int64(2))`, code(t, node(), Left))
}

func TestInvocation(t *testing.T) {
	positional := ast.NewFunctionInvocation("f", []*ast.Argument{arg("", integer("1")), arg("", str("a"))}, m)
	require.Equal(t, `ctx.Invoke("f", int64(1), "a")`, code(t, positional, Right))
	require.Equal(t, `ctx.Invoke("g")`, code(t, ast.NewFunctionInvocation("g", nil, m), Right))

	named := ast.NewFunctionInvocation("f", []*ast.Argument{arg("a", integer("1"))}, m)
	require.Equal(t, `ctx.InvokeNamed("f", rt.Named{rt.NamedArg{Name: "a", Value: int64(1)}})`, code(t, named, Right))

	mixed := call("f", arg("a", integer("1")), arg("", integer("2")))
	require.Equal(t, errors.E2004, compileError(t, mixed).Code)
}

func TestStatements(t *testing.T) {
	require.Equal(t, `rt.Put(ctx.Lookup("x"), "x").Set(int64(1))`,
		code(t, ast.NewAssignment(ident("x"), integer("1"), m), None))
	require.Equal(t, `rt.Put(ctx.Scope("variables"), "x").Set(nil)`,
		code(t, ast.NewAssignment(access(scope("variables"), ident("x")), ast.NewNullLiteral(m), m), None))
	require.Equal(t, `_ = true`,
		code(t, ast.NewExpressionStatement(ast.NewBooleanLiteral("true", m), m), None))
	require.Equal(t, `ctx.Invoke("f")`, code(t, call("f"), None))
	require.Equal(t, `return nil`, code(t, ast.NewReturn(nil, m), None))
	require.Equal(t, `return int64(1)`, code(t, ast.NewReturn(integer("1"), m), None))
}

func TestFunctionDeclaration(t *testing.T) {
	args := []*ast.ArgumentDeclaration{
		ast.NewArgumentDeclaration(true, "numeric", "a", nil, "", nil, m),
		ast.NewArgumentDeclaration(false, "numeric", "b", integer("2"), "", nil, m),
	}
	body := []ast.Stmt{ast.NewReturn(binary(ident("a"), ast.Add, ident("b")), m)}
	node := ast.NewFunctionDeclaration("add", args, body, "numeric", m)
	want := "ctx.DefineFunction(\"add\", \"numeric\", []rt.Param{rt.NewParam(true, \"numeric\", \"a\"), " +
		"rt.NewParam(false, \"numeric\", \"b\", int64(2))}, func(fctx *rt.Context) any {\n" +
		"return rt.Add(rt.Get(fctx.Lookup(\"a\"), \"a\"), rt.Get(fctx.Lookup(\"b\"), \"b\"))\n})"
	require.Equal(t, want, code(t, node, None))
}

func TestNestedFunctionContexts(t *testing.T) {
	inner := ast.NewFunctionDeclaration("inner", nil, []ast.Stmt{call("f")}, "", m)
	outer := ast.NewFunctionDeclaration("outer", nil, []ast.Stmt{inner, call("inner")}, "", m)
	got := code(t, outer, None)
	require.Contains(t, got, "func(fctx *rt.Context) any {\nfctx.DefineFunction(\"inner\"")
	require.Contains(t, got, "func(fctx2 *rt.Context) any {\nfctx2.Invoke(\"f\")\nreturn nil\n})")
	require.Contains(t, got, "fctx.Invoke(\"inner\")\nreturn nil\n})")
}

func TestArgumentDeclarationOptions(t *testing.T) {
	decl := ast.NewArgumentDeclaration(false, "", "n", nil, "a number",
		map[string]string{"b": "2", "a": "1"}, m)
	require.Equal(t,
		`rt.NewParam(false, "any", "n").WithHint("a number").WithMetadata("a", "1").WithMetadata("b", "2")`,
		code(t, decl, None))
}

func TestTranspileUnit(t *testing.T) {
	program := ast.NewProgram([]ast.Stmt{
		ast.NewAssignment(ident("x"), integer("5"), m),
		call("writeOutput", arg("", ident("x"))),
	}, m)
	unit, err := Transpile(program, Config{Filename: "main.box"})
	require.NoError(t, err)
	require.Len(t, unit.Fragments, 2)
	require.NotEmpty(t, unit.Trace())
	require.Equal(t, "main.box", unit.Filename)

	origin, ok := unit.Origin(unit.Fragments[1].Node)
	require.True(t, ok)
	require.Equal(t, ast.KindExpressionStatement, origin.Kind())

	require.True(t, strings.HasSuffix(unit.Body(), "\nreturn nil"))

	src, err := unit.GoSource()
	require.NoError(t, err)
	text := string(src)
	require.Contains(t, text, "// Unit: "+unit.ID.String())
	require.Contains(t, text, "// Source: main.box")
	require.Contains(t, text, "package main")
	require.Contains(t, text, "func Run(ctx *rt.Context) any {\n\trt.Put(ctx.Lookup(\"x\"), \"x\").Set(int64(5))")

	_, err = goparser.ParseFile(gotoken.NewFileSet(), "unit.go", src, 0)
	require.NoError(t, err)
}

func TestTranspileUnitEndingInReturn(t *testing.T) {
	program := ast.NewProgram([]ast.Stmt{ast.NewReturn(integer("1"), m)}, m)
	unit, err := Transpile(program, Config{})
	require.NoError(t, err)
	require.Equal(t, "return int64(1)", unit.Body())
}

func TestTranspileAbortsWholeUnit(t *testing.T) {
	program := ast.NewProgram([]ast.Stmt{
		call("f"),
		ast.NewExpressionStatement(access(ident("a"), ident("b")), m),
	}, m)
	unit, err := Transpile(program, Config{})
	require.Nil(t, unit)
	require.Error(t, err)
	ec, ok := errors.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, errors.E2003, ec)
}

func TestProgramFragment(t *testing.T) {
	program := ast.NewProgram([]ast.Stmt{call("f")}, m)
	require.Equal(t, "func(ctx *rt.Context) any {\nctx.Invoke(\"f\")\nreturn nil\n}", code(t, program, None))
}

func TestObservers(t *testing.T) {
	var seen []ast.Kind
	tr := New(Config{Observer: ObserverFunc(func(f *Fragment) { seen = append(seen, f.Origin.Kind()) })})
	_, err := tr.Transform(binary(integer("1"), ast.Add, integer("2")), Right)
	require.NoError(t, err)
	require.Equal(t, []ast.Kind{ast.KindIntegerLiteral, ast.KindIntegerLiteral, ast.KindBinaryOperation}, seen)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err = New(Config{Observer: NewLogObserver(logger)}).Transform(integer("7"), Right)
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"message":"7 -> int64(7)"`)
	require.Contains(t, buf.String(), `"kind":"IntegerLiteral"`)
}
