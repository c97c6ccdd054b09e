package ast

import (
	"testing"

	"github.com/deepnoodle-ai/boxgo/internal/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *Identifier {
	return NewIdentifier(name, At(token.Position{}, name))
}

func TestConstructorsSetParents(t *testing.T) {
	a := ident("a")
	b := ident("b")
	inner := NewObjectAccess(a, b, Meta{})
	scope := NewScope("variables", Meta{})
	outer := NewObjectAccess(scope, inner, Meta{})
	stmt := NewExpressionStatement(outer, Meta{})
	prog := NewProgram([]Stmt{stmt}, Meta{})

	require.Nil(t, prog.Parent())
	require.Same(t, prog, stmt.Parent())
	require.Same(t, stmt, outer.Parent())
	require.Same(t, outer, inner.Parent())
	require.Same(t, inner, a.Parent())
	require.Same(t, prog, Root(b))

	bad, ok := CheckParents(prog)
	require.True(t, ok, "bad parent at %v", bad)
}

func TestAdoptTwicePanics(t *testing.T) {
	x := ident("x")
	NewExpressionStatement(x, Meta{})
	require.Panics(t, func() {
		NewReturn(x, Meta{})
	})
}

func TestOptionalChildrenMayBeNil(t *testing.T) {
	ret := NewReturn(nil, Meta{})
	require.Empty(t, ret.Children())
	require.Equal(t, "return", ret.String())

	loop := NewFor(nil, nil, nil, nil, Meta{})
	require.Empty(t, loop.Children())
}

func TestReplace(t *testing.T) {
	left := ident("x")
	right := NewIntegerLiteral("1", Meta{})
	assign := NewAssignment(left, right, Meta{})

	repl := NewIntegerLiteral("2", Meta{})
	require.NoError(t, Replace(assign, right, repl))
	require.Same(t, repl, assign.Right())
	require.Same(t, assign, repl.Parent())
	require.Nil(t, right.Parent())

	// old is no longer a child
	err := Replace(assign, right, NewIntegerLiteral("3", Meta{}))
	require.Error(t, err)

	// new already attached elsewhere
	other := NewExpressionStatement(ident("y"), Meta{})
	err = Replace(assign, repl, other.Expression())
	require.Error(t, err)
	require.Same(t, repl, assign.Right())
}

func TestReplaceRejectsWrongSlot(t *testing.T) {
	cond := NewBooleanLiteral("true", Meta{})
	ifElse := NewIfElse(cond, nil, nil, Meta{})
	stmt := NewReturn(nil, Meta{})

	err := Replace(ifElse, cond, stmt)
	require.Error(t, err)
	require.Contains(t, err.Error(), "want expression")
	require.Same(t, ifElse, cond.Parent())
	require.Nil(t, stmt.Parent())
}

func TestReplaceRejectsAncestor(t *testing.T) {
	inner := ident("b")
	access := NewObjectAccess(ident("a"), inner, Meta{})
	root := NewUnaryOperation(Minus, access, Meta{})

	err := Replace(access, inner, root)
	require.ErrorContains(t, err, "ancestor")
	require.Same(t, access, inner.Parent())
	require.Nil(t, root.Parent())
	require.Same(t, root, Root(inner))

	loose := NewObjectAccess(ident("c"), ident("d"), Meta{})
	require.Error(t, Replace(loose, loose.Access(), loose))
	_, ok := CheckParents(root)
	require.True(t, ok)
}

func TestReplaceInStatementList(t *testing.T) {
	first := NewExpressionStatement(ident("a"), Meta{})
	second := NewExpressionStatement(ident("b"), Meta{})
	prog := NewProgram([]Stmt{first, second}, Meta{})

	repl := NewReturn(nil, Meta{})
	require.NoError(t, Replace(prog, second, repl))
	require.Equal(t, []Stmt{first, repl}, prog.Statements())
	_, ok := CheckParents(prog)
	require.True(t, ok)
}

func TestSourcePrefersVerbatimText(t *testing.T) {
	lit := NewBooleanLiteral("TRUE", At(token.Position{Line: 2}, "TRUE"))
	require.Equal(t, "TRUE", lit.Source())
	require.True(t, lit.Bool())
	require.Equal(t, 4, lit.Range().End.Column)

	sum := NewBinaryOperation(NewIntegerLiteral("1", Meta{}), Add, NewIntegerLiteral("2", Meta{}), Meta{})
	require.Equal(t, "(1 + 2)", sum.Source())
}

func TestStrings(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{NewUnaryOperation(PostPlusPlus, ident("x"), Meta{}), "x++"},
		{NewUnaryOperation(PreMinusMinus, ident("x"), Meta{}), "--x"},
		{NewObjectAccess(NewScope("variables", Meta{}), ident("foo"), Meta{}), "variables.foo"},
		{NewArrayAccess(ident("arr"), NewIntegerLiteral("1", Meta{}), Meta{}), "arr[1]"},
		{NewStructLiteral(Unordered, []Expr{ident("foo"), NewIntegerLiteral("1", Meta{})}, Meta{}), "{foo: 1}"},
		{NewArrayLiteral([]Expr{NewNullLiteral(Meta{}), NewStringLiteral("a", Meta{})}, Meta{}), `[null, "a"]`},
		{NewFunctionInvocation("f", []*Argument{NewArgument("a", ident("b"), Meta{})}, Meta{}), "f(a=b)"},
		{NewStringInterpolation([]Expr{NewStringLiteral("hi ", Meta{}), ident("name")}, Meta{}), `"hi #name#"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestOperatorParsing(t *testing.T) {
	op, ok := ParseBinaryOperator("lessthan")
	require.True(t, ok)
	require.Equal(t, LessThan, op)
	require.True(t, op.IsComparison())

	op, ok = ParseBinaryOperator("&&")
	require.True(t, ok)
	require.Equal(t, And, op)
	require.True(t, op.IsLogical())
	require.False(t, op.IsComparison())

	uop, ok := ParseUnaryOperator("POSTPLUSPLUS")
	require.True(t, ok)
	require.True(t, uop.IsPostfix())
	require.True(t, uop.Mutates())
	require.False(t, Minus.Mutates())

	_, ok = ParseUnaryOperator("bogus")
	require.False(t, ok)
}
