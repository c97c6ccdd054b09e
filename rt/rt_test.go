package rt

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
)

// run executes fn against a fresh unit context and returns its error.
func run(t *testing.T, fn func(ctx *Context) any) (*Context, any, error) {
	t.Helper()
	ctx := NewContext(context.Background())
	result, err := Run(ctx, fn)
	return ctx, result, err
}

func TestIncrementDecrement(t *testing.T) {
	_, _, err := run(t, func(ctx *Context) any {
		vars := ctx.Scope("variables")
		Put(vars, "x").Set(int64(5))

		require.Equal(t, int64(5), IncrementPost(vars, "x"))
		require.Equal(t, int64(6), Get(vars, "x"))

		Put(vars, "x").Set(int64(5))
		require.Equal(t, int64(6), IncrementPre(vars, "x"))
		require.Equal(t, int64(6), Get(vars, "x"))

		require.Equal(t, int64(6), DecrementPost(vars, "x"))
		require.Equal(t, int64(4), DecrementPre(vars, "x"))
		require.Equal(t, int64(4), Get(vars, "x"))

		Put(vars, "s").Set("1.5")
		require.Equal(t, 2.5, IncrementPre(vars, "s"))
		return nil
	})
	require.NoError(t, err)
}

func TestIncrementNonNumericThrows(t *testing.T) {
	_, _, err := run(t, func(ctx *Context) any {
		vars := ctx.Scope("variables")
		Put(vars, "s").Set("abc")
		return IncrementPost(vars, "s")
	})
	var castErr *errors.TypeCastError
	require.ErrorAs(t, err, &castErr)
}

func TestScopesAndLookup(t *testing.T) {
	ctx := NewContext(nil)
	require.Same(t, ctx.Variables(), ctx.Scope("VARIABLES"))
	require.Same(t, ctx.Variables(), ctx.Scope("local"))
	require.Same(t, ctx.Variables(), ctx.Lookup("missing"))

	_, err := Run(ctx, func(ctx *Context) any { return ctx.Scope("varaibles") })
	var rte *errors.RuntimeError
	require.ErrorAs(t, err, &rte)
	require.Equal(t, errors.E3004, rte.Code)
	require.Equal(t, "variables", rte.Suggestions[0].Value)
}

func TestUndefinedVariableSuggests(t *testing.T) {
	_, _, err := run(t, func(ctx *Context) any {
		Put(ctx.Scope("variables"), "counter").Set(int64(1))
		return Get(ctx.Lookup("countr"), "countr")
	})
	var rte *errors.RuntimeError
	require.ErrorAs(t, err, &rte)
	require.Equal(t, errors.E3004, rte.Code)
	require.Equal(t, "variable 'countr' is undefined", rte.Message)
	require.Equal(t, "counter", rte.Suggestions[0].Value)
}

func TestNestedAccess(t *testing.T) {
	ctx, _, err := run(t, func(ctx *Context) any {
		vars := ctx.Scope("variables")
		Put(vars, "a").Set(StructOf("b", int64(1)))
		Put(Get(vars, "a"), "b").Set(int64(2))
		Put(vars, "list").Set(ArrayOf("x", "y"))
		Put(Get(vars, "list"), int64(3)).Set("z")
		return nil
	})
	require.NoError(t, err)
	vars := ctx.Variables()
	a, _ := vars.Get(object.NewKey("A"))
	require.Equal(t, "{b: 2}", a.(*object.Struct).String())
	list, _ := vars.Get(object.NewKey("list"))
	require.Equal(t, []any{"x", "y", "z"}, list.(*object.Array).Items())

	_, err = Run(ctx, func(ctx *Context) any { return Get(Get(ctx.Scope("variables"), "list"), int64(9)) })
	require.ErrorContains(t, err, "out of range")
}

func TestAssignIntoImmutableThrows(t *testing.T) {
	_, _, err := run(t, func(ctx *Context) any {
		return Put(object.NewImmutableStruct(nil), "a").Set(int64(1))
	})
	var immErr *errors.ImmutableError
	require.ErrorAs(t, err, &immErr)
}

func TestDefineAndInvoke(t *testing.T) {
	ctx, result, err := run(t, func(ctx *Context) any {
		ctx.DefineFunction("greet", "string", []Param{
			NewParam(true, "string", "name"),
			NewParam(false, "string", "greeting", "Hello"),
		}, func(fctx *Context) any {
			Put(fctx.Lookup("msg"), "msg").Set(
				Concat(Concat(Get(fctx.Lookup("greeting"), "greeting"), " "), Get(fctx.Lookup("name"), "name")))
			return Get(fctx.Scope("local"), "msg")
		})
		a := ctx.Invoke("greet", "Ada")
		b := ctx.InvokeNamed("GREET", Named{{Name: "greeting", Value: "Hi"}, {Name: "name", Value: "Bo"}})
		return Concat(Concat(a, "|"), b)
	})
	require.NoError(t, err)
	require.Equal(t, "Hello Ada|Hi Bo", result)
	// Function locals do not leak into the unit scope.
	require.False(t, ctx.Variables().Has(object.NewKey("msg")))
	require.True(t, ctx.Variables().Has(object.NewKey("greet")))
}

func TestInvokeErrors(t *testing.T) {
	_, _, err := run(t, func(ctx *Context) any {
		ctx.DefineFunction("f", "", []Param{NewParam(true, "numeric", "n")}, func(fctx *Context) any { return nil })
		return ctx.Invoke("f")
	})
	var missing *errors.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "n", missing.Name)
	require.Equal(t, "f", missing.Function)

	_, _, err = run(t, func(ctx *Context) any { return ctx.Invoke("lenn", "x") })
	var rte *errors.RuntimeError
	require.ErrorAs(t, err, &rte)
	require.Equal(t, errors.E3004, rte.Code)
	require.Equal(t, "len", rte.Suggestions[0].Value)

	_, _, err = run(t, func(ctx *Context) any {
		Put(ctx.Scope("variables"), "x").Set(int64(1))
		return ctx.Invoke("x")
	})
	require.ErrorAs(t, err, &rte)
	require.Equal(t, errors.E3005, rte.Code)
}

func TestInvokeBuiltinWithOutput(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(object.WithOutput(context.Background(), &buf))
	_, err := Run(ctx, func(ctx *Context) any {
		ctx.Invoke("writeOutput", ctx.Invoke("listAppend", "a,b", "c"))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "a,b,c", buf.String())
}

func TestBuiltinCallsUserFunction(t *testing.T) {
	_, result, err := run(t, func(ctx *Context) any {
		isBig := ctx.DefineFunction("isBig", "boolean", []Param{NewParam(true, "numeric", "n")}, func(fctx *Context) any {
			return GreaterThan(Get(fctx.Lookup("n"), "n"), int64(2))
		})
		return ctx.Invoke("arrayFilter", ArrayOf(int64(1), int64(3), int64(5)), isBig)
	})
	require.NoError(t, err)
	require.Equal(t, []any{int64(3), int64(5)}, result.(*object.Array).Items())
}

func TestOperators(t *testing.T) {
	require.Equal(t, int64(7), Add(int64(3), int64(4)))
	require.Equal(t, 2.5, Div(int64(5), int64(2)))
	require.Equal(t, int64(1), Mod(int64(5), int64(2)))
	require.Equal(t, int64(-3), Negate(int64(3)))
	require.Equal(t, int64(3), Numeric(int64(3)))
	require.Equal(t, "ab1", Concat("ab", int64(1)))
	require.True(t, Equal("A", "a"))
	require.True(t, NotEqual(int64(1), int64(2)))
	require.True(t, LessThan(int64(1), "2"))
	require.True(t, GreaterThanEquals(int64(2), 2.0))
	require.True(t, Bool("yes"))
	require.Equal(t, "3.5", String(3.5))

	_, _, err := run(t, func(ctx *Context) any { return Div(int64(1), int64(0)) })
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, errors.E3006, code)
}

func TestTernaryEvaluatesOneBranch(t *testing.T) {
	called := false
	got := Ternary(true, func() any { return "yes" }, func() any { called = true; return "no" })
	require.Equal(t, "yes", got)
	require.False(t, called)
}

func TestStructLiteralKeys(t *testing.T) {
	s := LinkedStructOf("foo", int64(1), "Bar", int64(2))
	require.Equal(t, object.LinkedStruct, s.Type())
	v, ok := s.Get(object.NewKey("foo"))
	require.True(t, ok)
	require.Equal(t, int64(1), v)
	require.Equal(t, 0, NewStruct().Len())
	require.Equal(t, 0, NewArray().Len())
}

func TestRunPropagatesForeignPanics(t *testing.T) {
	require.PanicsWithValue(t, "boom", func() {
		_, _ = Run(NewContext(nil), func(*Context) any { panic("boom") })
	})
}

func TestTickStopsCanceledLoop(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := NewContext(parent)
	ctx.DefineFunction("spin", "", nil, func(fctx *Context) any {
		for i := 0; ; i++ {
			fctx.Tick()
			if i == 3 {
				cancel()
			}
		}
	})
	_, err := Run(ctx, func(ctx *Context) any {
		return ctx.Invoke("spin")
	})
	require.ErrorIs(t, err, context.Canceled)
}
