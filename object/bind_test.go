package object_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
)

func keyNames(keys []object.Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name()
	}
	return names
}

// Two required parameters followed by two optional ones with defaults.
func sampleParams() []object.Param {
	return []object.Param{
		object.NewParam(true, "string", "a"),
		object.NewParam(true, "numeric", "b"),
		object.NewParam(false, "integer", "c", "3"),
		object.NewParam(false, "any", "d", "dee"),
	}
}

func TestBindPositionalArity(t *testing.T) {
	params := sampleParams()

	for n := 0; n < 2; n++ {
		values := []any{"x", int64(1)}[:n]
		_, err := object.BindPositional(params, values)
		var missing *errors.MissingArgumentError
		require.ErrorAs(t, err, &missing, "n=%d", n)
		require.Equal(t, params[n].Name.Name(), missing.Name)
	}

	for n := 2; n <= 4; n++ {
		values := []any{"x", int64(1), int64(10), "four"}[:n]
		scope, err := object.BindPositional(params, values)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, []string{"a", "b", "c", "d"}, keyNames(scope.Keys()))
	}
}

func TestBindPositionalCoercesAndDefaults(t *testing.T) {
	scope, err := object.BindPositional(sampleParams(), []any{int64(7), "2.5"})
	require.NoError(t, err)

	// Coerced values are stored.
	require.Equal(t, "7", scope.Value("a"))
	require.Equal(t, 2.5, scope.Value("B"))
	// Defaults are coerced too.
	require.Equal(t, int64(3), scope.Value("c"))
	require.Equal(t, "dee", scope.Value("d"))
}

func TestBindPositionalOverflow(t *testing.T) {
	params := []object.Param{object.NewParam(false, "", "only")}
	scope, err := object.BindPositional(params, []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []string{"only", "2", "3"}, keyNames(scope.Keys()))
	require.Equal(t, 3, scope.Value("3"))
	require.Equal(t, []any{1, 2, 3}, scope.Positional())
}

func TestBindPositionalTypeMismatchNamesParam(t *testing.T) {
	params := []object.Param{object.NewParam(true, "numeric", "amount")}
	_, err := object.BindPositional(params, []any{"lots"})
	var castErr *errors.TypeCastError
	require.ErrorAs(t, err, &castErr)
	require.Equal(t, "amount", castErr.Param)
	require.Equal(t, "string", castErr.From)
	require.Equal(t, "numeric", castErr.To)
	require.Contains(t, err.Error(), "argument 'amount'")
}

func TestBindOptionalWithoutDefault(t *testing.T) {
	params := []object.Param{object.NewParam(false, "numeric", "n")}
	scope, err := object.BindPositional(params, nil)
	require.NoError(t, err)
	v, ok := scope.Lookup("n")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestBindNamedCollectionPrecedence(t *testing.T) {
	params := []object.Param{
		object.NewParam(false, "", "a"),
		object.NewParam(false, "", "b"),
	}
	coll, err := object.StructOf(object.DefaultStruct, "a", int64(1), "b", int64(2))
	require.NoError(t, err)
	named, err := object.StructOf(object.DefaultStruct,
		"argumentCollection", coll,
		"a", int64(5),
	)
	require.NoError(t, err)

	scope, err := object.BindNamed(params, named)
	require.NoError(t, err)
	require.Equal(t, 2, scope.Len())
	require.Equal(t, int64(5), scope.Value("a"))
	require.Equal(t, int64(2), scope.Value("b"))
	require.False(t, scope.Has(object.NewKey("argumentCollection")))

	// Order of the explicit entry does not matter.
	named, err = object.StructOf(object.DefaultStruct,
		"A", int64(5),
		"ARGUMENTCOLLECTION", coll,
	)
	require.NoError(t, err)
	scope, err = object.BindNamed(params, named)
	require.NoError(t, err)
	require.Equal(t, int64(5), scope.Value("a"))
	require.Equal(t, int64(2), scope.Value("b"))
}

func TestBindNamedNonStructCollectionIsPlainArgument(t *testing.T) {
	named, err := object.StructOf(object.DefaultStruct, "argumentCollection", "nope")
	require.NoError(t, err)
	scope, err := object.BindNamed(nil, named)
	require.NoError(t, err)
	require.Equal(t, "nope", scope.Value("argumentCollection"))
}

func TestBindNamedResolvesDeclaredParams(t *testing.T) {
	named, err := object.StructOf(object.DefaultStruct, "B", "4", "a", "x", "extra", true)
	require.NoError(t, err)
	scope, err := object.BindNamed(sampleParams(), named)
	require.NoError(t, err)
	require.Equal(t, 4.0, scope.Value("b"))
	require.Equal(t, int64(3), scope.Value("c"))
	require.Equal(t, true, scope.Value("extra"))

	named, err = object.StructOf(object.DefaultStruct, "b", int64(1))
	require.NoError(t, err)
	_, err = object.BindNamed(sampleParams(), named)
	var missing *errors.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "a", missing.Name)
}

func TestFunctionCall(t *testing.T) {
	add := object.NewFunction("add", []object.Param{
		object.NewParam(true, "numeric", "x"),
		object.NewParam(false, "numeric", "y", 1),
	}, func(ctx context.Context, args *object.ArgumentScope) (any, error) {
		x, _ := args.AsNumeric("x")
		y, _ := args.AsNumeric("y")
		return x + y, nil
	})

	got, err := add.Call(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, 3.0, got)

	named, err := object.StructOf(object.DefaultStruct, "y", 10, "x", 1)
	require.NoError(t, err)
	got, err = add.CallNamed(context.Background(), named)
	require.NoError(t, err)
	require.Equal(t, 11.0, got)

	_, err = add.Call(context.Background())
	var missing *errors.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "add", missing.Function)
	require.Equal(t, "required argument 'x' is missing in call to add", err.Error())
}

func TestFunctionReturnType(t *testing.T) {
	body := func(context.Context, *object.ArgumentScope) (any, error) { return "12", nil }

	got, err := object.NewFunction("f", nil, body).WithReturnType("integer").Call(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), got)

	got, err = object.NewFunction("f", nil, body).WithReturnType("void").Call(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = object.NewFunction("f", nil, body).WithReturnType("struct").Call(context.Background())
	var castErr *errors.TypeCastError
	require.ErrorAs(t, err, &castErr)
	require.Contains(t, castErr.Detail, "return value of f")
}

func TestFunctionRecoversThrown(t *testing.T) {
	fn := object.NewFunction("boom", nil, func(context.Context, *object.ArgumentScope) (any, error) {
		object.Throw(errors.Runtimef(errors.E3007, "bad things"))
		return nil, nil
	})
	_, err := fn.Call(context.Background())
	var rte *errors.RuntimeError
	require.ErrorAs(t, err, &rte)
	require.Equal(t, "bad things", rte.Message)
	require.Len(t, rte.Stack, 1)
	require.Equal(t, "at boom", rte.Stack[0].String())

	other := object.NewFunction("", nil, func(context.Context, *object.ArgumentScope) (any, error) {
		panic("not thrown")
	})
	require.PanicsWithValue(t, "not thrown", func() { _, _ = other.Call(context.Background()) })
}

func TestFunctionCasterWrapsBodies(t *testing.T) {
	var body object.Body = func(context.Context, *object.ArgumentScope) (any, error) { return int64(1), nil }
	fn, err := object.FunctionCaster.Cast(body)
	require.NoError(t, err)
	require.Equal(t, "", fn.Name())
	got, err := fn.Call(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), got)

	_, err = object.FunctionCaster.Cast("nope")
	require.Error(t, err)
}
