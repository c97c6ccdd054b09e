package object

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// Body is the implementation of a function. It receives the bound
// arguments of one call.
type Body func(ctx context.Context, args *ArgumentScope) (any, error)

// Function is a callable value: a name, declared parameters, a body and an
// optional declared return type. Built-in functions and functions defined
// by generated code share this type.
type Function struct {
	name       string
	params     []Param
	body       Body
	returnType string
}

// NewFunction returns a function with the given parameters and body. An
// empty name denotes an anonymous function.
func NewFunction(name string, params []Param, body Body) *Function {
	return &Function{
		name:       name,
		params:     slices.Clone(params),
		body:       body,
		returnType: "any",
	}
}

// WithReturnType returns a copy of f whose results are cast to typ. The type
// "void" discards the result.
func (f *Function) WithReturnType(typ string) *Function {
	cp := *f
	if typ == "" {
		typ = "any"
	}
	cp.returnType = typ
	return &cp
}

// Name returns the function name, or "" when anonymous.
func (f *Function) Name() string { return f.name }

// Params returns a copy of the declared parameters.
func (f *Function) Params() []Param { return slices.Clone(f.params) }

// ReturnType returns the declared return type.
func (f *Function) ReturnType() string { return f.returnType }

func (f *Function) String() string {
	parts := make([]string, len(f.params))
	for i, p := range f.params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("function %s(%s)", f.displayName(), strings.Join(parts, ", "))
}

func (f *Function) displayName() string {
	if f.name == "" {
		return "<anonymous>"
	}
	return f.name
}

// BindPositional binds values to the parameters of f.
func (f *Function) BindPositional(values []any) (*ArgumentScope, error) {
	scope, err := BindPositional(f.params, values)
	return scope, f.annotate(err)
}

// BindNamed binds named values to the parameters of f.
func (f *Function) BindNamed(values IStruct) (*ArgumentScope, error) {
	scope, err := BindNamed(f.params, values)
	return scope, f.annotate(err)
}

// Call binds args by position and invokes the function.
func (f *Function) Call(ctx context.Context, args ...any) (any, error) {
	scope, err := f.BindPositional(args)
	if err != nil {
		return nil, err
	}
	return f.Invoke(ctx, scope)
}

// CallNamed binds args by name and invokes the function.
func (f *Function) CallNamed(ctx context.Context, args IStruct) (any, error) {
	scope, err := f.BindNamed(args)
	if err != nil {
		return nil, err
	}
	return f.Invoke(ctx, scope)
}

// Invoke runs the body with already bound arguments. A Thrown panic raised
// by the body is recovered and returned as its error.
func (f *Function) Invoke(ctx context.Context, args *ArgumentScope) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, ok := r.(*Thrown)
			if !ok {
				panic(r)
			}
			result, err = nil, f.annotate(t.Err)
		}
	}()
	result, err = f.body(ctx, args)
	if err != nil {
		return nil, f.annotate(err)
	}
	return f.coerceResult(result)
}

func (f *Function) coerceResult(v any) (any, error) {
	switch {
	case strings.EqualFold(f.returnType, "void"):
		return nil, nil
	case f.returnType == "" || strings.EqualFold(f.returnType, "any"):
		return v, nil
	}
	out, err := Cast(v, f.returnType, true)
	if err != nil {
		var castErr *errors.TypeCastError
		if errors.As(err, &castErr) {
			cp := *castErr
			cp.Detail = "invalid return value of " + f.displayName()
			return nil, &cp
		}
		return nil, err
	}
	return out, nil
}

// annotate records f on errors that carry call context.
func (f *Function) annotate(err error) error {
	if err == nil {
		return nil
	}
	var missing *errors.MissingArgumentError
	if errors.As(err, &missing) && missing.Function == "" {
		cp := *missing
		cp.Function = f.displayName()
		return &cp
	}
	var rte *errors.RuntimeError
	if errors.As(err, &rte) {
		rte.Stack = append(rte.Stack, errors.StackFrame{Function: f.displayName()})
	}
	return err
}

// Thrown carries a runtime error raised by generated code as a panic. It is
// recovered at function and program boundaries.
type Thrown struct {
	Err error
}

func (t *Thrown) Error() string { return t.Err.Error() }

func (t *Thrown) Unwrap() error { return t.Err }

// Throw panics with err wrapped in a Thrown. It does nothing for a nil
// error.
func Throw(err error) {
	if err != nil {
		panic(&Thrown{Err: err})
	}
}
