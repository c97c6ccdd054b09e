// Package rt holds the intrinsics called by generated code: the execution
// Context with its scopes, storage references, operators, literal
// constructors and function invocation.
//
// Runtime failures inside generated code are raised as panics of *Thrown
// and recovered into errors at function and program boundaries, so that
// generated expressions stay plain Go expressions.
package rt

import (
	"context"
	"strings"

	"github.com/deepnoodle-ai/boxgo/builtins"
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
)

// Scope names addressable from scripts.
const (
	ScopeVariables = "variables"
	ScopeLocal     = "local"
	ScopeArguments = "arguments"
)

// Context is the execution context of a compilation unit or of one function
// call. A unit context owns the variables scope; a function context adds
// local and arguments scopes and shares the variables scope of its unit.
type Context struct {
	ctx       context.Context
	root      *Context
	variables *object.Struct
	local     *object.Struct
	arguments *object.ArgumentScope
}

// NewContext returns a unit-level context.
func NewContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{
		ctx:       ctx,
		variables: object.NewStruct(object.DefaultStruct),
		arguments: object.NewArgumentScope(),
	}
	c.root = c
	return c
}

// Go returns the standard context the unit runs under.
func (c *Context) Go() context.Context { return c.ctx }

// Tick raises the error of the standard context once it is canceled or
// past its deadline. Generated loops call it on every iteration.
func (c *Context) Tick() {
	if err := c.ctx.Err(); err != nil {
		Throw(err)
	}
}

// IsFunction reports whether c is a function call context.
func (c *Context) IsFunction() bool { return c.local != nil }

// Variables returns the unit variables scope.
func (c *Context) Variables() *object.Struct { return c.root.variables }

// Scope returns the named scope. Outside a function the local scope is the
// variables scope.
func (c *Context) Scope(name string) object.IStruct {
	switch strings.ToLower(name) {
	case ScopeVariables:
		return c.root.variables
	case ScopeLocal:
		if c.local != nil {
			return c.local
		}
		return c.root.variables
	case ScopeArguments:
		return c.arguments
	}
	Throw(&errors.RuntimeError{
		Code:        errors.E3004,
		Message:     "unknown scope '" + name + "'",
		Suggestions: errors.SuggestSimilar(name, []string{ScopeVariables, ScopeLocal, ScopeArguments}),
	})
	return nil
}

// Lookup returns the nearest scope holding name: local, then arguments, then
// variables. When no scope holds it, the default assignment scope is
// returned, which is local inside functions and variables elsewhere.
func (c *Context) Lookup(name string) object.IStruct {
	key := object.NewKey(name)
	if c.local != nil {
		if c.local.Has(key) {
			return c.local
		}
		if c.arguments.Has(key) {
			return c.arguments
		}
	}
	if c.root.variables.Has(key) {
		return c.root.variables
	}
	if c.local != nil {
		return c.local
	}
	return c.root.variables
}

// DefineFunction declares a function in the variables scope. The body runs
// in a fresh function context for every call. Parameter defaults have
// already been evaluated by the caller.
func (c *Context) DefineFunction(name, returnType string, params []Param, body func(fctx *Context) any) *object.Function {
	root := c.root
	fn := object.NewFunction(name, params, func(ctx context.Context, args *object.ArgumentScope) (any, error) {
		fctx := &Context{
			ctx:       ctx,
			root:      root,
			local:     object.NewStruct(object.DefaultStruct),
			arguments: args,
		}
		return body(fctx), nil
	}).WithReturnType(returnType)
	if name != "" {
		_ = root.variables.Put(object.NewKey(name), fn)
	}
	return fn
}

// resolve finds the function called name: a function value visible from c,
// then a built-in.
func (c *Context) resolve(name string) *object.Function {
	key := object.NewKey(name)
	if v, ok := c.Lookup(name).Get(key); ok {
		fn, ok := object.FunctionCaster.Attempt(v)
		if !ok {
			Throw(errors.Runtimef(errors.E3005, "'%s' is not a function (%s)", name, object.TypeName(v)))
		}
		return fn
	}
	if fn, ok := builtins.Lookup(name); ok {
		return fn
	}
	candidates := builtins.Names()
	for _, k := range c.root.variables.Keys() {
		candidates = append(candidates, k.Name())
	}
	Throw(&errors.RuntimeError{
		Code:        errors.E3004,
		Message:     "function '" + name + "' is undefined",
		Suggestions: errors.SuggestSimilar(name, candidates),
	})
	return nil
}

// Resolver returns a FunctionResolver over c, for built-ins that call
// functions by name.
func (c *Context) Resolver() object.FunctionResolver {
	return func(name string) (fn *object.Function, ok bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, thrown := r.(*Thrown); !thrown {
					panic(r)
				}
				fn, ok = nil, false
			}
		}()
		return c.resolve(name), true
	}
}

// Invoke calls the named function with positional arguments.
func (c *Context) Invoke(name string, args ...any) any {
	fn := c.resolve(name)
	result, err := fn.Call(c.callContext(), args...)
	Throw(err)
	return result
}

// InvokeNamed calls the named function with named arguments.
func (c *Context) InvokeNamed(name string, args Named) any {
	fn := c.resolve(name)
	st := object.NewStruct(object.LinkedStruct)
	for _, arg := range args {
		_ = st.Put(object.NewKey(arg.Name), arg.Value)
	}
	result, err := fn.CallNamed(c.callContext(), st)
	Throw(err)
	return result
}

// Call invokes a function value with positional arguments.
func (c *Context) Call(fn any, args ...any) any {
	f, err := object.FunctionCaster.Cast(fn)
	if err != nil {
		Throw(errors.Runtimef(errors.E3005, "value is not a function (%s)", object.TypeName(fn)))
	}
	result, err := f.Call(c.callContext(), args...)
	Throw(err)
	return result
}

func (c *Context) callContext() context.Context {
	if _, ok := object.GetFunctionResolver(c.ctx); ok {
		return c.ctx
	}
	return object.WithFunctionResolver(c.ctx, c.Resolver())
}

// Named is the ordered named-argument list of an invocation.
type Named []NamedArg

// NamedArg is one named argument.
type NamedArg struct {
	Name  string
	Value any
}

// Param is a declared function parameter.
type Param = object.Param

// NewParam declares a parameter; see object.NewParam.
func NewParam(required bool, typ, name string, def ...any) Param {
	return object.NewParam(required, typ, name, def...)
}
