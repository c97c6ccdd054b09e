package object

import (
	"context"
	"io"
)

type contextKey string

const outputKey = contextKey("boxgo:output")

// WithOutput adds the writer that output functions print to.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey, w)
}

// GetOutput returns the output writer from the context, if it exists.
func GetOutput(ctx context.Context) (io.Writer, bool) {
	if w, ok := ctx.Value(outputKey).(io.Writer); ok && w != nil {
		return w, true
	}
	return nil, false
}

// FunctionResolver looks up a function by name at run time.
type FunctionResolver func(name string) (*Function, bool)

const resolverKey = contextKey("boxgo:resolver")

// WithFunctionResolver adds a FunctionResolver to the context, which
// built-in functions use to call functions by name.
func WithFunctionResolver(ctx context.Context, fn FunctionResolver) context.Context {
	return context.WithValue(ctx, resolverKey, fn)
}

// GetFunctionResolver returns the FunctionResolver from the context, if it
// exists.
func GetFunctionResolver(ctx context.Context) (FunctionResolver, bool) {
	if fn, ok := ctx.Value(resolverKey).(FunctionResolver); ok && fn != nil {
		return fn, true
	}
	return nil, false
}
