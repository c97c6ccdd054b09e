// Package boxgo transpiles boxgo syntax trees into Go and runs the result.
//
// The parser is not part of this module: trees arrive either as ast values
// or as the JSON form produced by ast.MarshalJSON.
//
//	unit, err := boxgo.Transpile(program)
//	src, err := unit.GoSource()          // persist as a Go file
//	result, err := boxgo.Run(ctx, unit)  // or run it in-process
package boxgo

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/builtins"
	"github.com/deepnoodle-ai/boxgo/compiler"
	"github.com/deepnoodle-ai/boxgo/vm"
)

// Input is one compilation unit passed to TranspileAll.
type Input struct {
	Filename string
	Node     ast.Node
}

// Transpile converts a syntax tree into a compilation unit.
func Transpile(node ast.Node, opts ...Option) (*compiler.Unit, error) {
	o := collectOptions(opts...)
	return compiler.Transpile(node, o.compilerConfig())
}

// TranspileJSON decodes a JSON syntax tree and transpiles it.
func TranspileJSON(data []byte, opts ...Option) (*compiler.Unit, error) {
	node, err := ast.Decode(data)
	if err != nil {
		return nil, err
	}
	return Transpile(node, opts...)
}

// TranspileAll transpiles independent units concurrently, one goroutine
// per unit. Units are returned in input order. If any unit fails, the
// returned error aggregates every failure and the successful units are
// still returned, with nil in place of the failed ones.
func TranspileAll(inputs []Input, opts ...Option) ([]*compiler.Unit, error) {
	o := collectOptions(opts...)
	units := make([]*compiler.Unit, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg := o.compilerConfig()
			if in.Filename != "" {
				cfg.Filename = in.Filename
			}
			units[i], errs[i] = compiler.Transpile(in.Node, cfg)
		}()
	}
	wg.Wait()
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return units, result.ErrorOrNil()
}

// Run executes a transpiled unit in-process. Each call creates fresh
// runtime state, so a unit may be run concurrently.
func Run(ctx context.Context, unit *compiler.Unit, opts ...Option) (any, error) {
	o := collectOptions(opts...)
	return vm.Run(ctx, unit, o.vmOpts()...)
}

// Eval is a convenience function that transpiles and runs a syntax tree.
func Eval(ctx context.Context, node ast.Node, opts ...Option) (any, error) {
	unit, err := Transpile(node, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, unit, opts...)
}

// Builtins returns the names of the built-in functions available to
// generated code, sorted.
func Builtins() []string {
	return builtins.Names()
}
