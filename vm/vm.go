// Package vm runs transpiled units in-process.
//
// A unit's Go source is interpreted with yaegi. Package rt is not loaded
// from source; interpreted code is bound to the compiled rt package through
// the Symbols export table, so values cross the boundary without
// conversion. Each Load uses a fresh interpreter, since every unit declares
// the same main.Run entry point.
package vm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/traefik/yaegi/interp"

	"github.com/deepnoodle-ai/boxgo/compiler"
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
	"github.com/deepnoodle-ai/boxgo/rt"
)

// Program is the entry point of a loaded unit.
type Program func(ctx *rt.Context) any

// VirtualMachine loads and runs transpiled units.
type VirtualMachine struct {
	globals map[string]any
	output  io.Writer
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
}

// New returns a VirtualMachine configured with the given options.
func New(options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		globals: map[string]any{},
		stdout:  io.Discard,
		stderr:  io.Discard,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	return vm
}

// Load interprets the unit's Go source and returns its entry point.
func (vm *VirtualMachine) Load(unit *compiler.Unit) (Program, error) {
	src, err := unit.GoSource()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	i := interp.New(interp.Options{Stdout: vm.stdout, Stderr: vm.stderr})
	if err := i.Use(Symbols); err != nil {
		return nil, fmt.Errorf("load unit %s: %w", unit.ID, err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("load unit %s: %w", unit.ID, err)
	}
	v, err := i.Eval("main.Run")
	if err != nil {
		return nil, fmt.Errorf("load unit %s: %w", unit.ID, err)
	}
	fn, ok := v.Interface().(func(*rt.Context) any)
	if !ok {
		return nil, fmt.Errorf("load unit %s: unexpected entry point type %s", unit.ID, v.Type())
	}
	vm.logger.Debug().
		Stringer("unit", unit.ID).
		Dur("elapsed", time.Since(start)).
		Msg("unit loaded")
	return fn, nil
}

// Execute runs a loaded program with a fresh unit context derived from ctx.
// Runtime errors raised by the program are returned as errors.
func (vm *VirtualMachine) Execute(ctx context.Context, program Program) (any, error) {
	_, result, err := vm.Start(ctx, program)
	return result, err
}

// Start is like Execute but also returns the unit context the program ran
// in, so that functions it declared can be called afterward with Call.
func (vm *VirtualMachine) Start(ctx context.Context, program Program) (rctx *rt.Context, result any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if vm.output != nil {
		ctx = object.WithOutput(ctx, vm.output)
	}
	rctx = rt.NewContext(ctx)
	for name, value := range vm.globals {
		if err := rctx.Variables().Put(object.NewKey(name), value); err != nil {
			return nil, nil, err
		}
	}
	start := time.Now()
	result, err = vm.Call(rctx, program)
	event := vm.logger.Debug().Dur("elapsed", time.Since(start))
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("unit finished")
	return rctx, result, err
}

// Call runs fn within rctx. Runtime errors and stray panics are returned as
// errors, as with Execute.
func (vm *VirtualMachine) Call(rctx *rt.Context, fn func(ctx *rt.Context) any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return rt.Run(rctx, fn)
}

// Run loads and executes unit.
func (vm *VirtualMachine) Run(ctx context.Context, unit *compiler.Unit) (any, error) {
	program, err := vm.Load(unit)
	if err != nil {
		return nil, err
	}
	return vm.Execute(ctx, program)
}

// Run loads and executes unit in a new VirtualMachine.
func Run(ctx context.Context, unit *compiler.Unit, options ...Option) (any, error) {
	return New(options...).Run(ctx, unit)
}

// recovered converts a panic that escaped the program into an error. The
// interpreter may hand a runtime error back wrapped, so the chain is
// searched for a *rt.Thrown before giving up.
func recovered(r any) error {
	switch v := r.(type) {
	case *rt.Thrown:
		return v.Err
	case error:
		var thrown *rt.Thrown
		if errors.As(v, &thrown) {
			return thrown.Err
		}
		return fmt.Errorf("panic: %w", v)
	}
	return fmt.Errorf("panic: %v", r)
}
