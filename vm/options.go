package vm

import (
	"io"

	"github.com/rs/zerolog"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithGlobals provides variables with the given names in the variables
// scope of every run.
func WithGlobals(globals map[string]any) Option {
	return func(vm *VirtualMachine) {
		for name, value := range globals {
			vm.globals[name] = value
		}
	}
}

// WithOutput sets the writer used by built-ins that write output, such as
// writeOutput. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.output = w
	}
}

// WithStdio sets the standard streams seen by the interpreter itself. Both
// are discarded by default, including the panic traces the interpreter
// prints for runtime errors.
func WithStdio(stdout, stderr io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.stdout = stdout
		vm.stderr = stderr
	}
}

// WithLogger sets the logger for load and run events. Events are logged at
// debug level. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}
