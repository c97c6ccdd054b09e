package boxgo

import (
	"io"
	"maps"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/boxgo/compiler"
	"github.com/deepnoodle-ai/boxgo/vm"
)

// Option configures a boxgo transpilation or execution.
type Option func(*options)

type options struct {
	env      map[string]any
	filename string
	observer compiler.Observer
	output   io.Writer
	logger   *zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{env: map[string]any{}}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerConfig() compiler.Config {
	cfg := compiler.Config{Filename: o.filename, Observer: o.observer}
	if cfg.Observer == nil && o.logger != nil {
		cfg.Observer = compiler.NewLogObserver(*o.logger)
	}
	return cfg
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if len(o.env) > 0 {
		opts = append(opts, vm.WithGlobals(o.env))
	}
	if o.output != nil {
		opts = append(opts, vm.WithOutput(o.output))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	return opts
}

// WithEnv provides variables that are made available to generated code in
// the variables scope. This option is additive, so multiple WithEnv options
// may be supplied. If the same key is supplied multiple times, the last
// value wins.
func WithEnv(env map[string]any) Option {
	return func(o *options) {
		maps.Copy(o.env, env)
	}
}

// WithFilename sets the filename of the unit being transpiled.
// This is used in error messages and generated file headers.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithObserver sets an observer that is notified of every synthesized
// fragment. When used with TranspileAll, the observer is called from
// several goroutines at once.
func WithObserver(observer compiler.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithOutput sets the writer receiving script output. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithLogger enables debug logging of synthesized fragments and of unit
// execution. An explicit WithObserver takes precedence for fragments.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}
