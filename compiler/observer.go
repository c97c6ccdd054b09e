package compiler

import (
	"github.com/rs/zerolog"
)

// Observer is notified of every fragment the Transpiler synthesizes.
// It can be used for tracing, provenance tools or tests without changing
// the Transpiler.
//
// Observer methods are called synchronously during transpilation.
type Observer interface {
	OnFragment(f *Fragment)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(f *Fragment)

func (fn ObserverFunc) OnFragment(f *Fragment) { fn(f) }

// NoOpObserver ignores all fragments.
type NoOpObserver struct{}

func (NoOpObserver) OnFragment(*Fragment) {}

// LogObserver writes each fragment to a zerolog logger at debug level, as
//
//	<source> -> <code>
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver returns an Observer logging to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnFragment(f *Fragment) {
	o.logger.Debug().
		Stringer("kind", f.Origin.Kind()).
		Str("pos", f.Origin.Range().Start.String()).
		Msg(f.Origin.Source() + " -> " + f.Code())
}
