package rt

import (
	"github.com/deepnoodle-ai/boxgo/object"
)

// Thrown is the panic value carrying a runtime error out of generated code.
type Thrown = object.Thrown

// Throw raises err as a *Thrown panic. A nil error is ignored.
func Throw(err error) {
	object.Throw(err)
}

// Catch recovers a *Thrown panic into *errp. Other panics propagate. It must
// be called directly by a deferred statement.
//
//	defer rt.Catch(&err)
func Catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	t, ok := r.(*Thrown)
	if !ok {
		panic(r)
	}
	*errp = t.Err
}

// Run executes a generated program body with ctx, returning its result or
// the runtime error it raised.
func Run(ctx *Context, program func(ctx *Context) any) (result any, err error) {
	defer Catch(&err)
	return program(ctx), nil
}
