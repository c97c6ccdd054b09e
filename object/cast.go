package object

import (
	"github.com/deepnoodle-ai/boxgo/errors"
)

// Caster converts values to the Go representation T of one script type.
//
// Every conversion runs the same strategy order and stops at the first
// match: unwrap any DynamicObject, identity, native conversion, then a
// last-resort parse of string input. Null is handled by a per-type policy
// before any strategy runs. Casting never mutates its input.
type Caster[T any] struct {
	name string

	// null decides the outcome for a null input.
	null func(fail bool) (T, bool, error)

	// guard, when set, runs before everything else and its error is
	// returned even when the caller asked not to fail.
	guard func(v any) error

	identity func(v any) (T, bool)
	native   func(v any) (T, bool)
	parse    func(s string) (T, bool)
}

// Name returns the script type name the caster produces.
func (c *Caster[T]) Name() string { return c.name }

// Attempt converts v, reporting whether it succeeded. It never returns an
// error.
func (c *Caster[T]) Attempt(v any) (T, bool) {
	t, ok, err := c.CastFailable(v, false)
	return t, ok && err == nil
}

// Cast converts v or returns a TypeCastError.
func (c *Caster[T]) Cast(v any) (T, error) {
	t, _, err := c.CastFailable(v, true)
	return t, err
}

// CastFailable converts v. On failure it returns a TypeCastError if fail is
// true, otherwise the zero value and false.
func (c *Caster[T]) CastFailable(v any, fail bool) (T, bool, error) {
	var zero T
	v = Unwrap(v)
	if c.guard != nil {
		if err := c.guard(v); err != nil {
			return zero, false, err
		}
	}
	if isNilValue(v) {
		return c.null(fail)
	}
	if c.identity != nil {
		if t, ok := c.identity(v); ok {
			return t, true, nil
		}
	}
	if c.native != nil {
		if t, ok := c.native(v); ok {
			return t, true, nil
		}
	}
	if c.parse != nil {
		if s, ok := parseInput(v); ok {
			if t, ok := c.parse(s); ok {
				return t, true, nil
			}
		}
	}
	if fail {
		return zero, false, errors.NewTypeCastError(TypeName(v), c.name)
	}
	return zero, false, nil
}

// parseInput returns the text of string-like input.
func parseInput(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case []rune:
		return string(v), true
	}
	return "", false
}

// zeroOnNull is the null policy of scalar types: null becomes the zero value.
func zeroOnNull[T any](fail bool) (T, bool, error) {
	var zero T
	return zero, true, nil
}

// failOnNull is the null policy of structured types: null is an error when
// failing, else an empty result.
func failOnNull[T any](name string) func(bool) (T, bool, error) {
	return func(fail bool) (T, bool, error) {
		var zero T
		if fail {
			return zero, false, errors.NewTypeCastError("null", name)
		}
		return zero, false, nil
	}
}

// rejectImmutable guards the modifiable casters. Only immutable values of
// the caster's own kind are rejected; anything else is left to the usual
// strategies.
func rejectImmutable[T any](name, typ string) func(any) error {
	return func(v any) error {
		if _, ok := v.(T); !ok {
			return nil
		}
		if _, ok := v.(Immutable); ok {
			return &errors.ImmutableError{Type: typ, Op: "cast to " + name}
		}
		return nil
	}
}

func identityOf[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
