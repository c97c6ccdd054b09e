package object

import (
	"strconv"
)

// ArgumentScope holds the bound arguments of one call, in binding order.
// Declared parameters are stored under their names and surplus positional
// values under "1", "2", ... by position.
type ArgumentScope struct {
	*Struct
}

// NewArgumentScope returns an empty scope.
func NewArgumentScope() *ArgumentScope {
	return &ArgumentScope{Struct: NewStruct(LinkedStruct)}
}

// ArgumentScopeOf returns a scope holding values bound by position, as if
// passed to a function that declares no parameters.
func ArgumentScopeOf(values ...any) *ArgumentScope {
	a := NewArgumentScope()
	for i, v := range values {
		a.set(positionalKey(i), v)
	}
	return a
}

func positionalKey(i int) Key {
	return NewKey(strconv.Itoa(i + 1))
}

// Value returns the argument with the given name, or nil.
func (a *ArgumentScope) Value(name string) any {
	v, _ := a.Get(NewKey(name))
	return v
}

// Lookup returns the argument with the given name and whether it is bound.
func (a *ArgumentScope) Lookup(name string) (any, bool) {
	return a.Get(NewKey(name))
}

// Positional returns every bound value in binding order.
func (a *ArgumentScope) Positional() []any {
	return append([]any(nil), a.values...)
}

// AsString returns the named argument cast to a string.
func (a *ArgumentScope) AsString(name string) (string, error) {
	return StringCaster.Cast(a.Value(name))
}

// AsNumeric returns the named argument cast to a number.
func (a *ArgumentScope) AsNumeric(name string) (float64, error) {
	return NumericCaster.Cast(a.Value(name))
}

// AsInteger returns the named argument cast to an integer.
func (a *ArgumentScope) AsInteger(name string) (int64, error) {
	return IntegerCaster.Cast(a.Value(name))
}

// AsBoolean returns the named argument cast to a boolean.
func (a *ArgumentScope) AsBoolean(name string) (bool, error) {
	return BooleanCaster.Cast(a.Value(name))
}

// AsStruct returns the named argument cast to a struct.
func (a *ArgumentScope) AsStruct(name string) (IStruct, error) {
	return StructCaster.Cast(a.Value(name))
}

// AsArray returns the named argument cast to an array.
func (a *ArgumentScope) AsArray(name string) (IArray, error) {
	return ArrayCaster.Cast(a.Value(name))
}

// AsModifiableArray returns the named argument cast to a modifiable array.
func (a *ArgumentScope) AsModifiableArray(name string) (IArray, error) {
	return ModifiableArrayCaster.Cast(a.Value(name))
}

// AsFunction returns the named argument cast to a function.
func (a *ArgumentScope) AsFunction(name string) (*Function, error) {
	return FunctionCaster.Cast(a.Value(name))
}
