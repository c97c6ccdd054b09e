package object

import (
	"slices"
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// IArray is the behavior shared by mutable and immutable arrays. Indexes
// are zero-based here; the one-based indexing of scripts is applied by the
// runtime.
type IArray interface {
	Len() int
	At(i int) (any, bool)
	Items() []any
	Set(i int, value any) error
	Append(values ...any) error
	RemoveAt(i int) (any, error)
}

// Array is a mutable ordered sequence of values.
type Array struct {
	items []any
}

// NewArray returns an empty array.
func NewArray() *Array {
	return &Array{}
}

// ArrayOf returns an array holding the given values.
func ArrayOf(values ...any) *Array {
	return &Array{items: slices.Clone(values)}
}

func (a *Array) Len() int { return len(a.items) }

func (a *Array) At(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Items returns a copy of the elements.
func (a *Array) Items() []any { return slices.Clone(a.items) }

// Set stores value at index i. Setting the index one past the end appends;
// setting further out pads the gap with nulls.
func (a *Array) Set(i int, value any) error {
	if i < 0 {
		return errors.Runtimef(errors.E3007, "array index %d out of range", i+1)
	}
	for len(a.items) <= i {
		a.items = append(a.items, nil)
	}
	a.items[i] = value
	return nil
}

func (a *Array) Append(values ...any) error {
	a.items = append(a.items, values...)
	return nil
}

func (a *Array) RemoveAt(i int) (any, error) {
	if i < 0 || i >= len(a.items) {
		return nil, errors.Runtimef(errors.E3007, "array index %d out of range", i+1)
	}
	old := a.items[i]
	a.items = slices.Delete(a.items, i, i+1)
	return old, nil
}

func (a *Array) String() string { return formatArray(a) }

func formatArray(a IArray) string {
	parts := make([]string, 0, a.Len())
	for _, v := range a.Items() {
		parts = append(parts, Inspect(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ImmutableArray is a read-only array. Every mutator returns an
// ImmutableError.
type ImmutableArray struct {
	items []any
}

// NewImmutableArray returns an immutable array holding a copy of values.
func NewImmutableArray(values ...any) *ImmutableArray {
	return &ImmutableArray{items: slices.Clone(values)}
}

func (a *ImmutableArray) immutable() {}

func (a *ImmutableArray) Len() int       { return len(a.items) }
func (a *ImmutableArray) Items() []any   { return slices.Clone(a.items) }
func (a *ImmutableArray) String() string { return formatArray(a) }

func (a *ImmutableArray) At(i int) (any, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

func (a *ImmutableArray) Set(int, any) error {
	return &errors.ImmutableError{Type: "array", Op: "set"}
}

func (a *ImmutableArray) Append(...any) error {
	return &errors.ImmutableError{Type: "array", Op: "append"}
}

func (a *ImmutableArray) RemoveAt(int) (any, error) {
	return nil, &errors.ImmutableError{Type: "array", Op: "remove"}
}
