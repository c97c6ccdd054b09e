package rt

import (
	"github.com/deepnoodle-ai/boxgo/errors"
	"github.com/deepnoodle-ai/boxgo/object"
)

// Get reads key from container. Structs and scopes are indexed by
// case-insensitive keys, arrays by one-based integer positions.
func Get(container, key any) any {
	container = object.Unwrap(container)
	if arr, ok := container.(object.IArray); ok {
		i := index(key)
		v, ok := arr.At(i - 1)
		if !ok {
			Throw(errors.Runtimef(errors.E3007, "array index %d out of range (length %d)", i, arr.Len()))
		}
		return v
	}
	st, ok := container.(object.IStruct)
	if !ok {
		if st, ok = object.StructCaster.Attempt(container); !ok {
			if arr, ok := object.ArrayCaster.Attempt(container); ok {
				return Get(arr, key)
			}
			Throw(errors.Runtimef(errors.E3007, "cannot read '%s' from %s",
				object.Inspect(key), object.TypeName(container)))
		}
	}
	k := keyOf(key)
	v, ok := st.Get(k)
	if !ok {
		Throw(undefined(k, st))
	}
	return v
}

// Put returns a reference to key in container, for assignment.
func Put(container, key any) *Reference {
	container = object.Unwrap(container)
	switch container.(type) {
	case object.IStruct, object.IArray:
		return &Reference{container: container, key: key}
	}
	Throw(errors.Runtimef(errors.E3007, "cannot assign '%s' in %s",
		object.Inspect(key), object.TypeName(container)))
	return nil
}

// Reference is an assignable storage location.
type Reference struct {
	container any
	key       any
}

// Get reads the current value.
func (r *Reference) Get() any {
	return Get(r.container, r.key)
}

// Set stores v and returns it.
func (r *Reference) Set(v any) any {
	var err error
	switch c := r.container.(type) {
	case object.IArray:
		err = c.Set(index(r.key)-1, v)
	case object.IStruct:
		err = c.Put(keyOf(r.key), v)
	}
	Throw(err)
	return v
}

func keyOf(key any) object.Key {
	k, err := object.KeyCaster.Cast(key)
	Throw(err)
	return k
}

func index(key any) int {
	i, err := object.IntegerCaster.Cast(key)
	Throw(err)
	if i < 1 {
		Throw(errors.Runtimef(errors.E3007, "array index %d out of range", i))
	}
	return int(i)
}

func undefined(k object.Key, st object.IStruct) error {
	names := make([]string, 0, st.Len())
	for _, key := range st.Keys() {
		names = append(names, key.Name())
	}
	return &errors.RuntimeError{
		Code:        errors.E3004,
		Message:     "variable '" + k.Name() + "' is undefined",
		Suggestions: errors.SuggestSimilar(k.Name(), names),
	}
}
