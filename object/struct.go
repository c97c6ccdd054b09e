package object

import (
	"fmt"
	"slices"
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// StructType distinguishes structs created from ordered literals. Every
// struct iterates in insertion order; the type is kept so that the kind of
// literal survives copies and casts.
type StructType uint8

const (
	DefaultStruct StructType = iota
	LinkedStruct
)

func (t StructType) String() string {
	if t == LinkedStruct {
		return "linked"
	}
	return "default"
}

// IStruct is the behavior shared by mutable and immutable structs. Mutators
// of an immutable struct return an ImmutableError.
type IStruct interface {
	Type() StructType
	Len() int
	Keys() []Key
	Get(key Key) (any, bool)
	Has(key Key) bool
	Put(key Key, value any) error
	Remove(key Key) (any, error)
	Clear() error
	Range(fn func(key Key, value any) bool)
}

// Immutable is implemented by values that reject modification.
type Immutable interface {
	immutable()
}

// IsImmutable reports whether v, after unwrapping, is an immutable value.
func IsImmutable(v any) bool {
	_, ok := Unwrap(v).(Immutable)
	return ok
}

// Struct is a mutable associative container keyed by case-insensitive Keys.
// Keys keep their insertion order. Putting an existing key replaces its
// value in place, keeping the spelling it was first stored under.
type Struct struct {
	typ    StructType
	keys   []Key
	values []any
	index  map[keyID]int
}

// NewStruct returns an empty struct of the given type.
func NewStruct(typ StructType) *Struct {
	return &Struct{typ: typ, index: map[keyID]int{}}
}

// StructOf builds a struct from alternating keys and values. Keys may be
// Key values or anything that casts to a key.
func StructOf(typ StructType, pairs ...any) (*Struct, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("struct literal requires key/value pairs (%d values given)", len(pairs))
	}
	s := NewStruct(typ)
	for i := 0; i < len(pairs); i += 2 {
		k, err := KeyCaster.Cast(pairs[i])
		if err != nil {
			return nil, err
		}
		s.set(k, pairs[i+1])
	}
	return s, nil
}

// StructFromMap builds a default struct from a native map. Entries are
// added in sorted key order so the result is deterministic.
func StructFromMap(m map[string]any) *Struct {
	s := NewStruct(DefaultStruct)
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, name := range names {
		s.set(NewKey(name), m[name])
	}
	return s
}

func (s *Struct) Type() StructType { return s.typ }
func (s *Struct) Len() int         { return len(s.keys) }
func (s *Struct) Keys() []Key      { return slices.Clone(s.keys) }

func (s *Struct) Get(key Key) (any, bool) {
	if i, ok := s.index[key.id]; ok {
		return s.values[i], true
	}
	return nil, false
}

func (s *Struct) Has(key Key) bool {
	_, ok := s.index[key.id]
	return ok
}

func (s *Struct) Put(key Key, value any) error {
	s.set(key, value)
	return nil
}

func (s *Struct) set(key Key, value any) {
	if i, ok := s.index[key.id]; ok {
		s.values[i] = value
		return
	}
	s.index[key.id] = len(s.keys)
	s.keys = append(s.keys, key)
	s.values = append(s.values, value)
}

func (s *Struct) Remove(key Key) (any, error) {
	i, ok := s.index[key.id]
	if !ok {
		return nil, nil
	}
	old := s.values[i]
	s.keys = slices.Delete(s.keys, i, i+1)
	s.values = slices.Delete(s.values, i, i+1)
	delete(s.index, key.id)
	for j := i; j < len(s.keys); j++ {
		s.index[s.keys[j].id] = j
	}
	return old, nil
}

func (s *Struct) Clear() error {
	s.keys = nil
	s.values = nil
	s.index = map[keyID]int{}
	return nil
}

func (s *Struct) Range(fn func(key Key, value any) bool) {
	for i, k := range s.keys {
		if !fn(k, s.values[i]) {
			return
		}
	}
}

// PutAll copies every entry of other into s, replacing existing entries.
func (s *Struct) PutAll(other IStruct) {
	other.Range(func(k Key, v any) bool {
		s.set(k, v)
		return true
	})
}

// Copy returns a shallow copy of s.
func (s *Struct) Copy() *Struct {
	cp := NewStruct(s.typ)
	cp.PutAll(s)
	return cp
}

func (s *Struct) String() string {
	return formatStruct(s)
}

func formatStruct(s IStruct) string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	s.Range(func(k Key, v any) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k.Name())
		b.WriteString(": ")
		b.WriteString(Inspect(v))
		return true
	})
	b.WriteString("}")
	return b.String()
}

// ImmutableStruct is a read-only struct. Every mutator returns an
// ImmutableError and leaves the contents unchanged.
type ImmutableStruct struct {
	s *Struct
}

// NewImmutableStruct returns an immutable copy of the entries of src. A nil
// src produces an empty struct.
func NewImmutableStruct(src IStruct) *ImmutableStruct {
	s := NewStruct(DefaultStruct)
	if src != nil {
		s.typ = src.Type()
		s.PutAll(src)
	}
	return &ImmutableStruct{s: s}
}

func (s *ImmutableStruct) immutable() {}

func (s *ImmutableStruct) Type() StructType                   { return s.s.typ }
func (s *ImmutableStruct) Len() int                           { return s.s.Len() }
func (s *ImmutableStruct) Keys() []Key                        { return s.s.Keys() }
func (s *ImmutableStruct) Get(key Key) (any, bool)            { return s.s.Get(key) }
func (s *ImmutableStruct) Has(key Key) bool                   { return s.s.Has(key) }
func (s *ImmutableStruct) Range(fn func(key Key, v any) bool) { s.s.Range(fn) }
func (s *ImmutableStruct) String() string                     { return formatStruct(s) }

func (s *ImmutableStruct) Put(Key, any) error {
	return &errors.ImmutableError{Type: "struct", Op: "put"}
}

func (s *ImmutableStruct) Remove(Key) (any, error) {
	return nil, &errors.ImmutableError{Type: "struct", Op: "remove"}
}

func (s *ImmutableStruct) Clear() error {
	return &errors.ImmutableError{Type: "struct", Op: "clear"}
}

// ToMutable returns a mutable copy of the struct.
func (s *ImmutableStruct) ToMutable() *Struct {
	return s.s.Copy()
}
