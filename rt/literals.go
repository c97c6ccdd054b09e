package rt

import (
	"github.com/deepnoodle-ai/boxgo/object"
)

// NewStruct returns an empty unordered struct.
func NewStruct() *object.Struct {
	return object.NewStruct(object.DefaultStruct)
}

// StructOf builds an unordered struct from alternating keys and values.
func StructOf(pairs ...any) *object.Struct {
	return structOf(object.DefaultStruct, pairs)
}

// NewLinkedStruct returns an empty ordered struct.
func NewLinkedStruct() *object.Struct {
	return object.NewStruct(object.LinkedStruct)
}

// LinkedStructOf builds an ordered struct from alternating keys and values.
func LinkedStructOf(pairs ...any) *object.Struct {
	return structOf(object.LinkedStruct, pairs)
}

func structOf(typ object.StructType, pairs []any) *object.Struct {
	s, err := object.StructOf(typ, pairs...)
	Throw(err)
	return s
}

// NewArray returns an empty array.
func NewArray() *object.Array {
	return object.NewArray()
}

// ArrayOf returns an array of the given values.
func ArrayOf(values ...any) *object.Array {
	return object.ArrayOf(values...)
}
