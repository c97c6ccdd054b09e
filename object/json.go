package object

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes the struct as a JSON object, keeping key order and
// original key spelling.
func (s *Struct) MarshalJSON() ([]byte, error) { return marshalStruct(s) }

// MarshalJSON encodes the struct as a JSON object.
func (s *ImmutableStruct) MarshalJSON() ([]byte, error) { return marshalStruct(s) }

func (a *Array) MarshalJSON() ([]byte, error)          { return json.Marshal(a.items) }
func (a *ImmutableArray) MarshalJSON() ([]byte, error) { return json.Marshal(a.items) }

func (k Key) MarshalJSON() ([]byte, error) { return json.Marshal(k.Name()) }

// MarshalJSON encodes a function as its signature string.
func (f *Function) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (d *DynamicObject) MarshalJSON() ([]byte, error) { return json.Marshal(d.value) }

func marshalStruct(s IStruct) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	buf.WriteByte('{')
	first := true
	s.Range(func(k Key, v any) bool {
		var name, value []byte
		if name, err = json.Marshal(k.Name()); err != nil {
			return false
		}
		if value, err = json.Marshal(v); err != nil {
			return false
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
