package object

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/boxgo/errors"
)

// Param declares one function parameter. Params are values; a function
// keeps its own copy of the list it was created with.
type Param struct {
	Required   bool
	Type       string
	Name       Key
	Default    any
	HasDefault bool
	Hint       string
	Metadata   map[Key]any
}

// NewParam declares a parameter. The type defaults to "any". An optional
// trailing value is the default.
func NewParam(required bool, typ, name string, def ...any) Param {
	if typ == "" {
		typ = "any"
	}
	p := Param{Required: required, Type: typ, Name: NewKey(name)}
	if len(def) > 0 {
		p.Default = def[0]
		p.HasDefault = true
	}
	return p
}

// WithHint returns a copy of p with the given hint.
func (p Param) WithHint(hint string) Param {
	p.Hint = hint
	return p
}

// WithMetadata returns a copy of p with an extra metadata entry.
func (p Param) WithMetadata(name string, value any) Param {
	md := make(map[Key]any, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		md[k] = v
	}
	md[NewKey(name)] = value
	p.Metadata = md
	return p
}

func (p Param) String() string {
	var b strings.Builder
	if p.Required {
		b.WriteString("required ")
	}
	if p.Type != "" && p.Type != "any" {
		b.WriteString(p.Type)
		b.WriteByte(' ')
	}
	b.WriteString(p.Name.Name())
	if p.HasDefault {
		fmt.Fprintf(&b, "=%s", Inspect(p.Default))
	}
	return b.String()
}

// coerce converts v to the declared type. Conversion failures name the
// parameter.
func (p Param) coerce(v any) (any, error) {
	if p.Type == "" || strings.EqualFold(p.Type, "any") {
		return v, nil
	}
	out, err := Cast(v, p.Type, true)
	if err != nil {
		var castErr *errors.TypeCastError
		if errors.As(err, &castErr) {
			return nil, castErr.ForParam(p.Name.Name())
		}
		return nil, err
	}
	return out, nil
}
