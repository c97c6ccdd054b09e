package compiler

import (
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

func transformIntegerLiteral(t *Transpiler, n *ast.IntegerLiteral, _ Context) (*Fragment, error) {
	v, err := strconv.ParseInt(n.Value(), 10, 64)
	if err != nil {
		return nil, t.errorf(errors.E2002, n, "invalid integer literal %q", n.Value())
	}
	return t.render(n, tplTyped, map[string]string{"type": "int64", "value": strconv.FormatInt(v, 10)})
}

func transformDecimalLiteral(t *Transpiler, n *ast.DecimalLiteral, _ Context) (*Fragment, error) {
	v, err := strconv.ParseFloat(n.Value(), 64)
	if err != nil {
		return nil, t.errorf(errors.E2002, n, "invalid decimal literal %q", n.Value())
	}
	return t.render(n, tplTyped, map[string]string{"type": "float64", "value": strconv.FormatFloat(v, 'g', -1, 64)})
}

func transformStringLiteral(t *Transpiler, n *ast.StringLiteral, _ Context) (*Fragment, error) {
	return t.render(n, tplLiteral, map[string]string{"value": strconv.Quote(n.Value())})
}

func transformBooleanLiteral(t *Transpiler, n *ast.BooleanLiteral, _ Context) (*Fragment, error) {
	if !strings.EqualFold(n.Value(), "true") && !strings.EqualFold(n.Value(), "false") {
		return nil, t.errorf(errors.E2002, n, "invalid boolean literal %q", n.Value())
	}
	return t.render(n, tplLiteral, map[string]string{"value": strconv.FormatBool(n.Bool())})
}

func transformNullLiteral(t *Transpiler, n *ast.NullLiteral, _ Context) (*Fragment, error) {
	return t.render(n, tplLiteral, map[string]string{"value": "nil"})
}

// transformStringInterpolation concatenates the string forms of its parts.
// Literal text is used as is.
func transformStringInterpolation(t *Transpiler, n *ast.StringInterpolation, _ Context) (*Fragment, error) {
	parts := n.Parts()
	if len(parts) == 0 {
		return t.render(n, tplLiteral, map[string]string{"value": `""`})
	}
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		frag, err := t.expr(p, Right)
		if err != nil {
			return nil, err
		}
		if p.Kind() != ast.KindStringLiteral {
			if frag, err = t.render(p, tplString, map[string]string{"value": frag.code}); err != nil {
				return nil, err
			}
		}
		codes = append(codes, frag.code)
	}
	return t.render(n, tplLiteral, map[string]string{"value": strings.Join(codes, " + ")})
}

func transformStructLiteral(t *Transpiler, n *ast.StructLiteral, _ Context) (*Fragment, error) {
	values := n.Values()
	if len(values)%2 != 0 {
		return nil, t.errorf(errors.E2002, n, "struct literal has a key without a value")
	}
	fn := "StructOf"
	if n.Type() == ast.Ordered {
		fn = "LinkedStructOf"
	}
	if len(values) == 0 {
		fn = "New" + strings.TrimSuffix(fn, "Of")
	}
	codes := make([]string, 0, len(values))
	for i, v := range values {
		// A bare identifier key names itself.
		if ident, ok := v.(*ast.Identifier); ok && i%2 == 0 {
			codes = append(codes, strconv.Quote(ident.Name()))
			continue
		}
		frag, err := t.expr(v, Right)
		if err != nil {
			return nil, err
		}
		codes = append(codes, frag.code)
	}
	return t.render(n, tplCall, map[string]string{"fn": fn, "values": strings.Join(codes, ", ")})
}

func transformArrayLiteral(t *Transpiler, n *ast.ArrayLiteral, _ Context) (*Fragment, error) {
	values := n.Values()
	fn := "ArrayOf"
	if len(values) == 0 {
		fn = "NewArray"
	}
	codes := make([]string, 0, len(values))
	for _, v := range values {
		frag, err := t.expr(v, Right)
		if err != nil {
			return nil, err
		}
		codes = append(codes, frag.code)
	}
	return t.render(n, tplCall, map[string]string{"fn": fn, "values": strings.Join(codes, ", ")})
}
