package ast

import (
	"testing"

	"github.com/deepnoodle-ai/boxgo/internal/token"
	"github.com/stretchr/testify/require"
)

func TestDecodeProgram(t *testing.T) {
	src := `{
		"kind": "Program",
		"statements": [
			{
				"kind": "Assignment",
				"source": "variables.total = 1",
				"range": {"file": "main.bx", "start": {"char": 0, "line": 0, "column": 0}, "end": {"char": 19, "line": 0, "column": 19}},
				"left": {
					"kind": "ObjectAccess",
					"context": {"kind": "Scope", "name": "variables"},
					"access": {"kind": "Identifier", "name": "total"}
				},
				"right": {"kind": "IntegerLiteral", "value": "1"}
			},
			{
				"kind": "ExpressionStatement",
				"expression": {
					"kind": "FunctionInvocation",
					"name": "writeOutput",
					"arguments": [{"kind": "StringLiteral", "value": "hi"}]
				}
			}
		]
	}`
	prog, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Statements(), 2)

	assign, ok := prog.Statements()[0].(*Assignment)
	require.True(t, ok)
	require.Equal(t, "variables.total = 1", assign.Source())
	require.Equal(t, "main.bx", assign.Range().Start.File)
	require.Equal(t, 19, assign.Range().End.Column)

	call := prog.Statements()[1].(*ExpressionStatement).Expression().(*FunctionInvocation)
	require.Equal(t, "writeOutput", call.Name())
	require.Len(t, call.Arguments(), 1)
	require.False(t, call.Arguments()[0].IsNamed())

	_, ok = CheckParents(prog)
	require.True(t, ok)
}

func TestToMapThenDecode(t *testing.T) {
	fn := NewFunctionDeclaration("add", []*ArgumentDeclaration{
		NewArgumentDeclaration(true, "numeric", "a", nil, "", nil, Meta{}),
		NewArgumentDeclaration(false, "numeric", "b", NewIntegerLiteral("1", Meta{}), "second", map[string]string{"doc": "x"}, Meta{}),
	}, []Stmt{
		NewReturn(NewBinaryOperation(NewIdentifier("a", Meta{}), Add, NewIdentifier("b", Meta{}), Meta{}), Meta{}),
	}, "numeric", At(token.Position{Line: 3}, "function add"))

	data, err := MarshalJSON(NewProgram([]Stmt{fn}, Meta{}))
	require.NoError(t, err)

	prog, err := DecodeProgram(data)
	require.NoError(t, err)
	decl := prog.Statements()[0].(*FunctionDeclaration)
	require.Equal(t, "add", decl.Name())
	require.Equal(t, "numeric", decl.ReturnType())
	require.Equal(t, 3, decl.Range().Start.Line)
	require.Len(t, decl.Arguments(), 2)
	require.True(t, decl.Arguments()[0].Required())
	require.Nil(t, decl.Arguments()[0].Default())
	require.Equal(t, "1", decl.Arguments()[1].Default().String())
	require.Equal(t, "x", decl.Arguments()[1].Metadata()["doc"])
	require.Equal(t, fn.String(), decl.String())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown kind", `{"kind": "Bogus"}`, `unknown node kind "Bogus"`},
		{"missing child", `{"kind": "Assignment", "right": {"kind": "NullLiteral"}}`, `missing expression field "left"`},
		{"statement as expression", `{"kind": "ExpressionStatement", "expression": {"kind": "Return"}}`, "not an expression"},
		{"odd struct", `{"kind": "StructLiteral", "values": [{"kind": "NullLiteral"}]}`, "odd number"},
		{"bad operator", `{"kind": "UnaryOperation", "operator": "??", "operand": {"kind": "NullLiteral"}}`, "unknown unary operator"},
		{"bad json", `{`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
