package compiler

import (
	"github.com/deepnoodle-ai/boxgo/ast"
	"github.com/deepnoodle-ai/boxgo/errors"
)

type transformFunc func(t *Transpiler, node ast.Node, ctx Context) (*Fragment, error)

// registry maps each node kind to its transformer. It is written only by
// init.
var registry [ast.KindCount]transformFunc

func init() {
	register(ast.KindProgram, transformProgram)

	register(ast.KindExpressionStatement, transformExpressionStatement)
	register(ast.KindAssignment, transformAssignment)
	register(ast.KindIfElse, transformIfElse)
	register(ast.KindWhile, transformWhile)
	register(ast.KindFor, transformFor)
	register(ast.KindFunctionDeclaration, transformFunctionDeclaration)
	register(ast.KindArgumentDeclaration, transformArgumentDeclaration)
	register(ast.KindReturn, transformReturn)

	register(ast.KindScope, transformScope)
	register(ast.KindIdentifier, transformIdentifier)
	register(ast.KindObjectAccess, transformObjectAccess)
	register(ast.KindArrayAccess, transformArrayAccess)
	register(ast.KindIntegerLiteral, transformIntegerLiteral)
	register(ast.KindDecimalLiteral, transformDecimalLiteral)
	register(ast.KindStringLiteral, transformStringLiteral)
	register(ast.KindBooleanLiteral, transformBooleanLiteral)
	register(ast.KindNullLiteral, transformNullLiteral)
	register(ast.KindStringInterpolation, transformStringInterpolation)
	register(ast.KindStructLiteral, transformStructLiteral)
	register(ast.KindArrayLiteral, transformArrayLiteral)
	register(ast.KindUnaryOperation, transformUnaryOperation)
	register(ast.KindBinaryOperation, transformBinaryOperation)
	register(ast.KindTernaryOperation, transformTernaryOperation)
	register(ast.KindFunctionInvocation, transformFunctionInvocation)
	register(ast.KindArgument, transformArgument)
}

func register[N ast.Node](kind ast.Kind, fn func(t *Transpiler, node N, ctx Context) (*Fragment, error)) {
	if registry[kind] != nil {
		panic("compiler: duplicate transformer for " + kind.String())
	}
	registry[kind] = func(t *Transpiler, node ast.Node, ctx Context) (*Fragment, error) {
		n, ok := node.(N)
		if !ok {
			return nil, t.errorf(errors.E2001, node, "unexpected node type %T for kind %s", node, kind)
		}
		return fn(t, n, ctx)
	}
}

// Supports reports whether a transformer is registered for kind.
func Supports(kind ast.Kind) bool {
	return kind < ast.KindCount && registry[kind] != nil
}
