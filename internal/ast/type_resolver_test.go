package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

func TestResolveTypesLiteralFromLiteralType(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "i32", nil, NewBlock(pos, []Node{
			NewReturn(pos, NewLiteral(pos, value.NewI64(1), LiteralInt32)),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[0].(*ReturnNode)
	assert.Equal(t, types.Primitive(types.Int32), ret.Expr.Type())
}

func TestResolveTypesIdentifierFromLocalsNotValueTag(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "i32", nil, NewBlock(pos, []Node{
			NewVariableDeclaration(pos, "x", "i32", NewLiteral(pos, value.NewI64(1), LiteralInt32), true),
			NewReturn(pos, NewIdentifierLiteral(pos, "x")),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[1].(*ReturnNode)
	assert.Equal(t, types.Primitive(types.Int32), ret.Expr.Type())
}

func TestResolveTypesBinaryWidensToCommonImplicitType(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "f64", nil, NewBlock(pos, []Node{
			NewVariableDeclaration(pos, "x", "i32", NewLiteral(pos, value.NewI64(1), LiteralInt32), true),
			NewVariableDeclaration(pos, "y", "f64", NewLiteral(pos, value.NewF64(1), LiteralFloat64), true),
			NewReturn(pos, NewBinary(pos, OpAdd, NewIdentifierLiteral(pos, "x"), NewIdentifierLiteral(pos, "y"))),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[2].(*ReturnNode)
	assert.Equal(t, types.Primitive(types.Float64), ret.Expr.Type())
}

func TestResolveTypesComparisonIsAlwaysBoolean(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "bool", nil, NewBlock(pos, []Node{
			NewVariableDeclaration(pos, "x", "i32", NewLiteral(pos, value.NewI64(1), LiteralInt32), true),
			NewReturn(pos, NewBinary(pos, OpLess, NewIdentifierLiteral(pos, "x"), NewLiteral(pos, value.NewI64(2), LiteralInt32))),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[1].(*ReturnNode)
	assert.Equal(t, types.Primitive(types.Boolean), ret.Expr.Type())
}

func TestResolveTypesImpossibleCastBecomesErrorNode(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "void", nil, NewBlock(pos, []Node{
			NewVariableDeclaration(pos, "x", "str", NewLiteral(pos, value.NewString("hi"), LiteralString), true),
			NewVariableDeclaration(pos, "y", "bool",
				NewCast(pos, "bool", NewIdentifierLiteral(pos, "x")), true),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	decl := fn.Body.Stmts[1].(*VariableDeclarationNode)
	_, isError := decl.Init.(*ErrorNode)
	assert.True(t, isError)
}

func TestResolveTypesUnknownIdentifierStaysUnknown(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "void", nil, NewBlock(pos, []Node{
			NewReturn(pos, NewIdentifierLiteral(pos, "nosuchvar")),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[0].(*ReturnNode)
	assert.True(t, ret.Expr.Type().IsUnknown())
}

func TestResolveTypesIncrementPreservesNumericType(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "void", nil, NewBlock(pos, []Node{
			NewVariableDeclaration(pos, "x", "i32", NewLiteral(pos, value.NewI64(1), LiteralInt32), true),
			NewUnary(pos, OpIncrement, NewIdentifierLiteral(pos, "x")),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	inc := fn.Body.Stmts[1].(*UnaryNode)
	assert.Equal(t, types.Primitive(types.Int32), inc.Type())
}

func TestResolveTypesLogicalNotIsBoolean(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "bool", nil, NewBlock(pos, []Node{
			NewReturn(pos, NewUnary(pos, OpLogicalNot, NewLiteral(pos, value.NewBool(true), LiteralBoolean))),
		})),
	})

	out, _, err := ResolveTypes(module)
	require.NoError(t, err)

	fn := out.Stmts[0].(*FunctionDeclarationNode)
	ret := fn.Body.Stmts[0].(*ReturnNode)
	assert.Equal(t, types.Primitive(types.Boolean), ret.Expr.Type())
}
