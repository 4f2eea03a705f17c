package ast

import (
	"testing"

	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pos = lexer.Position{}

func ident(name string) *LiteralNode {
	return NewIdentifierLiteral(pos, name)
}

func TestDesugarCompoundAssign(t *testing.T) {
	n := NewBinary(pos, OpAddAssign, ident("x"), NewLiteral(pos, value.NewI64(1), LiteralInt64))
	out, err := Desugar(n)
	require.NoError(t, err)

	assign, ok := out.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAssign, assign.Op)

	lhs, ok := assign.Lhs.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, "x", lhs.IdentifierName())

	rhs, ok := assign.Rhs.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAdd, rhs.Op)

	rhsLhs, ok := rhs.Lhs.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, "x", rhsLhs.IdentifierName())

	// The two lhs clones must be independently owned, not shared.
	assert.NotSame(t, lhs, rhsLhs)
}

func TestDesugarCompoundAssignNestedInsideBlock(t *testing.T) {
	compound := NewBinary(pos, OpSubAssign, ident("y"), NewLiteral(pos, value.NewI64(2), LiteralInt64))
	block := NewBlock(pos, []Node{compound})

	out, err := Desugar(block)
	require.NoError(t, err)

	outBlock, ok := out.(*BlockNode)
	require.True(t, ok)
	require.Len(t, outBlock.Stmts, 1)

	rewritten, ok := outBlock.Stmts[0].(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAssign, rewritten.Op)
}

func TestDesugarForLoop(t *testing.T) {
	init := NewVariableDeclaration(pos, "i", "i32", NewLiteral(pos, value.NewI64(0), LiteralInt32), true)
	cond := NewBinary(pos, OpLess, ident("i"), NewLiteral(pos, value.NewI64(10), LiteralInt32))
	update := NewUnary(pos, OpIncrement, ident("i"))
	body := NewBlock(pos, []Node{NewLoopControl(pos, Continue)})
	loop := NewForLoop(pos, init, cond, update, body)

	out, err := Desugar(loop)
	require.NoError(t, err)

	outer, ok := out.(*BlockNode)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)

	_, ok = outer.Stmts[0].(*VariableDeclarationNode)
	assert.True(t, ok, "init statement should be hoisted first")

	while, ok := outer.Stmts[1].(*WhileNode)
	require.True(t, ok)
	require.Len(t, while.Body.Stmts, 2)
	_, ok = while.Body.Stmts[0].(*LoopControlNode)
	assert.True(t, ok)
	updateAssign, ok := while.Body.Stmts[1].(*BinaryNode)
	require.True(t, ok, "update statement should be appended last, itself desugared")
	assert.Equal(t, OpAssign, updateAssign.Op)
}

func TestDesugarIncrement(t *testing.T) {
	n := NewUnary(pos, OpIncrement, ident("i"))
	out, err := Desugar(n)
	require.NoError(t, err)

	assign, ok := out.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAssign, assign.Op)

	lhs, ok := assign.Lhs.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, "i", lhs.IdentifierName())

	rhs, ok := assign.Rhs.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpAdd, rhs.Op)

	rhsLhs, ok := rhs.Lhs.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, "i", rhsLhs.IdentifierName())
	assert.NotSame(t, lhs, rhsLhs)

	one, ok := rhs.Rhs.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, int64(1), one.Value.AsI64())
}

func TestDesugarDecrement(t *testing.T) {
	n := NewUnary(pos, OpDecrement, ident("i"))
	out, err := Desugar(n)
	require.NoError(t, err)

	assign, ok := out.(*BinaryNode)
	require.True(t, ok)
	rhs, ok := assign.Rhs.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, OpSub, rhs.Op)
}

func TestDesugarForLoopWithoutInit(t *testing.T) {
	cond := NewLiteral(pos, value.NewBool(true), LiteralBoolean)
	body := NewBlock(pos, nil)
	loop := NewForLoop(pos, nil, cond, nil, body)

	out, err := Desugar(loop)
	require.NoError(t, err)

	outer, ok := out.(*BlockNode)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 1, "no init means only the while survives")

	_, ok = outer.Stmts[0].(*WhileNode)
	assert.True(t, ok)
}

func TestDesugarPassesThroughUnrelatedNodes(t *testing.T) {
	n := NewBinary(pos, OpAdd, NewLiteral(pos, value.NewI64(1), LiteralInt64), NewLiteral(pos, value.NewI64(2), LiteralInt64))
	out, err := Desugar(n)
	require.NoError(t, err)

	before, err := Stringify(n, false)
	require.NoError(t, err)
	after, err := Stringify(out, false)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
