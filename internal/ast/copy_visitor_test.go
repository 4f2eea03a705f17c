package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

func TestCopyOfNilIsNil(t *testing.T) {
	out, err := Copy(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCopyPreservesStringifyRoundTrip(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	tree := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "i32", []Parameter{{Name: "a", TypeName: "i32"}},
			NewBlock(pos, []Node{
				NewReturn(pos, NewBinary(pos, OpAdd,
					NewIdentifierLiteral(pos, "a"),
					NewLiteral(pos, value.NewI64(1), LiteralInt32))),
			})),
	})

	want, err := Stringify(tree, false)
	require.NoError(t, err)

	cloned, err := Copy(tree)
	require.NoError(t, err)

	got, err := Stringify(cloned, false)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestCopyProducesDistinctNodeIdentity(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	tree := NewVariableDeclaration(pos, "x", "i32", NewLiteral(pos, value.NewI64(1), LiteralInt32), true)

	cloned, err := Copy(tree)
	require.NoError(t, err)

	clonedDecl, ok := cloned.(*VariableDeclarationNode)
	require.True(t, ok)
	assert.NotSame(t, tree, clonedDecl)
	assert.NotSame(t, tree.Init, clonedDecl.Init)
	assert.Equal(t, tree.Name, clonedDecl.Name)
}

func TestCopyPreservesResolvedType(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	lit := NewLiteral(pos, value.NewI64(1), LiteralInt32)
	lit.SetType(types.Primitive(types.Int32))

	cloned, err := Copy(lit)
	require.NoError(t, err)

	assert.Equal(t, lit.Type(), cloned.Type())
}
