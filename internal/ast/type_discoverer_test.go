package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassandahiru/soulc/internal/lexer"
)

func TestDiscoverTypesSeedsBuiltinNames(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", nil)

	_, scope, err := DiscoverTypes(module)
	require.NoError(t, err)

	for _, name := range []string{"bool", "chr", "f32", "f64", "i32", "i64", "str", "void"} {
		assert.True(t, scope.HasType(name), "expected builtin %q to be seeded", name)
	}
}

func TestDiscoverTypesRegistersStruct(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewStructDeclaration(pos, "Point", []Node{
			NewVariableDeclaration(pos, "x", "i32", nil, false),
			NewVariableDeclaration(pos, "y", "i32", nil, false),
		}),
	})

	out, scope, err := DiscoverTypes(module)
	require.NoError(t, err)
	require.True(t, scope.HasType("Point"))

	decl, ok := out.Stmts[0].(*StructDeclarationNode)
	require.True(t, ok)
	assert.Len(t, decl.Fields, 2)
}

func TestDiscoverTypesRedefinitionBecomesErrorNode(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewStructDeclaration(pos, "Point", nil),
		NewStructDeclaration(pos, "Point", nil),
	})

	out, _, err := DiscoverTypes(module)
	require.NoError(t, err)

	_, firstIsStruct := out.Stmts[0].(*StructDeclarationNode)
	assert.True(t, firstIsStruct)

	errNode, ok := out.Stmts[1].(*ErrorNode)
	require.True(t, ok)
	assert.Contains(t, errNode.Message, "redefinition of type 'Point'")
}

func TestDiscoverTypesUnknownFieldTypeBecomesErrorNode(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewStructDeclaration(pos, "Bad", []Node{
			NewVariableDeclaration(pos, "x", "nosuchtype", nil, false),
		}),
	})

	out, _, err := DiscoverTypes(module)
	require.NoError(t, err)

	decl := out.Stmts[0].(*StructDeclarationNode)
	require.Len(t, decl.Fields, 1)

	errNode, ok := decl.Fields[0].(*ErrorNode)
	require.True(t, ok)
	assert.Contains(t, errNode.Message, "cannot resolve type 'nosuchtype'")
}

func TestDiscoverTypesOnlyInspectsTopLevelStructs(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	module := NewModule(pos, "m", []Node{
		NewFunctionDeclaration(pos, "f", "void", nil, NewBlock(pos, nil)),
	})

	out, scope, err := DiscoverTypes(module)
	require.NoError(t, err)
	assert.Len(t, out.Stmts, 1)
	assert.False(t, scope.HasType("f"))
}
