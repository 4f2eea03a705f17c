package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.ModuleNode {
	t.Helper()
	l := lexer.New(src, "test.soul")
	p := New(l)
	return p.ParseModule("test")
}

func requireNoErrors(t *testing.T, module *ast.ModuleNode) {
	t.Helper()
	collector := ast.NewErrorCollectorVisitor()
	_, err := module.Accept(collector)
	require.NoError(t, err)
	require.Empty(t, collector.Found, "expected no ErrorNodes, got %v", collector.Found)
}

func TestParseEmptyFunction(t *testing.T) {
	module := parseSource(t, `func main() { }`)
	requireNoErrors(t, module)
	require.Len(t, module.Stmts, 1)

	fn, ok := module.Stmts[0].(*ast.FunctionDeclarationNode)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, "void", fn.ReturnTypeName)
	assert.Empty(t, fn.Params)
	assert.Empty(t, fn.Body.Stmts)
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	module := parseSource(t, `func add(a i32, b i32) i32 { return a + b; }`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "i32", fn.ReturnTypeName)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, ast.Parameter{Name: "a", TypeName: "i32"}, fn.Params[0])
	assert.Equal(t, ast.Parameter{Name: "b", TypeName: "i32"}, fn.Params[1])

	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnNode)
	require.True(t, ok)
	bin, ok := ret.Expr.(*ast.BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParseVarAndLetMutability(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var x i32 = 1;
			let y i32 = 2;
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	require.Len(t, fn.Body.Stmts, 2)

	varDecl := fn.Body.Stmts[0].(*ast.VariableDeclarationNode)
	assert.Equal(t, "x", varDecl.Name)
	assert.True(t, varDecl.IsMutable)

	letDecl := fn.Body.Stmts[1].(*ast.VariableDeclarationNode)
	assert.Equal(t, "y", letDecl.Name)
	assert.False(t, letDecl.IsMutable)
}

func TestParseIfElse(t *testing.T) {
	module := parseSource(t, `
		func f() {
			if (true) {
				return;
			} else if (false) {
				return;
			} else {
				return;
			}
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	ifNode, ok := fn.Body.Stmts[0].(*ast.IfNode)
	require.True(t, ok)
	require.NotNil(t, ifNode.Else)

	nestedIf, ok := ifNode.Else.Stmts[0].(*ast.IfNode)
	require.True(t, ok)
	require.NotNil(t, nestedIf.Else)
}

func TestParseWhileLoop(t *testing.T) {
	module := parseSource(t, `
		func f() {
			while (x < 10) {
				x = x + 1;
			}
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	whileNode, ok := fn.Body.Stmts[0].(*ast.WhileNode)
	require.True(t, ok)
	require.Len(t, whileNode.Body.Stmts, 1)
}

func TestParseForLoop(t *testing.T) {
	module := parseSource(t, `
		func f() {
			for (var i i32 = 0; i < 10; i = i + 1) {
				continue;
			}
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	forNode, ok := fn.Body.Stmts[0].(*ast.ForLoopNode)
	require.True(t, ok)
	require.NotNil(t, forNode.Init)
	require.NotNil(t, forNode.Cond)
	require.NotNil(t, forNode.Update)
}

func TestParseForeachLoop(t *testing.T) {
	module := parseSource(t, `
		func f() {
			foreach (item in items) {
				break;
			}
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	foreachNode, ok := fn.Body.Stmts[0].(*ast.ForeachLoopNode)
	require.True(t, ok)
	assert.Equal(t, "item", foreachNode.Variable)

	loopCtrl, ok := foreachNode.Body.Stmts[0].(*ast.LoopControlNode)
	require.True(t, ok)
	assert.Equal(t, ast.Break, loopCtrl.Kind)
}

func TestParseFunctionCall(t *testing.T) {
	module := parseSource(t, `
		func f() {
			print(1, "hi", x);
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	call, ok := fn.Body.Stmts[0].(*ast.FunctionCallNode)
	require.True(t, ok)
	assert.Equal(t, "print", call.Name)
	require.Len(t, call.Args, 3)
}

func TestParseCastExpression(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var x i32 = 1;
			var y f64 = x as f64;
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	decl := fn.Body.Stmts[1].(*ast.VariableDeclarationNode)
	cast, ok := decl.Init.(*ast.CastNode)
	require.True(t, ok)
	assert.Equal(t, "f64", cast.TargetTypeName)
}

func TestParseCompoundAssignmentDesugarsToBinary(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var x i32 = 1;
			x += 2;
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	bin, ok := fn.Body.Stmts[1].(*ast.BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpAddAssign, bin.Op)

	lhs, ok := bin.Lhs.(*ast.LiteralNode)
	require.True(t, ok)
	assert.Equal(t, "x", lhs.IdentifierName())
}

func TestParseAssignmentToNonIdentifierIsError(t *testing.T) {
	module := parseSource(t, `
		func f() {
			1 = 2;
		}
	`)
	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)

	collector := ast.NewErrorCollectorVisitor()
	_, err := fn.Body.Accept(collector)
	require.NoError(t, err)
	assert.NotEmpty(t, collector.Found)
}

func TestParseOperatorPrecedence(t *testing.T) {
	module := parseSource(t, `
		func f() {
			return 1 + 2 * 3;
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	ret := fn.Body.Stmts[0].(*ast.ReturnNode)
	top, ok := ret.Expr.(*ast.BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, top.Op)

	rhs, ok := top.Rhs.(*ast.BinaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseUnaryAndIncrement(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var x i32 = 1;
			x++;
			return -x;
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	inc, ok := fn.Body.Stmts[1].(*ast.UnaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpIncrement, inc.Op)

	ret := fn.Body.Stmts[2].(*ast.ReturnNode)
	neg, ok := ret.Expr.(*ast.UnaryNode)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, neg.Op)
}

func TestParseStructDeclaration(t *testing.T) {
	module := parseSource(t, `
		struct Point {
			x i32;
			y i32;
		}
	`)
	requireNoErrors(t, module)

	st, ok := module.Stmts[0].(*ast.StructDeclarationNode)
	require.True(t, ok)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)

	field0 := st.Fields[0].(*ast.VariableDeclarationNode)
	assert.Equal(t, "x", field0.Name)
	assert.Equal(t, "i32", field0.TypeName)
}

func TestParseMissingSemicolonProducesErrorNode(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var x i32 = 1
			return x;
		}
	`)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	_, isError := fn.Body.Stmts[0].(*ast.ErrorNode)
	assert.True(t, isError)
}

func TestParseStringAndCharEscapes(t *testing.T) {
	module := parseSource(t, `
		func f() {
			var s str = "hi\n";
			var c chr = '\t';
		}
	`)
	requireNoErrors(t, module)

	fn := module.Stmts[0].(*ast.FunctionDeclarationNode)
	sDecl := fn.Body.Stmts[0].(*ast.VariableDeclarationNode)
	sLit := sDecl.Init.(*ast.LiteralNode)
	assert.Equal(t, "hi\n", sLit.Value.AsString())
}
