package lower

import (
	"strings"
	"testing"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/ir"
	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pos = lexer.Position{}

func ident(name string) *ast.LiteralNode { return ast.NewIdentifierLiteral(pos, name) }

// compile runs the full copy -> type_discover -> type_resolve -> desugar ->
// lower pipeline (§6.2) over a hand-built module, mirroring
// internal/pipeline.Compile without its validate steps.
func compile(t *testing.T, module *ast.ModuleNode) string {
	t.Helper()
	typed, scope, err := ast.ResolveTypes(module)
	require.NoError(t, err)

	desugaredNode, err := ast.Desugar(typed)
	require.NoError(t, err)
	desugared, ok := desugaredNode.(*ast.ModuleNode)
	require.True(t, ok)

	mod, err := Lower(desugared, scope)
	require.NoError(t, err)
	return ir.Print(mod)
}

func fn(name, returnType string, params []ast.Parameter, stmts []ast.Node) *ast.FunctionDeclarationNode {
	return ast.NewFunctionDeclaration(pos, name, returnType, params, ast.NewBlock(pos, stmts))
}

func module(fns ...*ast.FunctionDeclarationNode) *ast.ModuleNode {
	stmts := make([]ast.Node, len(fns))
	for i, f := range fns {
		stmts[i] = f
	}
	return ast.NewModule(pos, "m", stmts)
}

// TestLowerLiteralsScenario is grounded on spec's S1.
func TestLowerLiteralsScenario(t *testing.T) {
	stmts := []ast.Node{
		ast.NewLiteral(pos, value.NewBool(true), ast.LiteralBoolean),
		ast.NewLiteral(pos, value.NewChar('c'), ast.LiteralChar),
		ast.NewLiteral(pos, value.NewF64(3.14), ast.LiteralFloat32),
		ast.NewLiteral(pos, value.NewF64(5.46), ast.LiteralFloat64),
		ast.NewLiteral(pos, value.NewI64(123), ast.LiteralInt32),
		ast.NewLiteral(pos, value.NewI64(456), ast.LiteralInt64),
		ast.NewLiteral(pos, value.NewString("my_string"), ast.LiteralString),
	}
	out := compile(t, module(fn("main", "i32", nil, stmts)))

	assert.True(t, strings.Contains(out, "fn @main() :: int32 {"))
	assert.True(t, strings.Contains(out, "%0 = Const(true) :: bool"))
	assert.True(t, strings.Contains(out, "%1 = Const(c) :: char"))
	assert.True(t, strings.Contains(out, "%2 = Const(3.14) :: float32"))
	assert.True(t, strings.Contains(out, "%3 = Const(5.46) :: float64"))
	assert.True(t, strings.Contains(out, "%4 = Const(123) :: int32"))
	assert.True(t, strings.Contains(out, "%5 = Const(456) :: int64"))
	assert.True(t, strings.Contains(out, "%6 = Const(my_string) :: string"))
}

// TestLowerCastScenario is grounded on spec's S2.
func TestLowerCastScenario(t *testing.T) {
	stmt := ast.NewCast(pos, "str", ast.NewLiteral(pos, value.NewI64(123), ast.LiteralInt32))
	out := compile(t, module(fn("f", "str", nil, []ast.Node{stmt})))

	require.True(t, strings.Contains(out, "%0 = Const(123) :: int32"))
	assert.True(t, strings.Contains(out, "%1 = Cast(%0) :: string"))
}

// TestLowerIfScenario is grounded on spec's S3.
func TestLowerIfScenario(t *testing.T) {
	then := ast.NewBlock(pos, []ast.Node{
		ast.NewLiteral(pos, value.NewString("then_branch_string"), ast.LiteralString),
	})
	els := ast.NewBlock(pos, []ast.Node{
		ast.NewLiteral(pos, value.NewBool(false), ast.LiteralBoolean),
	})
	ifStmt := ast.NewIf(pos, ast.NewLiteral(pos, value.NewBool(true), ast.LiteralBoolean), then, els)
	out := compile(t, module(fn("f", "void", nil, []ast.Node{ifStmt})))

	assert.True(t, strings.Contains(out, "%0 = Const(true) :: bool"))
	assert.True(t, strings.Contains(out, "JumpIf(%0, #1, #2)"))
	assert.True(t, strings.Contains(out, "%1 = Const(then_branch_string) :: string"))
	assert.True(t, strings.Contains(out, "Jump(#3)"))
	assert.True(t, strings.Contains(out, "%2 = Const(false) :: bool"))
}

// TestLowerForLoopScenario is grounded on spec's S4: the for-loop desugars
// to Block([VariableDeclaration(index), While(index<10, Block(inner,
// index++))]), and the cond block's Phi must reconstruct "index" correctly
// across the loop's own back edge.
func TestLowerForLoopScenario(t *testing.T) {
	init := ast.NewVariableDeclaration(pos, "index", "i32",
		ast.NewLiteral(pos, value.NewI64(0), ast.LiteralInt32), true)
	cond := ast.NewBinary(pos, ast.OpLess, ident("index"),
		ast.NewLiteral(pos, value.NewI64(10), ast.LiteralInt32))
	update := ast.NewUnary(pos, ast.OpIncrement, ident("index"))
	body := ast.NewBlock(pos, []ast.Node{
		ast.NewVariableDeclaration(pos, "inner", "f32",
			ast.NewLiteral(pos, value.NewF64(3.14), ast.LiteralFloat32), false),
	})
	loop := ast.NewForLoop(pos, init, cond, update, body)
	out := compile(t, module(fn("f", "void", nil, []ast.Node{loop})))

	assert.True(t, strings.Contains(out, "Upsilon(\"index\""))
	assert.True(t, strings.Contains(out, "Phi(\"index\""))
	assert.True(t, strings.Contains(out, ":: int32"))
	assert.True(t, strings.Contains(out, "Less("))
}

// TestLowerAssignmentVsRead is grounded on spec's S5.
func TestLowerAssignmentVsRead(t *testing.T) {
	stmts := []ast.Node{
		ast.NewVariableDeclaration(pos, "first_variable", "i32",
			ast.NewLiteral(pos, value.NewI64(1), ast.LiteralInt32), true),
		ast.NewBinary(pos, ast.OpAssign, ident("first_variable"),
			ast.NewLiteral(pos, value.NewI64(3), ast.LiteralInt32)),
		ast.NewVariableDeclaration(pos, "second_variable", "i32",
			ast.NewLiteral(pos, value.NewI64(5), ast.LiteralInt32), true),
		ast.NewBinary(pos, ast.OpAssign, ident("second_variable"), ident("first_variable")),
	}
	out := compile(t, module(fn("f", "void", nil, stmts)))

	assert.True(t, strings.Contains(out, "%0 = Const(1) :: int32"))
	assert.True(t, strings.Contains(out, "Upsilon(\"first_variable\", %0)"))
	assert.True(t, strings.Contains(out, "%1 = Const(3) :: int32"))
	assert.True(t, strings.Contains(out, "Upsilon(\"first_variable\", %1)"))
	assert.True(t, strings.Contains(out, "%2 = Const(5) :: int32"))
	assert.True(t, strings.Contains(out, "Upsilon(\"second_variable\", %2)"))
	assert.True(t, strings.Contains(out, "%3 = Phi(\"first_variable\""))
	assert.True(t, strings.Contains(out, "Upsilon(\"second_variable\", %3)"))
}

// TestLowerParameterBinding exercises the FunctionDeclaration dispatch's
// sentinel-Const+Upsilon parameter seeding (§4.10, per DESIGN.md's
// "function parameter reads" decision) and a bare identifier read.
func TestLowerParameterBinding(t *testing.T) {
	params := []ast.Parameter{{Name: "x", TypeName: "i32"}}
	out := compile(t, module(fn("identity", "i32", params, []ast.Node{
		ast.NewReturn(pos, ident("x")),
	})))

	assert.True(t, strings.Contains(out, "fn @identity(int32) :: int32 {"))
	assert.True(t, strings.Contains(out, "%0 = Const(x) :: int32"))
	assert.True(t, strings.Contains(out, "Upsilon(\"x\", %0)"))
	assert.True(t, strings.Contains(out, "Upsilon(\"$return\", %"))
	// The Return jumps to the function's exit block, which is itself
	// terminated by a placeholder Noop rather than a dedicated Return
	// instruction (the instruction set stays closed).
	assert.True(t, strings.Contains(out, "Noop()"))
}

// TestLowerWhileBreakJumpsToOut exercises the LoopControl open-question
// resolution: break must leave the loop, not its condition.
func TestLowerWhileBreakJumpsToOut(t *testing.T) {
	cond := ast.NewLiteral(pos, value.NewBool(true), ast.LiteralBoolean)
	body := ast.NewBlock(pos, []ast.Node{ast.NewLoopControl(pos, ast.Break)})
	whileStmt := ast.NewWhile(pos, cond, body)
	out := compile(t, module(fn("f", "void", nil, []ast.Node{whileStmt})))

	// Entry is #0, so body (#2) must jump to out (#3), not back to cond (#1).
	bodySection := out[strings.Index(out, "#2:"):strings.Index(out, "#3:")]
	assert.True(t, strings.Contains(bodySection, "Jump(#3)"))
	assert.False(t, strings.Contains(bodySection, "Jump(#1)"))
}
