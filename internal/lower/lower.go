// Package lower implements LowerVisitor (§4.10): it walks a desugared,
// type-resolved, error-free AST and drives an internal/ir.IRBuilder to
// produce a finished IR Module.
//
// The Visitor interface (internal/ast.Visitor) gives LowerVisitor a single
// uniform way to turn any expression-position node into an Instruction —
// VisitBinary/VisitCast/VisitFunctionCall/VisitLiteral/VisitUnary recurse
// into their operands via Accept and return real values. Statement-position
// constructs (Block, If, While, VariableDeclaration, Return, LoopControl,
// and the FunctionDeclaration/Module that only make sense at the top of the
// tree) are driven directly by lowerStmt's type switch instead of through
// Accept, because they need to thread CFG bookkeeping (current block,
// terminated-ness, loop targets) that doesn't fit the Visitor's single
// Node-in/Instruction-out shape. Their own Visit* methods still exist to
// satisfy the interface, and implement exactly the "entered via expression
// emission" fallback §4.10 calls for: reaching one of them through Accept
// means some earlier pass let a statement-only node leak into an expression
// slot, which is a compiler bug, so they emit Unreachable (or, for the
// three that have sensible standalone semantics of their own, delegate to
// the same lowering logic lowerStmt would have used).
package lower

import (
	"github.com/pkg/errors"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/ir"
	"github.com/hassandahiru/soulc/internal/symtab"
	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

// loopTargets records where a break/continue inside the loop currently
// being lowered should jump — LowerVisitor's resolution of the "LoopControl
// lowering" open question in spec §9 (the source only emits Unreachable
// there): break jumps to the loop's out block, continue to its cond block,
// the ordinary structured-control-flow shape.
type loopTargets struct {
	cond *ir.BasicBlock
	out  *ir.BasicBlock
}

// LowerVisitor drives an IRBuilder over a single module. It is not
// reentrant (§5: "visitors are not reentrant") — build one per compilation.
type LowerVisitor struct {
	b     *ir.IRBuilder
	loops []loopTargets

	// terminated marks the current block as already ending in a
	// Jump/JumpIf; the next implicit control-flow edge this visitor would
	// otherwise add (e.g. the fall-through at the end of an if-branch or
	// loop body) is skipped instead of appending a second, unreachable
	// terminator to an already-closed block.
	terminated bool

	// exitBlock is the current function's single lazily-created return
	// target (see the Return decision in DESIGN.md): every lowered Return,
	// plus the implicit fall-off-the-end path, jumps here instead of the
	// instruction set growing a dedicated Return terminator. nil until the
	// first jump to it is needed; reset per function.
	exitBlock *ir.BasicBlock
}

// NewLowerVisitor builds a LowerVisitor over a fresh IRBuilder.
func NewLowerVisitor() *LowerVisitor {
	return &LowerVisitor{b: ir.NewIRBuilder()}
}

// Lower drives a fresh LowerVisitor over module and returns the built IR
// Module (§4.10's entry point). scope must be the symbol table
// ast.ResolveTypes produced for module (or an ancestor of it before
// desugaring, which does not alter signatures) — LowerVisitor consults it
// to resolve each FunctionDeclaration's parameter types, which the
// distilled Parameter struct does not itself carry (see DESIGN.md).
func Lower(module *ast.ModuleNode, scope *symtab.Scope) (*ir.Module, error) {
	v := NewLowerVisitor()
	if err := v.lowerModule(module, scope); err != nil {
		return nil, err
	}
	return v.b.Build(), nil
}

// lowerModule sets the module name, then lowers only direct-child
// FunctionDeclarations — every other top-level statement (StructDeclaration
// chief among them) is erased at lowering time (§4.10).
func (v *LowerVisitor) lowerModule(n *ast.ModuleNode, scope *symtab.Scope) error {
	v.b.SetModuleName(n.Name)
	for _, stmt := range n.Stmts {
		fn, ok := stmt.(*ast.FunctionDeclarationNode)
		if !ok {
			continue
		}
		if err := v.lowerFunction(fn, scope); err != nil {
			return err
		}
	}
	return nil
}

// lowerFunction creates the IR function with resolved parameter/return
// types, binds each parameter via a sentinel Const+Upsilon pair (see
// DESIGN.md's "function parameter reads" decision — the distilled
// Parameter struct carries no reading instruction of its own, and this
// repo resolves that by pre-seeding the entry block the same way a local
// variable declaration would), lowers the body straight into the entry
// block (it already is the entry block, so this does not re-run the
// generic "Block" rule), then closes the function off through its single
// exit block.
func (v *LowerVisitor) lowerFunction(n *ast.FunctionDeclarationNode, scope *symtab.Scope) error {
	sig, _ := scope.LookupFunction(n.Name)

	v.b.CreateFunction(n.Name, n.Type(), sig.Params)
	v.terminated = false
	v.exitBlock = nil

	for i, p := range n.Params {
		pt := types.UnknownType
		if i < len(sig.Params) {
			pt = sig.Params[i]
		}
		sentinel := v.b.EmitConst(pt, value.NewIdentifier(p.Name))
		v.b.EmitUpsilon(p.Name, sentinel)
	}

	if err := v.lowerStmtsInto(n.Body); err != nil {
		return err
	}

	// Fall-off-the-end is an implicit return; route it through the same
	// exit block an explicit Return would use.
	if !v.terminated {
		v.jumpTo(v.exit())
	}
	if v.exitBlock != nil {
		v.switchTo(v.exitBlock)
		v.b.EmitNoop()
	}
	return nil
}

// exit lazily creates the function's single exit block.
func (v *LowerVisitor) exit() *ir.BasicBlock {
	if v.exitBlock == nil {
		v.exitBlock = v.b.CreateBasicBlock()
	}
	return v.exitBlock
}

// lowerStmtsInto lowers stmts' statements, in order, into the current
// block — used for function bodies and If/While branches, which consume a
// BlockNode's statements directly rather than re-triggering the generic
// Block-as-statement rule (that rule is for a BlockNode that itself
// appears as an ordinary statement, e.g. a bare nested `{ ... }` scope).
func (v *LowerVisitor) lowerStmtsInto(n *ast.BlockNode) error {
	if n == nil {
		return nil
	}
	for _, stmt := range n.Stmts {
		if err := v.lowerStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lowerStmt dispatches a single statement-position node. Unlike expression
// lowering this does not go through Accept: each case threads CFG state
// (current block, loop targets, terminated-ness) that the Visitor's
// single-return-value contract has no room for.
func (v *LowerVisitor) lowerStmt(n ast.Node) error {
	switch s := n.(type) {
	case *ast.BlockNode:
		return v.lowerBlockStmt(s)
	case *ast.IfNode:
		return v.lowerIf(s)
	case *ast.WhileNode:
		return v.lowerWhile(s)
	case *ast.VariableDeclarationNode:
		return v.lowerVariableDeclaration(s)
	case *ast.ReturnNode:
		return v.lowerReturn(s)
	case *ast.LoopControlNode:
		return v.lowerLoopControl(s)
	case *ast.ForLoopNode:
		// Must not survive desugaring (§4.7); reaching one here is a bug
		// in an earlier pass, not a user error (§7).
		v.b.EmitUnreachable()
		return nil
	case *ast.ForeachLoopNode:
		// Desugaring foreach is an open extension nothing implements yet
		// (§4.7); the dispatch table calls for Unreachable unconditionally.
		v.b.EmitUnreachable()
		return nil
	case *ast.StructDeclarationNode:
		// Erased at lowering time, same as at the Module level — a
		// struct declaration nested inside a function body has no
		// runtime effect of its own.
		return nil
	case *ast.ErrorNode:
		// The AST LowerVisitor receives is error-free by contract
		// (§4.10's "walks a ... error-free AST"); an ErrorNode surviving
		// to here means the pipeline's validate step was skipped.
		v.b.EmitUnreachable()
		return nil
	case *ast.FunctionDeclarationNode:
		// Nested function declarations are not part of this language;
		// only lowerModule's direct-child walk creates functions.
		v.b.EmitUnreachable()
		return nil
	case *ast.ModuleNode:
		v.b.EmitUnreachable()
		return nil
	default:
		// A bare expression used as a statement (e.g. a standalone
		// assignment or call) — lower it for effect and discard the
		// value, matching S1/S5's bare-expression-statement inputs.
		_, err := v.lowerExpr(n)
		return err
	}
}

// lowerBlockStmt implements the generic "Block" dispatch (§4.10): create a
// fresh basic block, connect the current block to it with a Jump, switch,
// then lower its statements in order.
func (v *LowerVisitor) lowerBlockStmt(n *ast.BlockNode) error {
	next := v.b.CreateBasicBlock()
	v.jumpTo(next)
	v.switchTo(next)
	return v.lowerStmtsInto(n)
}

// lowerIf implements §4.10's If dispatch.
func (v *LowerVisitor) lowerIf(n *ast.IfNode) error {
	cond, err := v.lowerExpr(n.Cond)
	if err != nil {
		return err
	}

	then := v.b.CreateBasicBlock()
	els := v.b.CreateBasicBlock()
	join := v.b.CreateBasicBlock()
	v.b.ConnectMany(v.b.CurrentBlock(), then, els)
	v.jumpIf(cond, then, els)

	v.switchTo(then)
	if err := v.lowerStmtsInto(n.Then); err != nil {
		return err
	}
	v.jumpTo(join)

	v.switchTo(els)
	if err := v.lowerStmtsInto(n.Else); err != nil {
		return err
	}
	v.jumpTo(join)

	v.switchTo(join)
	return nil
}

// lowerWhile implements §4.10's While dispatch. The back edge (body->cond)
// is wired lazily by jumpTo at the point the body's lowering actually ends,
// rather than eagerly up front — which is exactly the ordering EmitPhi's
// deferred merge-resolution in internal/ir depends on (see builder.go).
func (v *LowerVisitor) lowerWhile(n *ast.WhileNode) error {
	cond := v.b.CreateBasicBlock()
	body := v.b.CreateBasicBlock()
	out := v.b.CreateBasicBlock()
	v.jumpTo(cond)

	v.switchTo(cond)
	c, err := v.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	v.b.ConnectMany(v.b.CurrentBlock(), body, out)
	v.jumpIf(c, body, out)

	v.switchTo(body)
	v.loops = append(v.loops, loopTargets{cond: cond, out: out})
	err = v.lowerStmtsInto(n.Body)
	v.loops = v.loops[:len(v.loops)-1]
	if err != nil {
		return err
	}
	v.jumpTo(cond)

	v.switchTo(out)
	return nil
}

// lowerVariableDeclaration implements §4.10's VariableDeclaration dispatch:
// lower the initializer to v, emit_upsilon(name, v). An absent initializer
// (Init is documented optional on the node, though the surface grammar in
// practice always supplies one) upsilons the declared type's zero value
// instead of leaving the identifier with no reaching definition.
func (v *LowerVisitor) lowerVariableDeclaration(n *ast.VariableDeclarationNode) error {
	var val ir.Instruction
	if n.Init != nil {
		var err error
		val, err = v.lowerExpr(n.Init)
		if err != nil {
			return err
		}
	} else {
		val = v.b.EmitConst(n.Type(), zeroValue(n.Type()))
	}
	v.b.EmitUpsilon(n.Name, val)
	return nil
}

// lowerReturn implements §4.10's Return dispatch, resolving the open
// question in spec §9 ("Return ... lowering. Source emits Unreachable") the
// way DESIGN.md records: an optional value binds to the reserved "$return"
// identifier, then control jumps to the function's exit block — the
// instruction set stays closed rather than growing a dedicated terminator.
func (v *LowerVisitor) lowerReturn(n *ast.ReturnNode) error {
	if v.terminated {
		return nil
	}
	if n.Expr != nil {
		val, err := v.lowerExpr(n.Expr)
		if err != nil {
			return err
		}
		v.b.EmitUpsilon("$return", val)
	}
	v.jumpTo(v.exit())
	return nil
}

// lowerLoopControl resolves the matching open question for break/continue:
// jump to the innermost enclosing loop's out/cond block. A break or
// continue outside any loop should have been rejected by an earlier
// semantic pass; reaching one here with no loop on the stack is the usual
// compiler-bug signal.
func (v *LowerVisitor) lowerLoopControl(n *ast.LoopControlNode) error {
	if len(v.loops) == 0 {
		v.b.EmitUnreachable()
		return nil
	}
	top := v.loops[len(v.loops)-1]
	if n.Kind == ast.Break {
		v.jumpTo(top.out)
	} else {
		v.jumpTo(top.cond)
	}
	return nil
}

// switchTo moves the insertion point and resets the terminated flag for
// the newly-current block.
func (v *LowerVisitor) switchTo(blk *ir.BasicBlock) {
	v.b.SwitchTo(blk)
	v.terminated = false
}

// jumpTo wires the current block to target and emits the Jump, unless the
// current block already ended in a terminator — skipping it then avoids
// appending a second terminator (and a duplicate successor edge) to a
// block some earlier statement already closed off.
func (v *LowerVisitor) jumpTo(target *ir.BasicBlock) {
	if v.terminated {
		return
	}
	v.b.Connect(v.b.CurrentBlock(), target)
	v.b.EmitJump(target)
	v.terminated = true
}

// jumpIf emits a JumpIf; callers are responsible for having already wired
// both branches as successors via ConnectMany, since JumpIf (unlike
// jumpTo's single-target case) always has exactly two fixed targets known
// up front.
func (v *LowerVisitor) jumpIf(cond ir.Instruction, then, els *ir.BasicBlock) {
	v.b.EmitJumpIf(cond, then, els)
	v.terminated = true
}

// lowerExpr evaluates an expression-position node to an Instruction via the
// Visitor's Accept dispatch — the uniform entry point VisitBinary/VisitCast/
// VisitFunctionCall/VisitUnary themselves use to recurse into their own
// operands.
func (v *LowerVisitor) lowerExpr(n ast.Node) (ir.Instruction, error) {
	if n == nil {
		return nil, nil
	}
	res, err := n.Accept(v)
	if err != nil {
		return nil, err
	}
	inst, ok := res.(ir.Instruction)
	if !ok {
		return nil, errors.Errorf("lower: [INTERNAL] visitor returned %T, expected an ir.Instruction", res)
	}
	return inst, nil
}

// VisitBinary implements §4.10's Binary dispatch, including the Assign
// special case: a LiteralNode(Identifier) on the left is a write
// (emit_upsilon); anything else on the left falls back to reading the rhs,
// matching the source's current (unextended) behavior for structured
// assignment targets (§9's open question).
func (v *LowerVisitor) VisitBinary(n *ast.BinaryNode) (interface{}, error) {
	if n.Op == ast.OpAssign {
		if ident, ok := n.Lhs.(*ast.LiteralNode); ok && ident.LiteralType == ast.LiteralIdentifier {
			rhs, err := v.lowerExpr(n.Rhs)
			if err != nil {
				return nil, err
			}
			return v.b.EmitUpsilon(ident.IdentifierName(), rhs), nil
		}
		return v.lowerExpr(n.Rhs)
	}

	lhs, err := v.lowerExpr(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := v.lowerExpr(n.Rhs)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		return v.b.EmitAdd(lhs, rhs), nil
	case ast.OpSub:
		return v.b.EmitSub(lhs, rhs), nil
	case ast.OpMul:
		return v.b.EmitMul(lhs, rhs), nil
	case ast.OpDiv:
		return v.b.EmitDiv(lhs, rhs), nil
	case ast.OpMod:
		return v.b.EmitMod(lhs, rhs), nil
	case ast.OpEqual:
		return v.b.EmitEqual(lhs, rhs), nil
	case ast.OpNotEqual:
		return v.b.EmitNotEqual(lhs, rhs), nil
	case ast.OpGreater:
		return v.b.EmitGreater(lhs, rhs), nil
	case ast.OpGreaterEqual:
		return v.b.EmitGreaterEqual(lhs, rhs), nil
	case ast.OpLess:
		return v.b.EmitLess(lhs, rhs), nil
	case ast.OpLessEqual:
		return v.b.EmitLessEqual(lhs, rhs), nil
	case ast.OpLogicalAnd:
		return v.b.EmitAnd(lhs, rhs), nil
	case ast.OpLogicalOr:
		return v.b.EmitOr(lhs, rhs), nil
	default:
		return v.b.EmitUnreachable(), nil
	}
}

// VisitCast implements §4.10's Cast dispatch.
func (v *LowerVisitor) VisitCast(n *ast.CastNode) (interface{}, error) {
	operand, err := v.lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	return v.b.EmitCast(n.Type(), operand), nil
}

// VisitFunctionCall implements §4.10's FunctionCall dispatch: arguments
// lower left-to-right, then a single Call is emitted.
func (v *LowerVisitor) VisitFunctionCall(n *ast.FunctionCallNode) (interface{}, error) {
	args := make([]ir.Instruction, len(n.Args))
	for i, a := range n.Args {
		val, err := v.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return v.b.EmitCall(n.Type(), n.Name, args), nil
}

// VisitLiteral implements §4.10's Literal dispatch: an Identifier reads via
// Phi (the only legal read path for a variable); anything else is a Const.
func (v *LowerVisitor) VisitLiteral(n *ast.LiteralNode) (interface{}, error) {
	if n.LiteralType == ast.LiteralIdentifier {
		return v.b.EmitPhi(n.IdentifierName(), n.Type()), nil
	}
	return v.b.EmitConst(n.Type(), n.Value), nil
}

// VisitUnary implements §4.10's Unary dispatch: LogicalNot emits Not;
// Increment/Decrement should already be gone (desugared into a compound
// Binary, then further desugared) — falling through emits Unreachable.
func (v *LowerVisitor) VisitUnary(n *ast.UnaryNode) (interface{}, error) {
	if n.Op == ast.OpLogicalNot {
		operand, err := v.lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return v.b.EmitNot(operand), nil
	}
	return v.b.EmitUnreachable(), nil
}

// VisitVariableDeclaration, VisitReturn and VisitLoopControl delegate to
// the same logic lowerStmt's type switch calls directly; they exist to
// satisfy ast.Visitor and remain correct if ever reached through Accept.
func (v *LowerVisitor) VisitVariableDeclaration(n *ast.VariableDeclarationNode) (interface{}, error) {
	return nil, v.lowerVariableDeclaration(n)
}

func (v *LowerVisitor) VisitReturn(n *ast.ReturnNode) (interface{}, error) {
	return nil, v.lowerReturn(n)
}

func (v *LowerVisitor) VisitLoopControl(n *ast.LoopControlNode) (interface{}, error) {
	return nil, v.lowerLoopControl(n)
}

// The remaining Visit* methods are the "entered via expression emission"
// (or otherwise structurally invalid) fallback §4.10 names explicitly for
// If/Block and, by the same reasoning, extends to every other
// statement-only or erased node kind: each emits Unreachable rather than
// ever being reached by lowerStmt's direct dispatch.
func (v *LowerVisitor) VisitBlock(n *ast.BlockNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitIf(n *ast.IfNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitWhile(n *ast.WhileNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitModule(n *ast.ModuleNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitFunctionDeclaration(n *ast.FunctionDeclarationNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitForLoop(n *ast.ForLoopNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitForeachLoop(n *ast.ForeachLoopNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitStructDeclaration(n *ast.StructDeclarationNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}
func (v *LowerVisitor) VisitError(n *ast.ErrorNode) (interface{}, error) {
	return v.b.EmitUnreachable(), nil
}

// zeroValue gives the declared type's zero-value Value, used when a
// VariableDeclaration's initializer is absent.
func zeroValue(t types.Type) value.Value {
	if !t.IsPrimitive() {
		return value.Nil
	}
	switch t.Kind() {
	case types.Boolean:
		return value.NewBool(false)
	case types.Char:
		return value.NewChar(0)
	case types.Int32, types.Int64:
		return value.NewI64(0)
	case types.Float32, types.Float64:
		return value.NewF64(0)
	case types.String:
		return value.NewString("")
	default:
		return value.Nil
	}
}
