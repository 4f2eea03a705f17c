package ast

import (
	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

// DesugarVisitor rewrites the compound forms §4.7 names, plus
// increment/decrement (the gap between §4.7 and §4.10: LowerVisitor's Unary
// dispatch assumes Increment/Decrement "should have been desugared", but
// §4.7 never actually says into what — resolved here the same way compound
// assign is), leaving every other node a plain clone (inherited from
// CopyVisitor):
//
//   - compound assign: Binary(lhs, rhs, op_X_Assign) becomes
//     Binary(clone(lhs), Binary(clone(lhs), rhs, op_X), Assign) — lhs is
//     cloned twice so the read and write sides own independent subtrees.
//   - increment/decrement: Unary(expr, Increment|Decrement) becomes
//     Binary(clone(expr), Binary(clone(expr), Literal(1), Add|Sub), Assign),
//     the same clone-twice shape as compound assign, with the literal `1`
//     built in the operand's own resolved type. Desugar runs after
//     type_resolve in the pipeline (§6.2), so that type is already known.
//   - for-loop: ForLoop(init, cond, update, body) becomes
//     Block(init, While(cond, Block(body.Stmts..., update))), with any
//     absent init/cond/update simply omitted.
//
// foreach is left as an open extension: it passes through unrewritten, and
// LowerVisitor reports one reaching it as unlowerable.
type DesugarVisitor struct {
	*CopyVisitor
}

func NewDesugarVisitor() *DesugarVisitor {
	d := &DesugarVisitor{CopyVisitor: NewCopyVisitor()}
	d.Self = d
	return d
}

// Desugar is the package-level entry point, mirroring Copy.
func Desugar(n Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	return acceptNode(NewDesugarVisitor(), n)
}

func (d *DesugarVisitor) VisitBinary(n *BinaryNode) (interface{}, error) {
	if !n.Op.IsCompoundAssign() {
		return d.CopyVisitor.VisitBinary(n)
	}

	lhsForRead, err := acceptNode(d.Self, n.Lhs)
	if err != nil {
		return nil, err
	}
	lhsForWrite, err := acceptNode(d.Self, n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := acceptNode(d.Self, n.Rhs)
	if err != nil {
		return nil, err
	}

	arithmetic := NewBinary(n.Pos(), n.Op.CompoundBase(), lhsForRead, rhs)
	out := NewBinary(n.Pos(), OpAssign, lhsForWrite, arithmetic)
	out.SetType(n.Type())
	return out, nil
}

func (d *DesugarVisitor) VisitUnary(n *UnaryNode) (interface{}, error) {
	if n.Op != OpIncrement && n.Op != OpDecrement {
		return d.CopyVisitor.VisitUnary(n)
	}

	exprForRead, err := acceptNode(d.Self, n.Expr)
	if err != nil {
		return nil, err
	}
	exprForWrite, err := acceptNode(d.Self, n.Expr)
	if err != nil {
		return nil, err
	}

	operandType := n.Expr.Type()
	one := NewLiteral(n.Pos(), oneValueFor(operandType), literalTypeFor(operandType))
	one.SetType(operandType)

	base := OpAdd
	if n.Op == OpDecrement {
		base = OpSub
	}
	arithmetic := NewBinary(n.Pos(), base, exprForRead, one)
	arithmetic.SetType(operandType)

	out := NewBinary(n.Pos(), OpAssign, exprForWrite, arithmetic)
	out.SetType(n.Type())
	return out, nil
}

// literalTypeFor and oneValueFor pick the LiteralType/Value for the `1`
// increment/decrement desugars against, matching the operand's own
// resolved type; both default to a plain int32 `1` if the operand's type
// isn't yet resolved (desugar is expected to run after type_resolve, so
// this only matters for a visitor driven directly in isolation, e.g. a
// unit test that skips type resolution).
func literalTypeFor(t types.Type) LiteralType {
	if !t.IsPrimitive() {
		return LiteralInt32
	}
	switch t.Kind() {
	case types.Int64:
		return LiteralInt64
	case types.Float32:
		return LiteralFloat32
	case types.Float64:
		return LiteralFloat64
	default:
		return LiteralInt32
	}
}

func oneValueFor(t types.Type) value.Value {
	if t.IsPrimitive() {
		switch t.Kind() {
		case types.Float32, types.Float64:
			return value.NewF64(1)
		}
	}
	return value.NewI64(1)
}

func (d *DesugarVisitor) VisitForLoop(n *ForLoopNode) (interface{}, error) {
	init, err := acceptNode(d.Self, n.Init)
	if err != nil {
		return nil, err
	}
	cond, err := acceptNode(d.Self, n.Cond)
	if err != nil {
		return nil, err
	}
	update, err := acceptNode(d.Self, n.Update)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(d.Self, n.Body)
	if err != nil {
		return nil, err
	}

	bodyStmts := []Node{}
	if body != nil {
		bodyStmts = append(bodyStmts, body.Stmts...)
	}
	if update != nil {
		bodyStmts = append(bodyStmts, update)
	}
	loopBody := NewBlock(n.Pos(), bodyStmts)
	if n.Body != nil {
		loopBody.SetType(n.Body.Type())
	}

	whileNode := NewWhile(n.Pos(), cond, loopBody)
	whileNode.SetType(n.Type())

	outerStmts := []Node{}
	if init != nil {
		outerStmts = append(outerStmts, init)
	}
	outerStmts = append(outerStmts, whileNode)

	out := NewBlock(n.Pos(), outerStmts)
	out.SetType(n.Type())
	return out, nil
}
