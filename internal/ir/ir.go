// Package ir implements the Intermediate Representation for the compiler.
//
// WHAT IS IR?
// IR is a low-level representation of the program that sits between the
// typed, desugared AST and a future backend. It's designed to be:
// 1. Easy to analyze and, eventually, lower to a target
// 2. Independent of source syntax
// 3. Explicit about control flow and data flow
//
// DESIGN PHILOSOPHY:
// A CFG of basic blocks holding three-address SSA instructions, variable
// reads and writes realized through the upsilon/phi discipline rather than
// mutable SSA-value slots: `Upsilon(x, v)` states "x holds v here",
// `Phi(x, τ)` reconstructs the value reaching the current point along
// every predecessor edge.
//
// Instruction is modeled the same way ASTNode is in internal/ast: one
// concrete struct per variant implementing a common interface, rather than
// a single struct with a big discriminated-union of optional fields. Go
// has no tagged unions, and this keeps each variant's fields named instead
// of sharing an "operands[0]/operands[1]" slot whose meaning depends on a
// tag read elsewhere.
package ir

import (
	"fmt"

	"github.com/hassandahiru/soulc/internal/types"
	"github.com/hassandahiru/soulc/internal/value"
)

// Instruction is the common interface every IR instruction variant
// implements. Equality and ordering are both defined purely in terms of
// Version, per §4.8/§3: it is the instruction's SSA identity.
type Instruction interface {
	Version() uint32
	Type() types.Type

	// Operands returns this instruction's operand references, in order,
	// up to the two-operand bound most variants respect; Call and Phi are
	// the two variable-arity exceptions (§4.9's note on their own
	// semantics), documented on their own types.
	Operands() []Instruction

	fmt.Stringer
}

// Equal and Less give Instruction the comparisons §4.8 requires: equality
// and ordering both by version (SSA identity), never by structural
// content — two distinct instructions can be structurally identical
// (e.g. two `Const(i32, 0)`s) without being the same value.
func Equal(a, b Instruction) bool { return a.Version() == b.Version() }
func Less(a, b Instruction) bool  { return a.Version() < b.Version() }

type base struct {
	version uint32
	typ     types.Type
}

func (b base) Version() uint32 { return b.version }
func (b base) Type() types.Type { return b.typ }

// UnreachableInst marks a point the LowerVisitor proves (or asserts)
// cannot be reached at runtime — reaching one in practice is a compiler
// bug, not a user error (§7).
type UnreachableInst struct{ base }

func (i *UnreachableInst) Operands() []Instruction { return nil }
func (i *UnreachableInst) String() string           { return "Unreachable()" }

// NoopInst does nothing; used as a placeholder terminator until a real
// backend gives Return somewhere to go (§3's Supplemented features).
type NoopInst struct{ base }

func (i *NoopInst) Operands() []Instruction { return nil }
func (i *NoopInst) String() string           { return "Noop()" }

// ConstInst materializes a literal value with a concrete type.
type ConstInst struct {
	base
	Value value.Value
}

func (i *ConstInst) Operands() []Instruction { return nil }
func (i *ConstInst) String() string           { return fmt.Sprintf("Const(%s)", i.Value.String()) }

// CastInst converts Operand's value to this instruction's own Type.
type CastInst struct {
	base
	Operand Instruction
}

func (i *CastInst) Operands() []Instruction { return []Instruction{i.Operand} }
func (i *CastInst) String() string {
	return fmt.Sprintf("Cast(%%%d)", i.Operand.Version())
}

// JumpInst unconditionally transfers control to Target, which must also
// appear in the owning block's Successors (§3's BasicBlock invariant).
type JumpInst struct {
	base
	Target *BasicBlock
}

func (i *JumpInst) Operands() []Instruction { return nil }
func (i *JumpInst) String() string           { return fmt.Sprintf("Jump(#%d)", i.Target.Label) }

// JumpIfInst transfers to Then if Cond is truthy, else to Else. Then and
// Else must differ unless the compiler has explicitly merged them (§3).
type JumpIfInst struct {
	base
	Cond Instruction
	Then *BasicBlock
	Else *BasicBlock
}

func (i *JumpIfInst) Operands() []Instruction { return []Instruction{i.Cond} }
func (i *JumpIfInst) String() string {
	return fmt.Sprintf("JumpIf(%%%d, #%d, #%d)", i.Cond.Version(), i.Then.Label, i.Else.Label)
}

// NotInst is logical negation; result type Boolean.
type NotInst struct {
	base
	Operand Instruction
}

func (i *NotInst) Operands() []Instruction { return []Instruction{i.Operand} }
func (i *NotInst) String() string           { return fmt.Sprintf("Not(%%%d)", i.Operand.Version()) }

// ArithOp discriminates the five arithmetic instruction kinds, whose
// result type always equals the operand type (§3).
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

func (o ArithOp) String() string {
	switch o {
	case ArithAdd:
		return "Add"
	case ArithSub:
		return "Sub"
	case ArithMul:
		return "Mul"
	case ArithDiv:
		return "Div"
	case ArithMod:
		return "Mod"
	default:
		return "<bad-arith-op>"
	}
}

// ArithInst is {Add, Sub, Mul, Div, Mod}(lhs, rhs).
type ArithInst struct {
	base
	Op       ArithOp
	Lhs, Rhs Instruction
}

func (i *ArithInst) Operands() []Instruction { return []Instruction{i.Lhs, i.Rhs} }
func (i *ArithInst) String() string {
	return fmt.Sprintf("%s(%%%d, %%%d)", i.Op, i.Lhs.Version(), i.Rhs.Version())
}

// CompareOp discriminates the six comparison instruction kinds, whose
// result type is always Boolean (§3).
type CompareOp int

const (
	CompareEqual CompareOp = iota
	CompareNotEqual
	CompareGreater
	CompareGreaterEqual
	CompareLess
	CompareLessEqual
)

func (o CompareOp) String() string {
	switch o {
	case CompareEqual:
		return "Equal"
	case CompareNotEqual:
		return "NotEqual"
	case CompareGreater:
		return "Greater"
	case CompareGreaterEqual:
		return "GreaterEqual"
	case CompareLess:
		return "Less"
	case CompareLessEqual:
		return "LessEqual"
	default:
		return "<bad-compare-op>"
	}
}

// CompareInst is {Equal, NotEqual, Greater, GreaterEqual, Less, LessEqual}(lhs, rhs).
type CompareInst struct {
	base
	Op       CompareOp
	Lhs, Rhs Instruction
}

func (i *CompareInst) Operands() []Instruction { return []Instruction{i.Lhs, i.Rhs} }
func (i *CompareInst) String() string {
	return fmt.Sprintf("%s(%%%d, %%%d)", i.Op, i.Lhs.Version(), i.Rhs.Version())
}

// LogicalOp discriminates And/Or, whose result type is Boolean (§3).
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (o LogicalOp) String() string {
	if o == LogicalAnd {
		return "And"
	}
	return "Or"
}

// LogicalInst is {And, Or}(lhs, rhs).
type LogicalInst struct {
	base
	Op       LogicalOp
	Lhs, Rhs Instruction
}

func (i *LogicalInst) Operands() []Instruction { return []Instruction{i.Lhs, i.Rhs} }
func (i *LogicalInst) String() string {
	return fmt.Sprintf("%s(%%%d, %%%d)", i.Op, i.Lhs.Version(), i.Rhs.Version())
}

// PhiEdge is one incoming (predecessor block, reaching value) pair of a
// PhiInst — the classical φ-node operand-list form §4.9 explicitly
// permits as an alternative to eager Upsilon back-linking.
type PhiEdge struct {
	Block *BasicBlock
	Value Instruction
}

// PhiInst reconstructs the value reaching Identifier at this point along
// every predecessor edge (§4.9). Incoming is filled in by the IRBuilder,
// possibly after the PhiInst has already been returned to a caller — see
// the cycle-handling note on IRBuilder.EmitPhi.
type PhiInst struct {
	base
	Identifier string
	Incoming   []PhiEdge
}

// Operands intentionally does not return the incoming edges: they live in
// other blocks, not "within the same function operand slot" in the sense
// §3's two-operand bound describes for ordinary instructions, and the
// printer renders them from Incoming directly instead.
func (i *PhiInst) Operands() []Instruction { return nil }
func (i *PhiInst) String() string           { return fmt.Sprintf("Phi(%q)", i.Identifier) }

// UpsilonInst states that Identifier holds Value's result at this point
// in program order (§4.9).
type UpsilonInst struct {
	base
	Identifier string
	Value      Instruction
}

func (i *UpsilonInst) Operands() []Instruction { return []Instruction{i.Value} }
func (i *UpsilonInst) String() string {
	return fmt.Sprintf("Upsilon(%q, %%%d)", i.Identifier, i.Value.Version())
}

// CallInst is an extension beyond §3's closed instruction list: §4.10's
// LowerVisitor dispatch explicitly requires "emit Call(return_type, name,
// args)" for FunctionCall, so Call is added as a variant rather than
// forced into Add/Sub's two-operand shape. See DESIGN.md.
type CallInst struct {
	base
	Name string
	Args []Instruction
}

func (i *CallInst) Operands() []Instruction { return i.Args }
func (i *CallInst) String() string {
	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = fmt.Sprintf("%%%d", a.Version())
	}
	return fmt.Sprintf("Call(%q%s)", i.Name, joinOperands(parts))
}

func joinOperands(parts []string) string {
	out := ""
	for _, p := range parts {
		out += ", " + p
	}
	return out
}

// Function parameters and Return are deliberately not new instruction
// variants — see the "Supplemented features" decision in DESIGN.md/
// SPEC_FULL.md: a parameter is seeded with an ordinary Const+Upsilon pair
// carrying a sentinel Value (its own name), and Return lowers to an Upsilon
// of "$return" followed by a Jump to a lazily-created per-function exit
// block, terminated by NoopInst. Both reuse instructions already in this
// closed list instead of widening it.
