// Package ast implements the tagged-union AST described in spec §3/§4.2-§4.7:
// seventeen node variants, a double-dispatch Visitor framework over them, and
// the tree-rewriting passes (CopyVisitor, ErrorCollectorVisitor,
// TypeDiscovererVisitor, TypeResolverVisitor, DesugarVisitor) that turn a
// freshly parsed tree into a typed, desugared one ready for lowering.
//
// Go has no sum types, so each variant is its own struct implementing a
// common Node interface, mirroring the teacher repo's Expr/Stmt/Decl
// interface hierarchy — collapsed here to a single Node interface, since
// the spec's ASTNode is one flat union rather than three separate ones.
// The source's distinction between "mutable" and "const" visit methods
// collapses the same way the design notes in spec §9 anticipate: Go has no
// const methods, so there is only one visit method per variant.
package ast

import (
	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/types"
)

// Node is the common interface every AST variant implements. Accept
// performs double dispatch to the matching Visitor method; per §4.2,
// Accept on a nil Visitor is a no-op. Accept's return type is left as
// interface{} deliberately — tree-rewriting visitors return a Node,
// ErrorCollectorVisitor returns nothing of interest, and LowerVisitor
// (internal/lower) returns IR values — a single flexible contract serves
// all of them without forcing every visitor into the same return shape.
type Node interface {
	Accept(v Visitor) (interface{}, error)

	// Type returns the node's resolved type, seeded to Primitive(Unknown)
	// until a TypeResolverVisitor pass fills it in.
	Type() types.Type
	SetType(t types.Type)

	// Pos is the node's source location, used by diagnostics.
	Pos() lexer.Position
}

// base is embedded by every concrete node to provide the Type/Pos
// bookkeeping common to all seventeen variants.
type base struct {
	typ types.Type
	pos lexer.Position
}

func (b *base) Type() types.Type   { return b.typ }
func (b *base) SetType(t types.Type) { b.typ = t }
func (b *base) Pos() lexer.Position  { return b.pos }

// newBase seeds a node's type to Primitive(Unknown), per §3 ("initially
// Primitive(Unknown)").
func newBase(pos lexer.Position) base {
	return base{typ: types.UnknownType, pos: pos}
}

// Operator is the closed enum from §3 covering arithmetic, increment/
// decrement, compound assign, bare assign, comparison, and logical
// operators. Each has a canonical short name (String) and an internal name
// (Internal); no code in this repository, printers included, calls Internal.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpIncrement
	OpDecrement

	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign

	OpAssign

	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual

	OpLogicalNot
	OpLogicalAnd
	OpLogicalOr
)

// Short gives the canonical short name ("+", "==", ...).
func (o Operator) Short() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpIncrement:
		return "++"
	case OpDecrement:
		return "--"
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	case OpDivAssign:
		return "/="
	case OpModAssign:
		return "%="
	case OpAssign:
		return "="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpLogicalNot:
		return "!"
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	default:
		return "<bad-op>"
	}
}

// Internal gives the operator's internal name ("operator_add", …); no
// printer calls it.
func (o Operator) Internal() string {
	switch o {
	case OpAdd:
		return "operator_add"
	case OpSub:
		return "operator_sub"
	case OpMul:
		return "operator_mul"
	case OpDiv:
		return "operator_div"
	case OpMod:
		return "operator_mod"
	case OpIncrement:
		return "operator_increment"
	case OpDecrement:
		return "operator_decrement"
	case OpAddAssign:
		return "operator_add_assign"
	case OpSubAssign:
		return "operator_sub_assign"
	case OpMulAssign:
		return "operator_mul_assign"
	case OpDivAssign:
		return "operator_div_assign"
	case OpModAssign:
		return "operator_mod_assign"
	case OpAssign:
		return "operator_assign"
	case OpEqual:
		return "operator_equal"
	case OpNotEqual:
		return "operator_not_equal"
	case OpGreater:
		return "operator_greater"
	case OpGreaterEqual:
		return "operator_greater_equal"
	case OpLess:
		return "operator_less"
	case OpLessEqual:
		return "operator_less_equal"
	case OpLogicalNot:
		return "operator_logical_not"
	case OpLogicalAnd:
		return "operator_logical_and"
	case OpLogicalOr:
		return "operator_logical_or"
	default:
		return "operator_unknown"
	}
}

func (o Operator) String() string { return o.Short() }

// IsCompoundAssign reports whether op is one of the five DesugarVisitor
// targets (§4.7).
func (o Operator) IsCompoundAssign() bool {
	switch o {
	case OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpModAssign:
		return true
	default:
		return false
	}
}

// CompoundBase returns the plain arithmetic operator a compound-assign
// operator desugars around (OpAddAssign -> OpAdd, …).
func (o Operator) CompoundBase() Operator {
	switch o {
	case OpAddAssign:
		return OpAdd
	case OpSubAssign:
		return OpSub
	case OpMulAssign:
		return OpMul
	case OpDivAssign:
		return OpDiv
	case OpModAssign:
		return OpMod
	default:
		return o
	}
}

// LiteralType discriminates what kind of constant a LiteralNode holds,
// including the Identifier pseudo-literal used for variable reads (§3).
type LiteralType int

const (
	LiteralBoolean LiteralType = iota
	LiteralChar
	LiteralFloat32
	LiteralFloat64
	LiteralInt32
	LiteralInt64
	LiteralString
	LiteralIdentifier
)

func (l LiteralType) String() string {
	switch l {
	case LiteralBoolean:
		return "bool"
	case LiteralChar:
		return "char"
	case LiteralFloat32:
		return "float32"
	case LiteralFloat64:
		return "float64"
	case LiteralInt32:
		return "int32"
	case LiteralInt64:
		return "int64"
	case LiteralString:
		return "string"
	case LiteralIdentifier:
		return "identifier"
	default:
		return "<bad-literal-type>"
	}
}

// LoopControlKind discriminates LoopControlNode's two forms.
type LoopControlKind int

const (
	Break LoopControlKind = iota
	Continue
)

func (k LoopControlKind) String() string {
	if k == Break {
		return "break"
	}
	return "continue"
}
