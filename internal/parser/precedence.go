package parser

import (
	"github.com/hassandahiru/soulc/internal/lexer"
)

// Precedence represents operator precedence levels, narrowed to the
// operators soul's closed ast.Operator enum actually names — no bitwise
// tier, no exponentiation, no member/index/ternary (§3's ASTNode table has
// no node for any of those).
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment // =, +=, -=, etc.
	PrecOr         // ||
	PrecAnd        // &&
	PrecEquality   // ==, !=
	PrecComparison // <, <=, >, >=
	PrecTerm       // +, -
	PrecFactor     // *, /, %
	PrecUnary      // !, -, ++, --
	PrecCall       // (
	PrecPrimary
)

// getPrecedence returns the precedence level for a given token type.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenAssign,
		lexer.TokenPlusEq,
		lexer.TokenMinusEq,
		lexer.TokenStarEq,
		lexer.TokenSlashEq,
		lexer.TokenPercentEq:
		return PrecAssignment

	case lexer.TokenOr:
		return PrecOr

	case lexer.TokenAnd:
		return PrecAnd

	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality

	case lexer.TokenLess,
		lexer.TokenLessEqual,
		lexer.TokenGreater,
		lexer.TokenGreaterEqual:
		return PrecComparison

	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm

	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor

	case lexer.TokenAs, lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		return PrecUnary

	case lexer.TokenLeftParen:
		return PrecCall

	default:
		return PrecNone
	}
}

// isRightAssociative reports whether the operator at tokenType binds its
// right operand first — true for assignment (x = y = 0 means x = (y = 0)).
func isRightAssociative(tokenType lexer.TokenType) bool {
	switch tokenType {
	case lexer.TokenAssign,
		lexer.TokenPlusEq,
		lexer.TokenMinusEq,
		lexer.TokenStarEq,
		lexer.TokenSlashEq,
		lexer.TokenPercentEq:
		return true
	default:
		return false
	}
}
