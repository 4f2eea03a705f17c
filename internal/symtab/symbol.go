// Package symtab backs the two flat, build-once-then-read-only lookup
// tables the semantic passes need: the type-discoverer's identifier->Type
// map (spec §4.5) and a function-signature table consulted by
// TypeResolverVisitor when resolving a FunctionCall's type (spec §4.6,
// "implementation should look this up in a function-signature table built
// in a prior sub-pass").
//
// The teacher repo's symtab modeled a full lexically-nested scope tree for
// a language with block scoping. "soul" only ever needs a flat, module-wide
// namespace here — struct and function declarations are top-level only, and
// local variables never enter this table at all (they live purely as SSA
// names via Upsilon/Phi once lowered) — so this package keeps the teacher's
// Symbol/Scope vocabulary and Define/Lookup shape but drops the
// parent-chain walk down to a single flat Scope.
package symtab

import (
	"fmt"

	"github.com/hassandahiru/soulc/internal/types"
)

// SymbolKind distinguishes what a Symbol's Type field means.
type SymbolKind int

const (
	// SymbolType is an identifier -> Type binding: a builtin primitive name
	// or a declared struct name.
	SymbolType SymbolKind = iota

	// SymbolFunction is a function name -> signature binding.
	SymbolFunction
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Signature is a function's parameter and return types, keyed by name in
// the Scope's function table.
type Signature struct {
	Params []types.Type
	Return types.Type
}

// Symbol is a named entity in one of the two tables above.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Type      types.Type // meaningful when Kind == SymbolType
	Signature Signature  // meaningful when Kind == SymbolFunction
}

func (s *Symbol) String() string {
	switch s.Kind {
	case SymbolFunction:
		return fmt.Sprintf("function %s: %v -> %s", s.Name, s.Signature.Params, s.Signature.Return)
	default:
		return fmt.Sprintf("type %s: %s", s.Name, s.Type)
	}
}
