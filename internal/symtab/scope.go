package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/hassandahiru/soulc/internal/types"
)

// Scope is the flat, single-level namespace described in the package doc:
// one map of type bindings (seeded with the builtins, then extended by
// TypeDiscovererVisitor) and one map of function signatures (populated by
// the sub-pass TypeResolverVisitor relies on before resolving FunctionCall
// nodes).
type Scope struct {
	types map[string]*Symbol
	funcs map[string]*Symbol
}

// NewScope creates an empty Scope. Callers seed it with builtins via
// DefineType before running TypeDiscovererVisitor.
func NewScope() *Scope {
	return &Scope{
		types: make(map[string]*Symbol),
		funcs: make(map[string]*Symbol),
	}
}

// DefineType binds name to t. It returns an error if name is already bound
// — callers that want the spec's "replace with an ErrorNode" redefinition
// behavior (§4.5) should check HasType first rather than rely on this
// error for control flow at the AST level; DefineType's error exists for
// callers (like builtin seeding) that consider a collision a bug.
func (s *Scope) DefineType(name string, t types.Type) error {
	if _, exists := s.types[name]; exists {
		return errors.Errorf("symtab: type %q already defined", name)
	}
	s.types[name] = &Symbol{Name: name, Kind: SymbolType, Type: t}
	return nil
}

// LookupType resolves name to its Type, reporting ok=false if unbound.
func (s *Scope) LookupType(name string) (types.Type, bool) {
	sym, ok := s.types[name]
	if !ok {
		return types.UnknownType, false
	}
	return sym.Type, true
}

// HasType reports whether name is already bound, without the caller
// needing to discard the returned Type — used by TypeDiscovererVisitor's
// redefinition check.
func (s *Scope) HasType(name string) bool {
	_, ok := s.types[name]
	return ok
}

// DefineFunction binds name to sig, overwriting any previous binding (the
// function-signature table is built in one linear sub-pass over top-level
// function declarations, which cannot collide the way struct names can).
func (s *Scope) DefineFunction(name string, sig Signature) {
	s.funcs[name] = &Symbol{Name: name, Kind: SymbolFunction, Signature: sig}
}

// LookupFunction resolves name to its Signature.
func (s *Scope) LookupFunction(name string) (Signature, bool) {
	sym, ok := s.funcs[name]
	if !ok {
		return Signature{}, false
	}
	return sym.Signature, true
}

// DebugString dumps both tables in sorted-name order, for tests and -v
// logging; map iteration order is not otherwise deterministic.
func (s *Scope) DebugString() string {
	var b strings.Builder
	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(&b, s.types[n].String())
	}
	fnames := make([]string, 0, len(s.funcs))
	for n := range s.funcs {
		fnames = append(fnames, n)
	}
	sort.Strings(fnames)
	for _, n := range fnames {
		fmt.Fprintln(&b, s.funcs[n].String())
	}
	return b.String()
}
