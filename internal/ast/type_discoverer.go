package ast

import (
	"fmt"

	"github.com/hassandahiru/soulc/internal/symtab"
	"github.com/hassandahiru/soulc/internal/types"
)

// TypeDiscovererVisitor runs the single pre-pass described in §4.5. Unlike
// the other passes in this package it does not implement the Visitor
// interface: §4.5 is explicit that this is "a single pre-pass over a
// Module" inspecting only top-level StructDeclarations, not a recursive
// walk of the full node sum — so there is no sensible VisitBinary,
// VisitIf, etc. for it to define.
type TypeDiscovererVisitor struct{}

// Run clones nothing itself (callers pass an already-copied Module, per
// the pipeline composition in §6.2) and returns the possibly
// error-annotated Module plus the identifier->Type scope it built.
func (TypeDiscovererVisitor) Run(module *ModuleNode) (*ModuleNode, *symtab.Scope, error) {
	return DiscoverTypes(module)
}

// DiscoverTypes is the free-function form of TypeDiscovererVisitor.Run.
func DiscoverTypes(module *ModuleNode) (*ModuleNode, *symtab.Scope, error) {
	scope := symtab.NewScope()
	for _, name := range []string{"bool", "chr", "f32", "f64", "i32", "i64", "str", "void"} {
		t, _ := types.LookupBuiltin(name)
		if err := scope.DefineType(name, t); err != nil {
			return nil, nil, err
		}
	}

	out := make([]Node, len(module.Stmts))
	for i, stmt := range module.Stmts {
		decl, ok := stmt.(*StructDeclarationNode)
		if !ok {
			out[i] = stmt
			continue
		}
		rewritten, err := discoverStruct(decl, scope)
		if err != nil {
			return nil, nil, err
		}
		out[i] = rewritten
	}

	result := NewModule(module.Pos(), module.Name, out)
	result.SetType(module.Type())
	return result, scope, nil
}

// discoverStruct implements the per-StructDeclaration rule in §4.5: a name
// collision replaces the whole declaration with an ErrorNode; otherwise
// each VariableDeclaration field either contributes its resolved Type to
// the struct's tuple, or — if its declared-type identifier is unknown —
// is itself replaced by an ErrorNode and contributes nothing positionally
// (the documented, source-matching behavior for the §4.5 open question).
func discoverStruct(decl *StructDeclarationNode, scope *symtab.Scope) (Node, error) {
	if scope.HasType(decl.Name) {
		return NewError(decl.Pos(), fmt.Sprintf("redefinition of type '%s'", decl.Name)), nil
	}

	fields := make([]Node, len(decl.Fields))
	tuple := make([]types.Type, 0, len(decl.Fields))
	for i, f := range decl.Fields {
		field, ok := f.(*VariableDeclarationNode)
		if !ok {
			fields[i] = f
			continue
		}
		t, ok := scope.LookupType(field.TypeName)
		if !ok {
			fields[i] = NewError(field.Pos(), fmt.Sprintf("cannot resolve type '%s', because no such type exists", field.TypeName))
			continue
		}
		fields[i] = field
		tuple = append(tuple, t)
	}

	structType := types.Struct(tuple)
	if err := scope.DefineType(decl.Name, structType); err != nil {
		return nil, err
	}

	out := NewStructDeclaration(decl.Pos(), decl.Name, fields)
	out.SetType(structType)
	return out, nil
}
