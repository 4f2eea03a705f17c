package ast

import (
	"fmt"

	"github.com/hassandahiru/soulc/internal/symtab"
	"github.com/hassandahiru/soulc/internal/types"
)

// TypeResolverVisitor fills every node's Type field per §4.6, consulting
// the identifier->Type scope TypeDiscovererVisitor built and the cast
// lattice in internal/types.
//
// §4.6's Literal rule ("infer from the held Value's variant") is stated in
// terms of the Value tag alone, but an Identifier literal's Value always
// carries kind String (it holds the name, per §3) — taken literally that
// rule would type every variable read as `string`, which breaks invariant
// 2 ("every Literal with a non-Unknown Value has a concrete Primitive
// type") for any non-string variable and contradicts the concrete int32
// Phi types the S4/S5 scenarios in §8 require. TypeResolverVisitor
// therefore tracks a flat locals map (name -> declared Type), populated as
// VariableDeclaration and function-parameter nodes are visited, and
// resolves an Identifier literal's type from there instead of from its
// Value tag. Every other literal kind takes its type from its LiteralType
// (see literalValueType).
type TypeResolverVisitor struct {
	scope  *symtab.Scope
	locals map[string]types.Type
}

// NewTypeResolverVisitor builds a resolver over scope. Before visiting,
// callers should have scope already populated by DiscoverTypes; this
// constructor additionally seeds the function-signature sub-table §4.6
// calls for by scanning module's top-level FunctionDeclarations.
func NewTypeResolverVisitor(scope *symtab.Scope, module *ModuleNode) *TypeResolverVisitor {
	r := &TypeResolverVisitor{scope: scope, locals: make(map[string]types.Type)}
	for _, stmt := range module.Stmts {
		fn, ok := stmt.(*FunctionDeclarationNode)
		if !ok {
			continue
		}
		params := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			t, ok := scope.LookupType(p.TypeName)
			if !ok {
				t = types.UnknownType
			}
			params[i] = t
		}
		ret, ok := scope.LookupType(fn.ReturnTypeName)
		if !ok {
			ret = types.UnknownType
		}
		scope.DefineFunction(fn.Name, symtab.Signature{Params: params, Return: ret})
	}
	return r
}

// ResolveTypes runs DiscoverTypes then a TypeResolverVisitor over the
// result, returning the fully-typed Module. This is the composition
// §4.6 describes as consuming "the AST plus the map from 4.5".
func ResolveTypes(module *ModuleNode) (*ModuleNode, *symtab.Scope, error) {
	discovered, scope, err := DiscoverTypes(module)
	if err != nil {
		return nil, nil, err
	}
	r := NewTypeResolverVisitor(scope, discovered)
	res, err := acceptNode(r, discovered)
	if err != nil {
		return nil, nil, err
	}
	out, ok := res.(*ModuleNode)
	if !ok {
		return nil, nil, errVisitorReturnedNonNode(res)
	}
	return out, scope, nil
}

func (r *TypeResolverVisitor) lookupOr(name string) types.Type {
	if t, ok := r.scope.LookupType(name); ok {
		return t
	}
	return types.UnknownType
}

// literalValueType implements the Literal rule: infer the node's type from
// the LiteralType discriminator alone, which distinguishes int32 from int64
// and float32 from float64 (the Value union itself doesn't — see
// internal/value's doc comment); the Value's own tag is not consulted.
func literalValueType(lt LiteralType) types.Type {
	switch lt {
	case LiteralBoolean:
		return types.Primitive(types.Boolean)
	case LiteralChar:
		return types.Primitive(types.Char)
	case LiteralFloat32:
		return types.Primitive(types.Float32)
	case LiteralFloat64:
		return types.Primitive(types.Float64)
	case LiteralInt32:
		return types.Primitive(types.Int32)
	case LiteralInt64:
		return types.Primitive(types.Int64)
	case LiteralString:
		return types.Primitive(types.String)
	default:
		return types.UnknownType
	}
}

func (r *TypeResolverVisitor) VisitLiteral(n *LiteralNode) (interface{}, error) {
	out := NewLiteral(n.Pos(), n.Value, n.LiteralType)
	if n.LiteralType == LiteralIdentifier {
		if t, ok := r.locals[n.IdentifierName()]; ok {
			out.SetType(t)
		} else {
			out.SetType(types.UnknownType)
		}
		return out, nil
	}
	out.SetType(literalValueType(n.LiteralType))
	return out, nil
}

func (r *TypeResolverVisitor) VisitVariableDeclaration(n *VariableDeclarationNode) (interface{}, error) {
	init, err := acceptNode(r, n.Init)
	if err != nil {
		return nil, err
	}
	out := NewVariableDeclaration(n.Pos(), n.Name, n.TypeName, init, n.IsMutable)
	t := r.lookupOr(n.TypeName)
	out.SetType(t)
	r.locals[n.Name] = t
	return out, nil
}

// VisitCast resolves the target type and checks it against the cast
// lattice (§4.6). An Impossible cast both marks the node's type Unknown
// (as the source does) and, per §6.3's invitation ("implementers should
// additionally emit a diagnostic"), replaces the node with an ErrorNode —
// the same "replace the offending node" shape discoverStruct uses
// for a type redefinition, so ErrorCollectorVisitor picks it up the same
// way.
func (r *TypeResolverVisitor) VisitCast(n *CastNode) (interface{}, error) {
	expr, err := acceptNode(r, n.Expr)
	if err != nil {
		return nil, err
	}
	target := r.lookupOr(n.TargetTypeName)
	source := types.UnknownType
	if expr != nil {
		source = expr.Type()
	}
	if types.Cast(source, target) == types.Impossible {
		return NewError(n.Pos(), fmt.Sprintf("impossible cast from %s to %s", source, target)), nil
	}

	out := NewCast(n.Pos(), n.TargetTypeName, expr)
	out.SetType(target)
	return out, nil
}

func (r *TypeResolverVisitor) VisitBinary(n *BinaryNode) (interface{}, error) {
	lhs, err := acceptNode(r, n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := acceptNode(r, n.Rhs)
	if err != nil {
		return nil, err
	}
	out := NewBinary(n.Pos(), n.Op, lhs, rhs)

	lt, rt := types.UnknownType, types.UnknownType
	if lhs != nil {
		lt = lhs.Type()
	}
	if rhs != nil {
		rt = rhs.Type()
	}

	switch {
	case n.Op == OpAssign:
		out.SetType(rt)
	case lt.IsUnknown() || rt.IsUnknown():
		out.SetType(types.UnknownType)
	case isComparisonOrLogical(n.Op):
		out.SetType(types.Primitive(types.Boolean))
	default:
		out.SetType(widen(lt, rt))
	}
	return out, nil
}

func isComparisonOrLogical(op Operator) bool {
	switch op {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual,
		OpLogicalAnd, OpLogicalOr:
		return true
	default:
		return false
	}
}

// widen implements the Binary result-type rule: the result is the
// "wider" of the two operand types per the implicit side of the cast
// lattice — i.e. a type both operands implicitly cast to — or Unknown if
// no such common type exists. This resolves the open question in spec §9
// ("Binary-node result type when operands are compatible but not equal...
// Expected behavior: widen to the common implicit-cast target").
func widen(a, b types.Type) types.Type {
	if a.Equal(b) {
		return a
	}
	if !a.IsPrimitive() || !b.IsPrimitive() {
		return types.UnknownType
	}
	// b is a valid common type if a can implicitly cast to b.
	if types.CastabilityOf(a.Kind(), b.Kind()) == types.Implicit {
		return b
	}
	// a is a valid common type if b can implicitly cast to a.
	if types.CastabilityOf(b.Kind(), a.Kind()) == types.Implicit {
		return a
	}
	return types.UnknownType
}

func (r *TypeResolverVisitor) VisitUnary(n *UnaryNode) (interface{}, error) {
	expr, err := acceptNode(r, n.Expr)
	if err != nil {
		return nil, err
	}
	out := NewUnary(n.Pos(), n.Op, expr)
	operandType := types.UnknownType
	if expr != nil {
		operandType = expr.Type()
	}
	switch n.Op {
	case OpLogicalNot:
		out.SetType(types.Primitive(types.Boolean))
	case OpIncrement, OpDecrement:
		if types.IsNumeric(operandType) {
			out.SetType(operandType)
		} else {
			out.SetType(types.UnknownType)
		}
	default:
		out.SetType(types.UnknownType)
	}
	return out, nil
}

func (r *TypeResolverVisitor) VisitIf(n *IfNode) (interface{}, error) {
	cond, err := acceptNode(r, n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := acceptBlock(r, n.Then)
	if err != nil {
		return nil, err
	}
	els, err := acceptBlock(r, n.Else)
	if err != nil {
		return nil, err
	}
	out := NewIf(n.Pos(), cond, then, els)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitForLoop(n *ForLoopNode) (interface{}, error) {
	init, err := acceptNode(r, n.Init)
	if err != nil {
		return nil, err
	}
	cond, err := acceptNode(r, n.Cond)
	if err != nil {
		return nil, err
	}
	upd, err := acceptNode(r, n.Update)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(r, n.Body)
	if err != nil {
		return nil, err
	}
	out := NewForLoop(n.Pos(), init, cond, upd, body)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitForeachLoop(n *ForeachLoopNode) (interface{}, error) {
	iter, err := acceptNode(r, n.Iterable)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(r, n.Body)
	if err != nil {
		return nil, err
	}
	out := NewForeachLoop(n.Pos(), n.Variable, iter, body)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitWhile(n *WhileNode) (interface{}, error) {
	cond, err := acceptNode(r, n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(r, n.Body)
	if err != nil {
		return nil, err
	}
	out := NewWhile(n.Pos(), cond, body)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitModule(n *ModuleNode) (interface{}, error) {
	stmts := make([]Node, len(n.Stmts))
	for i, s := range n.Stmts {
		res, err := acceptNode(r, s)
		if err != nil {
			return nil, err
		}
		stmts[i] = res
	}
	out := NewModule(n.Pos(), n.Name, stmts)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitBlock(n *BlockNode) (interface{}, error) {
	stmts := make([]Node, len(n.Stmts))
	for i, s := range n.Stmts {
		res, err := acceptNode(r, s)
		if err != nil {
			return nil, err
		}
		stmts[i] = res
	}
	out := NewBlock(n.Pos(), stmts)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}

func (r *TypeResolverVisitor) VisitFunctionDeclaration(n *FunctionDeclarationNode) (interface{}, error) {
	// Functions don't see each other's locals or parameters; start a
	// fresh environment, then seed it with this function's parameters.
	saved := r.locals
	r.locals = make(map[string]types.Type)
	for _, p := range n.Params {
		r.locals[p.Name] = r.lookupOr(p.TypeName)
	}

	body, err := acceptBlock(r, n.Body)
	r.locals = saved
	if err != nil {
		return nil, err
	}
	params := make([]Parameter, len(n.Params))
	copy(params, n.Params)
	out := NewFunctionDeclaration(n.Pos(), n.Name, n.ReturnTypeName, params, body)
	out.SetType(r.lookupOr(n.ReturnTypeName))
	return out, nil
}

func (r *TypeResolverVisitor) VisitReturn(n *ReturnNode) (interface{}, error) {
	expr, err := acceptNode(r, n.Expr)
	if err != nil {
		return nil, err
	}
	out := NewReturn(n.Pos(), expr)
	if expr != nil {
		out.SetType(expr.Type())
	} else {
		out.SetType(types.Primitive(types.Void))
	}
	return out, nil
}

func (r *TypeResolverVisitor) VisitFunctionCall(n *FunctionCallNode) (interface{}, error) {
	args := make([]Node, len(n.Args))
	for i, a := range n.Args {
		res, err := acceptNode(r, a)
		if err != nil {
			return nil, err
		}
		args[i] = res
	}
	out := NewFunctionCall(n.Pos(), n.Name, args)
	if sig, ok := r.scope.LookupFunction(n.Name); ok {
		out.SetType(sig.Return)
	} else {
		out.SetType(types.UnknownType)
	}
	return out, nil
}

func (r *TypeResolverVisitor) VisitStructDeclaration(n *StructDeclarationNode) (interface{}, error) {
	fields := make([]Node, len(n.Fields))
	copy(fields, n.Fields)
	out := NewStructDeclaration(n.Pos(), n.Name, fields)
	out.SetType(r.lookupOr(n.Name))
	return out, nil
}

func (r *TypeResolverVisitor) VisitError(n *ErrorNode) (interface{}, error) {
	out := NewError(n.Pos(), n.Message)
	out.SetType(types.UnknownType)
	return out, nil
}

func (r *TypeResolverVisitor) VisitLoopControl(n *LoopControlNode) (interface{}, error) {
	out := NewLoopControl(n.Pos(), n.Kind)
	out.SetType(types.Primitive(types.Void))
	return out, nil
}
