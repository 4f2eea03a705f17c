package ast

// CopyVisitor produces a deep clone of a tree, preserving variant, child
// order, field identity, and the already-computed Type field (§4.3). It is
// also the base traversal DesugarVisitor extends: non-targeted nodes pass
// through a plain clone unchanged.
//
// DESIGN CHOICE: rather than a generic "DefaultTraverseVisitor" base class
// with virtual override hooks (which Go has no clean way to express),
// CopyVisitor is a complete, concrete Visitor implementation. Embedding it
// and overriding a method only shadows that one call site — recursive
// calls inside CopyVisitor's own methods still call the embedded type's
// method, never the embedder's override, because Go has no virtual
// dispatch. So CopyVisitor carries an explicit Self field: the Visitor its
// own methods recurse through. A plain CopyVisitor points Self at itself;
// an embedder such as DesugarVisitor re-points it at the outer value, so a
// compound-assign or for-loop found anywhere in the tree — not just at the
// root — reaches the embedder's override.
type CopyVisitor struct {
	Self Visitor
}

func NewCopyVisitor() *CopyVisitor {
	c := &CopyVisitor{}
	c.Self = c
	return c
}

func (c *CopyVisitor) self() Visitor {
	if c.Self != nil {
		return c.Self
	}
	return c
}

// Copy is the package-level entry point: Copy(nil) is nil, matching
// §4.2's "accept(null) is a no-op".
func Copy(n Node) (Node, error) {
	if n == nil {
		return nil, nil
	}
	return acceptNode(NewCopyVisitor(), n)
}

func (c *CopyVisitor) VisitBinary(n *BinaryNode) (interface{}, error) {
	lhs, err := acceptNode(c.self(), n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := acceptNode(c.self(), n.Rhs)
	if err != nil {
		return nil, err
	}
	out := NewBinary(n.Pos(), n.Op, lhs, rhs)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitBlock(n *BlockNode) (interface{}, error) {
	stmts, err := c.copyList(n.Stmts)
	if err != nil {
		return nil, err
	}
	out := NewBlock(n.Pos(), stmts)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitCast(n *CastNode) (interface{}, error) {
	expr, err := acceptNode(c.self(), n.Expr)
	if err != nil {
		return nil, err
	}
	out := NewCast(n.Pos(), n.TargetTypeName, expr)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitError(n *ErrorNode) (interface{}, error) {
	out := NewError(n.Pos(), n.Message)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitForLoop(n *ForLoopNode) (interface{}, error) {
	init, err := acceptNode(c.self(), n.Init)
	if err != nil {
		return nil, err
	}
	cond, err := acceptNode(c.self(), n.Cond)
	if err != nil {
		return nil, err
	}
	upd, err := acceptNode(c.self(), n.Update)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(c.self(), n.Body)
	if err != nil {
		return nil, err
	}
	out := NewForLoop(n.Pos(), init, cond, upd, body)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitForeachLoop(n *ForeachLoopNode) (interface{}, error) {
	iter, err := acceptNode(c.self(), n.Iterable)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(c.self(), n.Body)
	if err != nil {
		return nil, err
	}
	out := NewForeachLoop(n.Pos(), n.Variable, iter, body)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitFunctionCall(n *FunctionCallNode) (interface{}, error) {
	args, err := c.copyList(n.Args)
	if err != nil {
		return nil, err
	}
	out := NewFunctionCall(n.Pos(), n.Name, args)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitFunctionDeclaration(n *FunctionDeclarationNode) (interface{}, error) {
	body, err := acceptBlock(c.self(), n.Body)
	if err != nil {
		return nil, err
	}
	params := make([]Parameter, len(n.Params))
	copy(params, n.Params)
	out := NewFunctionDeclaration(n.Pos(), n.Name, n.ReturnTypeName, params, body)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitIf(n *IfNode) (interface{}, error) {
	cond, err := acceptNode(c.self(), n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := acceptBlock(c.self(), n.Then)
	if err != nil {
		return nil, err
	}
	els, err := acceptBlock(c.self(), n.Else)
	if err != nil {
		return nil, err
	}
	out := NewIf(n.Pos(), cond, then, els)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitLiteral(n *LiteralNode) (interface{}, error) {
	out := NewLiteral(n.Pos(), n.Value, n.LiteralType)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitLoopControl(n *LoopControlNode) (interface{}, error) {
	out := NewLoopControl(n.Pos(), n.Kind)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitModule(n *ModuleNode) (interface{}, error) {
	stmts, err := c.copyList(n.Stmts)
	if err != nil {
		return nil, err
	}
	out := NewModule(n.Pos(), n.Name, stmts)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitReturn(n *ReturnNode) (interface{}, error) {
	expr, err := acceptNode(c.self(), n.Expr)
	if err != nil {
		return nil, err
	}
	out := NewReturn(n.Pos(), expr)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitStructDeclaration(n *StructDeclarationNode) (interface{}, error) {
	fields, err := c.copyList(n.Fields)
	if err != nil {
		return nil, err
	}
	out := NewStructDeclaration(n.Pos(), n.Name, fields)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitUnary(n *UnaryNode) (interface{}, error) {
	expr, err := acceptNode(c.self(), n.Expr)
	if err != nil {
		return nil, err
	}
	out := NewUnary(n.Pos(), n.Op, expr)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitVariableDeclaration(n *VariableDeclarationNode) (interface{}, error) {
	init, err := acceptNode(c.self(), n.Init)
	if err != nil {
		return nil, err
	}
	out := NewVariableDeclaration(n.Pos(), n.Name, n.TypeName, init, n.IsMutable)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) VisitWhile(n *WhileNode) (interface{}, error) {
	cond, err := acceptNode(c.self(), n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := acceptBlock(c.self(), n.Body)
	if err != nil {
		return nil, err
	}
	out := NewWhile(n.Pos(), cond, body)
	out.SetType(n.Type())
	return out, nil
}

func (c *CopyVisitor) copyList(in []Node) ([]Node, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]Node, len(in))
	for i, child := range in {
		cloned, err := acceptNode(c.self(), child)
		if err != nil {
			return nil, err
		}
		out[i] = cloned
	}
	return out, nil
}
