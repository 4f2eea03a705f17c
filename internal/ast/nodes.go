package ast

import (
	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/value"
)

// BinaryNode : op, lhs, rhs.
type BinaryNode struct {
	base
	Op  Operator
	Lhs Node
	Rhs Node
}

func NewBinary(pos lexer.Position, op Operator, lhs, rhs Node) *BinaryNode {
	return &BinaryNode{base: newBase(pos), Op: op, Lhs: lhs, Rhs: rhs}
}
func (n *BinaryNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitBinary(n)
}

// BlockNode : ordered sequence of statements.
type BlockNode struct {
	base
	Stmts []Node
}

func NewBlock(pos lexer.Position, stmts []Node) *BlockNode {
	return &BlockNode{base: newBase(pos), Stmts: stmts}
}
func (n *BlockNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitBlock(n)
}

// CastNode : target type identifier, expression.
type CastNode struct {
	base
	TargetTypeName string
	Expr           Node
}

func NewCast(pos lexer.Position, targetTypeName string, expr Node) *CastNode {
	return &CastNode{base: newBase(pos), TargetTypeName: targetTypeName, Expr: expr}
}
func (n *CastNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitCast(n)
}

// ErrorNode : message. Embedded in the tree in place of a malformed node,
// per the error-as-data model in spec §7.
type ErrorNode struct {
	base
	Message string
}

func NewError(pos lexer.Position, message string) *ErrorNode {
	return &ErrorNode{base: newBase(pos), Message: message}
}
func (n *ErrorNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitError(n)
}

// ForLoopNode : init?, condition?, update?, body(Block). Desugared away
// before lowering (§4.7); must never reach LowerVisitor.
type ForLoopNode struct {
	base
	Init   Node // optional
	Cond   Node // optional
	Update Node // optional
	Body   *BlockNode
}

func NewForLoop(pos lexer.Position, init, cond, update Node, body *BlockNode) *ForLoopNode {
	return &ForLoopNode{base: newBase(pos), Init: init, Cond: cond, Update: update, Body: body}
}
func (n *ForLoopNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitForLoop(n)
}

// ForeachLoopNode : variable, iterable, body(Block). Desugaring is an open
// extension (§4.7); LowerVisitor emits Unreachable if one survives to it.
type ForeachLoopNode struct {
	base
	Variable string
	Iterable Node
	Body     *BlockNode
}

func NewForeachLoop(pos lexer.Position, variable string, iterable Node, body *BlockNode) *ForeachLoopNode {
	return &ForeachLoopNode{base: newBase(pos), Variable: variable, Iterable: iterable, Body: body}
}
func (n *ForeachLoopNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitForeachLoop(n)
}

// FunctionCallNode : name, ordered arguments.
type FunctionCallNode struct {
	base
	Name string
	Args []Node
}

func NewFunctionCall(pos lexer.Position, name string, args []Node) *FunctionCallNode {
	return &FunctionCallNode{base: newBase(pos), Name: name, Args: args}
}
func (n *FunctionCallNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitFunctionCall(n)
}

// Parameter is a function parameter: not itself an ASTNode variant (the
// closed union in §3 does not name one), just a plain field of
// FunctionDeclarationNode, mirroring how the spec's table lists
// "ordered parameters" as a FunctionDeclaration field rather than a
// node kind of its own.
type Parameter struct {
	Name     string
	TypeName string
}

// FunctionDeclarationNode : name, return-type identifier, ordered
// parameters, body(Block).
type FunctionDeclarationNode struct {
	base
	Name           string
	ReturnTypeName string
	Params         []Parameter
	Body           *BlockNode
}

func NewFunctionDeclaration(pos lexer.Position, name, returnTypeName string, params []Parameter, body *BlockNode) *FunctionDeclarationNode {
	return &FunctionDeclarationNode{base: newBase(pos), Name: name, ReturnTypeName: returnTypeName, Params: params, Body: body}
}
func (n *FunctionDeclarationNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitFunctionDeclaration(n)
}

// IfNode : condition, then(Block), else(Block, possibly empty).
type IfNode struct {
	base
	Cond Node
	Then *BlockNode
	Else *BlockNode
}

func NewIf(pos lexer.Position, cond Node, then, els *BlockNode) *IfNode {
	return &IfNode{base: newBase(pos), Cond: cond, Then: then, Else: els}
}
func (n *IfNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitIf(n)
}

// LiteralNode : value(Value), literal_type.
type LiteralNode struct {
	base
	Value       value.Value
	LiteralType LiteralType
}

func NewLiteral(pos lexer.Position, v value.Value, lt LiteralType) *LiteralNode {
	return &LiteralNode{base: newBase(pos), Value: v, LiteralType: lt}
}

// NewIdentifierLiteral builds the special Literal form spec §3 calls out:
// literal_type Identifier, Value holding the name as a string.
func NewIdentifierLiteral(pos lexer.Position, name string) *LiteralNode {
	return NewLiteral(pos, value.NewIdentifier(name), LiteralIdentifier)
}

func (n *LiteralNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitLiteral(n)
}

// IdentifierName returns the identifier this literal names. Callers must
// have checked LiteralType == LiteralIdentifier first.
func (n *LiteralNode) IdentifierName() string { return n.Value.AsString() }

// LoopControlNode : kind ∈ {Break, Continue}.
type LoopControlNode struct {
	base
	Kind LoopControlKind
}

func NewLoopControl(pos lexer.Position, kind LoopControlKind) *LoopControlNode {
	return &LoopControlNode{base: newBase(pos), Kind: kind}
}
func (n *LoopControlNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitLoopControl(n)
}

// ModuleNode : name, ordered top-level statements. The AST root.
type ModuleNode struct {
	base
	Name  string
	Stmts []Node
}

func NewModule(pos lexer.Position, name string, stmts []Node) *ModuleNode {
	return &ModuleNode{base: newBase(pos), Name: name, Stmts: stmts}
}
func (n *ModuleNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitModule(n)
}

// ReturnNode : expression?.
type ReturnNode struct {
	base
	Expr Node // optional
}

func NewReturn(pos lexer.Position, expr Node) *ReturnNode {
	return &ReturnNode{base: newBase(pos), Expr: expr}
}
func (n *ReturnNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitReturn(n)
}

// StructDeclarationNode : name, ordered field declarations. Fields are
// VariableDeclarationNodes per §4.5, or ErrorNodes replacing a malformed
// field.
type StructDeclarationNode struct {
	base
	Name   string
	Fields []Node
}

func NewStructDeclaration(pos lexer.Position, name string, fields []Node) *StructDeclarationNode {
	return &StructDeclarationNode{base: newBase(pos), Name: name, Fields: fields}
}
func (n *StructDeclarationNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitStructDeclaration(n)
}

// UnaryNode : op, expression.
type UnaryNode struct {
	base
	Op   Operator
	Expr Node
}

func NewUnary(pos lexer.Position, op Operator, expr Node) *UnaryNode {
	return &UnaryNode{base: newBase(pos), Op: op, Expr: expr}
}
func (n *UnaryNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitUnary(n)
}

// VariableDeclarationNode : name, declared-type identifier, init
// expression?, is_mutable.
type VariableDeclarationNode struct {
	base
	Name       string
	TypeName   string
	Init       Node // optional
	IsMutable  bool
}

func NewVariableDeclaration(pos lexer.Position, name, typeName string, init Node, isMutable bool) *VariableDeclarationNode {
	return &VariableDeclarationNode{base: newBase(pos), Name: name, TypeName: typeName, Init: init, IsMutable: isMutable}
}
func (n *VariableDeclarationNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitVariableDeclaration(n)
}

// WhileNode : condition, body(Block).
type WhileNode struct {
	base
	Cond Node
	Body *BlockNode
}

func NewWhile(pos lexer.Position, cond Node, body *BlockNode) *WhileNode {
	return &WhileNode{base: newBase(pos), Cond: cond, Body: body}
}
func (n *WhileNode) Accept(v Visitor) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	return v.VisitWhile(n)
}
