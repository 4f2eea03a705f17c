package ast

import (
	"encoding/json"
	"strings"
)

// Stringifier implements the AST-side half of §4.11's printers: a
// JSON-shaped textual dump used only for debugging and golden-output
// tests, with a fixed key order per variant and the literal token
// "__unknown__" standing in for any absent optional child. Type is
// printed inline only when PrintTypes is set, keeping untyped (freshly
// parsed) trees legible too.
type Stringifier struct {
	PrintTypes bool
}

func NewStringifier(printTypes bool) *Stringifier {
	return &Stringifier{PrintTypes: printTypes}
}

// Stringify is the package-level entry point. Stringify(nil, _) is the
// unknown token, matching how an absent optional child prints.
func Stringify(n Node, printTypes bool) (string, error) {
	if n == nil {
		return unknownToken, nil
	}
	res, err := n.Accept(NewStringifier(printTypes))
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

const unknownToken = `"__unknown__"`

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// kv is one key/value pair of a rendered object, kept in the order the
// caller supplies — Go maps make no such guarantee, so fixed key order
// per variant (§4.11) is expressed positionally rather than via a map.
type kv struct {
	key string
	val string
}

func object(kind string, fields ...kv) string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(`"kind":`)
	b.WriteString(quote(kind))
	for _, f := range fields {
		b.WriteByte(',')
		b.WriteString(quote(f.key))
		b.WriteByte(':')
		b.WriteString(f.val)
	}
	b.WriteByte('}')
	return b.String()
}

func (s *Stringifier) withType(rendered string, n Node) string {
	if !s.PrintTypes {
		return rendered
	}
	return rendered[:len(rendered)-1] + `,"type":` + quote(n.Type().String()) + "}"
}

// node renders an optional child, returning the unknown token for nil.
func (s *Stringifier) node(n Node) (string, error) {
	if n == nil {
		return unknownToken, nil
	}
	res, err := n.Accept(s)
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// block renders an optional *BlockNode. Taking the concrete pointer type
// (rather than Node) lets a nil block short-circuit before Accept ever
// dereferences it — the same hazard VisitBlock callers elsewhere in this
// package guard against.
func (s *Stringifier) block(n *BlockNode) (string, error) {
	if n == nil {
		return unknownToken, nil
	}
	res, err := n.Accept(s)
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (s *Stringifier) list(ns []Node) (string, error) {
	parts := make([]string, len(ns))
	for i, n := range ns {
		rendered, err := s.node(n)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (s *Stringifier) VisitBinary(n *BinaryNode) (interface{}, error) {
	lhs, err := s.node(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := s.node(n.Rhs)
	if err != nil {
		return nil, err
	}
	out := object("Binary", kv{"op", quote(n.Op.Short())}, kv{"lhs", lhs}, kv{"rhs", rhs})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitBlock(n *BlockNode) (interface{}, error) {
	stmts, err := s.list(n.Stmts)
	if err != nil {
		return nil, err
	}
	out := object("Block", kv{"stmts", stmts})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitCast(n *CastNode) (interface{}, error) {
	expr, err := s.node(n.Expr)
	if err != nil {
		return nil, err
	}
	out := object("Cast", kv{"target_type", quote(n.TargetTypeName)}, kv{"expr", expr})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitError(n *ErrorNode) (interface{}, error) {
	out := object("Error", kv{"message", quote(n.Message)})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitForLoop(n *ForLoopNode) (interface{}, error) {
	init, err := s.node(n.Init)
	if err != nil {
		return nil, err
	}
	cond, err := s.node(n.Cond)
	if err != nil {
		return nil, err
	}
	update, err := s.node(n.Update)
	if err != nil {
		return nil, err
	}
	body, err := s.block(n.Body)
	if err != nil {
		return nil, err
	}
	out := object("ForLoop", kv{"init", init}, kv{"cond", cond}, kv{"update", update}, kv{"body", body})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitForeachLoop(n *ForeachLoopNode) (interface{}, error) {
	iterable, err := s.node(n.Iterable)
	if err != nil {
		return nil, err
	}
	body, err := s.block(n.Body)
	if err != nil {
		return nil, err
	}
	out := object("ForeachLoop", kv{"variable", quote(n.Variable)}, kv{"iterable", iterable}, kv{"body", body})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitFunctionCall(n *FunctionCallNode) (interface{}, error) {
	args, err := s.list(n.Args)
	if err != nil {
		return nil, err
	}
	out := object("FunctionCall", kv{"name", quote(n.Name)}, kv{"args", args})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitFunctionDeclaration(n *FunctionDeclarationNode) (interface{}, error) {
	body, err := s.block(n.Body)
	if err != nil {
		return nil, err
	}
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = object("Parameter", kv{"name", quote(p.Name)}, kv{"type", quote(p.TypeName)})
	}
	out := object("FunctionDeclaration",
		kv{"name", quote(n.Name)},
		kv{"return_type", quote(n.ReturnTypeName)},
		kv{"params", "[" + strings.Join(params, ",") + "]"},
		kv{"body", body})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitIf(n *IfNode) (interface{}, error) {
	cond, err := s.node(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := s.block(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := s.block(n.Else)
	if err != nil {
		return nil, err
	}
	out := object("If", kv{"cond", cond}, kv{"then", then}, kv{"else", els})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitLiteral(n *LiteralNode) (interface{}, error) {
	out := object("Literal", kv{"literal_type", quote(n.LiteralType.String())}, kv{"value", quote(n.Value.String())})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitLoopControl(n *LoopControlNode) (interface{}, error) {
	out := object("LoopControl", kv{"kind", quote(n.Kind.String())})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitModule(n *ModuleNode) (interface{}, error) {
	stmts, err := s.list(n.Stmts)
	if err != nil {
		return nil, err
	}
	out := object("Module", kv{"name", quote(n.Name)}, kv{"stmts", stmts})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitReturn(n *ReturnNode) (interface{}, error) {
	expr, err := s.node(n.Expr)
	if err != nil {
		return nil, err
	}
	out := object("Return", kv{"expr", expr})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitStructDeclaration(n *StructDeclarationNode) (interface{}, error) {
	fields, err := s.list(n.Fields)
	if err != nil {
		return nil, err
	}
	out := object("StructDeclaration", kv{"name", quote(n.Name)}, kv{"fields", fields})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitUnary(n *UnaryNode) (interface{}, error) {
	expr, err := s.node(n.Expr)
	if err != nil {
		return nil, err
	}
	out := object("Unary", kv{"op", quote(n.Op.Short())}, kv{"expr", expr})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitVariableDeclaration(n *VariableDeclarationNode) (interface{}, error) {
	init, err := s.node(n.Init)
	if err != nil {
		return nil, err
	}
	out := object("VariableDeclaration",
		kv{"name", quote(n.Name)},
		kv{"type", quote(n.TypeName)},
		kv{"init", init},
		kv{"is_mutable", boolLiteral(n.IsMutable)})
	return s.withType(out, n), nil
}

func (s *Stringifier) VisitWhile(n *WhileNode) (interface{}, error) {
	cond, err := s.node(n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := s.block(n.Body)
	if err != nil {
		return nil, err
	}
	out := object("While", kv{"cond", cond}, kv{"body", body})
	return s.withType(out, n), nil
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
