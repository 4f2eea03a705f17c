// Package parser implements a recursive descent parser for soul, producing
// internal/ast's seventeen-variant ASTNode tree directly — no separate
// File/Decl/Stmt/Expr hierarchy, since the spec's ASTNode is one flat union
// rather than three.
//
// PARSING STRATEGY: recursive descent for statements and declarations,
// Pratt parsing (precedence climbing) for expressions — same split the
// teacher repo uses and for the same reasons: recursive descent gives a
// direct grammar-to-code mapping, Pratt parsing handles operator
// precedence without a combinatorial blowup of grammar productions.
//
// ERROR HANDLING STRATEGY: a parse error is recorded as an *ast.ErrorNode*
// spliced into the tree at the point of failure (§7's "syntactic errors:
// surfaced by the parser as ErrorNodes"), not as a Go error returned up the
// stack — the parser always finishes and always returns a tree, consistent
// with §7's "a pass that sees embedded errors must still propagate the
// surrounding tree unchanged". panic/recover is still used internally for
// statement-level resynchronization, exactly like the teacher's parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hassandahiru/soulc/internal/ast"
	"github.com/hassandahiru/soulc/internal/lexer"
	"github.com/hassandahiru/soulc/internal/value"
)

// Parser converts a token stream into a soul ASTNode tree.
type Parser struct {
	lexer    *lexer.Lexer
	current  lexer.Token
	previous lexer.Token

	// lexErrors accumulates *lexer.Error values surfaced while priming
	// tokens, so ParseModule can splice them into the tree as ErrorNodes
	// even though the lexer itself never builds an AST.
	lexErrors []error

	panicMode bool
}

// New creates a new parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lexer: l}
	p.advance()
	return p
}

// ParseModule parses a complete source file into a ModuleNode — the
// `parse(module_name, tokens) -> ASTNode` collaborator entry §6 names.
func (p *Parser) ParseModule(name string) *ast.ModuleNode {
	pos := p.current.Position
	var stmts []ast.Node

	for !p.isAtEnd() {
		stmts = append(stmts, p.parseTopLevel())
	}

	for _, err := range p.lexErrors {
		stmts = append(stmts, ast.NewError(pos, err.Error()))
	}

	return ast.NewModule(pos, name, stmts)
}

// parseTopLevel parses one top-level declaration: a FunctionDeclaration or
// a StructDeclaration, the only two ASTNode variants spec §3 allows at
// module scope.
func (p *Parser) parseTopLevel() (node ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			node = ast.NewError(p.previous.Position, fmt.Sprintf("%v", r))
			p.synchronize()
		}
	}()

	switch {
	case p.match(lexer.TokenFunc):
		return p.parseFuncDecl()
	case p.match(lexer.TokenStruct):
		return p.parseStructDecl()
	default:
		pos := p.current.Position
		msg := fmt.Sprintf("expected 'func' or 'struct', got %s", p.current.Type)
		p.advance()
		panic(parseError{pos, msg})
	}
}

// parseError carries enough to build an ErrorNode at the recover site.
type parseError struct {
	pos lexer.Position
	msg string
}

func (e parseError) Error() string { return e.msg }

func (p *Parser) fail(pos lexer.Position, format string, args ...interface{}) {
	panic(parseError{pos, fmt.Sprintf(format, args...)})
}

// parseFuncDecl parses: func name(params) [returnType] { body }
func (p *Parser) parseFuncDecl() ast.Node {
	pos := p.previous.Position

	if !p.check(lexer.TokenIdentifier) {
		p.fail(p.current.Position, "expected function name")
	}
	name := p.current.Lexeme
	p.advance()

	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	params := p.parseParameters()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	returnType := "void"
	if p.check(lexer.TokenIdentifier) {
		returnType = p.current.Lexeme
		p.advance()
	}

	body := p.parseBlock()
	return ast.NewFunctionDeclaration(pos, name, returnType, params, body)
}

func (p *Parser) parseParameters() []ast.Parameter {
	var params []ast.Parameter
	if p.check(lexer.TokenRightParen) {
		return params
	}

	for {
		if !p.check(lexer.TokenIdentifier) {
			p.fail(p.current.Position, "expected parameter name")
		}
		name := p.current.Lexeme
		p.advance()

		if !p.check(lexer.TokenIdentifier) {
			p.fail(p.current.Position, "expected parameter type")
		}
		typeName := p.current.Lexeme
		p.advance()

		params = append(params, ast.Parameter{Name: name, TypeName: typeName})

		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return params
}

// parseStructDecl parses: struct Name { field type; ... }
func (p *Parser) parseStructDecl() ast.Node {
	pos := p.previous.Position

	if !p.check(lexer.TokenIdentifier) {
		p.fail(p.current.Position, "expected struct name")
	}
	name := p.current.Lexeme
	p.advance()

	p.consume(lexer.TokenLeftBrace, "expected '{' before struct body")

	var fields []ast.Node
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		fieldPos := p.current.Position
		if !p.check(lexer.TokenIdentifier) {
			fields = append(fields, ast.NewError(fieldPos, "expected field name"))
			p.advance()
			continue
		}
		fieldName := p.current.Lexeme
		p.advance()

		if !p.check(lexer.TokenIdentifier) {
			fields = append(fields, ast.NewError(fieldPos, "expected field type"))
			continue
		}
		fieldType := p.current.Lexeme
		p.advance()

		p.consume(lexer.TokenSemicolon, "expected ';' after field declaration")
		fields = append(fields, ast.NewVariableDeclaration(fieldPos, fieldName, fieldType, nil, false))
	}

	p.consume(lexer.TokenRightBrace, "expected '}' after struct body")
	return ast.NewStructDeclaration(pos, name, fields)
}

// parseStmt parses a single statement inside a function body.
func (p *Parser) parseStmt() (node ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(parseError); ok {
				node = ast.NewError(pe.pos, pe.msg)
			} else {
				node = ast.NewError(p.previous.Position, fmt.Sprintf("%v", r))
			}
			p.synchronize()
		}
	}()

	switch {
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlock()
	case p.match(lexer.TokenIf):
		return p.parseIf()
	case p.match(lexer.TokenWhile):
		return p.parseWhile()
	case p.match(lexer.TokenFor):
		return p.parseFor()
	case p.match(lexer.TokenForeach):
		return p.parseForeach()
	case p.match(lexer.TokenReturn):
		return p.parseReturn()
	case p.match(lexer.TokenBreak):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'break'")
		return ast.NewLoopControl(p.previous.Position, ast.Break)
	case p.match(lexer.TokenContinue):
		p.consume(lexer.TokenSemicolon, "expected ';' after 'continue'")
		return ast.NewLoopControl(p.previous.Position, ast.Continue)
	case p.check(lexer.TokenVar), p.check(lexer.TokenLet):
		return p.parseVarDecl()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock parses: { stmt* }
func (p *Parser) parseBlock() *ast.BlockNode {
	p.consume(lexer.TokenLeftBrace, "expected '{'")
	pos := p.previous.Position

	var stmts []ast.Node
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStmt())
	}
	p.consume(lexer.TokenRightBrace, "expected '}'")
	return ast.NewBlock(pos, stmts)
}

// parseVarDecl parses: (var|let) name [type] [= init] ;
// `var` declares a mutable binding, `let` an immutable one — both map onto
// VariableDeclarationNode's single IsMutable flag (§3's table has one
// variant for both, so the keyword is the only thing that differs).
func (p *Parser) parseVarDecl() ast.Node {
	isMutable := p.current.Type == lexer.TokenVar
	p.advance()
	pos := p.previous.Position

	if !p.check(lexer.TokenIdentifier) {
		p.fail(p.current.Position, "expected variable name")
	}
	name := p.current.Lexeme
	p.advance()

	typeName := ""
	if p.check(lexer.TokenIdentifier) {
		typeName = p.current.Lexeme
		p.advance()
	}

	var init ast.Node
	if p.match(lexer.TokenAssign) {
		init = p.parseExpression()
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
	return ast.NewVariableDeclaration(pos, name, typeName, init, isMutable)
}

// parseIf parses: if (cond) block [else (if ... | block)]
func (p *Parser) parseIf() ast.Node {
	pos := p.previous.Position

	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")

	then := p.parseBlock()

	var els *ast.BlockNode
	if p.match(lexer.TokenElse) {
		if p.match(lexer.TokenIf) {
			elsePos := p.previous.Position
			els = ast.NewBlock(elsePos, []ast.Node{p.parseIf()})
		} else {
			els = p.parseBlock()
		}
	}

	return ast.NewIf(pos, cond, then, els)
}

// parseWhile parses: while (cond) block
func (p *Parser) parseWhile() ast.Node {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	body := p.parseBlock()
	return ast.NewWhile(pos, cond, body)
}

// parseFor parses: for (init; cond; update) block
func (p *Parser) parseFor() ast.Node {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'for'")

	var init ast.Node
	if p.match(lexer.TokenSemicolon) {
		// no init
	} else if p.check(lexer.TokenVar) || p.check(lexer.TokenLet) {
		init = p.parseVarDecl()
	} else {
		init = p.parseExprStmt()
	}

	var cond ast.Node
	if !p.check(lexer.TokenSemicolon) {
		cond = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after loop condition")

	var update ast.Node
	if !p.check(lexer.TokenRightParen) {
		update = p.parseExpression()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after for clauses")

	body := p.parseBlock()
	return ast.NewForLoop(pos, init, cond, update, body)
}

// parseForeach parses: foreach (name in iterable) block
func (p *Parser) parseForeach() ast.Node {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'foreach'")

	if !p.check(lexer.TokenIdentifier) {
		p.fail(p.current.Position, "expected loop variable name")
	}
	variable := p.current.Lexeme
	p.advance()

	p.consume(lexer.TokenIn, "expected 'in' after foreach variable")
	iterable := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after foreach clause")

	body := p.parseBlock()
	return ast.NewForeachLoop(pos, variable, iterable, body)
}

// parseReturn parses: return [expr] ;
func (p *Parser) parseReturn() ast.Node {
	pos := p.previous.Position

	var expr ast.Node
	if !p.check(lexer.TokenSemicolon) {
		expr = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after return statement")
	return ast.NewReturn(pos, expr)
}

// parseExprStmt parses: expr ;
func (p *Parser) parseExprStmt() ast.Node {
	expr := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after expression")
	return expr
}

// Expression parsing (Pratt / precedence climbing).

func (p *Parser) parseExpression() ast.Node {
	return p.parsePrecedence(PrecAssignment)
}

func (p *Parser) parsePrecedence(precedence Precedence) ast.Node {
	left := p.parsePrefix()

	for precedence <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Node {
	switch p.current.Type {
	case lexer.TokenNumber:
		return p.parseNumber()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenChar:
		return p.parseCharLiteral()
	case lexer.TokenTrue, lexer.TokenFalse:
		return p.parseBoolLiteral()
	case lexer.TokenIdentifier:
		return p.parseIdentifierOrCall()
	case lexer.TokenLeftParen:
		return p.parseGrouping()
	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		return p.parseUnary()
	default:
		pos := p.current.Position
		msg := fmt.Sprintf("expected expression, got %s", p.current.Type)
		p.advance()
		return ast.NewError(pos, msg)
	}
}

func (p *Parser) parseInfix(left ast.Node) ast.Node {
	switch p.current.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent,
		lexer.TokenEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		return p.parseBinary(left)
	case lexer.TokenAnd, lexer.TokenOr:
		return p.parseBinary(left)
	case lexer.TokenAssign, lexer.TokenPlusEq, lexer.TokenMinusEq, lexer.TokenStarEq,
		lexer.TokenSlashEq, lexer.TokenPercentEq:
		return p.parseAssignment(left)
	case lexer.TokenAs:
		return p.parseCast(left)
	case lexer.TokenLeftParen:
		return p.parseCall(left)
	case lexer.TokenPlusPlus, lexer.TokenMinusMinus:
		op := ast.OpIncrement
		if p.current.Type == lexer.TokenMinusMinus {
			op = ast.OpDecrement
		}
		pos := p.current.Position
		p.advance()
		return ast.NewUnary(pos, op, left)
	default:
		return left
	}
}

var binaryOps = map[lexer.TokenType]ast.Operator{
	lexer.TokenPlus:         ast.OpAdd,
	lexer.TokenMinus:        ast.OpSub,
	lexer.TokenStar:         ast.OpMul,
	lexer.TokenSlash:        ast.OpDiv,
	lexer.TokenPercent:      ast.OpMod,
	lexer.TokenEqual:        ast.OpEqual,
	lexer.TokenNotEqual:     ast.OpNotEqual,
	lexer.TokenLess:         ast.OpLess,
	lexer.TokenLessEqual:    ast.OpLessEqual,
	lexer.TokenGreater:      ast.OpGreater,
	lexer.TokenGreaterEqual: ast.OpGreaterEqual,
	lexer.TokenAnd:          ast.OpLogicalAnd,
	lexer.TokenOr:           ast.OpLogicalOr,
}

var assignOps = map[lexer.TokenType]ast.Operator{
	lexer.TokenAssign:    ast.OpAssign,
	lexer.TokenPlusEq:    ast.OpAddAssign,
	lexer.TokenMinusEq:   ast.OpSubAssign,
	lexer.TokenStarEq:    ast.OpMulAssign,
	lexer.TokenSlashEq:   ast.OpDivAssign,
	lexer.TokenPercentEq: ast.OpModAssign,
}

func (p *Parser) parseBinary(left ast.Node) ast.Node {
	tokenType := p.current.Type
	op := binaryOps[tokenType]
	pos := p.current.Position
	precedence := getPrecedence(tokenType)
	p.advance()

	if isRightAssociative(tokenType) {
		precedence--
	}
	right := p.parsePrecedence(precedence + 1)
	return ast.NewBinary(pos, op, left, right)
}

// parseAssignment parses an assignment expression. §3's ASTNode table has
// no dedicated Assignment variant; it desugars to Binary(op, lhs, rhs) with
// op one of {=, +=, -=, *=, /=, %=}, matching the original's "source only
// handles identifier on LHS" — a non-identifier target is a parse error.
func (p *Parser) parseAssignment(left ast.Node) ast.Node {
	op := assignOps[p.current.Type]
	pos := p.current.Position
	p.advance()

	right := p.parsePrecedence(PrecAssignment)

	if lit, ok := left.(*ast.LiteralNode); !ok || lit.LiteralType != ast.LiteralIdentifier {
		return ast.NewError(pos, "assignment target must be an identifier")
	}
	return ast.NewBinary(pos, op, left, right)
}

// parseCast parses: expr as TypeName
func (p *Parser) parseCast(left ast.Node) ast.Node {
	pos := p.current.Position
	p.advance()

	if !p.check(lexer.TokenIdentifier) {
		p.fail(p.current.Position, "expected type name after 'as'")
	}
	typeName := p.current.Lexeme
	p.advance()
	return ast.NewCast(pos, typeName, left)
}

func (p *Parser) parseCall(left ast.Node) ast.Node {
	lit, ok := left.(*ast.LiteralNode)
	if !ok || lit.LiteralType != ast.LiteralIdentifier {
		pos := p.current.Position
		p.fail(pos, "function calls require a plain function name")
	}
	name := lit.IdentifierName()
	pos := p.current.Position
	p.advance()

	var args []ast.Node
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")
	return ast.NewFunctionCall(pos, name, args)
}

func (p *Parser) parseUnary() ast.Node {
	tokenType := p.current.Type
	pos := p.current.Position
	p.advance()

	operand := p.parsePrecedence(PrecUnary)

	switch tokenType {
	case lexer.TokenMinus:
		return ast.NewUnary(pos, ast.OpSub, operand)
	case lexer.TokenNot:
		return ast.NewUnary(pos, ast.OpLogicalNot, operand)
	case lexer.TokenPlusPlus:
		return ast.NewUnary(pos, ast.OpIncrement, operand)
	case lexer.TokenMinusMinus:
		return ast.NewUnary(pos, ast.OpDecrement, operand)
	default:
		return ast.NewError(pos, "unreachable unary operator")
	}
}

func (p *Parser) parseGrouping() ast.Node {
	p.advance()
	expr := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after expression")
	return expr
}

func (p *Parser) parseIdentifierOrCall() ast.Node {
	pos := p.current.Position
	name := p.current.Lexeme
	p.advance()
	return ast.NewIdentifierLiteral(pos, name)
}

func (p *Parser) parseNumber() ast.Node {
	token := p.current
	p.advance()

	if isIntegerLexeme(token.Lexeme) {
		v, err := strconv.ParseInt(token.Lexeme, 10, 32)
		if err == nil {
			return ast.NewLiteral(token.Position, value.NewI64(v), ast.LiteralInt32)
		}
		v64, _ := strconv.ParseInt(token.Lexeme, 10, 64)
		return ast.NewLiteral(token.Position, value.NewI64(v64), ast.LiteralInt64)
	}

	f, _ := strconv.ParseFloat(token.Lexeme, 64)
	return ast.NewLiteral(token.Position, value.NewF64(f), ast.LiteralFloat64)
}

func isIntegerLexeme(s string) bool {
	for _, r := range s {
		if r == '.' {
			return false
		}
	}
	return true
}

func (p *Parser) parseStringLiteral() ast.Node {
	token := p.current
	p.advance()
	return ast.NewLiteral(token.Position, value.NewString(unescapeString(token.Lexeme)), ast.LiteralString)
}

// unescapeString removes surrounding quotes and processes the handful of
// escapes soul supports (\n \t \r \\ \").
func unescapeString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	s := lexeme[1 : len(lexeme)-1]

	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, s[i+1])
			}
			i++
		} else {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func (p *Parser) parseCharLiteral() ast.Node {
	token := p.current
	p.advance()

	if len(token.Lexeme) < 3 {
		return ast.NewError(token.Position, "invalid character literal")
	}
	s := token.Lexeme[1 : len(token.Lexeme)-1]

	if s[0] == '\\' && len(s) >= 2 {
		switch s[1] {
		case 'n':
			return ast.NewLiteral(token.Position, value.NewChar('\n'), ast.LiteralChar)
		case 't':
			return ast.NewLiteral(token.Position, value.NewChar('\t'), ast.LiteralChar)
		case 'r':
			return ast.NewLiteral(token.Position, value.NewChar('\r'), ast.LiteralChar)
		case '\\':
			return ast.NewLiteral(token.Position, value.NewChar('\\'), ast.LiteralChar)
		case '\'':
			return ast.NewLiteral(token.Position, value.NewChar('\''), ast.LiteralChar)
		default:
			return ast.NewLiteral(token.Position, value.NewChar(rune(s[1])), ast.LiteralChar)
		}
	}

	ch := rune(s[0])
	return ast.NewLiteral(token.Position, value.NewChar(ch), ast.LiteralChar)
}

func (p *Parser) parseBoolLiteral() ast.Node {
	token := p.current
	p.advance()
	return ast.NewLiteral(token.Position, value.NewBool(token.Type == lexer.TokenTrue), ast.LiteralBoolean)
}

// Helper methods

func (p *Parser) advance() {
	p.previous = p.current
	token, err := p.lexer.NextToken()
	if err != nil {
		p.lexErrors = append(p.lexErrors, err)
		p.current = lexer.Token{Type: lexer.TokenInvalid, Position: p.previous.Position}
		return
	}
	p.current = token
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.fail(p.current.Position, "%s", message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// synchronize skips tokens until a likely statement/declaration boundary,
// the same panic/recover recovery strategy the teacher's parser uses.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}
		switch p.current.Type {
		case lexer.TokenFunc, lexer.TokenVar, lexer.TokenLet, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenReturn, lexer.TokenStruct:
			return
		}
		p.advance()
	}
}
