// Package parser implements the hand-written recursive-descent parser
// described by the language grammar: C-style operator precedence, explicit
// short-circuit operators, and no error recovery — the first syntax error
// aborts the whole compile.
package parser

import (
	"fmt"

	"aotc/internal/ast"
	"aotc/internal/ident"
	"aotc/internal/lexer"
	"aotc/internal/token"
)

// Error is a ParseUnexpected failure: a token mismatch or an unrecognised
// statement start.
type Error struct {
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Col+1, e.Msg)
}

// Parser drives a Lexer, producing a Program tree. It holds no lookahead
// beyond the Lexer's own single-token peek, matching spec's grammar (LL(1)
// throughout).
type Parser struct {
	lex *lexer.Lexer
	tab *ident.Table
}

// New creates a Parser reading from lex, whose identifiers were interned
// into tab.
func New(lex *lexer.Lexer, tab *ident.Table) *Parser {
	return &Parser{lex: lex, tab: tab}
}

// Parse consumes the entire token stream and returns the parsed Program.
// Parse is a pure function of the token stream: re-parsing the same input
// yields a structurally identical tree, since the Parser carries no state
// beyond its position in that stream.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				err = perr
				return
			}
			if lerr, ok := r.(*lexer.Error); ok {
				err = lerr
				return
			}
			panic(r)
		}
	}()

	var stmts []ast.Stmt
	for p.tok().Kind != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	return &ast.Program{Stmts: stmts}, nil
}

// -----------------------------------------------------------------------------
// token-stream helpers

func (p *Parser) tok() token.Token {
	return p.lex.Peek()
}

// advance consumes the current token, converting a lex failure into a panic
// that Parse's recover() unwinds into a returned error — the compiler as a
// whole aborts on the first lexical OR syntactic error either way, so
// unifying their propagation through the parser keeps every caller of
// Parse() looking at a single error return.
func (p *Parser) advance() {
	if err := p.lex.AdvanceErr(); err != nil {
		panic(err)
	}
}

// expect consumes the current token iff it has the given kind, returning
// its payload. A mismatch aborts the parse with ParseUnexpected.
func (p *Parser) expect(kind token.Kind) token.Token {
	t := p.tok()
	if t.Kind != kind {
		p.fail("expected %v, got %v", kind, t.Kind)
	}
	p.advance()
	return t
}

func (p *Parser) got(kind token.Kind) bool {
	return p.tok().Kind == kind
}

func (p *Parser) fail(format string, args ...interface{}) {
	t := p.tok()
	panic(&Error{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)})
}

// -----------------------------------------------------------------------------
// STMT

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok().Kind {
	case token.BREAK:
		p.advance()
		p.expect(token.Kind(';'))
		return &ast.Break{}

	case token.CONTINUE:
		p.advance()
		p.expect(token.Kind(';'))
		return &ast.Continue{}

	case token.RETURN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.Kind(';'))
		return &ast.Return{Expr: e}

	case token.LOOP:
		p.advance()
		return &ast.Loop{Body: p.parseBlock()}

	case token.Kind('{'):
		return p.parseBlock()

	case token.Kind(';'):
		p.advance()
		return &ast.Nop{}

	case token.IF:
		return p.parseIf()

	case token.LET:
		p.advance()
		let := p.parseVariableDecl()
		p.expect(token.Kind(';'))
		return let

	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	p.expect(token.Kind('{'))

	var stmts []ast.Stmt
	for !p.got(token.Kind('}')) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.Kind('}'))

	return &ast.Block{Stmts: stmts}
}

func (p *Parser) parseIf() ast.Stmt {
	p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.got(token.ELSE) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	return &ast.If{Cond: cond, Then: then, Else: elseBlock}
}

// parseVariableDecl parses the VARIABLE production used by `let`:
// id ( '[' EXPR ']' )?. The bracketed size is parsed as a general
// expression; whether it is actually a literal is a codegen-time concern
// (BadArraySize), not a grammar restriction.
func (p *Parser) parseVariableDecl() *ast.Let {
	nameTok := p.expect(token.ID)
	name := ident.ID(nameTok.Value)

	if p.got(token.Kind('[')) {
		p.advance()
		size := p.parseExpr()
		p.expect(token.Kind(']'))
		return &ast.Let{Kind: ast.ArrayVar, Name: name, Size: size}
	}

	return &ast.Let{Kind: ast.ScalarVar, Name: name}
}

// parseExprOrAssignStmt implements `EXPR '=' EXPR ';' | EXPR ';'`: it parses
// one expression, then decides Assign vs ExprStmt based on whether '='
// follows. Whether the left-hand expression is actually a legal assignment
// target (a Variable or ArrayAccess) is checked at codegen time
// (BadAssignTarget), not here.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	e := p.parseExpr()

	if p.got(token.Kind('=')) {
		p.advance()
		rhs := p.parseExpr()
		p.expect(token.Kind(';'))
		return &ast.Assign{LHS: e, RHS: rhs}
	}

	p.expect(token.Kind(';'))
	return &ast.ExprStmt{Expr: e}
}

// -----------------------------------------------------------------------------
// EXPR — precedence low to high: OR, AND, REL, ADD, MUL, UNARY, PRIMARY.
// Every binary level is left-associative; unary right-associates through
// recursion.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	lhs := p.parseAnd()
	for p.got(token.OR) {
		p.advance()
		rhs := p.parseAnd()
		lhs = &ast.MathOp{Op: ast.Op(token.OR), Operands: []ast.Expr{lhs, rhs}}
	}
	return lhs
}

func (p *Parser) parseAnd() ast.Expr {
	lhs := p.parseRel()
	for p.got(token.AND) {
		p.advance()
		rhs := p.parseRel()
		lhs = &ast.MathOp{Op: ast.Op(token.AND), Operands: []ast.Expr{lhs, rhs}}
	}
	return lhs
}

var relOps = []token.Kind{token.Kind('<'), token.Kind('>'), token.LE, token.GE, token.EQ, token.NE}

func (p *Parser) parseRel() ast.Expr {
	lhs := p.parseAdd()
	for isOneOf(p.tok().Kind, relOps) {
		op := p.tok().Kind
		p.advance()
		rhs := p.parseAdd()
		lhs = &ast.MathOp{Op: ast.Op(op), Operands: []ast.Expr{lhs, rhs}}
	}
	return lhs
}

var addOps = []token.Kind{token.Kind('+'), token.Kind('-'), token.Kind('^'), token.Kind('|')}

func (p *Parser) parseAdd() ast.Expr {
	lhs := p.parseMul()
	for isOneOf(p.tok().Kind, addOps) {
		op := p.tok().Kind
		p.advance()
		rhs := p.parseMul()
		lhs = &ast.MathOp{Op: ast.Op(op), Operands: []ast.Expr{lhs, rhs}}
	}
	return lhs
}

var mulOps = []token.Kind{token.LSHIFT, token.RSHIFT, token.Kind('&'), token.Kind('*'), token.Kind('/'), token.Kind('%')}

func (p *Parser) parseMul() ast.Expr {
	lhs := p.parseUnary()
	for isOneOf(p.tok().Kind, mulOps) {
		op := p.tok().Kind
		p.advance()
		rhs := p.parseUnary()
		lhs = &ast.MathOp{Op: ast.Op(op), Operands: []ast.Expr{lhs, rhs}}
	}
	return lhs
}

var unaryOps = []token.Kind{token.Kind('+'), token.Kind('-'), token.Kind('~'), token.Kind('!')}

func (p *Parser) parseUnary() ast.Expr {
	if isOneOf(p.tok().Kind, unaryOps) {
		op := p.tok().Kind
		p.advance()
		operand := p.parseUnary()
		return &ast.MathOp{Op: ast.Op(op), Operands: []ast.Expr{operand}}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.got(token.INT):
		t := p.tok()
		p.advance()
		return &ast.IntLiteral{Value: t.Value}

	case p.got(token.Kind('(')):
		p.advance()
		e := p.parseExpr()
		p.expect(token.Kind(')'))
		return e

	case p.got(token.ID):
		t := p.tok()
		p.advance()
		name := ident.ID(t.Value)

		if p.got(token.Kind('[')) {
			p.advance()
			index := p.parseExpr()
			p.expect(token.Kind(']'))
			return &ast.ArrayAccess{Name: name, Index: index}
		}
		return &ast.Variable{Name: name}

	default:
		p.fail("expected an expression, got %v", p.tok().Kind)
		panic("unreachable")
	}
}

func isOneOf(k token.Kind, set []token.Kind) bool {
	for _, s := range set {
		if k == s {
			return true
		}
	}
	return false
}
