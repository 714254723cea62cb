package parser

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
)

// parseStatement parses a single statement inside a block (everything
// that isn't a top-level declaration). parseTopLevel falls through to
// this for any token that doesn't start a pub/import/fn/struct/.../impl
// form, which covers function bodies and also lets a bare expression
// appear at the top level for REPL-style scripts.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.MATCH:
		return p.parseMatchStmt()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.expectOpen(lexer.LBRACE)
	block := &ast.Block{Base: ast.NewBase(p.newID(), p.pos2(start))}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end := p.cur()
	p.expect(lexer.RBRACE)
	block.Span.End = p.pos2(end)
	return block
}

// expectOpen is like expect but used where recovery simply wants the
// opening token regardless of match, to keep Span.Start sensible even
// after a reported error.
func (p *Parser) expectOpen(tt lexer.TokenType) lexer.Token {
	tok, ok := p.expect(tt)
	if !ok {
		return p.cur()
	}
	return tok
}

func (p *Parser) parseLet() ast.Stmt {
	start := p.advance() // 'let'
	if p.curIs(lexer.LPAREN) {
		return p.parseLetTuple(start)
	}
	mut := false
	if p.curIs(lexer.MUT) {
		p.advance()
		mut = true
	}
	nameTok, _ := p.expect(lexer.IDENT)
	let := &ast.Let{
		Base:               ast.NewBase(p.newID(), p.pos2(start)),
		Name:               nameTok.Literal,
		Mut:                mut,
		SuppressUnusedWarn: len(nameTok.Literal) > 0 && nameTok.Literal[0] == '_',
	}
	if p.curIs(lexer.COLON) {
		p.advance()
		let.Annotation = p.parseType()
	}
	p.expect(lexer.ASSIGN)
	let.Value = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return let
}

func (p *Parser) parseLetTuple(start lexer.Token) ast.Stmt {
	p.advance() // '('
	lt := &ast.LetTuple{Base: ast.NewBase(p.newID(), p.pos2(start))}
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		tok, _ := p.expect(lexer.IDENT)
		lt.Names = append(lt.Names, tok.Literal)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.ASSIGN)
	lt.Value = p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return lt
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance()
	ret := &ast.Return{Base: ast.NewBase(p.newID(), p.pos2(start))}
	if !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.RBRACE) {
		ret.Value = p.parseExpression(LOWEST)
	}
	p.consumeSemicolon()
	return ret
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	cond := p.parseConditionExpr()
	then := p.parseBlock()
	node := &ast.If{Base: ast.NewBase(p.newID(), p.pos2(start)), Cond: cond, Then: then}
	if p.curIs(lexer.ELSE) {
		p.advance()
		if p.curIs(lexer.IF) {
			node.Else = p.parseIf()
		} else {
			node.Else = p.parseBlock()
		}
	}
	return node
}

// parseConditionExpr parses an expression with struct-literal parsing
// suppressed, since a bare `{` after the condition would otherwise be
// ambiguous with the following block.
func (p *Parser) parseConditionExpr() ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = true
	expr := p.parseExpression(LOWEST)
	p.noStructLiteral = saved
	return expr
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	if p.curIs(lexer.LET) {
		return p.parseWhileLet(start)
	}
	cond := p.parseConditionExpr()
	body := p.parseBlock()
	return &ast.While{Base: ast.NewBase(p.newID(), p.pos2(start)), Cond: cond, Body: body}
}

func (p *Parser) parseWhileLet(start lexer.Token) ast.Stmt {
	p.advance() // 'let'
	pat := p.parsePattern()
	p.expect(lexer.ASSIGN)
	value := p.parseConditionExpr()
	body := p.parseBlock()
	return &ast.WhileLet{Base: ast.NewBase(p.newID(), p.pos2(start)), Pattern: pat, Value: value, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // 'for'
	binderTok, _ := p.expect(lexer.IDENT)
	p.expect(lexer.IN)
	iter := p.parseConditionExpr()
	body := p.parseBlock()
	return &ast.For{Base: ast.NewBase(p.newID(), p.pos2(start)), Binder: binderTok.Literal, Iter: iter, Body: body}
}

func (p *Parser) parseMatchStmt() ast.Stmt {
	start := p.advance() // 'match'
	subject := p.parseConditionExpr()
	arms := p.parseMatchArms()
	if p.curIs(lexer.SEMICOLON) {
		p.advance()
	}
	return &ast.MatchStmt{Base: ast.NewBase(p.newID(), p.pos2(start)), Subject: subject, Arms: arms}
}

// parseExprOrAssignStmt parses a bare expression statement, recognizing a
// following assignment operator (`=`, `+=`, `-=`, `*=`, `/=`) as turning
// the already-parsed expression into an Assign target.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.cur()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.consumeSemicolon()
		return nil
	}
	if op, ok := assignOp(p.cur().Type); ok {
		p.advance()
		value := p.parseExpression(LOWEST)
		p.consumeSemicolon()
		return &ast.Assign{Base: ast.NewBase(p.newID(), p.pos2(start)), Target: expr, Op: op, Value: value}
	}
	p.consumeSemicolon()
	return &ast.ExprStmt{Base: ast.NewBase(p.newID(), p.pos2(start)), X: expr}
}

func assignOp(tt lexer.TokenType) (string, bool) {
	switch tt {
	case lexer.ASSIGN:
		return "=", true
	case lexer.PLUSEQ:
		return "+=", true
	case lexer.MINUSEQ:
		return "-=", true
	case lexer.STAREQ:
		return "*=", true
	case lexer.SLASHEQ:
		return "/=", true
	default:
		return "", false
	}
}
