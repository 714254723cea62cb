package parser

import (
	"strconv"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
)

// parseExpression is the Pratt-parser core: it parses a prefix expression
// then repeatedly folds in infix operators whose precedence exceeds prec.
func (p *Parser) parseExpression(prec int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.errorf("SYN-002", "unexpected token %s %q in expression position", p.cur().Type, p.cur().Literal)
		p.advance()
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.SEMICOLON) && prec < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// --- prefix parsers ----------------------------------------------------

func (p *Parser) parseIdentifierOrCall() ast.Expr {
	start := p.cur()
	name := p.advance().Literal
	if p.curIs(lexer.LBRACE) && !p.noStructLiteral && startsStructLiteralField(p, name) {
		return p.parseStructLiteral(start)
	}
	return &ast.Identifier{Base: ast.NewBase(p.newID(), p.pos2(start)), Name: name}
}

// startsStructLiteralField peeks past '{' to tell a struct literal
// (`Point { x: 1 }`) apart from a capitalized identifier immediately
// followed by an unrelated block; it looks for `IDENT ':'` or an empty
// `{}` right after the brace.
func startsStructLiteralField(p *Parser, name string) bool {
	if len(name) == 0 || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	if p.peekIs(lexer.RBRACE) {
		return true
	}
	return p.peekIs(lexer.IDENT)
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.advance()
	v, err := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 10, 64)
	if err != nil {
		p.errorf("SYN-010", "invalid integer literal %q", tok.Literal)
	}
	return &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(tok)), Kind: ast.LitNumber, Raw: tok.Literal, IVal: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	tok := p.advance()
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
	if err != nil {
		p.errorf("SYN-010", "invalid float literal %q", tok.Literal)
	}
	return &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(tok)), Kind: ast.LitFloat, Raw: tok.Literal, FVal: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(tok)), Kind: ast.LitString, Raw: tok.Literal, SVal: tok.Literal}
}

func (p *Parser) parseRawStringLiteral() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(tok)), Kind: ast.LitString, Raw: tok.Literal, SVal: tok.Literal}
}

// parseInterpolatedString decomposes a single INTERP_STRING token into
// literal segments and nested expressions. The lexer hands us the text
// between the quotes with escape sequences already decoded and each
// ${...} run left as source text; we re-lex each ${...} run.
func (p *Parser) parseInterpolatedString() ast.Expr {
	tok := p.advance()
	node := &ast.InterpolatedString{Base: ast.NewBase(p.newID(), p.pos2(tok))}

	raw := tok.Literal
	var seg strings.Builder
	i := 0
	for i < len(raw) {
		if i+1 < len(raw) && raw[i] == '$' && raw[i+1] == '{' {
			node.Segments = append(node.Segments, seg.String())
			seg.Reset()
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			inner := raw[i+2 : j]
			sub := NewFromSource(inner, tok.File)
			expr := sub.parseExpression(LOWEST)
			p.diags = append(p.diags, sub.diags...)
			node.Exprs = append(node.Exprs, expr)
			i = j + 1
			continue
		}
		seg.WriteByte(raw[i])
		i++
	}
	node.Segments = append(node.Segments, seg.String())
	return node
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(tok)), Kind: ast.LitBoolean, Raw: tok.Literal, BVal: tok.Type == lexer.TRUE}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.advance()
	x := p.parseExpression(PREFIX)
	return &ast.Unary{Base: ast.NewBase(p.newID(), p.pos2(tok)), Op: tok.Literal, X: x}
}

// parseParenOrTuple disambiguates `(expr)` from `(a, b, ...)` by looking
// for a comma before the matching close paren.
func (p *Parser) parseParenOrTuple() ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	start := p.advance() // '('
	if p.curIs(lexer.RPAREN) {
		p.advance()
		return &ast.Tuple{Base: ast.NewBase(p.newID(), p.pos2(start))}
	}
	first := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		elems := []ast.Expr{first}
		for p.curIs(lexer.COMMA) {
			p.advance()
			if p.curIs(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression(LOWEST))
		}
		p.expect(lexer.RPAREN)
		return &ast.Tuple{Base: ast.NewBase(p.newID(), p.pos2(start)), Elems: elems}
	}
	p.expect(lexer.RPAREN)
	return first
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	start := p.advance() // '['
	lit := &ast.ArrayLiteral{Base: ast.NewBase(p.newID(), p.pos2(start))}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		lit.Elems = append(lit.Elems, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.advance() // 'match'
	subject := p.parseExpression(LOWEST)
	arms := p.parseMatchArms()
	return &ast.MatchExpr{Base: ast.NewBase(p.newID(), p.pos2(start)), Subject: subject, Arms: arms}
}

func (p *Parser) parseMatchArms() []ast.MatchArm {
	p.expect(lexer.LBRACE)
	var arms []ast.MatchArm
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		pos := p.pos2(p.cur())
		pat := p.parsePattern()
		var guard ast.Expr
		if p.curIs(lexer.IF) {
			p.advance()
			guard = p.parseExpression(LOWEST)
		}
		p.expect(lexer.FARROW)
		body := p.parseExpression(LOWEST)
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body, Pos: pos})
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return arms
}

func (p *Parser) parseMove() ast.Expr {
	start := p.advance()
	return &ast.Move{Base: ast.NewBase(p.newID(), p.pos2(start)), X: p.parseExpression(PREFIX)}
}

func (p *Parser) parseAwait() ast.Expr {
	start := p.advance()
	return &ast.Await{Base: ast.NewBase(p.newID(), p.pos2(start)), X: p.parseExpression(PREFIX)}
}

// parseLambda handles `|a, b| expr`. A single `|` lexes as PIPE, distinct
// from the `||` OR token, and PIPE is registered only as a prefix parser,
// which Pratt parsing only consults in expression-start position.
func (p *Parser) parseLambda() ast.Expr {
	start := p.advance() // '|'
	var params []ast.Param
	for !p.curIs(lexer.PIPE) && !p.curIs(lexer.EOF) {
		nameTok, _ := p.expect(lexer.IDENT)
		param := ast.Param{Name: nameTok.Literal, Pos: p.pos2(nameTok)}
		if p.curIs(lexer.COLON) {
			p.advance()
			param.Type = p.parseType()
		}
		params = append(params, param)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.PIPE)
	body := p.parseExpression(LOWEST)
	return &ast.Lambda{Base: ast.NewBase(p.newID(), p.pos2(start)), Params: params, Body: body}
}

// --- infix / postfix parsers --------------------------------------------

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	tok := p.advance()
	prec := p.precedenceOf(tok.Type)
	right := p.parseExpression(prec)
	return &ast.Binary{Base: ast.NewBase(p.newID(), left.Position()), Op: tok.Literal, Left: left, Right: right}
}

func (p *Parser) precedenceOf(tt lexer.TokenType) int {
	if pr, ok := precedences[tt]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseRange(left ast.Expr) ast.Expr {
	tok := p.advance()
	inclusive := tok.Type == lexer.DOTDOTEQ
	right := p.parseExpression(RANGE)
	return &ast.Range{Base: ast.NewBase(p.newID(), left.Position()), Start: left, End: right, Inclusive: inclusive}
}

func (p *Parser) parseCallArgs(callee ast.Expr) ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	p.advance() // '('
	call := &ast.Call{Base: ast.NewBase(p.newID(), callee.Position()), Callee: callee}
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		call.Args = append(call.Args, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	if member, ok := callee.(*ast.Member); ok {
		if ident, ok := member.X.(*ast.Identifier); ok {
			call.EnumName = ident.Name
			call.Callee = member
		}
	}
	return call
}

func (p *Parser) parseIndex(left ast.Expr) ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = false
	defer func() { p.noStructLiteral = saved }()

	p.advance() // '['
	idx := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &ast.Index{Base: ast.NewBase(p.newID(), left.Position()), X: left, Index: idx}
}

// parseMember handles `.` member access. Struct literals are not parsed
// here: parseIdentifierOrCall decides whether `Identifier { ... }` is one,
// and noStructLiteral turns that off in condition positions, since `{`
// after an expression is ambiguous with a following block (e.g. `if x {`).
func (p *Parser) parseMember(left ast.Expr) ast.Expr {
	p.advance() // '.'
	nameTok, _ := p.expect(lexer.IDENT)
	return &ast.Member{Base: ast.NewBase(p.newID(), left.Position()), X: left, Name: nameTok.Literal}
}

func (p *Parser) parseTry(left ast.Expr) ast.Expr {
	p.advance() // '?'
	return &ast.Try{Base: ast.NewBase(p.newID(), left.Position()), X: left}
}

func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	p.advance() // 'is'
	pat := p.parsePattern()
	return &ast.IsExpr{Base: ast.NewBase(p.newID(), left.Position()), X: left, Pattern: pat}
}

// parseStructLiteral parses `TypeName { field: value, ... }` starting at
// the type-name identifier; callers that know `{` begins a struct literal
// (as opposed to a block) dispatch here instead of through parseExpression.
func (p *Parser) parseStructLiteral(nameTok lexer.Token) ast.Expr {
	lit := &ast.StructLiteral{Base: ast.NewBase(p.newID(), p.pos2(nameTok)), TypeName: nameTok.Literal}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		fieldTok, _ := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		value := p.parseExpression(LOWEST)
		lit.Fields = append(lit.Fields, ast.StructLiteralField{Name: fieldTok.Literal, Value: value})
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return lit
}
