package parser

import (
	"strconv"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
)

// parseType parses a source-level type annotation: named types (optionally
// generic), function types, array/tuple types, and the `_` hole.
func (p *Parser) parseType() ast.Type {
	switch p.cur().Type {
	case lexer.LPAREN:
		return p.parseFunctionOrTupleType()
	case lexer.LBRACKET:
		return p.parseArrayType()
	case lexer.IDENT:
		return p.parseNamedType()
	default:
		tok := p.cur()
		if tok.Literal == "_" {
			p.advance()
			return &ast.TypeHole{Base: ast.NewBase(p.newID(), p.pos2(tok))}
		}
		p.errorf("SYN-030", "expected type, found %s %q", tok.Type, tok.Literal)
		p.advance()
		return &ast.TypeHole{Base: ast.NewBase(p.newID(), p.pos2(tok))}
	}
}

func (p *Parser) parseNamedType() ast.Type {
	start := p.advance() // IDENT
	if start.Literal == "_" {
		return &ast.TypeHole{Base: ast.NewBase(p.newID(), p.pos2(start))}
	}
	named := &ast.NamedType{Base: ast.NewBase(p.newID(), p.pos2(start)), Name: start.Literal}
	if p.curIs(lexer.LT) {
		p.advance()
		for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
			named.Args = append(named.Args, p.parseType())
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.GT)
	}
	if start.Literal == "Promise" && len(named.Args) == 1 {
		return &ast.PromiseType{Base: named.Base, Inner: named.Args[0]}
	}
	return named
}

// parseFunctionOrTupleType disambiguates `(A, B) -> R` from the tuple type
// `(A, B)` by checking for an ARROW after the closing paren.
func (p *Parser) parseFunctionOrTupleType() ast.Type {
	start := p.advance() // '('
	var elems []ast.Type
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseType())
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	if p.curIs(lexer.ARROW) {
		p.advance()
		result := p.parseType()
		return &ast.FunctionType{Base: ast.NewBase(p.newID(), p.pos2(start)), Params: elems, Result: result}
	}
	return &ast.TupleType{Base: ast.NewBase(p.newID(), p.pos2(start)), Elems: elems}
}

// parseArrayType parses `[T]` (dynamically sized) or `[T; N]` where N is a
// const-generic expression.
func (p *Parser) parseArrayType() ast.Type {
	start := p.advance() // '['
	elem := p.parseType()
	var size ast.ConstExpr
	if p.curIs(lexer.SEMICOLON) {
		p.advance()
		size = p.parseConstExpr()
	}
	p.expect(lexer.RBRACKET)
	return &ast.ArrayType{Base: ast.NewBase(p.newID(), p.pos2(start)), Elem: elem, Size: size}
}

// parseConstExpr parses the small expression language allowed in
// const-generic positions: int literals, bare type-parameter names, and
// left-associative `+`/`-` combinations of either.
func (p *Parser) parseConstExpr() ast.ConstExpr {
	left := p.parseConstPrimary()
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		op := p.advance()
		right := p.parseConstPrimary()
		left = &ast.ConstBinary{Base: ast.NewBase(p.newID(), left.Position()), Op: op.Literal, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseConstPrimary() ast.ConstExpr {
	tok := p.advance()
	switch tok.Type {
	case lexer.INT:
		v, _ := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 10, 64)
		return &ast.ConstLiteral{Base: ast.NewBase(p.newID(), p.pos2(tok)), Value: v}
	case lexer.IDENT:
		return &ast.ConstParam{Base: ast.NewBase(p.newID(), p.pos2(tok)), Name: tok.Literal}
	default:
		p.errorf("SYN-031", "expected const expression, found %s %q", tok.Type, tok.Literal)
		return &ast.ConstLiteral{Base: ast.NewBase(p.newID(), p.pos2(tok))}
	}
}

// parseTypeParams parses the `<T: Bound, const N: usize>` generic
// parameter list, if present.
func (p *Parser) parseTypeParams() []ast.TypeParam {
	if !p.curIs(lexer.LT) {
		return nil
	}
	p.advance()
	var params []ast.TypeParam
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		tp := ast.TypeParam{}
		if p.curIs(lexer.CONST) {
			p.advance()
			tp.IsConst = true
			nameTok, _ := p.expect(lexer.IDENT)
			tp.Name = nameTok.Literal
			p.expect(lexer.COLON)
			tp.ConstType = p.parseType()
		} else {
			nameTok, _ := p.expect(lexer.IDENT)
			tp.Name = nameTok.Literal
			if p.curIs(lexer.COLON) {
				p.advance()
				tp.Bounds = append(tp.Bounds, p.parseBoundName())
				for p.curIs(lexer.PLUS) {
					p.advance()
					tp.Bounds = append(tp.Bounds, p.parseBoundName())
				}
			}
		}
		params = append(params, tp)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	p.expect(lexer.GT)
	return params
}

func (p *Parser) parseBoundName() string {
	tok, _ := p.expect(lexer.IDENT)
	return tok.Literal
}
