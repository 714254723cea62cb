package parser

import (
	"strconv"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
)

// parsePattern parses the pattern grammar used by match arms, `is`
// expressions, `while let`, and destructuring `let`.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.cur().Type {
	case lexer.IDENT:
		return p.parseIdentLikePattern()
	case lexer.LPAREN:
		return p.parseTuplePattern()
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		return p.parseLiteralPattern()
	case lexer.MINUS:
		return p.parseLiteralPattern()
	default:
		p.errorf("SYN-020", "expected pattern, found %s %q", p.cur().Type, p.cur().Literal)
		tok := p.advance()
		return &ast.WildcardPattern{Base: ast.NewBase(p.newID(), p.pos2(tok))}
	}
}

// parseIdentLikePattern covers the four pattern forms that start with an
// identifier: the wildcard `_`, a bare binding, an enum constructor
// pattern (optionally qualified `Enum.Variant(...)`), and a struct
// pattern `Name { field: pat, .. }`.
func (p *Parser) parseIdentLikePattern() ast.Pattern {
	start := p.advance()
	if start.Literal == "_" {
		return &ast.WildcardPattern{Base: ast.NewBase(p.newID(), p.pos2(start))}
	}

	enumName := ""
	variant := start.Literal
	if p.curIs(lexer.DOT) {
		p.advance()
		qualTok, _ := p.expect(lexer.IDENT)
		enumName = variant
		variant = qualTok.Literal
	}

	switch {
	case p.curIs(lexer.LPAREN):
		p.advance()
		var bindings []string
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			tok, _ := p.expect(lexer.IDENT)
			bindings = append(bindings, tok.Literal)
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.RPAREN)
		return &ast.EnumPattern{Base: ast.NewBase(p.newID(), p.pos2(start)), EnumName: enumName, Variant: variant, Bindings: bindings}

	case p.curIs(lexer.LBRACE):
		p.advance()
		sp := &ast.StructPattern{Base: ast.NewBase(p.newID(), p.pos2(start)), TypeName: variant}
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			if p.curIs(lexer.DOTDOT) {
				p.advance()
				sp.Rest = true
				break
			}
			fieldTok, _ := p.expect(lexer.IDENT)
			field := ast.StructFieldPattern{Name: fieldTok.Literal, Pos: p.pos2(fieldTok)}
			if p.curIs(lexer.COLON) {
				p.advance()
				field.Pattern = p.parsePattern()
			} else {
				field.Pattern = &ast.Identifier{Base: ast.NewBase(p.newID(), p.pos2(fieldTok)), Name: fieldTok.Literal}
			}
			sp.Fields = append(sp.Fields, field)
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.RBRACE)
		return sp

	case enumName != "":
		return &ast.EnumPattern{Base: ast.NewBase(p.newID(), p.pos2(start)), EnumName: enumName, Variant: variant}

	default:
		return &ast.Identifier{Base: ast.NewBase(p.newID(), p.pos2(start)), Name: variant}
	}
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	start := p.advance() // '('
	tp := &ast.TuplePattern{Base: ast.NewBase(p.newID(), p.pos2(start))}
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		tp.Elements = append(tp.Elements, p.parsePattern())
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return tp
}

func (p *Parser) parseLiteralPattern() ast.Pattern {
	neg := false
	start := p.cur()
	if p.curIs(lexer.MINUS) {
		p.advance()
		neg = true
	}
	tok := p.advance()
	lit := &ast.Literal{Base: ast.NewBase(p.newID(), p.pos2(start))}
	switch tok.Type {
	case lexer.INT:
		v, _ := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 10, 64)
		if neg {
			v = -v
		}
		lit.Kind, lit.IVal, lit.Raw = ast.LitNumber, v, tok.Literal
	case lexer.FLOAT:
		v, _ := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		if neg {
			v = -v
		}
		lit.Kind, lit.FVal, lit.Raw = ast.LitFloat, v, tok.Literal
	case lexer.STRING:
		lit.Kind, lit.SVal, lit.Raw = ast.LitString, tok.Literal, tok.Literal
	case lexer.TRUE, lexer.FALSE:
		lit.Kind, lit.BVal, lit.Raw = ast.LitBoolean, tok.Type == lexer.TRUE, tok.Literal
	}
	return &ast.LiteralPattern{Base: ast.NewBase(p.newID(), p.pos2(start)), Lit: lit}
}
