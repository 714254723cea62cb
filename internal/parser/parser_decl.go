package parser

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
)

func (p *Parser) parseFnDecl(vis ast.Visibility, async bool) *ast.FnDecl {
	start := p.advance() // 'fn'
	nameTok, _ := p.expect(lexer.IDENT)
	fn := &ast.FnDecl{
		Base:       ast.NewBase(p.newID(), p.pos2(start)),
		Name:       nameTok.Literal,
		Visibility: vis,
		Async:      async,
		TypeParams: p.parseTypeParams(),
	}
	p.expect(lexer.LPAREN)
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		param := p.parseParam()
		fn.Params = append(fn.Params, param)
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	if p.curIs(lexer.ARROW) {
		p.advance()
		fn.ReturnType = p.parseType()
	}

	if p.curIs(lexer.IDENT) && p.cur().Literal == "extern" {
		p.advance()
		fn.Extern = true
		if tok, ok := p.expect(lexer.STRING); ok {
			fn.ExternModule = tok.Literal
		}
		p.consumeSemicolon()
		fn.Span.End = p.pos2(p.cur())
		return fn
	}

	fn.Body = p.parseBlock()
	fn.Span.End = fn.Body.Span.End
	return fn
}

func (p *Parser) parseParam() ast.Param {
	if p.curIs(lexer.SELF) {
		tok := p.advance()
		return ast.Param{Name: "self", Pos: p.pos2(tok)}
	}
	nameTok, _ := p.expect(lexer.IDENT)
	param := ast.Param{Name: nameTok.Literal, Pos: p.pos2(nameTok)}
	if p.curIs(lexer.COLON) {
		p.advance()
		param.Type = p.parseType()
	}
	return param
}

func (p *Parser) parseStructDecl(vis ast.Visibility) *ast.StructDecl {
	start := p.advance() // 'struct'
	nameTok, _ := p.expect(lexer.IDENT)
	decl := &ast.StructDecl{
		Base:       ast.NewBase(p.newID(), p.pos2(start)),
		Name:       nameTok.Literal,
		Visibility: vis,
		TypeParams: p.parseTypeParams(),
	}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		fieldTok, _ := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		fieldType := p.parseType()
		decl.Fields = append(decl.Fields, ast.StructField{Name: fieldTok.Literal, Type: fieldType, Pos: p.pos2(fieldTok)})
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	end := p.cur()
	p.expect(lexer.RBRACE)
	decl.Span.End = p.pos2(end)
	return decl
}

func (p *Parser) parseEnumDecl(vis ast.Visibility) *ast.EnumDecl {
	start := p.advance() // 'enum'
	nameTok, _ := p.expect(lexer.IDENT)
	decl := &ast.EnumDecl{
		Base:       ast.NewBase(p.newID(), p.pos2(start)),
		Name:       nameTok.Literal,
		Visibility: vis,
		TypeParams: p.parseTypeParams(),
	}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		variantTok, _ := p.expect(lexer.IDENT)
		variant := ast.EnumVariant{Name: variantTok.Literal, Pos: p.pos2(variantTok)}
		if p.curIs(lexer.LPAREN) {
			p.advance()
			for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
				variant.Fields = append(variant.Fields, p.parseType())
				if p.curIs(lexer.COMMA) {
					p.advance()
				}
			}
			p.expect(lexer.RPAREN)
		}
		decl.Variants = append(decl.Variants, variant)
		if p.curIs(lexer.COMMA) {
			p.advance()
		}
	}
	end := p.cur()
	p.expect(lexer.RBRACE)
	decl.Span.End = p.pos2(end)
	return decl
}

func (p *Parser) parseTypeDecl(vis ast.Visibility) *ast.TypeDecl {
	start := p.advance() // 'type'
	nameTok, _ := p.expect(lexer.IDENT)
	decl := &ast.TypeDecl{
		Base:       ast.NewBase(p.newID(), p.pos2(start)),
		Name:       nameTok.Literal,
		Visibility: vis,
		TypeParams: p.parseTypeParams(),
	}
	p.expect(lexer.ASSIGN)
	decl.Aliased = p.parseType()
	p.consumeSemicolon()
	decl.Span.End = p.pos2(p.cur())
	return decl
}

func (p *Parser) parseTraitDecl(vis ast.Visibility) *ast.TraitDecl {
	start := p.advance() // 'trait'
	nameTok, _ := p.expect(lexer.IDENT)
	decl := &ast.TraitDecl{Base: ast.NewBase(p.newID(), p.pos2(start)), Name: nameTok.Literal, Visibility: vis}
	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		p.expect(lexer.FN)
		methodTok, _ := p.expect(lexer.IDENT)
		method := ast.TraitMethod{Name: methodTok.Literal, Pos: p.pos2(methodTok)}
		p.expect(lexer.LPAREN)
		for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
			method.Params = append(method.Params, p.parseParam())
			if p.curIs(lexer.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
		if p.curIs(lexer.ARROW) {
			p.advance()
			method.ReturnType = p.parseType()
		}
		p.consumeSemicolon()
		decl.Methods = append(decl.Methods, method)
	}
	end := p.cur()
	p.expect(lexer.RBRACE)
	decl.Span.End = p.pos2(end)
	return decl
}

// parseImplDecl parses both `impl Trait for Type { ... }` and the
// inherent form `impl Type { ... }`, distinguished by the presence of a
// contextual `for` keyword (lexed as IDENT) after the first type name.
func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.advance() // 'impl'
	decl := &ast.ImplDecl{Base: ast.NewBase(p.newID(), p.pos2(start))}

	first := p.parseType()
	if p.curIs(lexer.IDENT) && p.cur().Literal == "for" {
		p.advance()
		if named, ok := first.(*ast.NamedType); ok {
			decl.Trait = named.Name
		}
		decl.ForType = p.parseType()
	} else {
		decl.ForType = first
	}

	p.expect(lexer.LBRACE)
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		vis := ast.Private
		if p.curIs(lexer.PUB) {
			p.advance()
			vis = ast.Public
		}
		async := false
		if p.curIs(lexer.ASYNC) {
			p.advance()
			async = true
		}
		if p.curIs(lexer.FN) {
			decl.Methods = append(decl.Methods, p.parseFnDecl(vis, async))
		} else {
			p.errorf("SYN-040", "expected method, found %s %q", p.cur().Type, p.cur().Literal)
			p.advance()
		}
	}
	end := p.cur()
	p.expect(lexer.RBRACE)
	decl.Span.End = p.pos2(end)
	return decl
}
