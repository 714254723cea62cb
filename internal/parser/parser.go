// Package parser implements a hand-written, Pratt-style recursive-descent
// parser for Lumina. It never panics on malformed input: every parse
// method either returns a node or records a *diagnostic.Diagnostic and
// returns nil, leaving resynchronization to the panic-mode wrapper in
// recovery.go.
package parser

import (
	"fmt"
	"strconv"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Precedence levels, lowest to highest.
const (
	LOWEST int = iota
	LOGICAL_OR
	LOGICAL_AND
	EQUALS
	COMPARE
	RANGE
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	DOT
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       LOGICAL_OR,
	lexer.AND:      LOGICAL_AND,
	lexer.EQ:       EQUALS,
	lexer.NEQ:      EQUALS,
	lexer.LT:       COMPARE,
	lexer.GT:       COMPARE,
	lexer.LTE:      COMPARE,
	lexer.GTE:      COMPARE,
	lexer.DOTDOT:   RANGE,
	lexer.DOTDOTEQ: RANGE,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: INDEX,
	lexer.DOT:      DOT,
	lexer.QUESTION: DOT,
	lexer.IS:       COMPARE,
}

// Parser parses a token stream produced by internal/lexer into an
// internal/ast.Program.
type Parser struct {
	toks []lexer.Token
	pos  int
	file string

	ids *ast.IDAllocator

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	diags []*diagnostic.Diagnostic

	// noStructLiteral suppresses struct-literal parsing after an
	// identifier when a following '{' is ambiguous with a block, e.g. the
	// condition of `if x { ... }`. Saved/restored around such conditions.
	noStructLiteral bool

	// recovery enables the panic-mode wrapper's sync-token resynchronization
	// in Parse's no-progress branch; nil falls back to a single-token skip.
	recovery *RecoveryConfig

	// missingSemicolons records the position after every statement whose
	// trailing ';' consumeSemicolon did not find, for the semantic
	// analyzer's MISSING_SEMICOLON lint to report.
	missingSemicolons []ast.Span
}

// MissingSemicolons returns every position consumeSemicolon accepted
// without a ';' present, for the semantic analyzer to lint.
func (p *Parser) MissingSemicolons() []ast.Span { return p.missingSemicolons }

// New constructs a Parser that reads from an already-tokenized stream.
// Tokenizing up front (rather than pulling from the lexer lazily) lets the
// panic-mode wrapper rewind/resynchronize by adjusting an index, per the
// spec's "advance token stream until a sync token" contract.
func New(toks []lexer.Token, file string) *Parser {
	p := &Parser{toks: toks, file: file, ids: ast.NewIDAllocator()}
	p.registerParsers()
	return p
}

// NewFromSource is a convenience wrapper that lexes src with the default
// Lumina lexer options before constructing the Parser.
func NewFromSource(src, file string) *Parser {
	return New(lexer.Tokenize(src, file, lexer.DefaultOptions()), file)
}

func (p *Parser) registerParsers() {
	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:         p.parseIdentifierOrCall,
		lexer.INT:           p.parseIntLiteral,
		lexer.FLOAT:         p.parseFloatLiteral,
		lexer.STRING:        p.parseStringLiteral,
		lexer.INTERP_STRING: p.parseInterpolatedString,
		lexer.RAW_STRING:    p.parseRawStringLiteral,
		lexer.TRUE:          p.parseBoolLiteral,
		lexer.FALSE:         p.parseBoolLiteral,
		lexer.MINUS:         p.parseUnary,
		lexer.NOT:           p.parseUnary,
		lexer.LPAREN:        p.parseParenOrTuple,
		lexer.LBRACKET:      p.parseArrayLiteral,
		lexer.MATCH:         p.parseMatchExpr,
		lexer.MOVE:          p.parseMove,
		lexer.AWAIT:         p.parseAwait,
		lexer.PIPE:          p.parseLambda,
		lexer.SELF:          p.parseIdentifierOrCall,
	}
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinary,
		lexer.MINUS:    p.parseBinary,
		lexer.STAR:     p.parseBinary,
		lexer.SLASH:    p.parseBinary,
		lexer.PERCENT:  p.parseBinary,
		lexer.EQ:       p.parseBinary,
		lexer.NEQ:      p.parseBinary,
		lexer.LT:       p.parseBinary,
		lexer.GT:       p.parseBinary,
		lexer.LTE:      p.parseBinary,
		lexer.GTE:      p.parseBinary,
		lexer.AND:      p.parseBinary,
		lexer.OR:       p.parseBinary,
		lexer.DOTDOT:   p.parseRange,
		lexer.DOTDOTEQ: p.parseRange,
		lexer.LPAREN:   p.parseCallArgs,
		lexer.LBRACKET: p.parseIndex,
		lexer.DOT:      p.parseMember,
		lexer.QUESTION: p.parseTry,
		lexer.IS:       p.parseIsExpr,
	}
}

// --- token cursor -----------------------------------------------------

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur().Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.curIs(tt) {
		return p.advance(), true
	}
	p.errorf("SYN-001", "expected %s, found %s %q", tt, p.cur().Type, p.cur().Literal)
	return lexer.Token{}, false
}

func (p *Parser) pos2(tok lexer.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Column: tok.Column, File: p.file, Offset: tok.Offset}
}

func (p *Parser) span(start, end lexer.Token) ast.Span {
	return ast.Span{Start: p.pos2(start), End: p.pos2(end)}
}

func (p *Parser) newID() int { return p.ids.Next() }

func (p *Parser) errorf(code, format string, args ...interface{}) {
	p.diags = append(p.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Source:   "lumina",
		Location: ast.Span{Start: p.pos2(p.cur()), End: p.pos2(p.cur())},
	})
}

// Errors returns the diagnostics accumulated by the most recent Parse call.
func (p *Parser) Errors() []*diagnostic.Diagnostic { return p.diags }

// Parse parses a whole program: top-level declarations and statements.
// It never panics; on a malformed top-level form it records a diagnostic
// and keeps going until EOF: when a form consumes no tokens it skips one
// token, or resynchronizes via synchronize (recovery.go) when a recovery
// config is set. Structured parse errors are reserved for grammar
// *compilation*, not ordinary parsing.
func (p *Parser) Parse() *ast.Program {
	start := p.cur()
	prog := &ast.Program{Base: ast.NewBase(p.newID(), p.pos2(start))}
	for !p.curIs(lexer.EOF) {
		before := p.pos
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			// No progress: avoid an infinite loop on unparseable input.
			if p.recovery != nil {
				p.synchronize()
			} else {
				p.advance()
			}
		}
	}
	return prog
}

func (p *Parser) parseTopLevel() ast.Stmt {
	vis := ast.Private
	if p.curIs(lexer.PUB) {
		p.advance()
		vis = ast.Public
	}
	switch p.cur().Type {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.FN:
		return p.parseFnDecl(vis, false)
	case lexer.ASYNC:
		p.advance()
		return p.parseFnDecl(vis, true)
	case lexer.STRUCT:
		return p.parseStructDecl(vis)
	case lexer.ENUM:
		return p.parseEnumDecl(vis)
	case lexer.TYPE:
		return p.parseTypeDecl(vis)
	case lexer.TRAIT:
		return p.parseTraitDecl(vis)
	case lexer.IMPL:
		return p.parseImplDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseImport() *ast.Import {
	start := p.advance() // 'import'
	imp := &ast.Import{Base: ast.NewBase(p.newID(), p.pos2(start))}
	if p.curIs(lexer.LBRACE) {
		p.advance()
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			if tok, ok := p.expect(lexer.IDENT); ok {
				imp.Symbols = append(imp.Symbols, tok.Literal)
			}
			if p.curIs(lexer.COMMA) {
				p.advance()
			}
		}
		p.expect(lexer.RBRACE)
		p.expectKeyword("from")
	}
	if tok, ok := p.expect(lexer.STRING); ok {
		imp.Path = tok.Literal
	}
	if p.curIs(lexer.AS) {
		p.advance()
		if tok, ok := p.expect(lexer.IDENT); ok {
			imp.Alias = tok.Literal
		}
	}
	p.consumeSemicolon()
	imp.Span.End = p.pos2(p.cur())
	return imp
}

// expectKeyword matches a contextual keyword lexed as IDENT (e.g. "from").
func (p *Parser) expectKeyword(word string) bool {
	if p.curIs(lexer.IDENT) && p.cur().Literal == word {
		p.advance()
		return true
	}
	p.errorf("SYN-001", "expected %q, found %q", word, p.cur().Literal)
	return false
}

// consumeSemicolon accepts a trailing ';' but does not require one; a
// missing semicolon is reported by the semantic analyzer's lint pass
// (MISSING_SEMICOLON), not the parser, per §4.4.
func (p *Parser) consumeSemicolon() {
	if p.curIs(lexer.SEMICOLON) {
		p.advance()
		return
	}
	at := p.pos2(p.cur())
	p.missingSemicolons = append(p.missingSemicolons, ast.Span{Start: at, End: at})
}

func (p *Parser) parseIntFromLiteral(lit string) int64 {
	v, _ := strconv.ParseInt(lit, 10, 64)
	return v
}
