package editorservice

import (
	"github.com/lumina-lang/lumina/internal/lexer"
)

// SemanticTokenKind classifies one lexical token for editor syntax
// highlighting.
type SemanticTokenKind int

const (
	TokenKeyword SemanticTokenKind = iota
	TokenString
	TokenNumber
	TokenOperator
	TokenVariable
	TokenFunction
	TokenClass
	TokenType
	TokenComment
)

// SemanticToken is one classified span of source text.
type SemanticToken struct {
	Line, Column, Length int
	Kind                 SemanticTokenKind
}

// knownTypeNames is the builtin type surface; an IDENT token spelling one
// of these is classified TokenType instead of TokenVariable.
var knownTypeNames = map[string]bool{
	"i32": true, "i64": true, "f64": true, "f32": true, "bool": true,
	"string": true, "void": true, "usize": true,
}

// SemanticTokens re-lexes source and classifies every token for syntax
// highlighting, independent of the parser (so a document with parse
// errors still highlights). IDENT classification is a shallow heuristic,
// since distinguishing names precisely needs the symbol table: a builtin
// type name is TokenType, a PascalCase name is TokenClass, and any other
// identifier is TokenVariable. TokenFunction is never produced.
func SemanticTokens(source, filename string) []SemanticToken {
	opts := lexer.DefaultOptions()
	opts.IgnoreKinds = map[lexer.TokenType]bool{}
	l := lexer.New(source, filename, opts)

	var out []SemanticToken
	var prevIdent string
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		kind, ok := classify(tok, prevIdent)
		if ok {
			out = append(out, SemanticToken{
				Line:   tok.Line,
				Column: tok.Column,
				Length: tok.EndOffset - tok.Offset,
				Kind:   kind,
			})
		}
		if tok.Type == lexer.IDENT {
			prevIdent = tok.Literal
		} else {
			prevIdent = ""
		}
	}
	return out
}

func classify(tok lexer.Token, prevIdent string) (SemanticTokenKind, bool) {
	switch tok.Type {
	case lexer.COMMENT:
		return TokenComment, true
	case lexer.STRING, lexer.INTERP_STRING, lexer.RAW_STRING:
		return TokenString, true
	case lexer.INT, lexer.FLOAT:
		return TokenNumber, true
	case lexer.IDENT:
		if knownTypeNames[tok.Literal] {
			return TokenType, true
		}
		if prevIdent != "fn" && isTypeLikeName(tok.Literal) {
			return TokenClass, true
		}
		return TokenVariable, true
	case lexer.LPAREN, lexer.RPAREN, lexer.LBRACE, lexer.RBRACE,
		lexer.LBRACKET, lexer.RBRACKET, lexer.COMMA, lexer.DOT,
		lexer.SEMICOLON, lexer.NEWLINE:
		return 0, false
	case lexer.ILLEGAL, lexer.ERROR, lexer.EOF:
		return 0, false
	}
	if isKeyword(tok.Type) {
		return TokenKeyword, true
	}
	return TokenOperator, true
}

// isTypeLikeName reports whether name follows the PascalCase convention
// used for struct/enum/trait names.
func isTypeLikeName(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

func isKeyword(t lexer.TokenType) bool {
	switch t {
	case lexer.FN, lexer.LET, lexer.MUT, lexer.IF, lexer.ELSE, lexer.WHILE,
		lexer.FOR, lexer.IN, lexer.MATCH, lexer.STRUCT, lexer.ENUM,
		lexer.TYPE, lexer.TRAIT, lexer.IMPL, lexer.RETURN, lexer.IMPORT,
		lexer.PUB, lexer.MOVE, lexer.AWAIT, lexer.ASYNC, lexer.IS,
		lexer.TRUE, lexer.FALSE, lexer.SELF, lexer.CONST, lexer.AS:
		return true
	}
	return false
}
