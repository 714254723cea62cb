package parser

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/lexer"
)

// RecoveryConfig names the panic-mode wrapper's resynchronization targets:
// a statement that fails to parse is abandoned, and the token stream is
// advanced until a token of one of these kinds, or an identifier whose
// literal is one of these keywords, is reached.
type RecoveryConfig struct {
	SyncTokenTypes    map[lexer.TokenType]bool
	SyncKeywordValues map[string]bool
}

// DefaultRecoveryConfig resynchronizes at statement/declaration
// boundaries: a terminated statement, a closing brace, or the start of
// the next top-level declaration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		SyncTokenTypes: map[lexer.TokenType]bool{
			lexer.SEMICOLON: true,
			lexer.RBRACE:    true,
			lexer.FN:        true,
			lexer.STRUCT:    true,
			lexer.ENUM:      true,
			lexer.TYPE:      true,
			lexer.TRAIT:     true,
			lexer.IMPL:      true,
			lexer.LET:       true,
			lexer.IMPORT:    true,
		},
	}
}

// Result is the outer parse-with-recovery envelope: a best-effort AST
// (possibly with declarations missing where recovery had to discard a
// malformed one) paired with every diagnostic collected along the way.
type Result struct {
	Program     *ast.Program
	Diagnostics []*diagnostic.Diagnostic
}

// ParseWithRecovery tokenizes src and parses it under panic-mode
// recovery: whenever the parser makes no progress on a top-level form, the
// token stream is advanced to the next sync point (per cfg) before
// retrying, rather than discarding a single token at a time.
func ParseWithRecovery(src, file string, cfg RecoveryConfig) Result {
	p := New(lexer.Tokenize(src, file, lexer.DefaultOptions()), file)
	p.recovery = &cfg
	prog := p.Parse()
	return Result{Program: prog, Diagnostics: p.Errors()}
}

// synchronize advances the token stream until a configured sync token
// type or sync keyword is reached, or EOF. It always advances at least
// one token so a sync token immediately under the cursor doesn't cause
// an infinite loop at the call site.
func (p *Parser) synchronize() {
	p.advance()
	for !p.curIs(lexer.EOF) {
		if p.recovery.SyncTokenTypes[p.cur().Type] {
			return
		}
		if p.curIs(lexer.IDENT) && p.recovery.SyncKeywordValues[p.cur().Literal] {
			return
		}
		p.advance()
	}
}
