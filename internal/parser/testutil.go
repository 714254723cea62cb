package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lumina-lang/lumina/internal/ast"
)

// assertSameParse re-parses input twice and fails with a structural diff if
// the two parses don't produce identical ASTs — a cheap determinism check
// for parser paths that shouldn't depend on call order or shared state.
func assertSameParse(t *testing.T, input string) {
	t.Helper()

	a := mustParse(t, input)
	b := mustParse(t, input)

	if diff := cmp.Diff(ast.PrintProgram(a), ast.PrintProgram(b)); diff != "" {
		t.Errorf("parsing %q twice produced different ASTs (-first +second):\n%s", input, diff)
	}
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := NewFromSource(input, "test.lm")
	prog := p.Parse()
	checkParserErrors(t, p)
	return prog
}
