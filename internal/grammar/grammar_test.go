package grammar

import "testing"

func TestCompileSimpleGrammar(t *testing.T) {
	src := `
digit = [0-9] ;
number = digit+ ;
`
	g, err := Compile(src, CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := g.Parse("123", ParseOptions{Start: "number"})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	node := n.(*Node)
	if node.Text != "123" {
		t.Fatalf("expected to consume \"123\", got %q", node.Text)
	}
}

func TestCompileRejectsUndefinedRule(t *testing.T) {
	_, err := Compile(`a = b ;`, CompileOptions{})
	if err == nil {
		t.Fatalf("expected an error for undefined rule b")
	}
}

func TestCompileRejectsEmptySource(t *testing.T) {
	_, err := Compile(``, CompileOptions{})
	if err == nil {
		t.Fatalf("expected an error for a grammar with no rules")
	}
}

func TestChoiceTriesAlternativesInOrder(t *testing.T) {
	src := `greeting = "hello" / "hi" ;`
	g, err := Compile(src, CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Parse("hi", ParseOptions{}); err != nil {
		t.Fatalf("expected \"hi\" to match, got %v", err)
	}
	if _, err := g.Parse("hey", ParseOptions{}); err == nil {
		t.Fatalf("expected \"hey\" not to match")
	}
}

func TestNotPredicateRejectsKeyword(t *testing.T) {
	src := `
ident = !"let" letter+ ;
letter = [a-zA-Z] ;
`
	g, err := Compile(src, CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Parse("foo", ParseOptions{}); err != nil {
		t.Fatalf("expected \"foo\" to match, got %v", err)
	}
	if _, err := g.Parse("let", ParseOptions{}); err == nil {
		t.Fatalf("expected \"let\" to be rejected by the negative predicate")
	}
}

func TestUnconsumedInputIsAnError(t *testing.T) {
	src := `digits = [0-9]+ ;`
	g, err := Compile(src, CompileOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Parse("123abc", ParseOptions{}); err == nil {
		t.Fatalf("expected trailing input to fail the parse")
	}
}

func TestDefaultGrammarCompiles(t *testing.T) {
	if Default() == nil {
		t.Fatalf("expected the embedded default grammar to compile at init")
	}
	n, err := Default().Parse("let x = 1 + 2 * 3;", ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error parsing a let statement: %v", err)
	}
	if n == nil {
		t.Fatalf("expected a non-nil parse tree")
	}
}
