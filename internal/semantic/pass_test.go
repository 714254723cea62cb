package semantic

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/parser"
)

func TestHoistRegistersEnumVariants(t *testing.T) {
	p := parser.NewFromSource(`enum Option<T> { Some(T), None }`, "test.lm")
	prog := p.Parse()
	a := NewAnalyzer()
	a.hoist(prog)
	if !a.enumVariants["Option.Some"] || !a.enumVariants["Option.None"] {
		t.Fatalf("expected both variants registered, got %#v", a.enumVariants)
	}
}

func TestHoistIndexesImplMethods(t *testing.T) {
	p := parser.NewFromSource(`impl Point { fn zero() -> Point { return Point { x: 0, y: 0 }; } }`, "test.lm")
	prog := p.Parse()
	a := NewAnalyzer()
	a.hoist(prog)
	if len(a.implMethods) != 1 {
		t.Fatalf("expected one indexed impl method, got %d", len(a.implMethods))
	}
}
