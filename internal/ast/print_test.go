package ast

import "testing"

func TestPrintIdentifier(t *testing.T) {
	id := &Identifier{Base: Base{ID: 1}, Name: "x"}
	out := Print(id)
	if out == "" {
		t.Fatal("expected non-empty output")
	}
}

func TestPrintDeterministic(t *testing.T) {
	lit := &Literal{Base: Base{ID: 2}, Kind: LitNumber, Raw: "42", IVal: 42}
	a := Print(lit)
	b := Print(lit)
	if a != b {
		t.Fatalf("Print is not deterministic:\n%s\nvs\n%s", a, b)
	}
}
