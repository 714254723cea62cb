package types

import "testing"

func TestFormatPrimitivesAndFunctions(t *testing.T) {
	fn := &TFunc{Params: []Type{I32, BoolType}, Return: StringType}
	if got := Format(fn, NewSubst()); got != "(i32, bool) -> string" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatUnresolvedVar(t *testing.T) {
	v := &TVar{ID: 7}
	if got := Format(v, NewSubst()); got != "unknown(t7)" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatADTAndArray(t *testing.T) {
	adt := &TADT{Name: "Option", Params: []Type{I32}}
	if got := Format(adt, NewSubst()); got != "Option<i32>" {
		t.Fatalf("unexpected format: %s", got)
	}
	arr := &TArray{Elem: I32, Size: 3, Sized: true}
	if got := Format(arr, NewSubst()); got != "[i32; 3]" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPrunesThroughSubstitution(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	sub, err := Unify(v, I32, NewSubst())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Format(v, sub); got != "i32" {
		t.Fatalf("expected pruned i32, got %s", got)
	}
}

func TestSuggestedReplacementFallsBackToPlaceholder(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	if got := SuggestedReplacement(v, NewSubst()); got != "T" {
		t.Fatalf("expected placeholder T, got %s", got)
	}
}
