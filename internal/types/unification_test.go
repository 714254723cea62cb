package types

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
)

func TestUnifyPrimitives(t *testing.T) {
	sub, err := Unify(I32, I32, NewSubst())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub) != 0 {
		t.Fatalf("expected no bindings, got %v", sub)
	}

	_, err = Unify(I32, BoolType, NewSubst())
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestUnifyBindsVar(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	sub, err := Unify(v, I32, NewSubst())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sub.Apply(v); !got.Equals(I32) {
		t.Fatalf("expected i32, got %s", got)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	fn := &TFunc{Params: []Type{v}, Return: I32}
	_, err := Unify(v, fn, NewSubst())
	if err == nil {
		t.Fatalf("expected occurs-check failure")
	}
}

func TestUnifyFunctionArityMismatch(t *testing.T) {
	a := &TFunc{Params: []Type{I32}, Return: I32}
	b := &TFunc{Params: []Type{I32, I32}, Return: I32}
	_, err := Unify(a, b, NewSubst())
	if err == nil {
		t.Fatalf("expected arity mismatch error")
	}
}

func TestUnifyArraySizeMismatch(t *testing.T) {
	a := &TArray{Elem: I32, Size: 3, Sized: true}
	b := &TArray{Elem: I32, Size: 4, Sized: true}
	_, err := Unify(a, b, NewSubst())
	if err == nil {
		t.Fatalf("expected array size mismatch error")
	}
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	identity := &TFunc{Params: []Type{v}, Return: v}
	sc := Generalize(map[string]*Scheme{}, identity)
	if len(sc.Vars) != 1 {
		t.Fatalf("expected one quantified variable, got %v", sc.Vars)
	}

	inst1 := fresh.Instantiate(sc).(*TFunc)
	inst2 := fresh.Instantiate(sc).(*TFunc)
	if inst1.Params[0].Equals(inst2.Params[0]) {
		t.Fatalf("expected distinct instantiations, got identical variables")
	}
}

func TestGeneralizeExcludesEnvironmentFreeVars(t *testing.T) {
	fresh := FreshGen{}
	v := fresh.FreshVar()
	env := map[string]*Scheme{"x": {Type: v}}
	sc := Generalize(env, v)
	if len(sc.Vars) != 0 {
		t.Fatalf("expected no quantified variables, got %v", sc.Vars)
	}
}

func TestFreshHoleAtFiresCallback(t *testing.T) {
	var recorded int = -1
	fresh := FreshGen{OnHole: func(id int, at ast.Pos) { recorded = id }}
	h := fresh.FreshHoleAt(ast.Pos{Line: 1, Column: 1})
	if recorded != h.ID {
		t.Fatalf("expected callback to fire with id %d, got %d", h.ID, recorded)
	}
}
