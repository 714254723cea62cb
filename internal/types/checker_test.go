package types

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/parser"
)

func checkNoDiagnostics(t *testing.T, c *Checker) {
	t.Helper()
	if diags := c.Diagnostics(); len(diags) != 0 {
		for _, d := range diags {
			t.Errorf("unexpected diagnostic: %s %s", d.Code, d.Message)
		}
		t.FailNow()
	}
}

func inferSource(t *testing.T, src string) *Checker {
	t.Helper()
	p := parser.NewFromSource(src, "test.lm")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	c := NewChecker(prog)
	c.Infer(prog)
	return c
}

func TestInferLetLiteral(t *testing.T) {
	c := inferSource(t, `let x = 5;`)
	checkNoDiagnostics(t, c)
}

func TestInferFnReturnType(t *testing.T) {
	c := inferSource(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	checkNoDiagnostics(t, c)
	ret, ok := c.InferredFnReturns["add"]
	if !ok {
		t.Fatalf("expected inferred return type for add")
	}
	if got := Format(ret, c.sub); got != "i32" {
		t.Fatalf("expected i32, got %s", got)
	}
}

func TestInferFnReturnMismatch(t *testing.T) {
	c := inferSource(t, `fn bad() -> i32 { return true; }`)
	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Code != "LUM-001" {
		t.Fatalf("expected a single LUM-001, got %#v", diags)
	}
}

func TestInferCallArityMismatch(t *testing.T) {
	c := inferSource(t, `
fn add(a: i32, b: i32) -> i32 { return a + b; }
fn main() { add(1); }
`)
	diags := c.Diagnostics()
	found := false
	for _, d := range diags {
		if d.Code == "LUM-002" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LUM-002, got %#v", diags)
	}
}

func TestInferUnannotatedParamUnifiesWithReturn(t *testing.T) {
	c := inferSource(t, `fn identity(x) { return x; }`)
	checkNoDiagnostics(t, c)
	sc, ok := c.InferredFnByName["identity"]
	if !ok {
		t.Fatalf("expected scheme for identity")
	}
	fn, ok := sc.Type.(*TFunc)
	if !ok || len(fn.Params) != 1 {
		t.Fatalf("expected a 1-param function, got %#v", sc.Type)
	}
	if !fn.Params[0].Equals(fn.Return) {
		t.Fatalf("expected identity's param and return to unify to the same variable")
	}
}

func TestInferEnumConstructorAndMatch(t *testing.T) {
	c := inferSource(t, `
enum Option<T> { Some(T), None }
fn unwrapOr(o: Option<i32>, default: i32) -> i32 {
	return match o {
		Some(v) => v,
		None => default,
	};
}
`)
	checkNoDiagnostics(t, c)
}

func TestInferNonExhaustiveMatch(t *testing.T) {
	c := inferSource(t, `
enum Option<T> { Some(T), None }
fn unwrap(o: Option<i32>) -> i32 {
	return match o {
		Some(v) => v,
	};
}
`)
	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Code != "LUM-003" {
		t.Fatalf("expected a single LUM-003, got %#v", diags)
	}
}

func TestInferUnknownEnumVariant(t *testing.T) {
	c := inferSource(t, `
enum Option<T> { Some(T), None }
fn bad(o: Option<i32>) -> i32 {
	return match o {
		Some(v) => v,
		Missing => 0,
	};
}
`)
	diags := c.Diagnostics()
	found := false
	for _, d := range diags {
		if d.Code == "HM_ENUM_VARIANT" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected HM_ENUM_VARIANT, got %#v", diags)
	}
}

func TestInferStructFieldAccess(t *testing.T) {
	c := inferSource(t, `
struct Point { x: i32, y: i32 }
fn sum(p: Point) -> i32 { return p.x + p.y; }
`)
	checkNoDiagnostics(t, c)
}

func TestInferStructLiteralFieldMismatch(t *testing.T) {
	c := inferSource(t, `
struct Point { x: i32, y: i32 }
fn make() -> Point { return Point { x: true, y: 2 }; }
`)
	diags := c.Diagnostics()
	found := false
	for _, d := range diags {
		if d.Code == "LUM-001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LUM-001 for mismatched field, got %#v", diags)
	}
}

func TestInferArrayLiteralUnifiesElements(t *testing.T) {
	c := inferSource(t, `let xs = [1, 2, 3];`)
	checkNoDiagnostics(t, c)
}

func TestInferArrayLiteralElementMismatch(t *testing.T) {
	c := inferSource(t, `let xs = [1, true, 3];`)
	diags := c.Diagnostics()
	if len(diags) == 0 {
		t.Fatalf("expected a type mismatch diagnostic")
	}
}

func TestInferTypeHoleResolvedByValue(t *testing.T) {
	c := inferSource(t, `let x: _ = 5;`)
	// the hole resolves to i32 via the annotation unifying with the
	// literal's inferred type, so no TYPE-HOLE-UNRESOLVED is expected here.
	for _, d := range c.Diagnostics() {
		if d.Code == "TYPE-HOLE-UNRESOLVED" {
			t.Fatalf("did not expect an unresolved hole: %s", d.Message)
		}
	}
}
