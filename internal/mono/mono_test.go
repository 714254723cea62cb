package mono

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/types"
)

func checkedProgram(t *testing.T, src string) (*ast.Program, *types.Checker) {
	t.Helper()
	p := parser.NewFromSource(src, "test.lm")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	c := types.NewChecker(prog)
	c.Infer(prog)
	if diags := c.Diagnostics(); len(diags) != 0 {
		t.Fatalf("type errors: %v", diags)
	}
	return prog, c
}

func fnNamed(prog *ast.Program, name string) *ast.FnDecl {
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FnDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

func TestMonomorphizesTwoInstantiations(t *testing.T) {
	prog, checker := checkedProgram(t, `
fn identity<T>(x: T) -> T { return x; }
fn main() {
	let a = identity(1);
	let b = identity(true);
}
`)
	Run(prog, checker)

	if fnNamed(prog, "identity") == nil {
		t.Fatalf("expected original generic to remain for any un-rewritten/extern callers")
	}
	intSpecialized := fnNamed(prog, "identity_i32")
	boolSpecialized := fnNamed(prog, "identity_bool")
	if intSpecialized == nil || boolSpecialized == nil {
		t.Fatalf("expected identity_i32 and identity_bool specializations, got body: %s", prog.String())
	}
	if len(intSpecialized.TypeParams) != 0 {
		t.Fatalf("specialized clone should have no remaining type params, got %#v", intSpecialized.TypeParams)
	}
	if named, ok := intSpecialized.Params[0].Type.(*ast.NamedType); !ok || named.Name != "i32" {
		t.Fatalf("expected identity_i32's param substituted to i32, got %#v", intSpecialized.Params[0].Type)
	}
}

func TestSameInstantiationReusesOneClone(t *testing.T) {
	prog, checker := checkedProgram(t, `
fn identity<T>(x: T) -> T { return x; }
fn main() {
	let a = identity(1);
	let b = identity(2);
}
`)
	Run(prog, checker)

	count := 0
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FnDecl); ok && fn.Name == "identity_i32" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one identity_i32 clone, got %d", count)
	}
}

func TestUncalledGenericIsNeverSpecialized(t *testing.T) {
	prog, checker := checkedProgram(t, `
fn identity<T>(x: T) -> T { return x; }
fn main() {}
`)
	Run(prog, checker)

	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FnDecl); ok && fn.Name != "identity" && fn.Name != "main" {
			t.Fatalf("did not expect any specialization, found %s", fn.Name)
		}
	}
}
