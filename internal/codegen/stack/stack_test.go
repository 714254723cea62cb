package stack

import (
	"strings"
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/types"
)

func parseChecked(t *testing.T, src string) (*ast.Program, *types.Checker) {
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

func TestEmitModuleHasFixedImportsAndMemory(t *testing.T) {
	prog, c := parseChecked(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	res := EmitModule(prog, c)
	for _, name := range []string{"print_int", "print_float", "print_bool", "abs_int", "abs_float"} {
		if !strings.Contains(res.Text, "$"+name) {
			t.Fatalf("expected import of %s, got:\n%s", name, res.Text)
		}
	}
	if !strings.Contains(res.Text, "(memory (export \"memory\") 1)") {
		t.Fatalf("expected an exported single linear memory, got:\n%s", res.Text)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for a fully-supported function, got %v", res.Diagnostics)
	}
}

func TestEmitModuleEmitsArithmeticAndCall(t *testing.T) {
	prog, c := parseChecked(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	res := EmitModule(prog, c)
	if !strings.Contains(res.Text, "i32.add") {
		t.Fatalf("expected i32.add, got:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "(func $add") {
		t.Fatalf("expected function add, got:\n%s", res.Text)
	}
}

func TestEmitModuleWhileLoop(t *testing.T) {
	prog, c := parseChecked(t, `
fn countUp(n: i32) -> i32 {
    let mut i = 0;
    while i < n {
        i = i + 1;
    }
    return i;
}
`)
	res := EmitModule(prog, c)
	if !strings.Contains(res.Text, "(loop $continue") {
		t.Fatalf("expected a wasm loop, got:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "br_if $break") {
		t.Fatalf("expected a conditional exit branch, got:\n%s", res.Text)
	}
}

func TestEmitModuleUnsupportedConstructEmitsDiagnostic(t *testing.T) {
	prog, c := parseChecked(t, `
fn greet(name: string) -> string {
    return name;
}
`)
	res := EmitModule(prog, c)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == "WASM-001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a WASM-001 diagnostic for a string-typed function, got %v", res.Diagnostics)
	}
	if !strings.Contains(res.Text, "unreachable") {
		t.Fatalf("expected unreachable inserted in place of the unsupported construct, got:\n%s", res.Text)
	}
}
