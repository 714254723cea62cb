package semantic

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/parser"
)

func analyze(t *testing.T, src string) *Analyzer {
	t.Helper()
	p := parser.NewFromSource(src, "test.lm")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	a := NewAnalyzer()
	a.Analyze(prog, p.MissingSemicolons())
	return a
}

func hasCode(diags []*codeMessage, code string) bool {
	for _, d := range diags {
		if d.code == code {
			return true
		}
	}
	return false
}

type codeMessage struct {
	code, message string
}

func codesOf(a *Analyzer) []*codeMessage {
	out := make([]*codeMessage, len(a.Diagnostics()))
	for i, d := range a.Diagnostics() {
		out[i] = &codeMessage{code: d.Code, message: d.Message}
	}
	return out
}

func TestHoistAllowsForwardReference(t *testing.T) {
	a := analyze(t, `
fn main() { helper(); }
fn helper() {}
`)
	if hasCode(codesOf(a), "SEM-UNDEF-IDENT") {
		t.Fatalf("expected forward reference to resolve via hoisting, got %#v", a.Diagnostics())
	}
}

func TestUndefinedIdentifier(t *testing.T) {
	a := analyze(t, `fn main() { let x = y; }`)
	if !hasCode(codesOf(a), "SEM-UNDEF-IDENT") {
		t.Fatalf("expected SEM-UNDEF-IDENT, got %#v", a.Diagnostics())
	}
}

func TestUndefinedType(t *testing.T) {
	a := analyze(t, `fn make(p: Missing) {}`)
	if !hasCode(codesOf(a), "SEM-UNDEF-TYPE") {
		t.Fatalf("expected SEM-UNDEF-TYPE, got %#v", a.Diagnostics())
	}
}

func TestUnusedBindingWarning(t *testing.T) {
	a := analyze(t, `fn main() { let x = 5; }`)
	if !hasCode(codesOf(a), "UNUSED_BINDING") {
		t.Fatalf("expected UNUSED_BINDING, got %#v", a.Diagnostics())
	}
}

func TestUnderscorePrefixSuppressesUnusedWarning(t *testing.T) {
	a := analyze(t, `fn main() { let _x = 5; }`)
	if hasCode(codesOf(a), "UNUSED_BINDING") {
		t.Fatalf("did not expect UNUSED_BINDING for an underscore-prefixed binding, got %#v", a.Diagnostics())
	}
}

func TestUsedBindingHasNoWarning(t *testing.T) {
	a := analyze(t, `fn main() { let x = 5; let y = x; }`)
	if hasCode(codesOf(a), "UNUSED_BINDING") {
		t.Fatalf("did not expect UNUSED_BINDING when x is used, got %#v", a.Diagnostics())
	}
}

func TestStructFieldTypesAreChecked(t *testing.T) {
	a := analyze(t, `struct Point { x: i32, y: i32 }`)
	if hasCode(codesOf(a), "SEM-UNDEF-TYPE") {
		t.Fatalf("did not expect an undefined-type diagnostic for builtin fields, got %#v", a.Diagnostics())
	}
}

func TestEnumVariantFieldTypeResolvesStructName(t *testing.T) {
	a := analyze(t, `
struct Point { x: i32, y: i32 }
enum Shape { Circle(Point), Unit }
`)
	if hasCode(codesOf(a), "SEM-UNDEF-TYPE") {
		t.Fatalf("did not expect an undefined-type diagnostic, got %#v", a.Diagnostics())
	}
}
