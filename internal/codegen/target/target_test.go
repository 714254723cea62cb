package target

import (
	"strings"
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/types"
)

func parseChecked(t *testing.T, src string) *ast.Program {
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
	return prog
}

func TestEmitProgramRendersPreambleAndFunction(t *testing.T) {
	prog := parseChecked(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	res, err := EmitProgram(prog, Options{Target: CJS, SourceMap: SourceMapNone, OutFile: "out.js", SourceFile: "test.lm"})
	if err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if !strings.Contains(res.Code, "require(\"./runtime\")") {
		t.Fatalf("expected CJS preamble, got:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "function add(a, b)") {
		t.Fatalf("expected function add(a, b), got:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "return (a + b);") {
		t.Fatalf("expected return (a + b);, got:\n%s", res.Code)
	}
}

func TestEmitEnumDeclUsesTaggedFactories(t *testing.T) {
	prog := parseChecked(t, `
enum Shape {
    Circle(i32),
    Square(i32),
}
fn make() -> Shape { return Circle(1); }
`)
	res, err := EmitProgram(prog, Options{Target: ESM, SourceMap: SourceMapNone, OutFile: "out.js"})
	if err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if !strings.Contains(res.Code, "$tag: \"Circle\"") {
		t.Fatalf("expected tagged-record factory for Circle, got:\n%s", res.Code)
	}
}

func TestEmitMatchStmtSwitchesOnTag(t *testing.T) {
	prog := parseChecked(t, `
enum Shape {
    Circle(i32),
    Square(i32),
}
fn area(s: Shape) -> i32 {
    return match s {
        Circle(r) => r * r,
        Square(side) => side * side,
    };
}
`)
	res, err := EmitProgram(prog, Options{Target: CJS, SourceMap: SourceMapNone, OutFile: "out.js"})
	if err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if !strings.Contains(res.Code, "switch (s.$tag)") {
		t.Fatalf("expected switch on s.$tag, got:\n%s", res.Code)
	}
}

func TestEmitSourceMapInlineFooter(t *testing.T) {
	prog := parseChecked(t, `fn id(x: i32) -> i32 { return x; }`)
	res, err := EmitProgram(prog, Options{Target: CJS, SourceMap: SourceMapInline, OutFile: "out.js", SourceFile: "test.lm"})
	if err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if !strings.Contains(res.Code, "//# sourceMappingURL=data:application/json;base64,") {
		t.Fatalf("expected inline source map footer, got:\n%s", res.Code)
	}
	if res.Map == "" {
		t.Fatalf("expected non-empty source map JSON")
	}
}

func TestEmitSourceMapExternalFooterPointsToSiblingFile(t *testing.T) {
	prog := parseChecked(t, `fn id(x: i32) -> i32 { return x; }`)
	res, err := EmitProgram(prog, Options{Target: CJS, SourceMap: SourceMapExternal, OutFile: "out.js", SourceFile: "test.lm"})
	if err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	if !strings.Contains(res.Code, "//# sourceMappingURL=out.js.map") {
		t.Fatalf("expected external source map footer, got:\n%s", res.Code)
	}
}
