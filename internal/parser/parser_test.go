package parser

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	for _, e := range errs {
		t.Errorf("parser error: %s", e.Error())
	}
	t.FailNow()
}

func TestLetStatement(t *testing.T) {
	p := NewFromSource("let x = 5;", "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
	let, ok := program.Body[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected *ast.Let, got %T", program.Body[0])
	}
	if let.Name != "x" {
		t.Fatalf("expected name x, got %s", let.Name)
	}
	lit, ok := let.Value.(*ast.Literal)
	if !ok || lit.IVal != 5 {
		t.Fatalf("expected literal 5, got %#v", let.Value)
	}
}

func TestFnDeclWithGenericAndReturnType(t *testing.T) {
	src := `fn identity<T>(x: T) -> T { return x; }`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	fn, ok := program.Body[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", program.Body[0])
	}
	if fn.Name != "identity" {
		t.Fatalf("expected name identity, got %s", fn.Name)
	}
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("expected type param T, got %#v", fn.TypeParams)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "x" {
		t.Fatalf("expected param x, got %#v", fn.Params)
	}
}

func TestStructAndEnumDecl(t *testing.T) {
	src := `
struct Point { x: i32, y: i32 }
enum Option<T> { Some(T), None }
`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	if len(program.Body) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(program.Body))
	}
	st, ok := program.Body[0].(*ast.StructDecl)
	if !ok || len(st.Fields) != 2 {
		t.Fatalf("expected struct with 2 fields, got %#v", program.Body[0])
	}
	en, ok := program.Body[1].(*ast.EnumDecl)
	if !ok || len(en.Variants) != 2 {
		t.Fatalf("expected enum with 2 variants, got %#v", program.Body[1])
	}
	if en.Variants[0].Name != "Some" || len(en.Variants[0].Fields) != 1 {
		t.Fatalf("expected Some(T) variant, got %#v", en.Variants[0])
	}
}

func TestBinaryPrecedence(t *testing.T) {
	p := NewFromSource("1 + 2 * 3;", "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	stmt, ok := program.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", program.Body[0])
	}
	bin, ok := stmt.X.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level +, got %#v", stmt.X)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected * nested on the right of +, got %#v", bin.Right)
	}
}

func TestMatchExprWithEnumPatterns(t *testing.T) {
	// Parenthesized so the match is parsed in expression position; a
	// statement-initial match parses as *ast.MatchStmt instead.
	src := `(match opt { Some(v) => v, None => 0 });`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	stmt, ok := program.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", program.Body[0])
	}
	m, ok := stmt.X.(*ast.MatchExpr)
	if !ok || len(m.Arms) != 2 {
		t.Fatalf("expected match with 2 arms, got %#v", stmt.X)
	}
	pat, ok := m.Arms[0].Pattern.(*ast.EnumPattern)
	if !ok || pat.Variant != "Some" || len(pat.Bindings) != 1 {
		t.Fatalf("expected Some(v) pattern, got %#v", m.Arms[0].Pattern)
	}
}

func TestIfElseIfElse(t *testing.T) {
	src := `if x { 1; } else if y { 2; } else { 3; }`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	top, ok := program.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", program.Body[0])
	}
	elseIf, ok := top.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected else-if chained as *ast.If, got %T", top.Else)
	}
	if _, ok := elseIf.Else.(*ast.Block); !ok {
		t.Fatalf("expected final else as *ast.Block, got %T", elseIf.Else)
	}
}

func TestStructLiteralVsBlockAmbiguity(t *testing.T) {
	src := `
if (Point { x: 1, y: 2 }).x > 0 { 1; }
`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)
	ifStmt, ok := program.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", program.Body[0])
	}
	_, ok = ifStmt.Cond.(*ast.Binary)
	if !ok {
		t.Fatalf("expected binary comparison condition, got %#v", ifStmt.Cond)
	}
}

func TestRangeAndArrayLiteral(t *testing.T) {
	p := NewFromSource("let r = 0..10; let a = [1, 2, 3];", "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	let1 := program.Body[0].(*ast.Let)
	rng, ok := let1.Value.(*ast.Range)
	if !ok || rng.Inclusive {
		t.Fatalf("expected exclusive range, got %#v", let1.Value)
	}
	let2 := program.Body[1].(*ast.Let)
	arr, ok := let2.Value.(*ast.ArrayLiteral)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("expected array of 3 elements, got %#v", let2.Value)
	}
}

func TestImplBlockWithTraitAndInherent(t *testing.T) {
	src := `
impl Printable for Point { fn show(self) -> string { return "pt"; } }
impl Point { fn zero() -> Point { return Point { x: 0, y: 0 }; } }
`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	trait, ok := program.Body[0].(*ast.ImplDecl)
	if !ok || trait.Trait != "Printable" {
		t.Fatalf("expected trait impl for Printable, got %#v", program.Body[0])
	}
	inherent, ok := program.Body[1].(*ast.ImplDecl)
	if !ok || inherent.Trait != "" {
		t.Fatalf("expected inherent impl, got %#v", program.Body[1])
	}
}

func TestInterpolatedString(t *testing.T) {
	p := NewFromSource(`let s = "hi ${name}!";`, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	let := program.Body[0].(*ast.Let)
	interp, ok := let.Value.(*ast.InterpolatedString)
	if !ok {
		t.Fatalf("expected *ast.InterpolatedString, got %T", let.Value)
	}
	if len(interp.Exprs) != 1 {
		t.Fatalf("expected 1 interpolated expression, got %d", len(interp.Exprs))
	}
	if _, ok := interp.Exprs[0].(*ast.Identifier); !ok {
		t.Fatalf("expected identifier expression, got %#v", interp.Exprs[0])
	}
}

func TestConstGenericArraySize(t *testing.T) {
	src := `fn make<const N: usize>(x: [i32; N]) -> i32 { return 0; }`
	p := NewFromSource(src, "test.lm")
	program := p.Parse()
	checkParserErrors(t, p)

	fn := program.Body[0].(*ast.FnDecl)
	if len(fn.TypeParams) != 1 || !fn.TypeParams[0].IsConst {
		t.Fatalf("expected const generic type param, got %#v", fn.TypeParams)
	}
	arrType, ok := fn.Params[0].Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected array type param, got %#v", fn.Params[0].Type)
	}
	if _, ok := arrType.Size.(*ast.ConstParam); !ok {
		t.Fatalf("expected const param size, got %#v", arrType.Size)
	}
}
