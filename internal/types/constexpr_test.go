package types

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
)

func TestEvalConstExprLiteralAndBinary(t *testing.T) {
	expr := &ast.ConstBinary{Op: "+", Left: &ast.ConstLiteral{Value: 2}, Right: &ast.ConstLiteral{Value: 3}}
	v, ok, err := EvalConstExpr(expr, nil)
	if err != nil || !ok || v != 5 {
		t.Fatalf("expected 5, got %d ok=%v err=%v", v, ok, err)
	}
}

func TestEvalConstExprUnboundParam(t *testing.T) {
	expr := &ast.ConstParam{Name: "N"}
	_, ok, err := EvalConstExpr(expr, nil)
	if err != nil || ok {
		t.Fatalf("expected unresolved (ok=false, err=nil), got ok=%v err=%v", ok, err)
	}
}

func TestEvalConstExprDivByZero(t *testing.T) {
	expr := &ast.ConstBinary{Op: "/", Left: &ast.ConstLiteral{Value: 4}, Right: &ast.ConstLiteral{Value: 0}}
	_, _, err := EvalConstExpr(expr, nil)
	ce, ok := err.(*ConstEvalError)
	if !ok || ce.Code != "CONST-DIV-ZERO" {
		t.Fatalf("expected CONST-DIV-ZERO, got %v", err)
	}
}

func TestCheckArraySizeMismatch(t *testing.T) {
	declared := &ast.ConstLiteral{Value: 4}
	err := CheckArraySize(declared, nil, 3)
	ce, ok := err.(*ConstEvalError)
	if !ok || ce.Code != "CONST-SIZE-MISMATCH" {
		t.Fatalf("expected CONST-SIZE-MISMATCH, got %v", err)
	}
}

func TestCheckArraySizeMatchesAndUnsized(t *testing.T) {
	declared := &ast.ConstLiteral{Value: 3}
	if err := CheckArraySize(declared, nil, 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := CheckArraySize(nil, nil, 99); err != nil {
		t.Fatalf("expected unsized array to always match, got %v", err)
	}
}

func TestCheckArraySizeWithUnresolvedParamDefers(t *testing.T) {
	declared := &ast.ConstParam{Name: "N"}
	if err := CheckArraySize(declared, nil, 5); err != nil {
		t.Fatalf("expected deferral (nil error) when N is unbound, got %v", err)
	}
}
