package dtree

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ast"
)

func TestCompileTwoVariants(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.EnumPattern{Variant: "Some", Bindings: []string{"v"}}, Body: &ast.Identifier{Name: "v"}},
		{Pattern: &ast.EnumPattern{Variant: "None"}, Body: &ast.Literal{Kind: ast.LitNumber, Raw: "0"}},
	}
	tree := NewCompiler(arms).Compile()
	sw, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("want *SwitchNode, got %T", tree)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("want 2 cases, got %d", len(sw.Cases))
	}
}

func TestWildcardCollapsesToLeaf(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.WildcardPattern{}, Body: &ast.Literal{Kind: ast.LitNumber, Raw: "1"}},
	}
	tree := NewCompiler(arms).Compile()
	if _, ok := tree.(*LeafNode); !ok {
		t.Fatalf("want *LeafNode, got %T", tree)
	}
}

func TestCanCompileToTree(t *testing.T) {
	arms := []ast.MatchArm{
		{Pattern: &ast.EnumPattern{Variant: "Some"}},
		{Pattern: &ast.EnumPattern{Variant: "None"}},
	}
	if !CanCompileToTree(arms) {
		t.Fatal("expected true for two testable patterns")
	}
}
