// Package dtree compiles a list of match arms into a decision tree, so the
// IR lowerer (internal/ir) can emit a single dispatch on the scrutinee's
// tag/value instead of a chain of redundant re-tests. The shape follows a
// classic pattern-matrix compiler: each round picks a column, groups rows
// by the constructor/literal in that column, and specializes.
package dtree

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// DecisionTree is the compiled result: either a leaf (an arm fires), a
// switch (dispatch on one position of the scrutinee), or fail
// (non-exhaustive - unreachable once the semantic analyzer has rejected
// the match, but kept so the compiler never panics on a crafted AST).
type DecisionTree interface {
	isDecisionTree()
	String() string
}

type LeafNode struct {
	ArmIndex int
	Body     ast.Expr
	Guard    ast.Expr
}

func (l *LeafNode) isDecisionTree() {}
func (l *LeafNode) String() string  { return fmt.Sprintf("Leaf(arm=%d)", l.ArmIndex) }

type FailNode struct{}

func (f *FailNode) isDecisionTree() {}
func (f *FailNode) String() string  { return "Fail" }

// SwitchNode dispatches on the value reached by following Path from the
// match subject (Path is a sequence of constructor-argument indices).
type SwitchNode struct {
	Path    []int
	Cases   map[interface{}]DecisionTree // keyed by variant name or literal value
	Default DecisionTree
}

func (s *SwitchNode) isDecisionTree() {}
func (s *SwitchNode) String() string {
	return fmt.Sprintf("Switch(path=%v, cases=%d, default=%v)", s.Path, len(s.Cases), s.Default != nil)
}

// Compiler turns ast.MatchArm rows into a DecisionTree.
type Compiler struct {
	arms []ast.MatchArm
}

func NewCompiler(arms []ast.MatchArm) *Compiler { return &Compiler{arms: arms} }

type matchRow struct {
	patterns []ast.Pattern
	armIndex int
	guard    ast.Expr
	body     ast.Expr
}

func (c *Compiler) Compile() DecisionTree {
	matrix := make([]matchRow, len(c.arms))
	for i, arm := range c.arms {
		matrix[i] = matchRow{patterns: []ast.Pattern{arm.Pattern}, armIndex: i, guard: arm.Guard, body: arm.Body}
	}
	return c.compileMatrix(matrix, nil)
}

func (c *Compiler) compileMatrix(matrix []matchRow, path []int) DecisionTree {
	if len(matrix) == 0 {
		return &FailNode{}
	}
	if isDefaultRow(matrix[0]) {
		return &LeafNode{ArmIndex: matrix[0].armIndex, Body: matrix[0].body, Guard: matrix[0].guard}
	}
	return c.buildSwitch(matrix, path, 0)
}

func isDefaultRow(row matchRow) bool {
	for _, pat := range row.patterns {
		switch pat.(type) {
		case *ast.WildcardPattern, *ast.Identifier:
			continue
		default:
			return false
		}
	}
	return true
}

func (c *Compiler) buildSwitch(matrix []matchRow, path []int, col int) DecisionTree {
	cases := make(map[interface{}][]matchRow)
	var defaults []matchRow

	for _, row := range matrix {
		if col >= len(row.patterns) {
			defaults = append(defaults, row)
			continue
		}
		switch p := row.patterns[col].(type) {
		case *ast.LiteralPattern:
			cases[literalKey(p.Lit)] = append(cases[literalKey(p.Lit)], row)
		case *ast.EnumPattern:
			cases[p.Variant] = append(cases[p.Variant], row)
		case *ast.WildcardPattern, *ast.Identifier:
			defaults = append(defaults, row)
		default:
			defaults = append(defaults, row)
		}
	}

	if len(cases) == 0 && len(defaults) > 0 {
		return &LeafNode{ArmIndex: defaults[0].armIndex, Body: defaults[0].body, Guard: defaults[0].guard}
	}

	newPath := append(append([]int{}, path...), col)
	sw := &SwitchNode{Path: newPath, Cases: make(map[interface{}]DecisionTree)}
	for key, rows := range cases {
		sw.Cases[key] = c.compileMatrix(specialize(rows, col), newPath)
	}
	if len(defaults) > 0 {
		sw.Default = c.compileMatrix(specialize(defaults, col), newPath)
	} else {
		sw.Default = &FailNode{}
	}
	return sw
}

func specialize(rows []matchRow, col int) []matchRow {
	result := make([]matchRow, 0, len(rows))
	for _, row := range rows {
		newPats := make([]ast.Pattern, 0, len(row.patterns))
		for i, pat := range row.patterns {
			if i == col {
				if ep, ok := pat.(*ast.EnumPattern); ok {
					for range ep.Bindings {
						newPats = append(newPats, &ast.WildcardPattern{})
					}
				}
				continue
			}
			newPats = append(newPats, pat)
		}
		result = append(result, matchRow{patterns: newPats, armIndex: row.armIndex, guard: row.guard, body: row.body})
	}
	return result
}

func literalKey(l *ast.Literal) interface{} {
	switch l.Kind {
	case ast.LitNumber:
		return l.IVal
	case ast.LitFloat:
		return l.FVal
	case ast.LitString:
		return l.SVal
	case ast.LitBoolean:
		return l.BVal
	default:
		return l.Raw
	}
}

// CanCompileToTree reports whether dispatching via a decision tree is
// worthwhile: at least two arms carry a testable (literal/enum) pattern.
func CanCompileToTree(arms []ast.MatchArm) bool {
	count := 0
	for _, arm := range arms {
		switch arm.Pattern.(type) {
		case *ast.LiteralPattern, *ast.EnumPattern:
			count++
		}
	}
	return count >= 2
}
