package ir

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/dtree"
)

// lowerMatch lowers a match/matchExpr into a Switch-based dispatch built
// from internal/dtree's compiled decision tree. asValue selects whether
// the match produces a value (a MatchExpr, or a MatchStmt whose arm
// bodies are evaluated only for effect — either way the mechanics are
// identical, only whether the final Load is emitted differs).
func (l *Lowerer) lowerMatch(subjectExpr ast.Expr, arms []ast.MatchArm, asValue bool) Operand {
	subject := l.lowerExpr(subjectExpr)
	tree := dtree.NewCompiler(arms).Compile()

	endLabel := l.newLabel("match_end")
	resultSlot := ""
	if asValue {
		resultSlot = l.newTemp()
	}
	l.emitDecisionTree(tree, subject, arms, endLabel, resultSlot, asValue)
	l.emit(&Label{Name: endLabel})

	if !asValue {
		return nil
	}
	dst := l.newTemp()
	l.emit(&Load{Dst: dst, Slot: resultSlot})
	return Temp{Name: dst}
}

func (l *Lowerer) emitDecisionTree(node dtree.DecisionTree, subject Operand, arms []ast.MatchArm, endLabel, resultSlot string, asValue bool) {
	switch n := node.(type) {
	case *dtree.LeafNode:
		arm := arms[n.ArmIndex]
		l.bindLeafPattern(subject, arm.Pattern)
		if arm.Guard != nil {
			cond := l.lowerExpr(arm.Guard)
			failLabel := l.newLabel("guard_fail")
			l.emit(&JumpIfFalse{Cond: cond, Target: failLabel})
			l.emitArmBody(arm, resultSlot, asValue)
			l.emit(&Jump{Target: endLabel})
			l.emit(&Label{Name: failLabel})
			// A failed guard falls through with no further row to try
			// (internal/dtree's matrix compiler doesn't model
			// guard-fallthrough); treat it as reaching the end of the
			// dispatch unmatched, same as FailNode.
			l.emitNonExhaustivePanic(endLabel)
			return
		}
		l.emitArmBody(arm, resultSlot, asValue)
		l.emit(&Jump{Target: endLabel})

	case *dtree.FailNode:
		l.emitNonExhaustivePanic(endLabel)

	case *dtree.SwitchNode:
		cases := make(map[interface{}]string, len(n.Cases))
		order := make([]interface{}, 0, len(n.Cases))
		for key := range n.Cases {
			cases[key] = l.newLabel("case")
			order = append(order, key)
		}
		defaultLabel := l.newLabel("default")
		l.emit(&Switch{Scrutinee: subject, Cases: cases, Default: defaultLabel})
		for _, key := range order {
			l.emit(&Label{Name: cases[key]})
			l.emitDecisionTree(n.Cases[key], subject, arms, endLabel, resultSlot, asValue)
		}
		l.emit(&Label{Name: defaultLabel})
		if n.Default != nil {
			l.emitDecisionTree(n.Default, subject, arms, endLabel, resultSlot, asValue)
		} else {
			l.emitNonExhaustivePanic(endLabel)
		}
	}
}

func (l *Lowerer) emitArmBody(arm ast.MatchArm, resultSlot string, asValue bool) {
	val := l.lowerExpr(arm.Body)
	if asValue {
		l.emit(&Store{Slot: resultSlot, Src: val})
	}
}

func (l *Lowerer) emitNonExhaustivePanic(endLabel string) {
	dst := l.newTemp()
	l.emit(&Call{Dst: dst, Callee: "LuminaPanic", Args: []Operand{ConstString{Value: "non-exhaustive match"}}})
	l.emit(&Jump{Target: endLabel})
}

// bindLeafPattern binds every name pattern introduces against subject,
// without re-testing anything the switch dispatch already established.
func (l *Lowerer) bindLeafPattern(subject Operand, pattern ast.Pattern) {
	switch p := pattern.(type) {
	case *ast.EnumPattern:
		for i, name := range p.Bindings {
			b := l.newTemp()
			l.emit(&GetField{Dst: b, X: subject, Field: fmt.Sprintf("%d", i)})
			l.bindings[name] = Temp{Name: b}
		}
	case *ast.Identifier:
		l.bindings[p.Name] = subject
	case *ast.StructPattern:
		for _, f := range p.Fields {
			v := l.newTemp()
			l.emit(&GetField{Dst: v, X: subject, Field: f.Name})
			l.bindLeafPattern(Temp{Name: v}, f.Pattern)
		}
	case *ast.TuplePattern:
		for i, el := range p.Elements {
			v := l.newTemp()
			l.emit(&GetField{Dst: v, X: subject, Field: fmt.Sprintf("%d", i)})
			l.bindLeafPattern(Temp{Name: v}, el)
		}
	}
}
