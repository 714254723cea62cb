package ir

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// Lowerer accumulates the instruction stream for one function body. A
// fresh Lowerer is used per ast.FnDecl (and per lambda lifted out of an
// expression position); closures share the function-level namespace, so
// each registers its own lifted Function into extraFns.
type Lowerer struct {
	instrs      []Instr
	tempN       int
	labelN      int
	bindings    map[string]Operand // non-mut `let` names -> their SSA value
	mutableSlot map[string]bool    // `let mut` / assignable names
	loopMutated map[string]bool
	extraFns    []*Function // lambdas lifted during this function's lowering
	namePrefix  string      // used to generate unique lambda names
	lambdaN     int
}

func newLowerer(namePrefix string, loopMutated map[string]bool) *Lowerer {
	return &Lowerer{
		bindings:    map[string]Operand{},
		mutableSlot: map[string]bool{},
		loopMutated: loopMutated,
		namePrefix:  namePrefix,
	}
}

func (l *Lowerer) emit(i Instr) { l.instrs = append(l.instrs, i) }

func (l *Lowerer) newTemp() string {
	l.tempN++
	return fmt.Sprintf("%%t%d", l.tempN)
}

func (l *Lowerer) newLabel(prefix string) string {
	l.labelN++
	return fmt.Sprintf("%s%d", prefix, l.labelN)
}

// LowerProgram lowers every top-level function declaration in prog (skips
// extern declarations, which have no body) into an ir.Program, including
// any lambdas lifted out of expression position.
func LowerProgram(prog *ast.Program) *Program {
	out := &Program{}
	for _, stmt := range prog.Body {
		switch n := stmt.(type) {
		case *ast.FnDecl:
			if n.Body == nil {
				continue
			}
			out.Functions = append(out.Functions, LowerFunction(n)...)
		case *ast.ImplDecl:
			for _, m := range n.Methods {
				if m.Body == nil {
					continue
				}
				out.Functions = append(out.Functions, LowerFunction(m)...)
			}
		}
	}
	return out
}

// LowerFunction lowers one function declaration, returning it followed by
// any lambda closures lifted out of its body.
func LowerFunction(fn *ast.FnDecl) []*Function {
	loopMutated := collectLoopMutated(fn.Body)
	l := newLowerer(fn.Name, loopMutated)
	for _, p := range fn.Params {
		l.bindings[p.Name] = Ident{Name: p.Name}
	}
	l.lowerBlockStmts(fn.Body)

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
	}
	main := &Function{Name: fn.Name, Params: params, Body: l.instrs, LoopMutated: loopMutated}
	return append([]*Function{main}, l.extraFns...)
}

func (l *Lowerer) lowerBlockStmts(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		l.lowerStmt(s)
	}
}

func (l *Lowerer) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Let:
		val := l.lowerExpr(n.Value)
		if n.Mut || l.loopMutated[n.Name] {
			l.mutableSlot[n.Name] = true
			l.emit(&Store{Slot: n.Name, Src: val})
		} else {
			l.bindings[n.Name] = val
		}

	case *ast.LetTuple:
		val := l.lowerExpr(n.Value)
		for i, name := range n.Names {
			dst := l.newTemp()
			l.emit(&GetField{Dst: dst, X: val, Field: fmt.Sprintf("%d", i)})
			l.bindings[name] = Temp{Name: dst}
		}

	case *ast.Return:
		var v Operand
		if n.Value != nil {
			v = l.lowerExpr(n.Value)
		}
		l.emit(&Return{Value: v})

	case *ast.If:
		cond := l.lowerExpr(n.Cond)
		elseLabel := l.newLabel("else")
		endLabel := l.newLabel("endif")
		l.emit(&JumpIfFalse{Cond: cond, Target: elseLabel})
		l.lowerBlockStmts(n.Then)
		l.emit(&Jump{Target: endLabel})
		l.emit(&Label{Name: elseLabel})
		if n.Else != nil {
			l.lowerStmt(n.Else)
		}
		l.emit(&Label{Name: endLabel})

	case *ast.While:
		head := l.newLabel("loop_head")
		end := l.newLabel("loop_end")
		l.emit(&Label{Name: head})
		cond := l.lowerExpr(n.Cond)
		l.emit(&JumpIfFalse{Cond: cond, Target: end})
		l.lowerBlockStmts(n.Body)
		l.emit(&Jump{Target: head})
		l.emit(&Label{Name: end})

	case *ast.WhileLet:
		l.lowerWhileLet(n)

	case *ast.For:
		l.lowerFor(n)

	case *ast.MatchStmt:
		l.lowerMatch(n.Subject, n.Arms, false)

	case *ast.Assign:
		l.lowerAssign(n)

	case *ast.ExprStmt:
		l.lowerExpr(n.X)

	case *ast.Block:
		l.lowerBlockStmts(n)
	}
}

func (l *Lowerer) lowerAssign(n *ast.Assign) {
	rhs := l.lowerExpr(n.Value)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		src := rhs
		if n.Op != "=" {
			cur := l.newTemp()
			l.emit(&Load{Dst: cur, Slot: target.Name})
			combined := l.newTemp()
			l.emit(&BinOp{Dst: combined, Op: compoundOp(n.Op), Left: Temp{Name: cur}, Right: rhs})
			src = Temp{Name: combined}
		}
		l.mutableSlot[target.Name] = true
		l.emit(&Store{Slot: target.Name, Src: src})

	case *ast.Member:
		x := l.lowerExpr(target.X)
		src := rhs
		if n.Op != "=" {
			cur := l.newTemp()
			l.emit(&GetField{Dst: cur, X: x, Field: target.Name})
			combined := l.newTemp()
			l.emit(&BinOp{Dst: combined, Op: compoundOp(n.Op), Left: Temp{Name: cur}, Right: rhs})
			src = Temp{Name: combined}
		}
		l.emit(&SetField{X: x, Field: target.Name, Value: src})

	case *ast.Index:
		x := l.lowerExpr(target.X)
		idx := l.lowerExpr(target.Index)
		src := rhs
		if n.Op != "=" {
			cur := l.newTemp()
			l.emit(&Index{Dst: cur, X: x, Idx: idx})
			combined := l.newTemp()
			l.emit(&BinOp{Dst: combined, Op: compoundOp(n.Op), Left: Temp{Name: cur}, Right: rhs})
			src = Temp{Name: combined}
		}
		l.emit(&SetIndex{X: x, Idx: idx, Value: src})
	}
}

func compoundOp(op string) string {
	switch op {
	case "+=":
		return "+"
	case "-=":
		return "-"
	case "*=":
		return "*"
	case "/=":
		return "/"
	default:
		return op
	}
}

func (l *Lowerer) lowerWhileLet(n *ast.WhileLet) {
	head := l.newLabel("loop_head")
	end := l.newLabel("loop_end")
	l.emit(&Label{Name: head})
	subject := l.lowerExpr(n.Value)
	l.bindPatternTest(subject, n.Pattern, end)
	l.lowerBlockStmts(n.Body)
	l.emit(&Jump{Target: head})
	l.emit(&Label{Name: end})
}

// bindPatternTest tests subject against pattern, jumping to failLabel if
// it doesn't match and binding every name the pattern introduces
// (Lowerer.bindings) when it does.
func (l *Lowerer) bindPatternTest(subject Operand, pattern ast.Pattern, failLabel string) {
	switch p := pattern.(type) {
	case *ast.EnumPattern:
		dst := l.newTemp()
		l.emit(&PatternTest{Dst: dst, X: subject, EnumName: p.EnumName, Variant: p.Variant})
		l.emit(&JumpIfFalse{Cond: Temp{Name: dst}, Target: failLabel})
		for i, name := range p.Bindings {
			b := l.newTemp()
			l.emit(&GetField{Dst: b, X: subject, Field: fmt.Sprintf("%d", i)})
			l.bindings[name] = Temp{Name: b}
		}
	case *ast.Identifier:
		l.bindings[p.Name] = subject
	case *ast.WildcardPattern:
		// matches unconditionally, binds nothing
	}
}

func (l *Lowerer) lowerFor(n *ast.For) {
	if rng, ok := n.Iter.(*ast.Range); ok {
		l.lowerForRange(n, rng)
		return
	}
	// General iterable: desugar to the runtime iterator protocol
	// (io/list-family modules expose __iter_next returning an
	// Option<(item, nextState)>), grounded in spec.md 6.5's collection
	// module contracts.
	iter := l.lowerExpr(n.Iter)
	stateSlot := l.newTemp()
	l.mutableSlot[stateSlot] = true
	l.emit(&Store{Slot: stateSlot, Src: iter})
	head := l.newLabel("loop_head")
	end := l.newLabel("loop_end")
	l.emit(&Label{Name: head})
	cur := l.newTemp()
	l.emit(&Load{Dst: cur, Slot: stateSlot})
	next := l.newTemp()
	l.emit(&Call{Dst: next, Callee: "__iter_next", Args: []Operand{Temp{Name: cur}}})
	ok := l.newTemp()
	l.emit(&PatternTest{Dst: ok, X: Temp{Name: next}, EnumName: "Option", Variant: "Some"})
	l.emit(&JumpIfFalse{Cond: Temp{Name: ok}, Target: end})
	pair := l.newTemp()
	l.emit(&GetField{Dst: pair, X: Temp{Name: next}, Field: "0"})
	item := l.newTemp()
	l.emit(&GetField{Dst: item, X: Temp{Name: pair}, Field: "0"})
	rest := l.newTemp()
	l.emit(&GetField{Dst: rest, X: Temp{Name: pair}, Field: "1"})
	l.emit(&Store{Slot: stateSlot, Src: Temp{Name: rest}})
	l.bindings[n.Binder] = Temp{Name: item}
	l.lowerBlockStmts(n.Body)
	l.emit(&Jump{Target: head})
	l.emit(&Label{Name: end})
}

func (l *Lowerer) lowerForRange(n *ast.For, rng *ast.Range) {
	start := l.lowerExpr(rng.Start)
	end := l.lowerExpr(rng.End)
	slot := n.Binder
	l.mutableSlot[slot] = true
	l.emit(&Store{Slot: slot, Src: start})
	head := l.newLabel("loop_head")
	endLabel := l.newLabel("loop_end")
	l.emit(&Label{Name: head})
	cur := l.newTemp()
	l.emit(&Load{Dst: cur, Slot: slot})
	cmpOp := "<"
	if rng.Inclusive {
		cmpOp = "<="
	}
	cond := l.newTemp()
	l.emit(&BinOp{Dst: cond, Op: cmpOp, Left: Temp{Name: cur}, Right: end})
	l.emit(&JumpIfFalse{Cond: Temp{Name: cond}, Target: endLabel})
	l.bindings[n.Binder] = Temp{Name: cur}
	l.lowerBlockStmts(n.Body)
	bumped := l.newTemp()
	l.emit(&BinOp{Dst: bumped, Op: "+", Left: Temp{Name: cur}, Right: ConstInt{Value: 1}})
	l.emit(&Store{Slot: slot, Src: Temp{Name: bumped}})
	l.emit(&Jump{Target: head})
	l.emit(&Label{Name: endLabel})
}
