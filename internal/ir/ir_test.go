package ir

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/types"
)

func lowerSource(t *testing.T, src string, fnName string) *Function {
	t.Helper()
	p := parser.NewFromSource(src, "test.lm")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	c := types.NewChecker(prog)
	c.Infer(prog)
	if len(c.Diagnostics()) != 0 {
		t.Fatalf("type errors: %v", c.Diagnostics())
	}
	irProg := LowerProgram(prog)
	for _, fn := range irProg.Functions {
		if fn.Name == fnName {
			return fn
		}
	}
	t.Fatalf("function %q not found among %d lowered functions", fnName, len(irProg.Functions))
	return nil
}

func TestLowerArithmeticUsesTemps(t *testing.T) {
	fn := lowerSource(t, `
fn add(a: i32, b: i32) -> i32 {
    let c = a + b;
    return c;
}
`, "add")
	foundBinOp := false
	for _, instr := range fn.Body {
		if _, ok := instr.(*BinOp); ok {
			foundBinOp = true
		}
	}
	if !foundBinOp {
		t.Fatalf("expected a BinOp instruction, got %v", fn.Body)
	}
}

func TestLowerIfEmitsLabelsAndJumps(t *testing.T) {
	fn := lowerSource(t, `
fn abs(x: i32) -> i32 {
    if x < 0 {
        return 0 - x;
    } else {
        return x;
    }
}
`, "abs")
	sawJumpIfFalse, sawLabel := false, false
	for _, instr := range fn.Body {
		switch instr.(type) {
		case *JumpIfFalse:
			sawJumpIfFalse = true
		case *Label:
			sawLabel = true
		}
	}
	if !sawJumpIfFalse || !sawLabel {
		t.Fatalf("expected if/else to lower to JumpIfFalse+Label, got %v", fn.Body)
	}
}

func TestLowerWhileLoopMarksCounterMutable(t *testing.T) {
	fn := lowerSource(t, `
fn countUp(n: i32) -> i32 {
    let mut i = 0;
    while i < n {
        i = i + 1;
    }
    return i;
}
`, "countUp")
	if !fn.LoopMutated["i"] {
		t.Fatalf("expected LoopMutated[\"i\"] to be true, got %v", fn.LoopMutated)
	}
	sawStore := false
	for _, instr := range fn.Body {
		if s, ok := instr.(*Store); ok && s.Slot == "i" {
			sawStore = true
		}
	}
	if !sawStore {
		t.Fatalf("expected at least one Store to slot \"i\", got %v", fn.Body)
	}
}

func TestLowerMatchExprEmitsSwitch(t *testing.T) {
	fn := lowerSource(t, `
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
`, "area")
	sawSwitch := false
	for _, instr := range fn.Body {
		if _, ok := instr.(*Switch); ok {
			sawSwitch = true
		}
	}
	if !sawSwitch {
		t.Fatalf("expected match to lower to a Switch instruction, got %v", fn.Body)
	}
}

func TestConstFoldFoldsLiteralArithmetic(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&BinOp{Dst: "%t1", Op: "+", Left: ConstInt{Value: 2}, Right: ConstInt{Value: 3}},
			&Return{Value: Temp{Name: "%t1"}},
		},
		LoopMutated: map[string]bool{},
	}
	ConstFold(fn)
	mv, ok := fn.Body[0].(*Move)
	if !ok {
		t.Fatalf("expected BinOp to fold into a Move, got %T", fn.Body[0])
	}
	ci, ok := mv.Src.(ConstInt)
	if !ok || ci.Value != 5 {
		t.Fatalf("expected folded constant 5, got %v", mv.Src)
	}
}

func TestConstPropagateSubstitutesKnownConstant(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&Move{Dst: "%t1", Src: ConstInt{Value: 7}},
			&BinOp{Dst: "%t2", Op: "+", Left: Temp{Name: "%t1"}, Right: ConstInt{Value: 1}},
			&Return{Value: Temp{Name: "%t2"}},
		},
		LoopMutated: map[string]bool{},
	}
	ConstPropagate(fn)
	bin, ok := fn.Body[1].(*BinOp)
	if !ok {
		t.Fatalf("expected BinOp at index 1, got %T", fn.Body[1])
	}
	ci, ok := bin.Left.(ConstInt)
	if !ok || ci.Value != 7 {
		t.Fatalf("expected Left to propagate to ConstInt{7}, got %v", bin.Left)
	}
}

func TestConstPropagateSkipsLoopMutatedSlot(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&Store{Slot: "i", Src: ConstInt{Value: 0}},
			&Label{Name: "loop_head"},
			&Load{Dst: "%t1", Slot: "i"},
			&BinOp{Dst: "%t2", Op: "+", Left: Temp{Name: "%t1"}, Right: ConstInt{Value: 1}},
			&Store{Slot: "i", Src: Temp{Name: "%t2"}},
			&Jump{Target: "loop_head"},
		},
		LoopMutated: map[string]bool{"i": true},
	}
	ConstPropagate(fn)
	if _, ok := fn.Body[2].(*Load); !ok {
		t.Fatalf("expected Load on a loop-mutated slot to survive untouched, got %T", fn.Body[2])
	}
}

func TestDeadCodeElimRemovesUnusedPureDef(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&BinOp{Dst: "%t1", Op: "+", Left: ConstInt{Value: 1}, Right: ConstInt{Value: 2}},
			&Return{Value: ConstInt{Value: 0}},
		},
		LoopMutated: map[string]bool{},
	}
	DeadCodeElim(fn)
	if len(fn.Body) != 1 {
		t.Fatalf("expected dead BinOp to be removed, got %v", fn.Body)
	}
	if _, ok := fn.Body[0].(*Return); !ok {
		t.Fatalf("expected only the Return to remain, got %v", fn.Body)
	}
}

func TestDeadCodeElimKeepsUnusedCall(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&Call{Dst: "%t1", Callee: "logEvent", Args: []Operand{ConstString{Value: "x"}}},
			&Return{Value: ConstInt{Value: 0}},
		},
		LoopMutated: map[string]bool{},
	}
	DeadCodeElim(fn)
	if len(fn.Body) != 2 {
		t.Fatalf("expected the Call to survive despite an unused Dst, got %v", fn.Body)
	}
}

func TestOptimizeNoOptimizeBypassesAllPasses(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Instr{
			&BinOp{Dst: "%t1", Op: "+", Left: ConstInt{Value: 1}, Right: ConstInt{Value: 2}},
			&Return{Value: ConstInt{Value: 0}},
		},
		LoopMutated: map[string]bool{},
	}
	before := len(fn.Body)
	Optimize(fn, true)
	if len(fn.Body) != before {
		t.Fatalf("noOptimize=true must leave the instruction stream unchanged, got %v", fn.Body)
	}
}
