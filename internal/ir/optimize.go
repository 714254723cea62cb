package ir

// Optimize runs the three optimizer passes over fn in the fixed order
// the pipeline requires — fold, then propagate, then eliminate dead code
// — unless noOptimize bypasses all three and returns the lowered IR
// unchanged.
func Optimize(fn *Function, noOptimize bool) {
	if noOptimize {
		return
	}
	ConstFold(fn)
	ConstPropagate(fn)
	DeadCodeElim(fn)
}

// OptimizeProgram runs Optimize over every function in prog.
func OptimizeProgram(prog *Program, noOptimize bool) {
	for _, fn := range prog.Functions {
		Optimize(fn, noOptimize)
	}
}

func isConstOperand(op Operand) bool {
	switch op.(type) {
	case ConstInt, ConstFloat, ConstString, ConstBool:
		return true
	default:
		return false
	}
}

// ConstFold replaces any BinOp/UnOp whose operands are all literal
// constants with a Move carrying the folded result, leaving everything
// else (including instructions with at least one non-constant operand)
// untouched.
func ConstFold(fn *Function) {
	out := make([]Instr, 0, len(fn.Body))
	for _, instr := range fn.Body {
		switch v := instr.(type) {
		case *BinOp:
			if v.Left != nil && v.Right != nil && isConstOperand(v.Left) && isConstOperand(v.Right) {
				if folded, ok := foldBinOp(v.Op, v.Left, v.Right); ok {
					out = append(out, &Move{Dst: v.Dst, Src: folded})
					continue
				}
			}
			out = append(out, v)
		case *UnOp:
			if isConstOperand(v.X) {
				if folded, ok := foldUnOp(v.Op, v.X); ok {
					out = append(out, &Move{Dst: v.Dst, Src: folded})
					continue
				}
			}
			out = append(out, v)
		default:
			out = append(out, instr)
		}
	}
	fn.Body = out
}

func foldBinOp(op string, l, r Operand) (Operand, bool) {
	switch a := l.(type) {
	case ConstInt:
		b, ok := r.(ConstInt)
		if !ok {
			return nil, false
		}
		return foldIntOp(op, a.Value, b.Value)
	case ConstFloat:
		b, ok := r.(ConstFloat)
		if !ok {
			return nil, false
		}
		return foldFloatOp(op, a.Value, b.Value)
	case ConstBool:
		b, ok := r.(ConstBool)
		if !ok {
			return nil, false
		}
		return foldBoolOp(op, a.Value, b.Value)
	case ConstString:
		b, ok := r.(ConstString)
		if !ok {
			return nil, false
		}
		switch op {
		case "+":
			return ConstString{Value: a.Value + b.Value}, true
		case "==":
			return ConstBool{Value: a.Value == b.Value}, true
		case "!=":
			return ConstBool{Value: a.Value != b.Value}, true
		}
	}
	return nil, false
}

func foldIntOp(op string, a, b int64) (Operand, bool) {
	switch op {
	case "+":
		return ConstInt{Value: a + b}, true
	case "-":
		return ConstInt{Value: a - b}, true
	case "*":
		return ConstInt{Value: a * b}, true
	case "/":
		if b == 0 {
			return nil, false
		}
		return ConstInt{Value: a / b}, true
	case "%":
		if b == 0 {
			return nil, false
		}
		return ConstInt{Value: a % b}, true
	case "==":
		return ConstBool{Value: a == b}, true
	case "!=":
		return ConstBool{Value: a != b}, true
	case "<":
		return ConstBool{Value: a < b}, true
	case "<=":
		return ConstBool{Value: a <= b}, true
	case ">":
		return ConstBool{Value: a > b}, true
	case ">=":
		return ConstBool{Value: a >= b}, true
	}
	return nil, false
}

func foldFloatOp(op string, a, b float64) (Operand, bool) {
	switch op {
	case "+":
		return ConstFloat{Value: a + b}, true
	case "-":
		return ConstFloat{Value: a - b}, true
	case "*":
		return ConstFloat{Value: a * b}, true
	case "/":
		if b == 0 {
			return nil, false
		}
		return ConstFloat{Value: a / b}, true
	case "==":
		return ConstBool{Value: a == b}, true
	case "!=":
		return ConstBool{Value: a != b}, true
	case "<":
		return ConstBool{Value: a < b}, true
	case "<=":
		return ConstBool{Value: a <= b}, true
	case ">":
		return ConstBool{Value: a > b}, true
	case ">=":
		return ConstBool{Value: a >= b}, true
	}
	return nil, false
}

func foldBoolOp(op string, a, b bool) (Operand, bool) {
	switch op {
	case "&&":
		return ConstBool{Value: a && b}, true
	case "||":
		return ConstBool{Value: a || b}, true
	case "==":
		return ConstBool{Value: a == b}, true
	case "!=":
		return ConstBool{Value: a != b}, true
	}
	return nil, false
}

func foldUnOp(op string, x Operand) (Operand, bool) {
	switch v := x.(type) {
	case ConstInt:
		if op == "-" {
			return ConstInt{Value: -v.Value}, true
		}
	case ConstFloat:
		if op == "-" {
			return ConstFloat{Value: -v.Value}, true
		}
	case ConstBool:
		if op == "!" {
			return ConstBool{Value: !v.Value}, true
		}
	}
	return nil, false
}

// ConstPropagate substitutes every use of a temporary or named slot known
// to currently hold a constant value with that constant, directly. A
// named slot only ever becomes "known constant" when it is assigned a
// constant and LoopMutated doesn't name it — a loop-mutated slot's value
// is never tracked as constant at all, which is what keeps a reference
// from folding past the loop header that mutates it: there is simply
// never a recorded constant to substitute in. A Store to any slot
// invalidates the slot's previously known constant unless the new value
// is itself a constant (no intervening non-constant def keeps it live).
func ConstPropagate(fn *Function) {
	constTemps := map[string]Operand{}
	slotConst := map[string]Operand{}

	substitute := func(op Operand) Operand {
		if op == nil {
			return nil
		}
		if t, ok := op.(Temp); ok {
			if c, found := constTemps[t.Name]; found {
				return c
			}
		}
		return op
	}
	substituteAll := func(ops []Operand) {
		for i, op := range ops {
			ops[i] = substitute(op)
		}
	}

	out := make([]Instr, 0, len(fn.Body))
	for _, instr := range fn.Body {
		switch v := instr.(type) {
		case *BinOp:
			v.Left, v.Right = substitute(v.Left), substitute(v.Right)
		case *UnOp:
			v.X = substitute(v.X)
		case *Move:
			v.Src = substitute(v.Src)
			if isConstOperand(v.Src) {
				constTemps[v.Dst] = v.Src
			}
		case *Store:
			v.Src = substitute(v.Src)
			if !fn.LoopMutated[v.Slot] && isConstOperand(v.Src) {
				slotConst[v.Slot] = v.Src
			} else {
				delete(slotConst, v.Slot)
			}
		case *Load:
			if !fn.LoopMutated[v.Slot] {
				if c, ok := slotConst[v.Slot]; ok {
					constTemps[v.Dst] = c
					out = append(out, &Move{Dst: v.Dst, Src: c})
					continue
				}
			}
		case *Call:
			substituteAll(v.Args)
		case *MakeStruct:
			for i := range v.Fields {
				v.Fields[i].Value = substitute(v.Fields[i].Value)
			}
		case *MakeEnum:
			substituteAll(v.Args)
		case *MakeArray:
			substituteAll(v.Elems)
		case *MakeTuple:
			substituteAll(v.Elems)
		case *MakeRange:
			v.Start, v.End = substitute(v.Start), substitute(v.End)
		case *GetField:
			v.X = substitute(v.X)
		case *SetField:
			v.X, v.Value = substitute(v.X), substitute(v.Value)
		case *Index:
			v.X, v.Idx = substitute(v.X), substitute(v.Idx)
		case *SetIndex:
			v.X, v.Idx, v.Value = substitute(v.X), substitute(v.Idx), substitute(v.Value)
		case *TryUnwrap:
			v.X = substitute(v.X)
		case *Await:
			v.X = substitute(v.X)
		case *PatternTest:
			v.X = substitute(v.X)
		case *JumpIfFalse:
			v.Cond = substitute(v.Cond)
		case *JumpIfTrue:
			v.Cond = substitute(v.Cond)
		case *Switch:
			v.Scrutinee = substitute(v.Scrutinee)
		case *Return:
			if v.Value != nil {
				v.Value = substitute(v.Value)
			}
		}
		out = append(out, instr)
	}
	fn.Body = out
}

// instrDefines reports the temporary an instruction defines (if any) and
// whether it's safe to remove that instruction outright when the
// temporary turns out to be unused. Call, TryUnwrap, and Await are never
// removable this way even though Await/TryUnwrap define a temp: each can
// have an effect (a call always can; an awaited/unwrapped expression may
// itself be a call) beyond producing its Dst value.
func instrDefines(instr Instr) (dst string, removable bool) {
	switch v := instr.(type) {
	case *BinOp:
		return v.Dst, true
	case *UnOp:
		return v.Dst, true
	case *Move:
		return v.Dst, true
	case *Load:
		return v.Dst, true
	case *GetField:
		return v.Dst, true
	case *Index:
		return v.Dst, true
	case *MakeStruct:
		return v.Dst, true
	case *MakeEnum:
		return v.Dst, true
	case *MakeArray:
		return v.Dst, true
	case *MakeTuple:
		return v.Dst, true
	case *MakeRange:
		return v.Dst, true
	case *PatternTest:
		return v.Dst, true
	case *MakeClosure:
		return v.Dst, true
	default:
		return "", false
	}
}

func markUsed(used map[string]bool, op Operand) {
	if t, ok := op.(Temp); ok {
		used[t.Name] = true
	}
}

func collectUsedTemps(instrs []Instr) map[string]bool {
	used := map[string]bool{}
	for _, instr := range instrs {
		switch v := instr.(type) {
		case *BinOp:
			markUsed(used, v.Left)
			markUsed(used, v.Right)
		case *UnOp:
			markUsed(used, v.X)
		case *Move:
			markUsed(used, v.Src)
		case *Store:
			markUsed(used, v.Src)
		case *Call:
			for _, a := range v.Args {
				markUsed(used, a)
			}
		case *MakeStruct:
			for _, f := range v.Fields {
				markUsed(used, f.Value)
			}
		case *MakeEnum:
			for _, a := range v.Args {
				markUsed(used, a)
			}
		case *MakeArray:
			for _, e := range v.Elems {
				markUsed(used, e)
			}
		case *MakeTuple:
			for _, e := range v.Elems {
				markUsed(used, e)
			}
		case *MakeRange:
			markUsed(used, v.Start)
			markUsed(used, v.End)
		case *GetField:
			markUsed(used, v.X)
		case *SetField:
			markUsed(used, v.X)
			markUsed(used, v.Value)
		case *Index:
			markUsed(used, v.X)
			markUsed(used, v.Idx)
		case *SetIndex:
			markUsed(used, v.X)
			markUsed(used, v.Idx)
			markUsed(used, v.Value)
		case *TryUnwrap:
			markUsed(used, v.X)
		case *Await:
			markUsed(used, v.X)
		case *PatternTest:
			markUsed(used, v.X)
		case *JumpIfFalse:
			markUsed(used, v.Cond)
		case *JumpIfTrue:
			markUsed(used, v.Cond)
		case *Switch:
			markUsed(used, v.Scrutinee)
		case *Return:
			if v.Value != nil {
				markUsed(used, v.Value)
			}
		}
	}
	return used
}

// DeadCodeElim removes any instruction defining a temporary that is
// never subsequently used and that has no side effect of its own,
// iterating to a fixed point since removing one dead instruction can
// strip the last use of an operand that fed it, making that producer
// dead in turn.
func DeadCodeElim(fn *Function) {
	instrs := fn.Body
	for {
		used := collectUsedTemps(instrs)
		kept := make([]Instr, 0, len(instrs))
		changed := false
		for _, instr := range instrs {
			dst, removable := instrDefines(instr)
			if removable && dst != "" && !used[dst] {
				changed = true
				continue
			}
			kept = append(kept, instr)
		}
		instrs = kept
		if !changed {
			break
		}
	}
	fn.Body = instrs
}
