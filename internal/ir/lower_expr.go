package ir

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// lowerExpr linearizes e, emitting any instructions needed to compute
// sub-expressions into fresh temporaries, and returns the Operand that
// holds e's final value. A literal or an already-bound identifier never
// needs a fresh temporary of its own — only compound expressions do.
func (l *Lowerer) lowerExpr(e ast.Expr) Operand {
	switch n := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(n)

	case *ast.Identifier:
		if bound, ok := l.bindings[n.Name]; ok {
			return bound
		}
		if l.mutableSlot[n.Name] {
			dst := l.newTemp()
			l.emit(&Load{Dst: dst, Slot: n.Name})
			return Temp{Name: dst}
		}
		return Ident{Name: n.Name}

	case *ast.InterpolatedString:
		return l.lowerInterpolated(n)

	case *ast.Binary:
		left := l.lowerExpr(n.Left)
		right := l.lowerExpr(n.Right)
		dst := l.newTemp()
		l.emit(&BinOp{Dst: dst, Op: n.Op, Left: left, Right: right})
		return Temp{Name: dst}

	case *ast.Unary:
		x := l.lowerExpr(n.X)
		dst := l.newTemp()
		l.emit(&UnOp{Dst: dst, Op: n.Op, X: x})
		return Temp{Name: dst}

	case *ast.Call:
		return l.lowerCall(n)

	case *ast.Member:
		x := l.lowerExpr(n.X)
		dst := l.newTemp()
		l.emit(&GetField{Dst: dst, X: x, Field: n.Name})
		return Temp{Name: dst}

	case *ast.StructLiteral:
		fields := make([]FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = FieldInit{Name: f.Name, Value: l.lowerExpr(f.Value)}
		}
		dst := l.newTemp()
		l.emit(&MakeStruct{Dst: dst, TypeName: n.TypeName, Fields: fields})
		return Temp{Name: dst}

	case *ast.ArrayLiteral:
		elems := make([]Operand, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = l.lowerExpr(el)
		}
		dst := l.newTemp()
		l.emit(&MakeArray{Dst: dst, Elems: elems})
		return Temp{Name: dst}

	case *ast.Index:
		x := l.lowerExpr(n.X)
		idx := l.lowerExpr(n.Index)
		dst := l.newTemp()
		l.emit(&Index{Dst: dst, X: x, Idx: idx})
		return Temp{Name: dst}

	case *ast.MatchExpr:
		return l.lowerMatch(n.Subject, n.Arms, true)

	case *ast.IsExpr:
		subject := l.lowerExpr(n.X)
		if ep, ok := n.Pattern.(*ast.EnumPattern); ok {
			dst := l.newTemp()
			l.emit(&PatternTest{Dst: dst, X: subject, EnumName: ep.EnumName, Variant: ep.Variant})
			return Temp{Name: dst}
		}
		return ConstBool{Value: true}

	case *ast.Try:
		x := l.lowerExpr(n.X)
		dst := l.newTemp()
		l.emit(&TryUnwrap{Dst: dst, X: x})
		return Temp{Name: dst}

	case *ast.Move:
		return l.lowerExpr(n.X)

	case *ast.Await:
		x := l.lowerExpr(n.X)
		dst := l.newTemp()
		l.emit(&Await{Dst: dst, X: x})
		return Temp{Name: dst}

	case *ast.Range:
		start := l.lowerExpr(n.Start)
		end := l.lowerExpr(n.End)
		dst := l.newTemp()
		l.emit(&MakeRange{Dst: dst, Start: start, End: end, Inclusive: n.Inclusive})
		return Temp{Name: dst}

	case *ast.Lambda:
		return l.lowerLambda(n)

	case *ast.Tuple:
		elems := make([]Operand, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = l.lowerExpr(el)
		}
		dst := l.newTemp()
		l.emit(&MakeTuple{Dst: dst, Elems: elems})
		return Temp{Name: dst}

	case *ast.Block:
		return l.lowerBlockExpr(n)
	}
	return ConstBool{Value: false}
}

func (l *Lowerer) lowerLiteral(n *ast.Literal) Operand {
	switch n.Kind {
	case ast.LitNumber:
		return ConstInt{Value: n.IVal}
	case ast.LitFloat:
		return ConstFloat{Value: n.FVal}
	case ast.LitString:
		return ConstString{Value: n.SVal}
	case ast.LitBoolean:
		return ConstBool{Value: n.BVal}
	default:
		return ConstString{Value: n.Raw}
	}
}

// lowerInterpolated lowers each embedded expression, concatenating
// segments and stringified sub-results left to right via the runtime's
// formatValue/str.concat boundary functions.
func (l *Lowerer) lowerInterpolated(n *ast.InterpolatedString) Operand {
	acc := Operand(ConstString{Value: n.Segments[0]})
	for i, sub := range n.Exprs {
		val := l.lowerExpr(sub)
		formatted := l.newTemp()
		l.emit(&Call{Dst: formatted, Callee: "formatValue", Args: []Operand{val}})
		concatenated := l.newTemp()
		l.emit(&Call{Dst: concatenated, Callee: "str.concat", Args: []Operand{acc, Temp{Name: formatted}}})
		acc = Temp{Name: concatenated}
		if i+1 < len(n.Segments) && n.Segments[i+1] != "" {
			withSeg := l.newTemp()
			l.emit(&Call{Dst: withSeg, Callee: "str.concat", Args: []Operand{acc, ConstString{Value: n.Segments[i+1]}}})
			acc = Temp{Name: withSeg}
		}
	}
	return acc
}

func (l *Lowerer) lowerCall(n *ast.Call) Operand {
	args := make([]Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerExpr(a)
	}
	if n.EnumName != "" {
		variant := ""
		if ident, ok := n.Callee.(*ast.Identifier); ok {
			variant = ident.Name
		}
		dst := l.newTemp()
		l.emit(&MakeEnum{Dst: dst, EnumName: n.EnumName, Variant: variant, Args: args})
		return Temp{Name: dst}
	}
	callee := calleeName(n.Callee)
	dst := l.newTemp()
	l.emit(&Call{Dst: dst, Callee: callee, Args: args})
	return Temp{Name: dst}
}

// calleeName renders a call's target expression down to a plain dotted
// name codegen can resolve (a bare function, or obj.method via Member).
func calleeName(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Member:
		return calleeName(n.X) + "." + n.Name
	default:
		return e.String()
	}
}

func (l *Lowerer) lowerLambda(n *ast.Lambda) Operand {
	l.lambdaN++
	name := fmt.Sprintf("%s$lambda%d", l.namePrefix, l.lambdaN)

	inner := newLowerer(name, map[string]bool{})
	for k, v := range l.bindings {
		inner.bindings[k] = v // lambdas close over the enclosing scope's bindings
	}
	for _, p := range n.Params {
		inner.bindings[p.Name] = Ident{Name: p.Name}
	}
	result := inner.lowerExpr(n.Body)
	inner.emit(&Return{Value: result})

	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}
	fn := &Function{Name: name, Params: params, Body: inner.instrs, LoopMutated: map[string]bool{}}
	l.extraFns = append(l.extraFns, fn)
	l.extraFns = append(l.extraFns, inner.extraFns...)

	dst := l.newTemp()
	l.emit(&MakeClosure{Dst: dst, FnName: name})
	return Temp{Name: dst}
}

// lowerBlockExpr lowers a Block used in value position (the body of an
// if/match arm, or a lambda): every statement but a trailing bare
// ExprStmt is lowered for effect, and that trailing expression (if
// present) supplies the block's value.
func (l *Lowerer) lowerBlockExpr(b *ast.Block) Operand {
	if b == nil || len(b.Stmts) == 0 {
		return ConstBool{Value: false}
	}
	for _, s := range b.Stmts[:len(b.Stmts)-1] {
		l.lowerStmt(s)
	}
	last := b.Stmts[len(b.Stmts)-1]
	if es, ok := last.(*ast.ExprStmt); ok {
		return l.lowerExpr(es.X)
	}
	l.lowerStmt(last)
	return ConstBool{Value: false}
}
