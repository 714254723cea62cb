package stack

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// wasmType resolves t to a stack-machine value type, defaulting to i32
// for anything this subset doesn't specifically recognize.
func wasmType(t ast.Type) string {
	named, ok := t.(*ast.NamedType)
	if !ok {
		return "i32"
	}
	switch named.Name {
	case "f64", "f32", "float":
		return "f64"
	case "i64":
		return "i64"
	case "bool", "i32", "usize", "int":
		return "i32"
	default:
		return "i32"
	}
}

// isNumericType reports whether t is one of the restricted subset's
// primitive int/float/bool types — the only shapes this generator
// actually knows how to carry through a function signature.
func isNumericType(t ast.Type) bool {
	named, ok := t.(*ast.NamedType)
	if !ok {
		return false
	}
	switch named.Name {
	case "f64", "f32", "float", "i64", "bool", "i32", "usize", "int":
		return true
	default:
		return false
	}
}

func (e *emitter) emitFunc(fn *ast.FnDecl) {
	e.locals = map[string]bool{}
	var sig string
	sigUnsupported := false
	for _, p := range fn.Params {
		e.locals[p.Name] = true
		if !isNumericType(p.Type) {
			e.flagUnsupportedType(fn.Position(), fmt.Sprintf("parameter %q of type %s", p.Name, p.Type))
			sigUnsupported = true
		}
		sig += fmt.Sprintf(" (param $%s %s)", p.Name, wasmType(p.Type))
	}
	resultType := ""
	if fn.ReturnType != nil {
		if named, ok := fn.ReturnType.(*ast.NamedType); !ok || named.Name != "void" {
			if !isNumericType(fn.ReturnType) {
				e.flagUnsupportedType(fn.Position(), fmt.Sprintf("return type %s", fn.ReturnType))
				sigUnsupported = true
			}
			resultType = fmt.Sprintf(" (result %s)", wasmType(fn.ReturnType))
		}
	}
	e.writef("  (func $%s%s%s\n", fn.Name, sig, resultType)
	if sigUnsupported {
		e.write("    unreachable\n")
	}
	e.collectLocals(fn.Body)
	for name := range e.declaredLocals {
		if !e.locals[name] {
			e.writef("    (local $%s %s)\n", name, e.declaredLocals[name])
		}
	}
	e.emitBlock(fn.Body)
	e.write("  )\n")
	e.writef("  (export %q (func $%s))\n", fn.Name, fn.Name)
}

// collectLocals tracks non-parameter locals this function needs,
// gathered in one pre-pass so every `(local ...)` declaration can
// precede the function body as the text format requires.
func (e *emitter) collectLocals(b *ast.Block) {
	e.declaredLocals = map[string]string{}
	var walk func(s ast.Stmt)
	walk = func(s ast.Stmt) {
		switch n := s.(type) {
		case *ast.Let:
			if !e.locals[n.Name] {
				e.declaredLocals[n.Name] = "i32" // every non-parameter local is declared i32
			}
		case *ast.If:
			e.walkBlockForLocals(n.Then, walk)
			if n.Else != nil {
				walk(n.Else)
			}
		case *ast.While:
			e.walkBlockForLocals(n.Body, walk)
		case *ast.Block:
			e.walkBlockForLocals(n, walk)
		}
	}
	e.walkBlockForLocals(b, walk)
}

func (e *emitter) walkBlockForLocals(b *ast.Block, walk func(ast.Stmt)) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walk(s)
	}
}

func (e *emitter) emitBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		e.emitStmt(s)
	}
}

func (e *emitter) emitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Let:
		e.locals[n.Name] = true
		e.emitExpr(n.Value)
		e.writef("    local.set $%s\n", n.Name)

	case *ast.Return:
		if n.Value != nil {
			e.emitExpr(n.Value)
		}
		e.write("    return\n")

	case *ast.If:
		e.emitExpr(n.Cond)
		e.write("    (if\n      (then\n")
		e.emitBlock(n.Then)
		e.write("      )\n")
		if n.Else != nil {
			e.write("      (else\n")
			e.emitStmt(n.Else)
			e.write("      )\n")
		}
		e.write("    )\n")

	case *ast.While:
		e.write("    (block $break\n      (loop $continue\n")
		e.emitExpr(n.Cond)
		e.write("        i32.eqz\n        br_if $break\n")
		e.emitBlock(n.Body)
		e.write("        br $continue\n      )\n    )\n")

	case *ast.Assign:
		if ident, ok := n.Target.(*ast.Identifier); ok && n.Op == "=" {
			e.emitExpr(n.Value)
			e.writef("    local.set $%s\n", ident.Name)
			return
		}
		e.unsupported(n.Position(), "compound or non-local assignment")

	case *ast.ExprStmt:
		e.emitExpr(n.X)

	case *ast.Block:
		e.emitBlock(n)

	default:
		e.unsupported(s.Position(), fmt.Sprintf("%T statement", s))
	}
}

func (e *emitter) emitExpr(expr ast.Expr) {
	switch n := expr.(type) {
	case *ast.Literal:
		e.emitLiteral(n)

	case *ast.Identifier:
		e.writef("    local.get $%s\n", n.Name)

	case *ast.Binary:
		e.emitExpr(n.Left)
		e.emitExpr(n.Right)
		e.emitBinOp(n)

	case *ast.Unary:
		e.emitUnary(n)

	case *ast.Call:
		for _, a := range n.Args {
			e.emitExpr(a)
		}
		if ident, ok := n.Callee.(*ast.Identifier); ok {
			e.writef("    call $%s\n", ident.Name)
			return
		}
		e.unsupported(n.Position(), "non-identifier callee")

	default:
		e.unsupported(expr.Position(), fmt.Sprintf("%T expression", expr))
	}
}

func (e *emitter) emitLiteral(n *ast.Literal) {
	switch n.Kind {
	case ast.LitNumber:
		e.writef("    i32.const %d\n", n.IVal)
	case ast.LitFloat:
		e.writef("    f64.const %s\n", formatFloat(n.FVal))
	case ast.LitBoolean:
		v := 0
		if n.BVal {
			v = 1
		}
		e.writef("    i32.const %d\n", v)
	default:
		e.unsupported(n.Position(), "non-numeric literal")
	}
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

func (e *emitter) exprIsFloat(expr ast.Expr) bool {
	if e.checker == nil {
		return false
	}
	t, ok := e.checker.InferredExprs[expr.NodeID()]
	if !ok {
		return false
	}
	return t.String() == "f64"
}

func (e *emitter) emitBinOp(n *ast.Binary) {
	isFloat := e.exprIsFloat(n.Left) || e.exprIsFloat(n.Right)
	prefix := "i32"
	if isFloat {
		prefix = "f64"
	}
	switch n.Op {
	case "+":
		e.writef("    %s.add\n", prefix)
	case "-":
		e.writef("    %s.sub\n", prefix)
	case "*":
		e.writef("    %s.mul\n", prefix)
	case "/":
		if isFloat {
			e.write("    f64.div\n")
		} else {
			e.write("    i32.div_s\n")
		}
	case "==":
		e.writef("    %s.eq\n", prefix)
	case "!=":
		e.writef("    %s.ne\n", prefix)
	case "<":
		if isFloat {
			e.write("    f64.lt\n")
		} else {
			e.write("    i32.lt_s\n")
		}
	case "<=":
		if isFloat {
			e.write("    f64.le\n")
		} else {
			e.write("    i32.le_s\n")
		}
	case ">":
		if isFloat {
			e.write("    f64.gt\n")
		} else {
			e.write("    i32.gt_s\n")
		}
	case ">=":
		if isFloat {
			e.write("    f64.ge\n")
		} else {
			e.write("    i32.ge_s\n")
		}
	case "&&", "and":
		e.write("    i32.and\n")
	case "||", "or":
		e.write("    i32.or\n")
	default:
		e.unsupported(n.Position(), fmt.Sprintf("binary operator %q", n.Op))
	}
}

func (e *emitter) emitUnary(n *ast.Unary) {
	switch n.Op {
	case "-":
		e.write("    i32.const 0\n")
		e.emitExpr(n.X)
		e.write("    i32.sub\n")
	case "!", "not":
		e.emitExpr(n.X)
		e.write("    i32.eqz\n")
	default:
		e.unsupported(n.Position(), fmt.Sprintf("unary operator %q", n.Op))
	}
}
