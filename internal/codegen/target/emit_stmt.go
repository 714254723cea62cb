package target

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

func (e *emitter) emitBlockStmts(b *ast.Block) {
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
		e.mark(n.Position())
		e.writeIndent()
		kw := "const"
		if n.Mut {
			kw = "let"
		}
		e.writef("%s %s = %s;\n", kw, n.Name, e.emitExpr(n.Value))

	case *ast.LetTuple:
		e.mark(n.Position())
		e.writeIndent()
		e.writef("const [%s] = %s;\n", joinNames(n.Names), e.emitExpr(n.Value))

	case *ast.Return:
		e.mark(n.Position())
		e.writeIndent()
		if n.Value == nil {
			e.write("return;\n")
		} else {
			e.writef("return %s;\n", e.emitExpr(n.Value))
		}

	case *ast.If:
		e.mark(n.Position())
		e.writeIndent()
		e.writef("if (%s) {\n", e.emitExpr(n.Cond))
		e.indent++
		e.emitBlockStmts(n.Then)
		e.indent--
		e.writeIndent()
		if n.Else != nil {
			e.write("} else ")
			if blk, ok := n.Else.(*ast.Block); ok {
				e.write("{\n")
				e.indent++
				e.emitBlockStmts(blk)
				e.indent--
				e.writeIndent()
				e.write("}\n")
			} else {
				// an `else if` chain: Else is itself an *ast.If
				e.emitStmtInline(n.Else)
			}
		} else {
			e.write("}\n")
		}

	case *ast.While:
		e.mark(n.Position())
		e.writeIndent()
		e.writef("while (%s) {\n", e.emitExpr(n.Cond))
		e.indent++
		e.emitBlockStmts(n.Body)
		e.indent--
		e.writeIndent()
		e.write("}\n")

	case *ast.WhileLet:
		e.mark(n.Position())
		e.emitWhileLet(n)

	case *ast.For:
		e.mark(n.Position())
		e.emitFor(n)

	case *ast.MatchStmt:
		e.mark(n.Position())
		e.writeIndent()
		e.emitMatchSwitch(n.Subject, n.Arms, false)

	case *ast.Assign:
		e.mark(n.Position())
		e.writeIndent()
		e.writef("%s %s %s;\n", e.emitExpr(n.Target), n.Op, e.emitExpr(n.Value))

	case *ast.ExprStmt:
		e.mark(n.Position())
		e.writeIndent()
		e.writef("%s;\n", e.emitExpr(n.X))

	case *ast.Block:
		e.writeIndent()
		e.write("{\n")
		e.indent++
		e.emitBlockStmts(n)
		e.indent--
		e.writeIndent()
		e.write("}\n")
	}
}

// emitStmtInline renders a statement without its own leading indent,
// used for "} else if (...) {" chains so the else-if reads on one line
// the way a hand-written target file would.
func (e *emitter) emitStmtInline(s ast.Stmt) {
	ifStmt, ok := s.(*ast.If)
	if !ok {
		e.write("{\n")
		e.indent++
		e.emitStmt(s)
		e.indent--
		e.writeIndent()
		e.write("}\n")
		return
	}
	e.writef("if (%s) {\n", e.emitExpr(ifStmt.Cond))
	e.indent++
	e.emitBlockStmts(ifStmt.Then)
	e.indent--
	e.writeIndent()
	if ifStmt.Else != nil {
		e.write("} else ")
		if blk, ok := ifStmt.Else.(*ast.Block); ok {
			e.write("{\n")
			e.indent++
			e.emitBlockStmts(blk)
			e.indent--
			e.writeIndent()
			e.write("}\n")
		} else {
			e.emitStmtInline(ifStmt.Else)
		}
	} else {
		e.write("}\n")
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func (e *emitter) emitWhileLet(n *ast.WhileLet) {
	e.writeIndent()
	e.write("while (true) {\n")
	e.indent++
	e.writeIndent()
	subjectTmp := "__wl"
	e.writef("const %s = %s;\n", subjectTmp, e.emitExpr(n.Value))
	e.writeIndent()
	if ep, ok := n.Pattern.(*ast.EnumPattern); ok {
		e.writef("if (%s.$tag !== %q) { break; }\n", subjectTmp, ep.Variant)
		e.emitEnumBindings(subjectTmp, ep)
	} else {
		e.write("// unsupported while-let pattern; always breaks\nbreak;\n")
	}
	e.emitBlockStmts(n.Body)
	e.indent--
	e.writeIndent()
	e.write("}\n")
}

func (e *emitter) emitEnumBindings(subject string, ep *ast.EnumPattern) {
	switch len(ep.Bindings) {
	case 0:
	case 1:
		e.writeIndent()
		e.writef("const %s = %s.$payload;\n", ep.Bindings[0], subject)
	default:
		for i, name := range ep.Bindings {
			e.writeIndent()
			e.writef("const %s = %s.$payload[%d];\n", name, subject, i)
		}
	}
}

func (e *emitter) emitFor(n *ast.For) {
	if rng, ok := n.Iter.(*ast.Range); ok {
		cmp := "<"
		if rng.Inclusive {
			cmp = "<="
		}
		e.writeIndent()
		e.writef("for (let %s = %s; %s %s %s; %s++) {\n", n.Binder, e.emitExpr(rng.Start), n.Binder, cmp, e.emitExpr(rng.End), n.Binder)
		e.indent++
		e.emitBlockStmts(n.Body)
		e.indent--
		e.writeIndent()
		e.write("}\n")
		return
	}
	e.writeIndent()
	e.writef("for (const %s of %s) {\n", n.Binder, e.emitExpr(n.Iter))
	e.indent++
	e.emitBlockStmts(n.Body)
	e.indent--
	e.writeIndent()
	e.write("}\n")
}

// emitMatchSwitch renders a switch over arms' patterns. When every
// pattern is an EnumPattern (or a trailing wildcard/identifier default)
// the discriminant is subject.$tag per spec.md 4.8; when patterns are
// literals instead, the discriminant is the subject value itself.
// returnMode selects whether each arm's value is returned directly
// (used when the whole switch sits inside a value-producing IIFE) or
// rendered as a block of statements followed by break.
func (e *emitter) emitMatchSwitch(subjectExpr ast.Expr, arms []ast.MatchArm, returnMode bool) {
	subject := e.emitExpr(subjectExpr)
	discriminant := subject
	usesTag := false
	for _, arm := range arms {
		if _, ok := arm.Pattern.(*ast.EnumPattern); ok {
			usesTag = true
		}
	}
	if usesTag {
		discriminant = fmt.Sprintf("%s.$tag", subject)
	}
	e.writef("switch (%s) {\n", discriminant)
	e.indent++
	hasDefault := false
	for _, arm := range arms {
		e.emitMatchArm(subject, arm, returnMode, &hasDefault)
	}
	if !hasDefault {
		e.writeIndent()
		e.write("default:\n")
		e.indent++
		e.writeIndent()
		e.write("throw LuminaPanic(\"non-exhaustive match\");\n")
		e.indent--
	}
	e.indent--
	e.writeIndent()
	e.write("}\n")
}

func (e *emitter) emitMatchArm(subject string, arm ast.MatchArm, returnMode bool, hasDefault *bool) {
	switch p := arm.Pattern.(type) {
	case *ast.EnumPattern:
		e.writeIndent()
		e.writef("case %q: {\n", p.Variant)
		e.indent++
		e.emitEnumBindings(subject, p)
		e.emitArmGuardedBody(arm, returnMode)
		if !returnMode {
			e.writeIndent()
			e.write("break;\n")
		}
		e.indent--
		e.writeIndent()
		e.write("}\n")
	case *ast.LiteralPattern:
		e.writeIndent()
		e.writef("case %s: {\n", e.emitLiteral(p.Lit))
		e.indent++
		e.emitArmGuardedBody(arm, returnMode)
		if !returnMode {
			e.writeIndent()
			e.write("break;\n")
		}
		e.indent--
		e.writeIndent()
		e.write("}\n")
	default:
		// WildcardPattern, bare Identifier binding, or anything else:
		// treated as the default arm.
		*hasDefault = true
		e.writeIndent()
		e.write("default: {\n")
		e.indent++
		if ident, ok := p.(*ast.Identifier); ok {
			e.writeIndent()
			e.writef("const %s = %s;\n", ident.Name, subject)
		}
		e.emitArmGuardedBody(arm, returnMode)
		if !returnMode {
			e.writeIndent()
			e.write("break;\n")
		}
		e.indent--
		e.writeIndent()
		e.write("}\n")
	}
}

// emitArmGuardedBody renders one arm's body, as a return (returnMode)
// or as effect statements. A failing guard falls through to the
// non-exhaustive panic rather than trying a later arm — internal/ir's
// dtree-based lowering carries the same limitation for the same reason:
// neither this emitter nor internal/dtree models guard fallthrough.
func (e *emitter) emitArmGuardedBody(arm ast.MatchArm, returnMode bool) {
	emitBody := func() {
		if returnMode {
			e.writeIndent()
			e.writef("return %s;\n", e.emitExpr(arm.Body))
		} else if blk, ok := arm.Body.(*ast.Block); ok {
			e.emitBlockStmts(blk)
		} else {
			e.writeIndent()
			e.writef("%s;\n", e.emitExpr(arm.Body))
		}
	}
	if arm.Guard == nil {
		emitBody()
		return
	}
	e.writeIndent()
	e.writef("if (%s) {\n", e.emitExpr(arm.Guard))
	e.indent++
	emitBody()
	e.indent--
	e.writeIndent()
	if returnMode {
		e.write("}\n")
		e.writeIndent()
		e.write("throw LuminaPanic(\"non-exhaustive match\");\n")
	} else {
		e.write("} else { throw LuminaPanic(\"non-exhaustive match\"); }\n")
	}
}
