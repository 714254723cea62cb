package mono

import "github.com/lumina-lang/lumina/internal/ast"

// rewriteStmt and rewriteExpr walk every statement/function body in the
// program looking for calls to a known generic function, rewriting each
// in place to call its specialized instantiation. Unlike the substitution
// walker in clone.go (which builds brand-new nodes for a clone), this
// walker mutates the original tree directly since call sites outside any
// generic body are never substituted, only redirected.
func (m *Monomorphizer) rewriteStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.FnDecl:
		if n.Body != nil {
			m.rewriteStmt(n.Body)
		}
	case *ast.ImplDecl:
		for _, method := range n.Methods {
			m.rewriteStmt(method)
		}
	case *ast.Let:
		m.rewriteExprInPlace(&n.Value)
	case *ast.LetTuple:
		m.rewriteExprInPlace(&n.Value)
	case *ast.Return:
		m.rewriteExprInPlace(&n.Value)
	case *ast.If:
		m.rewriteExprInPlace(&n.Cond)
		m.rewriteStmt(n.Then)
		if n.Else != nil {
			m.rewriteStmt(n.Else)
		}
	case *ast.While:
		m.rewriteExprInPlace(&n.Cond)
		m.rewriteStmt(n.Body)
	case *ast.WhileLet:
		m.rewriteExprInPlace(&n.Value)
		m.rewriteStmt(n.Body)
	case *ast.For:
		m.rewriteExprInPlace(&n.Iter)
		m.rewriteStmt(n.Body)
	case *ast.MatchStmt:
		m.rewriteExprInPlace(&n.Subject)
		for i := range n.Arms {
			m.rewriteExprInPlace(&n.Arms[i].Body)
			if n.Arms[i].Guard != nil {
				m.rewriteExprInPlace(&n.Arms[i].Guard)
			}
		}
	case *ast.Assign:
		m.rewriteExprInPlace(&n.Target)
		m.rewriteExprInPlace(&n.Value)
	case *ast.ExprStmt:
		m.rewriteExprInPlace(&n.X)
	case *ast.Block:
		for _, stmt := range n.Stmts {
			m.rewriteStmt(stmt)
		}
	}
}

// rewriteExprInPlace descends into e's children and, if e itself is a
// call to a known generic, replaces *e with the rewritten call.
func (m *Monomorphizer) rewriteExprInPlace(e *ast.Expr) {
	if e == nil || *e == nil {
		return
	}
	switch n := (*e).(type) {
	case *ast.Binary:
		m.rewriteExprInPlace(&n.Left)
		m.rewriteExprInPlace(&n.Right)
	case *ast.Unary:
		m.rewriteExprInPlace(&n.X)
	case *ast.Call:
		for i := range n.Args {
			m.rewriteExprInPlace(&n.Args[i])
		}
		m.rewriteExprInPlace(&n.Callee)
		m.tryRewriteCall(n)
	case *ast.Member:
		m.rewriteExprInPlace(&n.X)
	case *ast.StructLiteral:
		for i := range n.Fields {
			m.rewriteExprInPlace(&n.Fields[i].Value)
		}
	case *ast.ArrayLiteral:
		for i := range n.Elems {
			m.rewriteExprInPlace(&n.Elems[i])
		}
	case *ast.Index:
		m.rewriteExprInPlace(&n.X)
		m.rewriteExprInPlace(&n.Index)
	case *ast.MatchExpr:
		m.rewriteExprInPlace(&n.Subject)
		for i := range n.Arms {
			m.rewriteExprInPlace(&n.Arms[i].Body)
			if n.Arms[i].Guard != nil {
				m.rewriteExprInPlace(&n.Arms[i].Guard)
			}
		}
	case *ast.Try:
		m.rewriteExprInPlace(&n.X)
	case *ast.Move:
		m.rewriteExprInPlace(&n.X)
	case *ast.Await:
		m.rewriteExprInPlace(&n.X)
	case *ast.Range:
		m.rewriteExprInPlace(&n.Start)
		m.rewriteExprInPlace(&n.End)
	case *ast.Lambda:
		m.rewriteExprInPlace(&n.Body)
	case *ast.Tuple:
		for i := range n.Elems {
			m.rewriteExprInPlace(&n.Elems[i])
		}
	case *ast.Block:
		m.rewriteStmt(n)
	case *ast.InterpolatedString:
		for i := range n.Exprs {
			m.rewriteExprInPlace(&n.Exprs[i])
		}
	}
}

// tryRewriteCall redirects call to its specialized instantiation if its
// callee is a bare (unqualified, non-enum) reference to a known generic
// function with a recorded inference result.
func (m *Monomorphizer) tryRewriteCall(call *ast.Call) {
	if call.EnumName != "" {
		return
	}
	ident, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return
	}
	fn, known := m.generics[ident.Name]
	if !known {
		return
	}
	info, hasInfo := m.checker.InferredCalls[call.NodeID()]
	if !hasInfo {
		return
	}
	mangled, ok := m.instantiate(fn, info)
	if !ok {
		return
	}
	call.Callee = &ast.Identifier{Base: ident.Base, Name: mangled}
}
