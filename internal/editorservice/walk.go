package editorservice

import "github.com/lumina-lang/lumina/internal/ast"

// enclosing returns the smallest node in prog whose source position is
// at or before pos, found by repeatedly descending into whichever direct
// child starts closest to (but not after) pos. internal/ast carries no
// span end on its generic Node interface — only Position() (the start)
// — so this is an approximation rather than true containment; it is
// accurate for well-formed, non-overlapping programs (the only kind the
// parser produces) because a child's start can never precede its
// parent's.
func enclosing(prog *ast.Program, pos ast.Pos) ast.Node {
	var best ast.Node
	for _, s := range prog.Body {
		if s.Position().Offset <= pos.Offset {
			if best == nil || s.Position().Offset >= best.Position().Offset {
				best = s
			}
		}
	}
	if best == nil {
		return prog
	}
	return descend(best, pos)
}

func descend(n ast.Node, pos ast.Pos) ast.Node {
	var best ast.Node
	for _, c := range children(n) {
		if c == nil {
			continue
		}
		if c.Position().Offset <= pos.Offset {
			if best == nil || c.Position().Offset >= best.Position().Offset {
				best = c
			}
		}
	}
	if best == nil {
		return n
	}
	return descend(best, pos)
}

// children returns n's direct syntactic children, where "direct" means
// "the next node any editor feature would want to recurse into" rather
// than every field reachable by reflection.
func children(n ast.Node) []ast.Node {
	switch v := n.(type) {
	case *ast.FnDecl:
		if v.Body != nil {
			return []ast.Node{v.Body}
		}
	case *ast.ImplDecl:
		out := make([]ast.Node, len(v.Methods))
		for i, m := range v.Methods {
			out[i] = m
		}
		return out
	case *ast.Block:
		out := make([]ast.Node, len(v.Stmts))
		for i, s := range v.Stmts {
			out[i] = s
		}
		return out
	case *ast.Let:
		if v.Annotation != nil {
			return []ast.Node{v.Annotation, v.Value}
		}
		return []ast.Node{v.Value}
	case *ast.LetTuple:
		return []ast.Node{v.Value}
	case *ast.Return:
		if v.Value != nil {
			return []ast.Node{v.Value}
		}
	case *ast.If:
		out := []ast.Node{v.Cond, v.Then}
		if v.Else != nil {
			out = append(out, v.Else)
		}
		return out
	case *ast.While:
		return []ast.Node{v.Cond, v.Body}
	case *ast.WhileLet:
		return []ast.Node{v.Value, v.Body}
	case *ast.For:
		return []ast.Node{v.Iter, v.Body}
	case *ast.MatchStmt:
		return matchArmChildren(v.Subject, v.Arms)
	case *ast.MatchExpr:
		return matchArmChildren(v.Subject, v.Arms)
	case *ast.Assign:
		return []ast.Node{v.Target, v.Value}
	case *ast.ExprStmt:
		return []ast.Node{v.X}
	case *ast.Binary:
		return []ast.Node{v.Left, v.Right}
	case *ast.Unary:
		return []ast.Node{v.X}
	case *ast.Call:
		out := []ast.Node{v.Callee}
		for _, a := range v.Args {
			out = append(out, a)
		}
		return out
	case *ast.Member:
		return []ast.Node{v.X}
	case *ast.StructLiteral:
		out := make([]ast.Node, len(v.Fields))
		for i, f := range v.Fields {
			out[i] = f.Value
		}
		return out
	case *ast.ArrayLiteral:
		out := make([]ast.Node, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = e
		}
		return out
	case *ast.Index:
		return []ast.Node{v.X, v.Index}
	case *ast.IsExpr:
		return []ast.Node{v.X}
	case *ast.Try:
		return []ast.Node{v.X}
	case *ast.Move:
		return []ast.Node{v.X}
	case *ast.Await:
		return []ast.Node{v.X}
	case *ast.Range:
		return []ast.Node{v.Start, v.End}
	case *ast.Lambda:
		return []ast.Node{v.Body}
	case *ast.Tuple:
		out := make([]ast.Node, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = e
		}
		return out
	case *ast.InterpolatedString:
		out := make([]ast.Node, len(v.Exprs))
		for i, e := range v.Exprs {
			out[i] = e
		}
		return out
	}
	return nil
}

func matchArmChildren(subject ast.Expr, arms []ast.MatchArm) []ast.Node {
	out := []ast.Node{subject}
	for _, a := range arms {
		if a.Guard != nil {
			out = append(out, a.Guard)
		}
		out = append(out, a.Body)
	}
	return out
}

// enclosingFnDecl returns the *ast.FnDecl that directly contains pos, if
// any — used by completion and rename's scope conflict check.
func enclosingFnDecl(prog *ast.Program, pos ast.Pos) *ast.FnDecl {
	var found *ast.FnDecl
	for _, s := range prog.Body {
		fn, ok := s.(*ast.FnDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if fn.Position().Offset <= pos.Offset {
			if found == nil || fn.Position().Offset >= found.Position().Offset {
				found = fn
			}
		}
	}
	return found
}
