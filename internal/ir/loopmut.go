package ir

import "github.com/lumina-lang/lumina/internal/ast"

// collectLoopMutated walks fn's body once, tracking loop nesting depth,
// and records every identifier assigned to while depth > 0. It runs
// before lowering so the lowerer already knows, before it emits the
// first instruction, which `let` bindings must become named mutable
// slots rather than SSA definitions even outside the loop itself (a
// variable declared before a loop and reassigned inside it must live in
// one slot for its entire scope, not just inside the loop body).
func collectLoopMutated(body *ast.Block) map[string]bool {
	c := &loopMutCollector{out: map[string]bool{}}
	c.walkBlock(body, 0)
	return c.out
}

type loopMutCollector struct {
	out map[string]bool
}

func (c *loopMutCollector) walkBlock(b *ast.Block, depth int) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		c.walkStmt(s, depth)
	}
}

func (c *loopMutCollector) walkStmt(s ast.Stmt, depth int) {
	switch n := s.(type) {
	case *ast.If:
		c.walkStmt(n.Then, depth)
		if n.Else != nil {
			c.walkStmt(n.Else, depth)
		}
	case *ast.While:
		c.walkStmt(n.Body, depth+1)
	case *ast.WhileLet:
		c.walkStmt(n.Body, depth+1)
	case *ast.For:
		c.walkStmt(n.Body, depth+1)
	case *ast.MatchStmt:
		for _, arm := range n.Arms {
			c.walkExprForAssign(arm.Body, depth)
		}
	case *ast.Assign:
		if depth > 0 {
			if ident, ok := n.Target.(*ast.Identifier); ok {
				c.out[ident.Name] = true
			}
		}
	case *ast.Block:
		c.walkBlock(n, depth)
	}
}

// walkExprForAssign descends into a match arm body (an expression, since
// MatchArm.Body is ast.Expr) looking for nested blocks that might assign
// within a loop — match arms bodies are ordinarily a single expression,
// but can be a Block when the arm has multiple statements.
func (c *loopMutCollector) walkExprForAssign(e ast.Expr, depth int) {
	if blk, ok := e.(*ast.Block); ok {
		c.walkBlock(blk, depth)
	}
}
