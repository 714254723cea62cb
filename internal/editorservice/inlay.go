package editorservice

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/project"
)

// InlayHint is a small piece of rendered-but-not-written type information
// shown inline at a source position, per spec: a `let` with no explicit
// annotation gets its inferred type rendered after the binding name.
type InlayHint struct {
	Pos   ast.Pos
	Label string
}

// InlayHints returns one hint per `let` binding in path lacking an
// explicit type annotation, using the checker's inferred type for that
// binding's NodeID.
func InlayHints(ctx *project.Context, path string) []InlayHint {
	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil || doc.Checker == nil {
		return nil
	}
	var hints []InlayHint
	for _, stmt := range doc.AST.Body {
		collectInlayHints(stmt, doc, &hints)
	}
	return hints
}

func collectInlayHints(n ast.Node, doc *project.Document, hints *[]InlayHint) {
	if n == nil {
		return
	}
	if let, ok := n.(*ast.Let); ok {
		_, hasHole := let.Annotation.(*ast.TypeHole)
		if let.Annotation == nil || hasHole {
			if t, ok := doc.Checker.InferredLets[let.NodeID()]; ok {
				at := let.Position()
				at.Offset += len(let.Name) + len("let ")
				at.Column += len(let.Name) + len("let ")
				*hints = append(*hints, InlayHint{Pos: at, Label: ": " + t.String()})
			}
		}
	}
	for _, c := range children(n) {
		collectInlayHints(c, doc, hints)
	}
}
