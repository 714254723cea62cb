package editorservice

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/project"
)

// CodeAction is one proposed fix, either diagnostic-driven (Diagnostic
// is non-nil) or selection-driven (a refactor offered regardless of
// diagnostics, such as extract-to-local).
type CodeAction struct {
	Title      string
	Edit       WorkspaceEdit
	Diagnostic *diagnostic.Diagnostic
}

// CodeActions returns the fixes available at pos: diagnostic-attached
// quick fixes for whatever overlaps pos, plus selection-based refactors
// when [start, end) spans an extractable expression.
func CodeActions(ctx *project.Context, path string, start, end ast.Pos) ([]CodeAction, error) {
	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil {
		return nil, fmt.Errorf("editorservice: no document at %s", path)
	}

	var actions []CodeAction
	for _, d := range doc.Diagnostics {
		if !spanContains(d.Location, start) {
			continue
		}
		if a, ok := quickFixFor(doc, d); ok {
			actions = append(actions, a)
		}
	}

	if start.Offset != end.Offset {
		if a, ok := extractToLocal(doc, path, start, end); ok {
			actions = append(actions, a)
		}
	}

	if hole := enclosingTypeHole(doc.AST, start); hole != nil {
		if a, ok := replaceTypeHole(doc, path, hole); ok {
			actions = append(actions, a)
		}
	}

	return actions, nil
}

func spanContains(span ast.Span, pos ast.Pos) bool {
	return span.Start.Offset <= pos.Offset && pos.Offset <= span.End.Offset
}

// quickFixFor maps a known diagnostic code to its single-edit fix.
func quickFixFor(doc *project.Document, d *diagnostic.Diagnostic) (CodeAction, bool) {
	switch d.Code {
	case "MISSING_SEMICOLON":
		return CodeAction{
			Title: "Insert missing ';'",
			Edit: WorkspaceEdit{Edits: []TextEdit{
				{Path: doc.Path, Start: d.Location.Start, End: d.Location.Start, NewText: ";"},
			}},
			Diagnostic: d,
		}, true
	case "UNUSED_BINDING":
		name := unusedBindingName(d.Message)
		if name == "" || strings.HasPrefix(name, "_") {
			return CodeAction{}, false
		}
		return CodeAction{
			Title: fmt.Sprintf("Prefix '%s' with '_'", name),
			Edit: WorkspaceEdit{Edits: []TextEdit{
				{Path: doc.Path, Start: d.Location.Start, End: d.Location.Start, NewText: "_"},
			}},
			Diagnostic: d,
		}, true
	case "SEM-UNDEF-IDENT":
		name := undefinedName(d.Message)
		if name == "" {
			return CodeAction{}, false
		}
		decl := fmt.Sprintf("fn %s() -> void {}\n\n", name)
		return CodeAction{
			Title: fmt.Sprintf("Declare function '%s'", name),
			Edit: WorkspaceEdit{Edits: []TextEdit{
				{Path: doc.Path, Start: ast.Pos{File: doc.Path}, End: ast.Pos{File: doc.Path}, NewText: decl},
			}},
			Diagnostic: d,
		}, true
	case "SEM-UNDEF-TYPE":
		name := undefinedName(d.Message)
		if name == "" {
			return CodeAction{}, false
		}
		decl := fmt.Sprintf("struct %s {}\n\n", name)
		return CodeAction{
			Title: fmt.Sprintf("Declare struct '%s'", name),
			Edit: WorkspaceEdit{Edits: []TextEdit{
				{Path: doc.Path, Start: ast.Pos{File: doc.Path}, End: ast.Pos{File: doc.Path}, NewText: decl},
			}},
			Diagnostic: d,
		}, true
	}
	return CodeAction{}, false
}

// unusedBindingName extracts the quoted identifier out of an
// UNUSED_BINDING message of the form `"x" is never used`.
func unusedBindingName(msg string) string {
	return quotedName(msg)
}

func undefinedName(msg string) string {
	return quotedName(msg)
}

func quotedName(msg string) string {
	first := strings.IndexByte(msg, '"')
	if first < 0 {
		return ""
	}
	rest := msg[first+1:]
	second := strings.IndexByte(rest, '"')
	if second < 0 {
		return ""
	}
	return rest[:second]
}

// extractToLocal offers to bind the selected expression text to a new
// `let` above its enclosing statement. It is a textual transform (the
// selection is taken verbatim, not re-derived from the AST) so it works
// uniformly across every expression kind without a per-node renderer.
func extractToLocal(doc *project.Document, path string, start, end ast.Pos) (CodeAction, bool) {
	if start.Offset < 0 || end.Offset > len(doc.Source) || start.Offset >= end.Offset {
		return CodeAction{}, false
	}
	node := enclosing(doc.AST, start)
	if _, ok := node.(ast.Expr); !ok {
		return CodeAction{}, false
	}
	selected := doc.Source[start.Offset:end.Offset]
	stmtStart := lineStart(doc.Source, start.Offset)
	indent := leadingIndent(doc.Source, stmtStart)
	decl := fmt.Sprintf("%slet extracted = %s;\n", indent, selected)
	insertAt := ast.Pos{File: path, Offset: stmtStart, Line: start.Line, Column: 1}

	return CodeAction{
		Title: "Extract to local",
		Edit: WorkspaceEdit{Edits: []TextEdit{
			{Path: path, Start: insertAt, End: insertAt, NewText: decl},
			{Path: path, Start: start, End: end, NewText: "extracted"},
		}},
	}, true
}

func lineStart(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	i := strings.LastIndexByte(src[:offset], '\n')
	return i + 1
}

func leadingIndent(src string, lineStartOffset int) string {
	i := lineStartOffset
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return src[lineStartOffset:i]
}

// enclosingTypeHole returns the *ast.TypeHole at pos, if any.
func enclosingTypeHole(prog *ast.Program, pos ast.Pos) *ast.TypeHole {
	node := enclosing(prog, pos)
	if hole, ok := node.(*ast.TypeHole); ok {
		return hole
	}
	return nil
}

// replaceTypeHole finds the let binding owning hole and offers to
// replace its `_` annotation with the checker's inferred type for that
// binding.
func replaceTypeHole(doc *project.Document, path string, hole *ast.TypeHole) (CodeAction, bool) {
	for _, stmt := range doc.AST.Body {
		if let, ok := findLetWithHole(stmt, hole); ok {
			t, ok := doc.Checker.InferredLets[let.NodeID()]
			if !ok {
				return CodeAction{}, false
			}
			return CodeAction{
				Title: fmt.Sprintf("Fill type hole with '%s'", t.String()),
				Edit: WorkspaceEdit{Edits: []TextEdit{
					{Path: path, Start: hole.Position(), End: holeEnd(hole), NewText: t.String()},
				}},
			}, true
		}
	}
	return CodeAction{}, false
}

func holeEnd(hole *ast.TypeHole) ast.Pos {
	end := hole.Position()
	end.Offset++
	end.Column++
	return end
}

func findLetWithHole(n ast.Node, hole *ast.TypeHole) (*ast.Let, bool) {
	if let, ok := n.(*ast.Let); ok {
		if h, isHole := let.Annotation.(*ast.TypeHole); isHole && h == hole {
			return let, true
		}
	}
	for _, c := range children(n) {
		if let, ok := findLetWithHole(c, hole); ok {
			return let, true
		}
	}
	return nil, false
}
