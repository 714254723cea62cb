package editorservice

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
	"github.com/lumina-lang/lumina/internal/project"
)

// TextEdit replaces the span [Start, End) in a document with NewText.
type TextEdit struct {
	Path    string
	Start   ast.Pos
	End     ast.Pos
	NewText string
}

// WorkspaceEdit is the full set of edits a rename produces.
type WorkspaceEdit struct {
	Edits []TextEdit
}

// reservedNames mirrors the lexer's keyword set: a rename target that
// collides with one would be silently re-lexed as a keyword.
var reservedNames = func() map[string]bool {
	out := map[string]bool{}
	for _, kw := range keywords {
		out[kw] = true
	}
	return out
}()

// Rename computes the edits needed to rename the identifier at pos to
// newName, across its declaration and every reference to it within the
// enclosing function (module-level declarations rename only their own
// top-level declaration and same-document call sites, since
// internal/project does not maintain a precise cross-document reference
// index). It fails closed: an invalid identifier, a reserved word, or a
// name already bound in the same scope are all rejected rather than
// producing a partial edit.
func Rename(ctx *project.Context, path string, pos ast.Pos, newName string) (*WorkspaceEdit, error) {
	if !isValidIdentifier(newName) {
		return nil, fmt.Errorf("editorservice: %q is not a valid identifier", newName)
	}
	if reservedNames[newName] {
		return nil, fmt.Errorf("editorservice: %q is a reserved word", newName)
	}

	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil {
		return nil, fmt.Errorf("editorservice: no document at %s", path)
	}

	node := enclosing(doc.AST, pos)
	var oldName string
	var declNode ast.Node
	switch n := node.(type) {
	case *ast.Identifier:
		oldName = n.Name
	case *ast.Let:
		oldName, declNode = n.Name, n
	default:
		return nil, fmt.Errorf("editorservice: no renameable identifier at %s", pos)
	}

	if fn := findFnDecl(doc.AST, oldName); declNode == nil && fn != nil {
		return renameTopLevel(ctx, path, oldName, newName)
	}

	fn := enclosingFnDecl(doc.AST, pos)
	if fn == nil {
		return renameTopLevel(ctx, path, oldName, newName)
	}
	if conflictsInScope(fn, newName) {
		return nil, fmt.Errorf("editorservice: %q is already bound in this scope", newName)
	}

	var edits []TextEdit
	collectIdentifierEdits(fn, oldName, newName, path, &edits)
	// internal/ast's Let/LetTuple carry only a bare Name string, not
	// their own Identifier node, so the declaration site itself needs a
	// text-scan to locate (the first whole-word match of oldName at or
	// after the declaring node's position).
	if declNode == nil {
		declNode = findDeclNode(fn, oldName)
	}
	if declNode != nil {
		if declPos, ok := scanForName(doc.Source, declNode.Position().Offset, oldName); ok {
			edits = append(edits, identEdit(path, declPos, oldName, newName))
		}
	}
	return &WorkspaceEdit{Edits: edits}, nil
}

// findDeclNode searches fn's body for the Let/LetTuple binding that
// declares oldName.
func findDeclNode(fn *ast.FnDecl, oldName string) ast.Node {
	if fn.Body == nil {
		return nil
	}
	var found ast.Node
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if found != nil || n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.Let:
			if v.Name == oldName {
				found = v
				return
			}
		case *ast.LetTuple:
			for _, nm := range v.Names {
				if nm == oldName {
					found = v
					return
				}
			}
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(fn.Body)
	return found
}

// scanForName finds the first whole-word occurrence of name at or after
// byte offset from in src.
func scanForName(src string, from int, name string) (ast.Pos, bool) {
	for i := from; i+len(name) <= len(src); i++ {
		if src[i:i+len(name)] != name {
			continue
		}
		if i > 0 && isIdentByte(src[i-1]) {
			continue
		}
		if i+len(name) < len(src) && isIdentByte(src[i+len(name)]) {
			continue
		}
		return offsetToPos(src, i), true
	}
	return ast.Pos{}, false
}

func offsetToPos(src string, offset int) ast.Pos {
	line, col := 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return ast.Pos{Offset: offset, Line: line, Column: col}
}

// renameTopLevel renames a module-level declaration (function, struct,
// enum, type, trait) and every same-document call site referencing it by
// name. Other documents that import this symbol are not rewritten.
func renameTopLevel(ctx *project.Context, path, oldName, newName string) (*WorkspaceEdit, error) {
	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil {
		return nil, fmt.Errorf("editorservice: no document at %s", path)
	}
	for _, stmt := range doc.AST.Body {
		if declName(stmt) == newName {
			return nil, fmt.Errorf("editorservice: %q is already declared in %s", newName, path)
		}
	}
	var edits []TextEdit
	for _, stmt := range doc.AST.Body {
		if declName(stmt) == oldName {
			// stmt.Position() is the declaring keyword ("fn", "struct",
			// ...), not the name that follows it, so the name's own
			// offset still needs a text-scan.
			if declPos, ok := scanForName(doc.Source, stmt.Position().Offset, oldName); ok {
				edits = append(edits, identEdit(path, declPos, oldName, newName))
			}
		}
		collectIdentifierEdits(stmt, oldName, newName, path, &edits)
	}
	return &WorkspaceEdit{Edits: edits}, nil
}

func declName(stmt ast.Stmt) string {
	switch d := stmt.(type) {
	case *ast.FnDecl:
		return d.Name
	case *ast.StructDecl:
		return d.Name
	case *ast.EnumDecl:
		return d.Name
	case *ast.TypeDecl:
		return d.Name
	case *ast.TraitDecl:
		return d.Name
	}
	return ""
}

func identEdit(path string, at ast.Pos, oldName, newName string) TextEdit {
	end := at
	end.Offset += len(oldName)
	end.Column += len(oldName)
	return TextEdit{Path: path, Start: at, End: end, NewText: newName}
}

// conflictsInScope reports whether newName is already bound by fn's
// parameters or by a let binding anywhere in its body, which would make the rename
// shadow (and thus change the meaning of) existing code.
func conflictsInScope(fn *ast.FnDecl, newName string) bool {
	for _, p := range fn.Params {
		if p.Name == newName {
			return true
		}
	}
	var names []CompletionItem
	if fn.Body != nil {
		walkLets(fn.Body.Stmts, &names)
	}
	for _, n := range names {
		if n.Label == newName {
			return true
		}
	}
	return false
}

// collectIdentifierEdits walks n for every *ast.Identifier named oldName
// and records a rename edit for it.
func collectIdentifierEdits(n ast.Node, oldName, newName, path string, edits *[]TextEdit) {
	if n == nil {
		return
	}
	if ident, ok := n.(*ast.Identifier); ok && ident.Name == oldName {
		*edits = append(*edits, identEdit(path, ident.Position(), oldName, newName))
	}
	for _, c := range children(n) {
		collectIdentifierEdits(c, oldName, newName, path, edits)
	}
}

func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i == 0 && (c >= '0' && c <= '9') {
			return false
		}
		if !isIdentByte(c) {
			return false
		}
	}
	return lexer.LookupIdent(name, true) == lexer.IDENT
}
