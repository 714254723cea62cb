package editorservice

import (
	"sort"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/project"
	"github.com/lumina-lang/lumina/internal/runtimeboundary"
)

// CompletionKind classifies a CompletionItem for client-side icon choice.
type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionType
	CompletionVariable
	CompletionFunction
	CompletionModule
)

// CompletionItem is one candidate offered at a cursor position.
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// keywords is the reserved-word surface recognized by the lexer.
var keywords = []string{
	"fn", "let", "mut", "if", "else", "while", "for", "in", "match",
	"struct", "enum", "type", "trait", "impl", "return", "import", "pub",
	"move", "await", "async", "is", "true", "false", "self", "const", "as",
}

// builtinTypeNames is the primitive type surface recognized by the checker.
var builtinTypeNames = []string{"i32", "i64", "f64", "bool", "string", "void", "usize"}

// Complete returns every candidate in scope at pos, filtered by prefix
// (a case-sensitive label prefix match; empty prefix returns everything).
// Candidates are keywords, built-in type names, locally visible bindings
// and declarations, and the members of any imported runtime module.
func Complete(ctx *project.Context, path string, pos ast.Pos, prefix string) []CompletionItem {
	var out []CompletionItem

	for _, kw := range keywords {
		out = append(out, CompletionItem{Label: kw, Kind: CompletionKeyword})
	}
	for _, t := range builtinTypeNames {
		out = append(out, CompletionItem{Label: t, Kind: CompletionType})
	}

	doc, ok := ctx.Document(path)
	if ok && doc.AST != nil {
		out = append(out, topLevelCompletions(doc.AST)...)
		if fn := enclosingFnDecl(doc.AST, pos); fn != nil {
			out = append(out, localCompletions(fn)...)
		}
		for _, stmt := range doc.AST.Body {
			imp, ok := stmt.(*ast.Import)
			if !ok {
				continue
			}
			out = append(out, importedModuleCompletions(imp)...)
		}
	}

	if prefix == "" {
		sortCompletions(out)
		return out
	}

	filtered := out[:0]
	for _, item := range out {
		if strings.HasPrefix(item.Label, prefix) {
			filtered = append(filtered, item)
		}
	}
	sortCompletions(filtered)
	return filtered
}

func topLevelCompletions(prog *ast.Program) []CompletionItem {
	var out []CompletionItem
	for _, stmt := range prog.Body {
		switch d := stmt.(type) {
		case *ast.FnDecl:
			out = append(out, CompletionItem{Label: d.Name, Kind: CompletionFunction})
		case *ast.StructDecl:
			out = append(out, CompletionItem{Label: d.Name, Kind: CompletionType})
		case *ast.EnumDecl:
			out = append(out, CompletionItem{Label: d.Name, Kind: CompletionType})
			for _, v := range d.Variants {
				out = append(out, CompletionItem{Label: d.Name + "::" + v.Name, Kind: CompletionFunction})
			}
		case *ast.TypeDecl:
			out = append(out, CompletionItem{Label: d.Name, Kind: CompletionType})
		case *ast.TraitDecl:
			out = append(out, CompletionItem{Label: d.Name, Kind: CompletionType})
		}
	}
	return out
}

// localCompletions walks fn's body for let bindings and parameters in
// scope. It does not attempt block-scoped shadowing precision; every
// binding reachable anywhere in fn is offered, which is the same
// imprecision the teacher's REPL completer accepts for a single function.
func localCompletions(fn *ast.FnDecl) []CompletionItem {
	var out []CompletionItem
	for _, p := range fn.Params {
		out = append(out, CompletionItem{Label: p.Name, Kind: CompletionVariable})
	}
	if fn.Body != nil {
		walkLets(fn.Body.Stmts, &out)
	}
	return out
}

func walkLets(stmts []ast.Stmt, out *[]CompletionItem) {
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Let:
			*out = append(*out, CompletionItem{Label: v.Name, Kind: CompletionVariable})
		case *ast.LetTuple:
			for _, n := range v.Names {
				*out = append(*out, CompletionItem{Label: n, Kind: CompletionVariable})
			}
		case *ast.Block:
			walkLets(v.Stmts, out)
		case *ast.If:
			if v.Then != nil {
				walkLets(v.Then.Stmts, out)
			}
			if elseBlock, ok := v.Else.(*ast.Block); ok {
				walkLets(elseBlock.Stmts, out)
			}
		case *ast.While:
			if v.Body != nil {
				walkLets(v.Body.Stmts, out)
			}
		case *ast.For:
			*out = append(*out, CompletionItem{Label: v.Binder, Kind: CompletionVariable})
			if v.Body != nil {
				walkLets(v.Body.Stmts, out)
			}
		}
	}
}

// importedModuleCompletions offers the documented function names of a
// runtime module import (e.g. "str", "io") as call candidates, and the
// module name itself for member access.
func importedModuleCompletions(imp *ast.Import) []CompletionItem {
	mod, ok := runtimeboundary.Lookup(moduleBaseName(imp.Path))
	if !ok {
		return nil
	}
	alias := mod.Name
	if imp.Alias != "" {
		alias = imp.Alias
	}
	out := []CompletionItem{{Label: alias, Kind: CompletionModule}}
	for _, fn := range mod.Functions {
		out = append(out, CompletionItem{
			Label:  alias + "." + fn.Name,
			Kind:   CompletionFunction,
			Detail: mod.Name,
		})
	}
	return out
}

func moduleBaseName(importPath string) string {
	importPath = strings.TrimPrefix(importPath, "std/")
	if i := strings.LastIndexByte(importPath, '/'); i >= 0 {
		importPath = importPath[i+1:]
	}
	return strings.TrimSuffix(importPath, ".lm")
}

func sortCompletions(items []CompletionItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
}
