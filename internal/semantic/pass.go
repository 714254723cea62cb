package semantic

import "github.com/lumina-lang/lumina/internal/ast"

// hoist is the analyzer's first pass: it walks every top-level
// declaration and defines its name in the global scope before the
// second pass visits any statement body, so forward references (a
// function calling one declared later in the file) resolve correctly.
func (a *Analyzer) hoist(prog *ast.Program) {
	for _, stmt := range prog.Body {
		switch n := stmt.(type) {
		case *ast.FnDecl:
			a.global.Define(n.Name, KindFunc, n.Visibility, n.Position())
		case *ast.StructDecl:
			a.global.Define(n.Name, KindStruct, n.Visibility, n.Position())
		case *ast.EnumDecl:
			a.global.Define(n.Name, KindEnum, n.Visibility, n.Position())
			for _, v := range n.Variants {
				a.enumVariants[n.Name+"."+v.Name] = true
			}
		case *ast.TraitDecl:
			a.global.Define(n.Name, KindTrait, n.Visibility, n.Position())
		case *ast.ImplDecl:
			for _, m := range n.Methods {
				// Methods live in their impl's own namespace, not the
				// global scope, so they are recorded in implMethods instead;
				// the second pass does not consult this table.
				a.implMethods[implKey(n, m.Name)] = m
			}
		}
	}
}

func implKey(impl *ast.ImplDecl, method string) string {
	return impl.ForType.String() + "::" + method
}
