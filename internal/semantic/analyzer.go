package semantic

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
)

// Analyzer runs the hoist-then-walk two-pass analysis over a parsed
// program, collecting diagnostics for unknown references, unused
// bindings, and missing semicolons.
type Analyzer struct {
	global       *SymbolTable
	enumVariants map[string]bool
	implMethods  map[string]*ast.FnDecl
	diags        []*diagnostic.Diagnostic
}

// NewAnalyzer constructs an Analyzer ready to run Analyze.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		global:       NewSymbolTable(),
		enumVariants: map[string]bool{},
		implMethods:  map[string]*ast.FnDecl{},
	}
}

// Diagnostics returns every diagnostic collected during Analyze.
func (a *Analyzer) Diagnostics() []*diagnostic.Diagnostic { return a.diags }

func (a *Analyzer) errorAt(code, msg string, at ast.Pos) {
	a.diags = append(a.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Code:     code,
		Message:  msg,
		Source:   "lumina",
		Location: ast.Span{Start: at, End: at},
	})
}

func (a *Analyzer) warnAt(code, msg string, at ast.Pos) {
	a.diags = append(a.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Warning,
		Code:     code,
		Message:  msg,
		Source:   "lumina",
		Location: ast.Span{Start: at, End: at},
	})
}

// Analyze runs both passes over prog, plus the MISSING_SEMICOLON lint
// against the positions the parser recorded as having skipped a ';'.
func (a *Analyzer) Analyze(prog *ast.Program, missingSemicolons []ast.Span) {
	a.hoist(prog)

	// Imports bind their symbols/alias into the global scope so later
	// references don't misfire as undefined.
	for _, stmt := range prog.Body {
		if imp, ok := stmt.(*ast.Import); ok {
			if imp.Alias != "" {
				a.global.Define(imp.Alias, KindVar, ast.Public, imp.Position())
			}
			for _, sym := range imp.Symbols {
				a.global.Define(sym, KindVar, ast.Public, imp.Position())
			}
		}
	}

	for _, stmt := range prog.Body {
		a.walkTopLevel(stmt)
	}

	for _, span := range missingSemicolons {
		a.warnAt("MISSING_SEMICOLON", "statement is missing a trailing ';'", span.Start)
	}
}

func (a *Analyzer) walkTopLevel(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.FnDecl:
		a.walkFn(n, a.global)
	case *ast.ImplDecl:
		for _, m := range n.Methods {
			a.walkFn(m, a.global)
		}
	case *ast.TraitDecl:
		for _, m := range n.Methods {
			a.checkType(m.ReturnType, a.global)
			for _, p := range m.Params {
				a.checkType(p.Type, a.global)
			}
		}
	case *ast.StructDecl:
		for _, f := range n.Fields {
			a.checkType(f.Type, a.global)
		}
	case *ast.EnumDecl:
		for _, v := range n.Variants {
			for _, f := range v.Fields {
				a.checkType(f, a.global)
			}
		}
	case *ast.Import:
		// handled in Analyze before the main walk
	default:
		a.walkStmt(stmt, a.global)
	}
}

func (a *Analyzer) walkFn(fn *ast.FnDecl, outer *SymbolTable) {
	scope := NewEnclosedSymbolTable(outer)
	for _, tp := range fn.TypeParams {
		scope.Define(tp.Name, KindTypeParam, ast.Private, fn.Position())
	}
	for _, p := range fn.Params {
		a.checkType(p.Type, scope)
		scope.Define(p.Name, KindVar, ast.Private, p.Pos).Used = true
	}
	a.checkType(fn.ReturnType, scope)
	if fn.Body == nil {
		return // extern declaration
	}
	a.walkBlock(fn.Body, scope)
}

func (a *Analyzer) walkBlock(b *ast.Block, outer *SymbolTable) {
	scope := NewEnclosedSymbolTable(outer)
	for _, s := range b.Stmts {
		a.walkStmt(s, scope)
	}
	a.reportUnused(scope)
}

func (a *Analyzer) reportUnused(scope *SymbolTable) {
	for _, sym := range scope.LocalSymbols() {
		if sym.Kind == KindVar && !sym.Used && !sym.SuppressUnusedWarn {
			a.warnAt("UNUSED_BINDING", fmt.Sprintf("%q is never used", sym.Name), sym.DeclPos)
		}
	}
}

func (a *Analyzer) walkStmt(stmt ast.Stmt, scope *SymbolTable) {
	switch n := stmt.(type) {
	case *ast.Let:
		if n.Value != nil {
			a.walkExpr(n.Value, scope)
		}
		a.checkType(n.Annotation, scope)
		sym := scope.Define(n.Name, KindVar, ast.Private, n.Position())
		sym.SuppressUnusedWarn = n.SuppressUnusedWarn

	case *ast.LetTuple:
		a.walkExpr(n.Value, scope)
		for _, name := range n.Names {
			scope.Define(name, KindVar, ast.Private, n.Position())
		}

	case *ast.Return:
		if n.Value != nil {
			a.walkExpr(n.Value, scope)
		}

	case *ast.If:
		a.walkExpr(n.Cond, scope)
		a.walkStmt(n.Then, scope)
		if n.Else != nil {
			a.walkStmt(n.Else, scope)
		}

	case *ast.While:
		a.walkExpr(n.Cond, scope)
		a.walkStmt(n.Body, scope)

	case *ast.WhileLet:
		a.walkExpr(n.Value, scope)
		child := NewEnclosedSymbolTable(scope)
		a.bindPattern(n.Pattern, child)
		a.walkStmt(n.Body, child)

	case *ast.For:
		a.walkExpr(n.Iter, scope)
		child := NewEnclosedSymbolTable(scope)
		child.Define(n.Binder, KindVar, ast.Private, n.Position()).Used = true
		a.walkStmt(n.Body, child)

	case *ast.MatchStmt:
		a.walkExpr(n.Subject, scope)
		for _, arm := range n.Arms {
			child := NewEnclosedSymbolTable(scope)
			a.bindPattern(arm.Pattern, child)
			if arm.Guard != nil {
				a.walkExpr(arm.Guard, child)
			}
			a.walkExpr(arm.Body, child)
		}

	case *ast.Assign:
		a.walkExpr(n.Target, scope)
		a.walkExpr(n.Value, scope)

	case *ast.ExprStmt:
		a.walkExpr(n.X, scope)

	case *ast.Block:
		a.walkBlock(n, scope)
	}
}

func (a *Analyzer) walkExpr(e ast.Expr, scope *SymbolTable) {
	switch n := e.(type) {
	case *ast.Identifier:
		if sym, ok := scope.Resolve(n.Name); ok {
			sym.Used = true
		} else {
			a.errorAt("SEM-UNDEF-IDENT", fmt.Sprintf("undefined name %q", n.Name), n.Position())
		}

	case *ast.InterpolatedString:
		for _, sub := range n.Exprs {
			a.walkExpr(sub, scope)
		}

	case *ast.Binary:
		a.walkExpr(n.Left, scope)
		a.walkExpr(n.Right, scope)

	case *ast.Unary:
		a.walkExpr(n.X, scope)

	case *ast.Call:
		if n.EnumName != "" {
			if _, ok := a.global.Resolve(n.EnumName); !ok {
				a.errorAt("SEM-UNDEF-TYPE", fmt.Sprintf("undefined enum %q", n.EnumName), n.Position())
			}
		} else {
			a.walkExpr(n.Callee, scope)
		}
		for _, arg := range n.Args {
			a.walkExpr(arg, scope)
		}

	case *ast.Member:
		a.walkExpr(n.X, scope)

	case *ast.StructLiteral:
		if _, ok := a.global.Resolve(n.TypeName); !ok {
			a.errorAt("SEM-UNDEF-TYPE", fmt.Sprintf("undefined struct %q", n.TypeName), n.Position())
		}
		for _, f := range n.Fields {
			a.walkExpr(f.Value, scope)
		}

	case *ast.ArrayLiteral:
		for _, el := range n.Elems {
			a.walkExpr(el, scope)
		}

	case *ast.Index:
		a.walkExpr(n.X, scope)
		a.walkExpr(n.Index, scope)

	case *ast.MatchExpr:
		a.walkExpr(n.Subject, scope)
		for _, arm := range n.Arms {
			child := NewEnclosedSymbolTable(scope)
			a.bindPattern(arm.Pattern, child)
			if arm.Guard != nil {
				a.walkExpr(arm.Guard, child)
			}
			a.walkExpr(arm.Body, child)
		}

	case *ast.IsExpr:
		a.walkExpr(n.X, scope)
		child := NewEnclosedSymbolTable(scope)
		a.bindPattern(n.Pattern, child)

	case *ast.Try:
		a.walkExpr(n.X, scope)

	case *ast.Move:
		a.walkExpr(n.X, scope)

	case *ast.Await:
		a.walkExpr(n.X, scope)

	case *ast.Range:
		a.walkExpr(n.Start, scope)
		a.walkExpr(n.End, scope)

	case *ast.Lambda:
		child := NewEnclosedSymbolTable(scope)
		for _, p := range n.Params {
			child.Define(p.Name, KindVar, ast.Private, p.Pos).Used = true
		}
		a.walkExpr(n.Body, child)

	case *ast.Tuple:
		for _, el := range n.Elems {
			a.walkExpr(el, scope)
		}

	case *ast.Block:
		a.walkBlock(n, scope)
	}
}

// bindPattern defines every name a pattern binds, without checking
// enum/struct names against the registry — the HM checker already owns
// that diagnostic (HM_ENUM/HM_ENUM_VARIANT); this pass only needs the
// bound names visible for unused/undefined tracking in the arm body.
func (a *Analyzer) bindPattern(p ast.Pattern, scope *SymbolTable) {
	switch v := p.(type) {
	case *ast.Identifier:
		scope.Define(v.Name, KindVar, ast.Private, v.Position()).Used = true
	case *ast.EnumPattern:
		for _, b := range v.Bindings {
			scope.Define(b, KindVar, ast.Private, v.Position()).Used = true
		}
	case *ast.StructPattern:
		for _, f := range v.Fields {
			a.bindPattern(f.Pattern, scope)
		}
	case *ast.TuplePattern:
		for _, el := range v.Elements {
			a.bindPattern(el, scope)
		}
	}
}

func (a *Analyzer) checkType(t ast.Type, scope *SymbolTable) {
	if t == nil {
		return
	}
	switch n := t.(type) {
	case *ast.NamedType:
		if _, isParam := scope.Resolve(n.Name); isParam {
			return
		}
		if _, isBuiltin := builtinTypeNames[n.Name]; isBuiltin {
			return
		}
		if _, ok := a.global.Resolve(n.Name); !ok {
			a.errorAt("SEM-UNDEF-TYPE", fmt.Sprintf("undefined type %q", n.Name), n.Position())
		}
		for _, arg := range n.Args {
			a.checkType(arg, scope)
		}
	case *ast.FunctionType:
		for _, p := range n.Params {
			a.checkType(p, scope)
		}
		a.checkType(n.Result, scope)
	case *ast.ArrayType:
		a.checkType(n.Elem, scope)
	case *ast.TupleType:
		for _, e := range n.Elems {
			a.checkType(e, scope)
		}
	case *ast.PromiseType:
		a.checkType(n.Inner, scope)
	}
}

var builtinTypeNames = map[string]bool{
	"i32": true, "i64": true, "f64": true, "bool": true,
	"string": true, "void": true, "usize": true, "Promise": true,
}
