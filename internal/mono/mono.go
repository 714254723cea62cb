// Package mono implements monomorphization: every call site of a generic
// function is resolved to a concrete instantiation, a specialized clone of
// the function is generated for each distinct instantiation seen, and the
// call site is rewritten to call the specialized clone directly. The
// generic declarations themselves stay in the program, and a call whose
// argument types cannot be matched keeps calling the generic original; a
// generic that is declared but never called is simply never specialized.
package mono

import (
	"sort"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/types"
)

// Monomorphizer holds the state accumulated while specializing one program:
// the table of generic declarations available to specialize, and the set
// of instantiations already produced (keyed by generic name + argument
// instantiation key) so repeated call sites with the same concrete types
// share one clone.
type Monomorphizer struct {
	checker  *types.Checker
	generics map[string]*ast.FnDecl
	produced map[string]*ast.FnDecl // "genericName::key" -> specialized clone
	order    []*ast.FnDecl          // specialized clones, in first-seen order
}

// Run scans prog for generic function declarations, rewrites every call
// site of one to its specialized instantiation (generating the
// instantiation the first time it's seen), and appends every generated
// specialization to prog.Body. checker must have already completed
// inference over prog so InferredCalls is populated.
func Run(prog *ast.Program, checker *types.Checker) {
	m := &Monomorphizer{
		checker:  checker,
		generics: map[string]*ast.FnDecl{},
		produced: map[string]*ast.FnDecl{},
	}
	m.collectGenerics(prog)
	if len(m.generics) == 0 {
		return
	}
	for _, stmt := range prog.Body {
		m.rewriteStmt(stmt)
	}
	prog.Body = append(prog.Body, m.order...)
}

// collectGenerics indexes every non-extern top-level function declared
// with at least one non-const type parameter. Extern generics have no
// body to specialize, so a call to one is left untouched.
func (m *Monomorphizer) collectGenerics(prog *ast.Program) {
	for _, stmt := range prog.Body {
		fn, ok := stmt.(*ast.FnDecl)
		if !ok || fn.Extern {
			continue
		}
		if len(typeParamNames(fn)) > 0 {
			m.generics[fn.Name] = fn
		}
	}
}

// typeParamNames returns fn's non-const type parameter names, the ones
// monomorphization is responsible for eliminating (const generics are
// resolved earlier, by internal/types' const-expression evaluator).
func typeParamNames(fn *ast.FnDecl) []string {
	var names []string
	for _, tp := range fn.TypeParams {
		if !tp.IsConst {
			names = append(names, tp.Name)
		}
	}
	return names
}

// instantiate produces (or reuses) the specialized clone for calling
// generic fn with the concrete argument/return types recorded in info,
// returning the clone's mangled name. ok is false when the call's
// argument types couldn't be matched against fn's declared parameter
// shapes (e.g. a declared `[T]` parameter given a non-array argument) -
// the call site is then left calling the generic original.
func (m *Monomorphizer) instantiate(fn *ast.FnDecl, info types.CallInfo) (name string, ok bool) {
	params := typeParamSet(fn)
	mapping := map[string]types.Type{}
	for i, p := range fn.Params {
		if i >= len(info.Args) {
			break
		}
		if !matchType(p.Type, info.Args[i], params, mapping) {
			return "", false
		}
	}
	key := instantiationKey(fn, mapping)
	produceKey := fn.Name + "::" + key
	if clone, exists := m.produced[produceKey]; exists {
		return clone.Name, true
	}
	mangled := fn.Name + "_" + key
	clone := specialize(fn, mapping, mangled)
	m.produced[produceKey] = clone
	m.order = append(m.order, clone)
	return mangled, true
}

func typeParamSet(fn *ast.FnDecl) map[string]bool {
	out := map[string]bool{}
	for _, name := range typeParamNames(fn) {
		out[name] = true
	}
	return out
}

// instantiationKey renders the concrete types bound to fn's type
// parameters, in declaration order, sanitized to an identifier-safe
// string and joined with '_'. If no type parameter could be bound (every
// generic parameter is a const generic, or nothing in the signature
// referenced one directly), the fallback "arg_ret" is used so the
// mangled name still disambiguates a generic call from the un-mangled
// original.
func instantiationKey(fn *ast.FnDecl, mapping map[string]types.Type) string {
	var parts []string
	for _, tp := range fn.TypeParams {
		if tp.IsConst {
			continue
		}
		t, ok := mapping[tp.Name]
		if !ok {
			continue
		}
		parts = append(parts, sanitizeTypeName(types.Format(t, types.NewSubst())))
	}
	if len(parts) == 0 {
		return "arg_ret"
	}
	return strings.Join(parts, "_")
}

func sanitizeTypeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// sortedKeys returns the produced instantiation keys in sorted order, since
// map iteration order in Go is otherwise unspecified. It has no callers.
func (m *Monomorphizer) sortedKeys() []string {
	keys := make([]string, 0, len(m.produced))
	for k := range m.produced {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
