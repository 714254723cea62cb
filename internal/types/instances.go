package types

import "github.com/lumina-lang/lumina/internal/ast"

// Instances records, for every `impl Trait for Type` block in a program,
// that Type satisfies Trait — a lookup for checking a trait-bounded type
// parameter's resolved concrete type. No pass calls Satisfies, so no
// BOUND_MISMATCH diagnostic is produced.
type Instances struct {
	// byTrait[traitName][typeName] is present iff an impl block registers it.
	byTrait map[string]map[string]bool
}

// NewInstances walks prog's top-level ImplDecls and records every
// trait/type pairing. Inherent impls (Trait == "") contribute nothing
// here; they only add methods, which the semantic analyzer resolves
// through its own symbol table.
func NewInstances(prog *ast.Program) *Instances {
	in := &Instances{byTrait: map[string]map[string]bool{}}
	for _, stmt := range prog.Body {
		impl, ok := stmt.(*ast.ImplDecl)
		if !ok || impl.Trait == "" {
			continue
		}
		typeName := implTargetName(impl.ForType)
		if in.byTrait[impl.Trait] == nil {
			in.byTrait[impl.Trait] = map[string]bool{}
		}
		in.byTrait[impl.Trait][typeName] = true
	}
	return in
}

// Satisfies reports whether concrete type typeName has a registered
// `impl traitName for typeName`.
func (in *Instances) Satisfies(traitName, typeName string) bool {
	return in.byTrait[traitName][typeName]
}

func implTargetName(t ast.Type) string {
	if n, ok := t.(*ast.NamedType); ok {
		return n.Name
	}
	return ""
}

// ConcreteTypeName renders the nominal name a resolved types.Type binds
// to a type parameter, for bound checking; primitives and ADTs both
// qualify, everything else (functions, tuples, arrays) cannot satisfy a
// trait bound under this language's rules and reports "".
func ConcreteTypeName(t Type) string {
	switch v := t.(type) {
	case *TCon:
		return v.Name
	case *TADT:
		return v.Name
	default:
		return ""
	}
}
