package types

import "github.com/lumina-lang/lumina/internal/ast"

// ADTVariant is one constructor of a registered enum: a name plus the
// positional types of its fields, in terms of the enum's own type
// parameters (substituted at each use site).
type ADTVariant struct {
	Name   string
	Fields []Type
}

// ADT is a registered enum or struct's shape: its name, the names of its
// type parameters (for later substitution), and its variants (a struct
// is represented as a single-variant ADT so field lookup shares one path).
type ADT struct {
	Name       string
	TypeParams []string
	Variants   []ADTVariant
	IsStruct   bool
}

// Registry holds every enum/struct declared in a program, keyed by name.
type Registry struct {
	adts             map[string]*ADT
	structFieldNames []structFields
}

// NewRegistry builds an ADT registry from every EnumDecl/StructDecl in
// prog's top-level body, per step 1 of the inference algorithm. A
// declaration's own type parameters become `$param:<name>` placeholder
// constructors; fresh supplies type variables only for missing field
// types and type holes.
func NewRegistry(prog *ast.Program, fresh *FreshGen) *Registry {
	r := &Registry{adts: map[string]*ADT{}}
	for _, stmt := range prog.Body {
		switch d := stmt.(type) {
		case *ast.EnumDecl:
			r.addEnum(d, fresh)
		case *ast.StructDecl:
			r.addStruct(d, fresh)
		}
	}
	return r
}

func (r *Registry) addEnum(d *ast.EnumDecl, fresh *FreshGen) {
	params := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		params[i] = tp.Name
	}
	variants := make([]ADTVariant, len(d.Variants))
	for i, v := range d.Variants {
		fields := make([]Type, len(v.Fields))
		for j, f := range v.Fields {
			fields[j] = fromASTType(f, params, fresh)
		}
		variants[i] = ADTVariant{Name: v.Name, Fields: fields}
	}
	r.adts[d.Name] = &ADT{Name: d.Name, TypeParams: params, Variants: variants}
}

func (r *Registry) addStruct(d *ast.StructDecl, fresh *FreshGen) {
	params := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		params[i] = tp.Name
	}
	fields := make([]Type, len(d.Fields))
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = fromASTType(f.Type, params, fresh)
		names[i] = f.Name
	}
	r.adts[d.Name] = &ADT{
		Name: d.Name, TypeParams: params, IsStruct: true,
		Variants: []ADTVariant{{Name: d.Name, Fields: fields}},
	}
	r.structFieldNames = append(r.structFieldNames, structFields{name: d.Name, fields: names})
}

type structFields struct {
	name   string
	fields []string
}

// Lookup returns the registered ADT for name, if any.
func (r *Registry) Lookup(name string) (*ADT, bool) {
	a, ok := r.adts[name]
	return a, ok
}

// FieldNames returns the declared field order for a registered struct.
func (r *Registry) FieldNames(structName string) ([]string, bool) {
	for _, sf := range r.structFieldNames {
		if sf.name == structName {
			return sf.fields, true
		}
	}
	return nil, false
}

// VariantNames returns every variant name declared for an enum, in
// declaration order, used to compute the subtracted coverage set for
// match exhaustiveness (LUM-003).
func (a *ADT) VariantNames() []string {
	out := make([]string, len(a.Variants))
	for i, v := range a.Variants {
		out[i] = v.Name
	}
	return out
}

// Variant looks up one of an ADT's constructors by name.
func (a *ADT) Variant(name string) (*ADTVariant, bool) {
	for i := range a.Variants {
		if a.Variants[i].Name == name {
			return &a.Variants[i], true
		}
	}
	return nil, false
}

// fromASTType resolves a parser-level ast.Type into an internal/types.Type,
// substituting bare references to names in typeParams with `$param:<name>`
// placeholder TCons, and nominal names against the ADT registry
// lazily (as *TADT placeholders resolved again when instantiated).
func fromASTType(t ast.Type, typeParams []string, fresh *FreshGen) Type {
	if t == nil {
		return fresh.FreshVar()
	}
	switch n := t.(type) {
	case *ast.NamedType:
		for _, p := range typeParams {
			if p == n.Name {
				return &TCon{Name: "$param:" + n.Name}
			}
		}
		if prim, ok := LookupPrimitive(n.Name); ok {
			return prim
		}
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = fromASTType(a, typeParams, fresh)
		}
		if n.Name == "Promise" && len(args) == 1 {
			return &TPromise{Inner: args[0]}
		}
		return &TADT{Name: n.Name, Params: args}
	case *ast.FunctionType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = fromASTType(p, typeParams, fresh)
		}
		return &TFunc{Params: params, Return: fromASTType(n.Result, typeParams, fresh)}
	case *ast.ArrayType:
		elem := fromASTType(n.Elem, typeParams, fresh)
		if n.Size == nil {
			return &TArray{Elem: elem, Sized: false}
		}
		if lit, ok := n.Size.(*ast.ConstLiteral); ok {
			return &TArray{Elem: elem, Size: lit.Value, Sized: true}
		}
		return &TArray{Elem: elem, Sized: false} // size depends on a const param; resolved at call sites
	case *ast.TupleType:
		elems := make([]Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = fromASTType(e, typeParams, fresh)
		}
		return &TTuple{Elems: elems}
	case *ast.PromiseType:
		return &TPromise{Inner: fromASTType(n.Inner, typeParams, fresh)}
	case *ast.TypeHole:
		return fresh.FreshHoleAt(n.Position())
	default:
		return fresh.FreshVar()
	}
}
