// Package types implements Lumina's Hindley-Milner-style inference engine:
// types, substitution, unification, generalization, an ADT registry, trait
// bound checking, and a const-generic expression evaluator.
package types

import (
	"fmt"
	"strings"
)

// Type is the common interface for every member of the type sum:
// variable, constructor (primitive or nominal), function, ADT instance,
// array, tuple, promise, and hole.
type Type interface {
	String() string
	Equals(Type) bool
}

// TVar is an unbound (or as-yet-unresolved) type variable, identified by a
// small monotonic integer rather than a name.
type TVar struct{ ID int }

func (t *TVar) String() string { return fmt.Sprintf("t%d", t.ID) }
func (t *TVar) Equals(o Type) bool {
	v, ok := o.(*TVar)
	return ok && v.ID == t.ID
}

// TCon is a primitive or otherwise nullary named type: i32, f64, string,
// bool, void, usize.
type TCon struct{ Name string }

func (t *TCon) String() string { return t.Name }
func (t *TCon) Equals(o Type) bool {
	c, ok := o.(*TCon)
	return ok && c.Name == t.Name
}

// TFunc is a function type `(Params...) -> Return`.
type TFunc struct {
	Params []Type
	Return Type
}

func (t *TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return.String())
}
func (t *TFunc) Equals(o Type) bool {
	f, ok := o.(*TFunc)
	if !ok || len(f.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(f.Params[i]) {
			return false
		}
	}
	return t.Return.Equals(f.Return)
}

// TADT is an instantiation of a declared enum or struct type: `Name<p1,
// p2, ...>`. Struct types and enum types share this representation; the
// ADT registry distinguishes their shape.
type TADT struct {
	Name   string
	Params []Type
}

func (t *TADT) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}
func (t *TADT) Equals(o Type) bool {
	a, ok := o.(*TADT)
	if !ok || a.Name != t.Name || len(a.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(a.Params[i]) {
			return false
		}
	}
	return true
}

// TPromise wraps the result type of an async function.
type TPromise struct{ Inner Type }

func (t *TPromise) String() string { return fmt.Sprintf("Promise<%s>", t.Inner) }
func (t *TPromise) Equals(o Type) bool {
	p, ok := o.(*TPromise)
	return ok && t.Inner.Equals(p.Inner)
}

// THole is the `_` type placeholder prior to resolution; it behaves like a
// fresh TVar for unification purposes but is reported distinctly
// (TYPE-HOLE-UNRESOLVED) if it survives inference unresolved.
type THole struct{ ID int }

func (t *THole) String() string { return "_" }
func (t *THole) Equals(o Type) bool {
	h, ok := o.(*THole)
	return ok && h.ID == t.ID
}

// TArray is `[Elem; Size]` (Sized == false for a dynamically sized array).
type TArray struct {
	Elem  Type
	Size  int64
	Sized bool
}

func (t *TArray) String() string {
	if !t.Sized {
		return fmt.Sprintf("[%s]", t.Elem)
	}
	return fmt.Sprintf("[%s; %d]", t.Elem, t.Size)
}
func (t *TArray) Equals(o Type) bool {
	a, ok := o.(*TArray)
	return ok && t.Elem.Equals(a.Elem) && t.Sized == a.Sized && (!t.Sized || t.Size == a.Size)
}

// TTuple is a fixed-arity tuple type.
type TTuple struct{ Elems []Type }

func (t *TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TTuple) Equals(o Type) bool {
	u, ok := o.(*TTuple)
	if !ok || len(u.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(u.Elems[i]) {
			return false
		}
	}
	return true
}

// Scheme generalizes a Type over a set of quantified variable IDs,
// produced by let-generalization.
type Scheme struct {
	Vars []int
	Type Type
}

// Common primitive type constructors.
var (
	I32        = &TCon{Name: "i32"}
	I64        = &TCon{Name: "i64"}
	F64        = &TCon{Name: "f64"}
	BoolType   = &TCon{Name: "bool"}
	StringType = &TCon{Name: "string"}
	Void       = &TCon{Name: "void"}
	USize      = &TCon{Name: "usize"}
)

var primitiveNames = map[string]*TCon{
	"i32": I32, "i64": I64, "f64": F64, "bool": BoolType,
	"string": StringType, "void": Void, "usize": USize,
}

// LookupPrimitive returns the interned TCon for a primitive type name, or
// nil if name is not a built-in primitive (in which case it names an ADT).
func LookupPrimitive(name string) (*TCon, bool) {
	t, ok := primitiveNames[name]
	return t, ok
}
