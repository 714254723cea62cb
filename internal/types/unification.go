package types

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// UnifyError reports a mismatch found while unifying two types, carrying
// both sides so the caller can render a diagnostic with full context.
type UnifyError struct {
	Left, Right Type
	Reason      string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Reason)
}

// Unify finds the most general substitution that makes a and b equal,
// extending sub. It never mutates sub in place; it returns a new
// substitution (or the original sub together with an error).
func Unify(a, b Type, sub Subst) (Subst, error) {
	a = sub.Apply(a)
	b = sub.Apply(b)

	if av, ok := a.(*TVar); ok {
		return bindVar(av.ID, b, sub)
	}
	if bv, ok := b.(*TVar); ok {
		return bindVar(bv.ID, a, sub)
	}
	if ah, ok := a.(*THole); ok {
		return bindVar(ah.ID, b, sub)
	}
	if bh, ok := b.(*THole); ok {
		return bindVar(bh.ID, a, sub)
	}

	switch av := a.(type) {
	case *TCon:
		bv, ok := b.(*TCon)
		if !ok || av.Name != bv.Name {
			return sub, &UnifyError{a, b, "primitive type mismatch"}
		}
		return sub, nil

	case *TFunc:
		bv, ok := b.(*TFunc)
		if !ok || len(av.Params) != len(bv.Params) {
			return sub, &UnifyError{a, b, "function arity mismatch"}
		}
		cur := sub
		var err error
		for i := range av.Params {
			cur, err = Unify(av.Params[i], bv.Params[i], cur)
			if err != nil {
				return sub, err
			}
		}
		return Unify(av.Return, bv.Return, cur)

	case *TADT:
		bv, ok := b.(*TADT)
		if !ok || av.Name != bv.Name || len(av.Params) != len(bv.Params) {
			return sub, &UnifyError{a, b, "nominal type mismatch"}
		}
		cur := sub
		var err error
		for i := range av.Params {
			cur, err = Unify(av.Params[i], bv.Params[i], cur)
			if err != nil {
				return sub, err
			}
		}
		return cur, nil

	case *TPromise:
		bv, ok := b.(*TPromise)
		if !ok {
			return sub, &UnifyError{a, b, "expected a Promise"}
		}
		return Unify(av.Inner, bv.Inner, sub)

	case *TArray:
		bv, ok := b.(*TArray)
		if !ok {
			return sub, &UnifyError{a, b, "expected an array type"}
		}
		if av.Sized && bv.Sized && av.Size != bv.Size {
			return sub, &UnifyError{a, b, "array size mismatch"}
		}
		return Unify(av.Elem, bv.Elem, sub)

	case *TTuple:
		bv, ok := b.(*TTuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return sub, &UnifyError{a, b, "tuple arity mismatch"}
		}
		cur := sub
		var err error
		for i := range av.Elems {
			cur, err = Unify(av.Elems[i], bv.Elems[i], cur)
			if err != nil {
				return sub, err
			}
		}
		return cur, nil
	}

	return sub, &UnifyError{a, b, "incompatible type shapes"}
}

// bindVar binds variable id to t, after an occurs check, returning an
// extended substitution. Binding id to itself is a no-op.
func bindVar(id int, t Type, sub Subst) (Subst, error) {
	if v, ok := t.(*TVar); ok && v.ID == id {
		return sub, nil
	}
	if h, ok := t.(*THole); ok && h.ID == id {
		return sub, nil
	}
	if occurs(id, t) {
		return sub, &UnifyError{&TVar{ID: id}, t, "infinite type (occurs check failed)"}
	}
	next := make(Subst, len(sub)+1)
	for k, v := range sub {
		next[k] = v
	}
	next[id] = t
	return next, nil
}

func occurs(id int, t Type) bool {
	return FreeVars(t)[id]
}

// Generalize produces a Scheme quantifying over every free variable of t
// that is not also free in the enclosing environment env.
func Generalize(env map[string]*Scheme, t Type) *Scheme {
	envFree := map[int]bool{}
	for _, sc := range env {
		for v := range FreeVarsScheme(sc) {
			envFree[v] = true
		}
	}
	tFree := FreeVars(t)
	vars := make([]int, 0, len(tFree))
	for v := range tFree {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	return &Scheme{Vars: vars, Type: t}
}

// Instantiate replaces a scheme's quantified variables with fresh ones,
// producing a monomorphic instance ready for unification at a call site.
func (f *FreshGen) Instantiate(sc *Scheme) Type {
	mapping := make(Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		mapping[v] = f.FreshVar()
	}
	return mapping.Apply(sc.Type)
}

// FreshGen produces monotonically increasing fresh type variables,
// shared by a single inference run so generated IDs never collide.
type FreshGen struct {
	next int
	// OnHole, if set, is notified with the source position of every
	// `_` type hole as it is minted, so the checker can report
	// TYPE-HOLE-UNRESOLVED at the right location if it survives inference.
	OnHole func(id int, at ast.Pos)
}

// FreshVar returns a brand-new, globally unique TVar.
func (f *FreshGen) FreshVar() *TVar {
	f.next++
	return &TVar{ID: f.next}
}

// FreshHole returns a brand-new, globally unique THole.
func (f *FreshGen) FreshHole() *THole {
	f.next++
	return &THole{ID: f.next}
}

// FreshHoleAt is like FreshHole but also fires OnHole, if set, with the
// hole's source position.
func (f *FreshGen) FreshHoleAt(at ast.Pos) *THole {
	h := f.FreshHole()
	if f.OnHole != nil {
		f.OnHole(h.ID, at)
	}
	return h
}
