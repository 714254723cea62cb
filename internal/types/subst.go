package types

// Subst maps type variable IDs to their resolved Type.
type Subst map[int]Type

// NewSubst returns an empty substitution.
func NewSubst() Subst { return make(Subst) }

// Apply walks t, replacing every bound TVar/THole with its substitution,
// recursively, leaving unbound variables untouched.
func (s Subst) Apply(t Type) Type {
	switch v := t.(type) {
	case *TVar:
		if bound, ok := s[v.ID]; ok {
			return s.Apply(bound)
		}
		return v
	case *THole:
		if bound, ok := s[v.ID]; ok {
			return s.Apply(bound)
		}
		return v
	case *TFunc:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.Apply(p)
		}
		return &TFunc{Params: params, Return: s.Apply(v.Return)}
	case *TADT:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.Apply(p)
		}
		return &TADT{Name: v.Name, Params: params}
	case *TPromise:
		return &TPromise{Inner: s.Apply(v.Inner)}
	case *TArray:
		return &TArray{Elem: s.Apply(v.Elem), Size: v.Size, Sized: v.Sized}
	case *TTuple:
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = s.Apply(e)
		}
		return &TTuple{Elems: elems}
	default:
		return t
	}
}

// ApplyScheme applies s to a Scheme's body, but never touches the
// scheme's own quantified variables (they are locally bound, not free).
func (s Subst) ApplyScheme(sc *Scheme) *Scheme {
	filtered := make(Subst, len(s))
	bound := make(map[int]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	for k, v := range s {
		if !bound[k] {
			filtered[k] = v
		}
	}
	return &Scheme{Vars: sc.Vars, Type: filtered.Apply(sc.Type)}
}

// Compose returns a substitution equivalent to applying s1 then s2: every
// binding of s1 has s2 applied to it, and any s2-only binding is added.
func Compose(s1, s2 Subst) Subst {
	result := make(Subst, len(s1)+len(s2))
	for k, v := range s1 {
		result[k] = s2.Apply(v)
	}
	for k, v := range s2 {
		if _, ok := result[k]; !ok {
			result[k] = v
		}
	}
	return result
}

// FreeVars collects the IDs of every unbound TVar/THole occurring in t.
func FreeVars(t Type) map[int]bool {
	out := map[int]bool{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[int]bool) {
	switch v := t.(type) {
	case *TVar:
		out[v.ID] = true
	case *THole:
		out[v.ID] = true
	case *TFunc:
		for _, p := range v.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(v.Return, out)
	case *TADT:
		for _, p := range v.Params {
			collectFreeVars(p, out)
		}
	case *TPromise:
		collectFreeVars(v.Inner, out)
	case *TArray:
		collectFreeVars(v.Elem, out)
	case *TTuple:
		for _, e := range v.Elems {
			collectFreeVars(e, out)
		}
	}
}

// FreeVarsScheme collects the scheme's free variables: those occurring in
// its body but not among its own quantified Vars.
func FreeVarsScheme(sc *Scheme) map[int]bool {
	out := FreeVars(sc.Type)
	for _, v := range sc.Vars {
		delete(out, v)
	}
	return out
}
