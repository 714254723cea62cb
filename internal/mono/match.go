package mono

import "github.com/lumina-lang/lumina/internal/ast"
import "github.com/lumina-lang/lumina/internal/types"

// matchType walks a declared (source-level) type shape alongside its
// concrete inferred counterpart, binding any bare type-parameter name it
// finds into out. It never backtracks: a type-parameter name bound twice
// to two different concrete types is a contradiction and fails the match
// (this can only happen for an invalid program that would already have
// failed unification during inference, so it's treated as "can't
// monomorphize this call" rather than raising its own diagnostic).
func matchType(declared ast.Type, concrete types.Type, typeParams map[string]bool, out map[string]types.Type) bool {
	if declared == nil || concrete == nil {
		return true
	}
	switch d := declared.(type) {
	case *ast.NamedType:
		if len(d.Args) == 0 && typeParams[d.Name] {
			if existing, ok := out[d.Name]; ok {
				return existing.Equals(concrete)
			}
			out[d.Name] = concrete
			return true
		}
		switch c := concrete.(type) {
		case *types.TCon:
			return len(d.Args) == 0 && c.Name == d.Name
		case *types.TADT:
			if c.Name != d.Name || len(c.Params) != len(d.Args) {
				return false
			}
			for i := range d.Args {
				if !matchType(d.Args[i], c.Params[i], typeParams, out) {
					return false
				}
			}
			return true
		default:
			return false
		}

	case *ast.ArrayType:
		c, ok := concrete.(*types.TArray)
		if !ok {
			return false
		}
		return matchType(d.Elem, c.Elem, typeParams, out)

	case *ast.TupleType:
		c, ok := concrete.(*types.TTuple)
		if !ok || len(c.Elems) != len(d.Elems) {
			return false
		}
		for i := range d.Elems {
			if !matchType(d.Elems[i], c.Elems[i], typeParams, out) {
				return false
			}
		}
		return true

	case *ast.FunctionType:
		c, ok := concrete.(*types.TFunc)
		if !ok || len(c.Params) != len(d.Params) {
			return false
		}
		for i := range d.Params {
			if !matchType(d.Params[i], c.Params[i], typeParams, out) {
				return false
			}
		}
		return matchType(d.Result, c.Return, typeParams, out)

	case *ast.PromiseType:
		c, ok := concrete.(*types.TPromise)
		if !ok {
			return false
		}
		return matchType(d.Inner, c.Inner, typeParams, out)

	default:
		// *ast.TypeHole, or an unannotated (nil) param already handled above:
		// no constraint to extract, but not a mismatch either.
		return true
	}
}
