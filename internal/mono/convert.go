package mono

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/types"
)

// astTypeFromConcrete renders an inferred types.Type back into the
// source-level ast.Type shape, so a specialized clone's parameter/return
// annotations and nested type references describe concrete types the
// same way a programmer would have written them by hand.
func astTypeFromConcrete(t types.Type) ast.Type {
	switch v := t.(type) {
	case *types.TCon:
		return &ast.NamedType{Name: v.Name}
	case *types.TADT:
		args := make([]ast.Type, len(v.Params))
		for i, p := range v.Params {
			args[i] = astTypeFromConcrete(p)
		}
		return &ast.NamedType{Name: v.Name, Args: args}
	case *types.TArray:
		if !v.Sized {
			return &ast.ArrayType{Elem: astTypeFromConcrete(v.Elem)}
		}
		return &ast.ArrayType{
			Elem: astTypeFromConcrete(v.Elem),
			Size: &ast.ConstLiteral{Value: v.Size},
		}
	case *types.TTuple:
		elems := make([]ast.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = astTypeFromConcrete(e)
		}
		return &ast.TupleType{Elems: elems}
	case *types.TPromise:
		return &ast.PromiseType{Inner: astTypeFromConcrete(v.Inner)}
	case *types.TFunc:
		params := make([]ast.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = astTypeFromConcrete(p)
		}
		return &ast.FunctionType{Params: params, Result: astTypeFromConcrete(v.Return)}
	default:
		// TVar/THole: inference left this unresolved, which shouldn't
		// happen for a type bound from a real call site's argument; fall
		// back to its printed form rather than panicking on a malformed
		// program.
		return &ast.NamedType{Name: t.String()}
	}
}
