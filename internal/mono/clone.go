package mono

import "github.com/lumina-lang/lumina/internal/ast"
import "github.com/lumina-lang/lumina/internal/types"

// specialize clones generic, substituting every reference to a type
// parameter bound in mapping throughout its params, return type, and
// body (including nested calls' explicit type arguments and struct
// literal field values), and renames the clone to mangledName.
func specialize(generic *ast.FnDecl, mapping map[string]types.Type, mangledName string) *ast.FnDecl {
	params := make([]ast.Param, len(generic.Params))
	for i, p := range generic.Params {
		params[i] = ast.Param{Name: p.Name, Type: substituteType(p.Type, mapping), Pos: p.Pos}
	}
	clone := &ast.FnDecl{
		Base:         generic.Base,
		Name:         mangledName,
		TypeParams:   nil, // fully concrete: no type parameters remain
		Params:       params,
		ReturnType:   substituteType(generic.ReturnType, mapping),
		Visibility:   generic.Visibility,
		Extern:       generic.Extern,
		ExternModule: generic.ExternModule,
		Async:        generic.Async,
		DocComment:   generic.DocComment,
	}
	if generic.Body != nil {
		clone.Body = substituteBlock(generic.Body, mapping)
	}
	return clone
}

func substituteType(t ast.Type, mapping map[string]types.Type) ast.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *ast.NamedType:
		if len(v.Args) == 0 {
			if conc, ok := mapping[v.Name]; ok {
				return astTypeFromConcrete(conc)
			}
		}
		args := make([]ast.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteType(a, mapping)
		}
		return &ast.NamedType{Base: v.Base, Name: v.Name, Args: args}
	case *ast.ArrayType:
		return &ast.ArrayType{Base: v.Base, Elem: substituteType(v.Elem, mapping), Size: v.Size}
	case *ast.TupleType:
		elems := make([]ast.Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = substituteType(e, mapping)
		}
		return &ast.TupleType{Base: v.Base, Elems: elems}
	case *ast.FunctionType:
		params := make([]ast.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substituteType(p, mapping)
		}
		return &ast.FunctionType{Base: v.Base, Params: params, Result: substituteType(v.Result, mapping)}
	case *ast.PromiseType:
		return &ast.PromiseType{Base: v.Base, Inner: substituteType(v.Inner, mapping)}
	default:
		return t
	}
}

func substituteBlock(b *ast.Block, mapping map[string]types.Type) *ast.Block {
	if b == nil {
		return nil
	}
	stmts := make([]ast.Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = substituteStmt(s, mapping)
	}
	return &ast.Block{Base: b.Base, Stmts: stmts}
}

func substituteStmt(s ast.Stmt, mapping map[string]types.Type) ast.Stmt {
	switch n := s.(type) {
	case *ast.Let:
		return &ast.Let{
			Base: n.Base, Name: n.Name, Mut: n.Mut,
			Annotation:         substituteType(n.Annotation, mapping),
			Value:              substituteExpr(n.Value, mapping),
			SuppressUnusedWarn: n.SuppressUnusedWarn,
		}
	case *ast.LetTuple:
		return &ast.LetTuple{Base: n.Base, Names: n.Names, Value: substituteExpr(n.Value, mapping)}
	case *ast.Return:
		return &ast.Return{Base: n.Base, Value: substituteExpr(n.Value, mapping)}
	case *ast.If:
		var elseStmt ast.Stmt
		if n.Else != nil {
			elseStmt = substituteStmt(n.Else, mapping)
		}
		return &ast.If{Base: n.Base, Cond: substituteExpr(n.Cond, mapping), Then: substituteBlock(n.Then, mapping), Else: elseStmt}
	case *ast.While:
		return &ast.While{Base: n.Base, Cond: substituteExpr(n.Cond, mapping), Body: substituteBlock(n.Body, mapping)}
	case *ast.WhileLet:
		return &ast.WhileLet{Base: n.Base, Pattern: n.Pattern, Value: substituteExpr(n.Value, mapping), Body: substituteBlock(n.Body, mapping)}
	case *ast.For:
		return &ast.For{Base: n.Base, Binder: n.Binder, Iter: substituteExpr(n.Iter, mapping), Body: substituteBlock(n.Body, mapping)}
	case *ast.MatchStmt:
		return &ast.MatchStmt{Base: n.Base, Subject: substituteExpr(n.Subject, mapping), Arms: substituteArms(n.Arms, mapping)}
	case *ast.Assign:
		return &ast.Assign{Base: n.Base, Target: substituteExpr(n.Target, mapping), Op: n.Op, Value: substituteExpr(n.Value, mapping)}
	case *ast.ExprStmt:
		return &ast.ExprStmt{Base: n.Base, X: substituteExpr(n.X, mapping)}
	case *ast.Block:
		return substituteBlock(n, mapping)
	default:
		return s
	}
}

func substituteArms(arms []ast.MatchArm, mapping map[string]types.Type) []ast.MatchArm {
	out := make([]ast.MatchArm, len(arms))
	for i, a := range arms {
		out[i] = ast.MatchArm{
			Pattern: a.Pattern,
			Guard:   substituteExpr(a.Guard, mapping),
			Body:    substituteExpr(a.Body, mapping),
			Pos:     a.Pos,
		}
	}
	return out
}

func substituteExpr(e ast.Expr, mapping map[string]types.Type) ast.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.Binary:
		return &ast.Binary{Base: n.Base, Op: n.Op, Left: substituteExpr(n.Left, mapping), Right: substituteExpr(n.Right, mapping)}
	case *ast.Unary:
		return &ast.Unary{Base: n.Base, Op: n.Op, X: substituteExpr(n.X, mapping)}
	case *ast.Call:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteExpr(a, mapping)
		}
		typeArgs := make([]ast.Type, len(n.TypeArgs))
		for i, t := range n.TypeArgs {
			typeArgs[i] = substituteType(t, mapping)
		}
		return &ast.Call{Base: n.Base, Callee: substituteExpr(n.Callee, mapping), EnumName: n.EnumName, Args: args, TypeArgs: typeArgs}
	case *ast.Member:
		return &ast.Member{Base: n.Base, X: substituteExpr(n.X, mapping), Name: n.Name}
	case *ast.StructLiteral:
		fields := make([]ast.StructLiteralField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.StructLiteralField{Name: f.Name, Value: substituteExpr(f.Value, mapping)}
		}
		return &ast.StructLiteral{Base: n.Base, TypeName: n.TypeName, Fields: fields}
	case *ast.ArrayLiteral:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = substituteExpr(el, mapping)
		}
		return &ast.ArrayLiteral{Base: n.Base, Elems: elems}
	case *ast.Index:
		return &ast.Index{Base: n.Base, X: substituteExpr(n.X, mapping), Index: substituteExpr(n.Index, mapping)}
	case *ast.MatchExpr:
		return &ast.MatchExpr{Base: n.Base, Subject: substituteExpr(n.Subject, mapping), Arms: substituteArms(n.Arms, mapping)}
	case *ast.IsExpr:
		return &ast.IsExpr{Base: n.Base, X: substituteExpr(n.X, mapping), Pattern: n.Pattern}
	case *ast.Try:
		return &ast.Try{Base: n.Base, X: substituteExpr(n.X, mapping)}
	case *ast.Move:
		return &ast.Move{Base: n.Base, X: substituteExpr(n.X, mapping)}
	case *ast.Await:
		return &ast.Await{Base: n.Base, X: substituteExpr(n.X, mapping)}
	case *ast.Range:
		return &ast.Range{Base: n.Base, Start: substituteExpr(n.Start, mapping), End: substituteExpr(n.End, mapping), Inclusive: n.Inclusive}
	case *ast.Lambda:
		params := make([]ast.Param, len(n.Params))
		for i, p := range n.Params {
			params[i] = ast.Param{Name: p.Name, Type: substituteType(p.Type, mapping), Pos: p.Pos}
		}
		return &ast.Lambda{Base: n.Base, Params: params, Body: substituteExpr(n.Body, mapping)}
	case *ast.Tuple:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = substituteExpr(el, mapping)
		}
		return &ast.Tuple{Base: n.Base, Elems: elems}
	case *ast.Block:
		return substituteBlock(n, mapping)
	case *ast.InterpolatedString:
		exprs := make([]ast.Expr, len(n.Exprs))
		for i, sub := range n.Exprs {
			exprs[i] = substituteExpr(sub, mapping)
		}
		return &ast.InterpolatedString{Base: n.Base, Segments: n.Segments, Exprs: exprs}
	default:
		// Literal, Identifier: nothing to substitute.
		return e
	}
}
