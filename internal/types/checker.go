package types

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
)

// CallInfo records a resolved call site's argument and return types, one
// of the maps the algorithm must produce at the end of inference.
type CallInfo struct {
	Args       []Type
	ReturnType Type
}

// Checker runs Hindley-Milner inference over a whole program and
// accumulates the diagnostics, substitution, and per-node result maps
// named by the inference algorithm's final step.
type Checker struct {
	Registry  *Registry
	Instances *Instances
	fresh     FreshGen
	sub       Subst
	diags     []*diagnostic.Diagnostic

	// Trait bounds declared on each type parameter, recorded while
	// hoisting signatures. Nothing reads this map, and no BOUND_MISMATCH
	// check is run.
	boundTypeParamTraits map[string][]string

	InferredLets     map[int]Type
	InferredFnReturns map[string]Type
	InferredFnByName map[string]*Scheme
	InferredFnParams map[string][]Type
	InferredCalls    map[int]CallInfo
	InferredExprs    map[int]Type

	holeLocations map[int]ast.Span
}

// NewChecker constructs a Checker ready to run Infer over prog.
func NewChecker(prog *ast.Program) *Checker {
	c := &Checker{
		Instances:            NewInstances(prog),
		sub:                  NewSubst(),
		InferredLets:         map[int]Type{},
		InferredFnReturns:    map[string]Type{},
		InferredFnByName:     map[string]*Scheme{},
		InferredFnParams:     map[string][]Type{},
		InferredCalls:        map[int]CallInfo{},
		InferredExprs:        map[int]Type{},
		holeLocations:        map[int]ast.Span{},
		boundTypeParamTraits: map[string][]string{},
	}
	c.fresh.OnHole = func(id int, at ast.Pos) {
		c.holeLocations[id] = ast.Span{Start: at, End: at}
	}
	c.Registry = NewRegistry(prog, &c.fresh)
	return c
}

// Diagnostics returns every diagnostic collected during Infer.
func (c *Checker) Diagnostics() []*diagnostic.Diagnostic { return c.diags }

func (c *Checker) errorAtPos(code, msg string, at ast.Pos) {
	c.errorAt(code, msg, ast.Span{Start: at, End: at})
}

func (c *Checker) errorAt(code, msg string, span ast.Span) {
	c.diags = append(c.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Code:     code,
		Message:  msg,
		Source:   "lumina",
		Location: span,
	})
}

// Infer runs the full 8-step algorithm over prog's top-level body.
func (c *Checker) Infer(prog *ast.Program) {
	env := NewEnv()

	// Step 2: pre-hoist every function signature as a non-generalized scheme.
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FnDecl); ok {
			c.hoistFnSignature(fn, env)
		}
	}
	for _, stmt := range prog.Body {
		if impl, ok := stmt.(*ast.ImplDecl); ok {
			for _, m := range impl.Methods {
				c.hoistFnSignature(m, env)
			}
		}
	}

	// Step 3: visit each top-level statement/declaration.
	for _, stmt := range prog.Body {
		c.inferTopLevel(stmt, env)
	}

	// Step 8: record the per-function maps with the final substitution.
	for name, sc := range c.InferredFnByName {
		c.InferredFnByName[name] = &Scheme{Vars: sc.Vars, Type: c.sub.Apply(sc.Type)}
	}
	for name, ps := range c.InferredFnParams {
		c.InferredFnParams[name] = c.applyAll(ps)
	}
	for name, r := range c.InferredFnReturns {
		c.InferredFnReturns[name] = c.sub.Apply(r)
	}

	c.checkUnresolvedHoles()
}

func (c *Checker) hoistFnSignature(fn *ast.FnDecl, env *Env) {
	typeParams := make([]string, len(fn.TypeParams))
	for i, tp := range fn.TypeParams {
		typeParams[i] = tp.Name
		c.boundTypeParamTraits[tp.Name] = tp.Bounds
	}
	params := make([]Type, len(fn.Params))
	for i, p := range fn.Params {
		if p.Type != nil {
			params[i] = fromASTType(p.Type, typeParams, &c.fresh)
		} else {
			params[i] = c.fresh.FreshVar()
		}
	}
	var ret Type
	if fn.ReturnType != nil {
		ret = fromASTType(fn.ReturnType, typeParams, &c.fresh)
	} else {
		ret = c.fresh.FreshVar()
	}
	sig := &TFunc{Params: params, Return: ret}
	env.Bind(fn.Name, &Scheme{Type: sig})
	c.InferredFnByName[fn.Name] = &Scheme{Type: sig}
	c.InferredFnParams[fn.Name] = params
	c.InferredFnReturns[fn.Name] = ret
}

func (c *Checker) inferTopLevel(stmt ast.Stmt, env *Env) {
	switch n := stmt.(type) {
	case *ast.FnDecl:
		c.inferFnBody(n, env)
	case *ast.ImplDecl:
		for _, m := range n.Methods {
			c.inferFnBody(m, env)
		}
	case *ast.StructDecl, *ast.EnumDecl, *ast.TypeDecl, *ast.TraitDecl, *ast.Import:
		// Declarations with no executable body; already folded into the
		// registry (structs/enums) or have nothing further to infer.
	default:
		c.inferStmt(stmt, env, nil)
	}
}

func (c *Checker) inferFnBody(fn *ast.FnDecl, env *Env) {
	if fn.Body == nil {
		return // extern declaration
	}
	sig := c.InferredFnByName[fn.Name].Type.(*TFunc)
	child := env.Child()
	for i, p := range fn.Params {
		child.Bind(p.Name, &Scheme{Type: sig.Params[i]})
	}
	for _, s := range fn.Body.Stmts {
		c.inferStmt(s, child, sig.Return)
	}
}

// inferStmt infers a statement; expectedReturn is non-nil inside a
// function body, used to unify `return` values against the signature.
func (c *Checker) inferStmt(stmt ast.Stmt, env *Env, expectedReturn Type) {
	switch n := stmt.(type) {
	case *ast.Let:
		var t Type
		if n.Value != nil {
			t = c.inferExpr(n.Value, env)
		} else {
			t = c.fresh.FreshVar()
		}
		if n.Annotation != nil {
			ann := fromASTType(n.Annotation, nil, &c.fresh)
			c.unify(ann, t, n.Position())
			t = ann
		}
		sc := Generalize(env.Flatten(), c.sub.Apply(t))
		env.Bind(n.Name, sc)
		c.InferredLets[n.NodeID()] = c.sub.Apply(t)

	case *ast.LetTuple:
		t := c.inferExpr(n.Value, env)
		pruned := c.sub.Apply(t)
		tup, ok := pruned.(*TTuple)
		if !ok || len(tup.Elems) != len(n.Names) {
			c.errorAtPos("LUM-001", fmt.Sprintf("cannot destructure %s into a %d-tuple", Format(pruned, c.sub), len(n.Names)), n.Position())
			for _, name := range n.Names {
				env.Bind(name, &Scheme{Type: c.fresh.FreshVar()})
			}
			return
		}
		for i, name := range n.Names {
			env.Bind(name, Generalize(env.Flatten(), tup.Elems[i]))
		}

	case *ast.Return:
		if n.Value == nil {
			if expectedReturn != nil {
				c.unify(expectedReturn, Void, n.Position())
			}
			return
		}
		t := c.inferExpr(n.Value, env)
		if expectedReturn != nil {
			c.unify(expectedReturn, t, n.Position())
		}

	case *ast.If:
		c.inferCond(n.Cond, env)
		c.inferStmt(n.Then, env, expectedReturn)
		if n.Else != nil {
			c.inferStmt(n.Else, env, expectedReturn)
		}

	case *ast.While:
		c.inferCond(n.Cond, env)
		c.inferStmt(n.Body, env, expectedReturn)

	case *ast.WhileLet:
		subjType := c.inferExpr(n.Value, env)
		child := env.Child()
		c.bindPattern(n.Pattern, subjType, child)
		c.inferStmt(n.Body, child, expectedReturn)

	case *ast.For:
		iterType := c.inferExpr(n.Iter, env)
		elem := c.elementTypeOf(iterType)
		child := env.Child()
		child.Bind(n.Binder, &Scheme{Type: elem})
		c.inferStmt(n.Body, child, expectedReturn)

	case *ast.MatchStmt:
		c.inferMatch(n.Subject, n.Arms, env, n.Position(), nil)

	case *ast.Assign:
		targetType := c.inferExpr(n.Target, env)
		valType := c.inferExpr(n.Value, env)
		c.unify(targetType, valType, n.Position())

	case *ast.ExprStmt:
		c.inferExpr(n.X, env)

	case *ast.Block:
		child := env.Child()
		for _, s := range n.Stmts {
			c.inferStmt(s, child, expectedReturn)
		}
	}
}

func (c *Checker) inferCond(e ast.Expr, env *Env) {
	t := c.inferExpr(e, env)
	c.unify(t, BoolType, e.Position())
}

// inferExpr infers e's type and unifies as needed, returning the
// (possibly still-substitution-pending) result, and always records it
// into InferredExprs.
func (c *Checker) inferExpr(e ast.Expr, env *Env) Type {
	t := c.inferExprRaw(e, env)
	c.InferredExprs[e.NodeID()] = c.sub.Apply(t)
	return t
}

func (c *Checker) inferExprRaw(e ast.Expr, env *Env) Type {
	switch n := e.(type) {
	case *ast.Literal:
		switch n.Kind {
		case ast.LitNumber:
			return I32
		case ast.LitFloat:
			return F64
		case ast.LitString:
			return StringType
		case ast.LitBoolean:
			return BoolType
		}
		return c.fresh.FreshVar()

	case *ast.InterpolatedString:
		for _, sub := range n.Exprs {
			c.inferExpr(sub, env)
		}
		return StringType

	case *ast.Identifier:
		sc, ok := env.Lookup(n.Name)
		if !ok {
			v := c.fresh.FreshVar()
			return v // unknown identifiers are the semantic analyzer's concern, not the HM engine's
		}
		return c.fresh.Instantiate(sc)

	case *ast.Binary:
		return c.inferBinary(n, env)

	case *ast.Unary:
		x := c.inferExpr(n.X, env)
		if n.Op == "!" {
			c.unify(x, BoolType, n.Position())
			return BoolType
		}
		return x // numeric negation: same type as operand

	case *ast.Call:
		return c.inferCall(n, env)

	case *ast.Member:
		return c.inferMember(n, env)

	case *ast.StructLiteral:
		return c.inferStructLiteral(n, env)

	case *ast.ArrayLiteral:
		elem := c.fresh.FreshVar()
		var result Type = elem
		for _, el := range n.Elems {
			t := c.inferExpr(el, env)
			c.unify(result, t, el.Position())
		}
		return &TArray{Elem: c.sub.Apply(result), Size: int64(len(n.Elems)), Sized: true}

	case *ast.Index:
		xt := c.inferExpr(n.X, env)
		c.inferExpr(n.Index, env)
		return c.elementTypeOf(xt)

	case *ast.MatchExpr:
		result := c.fresh.FreshVar()
		c.inferMatch(n.Subject, n.Arms, env, n.Position(), result)
		return c.sub.Apply(result)

	case *ast.IsExpr:
		subjType := c.inferExpr(n.X, env)
		child := env.Child()
		c.bindPattern(n.Pattern, subjType, child)
		return BoolType

	case *ast.Try:
		return c.inferExpr(n.X, env)

	case *ast.Move:
		return c.inferExpr(n.X, env)

	case *ast.Await:
		inner := c.inferExpr(n.X, env)
		if p, ok := c.sub.Apply(inner).(*TPromise); ok {
			return p.Inner
		}
		return inner

	case *ast.Range:
		c.inferExpr(n.Start, env)
		c.inferExpr(n.End, env)
		return &TADT{Name: "Range", Params: []Type{I32}}

	case *ast.Lambda:
		child := env.Child()
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			var pt Type
			if p.Type != nil {
				pt = fromASTType(p.Type, nil, &c.fresh)
			} else {
				pt = c.fresh.FreshVar()
			}
			params[i] = pt
			child.Bind(p.Name, &Scheme{Type: pt})
		}
		ret := c.inferExpr(n.Body, child)
		return &TFunc{Params: params, Return: ret}

	case *ast.Tuple:
		elems := make([]Type, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = c.inferExpr(el, env)
		}
		return &TTuple{Elems: elems}

	case *ast.Block:
		child := env.Child()
		var last Type = Void
		for i, s := range n.Stmts {
			if es, ok := s.(*ast.ExprStmt); ok && i == len(n.Stmts)-1 {
				last = c.inferExpr(es.X, child)
			} else {
				c.inferStmt(s, child, nil)
			}
		}
		return last
	}
	return c.fresh.FreshVar()
}

func (c *Checker) inferBinary(n *ast.Binary, env *Env) Type {
	l := c.inferExpr(n.Left, env)
	r := c.inferExpr(n.Right, env)
	switch n.Op {
	case "+", "-", "*", "/", "%":
		c.unify(l, r, n.Position())
		return c.sub.Apply(l)
	case "==", "!=":
		c.unify(l, r, n.Position())
		return BoolType
	case "<", ">", "<=", ">=":
		c.unify(l, r, n.Position())
		return BoolType
	case "&&", "||":
		c.unify(l, BoolType, n.Left.Position())
		c.unify(r, BoolType, n.Right.Position())
		return BoolType
	}
	return c.fresh.FreshVar()
}

func (c *Checker) inferCall(n *ast.Call, env *Env) Type {
	if n.EnumName != "" {
		return c.inferEnumConstructorCall(n, env)
	}
	calleeType := c.inferExpr(n.Callee, env)
	args := make([]Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.inferExpr(a, env)
	}
	result := c.fresh.FreshVar()
	expected := &TFunc{Params: args, Return: result}
	c.unify(calleeType, expected, n.Position())

	fn, isFunc := c.sub.Apply(calleeType).(*TFunc)
	if isFunc && len(fn.Params) != len(args) {
		c.errorAtPos("LUM-002", fmt.Sprintf("expected %d argument(s), found %d", len(fn.Params), len(args)), n.Position())
	}
	retType := c.sub.Apply(result)
	c.InferredCalls[n.NodeID()] = CallInfo{Args: c.applyAll(args), ReturnType: retType}
	return retType
}

func (c *Checker) inferEnumConstructorCall(n *ast.Call, env *Env) Type {
	adt, ok := c.Registry.Lookup(n.EnumName)
	if !ok {
		c.errorAtPos("HM_ENUM", fmt.Sprintf("unknown enum %q", n.EnumName), n.Position())
		return c.fresh.FreshVar()
	}
	variantName := calleeVariantName(n.Callee)
	variant, ok := adt.Variant(variantName)
	if !ok {
		c.errorAtPos("HM_ENUM_VARIANT", fmt.Sprintf("unknown variant %s.%s", n.EnumName, variantName), n.Position())
		return c.fresh.FreshVar()
	}
	if len(variant.Fields) != len(n.Args) {
		c.errorAtPos("HM_ENUM_VARIANT", fmt.Sprintf("%s.%s expects %d argument(s), found %d", n.EnumName, variantName, len(variant.Fields), len(n.Args)), n.Position())
	}
	// Step 5: substitute the enum's own type parameters with fresh
	// variables, then unify each variant parameter against the argument.
	freshByName := map[string]Type{}
	for _, p := range adt.TypeParams {
		freshByName[p] = c.fresh.FreshVar()
	}
	resultParams := make([]Type, len(adt.TypeParams))
	for i, p := range adt.TypeParams {
		resultParams[i] = freshByName[p]
	}
	n2 := min(len(variant.Fields), len(n.Args))
	for i := 0; i < n2; i++ {
		fieldType := substParamNames(variant.Fields[i], freshByName)
		argType := c.inferExpr(n.Args[i], env)
		c.unify(fieldType, argType, n.Args[i].Position())
	}
	return &TADT{Name: n.EnumName, Params: resultParams}
}

func calleeVariantName(callee ast.Expr) string {
	switch e := callee.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Member:
		return e.Name
	}
	return ""
}


// substParamNames replaces every TCon{"$param:X"} placeholder produced by
// fromASTType with the fresh type bound to X.
func substParamNames(t Type, byName map[string]Type) Type {
	if c, ok := t.(*TCon); ok {
		if name, isParam := stripParamMarker(c.Name); isParam {
			if fresh, ok := byName[name]; ok {
				return fresh
			}
		}
	}
	switch v := t.(type) {
	case *TFunc:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substParamNames(p, byName)
		}
		return &TFunc{Params: params, Return: substParamNames(v.Return, byName)}
	case *TADT:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substParamNames(p, byName)
		}
		return &TADT{Name: v.Name, Params: params}
	case *TPromise:
		return &TPromise{Inner: substParamNames(v.Inner, byName)}
	case *TArray:
		return &TArray{Elem: substParamNames(v.Elem, byName), Size: v.Size, Sized: v.Sized}
	case *TTuple:
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = substParamNames(e, byName)
		}
		return &TTuple{Elems: elems}
	}
	return t
}

func stripParamMarker(name string) (string, bool) {
	const prefix = "$param:"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		return name[len(prefix):], true
	}
	return "", false
}

func (c *Checker) inferMember(n *ast.Member, env *Env) Type {
	xt := c.sub.Apply(c.inferExpr(n.X, env))
	adtType, ok := xt.(*TADT)
	if !ok {
		return c.fresh.FreshVar()
	}
	adt, ok := c.Registry.Lookup(adtType.Name)
	if !ok || !adt.IsStruct {
		return c.fresh.FreshVar()
	}
	names, _ := c.Registry.FieldNames(adtType.Name)
	for i, fname := range names {
		if fname == n.Name {
			byName := map[string]Type{}
			for j, p := range adt.TypeParams {
				if j < len(adtType.Params) {
					byName[p] = adtType.Params[j]
				}
			}
			return substParamNames(adt.Variants[0].Fields[i], byName)
		}
	}
	return c.fresh.FreshVar()
}

func (c *Checker) inferStructLiteral(n *ast.StructLiteral, env *Env) Type {
	adt, ok := c.Registry.Lookup(n.TypeName)
	if !ok || !adt.IsStruct {
		c.errorAtPos("HM_ENUM", fmt.Sprintf("unknown struct %q", n.TypeName), n.Position())
		for _, f := range n.Fields {
			c.inferExpr(f.Value, env)
		}
		return c.fresh.FreshVar()
	}
	byName := map[string]Type{}
	for _, p := range adt.TypeParams {
		byName[p] = c.fresh.FreshVar()
	}
	names, _ := c.Registry.FieldNames(n.TypeName)
	for _, f := range n.Fields {
		argType := c.inferExpr(f.Value, env)
		for i, fname := range names {
			if fname == f.Name {
				fieldType := substParamNames(adt.Variants[0].Fields[i], byName)
				c.unify(fieldType, argType, f.Value.Position())
			}
		}
	}
	params := make([]Type, len(adt.TypeParams))
	for i, p := range adt.TypeParams {
		params[i] = byName[p]
	}
	return &TADT{Name: n.TypeName, Params: params}
}

func (c *Checker) elementTypeOf(t Type) Type {
	switch v := c.sub.Apply(t).(type) {
	case *TArray:
		return v.Elem
	case *TADT:
		if v.Name == "Range" && len(v.Params) == 1 {
			return v.Params[0]
		}
	}
	return c.fresh.FreshVar()
}

// inferMatch implements step 6: unify all arms against a single result
// (nil when used as a statement), and run enum-variant exhaustiveness.
func (c *Checker) inferMatch(subject ast.Expr, arms []ast.MatchArm, env *Env, at ast.Pos, result Type) {
	subjType := c.sub.Apply(c.inferExpr(subject, env))

	covered := map[string]bool{}
	hasWildcard := false
	for _, arm := range arms {
		child := env.Child()
		c.bindPattern(arm.Pattern, subjType, child)
		c.trackCoverage(arm.Pattern, covered, &hasWildcard)
		if arm.Guard != nil {
			c.inferCond(arm.Guard, child)
		}
		armType := c.inferExpr(arm.Body, child)
		if result != nil {
			c.unify(result, armType, arm.Body.Position())
		}
	}

	if hasWildcard {
		return
	}
	if adt, ok := subjType.(*TADT); ok {
		if def, ok := c.Registry.Lookup(adt.Name); ok {
			var missing []string
			for _, v := range def.VariantNames() {
				if !covered[v] {
					missing = append(missing, v)
				}
			}
			if len(missing) > 0 {
				c.errorAtPos("LUM-003", fmt.Sprintf("non-exhaustive match on %s: missing %v", adt.Name, missing), at)
			}
		}
	}
}

func (c *Checker) trackCoverage(p ast.Pattern, covered map[string]bool, hasWildcard *bool) {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		*hasWildcard = true
	case *ast.Identifier:
		*hasWildcard = true // a bare binding pattern covers everything, like a wildcard
	case *ast.EnumPattern:
		covered[v.Variant] = true
	case *ast.LiteralPattern:
		covered[v.Lit.Raw] = true
	}
}

// bindPattern binds a pattern's names into env against subjType, used by
// match arms, while-let, and is-expressions alike.
func (c *Checker) bindPattern(p ast.Pattern, subjType Type, env *Env) {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		// binds nothing

	case *ast.Identifier:
		env.Bind(v.Name, &Scheme{Type: subjType})

	case *ast.EnumPattern:
		pruned := c.sub.Apply(subjType)
		adtType, ok := pruned.(*TADT)
		if !ok {
			for _, b := range v.Bindings {
				env.Bind(b, &Scheme{Type: c.fresh.FreshVar()})
			}
			return
		}
		enumName := v.EnumName
		if enumName == "" {
			enumName = adtType.Name
		}
		adt, ok := c.Registry.Lookup(enumName)
		if !ok {
			c.errorAtPos("HM_ENUM", fmt.Sprintf("unknown enum %q", enumName), v.Position())
			return
		}
		variant, ok := adt.Variant(v.Variant)
		if !ok {
			c.errorAtPos("HM_ENUM_VARIANT", fmt.Sprintf("unknown variant %s.%s", enumName, v.Variant), v.Position())
			return
		}
		if len(variant.Fields) != len(v.Bindings) {
			c.errorAtPos("HM_ENUM_VARIANT", fmt.Sprintf("%s.%s expects %d binding(s), found %d", enumName, v.Variant, len(variant.Fields), len(v.Bindings)), v.Position())
		}
		byName := map[string]Type{}
		for i, p := range adt.TypeParams {
			if i < len(adtType.Params) {
				byName[p] = adtType.Params[i]
			}
		}
		n := min(len(variant.Fields), len(v.Bindings))
		for i := 0; i < n; i++ {
			env.Bind(v.Bindings[i], &Scheme{Type: substParamNames(variant.Fields[i], byName)})
		}

	case *ast.StructPattern:
		pruned := c.sub.Apply(subjType)
		adtType, ok := pruned.(*TADT)
		if !ok {
			for _, f := range v.Fields {
				c.bindPattern(f.Pattern, c.fresh.FreshVar(), env)
			}
			return
		}
		adt, ok := c.Registry.Lookup(v.TypeName)
		if !ok {
			return
		}
		byName := map[string]Type{}
		for i, p := range adt.TypeParams {
			if i < len(adtType.Params) {
				byName[p] = adtType.Params[i]
			}
		}
		names, _ := c.Registry.FieldNames(v.TypeName)
		for _, fp := range v.Fields {
			for i, fname := range names {
				if fname == fp.Name {
					c.bindPattern(fp.Pattern, substParamNames(adt.Variants[0].Fields[i], byName), env)
				}
			}
		}

	case *ast.TuplePattern:
		pruned := c.sub.Apply(subjType)
		tup, ok := pruned.(*TTuple)
		if !ok || len(tup.Elems) != len(v.Elements) {
			for _, el := range v.Elements {
				c.bindPattern(el, c.fresh.FreshVar(), env)
			}
			return
		}
		for i, el := range v.Elements {
			c.bindPattern(el, tup.Elems[i], env)
		}

	case *ast.LiteralPattern:
		var lt Type
		switch v.Lit.Kind {
		case ast.LitNumber:
			lt = I32
		case ast.LitFloat:
			lt = F64
		case ast.LitString:
			lt = StringType
		case ast.LitBoolean:
			lt = BoolType
		default:
			lt = c.fresh.FreshVar()
		}
		c.unify(lt, subjType, v.Position())

	case *ast.StructLiteral: // used as a pattern in some grammars (Point { x, y })
		for _, f := range v.Fields {
			if id, ok := f.Value.(*ast.Identifier); ok {
				env.Bind(id.Name, &Scheme{Type: c.fresh.FreshVar()})
			}
		}
	}
}

func (c *Checker) unify(a, b Type, at ast.Pos) {
	sub, err := Unify(a, b, c.sub)
	if err != nil {
		c.errorAt("LUM-001", fmt.Sprintf("type mismatch: expected %s, found %s", Format(a, c.sub), Format(b, c.sub)), ast.Span{Start: at, End: at})
		return
	}
	c.sub = sub
}

func (c *Checker) applyAll(ts []Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = c.sub.Apply(t)
	}
	return out
}

// checkUnresolvedHoles walks every `_` type hole minted during inference
// and reports TYPE-HOLE-UNRESOLVED for the ones the final substitution
// never pinned down to a concrete type.
func (c *Checker) checkUnresolvedHoles() {
	for id, span := range c.holeLocations {
		hole := Type(&THole{ID: id})
		pruned := c.sub.Apply(hole)
		switch pruned.(type) {
		case *THole, *TVar:
			c.errorAt("TYPE-HOLE-UNRESOLVED", fmt.Sprintf("unresolved type hole, suggest: %s", SuggestedReplacement(hole, c.sub)), span)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
