package editorservice

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/project"
	"github.com/lumina-lang/lumina/internal/types"
)

// HoverResult is the information shown for the symbol under the cursor.
type HoverResult struct {
	// Signature is the rendered type or function signature.
	Signature string
	// Doc is the declaration's doc comment, if any.
	Doc string
	// DeclaredAt is the declaration's source position, if it could be
	// resolved; the zero Pos otherwise.
	DeclaredAt ast.Pos
}

// Hover finds the smallest node enclosing pos in path's document and
// describes it: a call's resolved signature if the cursor sits on the
// callee, a function's signature if it sits on a function name (a
// reference or the declaration header), otherwise the inferred type of
// the enclosing expression.
func Hover(ctx *project.Context, path string, pos ast.Pos) (*HoverResult, bool) {
	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil || doc.Checker == nil {
		return nil, false
	}

	node := enclosing(doc.AST, pos)

	if call, ok := node.(*ast.Call); ok {
		if info, ok := doc.Checker.InferredCalls[call.NodeID()]; ok {
			return &HoverResult{Signature: renderCallSignature(call, info)}, true
		}
	}

	// The walker's smallest-enclosing-node approximation always descends
	// into a Call's Callee once pos reaches it, so a cursor sitting on the
	// callee name lands on the *ast.Identifier, not the *ast.Call above
	// it. Check for that callee case explicitly before falling back to a
	// plain declaration lookup.
	if ident, ok := node.(*ast.Identifier); ok {
		if call := enclosingCallByCallee(doc.AST, ident); call != nil {
			if info, ok := doc.Checker.InferredCalls[call.NodeID()]; ok {
				return &HoverResult{Signature: renderCallSignature(call, info)}, true
			}
		}
	}

	if ident, ok := node.(*ast.Identifier); ok {
		if fn := findFnDecl(doc.AST, ident.Name); fn != nil {
			return &HoverResult{
				Signature:  renderFnSignature(fn, doc.Checker),
				Doc:        fn.DocComment,
				DeclaredAt: fn.Position(),
			}, true
		}
	}

	if fn, ok := node.(*ast.FnDecl); ok {
		return &HoverResult{
			Signature:  renderFnSignature(fn, doc.Checker),
			Doc:        fn.DocComment,
			DeclaredAt: fn.Position(),
		}, true
	}

	t, ok := doc.Checker.InferredExprs[node.NodeID()]
	if !ok {
		return nil, false
	}
	return &HoverResult{Signature: t.String()}, true
}

func renderCallSignature(call *ast.Call, info types.CallInfo) string {
	args := make([]string, len(info.Args))
	for i, a := range info.Args {
		args[i] = a.String()
	}
	ret := "void"
	if info.ReturnType != nil {
		ret = info.ReturnType.String()
	}
	callee := calleeName(call.Callee)
	return fmt.Sprintf("fn %s(%s) -> %s", callee, strings.Join(args, ", "), ret)
}

func calleeName(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.Member:
		return calleeName(v.X) + "." + v.Name
	default:
		return v.String()
	}
}

func renderFnSignature(fn *ast.FnDecl, checker *types.Checker) string {
	params, ok := checker.InferredFnParams[fn.Name]
	var parts []string
	for i, p := range fn.Params {
		if ok && i < len(params) {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Name, params[i].String()))
		} else if p.Type != nil {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Name, p.Type.String()))
		} else {
			parts = append(parts, p.Name)
		}
	}
	ret := checker.InferredFnReturns[fn.Name]
	retStr := "void"
	if ret != nil {
		retStr = ret.String()
	} else if fn.ReturnType != nil {
		retStr = fn.ReturnType.String()
	}
	return fmt.Sprintf("fn %s(%s) -> %s", fn.Name, strings.Join(parts, ", "), retStr)
}

// enclosingCallByCallee searches prog for a *ast.Call whose Callee is
// exactly the given identifier node (pointer identity), returning it if
// found.
func enclosingCallByCallee(prog *ast.Program, ident *ast.Identifier) *ast.Call {
	for _, s := range prog.Body {
		if found := findCallByCallee(s, ident); found != nil {
			return found
		}
	}
	return nil
}

func findCallByCallee(n ast.Node, ident *ast.Identifier) *ast.Call {
	if n == nil {
		return nil
	}
	if call, ok := n.(*ast.Call); ok {
		if calleeIdent, ok := call.Callee.(*ast.Identifier); ok && calleeIdent == ident {
			return call
		}
	}
	for _, c := range children(n) {
		if found := findCallByCallee(c, ident); found != nil {
			return found
		}
	}
	return nil
}

// findFnDecl looks up a top-level function declaration by name.
func findFnDecl(prog *ast.Program, name string) *ast.FnDecl {
	for _, s := range prog.Body {
		if fn, ok := s.(*ast.FnDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}
