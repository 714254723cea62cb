package target

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
)

// emitExpr renders e inline and returns the generated text. Most
// expression kinds render as a single-line fragment; Block and MatchExpr
// (value position only — MatchStmt and a plain Block statement go
// through emitStmt instead) render as an immediately-invoked arrow
// function body built by a throwaway sub-emitter with no source map of
// its own: source-map fidelity inside such an IIFE is a known, narrow
// gap, since those bodies have no single statement-initial position of
// their own to anchor against in the enclosing line.
func (e *emitter) emitExpr(expr ast.Expr) string {
	switch n := expr.(type) {
	case *ast.Literal:
		return e.emitLiteral(n)

	case *ast.Identifier:
		return n.Name

	case *ast.InterpolatedString:
		return e.emitInterpolated(n)

	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", e.emitExpr(n.Left), jsBinOp(n.Op), e.emitExpr(n.Right))

	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", jsUnOp(n.Op), e.emitExpr(n.X))

	case *ast.Call:
		return e.emitCall(n)

	case *ast.Member:
		return fmt.Sprintf("%s.%s", e.emitExpr(n.X), n.Name)

	case *ast.StructLiteral:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Name, e.emitExpr(f.Value))
		}
		return "{ " + strings.Join(fields, ", ") + " }"

	case *ast.ArrayLiteral:
		elems := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = e.emitExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"

	case *ast.Index:
		return fmt.Sprintf("__lumina_index(%s, %s)", e.emitExpr(n.X), e.emitExpr(n.Index))

	case *ast.MatchExpr:
		return e.emitMatchExprIIFE(n)

	case *ast.IsExpr:
		if ep, ok := n.Pattern.(*ast.EnumPattern); ok {
			return fmt.Sprintf("(%s.$tag === %q)", e.emitExpr(n.X), ep.Variant)
		}
		return "true"

	case *ast.Try:
		x := e.emitExpr(n.X)
		return fmt.Sprintf("(() => { const __r = %s; if (__r.$tag === \"Err\") { return __r; } return __r.$payload; })()", x)

	case *ast.Move:
		return e.emitExpr(n.X)

	case *ast.Await:
		return fmt.Sprintf("(await %s)", e.emitExpr(n.X))

	case *ast.Range:
		incl := "false"
		if n.Inclusive {
			incl = "true"
		}
		return fmt.Sprintf("{ start: %s, end: %s, inclusive: %s }", e.emitExpr(n.Start), e.emitExpr(n.End), incl)

	case *ast.Lambda:
		return e.emitLambda(n)

	case *ast.Tuple:
		elems := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = e.emitExpr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"

	case *ast.Block:
		return e.emitBlockExprIIFE(n)
	}
	return "undefined"
}

func (e *emitter) emitLiteral(n *ast.Literal) string {
	switch n.Kind {
	case ast.LitNumber:
		return strconv.FormatInt(n.IVal, 10)
	case ast.LitFloat:
		return strconv.FormatFloat(n.FVal, 'g', -1, 64)
	case ast.LitString:
		return strconv.Quote(n.SVal)
	case ast.LitBoolean:
		if n.BVal {
			return "true"
		}
		return "false"
	default:
		return strconv.Quote(n.Raw)
	}
}

func (e *emitter) emitInterpolated(n *ast.InterpolatedString) string {
	var sb strings.Builder
	sb.WriteByte('`')
	for i, seg := range n.Segments {
		sb.WriteString(templateEscape(seg))
		if i < len(n.Exprs) {
			sb.WriteString("${formatValue(")
			sb.WriteString(e.emitExpr(n.Exprs[i]))
			sb.WriteString(")}")
		}
	}
	sb.WriteByte('`')
	return sb.String()
}

func templateEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`", "$", "\\$")
	return r.Replace(s)
}

// emitCall distinguishes enum-qualified constructors, method-style
// calls, and bare function calls per spec.md 4.8.
func (e *emitter) emitCall(n *ast.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.emitExpr(a)
	}
	argList := strings.Join(args, ", ")

	if n.EnumName != "" {
		variant := ""
		if ident, ok := n.Callee.(*ast.Identifier); ok {
			variant = ident.Name
		}
		return fmt.Sprintf("%s.%s(%s)", n.EnumName, variant, argList)
	}
	return fmt.Sprintf("%s(%s)", e.emitExpr(n.Callee), argList)
}

func (e *emitter) emitLambda(n *ast.Lambda) string {
	names := paramNames(n.Params)
	return fmt.Sprintf("((%s) => %s)", strings.Join(names, ", "), e.emitExpr(n.Body))
}

// emitMatchExprIIFE and emitBlockExprIIFE render value-producing
// compound expressions as an immediately-invoked arrow function, using
// a throwaway sub-emitter (no source map) for the body.
func (e *emitter) emitMatchExprIIFE(n *ast.MatchExpr) string {
	sub := &emitter{opts: e.opts, indent: e.indent + 1}
	sub.writeIndent()
	sub.emitMatchSwitch(n.Subject, n.Arms, true)
	return "(() => {\n" + sub.buf.String() + strings.Repeat("  ", e.indent) + "})()"
}

func (e *emitter) emitBlockExprIIFE(b *ast.Block) string {
	sub := &emitter{opts: e.opts, indent: e.indent + 1}
	if b != nil && len(b.Stmts) > 0 {
		for _, s := range b.Stmts[:len(b.Stmts)-1] {
			sub.emitStmt(s)
		}
		last := b.Stmts[len(b.Stmts)-1]
		if es, ok := last.(*ast.ExprStmt); ok {
			sub.writeIndent()
			sub.writef("return %s;\n", sub.emitExpr(es.X))
		} else {
			sub.emitStmt(last)
		}
	}
	return "(() => {\n" + sub.buf.String() + strings.Repeat("  ", e.indent) + "})()"
}

func jsBinOp(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	default:
		return op
	}
}

func jsUnOp(op string) string {
	switch op {
	case "not":
		return "!"
	default:
		return op
	}
}
