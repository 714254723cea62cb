package ast

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------
// Source-level type annotations. These are distinct from internal/types'
// HM Type representation: an ast.Type is what the parser wrote down; the
// HM engine resolves it (or a fresh variable, if absent) to a types.Type.
// ---------------------------------------------------------------------

// NamedType is a primitive or nominal type reference, optionally generic:
// `i32`, `string`, `Option<T>`.
type NamedType struct {
	Base
	Name   string
	Args   []Type
}

func (n *NamedType) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}
func (n *NamedType) typeNode() {}

// FunctionType is `(A, B) -> R`.
type FunctionType struct {
	Base
	Params []Type
	Result Type
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Result)
}
func (f *FunctionType) typeNode() {}

// ArrayType is `[T; N]` where N is a const-generic expression (a literal,
// a const parameter, or a binary combination of either).
type ArrayType struct {
	Base
	Elem Type
	Size ConstExpr // nil = dynamically sized (slice-like)
}

func (a *ArrayType) String() string {
	if a.Size == nil {
		return fmt.Sprintf("[%s]", a.Elem)
	}
	return fmt.Sprintf("[%s; %s]", a.Elem, a.Size)
}
func (a *ArrayType) typeNode() {}

// TupleType is `(A, B, C)`.
type TupleType struct {
	Base
	Elems []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *TupleType) typeNode() {}

// PromiseType wraps the result of an async function: `Promise<T>`.
type PromiseType struct {
	Base
	Inner Type
}

func (p *PromiseType) String() string { return fmt.Sprintf("Promise<%s>", p.Inner) }
func (p *PromiseType) typeNode()      {}

// TypeHole is the `_` type placeholder.
type TypeHole struct {
	Base
}

func (t *TypeHole) String() string { return "_" }
func (t *TypeHole) typeNode()      {}

// ---------------------------------------------------------------------
// ConstExpr: const-generic expression trees.
// ---------------------------------------------------------------------

// ConstExpr is a compile-time-evaluable expression appearing in a const
// generic position (array sizes, const generic arguments).
type ConstExpr interface {
	Node
	constExprNode()
	String() string
}

type ConstLiteral struct {
	Base
	Value int64
}

func (c *ConstLiteral) String() string { return fmt.Sprintf("%d", c.Value) }
func (c *ConstLiteral) constExprNode() {}

type ConstParam struct {
	Base
	Name string
}

func (c *ConstParam) String() string { return c.Name }
func (c *ConstParam) constExprNode() {}

type ConstBinary struct {
	Base
	Op    string
	Left  ConstExpr
	Right ConstExpr
}

func (c *ConstBinary) String() string { return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right) }
func (c *ConstBinary) constExprNode() {}
