package ast

import (
	"fmt"
	"strings"
)

// WildcardPattern matches anything and never contributes to a match's
// exhaustiveness coverage requirement (it satisfies it outright).
type WildcardPattern struct {
	Base
}

func (w *WildcardPattern) String() string { return "_" }
func (w *WildcardPattern) patternNode()   {}

// EnumPattern matches an enum constructor, optionally qualified by the
// enum's name (`Option.Some(v)` vs bare `Some(v)`), binding each
// constructor argument position to a name.
type EnumPattern struct {
	Base
	EnumName string // optional qualifier; "" when the variant is used bare
	Variant  string
	Bindings []string
}

func (e *EnumPattern) String() string {
	if len(e.Bindings) == 0 {
		return e.qualified()
	}
	return fmt.Sprintf("%s(%s)", e.qualified(), strings.Join(e.Bindings, ", "))
}

func (e *EnumPattern) qualified() string {
	if e.EnumName == "" {
		return e.Variant
	}
	return e.EnumName + "." + e.Variant
}
func (e *EnumPattern) patternNode() {}

// StructFieldPattern binds one field of a StructPattern.
type StructFieldPattern struct {
	Name    string
	Pattern Pattern
	Pos     Pos
}

// StructPattern matches a struct literal, with an optional `..` rest marker.
type StructPattern struct {
	Base
	TypeName string
	Fields   []StructFieldPattern
	Rest     bool
}

func (s *StructPattern) String() string {
	fields := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Pattern)
	}
	if s.Rest {
		fields = append(fields, "..")
	}
	return fmt.Sprintf("%s { %s }", s.TypeName, strings.Join(fields, ", "))
}
func (s *StructPattern) patternNode() {}

// TuplePattern matches a tuple positionally.
type TuplePattern struct {
	Base
	Elements []Pattern
}

func (t *TuplePattern) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
func (t *TuplePattern) patternNode() {}

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	Base
	Lit *Literal
}

func (l *LiteralPattern) String() string { return l.Lit.String() }
func (l *LiteralPattern) patternNode()   {}
