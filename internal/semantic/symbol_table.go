// Package semantic runs the scope-stack, two-pass analysis between
// parsing and type inference: hoisting, unknown-reference diagnostics,
// and a pair of style lints (UNUSED_BINDING, MISSING_SEMICOLON). Each
// symbol records its declaration's visibility; no lookup filters on it.
package semantic

import "github.com/lumina-lang/lumina/internal/ast"

// Kind classifies what a Symbol names.
type Kind int

const (
	KindVar Kind = iota
	KindFunc
	KindStruct
	KindEnum
	KindTrait
	KindTypeParam
)

// Symbol is one name bound in a SymbolTable: its kind, declaration site,
// visibility, and whether anything has referenced it yet.
type Symbol struct {
	Name       string
	Kind       Kind
	Visibility ast.Visibility
	DeclPos    ast.Pos
	Used       bool
	SuppressUnusedWarn bool
}

// SymbolTable is a chain of lexically nested scopes, mirroring the
// inference engine's Env but carrying declaration metadata instead of
// types, since the analyzer runs as its own pass ahead of inference.
type SymbolTable struct {
	outer   *SymbolTable
	symbols map[string]*Symbol
}

// NewSymbolTable returns a fresh root scope with no bindings.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: map[string]*Symbol{}}
}

// NewEnclosedSymbolTable opens a child scope of outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	return &SymbolTable{outer: outer, symbols: map[string]*Symbol{}}
}

// Define introduces name into the current scope, shadowing any outer
// binding, and returns the Symbol for further annotation.
func (st *SymbolTable) Define(name string, kind Kind, vis ast.Visibility, at ast.Pos) *Symbol {
	sym := &Symbol{Name: name, Kind: kind, Visibility: vis, DeclPos: at}
	st.symbols[name] = sym
	return sym
}

// Resolve walks outward through the scope chain for name.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	for cur := st; cur != nil; cur = cur.outer {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LocalSymbols returns every symbol defined directly in this scope (not
// its ancestors), used by the UNUSED_BINDING lint when a scope closes.
func (st *SymbolTable) LocalSymbols() []*Symbol {
	out := make([]*Symbol, 0, len(st.symbols))
	for _, sym := range st.symbols {
		out = append(out, sym)
	}
	return out
}
