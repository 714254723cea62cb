// Package grammar compiles a small PEG dialect into a rule table and
// interprets it against input text, generalizing the hand-written
// recursive-descent parsing style used elsewhere in this module into a
// data-driven rule-interpretation loop. This lets a grammar source file
// add or override start rules without a second parser implementation. A
// grammar source may open with a `---`-delimited YAML front-matter block
// naming and versioning itself; see Metadata.
package grammar

import (
	"fmt"
	"sort"
)

// Expr is one node of a compiled PEG rule body.
type Expr interface {
	exprNode()
}

// Literal matches an exact string.
type Literal struct{ Value string }

// CharClass matches a single rune against a set of ranges, e.g. [a-zA-Z_].
type CharClass struct {
	Ranges   []RuneRange
	Negated  bool
}

// RuneRange is an inclusive [Lo, Hi] range within a CharClass.
type RuneRange struct{ Lo, Hi rune }

// AnyChar matches any single rune (the `.` PEG primitive).
type AnyChar struct{}

// RuleRef refers to another rule by name, resolved at Compile time.
type RuleRef struct{ Name string }

// Sequence matches each Elems in order; all must succeed.
type Sequence struct{ Elems []Expr }

// Choice tries each Alts in order, taking the first success (ordered choice).
type Choice struct{ Alts []Expr }

// Star matches Elem zero or more times (`*`).
type Star struct{ Elem Expr }

// Plus matches Elem one or more times (`+`).
type Plus struct{ Elem Expr }

// Optional matches Elem zero or one time (`?`).
type Optional struct{ Elem Expr }

// AndPredicate succeeds without consuming input iff Elem matches (`&`).
type AndPredicate struct{ Elem Expr }

// NotPredicate succeeds without consuming input iff Elem fails to match (`!`).
type NotPredicate struct{ Elem Expr }

func (Literal) exprNode()      {}
func (CharClass) exprNode()    {}
func (AnyChar) exprNode()      {}
func (RuleRef) exprNode()      {}
func (Sequence) exprNode()     {}
func (Choice) exprNode()       {}
func (Star) exprNode()         {}
func (Plus) exprNode()         {}
func (Optional) exprNode()     {}
func (AndPredicate) exprNode() {}
func (NotPredicate) exprNode() {}

// Rule is one named production: name = body.
type Rule struct {
	Name string
	Body Expr
}

// Grammar is a compiled rule table ready to parse input via Parse.
type Grammar struct {
	rules map[string]*Rule
	start string
	meta  Metadata
}

// Metadata returns the grammar source's decoded front matter, or the zero
// Metadata if the source carried none.
func (g *Grammar) Metadata() Metadata { return g.meta }

// RuleNames returns every declared rule's name, sorted, for tooling that
// wants to summarize a compiled grammar (cmd/lumina's `grammar` subcommand).
func (g *Grammar) RuleNames() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartRule returns the rule name parsing begins from.
func (g *Grammar) StartRule() string { return g.start }

// CompileOptions controls how Compile resolves a grammar source.
type CompileOptions struct {
	// Start names the rule parsing begins from; "" defaults to the front
	// matter's start, or else to the grammar's first declared rule.
	Start string
}

// ParseOptions controls a single Grammar.Parse call.
type ParseOptions struct {
	// File is recorded on every produced Node's position for diagnostics.
	File string
	// Start overrides the grammar's configured start rule for this call.
	Start string
}

func (g *Grammar) lookup(name string) (*Rule, error) {
	r, ok := g.rules[name]
	if !ok {
		return nil, fmt.Errorf("grammar: undefined rule %q", name)
	}
	return r, nil
}
