package grammar

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
)

// Node is the generic parse tree a compiled Grammar produces: one node per
// matched rule, with its children in match order and the exact substring
// it consumed. It satisfies ast.Node so a grammar-driven parse can feed
// straight into any pass written against that interface.
type Node struct {
	ast.Base
	Rule     string
	Text     string
	Children []*Node
}

func (n *Node) String() string {
	if len(n.Children) == 0 {
		return fmt.Sprintf("%s(%q)", n.Rule, n.Text)
	}
	return fmt.Sprintf("%s(...)", n.Rule)
}

// ParseError reports a failed match with the furthest position reached,
// which is almost always the most useful point to report (PEG grammars
// backtrack silently, so "furthest failure" approximates "best attempt").
type ParseError struct {
	Pos     ast.Pos
	Message string
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// Parse runs the grammar's start rule (or opts.Start, if set) against
// input, returning the root Node on a full match. Trailing unconsumed
// input after an otherwise successful parse is itself a ParseError.
func (g *Grammar) Parse(input string, opts ParseOptions) (ast.Node, error) {
	start := opts.Start
	if start == "" {
		start = g.start
	}
	rule, err := g.lookup(start)
	if err != nil {
		return nil, err
	}
	ids := ast.NewIDAllocator()
	m := &matcher{src: []rune(input), file: opts.File, grammar: g, ids: ids}

	n, ok := m.matchRule(rule, 0)
	if !ok {
		return nil, &ParseError{Pos: m.posAt(m.furthest), Message: fmt.Sprintf("no match for rule %q", start)}
	}
	if n.end != len(m.src) {
		return nil, &ParseError{Pos: m.posAt(n.end), Message: "unconsumed input remains after parse"}
	}
	return n.node, nil
}

// matchResult pairs a produced Node with the input offset just past it.
type matchResult struct {
	node *Node
	end  int
}

type matcher struct {
	src      []rune
	file     string
	grammar  *Grammar
	ids      *ast.IDAllocator
	furthest int
}

func (m *matcher) posAt(offset int) ast.Pos {
	line, col := 1, 1
	for i := 0; i < offset && i < len(m.src); i++ {
		if m.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return ast.Pos{Line: line, Column: col, File: m.file, Offset: offset}
}

func (m *matcher) track(pos int) {
	if pos > m.furthest {
		m.furthest = pos
	}
}

func (m *matcher) matchRule(r *Rule, pos int) (matchResult, bool) {
	children, end, ok := m.matchChildren(r.Body, pos)
	if !ok {
		m.track(pos)
		return matchResult{}, false
	}
	node := &Node{
		Base:     ast.Base{ID: m.ids.Next(), Span: ast.Span{Start: m.posAt(pos), End: m.posAt(end)}},
		Rule:     r.Name,
		Text:     string(m.src[pos:end]),
		Children: children,
	}
	return matchResult{node: node, end: end}, true
}

// matchChildren runs e against pos, flattening any rule matches found
// directly inside a Sequence into this call's children (so a rule's
// produced Node's Children are exactly its named sub-rule matches, and
// anonymous literal/charclass matches inside the same sequence are
// absorbed into the consumed Text rather than cluttering the tree).
func (m *matcher) matchChildren(e Expr, pos int) ([]*Node, int, bool) {
	cur := pos
	var children []*Node
	ok := m.matchInto(e, &cur, &children)
	if !ok {
		return nil, pos, false
	}
	return children, cur, true
}

func (m *matcher) matchInto(e Expr, pos *int, children *[]*Node) bool {
	switch v := e.(type) {
	case Literal:
		n := len([]rune(v.Value))
		if *pos+n > len(m.src) || string(m.src[*pos:*pos+n]) != v.Value {
			m.track(*pos)
			return false
		}
		*pos += n
		return true

	case AnyChar:
		if *pos >= len(m.src) {
			m.track(*pos)
			return false
		}
		*pos++
		return true

	case CharClass:
		if *pos >= len(m.src) {
			m.track(*pos)
			return false
		}
		r := m.src[*pos]
		matched := false
		for _, rr := range v.Ranges {
			if r >= rr.Lo && r <= rr.Hi {
				matched = true
				break
			}
		}
		if v.Negated {
			matched = !matched
		}
		if !matched {
			m.track(*pos)
			return false
		}
		*pos++
		return true

	case RuleRef:
		rule, err := m.grammar.lookup(v.Name)
		if err != nil {
			return false
		}
		res, ok := m.matchRule(rule, *pos)
		if !ok {
			return false
		}
		*children = append(*children, res.node)
		*pos = res.end
		return true

	case Sequence:
		save := *pos
		saveChildren := len(*children)
		for _, el := range v.Elems {
			if !m.matchInto(el, pos, children) {
				*pos = save
				*children = (*children)[:saveChildren]
				return false
			}
		}
		return true

	case Choice:
		for _, alt := range v.Alts {
			save := *pos
			saveChildren := len(*children)
			if m.matchInto(alt, pos, children) {
				return true
			}
			*pos = save
			*children = (*children)[:saveChildren]
		}
		return false

	case Star:
		for {
			save := *pos
			saveChildren := len(*children)
			if !m.matchInto(v.Elem, pos, children) {
				*pos = save
				*children = (*children)[:saveChildren]
				return true
			}
			if *pos == save {
				return true // avoid an infinite loop on a nullable element
			}
		}

	case Plus:
		count := 0
		for {
			save := *pos
			saveChildren := len(*children)
			if !m.matchInto(v.Elem, pos, children) {
				*pos = save
				*children = (*children)[:saveChildren]
				break
			}
			count++
			if *pos == save {
				break
			}
		}
		return count > 0

	case Optional:
		save := *pos
		saveChildren := len(*children)
		if !m.matchInto(v.Elem, pos, children) {
			*pos = save
			*children = (*children)[:saveChildren]
		}
		return true

	case AndPredicate:
		save := *pos
		tmp := *children
		ok := m.matchInto(v.Elem, pos, &tmp)
		*pos = save
		return ok

	case NotPredicate:
		save := *pos
		tmp := *children
		ok := m.matchInto(v.Elem, pos, &tmp)
		*pos = save
		return !ok
	}
	return false
}
