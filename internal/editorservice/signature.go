package editorservice

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/project"
)

// SignatureHelp describes the call a cursor sits inside of.
type SignatureHelp struct {
	Label       string
	ParamLabels []string
	ActiveParam int
}

// SignatureHelpAt scans doc.Source backwards from pos for the innermost
// unclosed call parenthesis, then resolves the callee identifier
// immediately preceding it against the document's inferred function
// signatures. Strings and nested, already-closed parens are skipped so a
// call like f(g(1, 2), |) correctly reports f's second parameter, not g's.
func SignatureHelpAt(ctx *project.Context, path string, pos ast.Pos) (*SignatureHelp, bool) {
	doc, ok := ctx.Document(path)
	if !ok || doc.AST == nil {
		return nil, false
	}
	src := doc.Source
	offset := pos.Offset
	if offset > len(src) {
		offset = len(src)
	}

	openAt, activeParam, ok := findEnclosingCall(src[:offset])
	if !ok {
		return nil, false
	}

	name := identifierBefore(src, openAt)
	if name == "" {
		return nil, false
	}

	fn := findFnDecl(doc.AST, name)
	if fn == nil {
		return nil, false
	}

	labels := make([]string, len(fn.Params))
	params := doc.Checker.InferredFnParams[name]
	for i, p := range fn.Params {
		if i < len(params) {
			labels[i] = fmt.Sprintf("%s: %s", p.Name, params[i].String())
		} else {
			labels[i] = p.Name
		}
	}
	if activeParam >= len(labels) {
		activeParam = len(labels) - 1
	}
	return &SignatureHelp{
		Label:       renderFnSignature(fn, doc.Checker),
		ParamLabels: labels,
		ActiveParam: activeParam,
	}, true
}

// findEnclosingCall scans text backwards, tracking paren depth and string
// literals, and returns the offset of the first unmatched "(" plus the
// index of the argument the cursor is currently inside (comma count at
// that depth).
func findEnclosingCall(text string) (openAt int, activeParam int, ok bool) {
	depth := 0
	inString := false
	commas := 0
	for i := len(text) - 1; i >= 0; i-- {
		c := text[i]
		if inString {
			if c == '"' && (i == 0 || text[i-1] != '\\') {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ')':
			depth++
		case '(':
			if depth == 0 {
				return i, commas, true
			}
			depth--
		case ',':
			if depth == 0 {
				commas++
			}
		}
	}
	return 0, 0, false
}

// identifierBefore returns the identifier ending immediately at offset,
// skipping trailing whitespace.
func identifierBefore(src string, offset int) string {
	i := offset
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t' || src[i-1] == '\n') {
		i--
	}
	end := i
	for i > 0 && isIdentByte(src[i-1]) {
		i--
	}
	if i == end {
		return ""
	}
	return src[i:end]
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
