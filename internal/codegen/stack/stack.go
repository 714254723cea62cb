// Package stack translates a restricted subset of a program — primitive
// integers and floats, primitive function calls, if/while, and binary
// arithmetic — into a linear stack-machine text module, grounded in the
// teacher's internal/bytecode disassembler's writer-based, one-function-
// per-opcode-category emission style adapted to a textual rather than a
// binary target. Constructs outside the restricted subset emit a
// WASM-001 diagnostic and continue by inserting `unreachable` in their
// place, mirroring the teacher's error-tolerant bytecode compiler rather
// than aborting the whole module on the first unsupported construct.
package stack

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/types"
)

const unsupportedCode = "WASM-001"

// fixedImports is the module's always-present import set, in declaration
// order; nothing in the restricted subset lets a program add its own.
var fixedImports = []struct {
	name    string
	params  []string
	results []string
}{
	{"print_int", []string{"i32"}, nil},
	{"print_float", []string{"f64"}, nil},
	{"print_bool", []string{"i32"}, nil},
	{"abs_int", []string{"i32"}, []string{"i32"}},
	{"abs_float", []string{"f64"}, []string{"f64"}},
}

// Result is the output of one EmitModule call.
type Result struct {
	Text        string
	Diagnostics []*diagnostic.Diagnostic
}

// EmitModule renders prog's restricted subset as a stack-machine text
// module. checker supplies the resolved numeric type of each expression
// (i32 vs f64) so arithmetic picks the right opcode family;
// nothing here re-runs inference.
func EmitModule(prog *ast.Program, checker *types.Checker) Result {
	e := &emitter{checker: checker}
	e.writeHeader()
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FnDecl); ok {
			if fn.Body == nil {
				continue // extern: no body to translate
			}
			e.emitFunc(fn)
		}
	}
	e.write(")\n")
	return Result{Text: e.buf.String(), Diagnostics: e.diags}
}

type emitter struct {
	buf            strings.Builder
	checker        *types.Checker
	diags          []*diagnostic.Diagnostic
	locals         map[string]bool
	declaredLocals map[string]string
}

func (e *emitter) write(s string)                    { e.buf.WriteString(s) }
func (e *emitter) writef(f string, a ...interface{}) { fmt.Fprintf(&e.buf, f, a...) }

func (e *emitter) writeHeader() {
	e.write("(module\n")
	for _, imp := range fixedImports {
		params := ""
		for _, p := range imp.params {
			params += fmt.Sprintf(" (param %s)", p)
		}
		results := ""
		for _, r := range imp.results {
			results += fmt.Sprintf(" (result %s)", r)
		}
		e.writef("  (import \"env\" \"%s\" (func $%s%s%s))\n", imp.name, imp.name, params, results)
	}
	e.write("  (memory (export \"memory\") 1)\n")
}

// flagUnsupportedType records a WASM-001 diagnostic for a function
// signature type outside the restricted numeric subset, without writing
// to the module buffer itself — the caller decides where the resulting
// unreachable belongs relative to the function header it's still
// assembling.
func (e *emitter) flagUnsupportedType(pos ast.Pos, what string) {
	e.diags = append(e.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Warning,
		Code:     unsupportedCode,
		Message:  fmt.Sprintf("%s is not representable in the stack-machine subset; emitting unreachable", what),
		Source:   "lumina-stack-codegen",
		Location: ast.Span{Start: pos, End: pos},
	})
}

func (e *emitter) unsupported(pos ast.Pos, what string) {
	e.diags = append(e.diags, &diagnostic.Diagnostic{
		Severity: diagnostic.Warning,
		Code:     unsupportedCode,
		Message:  fmt.Sprintf("%s is not representable in the stack-machine subset; emitting unreachable", what),
		Source:   "lumina-stack-codegen",
		Location: ast.Span{Start: pos, End: pos},
	})
	e.write("    unreachable\n")
}
