// Package target emits JavaScript-family target-language text (CommonJS
// or ES modules) directly from a (monomorphized, type-checked) AST, with
// an optional accompanying source map.
package target

import "github.com/lumina-lang/lumina/internal/runtimeboundary"

// Target selects the module style of the emitted preamble and, in a
// fuller pipeline, the runtime bindings appropriate to a given host.
type Target string

const (
	CJS Target = "cjs"
	ESM Target = "esm"
)

// SourceMapMode selects how (or whether) a source map is attached to the
// emitted text.
type SourceMapMode string

const (
	SourceMapInline   SourceMapMode = "inline"
	SourceMapExternal SourceMapMode = "external"
	SourceMapNone     SourceMapMode = "none"
)

// Options configures one emission pass.
type Options struct {
	Target     Target
	SourceMap  SourceMapMode
	SourceFile string // path recorded as the map's "sources" entry
	OutFile    string // generated file name; external maps sit beside it as OutFile+".map"
}

// Result is the output of one emission pass.
type Result struct {
	Code string
	Map  string // source-map v3 JSON; empty unless SourceMap != SourceMapNone
}

// codegenInternalNames are preamble bindings the emitter itself relies
// on that aren't part of the documented runtime library boundary
// (internal/runtimeboundary) — helpers for list literals, rendering,
// indexable-assignment targets, and panic formatting.
var codegenInternalNames = []string{
	"list", "render", "__set", "__lumina_index", "LuminaPanic", "formatValue",
}

// runtimeBoundaryNames is the fixed set of named bindings the emitted
// preamble declares: the full runtime library boundary contract
// (internal/runtimeboundary.ModuleNames, in spec order) plus the
// emitter's own internal helpers. Declaring the full set unconditionally
// (rather than computing which are actually referenced) keeps emission
// byte-deterministic without a usage-tracking pass over the program.
func runtimeBoundaryNames() []string {
	names := append([]string{}, runtimeboundary.ModuleNames()...)
	return append(names, codegenInternalNames...)
}
