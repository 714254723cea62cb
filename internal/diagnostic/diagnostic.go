// Package diagnostic defines the structured error/warning type shared by
// every compiler phase (lexer, parser, semantic analysis, type inference,
// monomorphization, lowering). A Diagnostic never terminates a phase: each
// phase collects as many as it can before handing the batch back to its
// caller, mirroring how the parser never panics on malformed input.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/lumina-lang/lumina/internal/ast"
)

// Severity classifies a Diagnostic for rendering and for exit-code decisions.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// RelatedInfo points at a secondary span relevant to a Diagnostic, e.g. the
// declaration site an "unused variable" warning refers back to.
type RelatedInfo struct {
	Location ast.Span
	Message  string
}

// Diagnostic is the canonical structured error/warning type. Code is a
// short stable identifier, mostly phase-prefixed (LEX-001, SYN-001,
// SEM-UNDEF-IDENT, CONST-DIV-ZERO, WASM-001, ...) with a few lint codes
// spelled as words (MISSING_SEMICOLON, UNUSED_BINDING), so tooling can
// group and filter without string-matching the message.
type Diagnostic struct {
	Severity           Severity
	Code               string
	Message            string
	Source             string // emitting component, e.g. "lumina-parser"
	Location           ast.Span
	RelatedInformation []RelatedInfo
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s [%s]", d.Location.Start, d.Message, d.Code)
}

// jsonDiagnostic is the wire shape for ToJSON; Severity is rendered as its
// string form so downstream tools (editors, CI parsers) don't need the enum.
type jsonDiagnostic struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Source   string        `json:"source"`
	Location ast.Span      `json:"location"`
	Related  []RelatedInfo `json:"relatedInformation,omitempty"`
}

// ToJSON renders a single Diagnostic as deterministic JSON.
func (d *Diagnostic) ToJSON() (string, error) {
	data, err := json.Marshal(jsonDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		Source:   d.Source,
		Location: d.Location,
		Related:  d.RelatedInformation,
	})
	return string(data), err
}

// SortByLocation orders diagnostics for stable, readable output: file, then
// line, then column. Diagnostics from different files keep their relative
// input order (stable sort).
func SortByLocation(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Location.Start, diags[j].Location.Start
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Render writes a human-readable rendering of diag to w, with a caret under
// the offending column when src is available. Color is only applied when
// useColor is true; callers should gate that on color.NoColor / isatty.
func Render(w io.Writer, diag *Diagnostic, src string, useColor bool) {
	sev := diag.Severity.String()
	loc := diag.Location.Start

	sevColor := severityColorFunc(diag.Severity, useColor)
	fmt.Fprintf(w, "%s: %s\n", sevColor(sev), diag.Message)
	fmt.Fprintf(w, "  --> %s:%d:%d [%s]\n", loc.File, loc.Line, loc.Column, diag.Code)

	if line := sourceLine(src, loc.Line); line != "" {
		fmt.Fprintf(w, "   |\n")
		fmt.Fprintf(w, "%3d| %s\n", loc.Line, line)
		caretCol := loc.Column
		if caretCol < 1 {
			caretCol = 1
		}
		fmt.Fprintf(w, "   | %s%s\n", strings.Repeat(" ", caretCol-1), sevColor("^"))
	}
	for _, rel := range diag.RelatedInformation {
		fmt.Fprintf(w, "  note: %s at %s\n", rel.Message, rel.Location.Start)
	}
}

func severityColorFunc(s Severity, useColor bool) func(a ...interface{}) string {
	if !useColor {
		return fmt.Sprint
	}
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}

func sourceLine(src string, line int) string {
	if src == "" || line < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// HasErrors reports whether any diagnostic in the batch is Error severity,
// the signal callers use to decide a nonzero exit code.
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
