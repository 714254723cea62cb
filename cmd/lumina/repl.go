package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/codegen/target"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/mono"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/semantic"
	"github.com/lumina-lang/lumina/internal/types"
)

var replTarget string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse, check, and emit Lumina source one line at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runREPL(os.Stdout)
		return nil
	},
}

func init() {
	replCmd.Flags().StringVar(&replTarget, "target", "cjs", "emission target for :js, cjs or esm")
	rootCmd.AddCommand(replCmd)
}

const replHistoryFile = ".lumina_history"

var replCommands = []string{":help", ":quit", ":ast", ":js", ":reset"}

// runREPL drives an interactive read-compile-print loop. Unlike the
// teacher's REPL (internal/repl in the reference pack, which evaluates
// each line against a persistent environment), this REPL never executes
// anything: per spec.md's Non-goals, "hosted execution of produced
// artifacts" is an external collaborator this repository doesn't
// provide, so a line is only parsed, analyzed, and (on :js) emitted —
// never run. Each line is a standalone program: there is no persistent
// binding environment carried between lines, since lowering a `let`
// across REPL turns would require exactly the kind of incremental
// whole-program state internal/project already owns, not a REPL concern.
func runREPL(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyPath := filepath.Join(os.TempDir(), replHistoryFile)
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	line.SetMultiLineMode(true)
	line.SetCompleter(func(partial string) (c []string) {
		if strings.HasPrefix(partial, ":") {
			for _, cmd := range replCommands {
				if strings.HasPrefix(cmd, partial) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("lumina repl"), bold(Version))
	fmt.Fprintln(out, "Type :help for help, :quit to exit. Input is parsed and checked, never executed.")

	for {
		input, err := line.Prompt("lumina> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(out, green("goodbye"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if handled := replCommand(out, input); handled {
			if input == ":quit" {
				break
			}
			continue
		}

		replEval(out, input)
	}

	if f, err := os.Create(historyPath); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func replCommand(out io.Writer, input string) bool {
	switch {
	case input == ":help":
		fmt.Fprintln(out, "  :help        show this message")
		fmt.Fprintln(out, "  :quit        exit the repl")
		fmt.Fprintln(out, "  :ast <expr>  print the parsed AST instead of checking it")
		fmt.Fprintln(out, "  :js <expr>   parse, check, and print the emitted JS")
		fmt.Fprintln(out, "  :reset       clear the terminal")
		return true
	case input == ":quit":
		return true
	case input == ":reset":
		fmt.Fprint(out, "\033[2J\033[H")
		return true
	case strings.HasPrefix(input, ":ast "):
		replPrintAST(out, strings.TrimPrefix(input, ":ast "))
		return true
	case strings.HasPrefix(input, ":js "):
		replEmitJS(out, strings.TrimPrefix(input, ":js "))
		return true
	}
	return false
}

// replParse wraps src in a statement terminator if the caller forgot one,
// since a bare REPL expression like `1 + 2` is otherwise not a valid
// top-level statement.
func replParse(src string) *parser.Parser {
	trimmed := strings.TrimSpace(src)
	if !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "}") {
		trimmed += ";"
	}
	return parser.NewFromSource(trimmed, "<repl>")
}

func replPrintAST(out io.Writer, src string) {
	p := replParse(src)
	prog := p.Parse()
	for _, e := range p.Errors() {
		fmt.Fprintf(out, "%s %s\n", red("error"), e.Error())
	}
	fmt.Fprintln(out, ast.PrintProgram(prog))
}

func replEval(out io.Writer, src string) {
	prog, _, diags := replCheck(src)
	diagnostic.SortByLocation(diags)
	for _, d := range diags {
		diagnostic.Render(out, d, src, useColor())
	}
	if !diagnostic.HasErrors(diags) {
		fmt.Fprintf(out, "%s %d top-level statement(s)\n", green("ok"), len(prog.Body))
	}
}

func replEmitJS(out io.Writer, src string) {
	prog, checker, diags := replCheck(src)
	diagnostic.SortByLocation(diags)
	for _, d := range diags {
		diagnostic.Render(out, d, src, useColor())
	}
	if diagnostic.HasErrors(diags) {
		return
	}
	mono.Run(prog, checker)
	tgt := target.CJS
	if replTarget == "esm" {
		tgt = target.ESM
	}
	res, err := target.EmitProgram(prog, target.Options{Target: tgt, SourceMap: target.SourceMapNone})
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error"), err)
		return
	}
	fmt.Fprint(out, res.Code)
}

func replCheck(src string) (*ast.Program, *types.Checker, []*diagnostic.Diagnostic) {
	p := replParse(src)
	prog := p.Parse()

	var diags []*diagnostic.Diagnostic
	diags = append(diags, p.Errors()...)

	sem := semantic.NewAnalyzer()
	sem.Analyze(prog, p.MissingSemicolons())
	diags = append(diags, sem.Diagnostics()...)

	checker := types.NewChecker(prog)
	checker.Infer(prog)
	diags = append(diags, checker.Diagnostics()...)

	return prog, checker, diags
}
