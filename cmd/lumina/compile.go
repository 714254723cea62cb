package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/cache"
	"github.com/lumina-lang/lumina/internal/codegen/stack"
	"github.com/lumina-lang/lumina/internal/codegen/target"
	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/mono"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/project"
	"github.com/lumina-lang/lumina/internal/semantic"
	"github.com/lumina-lang/lumina/internal/types"
)

// compileFlags mirrors spec.md §6.1's compile flag surface; check and
// watch reuse it rather than each declaring their own overlapping set.
type compileFlags struct {
	out             string
	target          string
	grammar         string
	dryRun          bool
	recovery        bool
	sourceMap       string
	legacySourceMap bool
	inlineSourceMap bool
	noOptimize      bool
	astJS           bool
	debugIR         bool
	profileCache    bool
	listConfig      bool
	allowSystemDirs bool
}

func registerCompileFlags(cmd *cobra.Command, f *compileFlags) {
	cmd.Flags().StringVar(&f.out, "out", "", "output file path")
	cmd.Flags().StringVar(&f.target, "target", "", "compilation target: cjs, esm, or wasm")
	cmd.Flags().StringVar(&f.grammar, "grammar", "", "path to a custom .peg grammar source")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "synonym for the check subcommand: never emit output")
	cmd.Flags().BoolVar(&f.recovery, "recovery", false, "parse in panic-mode recovery, tolerating malformed declarations")
	cmd.Flags().StringVar(&f.sourceMap, "source-map", "none", "source map mode: inline, external, or none")
	cmd.Flags().BoolVar(&f.legacySourceMap, "sourcemap", false, "legacy synonym for --source-map external")
	cmd.Flags().BoolVar(&f.inlineSourceMap, "inline-sourcemap", false, "legacy synonym for --source-map inline")
	cmd.Flags().BoolVar(&f.noOptimize, "no-optimize", false, "skip the IR optimization pass used for --debug-ir")
	cmd.Flags().BoolVar(&f.astJS, "ast-js", false, "accepted for compatibility; emission is always AST-direct (see DESIGN.md)")
	cmd.Flags().BoolVar(&f.debugIR, "debug-ir", false, "write a Graphviz .dot file of the lowered IR alongside the output")
	cmd.Flags().BoolVar(&f.profileCache, "profile-cache", false, "print cache hit/miss/write counts and dependency graph size")
	cmd.Flags().BoolVar(&f.listConfig, "list-config", false, "print the resolved configuration and exit")
	cmd.Flags().BoolVar(&f.allowSystemDirs, "allow-system-dirs", false, "allow --out to resolve inside a system directory")
}

// resolveSourceMapMode reconciles --source-map with the two legacy
// boolean flags spec.md §6.1 keeps for backward compatibility, the
// explicit --source-map value winning if both forms are given.
func (f *compileFlags) resolveSourceMapMode(cmd *cobra.Command) target.SourceMapMode {
	if cmd.Flags().Changed("source-map") {
		return target.SourceMapMode(f.sourceMap)
	}
	if f.inlineSourceMap {
		return target.SourceMapInline
	}
	if f.legacySourceMap {
		return target.SourceMapExternal
	}
	return target.SourceMapNone
}

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Parse, check, and emit a Lumina source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args[0], &sharedCompileFlags, false)
	},
}

var sharedCompileFlags compileFlags

func init() {
	registerCompileFlags(compileCmd, &sharedCompileFlags)
	rootCmd.AddCommand(compileCmd)
}

// runCompile is the shared pipeline behind `compile`, `check`, and
// `--dry-run`: resolve configuration, validate output paths, parse and
// analyze the source, report diagnostics, and (unless dryRun) emit and
// write the compiled artifact. It returns an error for an I/O or
// configuration failure, and also when the diagnostics include an error;
// in that case the returned error only counts them, since the diagnostics
// themselves are already rendered to stderr by the time it returns.
func runCompile(cmd *cobra.Command, path string, f *compileFlags, dryRun bool) error {
	dryRun = dryRun || f.dryRun

	cfg, err := resolveConfig(configOverrides{
		Target:      f.target,
		TargetSet:   cmd.Flags().Changed("target"),
		Grammar:     f.grammar,
		GrammarSet:  cmd.Flags().Changed("grammar"),
		Recovery:    f.recovery,
		RecoverySet: cmd.Flags().Changed("recovery"),
	})
	if err != nil {
		return err
	}

	if f.listConfig {
		printConfig(cfg)
		return nil
	}

	if !dryRun && f.out != "" {
		if err := validateOutPath(f.out, f.allowSystemDirs); err != nil {
			return err
		}
	}

	var cacheHit bool
	if f.profileCache && !cfg.Recovery {
		cacheHit, err = probeCacheEntry(path, cfg.CacheDir)
		if err != nil {
			return err
		}
	}

	prog, checker, src, diags, err := compileSource(path, cfg)
	if err != nil {
		return err
	}

	diagnostic.SortByLocation(diags)
	for _, d := range diags {
		diagnostic.Render(os.Stderr, d, src, useColor())
	}
	if diagnostic.HasErrors(diags) {
		return fmt.Errorf("%d error(s) compiling %s", countErrors(diags), path)
	}

	if dryRun {
		fmt.Printf("%s %s: no errors\n", green("ok"), path)
		return nil
	}

	if f.astJS {
		// internal/codegen/target and internal/codegen/stack both emit
		// directly from the type-checked AST already; there is no
		// separate AST-vs-IR emission path to switch between, so this
		// flag is accepted and otherwise a no-op (see DESIGN.md).
		fmt.Fprintf(os.Stderr, "%s --ast-js has no effect: emission is always AST-direct\n", yellow("note"))
	}

	if f.debugIR {
		// Recomputed independently of internal/project's cached Document.IR,
		// which always optimizes (project.go hardcodes noOptimize=false) —
		// this is the one place --no-optimize actually takes effect, since
		// neither codegen backend consumes the IR at all (see DESIGN.md).
		irProg := ir.LowerProgram(prog)
		ir.OptimizeProgram(irProg, f.noOptimize)
		if err := writeDebugIR(path, f.out, irProg); err != nil {
			return err
		}
	}

	out, err := emit(prog, checker, path, src, cfg, f, cmd)
	if err != nil {
		return err
	}

	if err := writeOutput(f.out, out); err != nil {
		return err
	}

	if f.profileCache {
		stats := cache.Stats{Writes: 1}
		if cacheHit {
			stats.Hits = 1
		} else {
			stats.Misses = 1
		}
		printCacheStats(stats, 1, countImports(prog))
	}

	return nil
}

// compileSource parses, analyzes, and (on success) lowers path's
// contents, either through the shared incremental pipeline
// (internal/project) or, when recovery is requested, directly through
// parser.ParseWithRecovery — project.Context's own compile step always
// parses without recovery, so recovery mode bypasses the project cache
// entirely rather than widening that package's contract for one CLI flag.
func compileSource(path string, cfg config.Config) (*ast.Program, *types.Checker, string, []*diagnostic.Diagnostic, error) {
	if cfg.Recovery {
		return compileWithRecovery(path)
	}

	ctx := project.NewContext(cfg, cfg.CacheDir)
	doc, err := loadDocument(ctx, path)
	if err != nil {
		return nil, nil, "", nil, err
	}
	return doc.AST, doc.Checker, doc.Source, doc.Diagnostics, nil
}

func compileWithRecovery(path string) (*ast.Program, *types.Checker, string, []*diagnostic.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res := parser.ParseWithRecovery(string(src), path, parser.DefaultRecoveryConfig())
	prog := res.Program
	diags := append([]*diagnostic.Diagnostic{}, res.Diagnostics...)

	sem := semantic.NewAnalyzer()
	sem.Analyze(prog, nil)
	diags = append(diags, sem.Diagnostics()...)

	checker := types.NewChecker(prog)
	checker.Infer(prog)
	diags = append(diags, checker.Diagnostics()...)

	return prog, checker, string(src), diags, nil
}

func countErrors(diags []*diagnostic.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diagnostic.Error {
			n++
		}
	}
	return n
}

func emit(prog *ast.Program, checker *types.Checker, path string, src string, cfg config.Config, f *compileFlags, cmd *cobra.Command) (string, error) {
	t := cfg.Target
	if f.target != "" {
		t = config.Target(f.target)
	}

	mono.Run(prog, checker)

	switch t {
	case config.TargetWasm:
		res := stack.EmitModule(prog, checker)
		for _, d := range res.Diagnostics {
			diagnostic.Render(os.Stderr, d, src, useColor())
		}
		if diagnostic.HasErrors(res.Diagnostics) {
			return "", fmt.Errorf("%d error(s) emitting wasm text module", countErrors(res.Diagnostics))
		}
		return res.Text, nil
	case config.TargetESM:
		return emitJS(prog, path, target.ESM, f, cmd)
	default:
		return emitJS(prog, path, target.CJS, f, cmd)
	}
}

func emitJS(prog *ast.Program, path string, tgt target.Target, f *compileFlags, cmd *cobra.Command) (string, error) {
	opts := target.Options{
		Target:     tgt,
		SourceMap:  f.resolveSourceMapMode(cmd),
		SourceFile: path,
		OutFile:    f.out,
	}
	res, err := target.EmitProgram(prog, opts)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

func writeOutput(out, text string) error {
	if out == "" {
		fmt.Print(text)
		return nil
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return os.WriteFile(out, []byte(text), 0o644)
}

// writeDebugIR writes irProg as a Graphviz dot file alongside out (or
// path, if out is unset).
func writeDebugIR(path, out string, irProg *ir.Program) error {
	base := out
	if base == "" {
		base = path
	}
	dotPath := base + ".dot"
	return os.WriteFile(dotPath, []byte(irToDot(irProg)), 0o644)
}
