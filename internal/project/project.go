// Package project is the incremental document/graph/hash-cache model
// behind both the compiler driver and the editor service: it keeps a
// parsed, type-checked Document per source path, a dependency graph
// between them so a change can invalidate exactly its dependents, and a
// content hash (internal/project/hash.go, via
// github.com/minio/highwayhash) so an unchanged save is a no-op rather
// than a reparse. It generalizes the teacher's internal/module and
// internal/loader (a flat module cache keyed by canonical path, loaded
// once per process) into a long-lived, mutable, incrementally-updated
// context suitable for an editor session.
package project

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/cache"
	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/diagnostic"
	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/lockfile"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/semantic"
	"github.com/lumina-lang/lumina/internal/types"
)

// DebounceInterval is the filesystem-event coalescing window named in
// spec §4.10/§5: cmd/lumina's watch subcommand batches rapid-fire save
// events into one AddOrUpdateDocument call per file per window.
const DebounceInterval = 120 * time.Millisecond

// Document is one source file's current parsed/checked state.
type Document struct {
	Path        string
	Source      string
	Hash        uint64
	AST         *ast.Program
	Checker     *types.Checker
	IR          *ir.Program
	Imports     []string
	Diagnostics []*diagnostic.Diagnostic
}

// Context is a thread-safe, incrementally-updated set of Documents plus
// their import graph.
type Context struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	graph *graph
	cfg   config.Config
	cache *cache.Cache
	fs    fileSystem
}

// NewContext builds an empty project context. cacheDir, when non-empty,
// enables write-through persistence to internal/cache's on-disk layout;
// pass "" to keep everything in memory only (the editor service's
// common case for scratch/untitled buffers).
func NewContext(cfg config.Config, cacheDir string) *Context {
	var c *cache.Cache
	if cacheDir != "" {
		c = cache.New(cacheDir)
	}
	return &Context{
		docs:  map[string]*Document{},
		graph: newGraph(),
		cfg:   cfg,
		cache: c,
		fs:    newFileSystem(),
	}
}

// AddOrUpdateDocument parses, type-checks, and lowers the source at
// path, skipping all of that work and returning the existing Document
// unchanged if src hashes identically to what's already tracked for
// path. Dependents of path are returned so the caller (cmd/lumina watch,
// the editor service) knows what else needs re-diagnosing.
func (c *Context) AddOrUpdateDocument(path string, src []byte) (doc *Document, dependents []string, err error) {
	h := hashSource(src)

	c.mu.Lock()
	if existing, ok := c.docs[path]; ok && existing.Hash == h {
		c.mu.Unlock()
		return existing, nil, nil
	}
	c.mu.Unlock()

	doc, err = c.compile(path, src, h)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	c.docs[path] = doc
	c.graph.setEdges(path, doc.Imports)
	deps := c.graph.dependents(path)
	c.mu.Unlock()

	if c.cache != nil {
		c.writeThrough(path, doc)
	}

	return doc, deps, nil
}

func (c *Context) compile(path string, src []byte, h uint64) (*Document, error) {
	p := parser.NewFromSource(string(src), path)
	prog := p.Parse()

	var diags []*diagnostic.Diagnostic
	for _, e := range p.Errors() {
		diags = append(diags, &diagnostic.Diagnostic{
			Severity: diagnostic.Error,
			Code:     "SYN-001",
			Message:  e.Error(),
			Source:   "lumina-project",
		})
	}

	sem := semantic.NewAnalyzer()
	sem.Analyze(prog, p.MissingSemicolons())
	diags = append(diags, sem.Diagnostics()...)

	checker := types.NewChecker(prog)
	checker.Infer(prog)
	diags = append(diags, checker.Diagnostics()...)

	imports := importPaths(prog, path)

	doc := &Document{
		Path:        path,
		Source:      string(src),
		Hash:        h,
		AST:         prog,
		Checker:     checker,
		Imports:     imports,
		Diagnostics: diags,
	}

	hasErrors := false
	for _, d := range diags {
		if d.Severity == diagnostic.Error {
			hasErrors = true
			break
		}
	}
	if !hasErrors {
		irProg := ir.LowerProgram(prog)
		ir.OptimizeProgram(irProg, false)
		doc.IR = irProg
	}

	return doc, nil
}

// importPaths extracts the raw import specs from prog's top-level
// Import statements, resolving each against the nearest lumina.lock.json
// when the spec isn't a relative path — resolution failures are not
// fatal here (they surface as diagnostics from a later pass); this
// function only needs the dependency-graph edges.
func importPaths(prog *ast.Program, fromFile string) []string {
	var out []string
	for _, stmt := range prog.Body {
		imp, ok := stmt.(*ast.Import)
		if !ok {
			continue
		}
		if resolved, err := resolveImport(imp.Path, fromFile); err == nil {
			out = append(out, resolved)
		} else {
			out = append(out, imp.Path)
		}
	}
	return out
}

// resolveImport resolves one import spec to the path that should become
// a dependency-graph edge: a relative path resolves directly, and a bare
// package import resolves through the nearest lumina.lock.json.
func resolveImport(spec, fromFile string) (string, error) {
	if len(spec) > 0 && (spec[0] == '.' || spec[0] == '/') {
		return spec, nil
	}
	lf, err := lockfile.Find(fromFile)
	if err != nil {
		return "", err
	}
	if lf == nil {
		return "", fmt.Errorf("project: no lockfile found to resolve %q", spec)
	}
	return lf.Resolve(spec)
}

func (c *Context) writeThrough(path string, doc *Document) {
	idx := c.cache.LoadIndex()
	idx.Files[path] = cache.FileRecord{Hash: fmt.Sprintf("%x", doc.Hash), Imports: doc.Imports}
	_ = c.cache.SaveIndex(idx)
	_ = c.cache.SaveEntry(path, cache.Entry{
		Hash:        fmt.Sprintf("%x", doc.Hash),
		Diagnostics: doc.Diagnostics,
	})
}

// RemoveDocument drops path from the context, returning the paths that
// depended on it (and so may now have dangling-import diagnostics of
// their own to recompute).
func (c *Context) RemoveDocument(path string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	deps := c.graph.dependents(path)
	delete(c.docs, path)
	c.graph.remove(path)
	return deps
}

// Document returns the current state for path, if tracked.
func (c *Context) Document(path string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.docs[path]
	return d, ok
}

// Dependents returns every currently-tracked document that transitively
// imports path.
func (c *Context) Dependents(path string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph.dependents(path)
}

// ReadAndAdd reads path from the filesystem (via the afs-backed
// fileSystem, so non-local afs URLs work identically to local paths)
// and calls AddOrUpdateDocument with its content.
func (c *Context) ReadAndAdd(ctx context.Context, path string) (*Document, []string, error) {
	src, err := c.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("project: reading %s: %w", path, err)
	}
	return c.AddOrUpdateDocument(path, src)
}

// Paths returns every currently-tracked document path, in no particular
// order.
func (c *Context) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.docs))
	for p := range c.docs {
		paths = append(paths, p)
	}
	return paths
}
