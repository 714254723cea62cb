package main

import (
	"fmt"
	"path/filepath"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/cache"
)

// probeCacheEntry reports whether path already has an on-disk cache
// entry under cacheDir before this compile runs. internal/project never
// reads an entry back to decide whether to skip recompute (its cache is
// write-through only, keyed instead by an in-memory content hash that
// resets every process), so this is the CLI's own best-effort read of
// that same cache directory purely to report traffic for --profile-cache
// — presence, not a hash comparison, since the hashing key used to
// write an entry is internal/project's own unexported state.
func probeCacheEntry(path, cacheDir string) (hit bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	_, hit = cache.New(cacheDir).LoadEntry(abs)
	return hit, nil
}

// countImports counts prog's top-level import statements, standing in
// for --profile-cache's dependency-graph edge count for a single-file
// compile (a full project graph spans every tracked document, which a
// one-shot `compile` invocation never builds).
func countImports(prog *ast.Program) int {
	n := 0
	for _, stmt := range prog.Body {
		if _, ok := stmt.(*ast.Import); ok {
			n++
		}
	}
	return n
}

func printCacheStats(stats cache.Stats, nodeCount, edgeCount int) {
	fmt.Printf("%s\n", bold("cache stats"))
	fmt.Printf("  hits:          %d\n", stats.Hits)
	fmt.Printf("  misses:        %d\n", stats.Misses)
	fmt.Printf("  writes:        %d\n", stats.Writes)
	fmt.Printf("  invalidations: %d\n", stats.Invalidations)
	fmt.Printf("  graph nodes:   %d\n", nodeCount)
	fmt.Printf("  graph edges:   %d\n", edgeCount)
}
