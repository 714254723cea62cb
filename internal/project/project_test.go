package project

import (
	"path/filepath"
	"testing"

	"github.com/lumina-lang/lumina/internal/config"
)

func TestAddOrUpdateDocumentParsesAndChecks(t *testing.T) {
	ctx := NewContext(config.Default(), "")
	doc, deps, err := ctx.AddOrUpdateDocument("main.lm", []byte(`fn add(a: i32, b: i32) -> i32 { return a + b; }`))
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	if doc.AST == nil {
		t.Fatal("expected a parsed AST")
	}
	if doc.IR == nil {
		t.Fatal("expected lowered IR for an error-free document")
	}
	if deps != nil {
		t.Fatalf("expected no dependents for a fresh document, got %v", deps)
	}
}

func TestAddOrUpdateDocumentSkipsUnchangedContent(t *testing.T) {
	ctx := NewContext(config.Default(), "")
	src := []byte(`fn id(x: i32) -> i32 { return x; }`)
	first, _, err := ctx.AddOrUpdateDocument("main.lm", src)
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	second, _, err := ctx.AddOrUpdateDocument("main.lm", src)
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	if first != second {
		t.Fatal("expected an identical re-save to return the cached Document, not a fresh reparse")
	}
}

func TestAddOrUpdateDocumentReparsesOnChange(t *testing.T) {
	ctx := NewContext(config.Default(), "")
	first, _, err := ctx.AddOrUpdateDocument("main.lm", []byte(`fn id(x: i32) -> i32 { return x; }`))
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	second, _, err := ctx.AddOrUpdateDocument("main.lm", []byte(`fn id(x: i32) -> i32 { return x + 1; }`))
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	if first == second {
		t.Fatal("expected changed content to produce a new Document")
	}
}

func TestDependentsTracksImportGraph(t *testing.T) {
	ctx := NewContext(config.Default(), "")
	if _, _, err := ctx.AddOrUpdateDocument("./util.lm", []byte(`fn helper() -> i32 { return 1; }`)); err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	_, deps, err := ctx.AddOrUpdateDocument("./main.lm", []byte(`import "./util.lm";
fn main() -> i32 { return 0; }`))
	if err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	if deps != nil {
		t.Fatalf("main.lm has no dependents of its own yet, got %v", deps)
	}
	got := ctx.Dependents("./util.lm")
	if len(got) != 1 || got[0] != "./main.lm" {
		t.Fatalf("Dependents(util.lm) = %v, want [./main.lm]", got)
	}
}

func TestRemoveDocumentReturnsDependents(t *testing.T) {
	ctx := NewContext(config.Default(), "")
	if _, _, err := ctx.AddOrUpdateDocument("./util.lm", []byte(`fn helper() -> i32 { return 1; }`)); err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	if _, _, err := ctx.AddOrUpdateDocument("./main.lm", []byte(`import "./util.lm";
fn main() -> i32 { return 0; }`)); err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	deps := ctx.RemoveDocument("./util.lm")
	if len(deps) != 1 || deps[0] != "./main.lm" {
		t.Fatalf("RemoveDocument deps = %v, want [./main.lm]", deps)
	}
	if _, ok := ctx.Document("./util.lm"); ok {
		t.Fatal("expected util.lm to be gone")
	}
}

func TestWriteThroughPersistsToCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := NewContext(config.Default(), dir)
	if _, _, err := ctx.AddOrUpdateDocument("main.lm", []byte(`fn id(x: i32) -> i32 { return x; }`)); err != nil {
		t.Fatalf("AddOrUpdateDocument: %v", err)
	}
	idx := ctx.cache.LoadIndex()
	if _, ok := idx.Files["main.lm"]; !ok {
		t.Fatal("expected main.lm to be recorded in the cache index")
	}
}
