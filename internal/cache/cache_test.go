package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumina-lang/lumina/internal/diagnostic"
)

func TestLoadIndexMissingReturnsEmpty(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "cache"))
	idx := c.LoadIndex()
	if len(idx.Files) != 0 {
		t.Fatalf("expected an empty index, got %v", idx.Files)
	}
}

func TestSaveAndLoadIndexRoundTrips(t *testing.T) {
	c := New(t.TempDir())
	idx := Index{Files: map[string]FileRecord{
		"/src/main.lm": {Hash: "abc123", Imports: []string{"kit/strings"}},
	}}
	if err := c.SaveIndex(idx); err != nil {
		t.Fatalf("SaveIndex: %v", err)
	}
	got := c.LoadIndex()
	rec, ok := got.Files["/src/main.lm"]
	if !ok {
		t.Fatal("expected /src/main.lm to round-trip")
	}
	if rec.Hash != "abc123" || len(rec.Imports) != 1 {
		t.Fatalf("got %+v", rec)
	}
}

func TestSaveAndLoadEntryRoundTrips(t *testing.T) {
	c := New(t.TempDir())
	e := Entry{
		Hash: "deadbeef",
		Diagnostics: []*diagnostic.Diagnostic{
			{Severity: diagnostic.Warning, Code: "LEX-001", Message: "bad char"},
		},
		GrammarHash: "grammar-v1",
	}
	if err := c.SaveEntry("/src/main.lm", e); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}
	got, ok := c.LoadEntry("/src/main.lm")
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if got.Hash != "deadbeef" || got.GrammarHash != "grammar-v1" {
		t.Fatalf("got %+v", got)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Code != "LEX-001" {
		t.Fatalf("diagnostics did not round-trip: %+v", got.Diagnostics)
	}
}

func TestLoadEntryMissingIsAMiss(t *testing.T) {
	c := New(t.TempDir())
	if _, ok := c.LoadEntry("/nope.lm"); ok {
		t.Fatal("expected a miss for an absent entry")
	}
}

func TestLoadEntryCorruptFileIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	if err := writeCorrupt(dir, HashPath("/src/main.lm")+".json"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.LoadEntry("/src/main.lm"); ok {
		t.Fatal("expected corrupt JSON to be treated as a cache miss")
	}
}

func TestInvalidateRemovesIndexAndDiskEntry(t *testing.T) {
	c := New(t.TempDir())
	idx := Index{Files: map[string]FileRecord{"/src/main.lm": {Hash: "x"}}}
	if err := c.SaveEntry("/src/main.lm", Entry{Hash: "x"}); err != nil {
		t.Fatal(err)
	}
	c.Invalidate(&idx, "/src/main.lm")
	if _, ok := idx.Files["/src/main.lm"]; ok {
		t.Fatal("expected index entry to be removed")
	}
	if _, ok := c.LoadEntry("/src/main.lm"); ok {
		t.Fatal("expected on-disk entry to be removed")
	}
}

func writeCorrupt(dir, name string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte("{not valid json"), 0o644)
}
