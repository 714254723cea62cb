// Package cache implements the on-disk incremental-compile cache laid
// out in spec §6.4: a deps.json index of every source file's hash and
// import list, plus one JSON entry per source file keyed by a hash of
// its absolute path. Every read tolerates corruption by treating a
// parse failure as a cache miss rather than propagating the error —
// a stale or truncated cache should slow a build down, never break it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lumina-lang/lumina/internal/diagnostic"
)

const indexFileName = "deps.json"

// FileRecord is one source file's entry in the deps.json index.
type FileRecord struct {
	Hash    string   `json:"hash"`
	Imports []string `json:"imports"`
}

// Index is the parsed shape of <cacheDir>/deps.json.
type Index struct {
	Files map[string]FileRecord `json:"files"`
}

// Entry is one source file's full per-source cache payload, stored at
// <cacheDir>/<hash(sourcePath)>.json. AST and IR are stored as opaque
// JSON snapshots (internal/ast.Program's Stmt/Expr fields are
// interfaces with no custom unmarshaler, and internal/ir has no stable
// wire encoding of its own) — a cache hit is driven by comparing Hash
// and GrammarHash against the current source, not by deserializing
// these fields back into live trees.
type Entry struct {
	Hash        string                   `json:"hash"`
	AST         json.RawMessage          `json:"ast"`
	Diagnostics []*diagnostic.Diagnostic `json:"diagnostics"`
	IR          json.RawMessage          `json:"ir"`
	GrammarHash string                   `json:"grammarHash"`
}

// Cache reads and writes the on-disk layout rooted at dir
// (config.Config.CacheDir, resolved to an absolute or project-relative
// path by the caller).
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. dir is created lazily on first write.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// LoadIndex reads deps.json, returning an empty Index (not an error) if
// the file is absent or unparseable.
func (c *Cache) LoadIndex() Index {
	data, err := os.ReadFile(filepath.Join(c.dir, indexFileName))
	if err != nil {
		return Index{Files: map[string]FileRecord{}}
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return Index{Files: map[string]FileRecord{}}
	}
	if idx.Files == nil {
		idx.Files = map[string]FileRecord{}
	}
	return idx
}

// SaveIndex writes idx to deps.json, creating the cache directory if
// it doesn't exist. A write failure is reported but never fatal to the
// caller's compile — the cache is an optimization, not a source of truth.
func (c *Cache) SaveIndex(idx Index) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, indexFileName), data, 0o644)
}

// HashPath is the content-addressing scheme for per-source cache entry
// file names: sha256 of the absolute source path, hex-encoded.
func HashPath(absPath string) string {
	sum := sha256.Sum256([]byte(absPath))
	return hex.EncodeToString(sum[:])
}

// LoadEntry reads the cache entry for absPath, returning (nil, false)
// if no entry exists or the entry is corrupt — a tolerant miss, not an
// error, matching deps.json's own corruption tolerance.
func (c *Cache) LoadEntry(absPath string) (*Entry, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, HashPath(absPath)+".json"))
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	return &e, true
}

// SaveEntry writes e as the cache entry for absPath.
func (c *Cache) SaveEntry(absPath string, e Entry) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, HashPath(absPath)+".json"), data, 0o644)
}

// Invalidate removes absPath's entry from idx and deletes its on-disk
// cache file, tolerating the file already being gone.
func (c *Cache) Invalidate(idx *Index, absPath string) {
	delete(idx.Files, absPath)
	_ = os.Remove(filepath.Join(c.dir, HashPath(absPath)+".json"))
}

// Stats summarizes one compile run's cache traffic, printed by
// cmd/lumina's --profile-cache flag.
type Stats struct {
	Hits         int
	Misses       int
	Writes       int
	Invalidations int
}
