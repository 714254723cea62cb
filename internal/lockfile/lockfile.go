// Package lockfile implements lumina.lock.json discovery and package
// import resolution (spec §6.3): given an import like "pkg/sub" and the
// source file importing it, locate the nearest ancestor lockfile, read
// pkg's entry, and resolve the subpath against it.
package lockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const fileName = "lumina.lock.json"

// PackageEntry is one package's resolution record in lumina.lock.json.
type PackageEntry struct {
	Version   string      `json:"version"`
	Resolved  string      `json:"resolved"`
	Integrity string      `json:"integrity,omitempty"`
	Lumina    interface{} `json:"lumina,omitempty"` // string, or map[string]string keyed by subpath
}

// Lockfile is the parsed shape of lumina.lock.json.
type Lockfile struct {
	LockfileVersion int                     `json:"lockfileVersion"`
	Packages        map[string]PackageEntry `json:"packages"`

	dir string // directory the lockfile was found in, for resolving relative "resolved" paths
}

// Find walks upward from the directory containing fromFile looking for
// lumina.lock.json, returning the parsed lockfile from the nearest
// ancestor that has one. It returns (nil, nil) if no lockfile is found
// anywhere above fromFile.
func Find(fromFile string) (*Lockfile, error) {
	dir := filepath.Dir(fromFile)
	for {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil {
			return parse(data, dir)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("lockfile: reading %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func parse(data []byte, dir string) (*Lockfile, error) {
	var lf Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("lockfile: %s: %w", filepath.Join(dir, fileName), err)
	}
	lf.dir = dir
	return &lf, nil
}

// New returns an empty lockfile rooted at dir, for `lumina install` to
// populate and Save when no lumina.lock.json exists yet.
func New(dir string) *Lockfile {
	return &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{}, dir: dir}
}

// Load reads the lockfile directly at path (as opposed to Find's upward
// search), returning New(filepath.Dir(path)) if it doesn't exist yet —
// the entry point cmd/lumina's install/add/remove/list subcommands use,
// since they operate on one project's lockfile rather than resolving an
// import from an arbitrary source file.
func Load(path string) (*Lockfile, error) {
	dir := filepath.Dir(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(dir), nil
		}
		return nil, fmt.Errorf("lockfile: reading %s: %w", path, err)
	}
	return parse(data, dir)
}

// Save writes lf back to path as indented JSON.
func (lf *Lockfile) Save(path string) error {
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("lockfile: encoding %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Set adds or replaces pkgName's entry.
func (lf *Lockfile) Set(pkgName string, entry PackageEntry) {
	if lf.Packages == nil {
		lf.Packages = map[string]PackageEntry{}
	}
	lf.Packages[pkgName] = entry
}

// Remove deletes pkgName's entry, reporting whether it was present.
func (lf *Lockfile) Remove(pkgName string) bool {
	if _, ok := lf.Packages[pkgName]; !ok {
		return false
	}
	delete(lf.Packages, pkgName)
	return true
}

// Names returns every package name currently recorded, sorted.
func (lf *Lockfile) Names() []string {
	names := make([]string, 0, len(lf.Packages))
	for name := range lf.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves an import spec of the form "pkgName" or
// "pkgName/subpath" against lf, returning the absolute file path (before
// extension inference) to load. Extension inference (trying
// config.FileExtensions in order) is the caller's responsibility, since
// this package knows nothing about which extensions a project accepts.
func (lf *Lockfile) Resolve(importSpec string) (string, error) {
	pkgName, subpath := splitImportSpec(importSpec)
	entry, ok := lf.Packages[pkgName]
	if !ok {
		return "", fmt.Errorf("lockfile: no entry for package %q", pkgName)
	}

	mapped, err := entry.subpathTarget(subpath)
	if err != nil {
		return "", fmt.Errorf("lockfile: package %q: %w", pkgName, err)
	}

	base := entry.Resolved
	if !filepath.IsAbs(base) {
		base = filepath.Join(lf.dir, base)
	}
	return filepath.Join(base, mapped), nil
}

// subpathTarget resolves subpath (empty for a bare "pkgName" import)
// against this entry's Lumina mapping, which spec §6.3 allows to be
// either a single string (covering "." for every subpath) or a
// map[string]string keyed by "./sub".
func (e PackageEntry) subpathTarget(subpath string) (string, error) {
	key := "."
	if subpath != "" {
		key = "./" + subpath
	}

	switch m := e.Lumina.(type) {
	case nil:
		if subpath == "" {
			return "", nil
		}
		return "", fmt.Errorf("no lumina mapping for subpath %q", subpath)
	case string:
		if subpath == "" {
			return m, nil
		}
		return "", fmt.Errorf("package exports only its root, but import requested subpath %q", subpath)
	case map[string]interface{}:
		if v, ok := m[key]; ok {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("lumina[%q] is not a string", key)
			}
			return s, nil
		}
		if rootVal, ok := m["."]; ok && subpath == "" {
			s, ok := rootVal.(string)
			if !ok {
				return "", fmt.Errorf("lumina[\".\"] is not a string")
			}
			return s, nil
		}
		return "", fmt.Errorf("no lumina mapping for subpath %q", key)
	default:
		return "", fmt.Errorf("unrecognized lumina field shape %T", e.Lumina)
	}
}

// splitImportSpec splits "pkg/sub/path" into ("pkg", "sub/path") and
// "pkg" into ("pkg", "").
func splitImportSpec(spec string) (pkgName, subpath string) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '/' {
			return spec[:i], spec[i+1:]
		}
	}
	return spec, ""
}
