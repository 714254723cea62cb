package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// systemDirs are rejected as --out targets unless allowSystemDirs is set,
// per spec.md §6.1's requirement that an output path be validated against
// the working directory.
var systemDirs = []string{"/etc", "/bin", "/sbin", "/usr", "/sys", "/proc", "/dev", "/boot"}

// validateOutPath rejects a --out value containing a null byte or a ".."
// traversal segment, and (unless allowSystemDirs) one that resolves inside
// a well-known system directory.
func validateOutPath(path string, allowSystemDirs bool) error {
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("--out contains a null byte")
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return fmt.Errorf("--out must not contain a %q traversal segment", "..")
		}
	}
	if allowSystemDirs {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving --out: %w", err)
	}
	for _, dir := range systemDirs {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return fmt.Errorf("--out resolves inside system directory %s (pass --allow-system-dirs to override)", dir)
		}
	}
	return nil
}
