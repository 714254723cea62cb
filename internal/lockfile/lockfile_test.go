package lockfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing lockfile fixture: %v", err)
	}
}

func TestFindWalksUpAncestors(t *testing.T) {
	root := t.TempDir()
	writeLockfile(t, root, `{"lockfileVersion":1,"packages":{}}`)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(nested, "main.lm")

	lf, err := Find(src)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if lf == nil {
		t.Fatal("expected a lockfile to be found")
	}
}

func TestFindReturnsNilWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	lf, err := Find(filepath.Join(dir, "main.lm"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if lf != nil {
		t.Fatal("expected no lockfile to be found")
	}
}

func TestResolveRootStringMapping(t *testing.T) {
	dir := t.TempDir()
	writeLockfile(t, dir, `{
		"lockfileVersion": 1,
		"packages": {
			"left-pad": { "version": "1.0.0", "resolved": "vendor/left-pad", "lumina": "index.lm" }
		}
	}`)
	lf, err := Find(filepath.Join(dir, "main.lm"))
	if err != nil || lf == nil {
		t.Fatalf("Find: %v, %v", lf, err)
	}
	got, err := lf.Resolve("left-pad")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(dir, "vendor/left-pad", "index.lm")
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveSubpathMapping(t *testing.T) {
	dir := t.TempDir()
	writeLockfile(t, dir, `{
		"lockfileVersion": 1,
		"packages": {
			"kit": { "version": "2.0.0", "resolved": "vendor/kit",
				"lumina": { "./strings": "strings.lm", "./math": "math.lm" } }
		}
	}`)
	lf, err := Find(filepath.Join(dir, "main.lm"))
	if err != nil || lf == nil {
		t.Fatalf("Find: %v, %v", lf, err)
	}
	got, err := lf.Resolve("kit/strings")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(dir, "vendor/kit", "strings.lm")
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveUnknownPackageErrors(t *testing.T) {
	dir := t.TempDir()
	writeLockfile(t, dir, `{"lockfileVersion":1,"packages":{}}`)
	lf, err := Find(filepath.Join(dir, "main.lm"))
	if err != nil || lf == nil {
		t.Fatalf("Find: %v, %v", lf, err)
	}
	if _, err := lf.Resolve("ghost"); err == nil {
		t.Fatal("expected an error for an unresolvable package")
	}
}

func TestResolveAbsoluteResolvedPath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere")
	writeLockfile(t, dir, `{
		"lockfileVersion": 1,
		"packages": { "p": { "version": "1.0.0", "resolved": "`+filepath.ToSlash(abs)+`", "lumina": "m.lm" } }
	}`)
	lf, err := Find(filepath.Join(dir, "main.lm"))
	if err != nil || lf == nil {
		t.Fatalf("Find: %v, %v", lf, err)
	}
	got, err := lf.Resolve("p")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(abs, "m.lm")
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}
