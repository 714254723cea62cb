// Package config loads and writes lumina.config.json, tolerantly: a
// field absent from the file keeps its default, while a file that is not
// valid JSON or a field present with the wrong shape is an error. It uses
// github.com/tidwall/gjson to read and github.com/tidwall/sjson to
// write without requiring a config
// file to round-trip through a strict struct shape. This is the CLI's
// boundary-only config surface — compiler and project-context packages
// never read lumina.config.json directly; cmd/lumina resolves it once
// and passes the resolved values down as explicit parameters.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Target is the compilation target named in config or on the command line.
type Target string

const (
	TargetCJS  Target = "cjs"
	TargetESM  Target = "esm"
	TargetWasm Target = "wasm"
)

func (t Target) valid() bool {
	switch t {
	case TargetCJS, TargetESM, TargetWasm, "":
		return true
	default:
		return false
	}
}

// Config is the fully-resolved shape of lumina.config.json. Every field
// is optional in the file; Default fills in this package's defaults.
type Config struct {
	GrammarPath    string
	OutDir         string
	Target         Target
	Entries        []string
	Watch          []string
	StdPath        string
	FileExtensions []string
	CacheDir       string
	Recovery       bool
}

// Default returns the configuration assumed when lumina.config.json is
// absent or a given field is unset.
func Default() Config {
	return Config{
		FileExtensions: []string{".lm", ".lumina"},
		CacheDir:       ".lumina-cache",
	}
}

// Load reads and tolerantly parses the config file at path, starting
// from Default() and overlaying any recognized field present in the
// file. Fields absent from the file, or the file itself being absent,
// are not errors — only a field present with the wrong shape is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("config: %s is not valid JSON", path)
	}
	root := gjson.ParseBytes(data)

	if v := root.Get("grammarPath"); v.Exists() {
		s, err := stringField(v, "grammarPath")
		if err != nil {
			return cfg, err
		}
		cfg.GrammarPath = s
	}
	if v := root.Get("outDir"); v.Exists() {
		s, err := stringField(v, "outDir")
		if err != nil {
			return cfg, err
		}
		cfg.OutDir = s
	}
	if v := root.Get("target"); v.Exists() {
		s, err := stringField(v, "target")
		if err != nil {
			return cfg, err
		}
		t := Target(s)
		if !t.valid() {
			return cfg, fmt.Errorf("config: target %q is not one of cjs, esm, wasm", s)
		}
		cfg.Target = t
	}
	if v := root.Get("entries"); v.Exists() {
		ss, err := stringArrayField(v, "entries")
		if err != nil {
			return cfg, err
		}
		cfg.Entries = ss
	}
	if v := root.Get("watch"); v.Exists() {
		ss, err := stringArrayField(v, "watch")
		if err != nil {
			return cfg, err
		}
		cfg.Watch = ss
	}
	if v := root.Get("stdPath"); v.Exists() {
		s, err := stringField(v, "stdPath")
		if err != nil {
			return cfg, err
		}
		cfg.StdPath = s
	}
	if v := root.Get("fileExtensions"); v.Exists() {
		ss, err := stringArrayField(v, "fileExtensions")
		if err != nil {
			return cfg, err
		}
		cfg.FileExtensions = ss
	}
	if v := root.Get("cacheDir"); v.Exists() {
		s, err := stringField(v, "cacheDir")
		if err != nil {
			return cfg, err
		}
		cfg.CacheDir = s
	}
	if v := root.Get("recovery"); v.Exists() {
		if v.Type != gjson.True && v.Type != gjson.False {
			return cfg, fmt.Errorf("config: field %q must be a boolean", "recovery")
		}
		cfg.Recovery = v.Bool()
	}

	return cfg, nil
}

func stringField(v gjson.Result, name string) (string, error) {
	if v.Type != gjson.String {
		return "", fmt.Errorf("config: field %q must be a string", name)
	}
	return v.String(), nil
}

func stringArrayField(v gjson.Result, name string) ([]string, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("config: field %q must be an array of strings", name)
	}
	var out []string
	var fieldErr error
	v.ForEach(func(_, elem gjson.Result) bool {
		if elem.Type != gjson.String {
			fieldErr = fmt.Errorf("config: field %q must be an array of strings", name)
			return false
		}
		out = append(out, elem.String())
		return true
	})
	if fieldErr != nil {
		return nil, fieldErr
	}
	return out, nil
}

// WriteDefaults writes a fresh lumina.config.json at path containing
// only the fields an explicit `lumina init` would seed (target and
// entries), built field-by-field with sjson on an empty document. An
// existing file at path is replaced; none of its other fields are kept.
func WriteDefaults(path string, target Target, entries []string) error {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "target", string(target))
	if err != nil {
		return fmt.Errorf("config: building default document: %w", err)
	}
	doc, err = sjson.Set(doc, "entries", entries)
	if err != nil {
		return fmt.Errorf("config: building default document: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
