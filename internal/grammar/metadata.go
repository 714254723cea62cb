package grammar

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is a grammar source's optional YAML front matter: a `---`-
// delimited block preceding the PEG rules, the same convention markdown
// documents use to carry structured header fields ahead of their body.
type Metadata struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	// Start names the rule parsing begins from when CompileOptions.Start
	// is left empty; an explicit CompileOptions.Start still wins.
	Start string `yaml:"start"`
}

// splitFrontMatter strips a leading `---\n...\n---\n` YAML block from src,
// returning its decoded Metadata (the zero Metadata if none was present)
// and the remaining PEG rule source.
func splitFrontMatter(src string) (Metadata, string, error) {
	const delim = "---"
	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, delim) {
		return Metadata{}, src, nil
	}
	rest := trimmed[len(delim):]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return Metadata{}, src, nil
	}
	block := rest[:end]
	body := strings.TrimPrefix(rest[end+len("\n"+delim):], "\n")

	var meta Metadata
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return Metadata{}, "", fmt.Errorf("grammar: invalid front matter: %w", err)
	}
	return meta, body, nil
}
