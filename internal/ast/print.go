package ast

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Print produces a deterministic JSON representation of an AST node, used
// for golden/snapshot testing of the parser and emitters. It normalizes
// away the file name (kept is Line/Column/Offset) so the same source
// parsed from different paths prints identically, and tags the top-level
// node with its concrete Go type name; nested nodes are not tagged.
func Print(node Node) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintProgram is Print specialized for a *Program; kept as a distinct
// entry point because Program is the only node without a meaningful
// Position() (its Span is the whole file).
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	return Print(prog)
}

func simplify(node interface{}) interface{} {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	stripFile(m) // normalize away source path for reproducible snapshots
	m["type"] = reflect.TypeOf(node).Elem().Name()

	return m
}

// stripFile deletes every "File" key (Pos.File) at any depth of v.
func stripFile(v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		delete(t, "File")
		for _, c := range t {
			stripFile(c)
		}
	case []interface{}:
		for _, c := range t {
			stripFile(c)
		}
	}
}
