package parser

import "testing"

// Parsing is a pure function of its input; these guard against stateful
// bugs (shared buffers, ID allocator leakage across Parser instances).
func TestParseIsDeterministicAcrossPrograms(t *testing.T) {
	inputs := []string{
		"let x = 1 + 2 * 3;",
		"fn add(a: int, b: int) -> int { return a + b; }",
		"struct Point { x: int, y: int }",
		"match x { 1 => \"one\", _ => \"other\" };",
	}
	for _, in := range inputs {
		assertSameParse(t, in)
	}
}
