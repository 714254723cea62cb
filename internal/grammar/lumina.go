package grammar

import (
	_ "embed"
	"fmt"
)

//go:embed lumina.peg
var defaultSource string

var defaultGrammar *Grammar

func init() {
	g, err := Compile(defaultSource, CompileOptions{Start: "program"})
	if err != nil {
		panic(fmt.Sprintf("grammar: embedded default failed to compile: %v", err))
	}
	defaultGrammar = g
}

// Default returns the compiled embedded grammar (lumina.peg), which covers
// let/return/expression statements over integer arithmetic. The compiler
// pipeline does not use it: source files are parsed by internal/parser.
func Default() *Grammar { return defaultGrammar }
