// Command lumina is the Lumina toolchain CLI: parse, analyze, and emit
// Lumina source as either a JavaScript-family module or a stack-machine
// text module, plus the project/package-management surface spec.md §6
// describes (config, lockfile, cache).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
}
