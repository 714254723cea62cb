package main

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ir"
)

// irToDot renders prog as a Graphviz dot file for --debug-ir: one
// subgraph per function, one node per instruction, edges following
// fallthrough order plus Jump/JumpIfFalse/JumpIfTrue/Switch targets.
// There is no teacher analogue for IR visualization (the pack's
// interpreted example repos have no separate IR stage to visualize), so
// this is grounded directly in internal/ir.Instr's own String() method,
// reused here as each node's label.
func irToDot(prog *ir.Program) string {
	var b strings.Builder
	b.WriteString("digraph IR {\n  node [shape=box, fontname=\"monospace\"];\n")
	for fi, fn := range prog.Functions {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n    label=%q;\n", fi, fn.Name)
		labels := map[string]int{}
		for i, instr := range fn.Body {
			if lbl, ok := instr.(ir.Label); ok {
				labels[lbl.Name] = i
			}
		}
		for i, instr := range fn.Body {
			nodeID := fmt.Sprintf("f%d_i%d", fi, i)
			fmt.Fprintf(&b, "    %s [label=%q];\n", nodeID, instr.String())
			if i+1 < len(fn.Body) {
				switch instr.(type) {
				case ir.Jump, ir.Return:
					// no fallthrough edge
				default:
					fmt.Fprintf(&b, "    %s -> f%d_i%d;\n", nodeID, fi, i+1)
				}
			}
			switch v := instr.(type) {
			case ir.Jump:
				if target, ok := labels[v.Target]; ok {
					fmt.Fprintf(&b, "    %s -> f%d_i%d [style=dashed];\n", nodeID, fi, target)
				}
			case ir.JumpIfFalse:
				if target, ok := labels[v.Target]; ok {
					fmt.Fprintf(&b, "    %s -> f%d_i%d [style=dashed, label=\"false\"];\n", nodeID, fi, target)
				}
			case ir.JumpIfTrue:
				if target, ok := labels[v.Target]; ok {
					fmt.Fprintf(&b, "    %s -> f%d_i%d [style=dashed, label=\"true\"];\n", nodeID, fi, target)
				}
			case ir.Switch:
				for tag, target := range v.Cases {
					if idx, ok := labels[target]; ok {
						fmt.Fprintf(&b, "    %s -> f%d_i%d [style=dashed, label=%q];\n", nodeID, fi, idx, fmt.Sprint(tag))
					}
				}
				if v.Default != "" {
					if idx, ok := labels[v.Default]; ok {
						fmt.Fprintf(&b, "    %s -> f%d_i%d [style=dashed, label=\"default\"];\n", nodeID, fi, idx)
					}
				}
			}
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}
