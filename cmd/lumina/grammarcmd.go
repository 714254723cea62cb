package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/grammar"
)

var grammarStart string

var grammarCmd = &cobra.Command{
	Use:   "grammar <file.peg>",
	Short: "Compile and validate a PEG grammar source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		g, err := grammar.Compile(string(data), grammar.CompileOptions{Start: grammarStart})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		meta := g.Metadata()
		fmt.Printf("%s %s\n", green("ok"), path)
		if meta.Name != "" {
			fmt.Printf("  name:    %s\n", meta.Name)
		}
		if meta.Version != "" {
			fmt.Printf("  version: %s\n", meta.Version)
		}
		fmt.Printf("  start:   %s\n", g.StartRule())
		fmt.Printf("  rules:   %s\n", strings.Join(g.RuleNames(), ", "))
		return nil
	},
}

func init() {
	grammarCmd.Flags().StringVar(&grammarStart, "start", "", "override the grammar's configured start rule")
	rootCmd.AddCommand(grammarCmd)
}
