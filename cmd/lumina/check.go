package main

import "github.com/spf13/cobra"

var checkFlags compileFlags

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse and type-check a Lumina source file without emitting output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args[0], &checkFlags, true)
	},
}

func init() {
	registerCompileFlags(checkCmd, &checkFlags)
	rootCmd.AddCommand(checkCmd)
}
