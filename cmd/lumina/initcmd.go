package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/config"
)

var (
	initTarget  string
	initEntries []string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fresh lumina.config.json in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configFileName); err == nil {
			return fmt.Errorf("%s already exists", configFileName)
		}
		t := config.Target(initTarget)
		entries := initEntries
		if len(entries) == 0 {
			entries = []string{"main.lm"}
		}
		if err := config.WriteDefaults(configFileName, t, entries); err != nil {
			return err
		}
		fmt.Printf("%s wrote %s\n", green("ok"), configFileName)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initTarget, "target", string(config.TargetCJS), "default compilation target")
	initCmd.Flags().StringSliceVar(&initEntries, "entries", nil, "default entry file(s), comma-separated")
	rootCmd.AddCommand(initCmd)
}
