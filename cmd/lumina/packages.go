package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumina-lang/lumina/internal/lockfile"
)

const lockFileName = "lumina.lock.json"

var (
	addVersion  string
	addResolved string
	addMain     string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Check that each lumina.lock.json entry resolves to a package path (existence on disk is not checked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lf, err := lockfile.Load(lockFileName)
		if err != nil {
			return err
		}
		if len(lf.Names()) == 0 {
			fmt.Printf("%s %s declares no packages\n", yellow("note"), lockFileName)
			return nil
		}
		for _, name := range lf.Names() {
			if _, err := lf.Resolve(name); err != nil {
				fmt.Printf("%s %s: %v\n", red("error"), name, err)
				continue
			}
			fmt.Printf("%s %s\n", green("ok"), name)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <package>",
	Short: "Add or update a package entry in lumina.lock.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		lf, err := lockfile.Load(lockFileName)
		if err != nil {
			return err
		}
		entry := lockfile.PackageEntry{
			Version:  addVersion,
			Resolved: addResolved,
		}
		if addMain != "" {
			entry.Lumina = addMain
		}
		lf.Set(name, entry)
		if err := lf.Save(lockFileName); err != nil {
			return err
		}
		fmt.Printf("%s added %s@%s\n", green("ok"), name, addVersion)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <package>",
	Short: "Remove a package entry from lumina.lock.json",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		lf, err := lockfile.Load(lockFileName)
		if err != nil {
			return err
		}
		if !lf.Remove(name) {
			return fmt.Errorf("%s: no such package in %s", name, lockFileName)
		}
		if err := lf.Save(lockFileName); err != nil {
			return err
		}
		fmt.Printf("%s removed %s\n", green("ok"), name)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every package entry in lumina.lock.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lf, err := lockfile.Load(lockFileName)
		if err != nil {
			return err
		}
		names := lf.Names()
		if len(names) == 0 {
			fmt.Printf("%s declares no packages\n", lockFileName)
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addVersion, "version", "0.0.0", "package version to record")
	addCmd.Flags().StringVar(&addResolved, "resolved", "", "on-disk or vendored path the package resolves to")
	addCmd.Flags().StringVar(&addMain, "main", "", "the package's root Lumina entry file")

	rootCmd.AddCommand(installCmd, addCmd, removeCmd, listCmd)
}
