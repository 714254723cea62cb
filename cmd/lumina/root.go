package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version info, overridden by ldflags during release builds.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:     "lumina",
	Short:   "Lumina toolchain: compile, check, and serve editor tooling for Lumina source",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate("lumina version {{.Version}}\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// useColor gates colored diagnostic rendering on both fatih/color's own
// NO_COLOR/Windows detection and stderr (where diagnostics are written)
// actually being a terminal, so redirecting `lumina compile`'s stderr into
// a file or another tool never embeds escape codes.
func useColor() bool {
	if color.NoColor {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
