package main

import (
	"context"
	"fmt"

	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/project"
)

const configFileName = "lumina.config.json"

// configOverrides carries the subset of a subcommand's flags that can
// override lumina.config.json, one bool per optional override recording
// whether the user actually set it (cobra's Flags().Changed), since an
// unset flag must never stomp a value the config file provided.
type configOverrides struct {
	Target      string
	TargetSet   bool
	Grammar     string
	GrammarSet  bool
	Recovery    bool
	RecoverySet bool
}

// resolveConfig loads lumina.config.json from the current directory (if
// present) and overlays any explicitly-set CLI flags on top of it, flags
// always winning over the file per spec.md §6.2.
func resolveConfig(o configOverrides) (config.Config, error) {
	cfg, err := config.Load(configFileName)
	if err != nil {
		return cfg, err
	}
	if o.TargetSet {
		cfg.Target = config.Target(o.Target)
	}
	if o.GrammarSet {
		cfg.GrammarPath = o.Grammar
	}
	if o.RecoverySet {
		cfg.Recovery = o.Recovery
	}
	return cfg, nil
}

// loadDocument reads and analyzes path through a scratch project context,
// the same entry point the editor service and watch subcommand use.
func loadDocument(ctx *project.Context, path string) (*project.Document, error) {
	doc, _, err := ctx.ReadAndAdd(context.Background(), path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func printConfig(cfg config.Config) {
	fmt.Printf("%s\n", bold("resolved configuration"))
	fmt.Printf("  grammarPath:    %s\n", cfg.GrammarPath)
	fmt.Printf("  outDir:         %s\n", cfg.OutDir)
	fmt.Printf("  target:         %s\n", cfg.Target)
	fmt.Printf("  entries:        %v\n", cfg.Entries)
	fmt.Printf("  watch:          %v\n", cfg.Watch)
	fmt.Printf("  stdPath:        %s\n", cfg.StdPath)
	fmt.Printf("  fileExtensions: %v\n", cfg.FileExtensions)
	fmt.Printf("  cacheDir:       %s\n", cfg.CacheDir)
	fmt.Printf("  recovery:       %v\n", cfg.Recovery)
}
