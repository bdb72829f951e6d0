package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docweave/internal/config"
	"docweave/internal/docgen"
	"docweave/internal/driver"
)

// settings is the merged view of docweave.toml and command-line flags.
type settings struct {
	cfg  *config.Config
	doc  docgen.Options
	scan driver.ScanOptions
	ui   config.UIMode
}

// resolveSettings loads the configuration for an input located in startDir
// and applies flag overrides on top of it.
func resolveSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	flags := cmd.Flags()
	explicit, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(explicit, startDir)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"style", "summary", "quote"} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		switch name {
		case "style":
			cfg.Style = v
		case "summary":
			cfg.Summary = v
		case "quote":
			cfg.Quote = v
		}
	}
	if flags.Changed("skip-private") {
		cfg.SkipPrivate, _ = flags.GetBool("skip-private")
	}
	if flags.Changed("skip-dunder") {
		cfg.SkipDunder, _ = flags.GetBool("skip-dunder")
	}
	// --ui есть только у batch
	if f := flags.Lookup("ui"); f != nil && f.Changed {
		mode, err := config.ParseUIMode(f.Value.String())
		if err != nil {
			return nil, err
		}
		cfg.Batch.UI = mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ui, err := config.ParseUIMode(string(cfg.Batch.UI))
	if err != nil {
		return nil, err
	}

	doc, err := cfg.DocOptions()
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, doc: doc, scan: cfg.ScanOptions(), ui: ui}, nil
}

// startDirFor returns the directory the config lookup starts from.
func startDirFor(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}
