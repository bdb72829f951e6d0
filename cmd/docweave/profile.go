package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docweave/internal/prof"
)

var profSession *prof.Session

// startProfiling включает профили, запрошенные флагами.
func startProfiling(cmd *cobra.Command) error {
	var cfg prof.Config
	var err error
	if cfg.CPU, err = cmd.Flags().GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = cmd.Flags().GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

func stopProfiling() {
	if profSession == nil {
		return
	}
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	profSession = nil
}
