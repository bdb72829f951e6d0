package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"docweave/internal/diagfmt"
	"docweave/internal/driver"
	"docweave/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "docweave <input> [output]",
	Short: "Insert docstring skeletons into undocumented Python definitions",
	Long: `docweave scans a Python file, finds def and class headers without a
docstring and writes a copy with documentation skeletons inserted under
each of them. Every other byte of the file is preserved.`,
	Args:              cobra.RangeArgs(1, 2),
	RunE:              runDocument,
	PersistentPreRunE: setupRun,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func init() {
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "", "write trace events to file ('-' for stderr)")
	pf.String("trace-level", "", "trace level (off|error|phase|detail|debug); defaults to $DOCWEAVE_TRACE_LEVEL")
	pf.String("config", "", "path to docweave.toml (default: nearest one above the input)")
	pf.String("style", "", "docstring style (google|numpy|sphinx)")
	pf.String("summary", "", "summary wording (generic|humanized)")
	pf.String("quote", "", `quote sequence for blocks ("""|''')`)
	pf.Bool("skip-private", false, "leave _private definitions alone")
	pf.Bool("skip-dunder", false, "leave __dunder__ methods other than __init__ alone")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	err := rootCmd.Execute()
	finishRun()
	if err != nil {
		diagfmt.Error(os.Stderr, err, diagfmt.Options{Color: colorEnabled()})
		os.Exit(driver.ExitCode(err))
	}
}

// setupRun runs before every command: color mode and tracer.
func setupRun(cmd *cobra.Command, _ []string) error {
	if err := applyColorMode(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	return startProfiling(cmd)
}

var traceCleanup func()

func finishRun() {
	stopProfiling()
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printf(cmd *cobra.Command, format string, args ...any) {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
