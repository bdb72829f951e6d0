package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docweave/internal/diag"
	"docweave/internal/diagfmt"
	"docweave/internal/driver"
	"docweave/internal/observ"
)

// errNeedsDocs is returned by --check when blocks would be inserted.
var errNeedsDocs = errors.New("undocumented definitions found")

var (
	documentOverwrite bool
	documentDiff      bool
	documentCheck     bool
)

func init() {
	rootCmd.Flags().BoolVar(&documentOverwrite, "overwrite", false, "allow output to be the input file")
	rootCmd.Flags().BoolVar(&documentDiff, "diff", false, "print a diff instead of writing the output")
	rootCmd.Flags().BoolVar(&documentCheck, "check", false, "exit non-zero when documentation blocks are missing; writes nothing")
}

func runDocument(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}
	dryRun := documentDiff || documentCheck
	if output == "" && !dryRun {
		return fmt.Errorf("missing output path (or use --diff/--check)")
	}

	st, err := resolveSettings(cmd, startDirFor(input))
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	res, err := driver.Process(cmd.Context(), driver.ProcessRequest{
		Input:     input,
		Output:    output,
		Overwrite: documentOverwrite,
		DryRun:    dryRun,
		Scan:      st.scan,
		Doc:       st.doc,
		Timer:     timer,
	})
	if showTimings(cmd) {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if err != nil {
		return err
	}

	opts := diagfmt.Options{Color: colorEnabled()}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		printDiagnostics(cmd, res, opts)
	}

	if documentDiff {
		if _, err := diagfmt.Diff(cmd.OutOrStdout(), res.Original, res.Content, input, opts); err != nil {
			return err
		}
	}
	if documentCheck {
		if res.Changed {
			printf(cmd, "%s: %d definitions need documentation\n", input, res.Inserted())
			return errNeedsDocs
		}
		return nil
	}
	if !dryRun {
		printf(cmd, "%s -> %s: %d blocks inserted, %d already documented\n",
			input, output, res.Inserted(), res.Plan.Documented)
	}
	return nil
}

// printDiagnostics shows warnings and infos (blank docstrings, inline bodies) on stderr.
func printDiagnostics(cmd *cobra.Command, res *driver.ProcessResult, opts diagfmt.Options) {
	if res == nil || res.Bag == nil || res.Bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.File, diag.SevInfo, opts)
}

func showTimings(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("timings")
	return v
}
