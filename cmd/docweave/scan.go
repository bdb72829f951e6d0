package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docweave/internal/ast"
	"docweave/internal/diagfmt"
	"docweave/internal/driver"
	"docweave/internal/observ"
)

var (
	scanFormat       string
	scanUndocumented bool
)

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "table", "output format (table|json|yaml)")
	scanCmd.Flags().BoolVar(&scanUndocumented, "undocumented", false, "list only definitions without a docstring")
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List the definitions docweave sees in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := diagfmt.ParseListFormat(scanFormat)
		if err != nil {
			return err
		}
		st, err := resolveSettings(cmd, startDirFor(args[0]))
		if err != nil {
			return err
		}

		timer := observ.NewTimer()
		res, err := driver.ScanFile(cmd.Context(), args[0], st.scan, timer)
		if showTimings(cmd) {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
		if err != nil {
			return err
		}

		decls := res.Decls
		if scanUndocumented {
			decls = undocumented(decls)
		}
		return diagfmt.Declarations(cmd.OutOrStdout(), args[0], decls, format, diagfmt.Options{Color: colorEnabled()})
	},
}

func undocumented(decls []ast.Declaration) []ast.Declaration {
	out := make([]ast.Declaration, 0, len(decls))
	for _, d := range decls {
		if !d.HasDocumentation {
			out = append(out, d)
		}
	}
	return out
}
