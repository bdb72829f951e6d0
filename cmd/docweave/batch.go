package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docweave/internal/diagfmt"
	"docweave/internal/driver"
)

var (
	batchOverwrite bool
	batchOutDir    string
	batchJobs      int
	batchUI        string
	batchCache     bool
	batchCheck     bool
)

func init() {
	batchCmd.Flags().BoolVar(&batchOverwrite, "overwrite", false, "rewrite files in place")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "write results under this existing directory")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "parallel workers (0 = from config or GOMAXPROCS)")
	batchCmd.Flags().StringVar(&batchUI, "ui", "", "progress UI (auto|on|off); defaults to [batch] ui in docweave.toml, else auto")
	batchCmd.Flags().BoolVar(&batchCache, "cache", false, "skip files already known to be documented")
	batchCmd.Flags().BoolVar(&batchCheck, "check", false, "report files that need documentation; writes nothing")
}

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Document many files, one worker per file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd, startDirFor(args[0]))
	if err != nil {
		return err
	}

	jobs := batchJobs
	if !cmd.Flags().Changed("jobs") {
		jobs = st.cfg.Batch.Jobs
	}
	req := driver.BatchRequest{
		Paths:     args,
		OutDir:    batchOutDir,
		Overwrite: batchOverwrite,
		Jobs:      jobs,
		Template: driver.ProcessRequest{
			Scan:   st.scan,
			Doc:    st.doc,
			DryRun: batchCheck,
		},
	}
	if batchCache || st.cfg.Batch.Cache {
		cache, err := driver.OpenScanCache("docweave")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		req.Template.Cache = cache
	}

	var res *driver.BatchResult
	if useProgressUI(st.ui, os.Stdout) {
		files, err := driver.ListPythonFiles(args)
		if err != nil {
			return err
		}
		res, err = runBatchWithUI(cmd.Context(), "docweave", files, &req)
		if err != nil {
			return err
		}
	} else if res, err = driver.ProcessBatch(cmd.Context(), req); err != nil {
		return err
	}

	if showTimings(cmd) {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	opts := diagfmt.Options{Color: colorEnabled()}
	for _, fr := range res.Files {
		if fr.Err != nil {
			diagfmt.Error(os.Stderr, fr.Err, opts)
			continue
		}
		if batchCheck && fr.Result.Changed {
			printf(cmd, "%s: %d definitions need documentation\n", fr.Path, fr.Result.Inserted())
		}
	}
	printf(cmd, "%d files, %d blocks, %d failed\n", len(res.Files), res.Inserted(), res.Failed())

	if err := res.FirstErr(); err != nil {
		return batchFailure{first: err, failed: res.Failed()}
	}
	if batchCheck && res.Inserted() > 0 {
		return errNeedsDocs
	}
	return nil
}

// batchFailure keeps the exit code of the first failing file while the
// per-file errors themselves are already printed.
type batchFailure struct {
	first  error
	failed int
}

func (e batchFailure) Error() string {
	return fmt.Sprintf("%d files failed", e.failed)
}

func (e batchFailure) Unwrap() error { return e.first }
