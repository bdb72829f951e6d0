package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"docweave/internal/observ"
	"docweave/internal/trace"
)

// BatchRequest describes a multi-file run.
type BatchRequest struct {
	Paths     []string // files and directories; directories are walked for *.py
	OutDir    string   // "" means rewrite in place (requires Overwrite)
	Overwrite bool
	Jobs      int // <= 0 means GOMAXPROCS

	// Template supplies Scan, Doc, DryRun and Cache for every file.
	Template ProcessRequest
	Progress ProgressSink
}

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Path   string
	Output string
	Result *ProcessResult
	Err    error
	Timer  *observ.Timer
}

// BatchResult collects per-file outcomes in input order.
type BatchResult struct {
	Files []FileResult
	Timer *observ.Timer // merged phases of all files
}

// Failed returns the number of files that ended with an error.
func (r *BatchResult) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Err != nil {
			n++
		}
	}
	return n
}

// Inserted returns the total number of blocks inserted.
func (r *BatchResult) Inserted() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Result.Inserted()
	}
	return n
}

// Stats sums the per-file counters; failed files count as files too.
func (r *BatchResult) Stats() trace.Stats {
	var st trace.Stats
	for i := range r.Files {
		f := &r.Files[i]
		if f.Err != nil {
			st.Add(trace.Stats{Files: 1, Failed: 1})
			continue
		}
		st.Add(f.Result.Stats())
	}
	return st
}

// FirstErr returns the first per-file error in input order.
func (r *BatchResult) FirstErr() error {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return r.Files[i].Err
		}
	}
	return nil
}

// target связывает входной файл с путём назначения.
type target struct {
	input  string
	output string
}

// ProcessBatch processes every Python file under req.Paths, one file per
// worker. A failing file does not stop the others; cancellation does.
func ProcessBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if req.OutDir == "" && !req.Overwrite && !req.Template.DryRun {
		return nil, errors.New("batch: in-place rewrite requires --overwrite (or use --out-dir)")
	}
	if req.OutDir != "" {
		st, err := os.Stat(req.OutDir)
		switch {
		case err != nil:
			return nil, &PathError{Path: req.OutDir, Reason: "output directory does not exist", Err: err}
		case !st.IsDir():
			return nil, &PathError{Path: req.OutDir, Reason: "output path is not a directory"}
		}
	}

	targets, err := planTargets(req.Paths, req.OutDir)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "batch")
	defer span.End("")

	result := &BatchResult{
		Files: make([]FileResult, len(targets)),
		Timer: observ.NewTimer(),
	}
	if len(targets) == 0 {
		return result, nil
	}
	for _, t := range targets {
		emit(req.Progress, Event{File: t.input, Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(targets)))

	for i, t := range targets {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			result.Files[i] = processOne(gctx, &req, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i := range result.Files {
		result.Timer.Merge(result.Files[i].Timer)
	}
	span.SetStats(result.Stats())
	emit(req.Progress, Event{Status: StatusDone, Inserted: result.Inserted()})
	return result, nil
}

func processOne(ctx context.Context, batch *BatchRequest, t target) FileResult {
	started := time.Now()
	pr := batch.Template
	pr.Input = t.input
	pr.Output = t.output
	pr.Overwrite = batch.Overwrite
	pr.Timer = observ.NewTimer()
	pr.Observer = func(ev PhaseEvent) {
		if ev.Status == PhaseStart {
			emit(batch.Progress, Event{File: ev.Path, Phase: ev.Name, Status: StatusWorking})
		}
	}

	fr := FileResult{Path: t.input, Output: t.output, Timer: pr.Timer}
	if batch.OutDir != "" && !pr.DryRun {
		// подкаталоги внутри out-dir повторяют структуру входа
		if err := os.MkdirAll(filepath.Dir(t.output), 0o755); err != nil {
			fr.Err = &IOError{Op: "mkdir", Path: filepath.Dir(t.output), Err: err}
		}
	}
	if fr.Err == nil {
		fr.Result, fr.Err = Process(ctx, pr)
	}

	evt := Event{File: t.input, Status: StatusDone, Elapsed: time.Since(started), Inserted: fr.Result.Inserted()}
	if fr.Err != nil {
		evt.Status = StatusError
		evt.Err = fr.Err
	}
	emit(batch.Progress, evt)
	return fr
}

// ListPythonFiles expands paths into a sorted list of files. Directories are
// walked for *.py, skipping hidden directories and __pycache__; files named
// explicitly are kept whatever their extension.
func ListPythonFiles(paths []string) ([]string, error) {
	targets, err := planTargets(paths, "")
	if err != nil {
		return nil, err
	}
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.input
	}
	return out, nil
}

func planTargets(paths []string, outDir string) ([]target, error) {
	var targets []target
	seenIn := make(map[string]bool)
	seenOut := make(map[string]string)

	add := func(input, rel string) error {
		clean := filepath.Clean(input)
		if seenIn[clean] {
			return nil
		}
		seenIn[clean] = true
		output := clean
		if outDir != "" {
			output = filepath.Join(outDir, rel)
			if prev, ok := seenOut[output]; ok {
				return fmt.Errorf("batch: %s and %s both map to %s", prev, clean, output)
			}
			seenOut[output] = clean
		}
		targets = append(targets, target{input: clean, output: output})
		return nil
	}

	for _, root := range paths {
		st, err := os.Stat(root)
		if err != nil {
			return nil, &IOError{Op: "stat", Path: root, Err: err}
		}
		if !st.IsDir() {
			if err := add(root, filepath.Base(root)); err != nil {
				return nil, err
			}
			continue
		}

		var files []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".py") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, &IOError{Op: "walk", Path: root, Err: err}
		}
		// Сортируем для детерминированного порядка
		sort.Strings(files)

		base := filepath.Base(filepath.Clean(root))
		for _, f := range files {
			rel, err := filepath.Rel(root, f)
			if err != nil {
				return nil, err
			}
			if base != "." && base != string(filepath.Separator) {
				rel = filepath.Join(base, rel)
			}
			if err := add(f, rel); err != nil {
				return nil, err
			}
		}
	}
	return targets, nil
}
