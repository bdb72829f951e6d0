package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"docweave/internal/ast"
	"docweave/internal/diag"
	"docweave/internal/docgen"
	"docweave/internal/observ"
	"docweave/internal/parser"
	"docweave/internal/rewrite"
	"docweave/internal/source"
	"docweave/internal/trace"
)

// ScanOptions controls which declarations the scanner reports.
type ScanOptions struct {
	SkipPrivate    bool
	SkipDunder     bool
	MaxDiagnostics int
}

func (o ScanOptions) parserOptions(bag *diag.Bag) parser.Options {
	return parser.Options{
		Reporter:    &diag.BagReporter{Bag: bag},
		SkipPrivate: o.SkipPrivate,
		SkipDunder:  o.SkipDunder,
	}
}

// ProcessRequest describes one input → output run.
type ProcessRequest struct {
	Input     string
	Output    string // may be empty only with DryRun
	Overwrite bool   // allow Output to be the Input file
	DryRun    bool   // compute the new text without writing

	Scan ScanOptions
	Doc  docgen.Options

	Timer    *observ.Timer
	Cache    *ScanCache
	Observer PhaseObserver
}

// Fingerprint identifies the options that influence the output text.
func (r *ProcessRequest) Fingerprint() string {
	return fmt.Sprintf("v%d/%s/private=%t/dunder=%t",
		scanCacheSchemaVersion, r.Doc.Fingerprint(), r.Scan.SkipPrivate, r.Scan.SkipDunder)
}

// ProcessResult is the outcome of a successful Process call.
type ProcessResult struct {
	Input    string
	Output   string
	File     *source.File
	Original []byte
	Content  []byte // new text; equal to Original when nothing was inserted
	Decls    []ast.Declaration
	Plan     *rewrite.Plan
	Bag      *diag.Bag
	Changed  bool // Content differs from Original
	Written  bool // Output was (re)written
	Cached   bool // scan skipped thanks to the cache
}

// Inserted returns the number of blocks added.
func (r *ProcessResult) Inserted() int {
	if r == nil || r.Plan == nil {
		return 0
	}
	return len(r.Plan.Insertions)
}

// Process runs load → scan → plan → apply → commit for one file.
// Nothing is written unless every earlier step succeeded.
func Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	if req.Output == "" && !req.DryRun {
		return nil, errors.New("driver: output path is required")
	}
	ctx, span := trace.StartFile(ctx, "file", req.Input)

	res, err := process(ctx, &req)
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeError, Kind(err), err.Error(), trace.CurrentSpan(ctx))
		span.SetStats(trace.Stats{Files: 1, Failed: 1}).End("error")
		return nil, err
	}
	detail := ""
	if res.Cached {
		detail = "cached"
	}
	span.SetStats(res.Stats()).End(detail)
	return res, nil
}

// Stats summarizes the result for trace and batch reporting.
func (r *ProcessResult) Stats() trace.Stats {
	if r == nil {
		return trace.Stats{}
	}
	st := trace.Stats{Files: 1, Decls: len(r.Decls), Inserted: r.Inserted()}
	if r.Plan != nil {
		st.Skipped = len(r.Plan.Skipped)
	}
	if r.Written {
		st.Written = 1
	}
	return st
}

func process(ctx context.Context, req *ProcessRequest) (*ProcessResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// load
	ph := beginPhase(ctx, req, observ.PhaseLoad)
	var perm os.FileMode
	if !req.DryRun {
		var err error
		if perm, err = checkDestination(req.Input, req.Output, req.Overwrite); err != nil {
			ph.end("error")
			return nil, err
		}
	}
	file, err := loadFile(req.Input)
	if err != nil {
		ph.end("error")
		return nil, err
	}
	ph.end(fmt.Sprintf("%d bytes", len(file.Content)))

	res := &ProcessResult{
		Input:    req.Input,
		Output:   req.Output,
		File:     file,
		Original: file.Content,
		Content:  file.Content,
		Bag:      diag.NewBag(req.Scan.MaxDiagnostics),
	}

	key := CacheKey(file.Hash, req.Fingerprint())
	if entry, ok, cerr := req.Cache.Get(key); cerr == nil && ok && entry.Clean() {
		res.Cached = true
		res.Plan = &rewrite.Plan{}
		return res, commit(ctx, req, res, perm)
	}

	// scan
	ph = beginPhase(ctx, req, observ.PhaseScan)
	decls, err := scanFile(file, req.Scan, res.Bag)
	if err != nil {
		ph.end("error")
		_ = req.Cache.Put(key, &ScanEntry{Path: req.Input, Fingerprint: req.Fingerprint(), Broken: true})
		return nil, err
	}
	res.Decls = decls
	ph.end(fmt.Sprintf("%d decls", len(decls)))

	// plan
	ph = beginPhase(ctx, req, observ.PhasePlan)
	plan, err := rewrite.BuildPlan(file, decls, docgen.New(req.Doc))
	if err != nil {
		ph.end("error")
		return nil, fmt.Errorf("plan %s: %w", req.Input, err)
	}
	res.Plan = plan
	reportSkipped(file, plan, res.Bag)
	tr := trace.FromContext(ctx)
	for _, ins := range plan.Insertions {
		trace.Point(tr, trace.ScopeDecl, ins.QualName, "line "+strconv.FormatUint(uint64(ins.Line), 10), trace.CurrentSpan(ctx))
	}
	ph.end(fmt.Sprintf("%d insertions", len(plan.Insertions)))

	_ = req.Cache.Put(key, &ScanEntry{
		Path:        req.Input,
		Fingerprint: req.Fingerprint(),
		Decls:       len(decls),
		Pending:     len(plan.Insertions),
		Skipped:     len(plan.Skipped),
	})

	// apply
	ph = beginPhase(ctx, req, observ.PhaseApply)
	out, err := rewrite.Apply(file.Content, plan)
	switch {
	case errors.Is(err, rewrite.ErrNoChanges):
		ph.end("no changes")
	case err != nil:
		ph.end("error")
		return nil, fmt.Errorf("apply %s: %w", req.Input, err)
	default:
		res.Content = out
		res.Changed = true
		ph.end(fmt.Sprintf("%d bytes", len(out)))
	}

	return res, commit(ctx, req, res, perm)
}

// commit пишет результат; без изменений на месте файл не трогаем.
func commit(ctx context.Context, req *ProcessRequest, res *ProcessResult, perm os.FileMode) error {
	if req.DryRun {
		return nil
	}
	if !res.Changed && samePath(req.Input, req.Output) {
		return nil
	}
	ph := beginPhase(ctx, req, observ.PhaseCommit)
	if err := writeAtomic(req.Output, res.Content, perm); err != nil {
		ph.end("error")
		return err
	}
	res.Written = true
	ph.end(req.Output)
	return nil
}

// loadFile reads path into a fresh FileSet without normalizing its bytes.
func loadFile(path string) (*source.File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	fs := source.NewFileSet()
	return fs.Get(fs.Add(path, content, 0)), nil
}

// scanFile returns the declarations of file or a ParseError for the first
// error diagnostic.
func scanFile(file *source.File, opts ScanOptions, bag *diag.Bag) ([]ast.Declaration, error) {
	res := parser.Scan(file, opts.parserOptions(bag))
	if d, ok := bag.FirstError(); ok {
		pos := file.Position(d.Primary.Start)
		return nil, &ParseError{
			Path: file.Path,
			Line: pos.Line,
			Col:  pos.Col,
			Code: d.Code,
			Msg:  d.Message,
		}
	}
	return res.Decls, nil
}

func reportSkipped(file *source.File, plan *rewrite.Plan, bag *diag.Bag) {
	for _, s := range plan.Skipped {
		bag.Add(diag.New(diag.SevInfo, diag.DocInlineBody,
			source.At(file.ID, file.LineStart(s.Line)),
			fmt.Sprintf("%s: %s; no documentation block inserted", s.QualName, s.Reason)))
	}
}

// ScanResult holds the declarations of one file.
type ScanResult struct {
	File  *source.File
	Decls []ast.Declaration
	Bag   *diag.Bag
}

// ScanFile loads and scans path without planning any rewrite.
func ScanFile(ctx context.Context, path string, opts ScanOptions, timer *observ.Timer) (*ScanResult, error) {
	req := &ProcessRequest{Input: path, Scan: opts, Timer: timer}
	ctx, span := trace.StartFile(ctx, "scan", path)
	defer span.End("")

	ph := beginPhase(ctx, req, observ.PhaseLoad)
	file, err := loadFile(path)
	if err != nil {
		ph.end("error")
		return nil, err
	}
	ph.end(fmt.Sprintf("%d bytes", len(file.Content)))

	ph = beginPhase(ctx, req, observ.PhaseScan)
	bag := diag.NewBag(opts.MaxDiagnostics)
	decls, err := scanFile(file, opts, bag)
	if err != nil {
		ph.end("error")
		return nil, err
	}
	ph.end(fmt.Sprintf("%d decls", len(decls)))
	return &ScanResult{File: file, Decls: decls, Bag: bag}, nil
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && filepath.Clean(absA) == filepath.Clean(absB) {
		return true
	}
	sa, errA := os.Stat(a)
	sb, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(sa, sb)
}
