// Package trace provides levelled event tracing for docweave runs.
//
// A Tracer travels through the pipeline in a context.Context; code that
// wants to report progress asks the context for it and opens spans:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	ctx, file := trace.StartFile(ctx, "file", "pkg/mod.py")
//	span := trace.Begin(t, trace.ScopePhase, "scan", trace.CurrentSpan(ctx))
//	span.End("")
//	file.SetStats(trace.Stats{Files: 1, Inserted: 2}).End("")
//
// Spans started below a file span inherit its path, so phase and
// declaration events name the file they belong to.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPhase: the run and each processed file
//   - LevelDetail: adds pipeline phases (load, scan, plan, apply, commit)
//   - LevelDebug: adds one event per declaration
//
// Enable tracing from the command line:
//
//	docweave --trace=- --trace-level=detail in.py out.py
//
// The level can also come from the DOCWEAVE_TRACE_LEVEL variable.
package trace
