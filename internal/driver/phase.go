package driver

import (
	"context"
	"time"

	"docweave/internal/observ"
	"docweave/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one file.
type PhaseEvent struct {
	Path    string
	Name    string // observ.PhaseLoad, observ.PhaseScan, ...
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Process.
type PhaseObserver func(PhaseEvent)

// phaseRun связывает таймер, трассировку и наблюдателя для одной фазы.
type phaseRun struct {
	path     string
	name     string
	idx      int
	timer    *observ.Timer
	span     *trace.Span
	observer PhaseObserver
	started  time.Time
}

func beginPhase(ctx context.Context, req *ProcessRequest, name string) *phaseRun {
	pr := &phaseRun{
		path:     req.Input,
		name:     name,
		timer:    req.Timer,
		observer: req.Observer,
		started:  time.Now(),
	}
	pr.idx = pr.timer.Begin(name)
	pr.span = trace.Begin(trace.FromContext(ctx), trace.ScopePhase, name, trace.CurrentSpan(ctx))
	if pr.observer != nil {
		pr.observer(PhaseEvent{Path: pr.path, Name: name, Status: PhaseStart})
	}
	return pr
}

func (pr *phaseRun) end(note string) {
	pr.timer.End(pr.idx, note)
	pr.span.End(note)
	if pr.observer != nil {
		pr.observer(PhaseEvent{Path: pr.path, Name: pr.name, Status: PhaseEnd, Elapsed: time.Since(pr.started)})
	}
}
