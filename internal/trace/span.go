package trace

import (
	"strconv"
	"strings"
	"time"
)

// Stats are the counters a file or batch span reports when it ends.
// Batch spans carry the sum over their files.
type Stats struct {
	Files    int `json:"files,omitempty"`
	Decls    int `json:"decls,omitempty"`
	Inserted int `json:"inserted,omitempty"`
	Skipped  int `json:"skipped,omitempty"`
	Written  int `json:"written,omitempty"`
	Failed   int `json:"failed,omitempty"`
}

// Add sums o into s.
func (s *Stats) Add(o Stats) {
	s.Files += o.Files
	s.Decls += o.Decls
	s.Inserted += o.Inserted
	s.Skipped += o.Skipped
	s.Written += o.Written
	s.Failed += o.Failed
}

// String renders the non-zero counters as "k=v" pairs in a fixed order.
func (s Stats) String() string {
	var parts []string
	add := func(k string, v int) {
		if v != 0 {
			parts = append(parts, k+"="+strconv.Itoa(v))
		}
	}
	add("files", s.Files)
	add("decls", s.Decls)
	add("inserted", s.Inserted)
	add("skipped", s.Skipped)
	add("written", s.Written)
	add("failed", s.Failed)
	return strings.Join(parts, " ")
}

// Span tracks one begin/end pair. A Span from a disabled tracer is inert.
type Span struct {
	tracer  Tracer
	parent  SpanContext
	id      uint64
	gid     uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	stats   *Stats
	extra   map[string]string
}

// Begin emits a SpanBegin event below parent. The span inherits the
// parent's file path.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	return begin(t, scope, name, parent.File, parent)
}

func begin(t Tracer, scope Scope, name, file string, parent SpanContext) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		parent:  parent,
		id:      nextSpanID(),
		gid:     goroutineID(),
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent.SpanID,
		GID:      s.gid,
		Name:     s.name,
		File:     s.file,
		Detail:   detail,
	}
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the SpanEnd event with the collected stats and extras and
// returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Stats = s.stats
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// SetStats attaches counters to the end event.
func (s *Span) SetStats(st Stats) *Span {
	if s.live() {
		s.stats = &st
	}
	return s
}

// WithExtra adds a free-form key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID; zero for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Context returns the propagation info children of s should use.
func (s *Span) Context() SpanContext {
	if s == nil {
		return SpanContext{}
	}
	return SpanContext{SpanID: s.id, File: s.file}
}

// Point emits an instant event below parent, tagged with the parent's file.
func Point(t Tracer, scope Scope, name, detail string, parent SpanContext) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent.SpanID,
		GID:      goroutineID(),
		Name:     name,
		File:     parent.File,
		Detail:   detail,
	})
}
