package gpf

import "sync/atomic"

// CancelSignal is a cooperative, shared cancellation flag. Per spec.md §5
// and the design note in §9, cancellation is represented as an explicit
// atomic flag polled by the scheduler, not as control-flow via panics or
// errors.
type CancelSignal struct {
	flag atomic.Bool
}

// Cancel requests that the running execution stop before its next tile.
func (c *CancelSignal) Cancel() { c.flag.Store(true) }

// IsCanceled reports whether Cancel has been called.
func (c *CancelSignal) IsCanceled() bool { return c.flag.Load() }

// ProgressSink is the progress-reporting and cancellation contract a
// caller of [Engine.ExecuteGraph] supplies (spec.md §6).
type ProgressSink interface {
	BeginTask(label string, totalUnits int)
	Worked(n int)
	Done()
	IsCanceled() bool
	// SubSink returns a view over units of this sink's remaining budget,
	// for handing a bounded slice of progress to a sub-operation
	// (spec.md §6's progress-budget contract; supplemented per
	// SPEC_FULL.md §11 from GraphProcessor.java's SubProgressMonitor use).
	SubSink(units int) ProgressSink
}

// NullProgress is a [ProgressSink] that reports no progress and is never
// canceled. Useful as a default when a caller has no progress UI.
type NullProgress struct{}

func (NullProgress) BeginTask(string, int)     {}
func (NullProgress) Worked(int)                {}
func (NullProgress) Done()                     {}
func (NullProgress) IsCanceled() bool          { return false }
func (NullProgress) SubSink(int) ProgressSink  { return NullProgress{} }

// RootProgress is the top-level [ProgressSink] implementation: it owns a
// [CancelSignal] and tracks a simple worked/total counter. Sub-sinks
// created via SubSink scale their own BeginTask/Worked calls into a
// fixed slice of the parent's budget.
type RootProgress struct {
	Cancel *CancelSignal

	label  string
	total  int
	worked int
}

// NewRootProgress creates a progress sink backed by the given cancellation
// signal. If cancel is nil, a fresh, never-triggered signal is used.
func NewRootProgress(cancel *CancelSignal) *RootProgress {
	if cancel == nil {
		cancel = &CancelSignal{}
	}
	return &RootProgress{Cancel: cancel}
}

func (p *RootProgress) BeginTask(label string, totalUnits int) {
	p.label = label
	p.total = totalUnits
	p.worked = 0
}

func (p *RootProgress) Worked(n int) { p.worked += n }

func (p *RootProgress) Done() {}

func (p *RootProgress) IsCanceled() bool { return p.Cancel.IsCanceled() }

func (p *RootProgress) SubSink(units int) ProgressSink {
	return &subProgress{parent: p, budget: units}
}

// subProgress is a bounded view over units of its parent's budget. It is
// modeled on Ceres' SubProgressMonitor, as used throughout
// GraphProcessor.java (e.g. SubProgressMonitor.create(pm, 10)).
type subProgress struct {
	parent   ProgressSink
	budget   int
	total    int
	worked   int
	reported int
}

func (s *subProgress) BeginTask(_ string, totalUnits int) {
	s.total = totalUnits
	s.worked = 0
	s.reported = 0
}

func (s *subProgress) Worked(n int) {
	s.worked += n
	if s.total <= 0 {
		return
	}
	scaled := s.worked * s.budget / s.total
	if scaled > s.budget {
		scaled = s.budget
	}
	if delta := scaled - s.reported; delta > 0 {
		s.parent.Worked(delta)
		s.reported = scaled
	}
}

func (s *subProgress) Done() {
	if remaining := s.budget - s.reported; remaining > 0 {
		s.parent.Worked(remaining)
		s.reported = s.budget
	}
}

func (s *subProgress) IsCanceled() bool { return s.parent.IsCanceled() }

func (s *subProgress) SubSink(units int) ProgressSink {
	return &subProgress{parent: s, budget: units}
}
