// Package progress provides a lightweight tracker that keeps aggregated
// scheduling counters (arrivals, completions, failures, preemptions, …) for
// a single scheduler run.  The tracker instance lives in the run context –
// every component that receives the context can update the counters via the
// Delta helper without requiring a global registry.
package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the scheduling
// loop.  The fields are signed and therefore can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Arrived   int
	Completed int
	Failed    int
	Abandoned int
	Preempted int
	Boosts    int
}

// Progress keeps aggregated counters for one scheduler run.  It is safe for
// concurrent use.
type Progress struct {
	// Identification – informative only, filled when the run starts.
	RunID     string
	Policy    string
	StartedAt time.Time

	// Counters – modified via Update().
	Arrived   int
	Completed int
	Failed    int
	Abandoned int
	Preempted int
	Boosts    int

	sync.Mutex
	onChange func(Progress)
}

// Pending returns how many arrived records have not reached a terminal or
// abandoned state.
func (p *Progress) Pending() int {
	return p.Arrived - p.Completed - p.Failed - p.Abandoned
}

// Update applies the supplied delta to the tracker.  If an onChange callback
// has been registered it is invoked with a copy of the updated tracker
// outside the critical section so that the callback can perform slow
// operations (e.g. encoding, I/O) without blocking the scheduling loop.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()

	p.Arrived += d.Arrived
	p.Completed += d.Completed
	p.Failed += d.Failed
	p.Abandoned += d.Abandoned
	p.Preempted += d.Preempted
	p.Boosts += d.Boosts

	snapshot := *p
	cb := p.onChange

	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return *p
}

// OnChange registers a callback that is invoked after every successful
// Update.  Passing nil disables the callback.  Only one callback can be
// active; subsequent calls overwrite the previous value.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.  The caller may optionally pass an onChange
// callback that will be invoked after every counter update.
func WithNewTracker(ctx context.Context, runID, policy string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Policy:    policy,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.  The second return
// value is false when the context carries no tracker.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx is a helper that looks up the tracker in ctx (if any) and applies
// the supplied delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
