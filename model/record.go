package model

import (
	"fmt"

	"github.com/schedo/schedo/internal/idgen"
)

// Record state constants
const (
	StatePending  = "pending"
	StateRunning  = "running"
	StatePaused   = "paused"
	StateFinished = "finished"
	StateError    = "error"
)

// ErrTerminal is returned when a lifecycle transition is attempted on a
// record that has already finished or errored.
var ErrTerminal = fmt.Errorf("record is terminal")

// Record represents one scheduled unit of work and its timing history. All
// timestamps are milliseconds relative to the scheduler epoch. A record is
// created at arrival and never reused; once terminal it is immutable.
type Record struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	PID     int    `json:"pid,omitempty"`
	State   string `json:"state"`

	Started  bool `json:"started"`
	Finished bool `json:"finished"`
	Errored  bool `json:"errored"`

	Arrival      int64 `json:"arrival"`
	Start        int64 `json:"start"`
	ContextStart int64 `json:"contextStart"`
	ContextEnd   int64 `json:"contextEnd"`
	Completion   int64 `json:"completion"`

	Burst      int64 `json:"burst"`
	Turnaround int64 `json:"turnaround"`
	Waiting    int64 `json:"waiting"`
	Response   int64 `json:"response"`
}

// NewRecord creates a pending record for the supplied command text arriving
// at the given epoch-relative time.
func NewRecord(command string, arrival int64) *Record {
	return &Record{
		ID:      idgen.New(),
		Command: command,
		State:   StatePending,
		Arrival: arrival,
	}
}

// Terminal reports whether the record reached a final state.
func (r *Record) Terminal() bool {
	return r.Finished || r.Errored
}

// Running reports whether the record currently executes.
func (r *Record) Running() bool { return r.State == StateRunning }

// Paused reports whether the record is preempted but alive.
func (r *Record) Paused() bool { return r.State == StatePaused }

// MarkStarted transitions Pending -> Running on first dispatch. Start and
// context start coincide for the first slice.
func (r *Record) MarkStarted(pid int, now int64) error {
	if r.Terminal() {
		return ErrTerminal
	}
	if r.State != StatePending {
		return fmt.Errorf("cannot start record in state %s", r.State)
	}
	r.PID = pid
	r.Started = true
	r.State = StateRunning
	r.Start = now
	r.ContextStart = now
	return nil
}

// MarkPaused transitions Running -> Paused, closing out the current burst
// slice.
func (r *Record) MarkPaused(now int64) error {
	if r.Terminal() {
		return ErrTerminal
	}
	if r.State != StateRunning {
		return fmt.Errorf("cannot pause record in state %s", r.State)
	}
	r.State = StatePaused
	r.ContextEnd = now
	r.Burst += r.ContextEnd - r.ContextStart
	return nil
}

// MarkResumed transitions Paused -> Running, opening a new burst slice.
func (r *Record) MarkResumed(now int64) error {
	if r.Terminal() {
		return ErrTerminal
	}
	if r.State != StatePaused {
		return fmt.Errorf("cannot resume record in state %s", r.State)
	}
	r.State = StateRunning
	r.ContextStart = now
	return nil
}

// Finish transitions Running -> Finished and finalizes every derived metric.
func (r *Record) Finish(now int64) error {
	if r.Terminal() {
		return ErrTerminal
	}
	if r.State != StateRunning {
		return fmt.Errorf("cannot finish record in state %s", r.State)
	}
	r.State = StateFinished
	r.Finished = true
	r.Completion = now
	r.ContextEnd = now
	r.Burst += r.ContextEnd - r.ContextStart
	r.Turnaround = r.Completion - r.Arrival
	r.Waiting = r.Turnaround - r.Burst
	r.Response = r.Start - r.Arrival
	return nil
}

// Fail moves the record to Error from any non-terminal state. The current
// slice accrues into Burst only when the record is running at failure time;
// a paused record already closed its slice out at preemption and the paused
// interval never counts. Turnaround and waiting stay zero. Response is still
// finalized when the record ever started.
func (r *Record) Fail(now int64) error {
	if r.Terminal() {
		return ErrTerminal
	}
	if r.State == StateRunning {
		r.ContextEnd = now
		r.Burst += r.ContextEnd - r.ContextStart
	}
	r.State = StateError
	r.Errored = true
	if r.Started {
		r.Response = r.Start - r.Arrival
	}
	return nil
}
