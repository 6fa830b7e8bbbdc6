package policy

import (
	"time"

	"github.com/schedo/schedo/model"
	"github.com/schedo/schedo/predictor"
)

// State is the scheduler context shared with every policy: the process
// table owning all records and the burst history. It is passed explicitly
// into each operation; there is no ambient global state.
type State struct {
	Table     *model.Table
	Predictor *predictor.Predictor
}

// NewState returns an empty scheduler state.
func NewState() *State {
	return &State{
		Table:     model.NewTable(),
		Predictor: predictor.New(),
	}
}

// Decision names the record to run next and for how long. A zero Quantum
// means run to completion (blocking wait).
type Decision struct {
	Record  *model.Record
	Quantum time.Duration
}

// Policy is the strategy consulted at every scheduling decision point. All
// five variants share the same loop; a policy only decides placement,
// selection, demotion and boost handling.
type Policy interface {
	Name() string

	// OnArrival places a newly arrived record.
	OnArrival(s *State, rec *model.Record)

	// SelectNext picks the record to run next, or nil when no runnable
	// work exists.
	SelectNext(s *State) *Decision

	// OnPreempt reinserts a record preempted before completion.
	OnPreempt(s *State, rec *model.Record)

	// OnBoostTick runs when the boost interval elapses.
	OnBoostTick(s *State)
}
