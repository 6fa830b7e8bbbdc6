package policy

import (
	"time"

	"github.com/schedo/schedo/model"
)

// roundRobin visits the process table in fixed index order, giving every
// not-yet-terminal record exactly one quantum slice per full cycle.
// Finished and errored records stay in the rotation and are skipped in
// constant time per visit.
type roundRobin struct {
	quantum time.Duration
	cursor  int
}

// RoundRobin returns the offline round-robin policy with the supplied
// quantum.
func RoundRobin(quantum time.Duration) Policy {
	return &roundRobin{quantum: quantum}
}

func (p *roundRobin) Name() string { return "rr" }

func (p *roundRobin) OnArrival(*State, *model.Record) {}

func (p *roundRobin) SelectNext(s *State) *Decision {
	records := s.Table.Records()
	if len(records) == 0 {
		return nil
	}
	for visited := 0; visited < len(records); visited++ {
		rec := records[p.cursor%len(records)]
		p.cursor = (p.cursor + 1) % len(records)
		if rec.Terminal() {
			continue
		}
		return &Decision{Record: rec, Quantum: p.quantum}
	}
	return nil
}

// OnPreempt is a no-op: the rotation never removes a record, so a preempted
// record is simply revisited on the next cycle.
func (p *roundRobin) OnPreempt(*State, *model.Record) {}

func (p *roundRobin) OnBoostTick(*State) {}
