package policy

import (
	"time"

	"github.com/schedo/schedo/model"
)

const (
	tierCount = 3
	// midTier is where a command with no burst history lands.
	midTier = 1
)

// multiLevelFeedback keeps three priority tiers with growing quanta. New
// arrivals are classified by predicted burst, a preempted record demotes
// one tier (the bottom tier is its own floor) and a periodic boost moves
// every waiting record back to the top tier.
type multiLevelFeedback struct {
	quanta   [tierCount]time.Duration
	tiers    [tierCount]*model.Queue
	lastTier int
}

// MLFQ returns the multi-level-feedback-queue policy. It serves both the
// online and the offline mode; the mode is determined by the ingestion
// source driving the scheduler.
func MLFQ(quantum0, quantum1, quantum2 time.Duration) Policy {
	p := &multiLevelFeedback{quanta: [tierCount]time.Duration{quantum0, quantum1, quantum2}}
	for i := range p.tiers {
		p.tiers[i] = model.NewQueue()
	}
	return p
}

func (p *multiLevelFeedback) Name() string { return "mlfq" }

// classify maps predicted burst to a tier. No history places the record in
// the middle tier.
func (p *multiLevelFeedback) classify(s *State, rec *model.Record) int {
	estimate, ok := s.Predictor.Estimate(rec.Command)
	if !ok {
		return midTier
	}
	if estimate <= p.quanta[0].Milliseconds() {
		return 0
	}
	if estimate <= p.quanta[1].Milliseconds() {
		return 1
	}
	return 2
}

func (p *multiLevelFeedback) OnArrival(s *State, rec *model.Record) {
	p.tiers[p.classify(s, rec)].Enqueue(rec)
}

func (p *multiLevelFeedback) SelectNext(*State) *Decision {
	for tier := 0; tier < tierCount; tier++ {
		for {
			rec := p.tiers[tier].Dequeue()
			if rec == nil {
				break
			}
			if rec.Terminal() {
				continue
			}
			p.lastTier = tier
			return &Decision{Record: rec, Quantum: p.quanta[tier]}
		}
	}
	return nil
}

// OnPreempt demotes one tier; the bottom tier demotes to itself.
func (p *multiLevelFeedback) OnPreempt(_ *State, rec *model.Record) {
	tier := p.lastTier + 1
	if tier >= tierCount {
		tier = tierCount - 1
	}
	p.tiers[tier].Enqueue(rec)
}

// OnBoostTick moves every record waiting below the top tier to the back of
// tier 0, preserving relative order, bounding starvation of demoted jobs.
func (p *multiLevelFeedback) OnBoostTick(*State) {
	for tier := 1; tier < tierCount; tier++ {
		p.tiers[tier].Drain(p.tiers[0])
	}
}

// Tier reports which tier currently holds rec, or -1 when the record is not
// queued (running or terminal). Intended for tests and introspection.
func (p *multiLevelFeedback) Tier(rec *model.Record) int {
	for tier := 0; tier < tierCount; tier++ {
		q := p.tiers[tier]
		for i := 0; i < q.Len(); i++ {
			if q.At(i) == rec {
				return tier
			}
		}
	}
	return -1
}
