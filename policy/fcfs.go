package policy

import "github.com/schedo/schedo/model"

// firstComeFirstServed runs records to completion in strict arrival order.
type firstComeFirstServed struct {
	queue *model.Queue
}

// FCFS returns the offline first-come-first-served policy.
func FCFS() Policy {
	return &firstComeFirstServed{queue: model.NewQueue()}
}

func (p *firstComeFirstServed) Name() string { return "fcfs" }

func (p *firstComeFirstServed) OnArrival(_ *State, rec *model.Record) {
	p.queue.Enqueue(rec)
}

func (p *firstComeFirstServed) SelectNext(*State) *Decision {
	for {
		rec := p.queue.Dequeue()
		if rec == nil {
			return nil
		}
		if rec.Terminal() {
			continue
		}
		return &Decision{Record: rec}
	}
}

func (p *firstComeFirstServed) OnPreempt(*State, *model.Record) {}

func (p *firstComeFirstServed) OnBoostTick(*State) {}
