package policy

import "github.com/schedo/schedo/model"

// shortestJobFirst selects the non-terminal record with the smallest
// predicted burst and runs it to completion. A never-seen command uses the
// predictor's default estimate so that it stays schedulable without
// history. Ties break toward the earliest arrival.
type shortestJobFirst struct{}

// SJF returns the online shortest-job-first policy.
func SJF() Policy {
	return &shortestJobFirst{}
}

func (p *shortestJobFirst) Name() string { return "sjf" }

func (p *shortestJobFirst) OnArrival(*State, *model.Record) {}

func (p *shortestJobFirst) SelectNext(s *State) *Decision {
	var best *model.Record
	var bestEstimate int64
	for _, rec := range s.Table.Records() {
		if rec.Terminal() {
			continue
		}
		estimate := s.Predictor.EstimateOrDefault(rec.Command)
		if best == nil || estimate < bestEstimate {
			best = rec
			bestEstimate = estimate
		}
	}
	if best == nil {
		return nil
	}
	return &Decision{Record: best}
}

func (p *shortestJobFirst) OnPreempt(*State, *model.Record) {}

func (p *shortestJobFirst) OnBoostTick(*State) {}
