package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newMLFQ() (*multiLevelFeedback, *State) {
	p := MLFQ(50*time.Millisecond, 100*time.Millisecond, 200*time.Millisecond).(*multiLevelFeedback)
	return p, NewState()
}

func TestMLFQClassification(t *testing.T) {
	p, s := newMLFQ()

	// No history lands in the middle tier.
	unseen := s.Table.Add("unseen", 0)
	p.OnArrival(s, unseen)
	assert.Equal(t, 1, p.Tier(unseen))

	// Predicted burst <= quantum0 -> tier 0.
	s.Predictor.Record("quick", 30)
	quick := s.Table.Add("quick", 0)
	p.OnArrival(s, quick)
	assert.Equal(t, 0, p.Tier(quick))

	// quantum0 < burst <= quantum1 -> tier 1.
	s.Predictor.Record("medium", 80)
	medium := s.Table.Add("medium", 0)
	p.OnArrival(s, medium)
	assert.Equal(t, 1, p.Tier(medium))

	// burst > quantum1 -> tier 2.
	s.Predictor.Record("slow", 150)
	slow := s.Table.Add("slow", 0)
	p.OnArrival(s, slow)
	assert.Equal(t, 2, p.Tier(slow))
}

func TestMLFQSelectionAndDemotion(t *testing.T) {
	p, s := newMLFQ()

	rec := s.Table.Add("job", 0)
	p.OnArrival(s, rec) // tier 1, no history

	decision := p.SelectNext(s)
	assert.NotNil(t, decision)
	assert.Same(t, rec, decision.Record)
	assert.Equal(t, 100*time.Millisecond, decision.Quantum)
	assert.Equal(t, -1, p.Tier(rec)) // dequeued while running

	// Preempted in tier 1 -> found in tier 2.
	p.OnPreempt(s, rec)
	assert.Equal(t, 2, p.Tier(rec))

	// Preempted in tier 2 -> tier 2 is the floor.
	decision = p.SelectNext(s)
	assert.Equal(t, 200*time.Millisecond, decision.Quantum)
	p.OnPreempt(s, rec)
	assert.Equal(t, 2, p.Tier(rec))
}

func TestMLFQHighestTierFirst(t *testing.T) {
	p, s := newMLFQ()

	s.Predictor.Record("quick", 10)
	low := s.Table.Add("unseen", 0)
	high := s.Table.Add("quick", 1)
	p.OnArrival(s, low)
	p.OnArrival(s, high)

	decision := p.SelectNext(s)
	assert.Same(t, high, decision.Record)
	assert.Equal(t, 50*time.Millisecond, decision.Quantum)
}

func TestMLFQBoostPreservesOrder(t *testing.T) {
	p, s := newMLFQ()

	s.Predictor.Record("quick", 10)
	s.Predictor.Record("slow", 500)

	top := s.Table.Add("quick", 0)
	mid1 := s.Table.Add("unseen-1", 0)
	mid2 := s.Table.Add("unseen-2", 0)
	bottom := s.Table.Add("slow", 0)
	p.OnArrival(s, top)
	p.OnArrival(s, mid1)
	p.OnArrival(s, mid2)
	p.OnArrival(s, bottom)

	p.OnBoostTick(s)

	// Everything resident below tier 0 moved to the back of tier 0 in
	// prior relative order: tier1 before tier2, FIFO within each.
	assert.Equal(t, 0, p.Tier(top))
	assert.Equal(t, 0, p.Tier(mid1))
	assert.Equal(t, 0, p.Tier(mid2))
	assert.Equal(t, 0, p.Tier(bottom))

	order := []string{}
	for {
		d := p.SelectNext(s)
		if d == nil {
			break
		}
		order = append(order, d.Record.Command)
	}
	assert.Equal(t, []string{"quick", "unseen-1", "unseen-2", "slow"}, order)
}

func TestMLFQSkipsTerminalRecords(t *testing.T) {
	p, s := newMLFQ()

	done := s.Table.Add("done", 0)
	live := s.Table.Add("live", 0)
	p.OnArrival(s, done)
	p.OnArrival(s, live)

	assert.NoError(t, done.MarkStarted(1, 0))
	assert.NoError(t, done.Finish(5))

	decision := p.SelectNext(s)
	assert.Same(t, live, decision.Record)
}
