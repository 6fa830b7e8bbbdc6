// Package predictor keeps per-command burst history used by SJF selection
// and MLFQ tier classification. The predicted value for a command is the
// truncated mean of every successfully completed run of that command.
package predictor

// DefaultEstimate is returned for a command with no history when a concrete
// value is required (SJF selection). MLFQ maps "no history" to its middle
// tier instead.
const DefaultEstimate int64 = 1000

const (
	numBuckets = 3
	hashSeed   = 5147
	hashPrime  = 131
	hashMod    = 1e9 + 7
)

type entry struct {
	command string
	sum     int64
	count   int64
	next    *entry
}

// Predictor maps command text to aggregate observed burst time. Entries are
// created on first successful completion and never deleted. It is mutated
// only from the single scheduling thread.
type Predictor struct {
	buckets [numBuckets]*entry
}

// New returns an empty predictor.
func New() *Predictor {
	return &Predictor{}
}

// hash is a rolling polynomial hash over the command bytes. Record and
// Estimate share it so lookups always hit the bucket an update wrote to.
func hash(command string) uint64 {
	sum := uint64(hashSeed)
	for i := len(command) - 1; i >= 0; i-- {
		sum = (sum*hashPrime + uint64(command[i])) % hashMod
	}
	return sum
}

func (p *Predictor) find(command string) *entry {
	for e := p.buckets[hash(command)%numBuckets]; e != nil; e = e.next {
		if e.command == command {
			return e
		}
	}
	return nil
}

// Record registers one observed burst for command, creating the entry on
// first observation.
func (p *Predictor) Record(command string, burst int64) {
	if e := p.find(command); e != nil {
		e.sum += burst
		e.count++
		return
	}
	idx := hash(command) % numBuckets
	p.buckets[idx] = &entry{command: command, sum: burst, count: 1, next: p.buckets[idx]}
}

// Estimate returns the truncated mean burst for command and whether any
// history exists.
func (p *Predictor) Estimate(command string) (int64, bool) {
	e := p.find(command)
	if e == nil {
		return 0, false
	}
	return e.sum / e.count, true
}

// EstimateOrDefault returns the truncated mean burst, falling back to
// DefaultEstimate for a never-seen command.
func (p *Predictor) EstimateOrDefault(command string) int64 {
	if v, ok := p.Estimate(command); ok {
		return v
	}
	return DefaultEstimate
}

// Observations returns how many completed runs were recorded for command.
func (p *Predictor) Observations(command string) int64 {
	if e := p.find(command); e != nil {
		return e.count
	}
	return 0
}
