package model

// Table is the scheduler's process table: an append-only arena that owns
// every record for the lifetime of a run, in arrival order. Queues and
// policies hold references into it.
type Table struct {
	records   []*Record
	remaining int
}

// NewTable returns an empty process table.
func NewTable() *Table {
	return &Table{}
}

// Add creates a record for command arriving at the supplied time and takes
// ownership of it.
func (t *Table) Add(command string, arrival int64) *Record {
	rec := NewRecord(command, arrival)
	t.records = append(t.records, rec)
	t.remaining++
	return rec
}

// Records returns all records in arrival order. Callers must not reorder
// the slice.
func (t *Table) Records() []*Record { return t.records }

// Len returns the number of records ever added.
func (t *Table) Len() int { return len(t.records) }

// Remaining returns the number of non-terminal records.
func (t *Table) Remaining() int { return t.remaining }

// Settle marks one record as having reached a terminal state. The scheduler
// calls it exactly once per finished or errored record.
func (t *Table) Settle() {
	if t.remaining > 0 {
		t.remaining--
	}
}
