package model

// Queue is an ordered FIFO of record references. It holds references only;
// the authoritative owner of every record is the scheduler's Table. The
// scheduling loop is single-threaded so no locking is required.
type Queue struct {
	items []*Record
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a record to the back of the queue.
func (q *Queue) Enqueue(rec *Record) {
	q.items = append(q.items, rec)
}

// Dequeue removes and returns the front record, or nil when empty.
func (q *Queue) Dequeue() *Record {
	if len(q.items) == 0 {
		return nil
	}
	rec := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return rec
}

// Peek returns the front record without removing it.
func (q *Queue) Peek() *Record {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Len returns the number of queued records.
func (q *Queue) Len() int { return len(q.items) }

// At returns the i-th queued record without removing it.
func (q *Queue) At(i int) *Record {
	if i < 0 || i >= len(q.items) {
		return nil
	}
	return q.items[i]
}

// Drain removes every record in FIFO order and appends it to dst, preserving
// relative order. Used by the priority boost to move whole tiers.
func (q *Queue) Drain(dst *Queue) {
	for {
		rec := q.Dequeue()
		if rec == nil {
			return
		}
		dst.Enqueue(rec)
	}
}
