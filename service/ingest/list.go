package ingest

import "context"

// List is the offline source: a pre-populated ordered command list handed
// out in full on the first poll.
type List struct {
	commands []string
	consumed bool
}

// NewList creates an offline source over the supplied commands.
func NewList(commands ...string) *List {
	return &List{commands: commands}
}

// Poll returns every command on the first call and reports exhaustion from
// then on.
func (l *List) Poll(_ context.Context) ([]string, bool) {
	if l.consumed {
		return nil, true
	}
	l.consumed = true
	return l.commands, true
}
