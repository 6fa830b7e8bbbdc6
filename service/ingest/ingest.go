// Package ingest supplies commands to the scheduling loop. The online
// source reads newline-terminated commands as they arrive without ever
// blocking the scheduler; the offline source is a fixed list known before
// the loop starts.
package ingest

import "context"

// Source produces commands for the scheduler. Poll returns every command
// currently available without blocking, plus whether the source can ever
// produce more. The scheduler drains the source completely before each
// scheduling decision.
type Source interface {
	Poll(ctx context.Context) (commands []string, exhausted bool)
}
