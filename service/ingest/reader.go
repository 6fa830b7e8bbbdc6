package ingest

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Reader is the online source: a background goroutine scans the input
// line-by-line into a buffered channel and Poll drains whatever has arrived
// so far. The scheduler never blocks waiting for input.
type Reader struct {
	lines chan string
}

// NewReader starts scanning r. Blank lines are skipped.
func NewReader(r io.Reader) *Reader {
	ret := &Reader{lines: make(chan string, 128)}
	go ret.scan(r)
	return ret
}

func (r *Reader) scan(in io.Reader) {
	defer close(r.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.lines <- line
	}
}

// Poll drains all currently available commands. exhausted turns true once
// the underlying input reached EOF and every line was consumed.
func (r *Reader) Poll(ctx context.Context) ([]string, bool) {
	var commands []string
	for {
		select {
		case line, ok := <-r.lines:
			if !ok {
				return commands, true
			}
			commands = append(commands, line)
		case <-ctx.Done():
			return commands, true
		default:
			return commands, false
		}
	}
}
