// Package metrics persists per-process timing metrics to a delimited table
// and emits one live event line per context switch. The table file and the
// event stream are the authoritative record of scheduling outcomes.
package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/schedo/schedo/internal/logger"
	"github.com/schedo/schedo/model"
)

// Header is the first line of every metrics table.
const Header = "Command, Finished, Error, Burst Time (in ms), Turnaround Time (in ms), Waiting Time (in ms), Response Time (in ms)"

type flusher interface {
	Flush() error
}

// Service writes the metrics table through afs and the event stream to a
// plain writer. All calls happen on the single scheduling thread.
type Service struct {
	fs     afs.Service
	url    string
	buffer bytes.Buffer
	events io.Writer
	logger *slog.Logger
}

// Option customises the recorder.
type Option func(*Service)

// WithURL sets the metrics table destination (any afs-supported URL).
func WithURL(url string) Option {
	return func(s *Service) { s.url = url }
}

// WithEventWriter sets the context-switch event stream destination.
func WithEventWriter(w io.Writer) Option {
	return func(s *Service) { s.events = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithFS overrides the file service, mainly for tests.
func WithFS(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// New creates a recorder. Without a URL the table is kept in memory only;
// the event stream defaults to stdout.
func New(options ...Option) *Service {
	s := &Service{
		fs:     afs.New(),
		events: os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Open truncates the table and writes the header line.
func (s *Service) Open(ctx context.Context) error {
	s.buffer.Reset()
	s.buffer.WriteString(Header)
	s.buffer.WriteByte('\n')
	return s.flush(ctx)
}

// RecordTerminal appends one row for a finished or errored record. An I/O
// failure is logged and that write skipped; the row stays buffered and goes
// out with the next successful flush.
func (s *Service) RecordTerminal(ctx context.Context, rec *model.Record) {
	fmt.Fprintf(&s.buffer, "%s, %s, %s, %d, %d, %d, %d\n",
		rec.Command,
		yesNo(rec.Finished),
		yesNo(rec.Errored),
		rec.Burst,
		rec.Turnaround,
		rec.Waiting,
		rec.Response)
	if err := s.flush(ctx); err != nil {
		s.logger.Error("failed to write metrics row",
			slog.String("command", rec.Command), logger.ErrAttr(err))
	}
}

// EmitSwitch writes one pipe-delimited event line for a run-slice boundary
// and flushes immediately so external observers can follow in real time.
func (s *Service) EmitSwitch(rec *model.Record) {
	fmt.Fprintf(s.events, "%s|%d|%d\n", rec.Command, rec.ContextStart, rec.ContextEnd)
	if f, ok := s.events.(flusher); ok {
		_ = f.Flush()
	}
}

// Table returns the current table contents including the header.
func (s *Service) Table() []byte {
	return s.buffer.Bytes()
}

func (s *Service) flush(ctx context.Context) error {
	if s.url == "" {
		return nil
	}
	data := make([]byte, s.buffer.Len())
	copy(data, s.buffer.Bytes())
	if err := s.fs.Upload(ctx, s.url, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload metrics table %s: %w", s.url, err)
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
