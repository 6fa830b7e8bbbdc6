// Package control wraps OS process creation, suspension, resumption and
// completion detection for the scheduler. It is the only component that
// talks to the operating system; policies interact with it exclusively
// through Start, Wait, Poll, Pause and Resume.
package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/schedo/schedo/model"
)

// Status classifies the result of a non-blocking poll.
type Status int

const (
	// StillRunning indicates the child has not exited yet.
	StillRunning Status = iota
	// Succeeded indicates the child exited with status zero.
	Succeeded
	// Failed indicates the child exited nonzero or terminated abnormally.
	Failed
)

// ErrNotStarted is returned when an operation requires a spawned child.
var ErrNotStarted = errors.New("record has no child process")

type outcome struct {
	ok  bool
	err error
}

type child struct {
	cmd  *exec.Cmd
	done chan outcome
}

// Service spawns and controls child processes, one per started record. The
// scheduler drives it from a single goroutine; the only concurrency is the
// per-child reaper goroutine publishing the exit outcome.
type Service struct {
	children map[string]*child
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
}

// Option customises the controller.
type Option func(*Service)

// WithOutput redirects child stdout/stderr, mainly for tests.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Service) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a controller.
func New(options ...Option) *Service {
	s := &Service{
		children: make(map[string]*child),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Start spawns a child for the record's command and marks the record
// running. An empty or untokenizable command becomes a no-op child that
// succeeds immediately; a command whose binary cannot be resolved becomes a
// child that fails immediately, matching exec failure inside a forked
// child. Only a genuine spawn failure (resource exhaustion) is returned as
// an error, in which case the record stays pending.
func (s *Service) Start(rec *model.Record, now int64) error {
	args := Tokenize(rec.Command)
	if len(args) == 0 {
		c := &child{done: make(chan outcome, 1)}
		c.done <- outcome{ok: true}
		s.children[rec.ID] = c
		return rec.MarkStarted(0, now)
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		c := &child{done: make(chan outcome, 1)}
		c.done <- outcome{ok: false, err: err}
		s.children[rec.ID] = c
		return rec.MarkStarted(0, now)
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %q: %w", rec.Command, err)
	}
	c := &child{cmd: cmd, done: make(chan outcome, 1)}
	go func() {
		err := cmd.Wait()
		c.done <- outcome{ok: err == nil, err: err}
	}()
	s.children[rec.ID] = c
	return rec.MarkStarted(cmd.Process.Pid, now)
}

// Wait blocks until the record's child exits and returns its
// classification. Used by policies that always run to completion.
func (s *Service) Wait(ctx context.Context, rec *model.Record) (Status, error) {
	c, ok := s.children[rec.ID]
	if !ok {
		return Failed, ErrNotStarted
	}
	select {
	case out := <-c.done:
		s.release(rec)
		if out.ok {
			return Succeeded, nil
		}
		return Failed, nil
	case <-ctx.Done():
		return StillRunning, ctx.Err()
	}
}

// Poll checks without blocking whether the record's child has exited.
func (s *Service) Poll(rec *model.Record) (Status, error) {
	c, ok := s.children[rec.ID]
	if !ok {
		return Failed, ErrNotStarted
	}
	select {
	case out := <-c.done:
		s.release(rec)
		if out.ok {
			return Succeeded, nil
		}
		return Failed, nil
	default:
		return StillRunning, nil
	}
}

// Pause stops the child and closes out the current burst slice. It is a
// no-op when the record has not started or is already terminal.
func (s *Service) Pause(rec *model.Record, now int64) error {
	if !rec.Running() {
		return nil
	}
	c, ok := s.children[rec.ID]
	if !ok {
		return ErrNotStarted
	}
	if c.cmd != nil {
		if err := c.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
			return fmt.Errorf("failed to pause pid %d: %w", rec.PID, err)
		}
	}
	return rec.MarkPaused(now)
}

// Resume continues a paused child and opens a new burst slice. It is a
// no-op when the record has not started or is already terminal.
func (s *Service) Resume(rec *model.Record, now int64) error {
	if !rec.Paused() {
		return nil
	}
	c, ok := s.children[rec.ID]
	if !ok {
		return ErrNotStarted
	}
	if c.cmd != nil {
		if err := c.cmd.Process.Signal(syscall.SIGCONT); err != nil {
			return fmt.Errorf("failed to resume pid %d: %w", rec.PID, err)
		}
	}
	return rec.MarkResumed(now)
}

// Active returns the number of children not yet reaped.
func (s *Service) Active() int { return len(s.children) }

func (s *Service) release(rec *model.Record) {
	delete(s.children, rec.ID)
}
