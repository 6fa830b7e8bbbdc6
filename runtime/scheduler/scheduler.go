// Package scheduler implements the single loop shared by every scheduling
// policy: ingest new arrivals, pick the next record, run or preempt it,
// update metrics and history, repeat until no work remains. The loop runs
// on one goroutine; the only parallelism is between the loop and the child
// OS processes it manages.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schedo/schedo/internal/clock"
	"github.com/schedo/schedo/internal/idgen"
	"github.com/schedo/schedo/internal/logger"
	"github.com/schedo/schedo/model"
	"github.com/schedo/schedo/policy"
	"github.com/schedo/schedo/progress"
	"github.com/schedo/schedo/service/control"
	"github.com/schedo/schedo/service/ingest"
	"github.com/schedo/schedo/service/metrics"
	"github.com/schedo/schedo/tracing"
)

// Service drives one scheduler run.
type Service struct {
	policy  policy.Policy
	source  ingest.Source
	control *control.Service
	metrics *metrics.Service
	state   *policy.State
	clock   *clock.Clock
	logger  *slog.Logger

	boostInterval time.Duration
	idleInterval  time.Duration

	// sleep is stubbed in tests; the quantum mechanism is a fixed sleep,
	// the decision is made only after the full quantum elapsed.
	sleep func(time.Duration)
}

// Option customises the scheduler.
type Option func(*Service)

// WithBoostInterval sets the priority-boost cadence. Zero disables boost.
func WithBoostInterval(interval time.Duration) Option {
	return func(s *Service) { s.boostInterval = interval }
}

// WithIdleInterval sets how long the loop sleeps when no work is available.
func WithIdleInterval(interval time.Duration) Option {
	return func(s *Service) { s.idleInterval = interval }
}

// WithController sets the process controller.
func WithController(c *control.Service) Option {
	return func(s *Service) { s.control = c }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Service) Option {
	return func(s *Service) { s.metrics = m }
}

// WithState sets a pre-built scheduler state, mainly for tests seeding
// predictor history.
func WithState(state *policy.State) Option {
	return func(s *Service) { s.state = state }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSleep overrides the quantum/idle sleep function, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Service) { s.sleep = sleep }
}

// New creates a scheduler for the supplied policy and ingestion source.
func New(p policy.Policy, source ingest.Source, options ...Option) *Service {
	s := &Service{
		policy:       p,
		source:       source,
		idleInterval: 10 * time.Millisecond,
		sleep:        time.Sleep,
		logger:       slog.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.control == nil {
		s.control = control.New(control.WithLogger(s.logger))
	}
	if s.metrics == nil {
		s.metrics = metrics.New(metrics.WithLogger(s.logger))
	}
	if s.state == nil {
		s.state = policy.NewState()
	}
	return s
}

// Outcome summarises a finished run.
type Outcome struct {
	RunID    string
	Policy   string
	Records  []*model.Record
	Counters progress.Progress
	Elapsed  time.Duration
}

// Run executes the scheduling loop until the source is exhausted and every
// record reached a terminal state, or until ctx is cancelled. An offline
// source exhausts immediately; an online source exhausts at input EOF.
func (s *Service) Run(ctx context.Context) (out *Outcome, err error) {
	runID := idgen.New()
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("scheduler.run %s", s.policy.Name()), "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": runID, "policy": s.policy.Name()})
	defer func() { tracing.EndSpan(span, err) }()

	ctx, tracker := progress.WithNewTracker(ctx, runID, s.policy.Name(), nil)
	s.clock = clock.New()
	started := clock.Now()

	if oErr := s.metrics.Open(ctx); oErr != nil {
		s.logger.Error("failed to open metrics table", logger.ErrAttr(oErr))
	}

	var lastBoost int64
	exhausted := false
	for {
		if cErr := ctx.Err(); cErr != nil {
			err = cErr
			break
		}

		// Drain ingestion completely before each decision so that arrivals
		// are never decided on stale information within one round.
		commands, done := s.source.Poll(ctx)
		if done {
			exhausted = true
		}
		for _, command := range commands {
			rec := s.state.Table.Add(command, s.clock.Millis())
			s.policy.OnArrival(s.state, rec)
			progress.UpdateCtx(ctx, progress.Delta{Arrived: 1})
		}

		if s.boostInterval > 0 && s.clock.Millis()-lastBoost >= s.boostInterval.Milliseconds() {
			s.policy.OnBoostTick(s.state)
			lastBoost = s.clock.Millis()
			progress.UpdateCtx(ctx, progress.Delta{Boosts: 1})
		}

		decision := s.policy.SelectNext(s.state)
		if decision == nil {
			if exhausted && s.state.Table.Remaining() == 0 {
				break
			}
			s.sleep(s.idleInterval)
			continue
		}

		if sErr := s.runSlice(ctx, decision); sErr != nil {
			err = sErr
			break
		}
	}

	out = &Outcome{
		RunID:    runID,
		Policy:   s.policy.Name(),
		Records:  s.state.Table.Records(),
		Counters: tracker.Snapshot(),
		Elapsed:  clock.Now().Sub(started),
	}
	return out, err
}

// State exposes the scheduler context, mainly for tests.
func (s *Service) State() *policy.State { return s.state }

// runSlice dispatches or resumes one record for one quantum (or to
// completion when the quantum is zero). The returned error is non-nil only
// for context cancellation; control-call failures are handled in-loop.
func (s *Service) runSlice(ctx context.Context, decision *policy.Decision) error {
	rec := decision.Record
	_, span := tracing.StartSpan(ctx, fmt.Sprintf("scheduler.slice %s", rec.Command), "INTERNAL")
	var sliceErr error
	defer func() { tracing.EndSpan(span, sliceErr) }()

	if !rec.Started {
		if err := s.control.Start(rec, s.clock.Millis()); err != nil {
			// Spawn failure: the record is abandoned, not re-queued. It is
			// moved to its terminal error state so that table-scanning
			// policies never re-select it, but it produces no metrics row.
			sliceErr = err
			s.logger.Error("failed to spawn process",
				slog.String("command", rec.Command), logger.ErrAttr(err))
			if fErr := rec.Fail(s.clock.Millis()); fErr != nil {
				s.logger.Error("invalid fail transition",
					slog.String("command", rec.Command), logger.ErrAttr(fErr))
				return nil
			}
			s.state.Table.Settle()
			progress.UpdateCtx(ctx, progress.Delta{Abandoned: 1})
			return nil
		}
	} else {
		if err := s.control.Resume(rec, s.clock.Millis()); err != nil {
			// A failed continue signal leaves the child unusable; treat the
			// record as errored rather than rescheduling it in an ambiguous
			// state.
			sliceErr = err
			s.logger.Error("failed to resume process",
				slog.String("command", rec.Command), logger.ErrAttr(err))
			s.finalize(ctx, rec, control.Failed)
			return nil
		}
	}

	if decision.Quantum <= 0 {
		status, err := s.control.Wait(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				sliceErr = err
				return err
			}
			s.logger.Error("wait failed",
				slog.String("command", rec.Command), logger.ErrAttr(err))
			return nil
		}
		s.finalize(ctx, rec, status)
		return nil
	}

	// Coarse cooperative preemption: always wait out the full quantum
	// before checking, even if the child finished sooner.
	s.sleep(decision.Quantum)

	status, err := s.control.Poll(rec)
	if err != nil {
		s.logger.Error("poll failed",
			slog.String("command", rec.Command), logger.ErrAttr(err))
		return nil
	}
	if status == control.StillRunning {
		if pErr := s.control.Pause(rec, s.clock.Millis()); pErr != nil {
			// A failed stop signal means the child keeps running outside
			// scheduler control; treat the record as errored.
			sliceErr = pErr
			s.logger.Error("failed to pause process",
				slog.String("command", rec.Command), logger.ErrAttr(pErr))
			s.finalize(ctx, rec, control.Failed)
			return nil
		}
		s.metrics.EmitSwitch(rec)
		s.policy.OnPreempt(s.state, rec)
		progress.UpdateCtx(ctx, progress.Delta{Preempted: 1})
		return nil
	}
	s.finalize(ctx, rec, status)
	return nil
}

// finalize moves a record to its terminal state, registers burst history on
// success, and records metrics. A finishing process that exited exactly as
// its quantum expired lands here via the non-blocking poll, never in limbo.
func (s *Service) finalize(ctx context.Context, rec *model.Record, status control.Status) {
	now := s.clock.Millis()
	if status == control.Succeeded {
		if err := rec.Finish(now); err != nil {
			s.logger.Error("invalid finish transition",
				slog.String("command", rec.Command), logger.ErrAttr(err))
			return
		}
		s.state.Predictor.Record(rec.Command, rec.Burst)
		progress.UpdateCtx(ctx, progress.Delta{Completed: 1})
	} else {
		if err := rec.Fail(now); err != nil {
			s.logger.Error("invalid fail transition",
				slog.String("command", rec.Command), logger.ErrAttr(err))
			return
		}
		progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
	}
	s.state.Table.Settle()
	s.metrics.RecordTerminal(ctx, rec)
	s.metrics.EmitSwitch(rec)
}
