package schedo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schedo/schedo/internal/logger"
	"github.com/schedo/schedo/policy"
	"github.com/schedo/schedo/runtime/scheduler"
	"github.com/schedo/schedo/service/control"
	"github.com/schedo/schedo/service/ingest"
	"github.com/schedo/schedo/service/metrics"
	"github.com/schedo/schedo/service/report"
)

// Kind names a scheduling policy variant.
type Kind string

const (
	// SJF is online shortest-job-first: run the smallest predicted burst
	// to completion, re-polling ingestion between runs.
	SJF Kind = "sjf"
	// MLFQOnline is the online multi-level feedback queue.
	MLFQOnline Kind = "mlfq-online"
	// FCFS is offline first-come-first-served.
	FCFS Kind = "fcfs"
	// RR is offline round-robin.
	RR Kind = "rr"
	// MLFQOffline is the offline multi-level feedback queue.
	MLFQOffline Kind = "mlfq-offline"
)

// Service is the engine façade: it wires the controller, predictor,
// metrics recorder and ingestion source together and runs one policy.
type Service struct {
	config       *Config
	source       ingest.Source
	input        io.Reader
	controller   *control.Service
	state        *policy.State
	eventWriter  io.Writer
	metricsURL   string
	reportWriter io.Writer
	logger       *slog.Logger
}

// New creates a Service.
func New(options ...Option) *Service {
	s := &Service{
		config:      DefaultConfig(),
		input:       os.Stdin,
		eventWriter: os.Stdout,
		logger:      logger.Build(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (c *Config) millis(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func (s *Service) buildPolicy(kind Kind) (policy.Policy, error) {
	cfg := s.config
	switch kind {
	case SJF:
		return policy.SJF(), nil
	case FCFS:
		return policy.FCFS(), nil
	case RR:
		return policy.RoundRobin(cfg.millis(cfg.Quantum)), nil
	case MLFQOnline, MLFQOffline:
		return policy.MLFQ(cfg.millis(cfg.Quantum0), cfg.millis(cfg.Quantum1), cfg.millis(cfg.Quantum2)), nil
	}
	return nil, fmt.Errorf("unsupported policy kind: %s", kind)
}

func (s *Service) buildSource(kind Kind) (ingest.Source, error) {
	if s.source != nil {
		return s.source, nil
	}
	switch kind {
	case SJF, MLFQOnline:
		return ingest.NewReader(s.input), nil
	}
	return nil, fmt.Errorf("offline policy %s requires a command list (WithCommands or WithSource)", kind)
}

// Run executes one scheduler run under the supplied policy kind and returns
// its outcome. Offline kinds end when every command reached a terminal
// state; online kinds end at input EOF once all work drained, or on context
// cancellation.
func (s *Service) Run(ctx context.Context, kind Kind) (*scheduler.Outcome, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	aPolicy, err := s.buildPolicy(kind)
	if err != nil {
		return nil, err
	}
	source, err := s.buildSource(kind)
	if err != nil {
		return nil, err
	}

	metricsURL := s.metricsURL
	if metricsURL == "" {
		metricsURL = s.config.MetricsURL
	}
	recorder := metrics.New(
		metrics.WithURL(metricsURL),
		metrics.WithEventWriter(s.eventWriter),
		metrics.WithLogger(s.logger),
	)

	options := []scheduler.Option{
		scheduler.WithMetrics(recorder),
		scheduler.WithIdleInterval(s.config.millis(s.config.IdleInterval)),
		scheduler.WithLogger(s.logger),
	}
	if s.controller != nil {
		options = append(options, scheduler.WithController(s.controller))
	}
	if s.state != nil {
		options = append(options, scheduler.WithState(s.state))
	}
	if kind == MLFQOnline || kind == MLFQOffline {
		options = append(options, scheduler.WithBoostInterval(s.config.millis(s.config.BoostInterval)))
	}

	out, err := scheduler.New(aPolicy, source, options...).Run(ctx)
	if out != nil && s.reportWriter != nil {
		report.Render(s.reportWriter, out)
	}
	return out, err
}
