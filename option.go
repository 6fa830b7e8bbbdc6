package schedo

import (
	"io"
	"log/slog"

	"github.com/schedo/schedo/policy"
	"github.com/schedo/schedo/service/control"
	"github.com/schedo/schedo/service/ingest"
	"github.com/schedo/schedo/tracing"
)

// Option customises the Service façade.
type Option func(s *Service)

// WithConfig sets the engine configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Service) { s.config = cfg }
}

// WithSource sets the ingestion source.
func WithSource(source ingest.Source) Option {
	return func(s *Service) { s.source = source }
}

// WithCommands is an offline shortcut wrapping a fixed command list into a
// source.
func WithCommands(commands ...string) Option {
	return func(s *Service) { s.source = ingest.NewList(commands...) }
}

// WithInput sets the online ingestion input stream (defaults to stdin).
func WithInput(r io.Reader) Option {
	return func(s *Service) { s.input = r }
}

// WithController sets the process controller.
func WithController(c *control.Service) Option {
	return func(s *Service) { s.controller = c }
}

// WithState seeds the scheduler state, e.g. with predictor history.
func WithState(state *policy.State) Option {
	return func(s *Service) { s.state = state }
}

// WithEventWriter sets the context-switch event stream destination.
func WithEventWriter(w io.Writer) Option {
	return func(s *Service) { s.eventWriter = w }
}

// WithMetricsURL sets the metrics table destination, overriding the config.
func WithMetricsURL(url string) Option {
	return func(s *Service) { s.metricsURL = url }
}

// WithReportWriter enables the end-of-run summary table on the supplied
// writer.
func WithReportWriter(w io.Writer) Option {
	return func(s *Service) { s.reportWriter = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracing configures OpenTelemetry tracing for the service. If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path. The function is safe to call multiple
// times; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
