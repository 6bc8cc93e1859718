package raceid

import (
	"io"

	"github.com/viant/afs"
	"github.com/viant/raceid/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service
type Option func(s *Service)

// WithConfig sets the run configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFs sets the afs service used to read the input and write the output
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithWriter sets the destination of the completion message
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans go to stdout, otherwise to the supplied file.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
