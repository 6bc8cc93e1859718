package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/viant/raceid"

// Phase names a traced step of a transform run.
type Phase string

const (
	PhaseTransform Phase = "raceid.transform"
	PhaseLoad      Phase = "raceid.load"
	PhaseAssign    Phase = "raceid.assign"
	PhasePersist   Phase = "raceid.persist"
	PhasePreview   Phase = "raceid.preview"
)

// Attribute keys recorded on transform spans.
const (
	KeyInput    = attribute.Key("raceid.input")
	KeyOutput   = attribute.Key("raceid.output")
	KeyListKey  = attribute.Key("raceid.key")
	KeyRecords  = attribute.Key("raceid.records")
	KeyReplaced = attribute.Key("raceid.replaced")
	KeyBytes    = attribute.Key("raceid.bytes")
)

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	sink     io.Closer
)

// Init exports spans as JSON to outputFile, or to stdout when outputFile is
// empty. While a provider is installed further calls are ignored.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		w, closer = f, f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		err = install(serviceName, serviceVersion, exporter, closer)
	}
	if err != nil && closer != nil {
		_ = closer.Close()
	}
	return err
}

// InitWithExporter installs a provider exporting to exporter.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	return install(serviceName, serviceVersion, exporter, nil)
}

func install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter, closer io.Closer) error {
	mu.Lock()
	defer mu.Unlock()
	if provider != nil {
		if closer != nil {
			return closer.Close()
		}
		return nil
	}
	res, err := resource.New(context.Background(), resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
	))
	if err != nil {
		return err
	}
	provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter), sdktrace.WithResource(res))
	sink = closer
	otel.SetTracerProvider(provider)
	return nil
}

// Shutdown flushes and removes the installed provider and closes the trace
// file, if any. Init may be called again afterwards.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if sink != nil {
		if closeErr := sink.Close(); err == nil {
			err = closeErr
		}
	}
	provider, sink = nil, nil
	return err
}

// Span is a transform phase span. A nil Span is a no-op.
type Span struct {
	span trace.Span
}

// Start opens a span for phase as a child of any span in ctx.
func Start(ctx context.Context, phase Phase) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, string(phase), trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// Locations records the input, output and list key of a run.
func (s *Span) Locations(input, output, key string) {
	if s == nil {
		return
	}
	s.span.SetAttributes(KeyInput.String(input), KeyOutput.String(output), KeyListKey.String(key))
}

// Records records how many records were stamped and how many had a prior id.
func (s *Span) Records(records, replaced int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(KeyRecords.Int(records), KeyReplaced.Int(replaced))
}

// Size records the encoded document size.
func (s *Span) Size(bytes int) {
	if s == nil {
		return
	}
	s.span.SetAttributes(KeyBytes.Int(bytes))
}

// End sets the span status from err and ends it.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
