// Package tracing wraps OpenTelemetry so the driver can put one span around
// every handled trace event without importing the SDK itself.
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentation = "procsim/internal/sim"

// Tracer starts spans for a single run.
type Tracer struct {
	tp     *sdktrace.TracerProvider // nil for the no-op tracer
	tracer trace.Tracer
	closer io.Closer
}

// Noop returns a tracer whose spans record nothing.
func Noop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentation)}
}

// Open writes spans with the stdout exporter to the file at path.
func Open(path, serviceName, runID string) (*Tracer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	t, err := NewWithExporter(exporter, serviceName, runID)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	t.closer = f
	return t, nil
}

// NewWithExporter builds a tracer on any SpanExporter. Spans are exported
// synchronously as they end.
func NewWithExporter(exporter sdktrace.SpanExporter, serviceName, runID string) (*Tracer, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("procsim.run_id", runID),
		),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Tracer{tp: tp, tracer: tp.Tracer(instrumentation)}, nil
}

// Start opens a span named name carrying attrs.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Span{span: span}
}

// Shutdown flushes pending spans and closes the output file.
func (t *Tracer) Shutdown(ctx context.Context) error {
	var err error
	if t.tp != nil {
		err = t.tp.Shutdown(ctx)
	}
	if t.closer != nil {
		if cerr := t.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Span is a started span.
type Span struct {
	span trace.Span
}

// SetAttributes adds attributes after the span has started.
func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// SetStatus records err on the span, or an OK status when err is nil.
func (s *Span) SetStatus(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// End finishes the span.
func (s *Span) End() { s.span.End() }
