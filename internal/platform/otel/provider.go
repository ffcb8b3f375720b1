// Package otel configures OpenTelemetry tracing for the dashboard process.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used by dashboard spans.
const TracerName = "github.com/louisbranch/insightboard"

// Settings selects where and how spans are exported.
type Settings struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables export.
	Endpoint string
	// Enabled must be set for export to happen.
	Enabled bool
	// SampleRatio is the fraction of root spans kept. Values outside (0, 1)
	// keep every span.
	SampleRatio float64
}

// Exporting reports whether the settings turn on span export.
func (s Settings) Exporting() bool {
	return s.Enabled && strings.TrimSpace(s.Endpoint) != ""
}

func (s Settings) sampler() sdktrace.Sampler {
	if s.SampleRatio > 0 && s.SampleRatio < 1 {
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))
	}
	return sdktrace.AlwaysSample()
}

// Setup registers a global tracer provider exporting to settings.Endpoint.
// When export is off it registers nothing and returns a no-op shutdown.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string, settings Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !settings.Exporting() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(settings.sampler()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the dashboard tracer from the global provider. Spans are
// no-ops until Setup registers an exporter.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
