package observability

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// DefaultTracingConfig returns tracing disabled with stdout export ready.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:        false,
		ServiceName:    "strata",
		ServiceVersion: "dev",
		SamplingRate:   1.0,
		ExporterType:   "stdout",
	}
}

// Validate checks the tracing section.
func (c TracingConfig) Validate() error {
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return strataerrors.Newf(strataerrors.ErrorTypeConfig, "tracing sampling_rate %v outside [0, 1]", c.SamplingRate)
	}
	switch c.ExporterType {
	case "stdout", "none":
	default:
		return strataerrors.New(strataerrors.ErrorTypeConfig, "unknown tracing exporter").
			WithDetail("exporter", c.ExporterType)
	}
	return nil
}

// Shutdown flushes and stops a tracer provider installed by Init.
type Shutdown func(ctx context.Context) error

// Init installs a global tracer provider that exports pass spans to w. A
// disabled config leaves the no-op provider in place.
func Init(config TracingConfig, w io.Writer) (Shutdown, error) {
	noop := func(context.Context) error { return nil }
	if !config.Enabled || config.ExporterType == "none" {
		return noop, nil
	}
	if err := config.Validate(); err != nil {
		return noop, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return noop, strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to create trace resource")
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return noop, strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to create stdout exporter")
	}

	var sampler sdktrace.Sampler
	switch {
	case config.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case config.SamplingRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(config.SamplingRate)
	}

	// Synchronous export: a CLI run ends right after its pass.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
