// Package observability provides OpenTelemetry tracing for strata passes
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer every pass span is created from.
const InstrumentationName = "github.com/ajitpratap0/strata"

// TracingConfig contains tracing configuration
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
	ServiceName    string  `mapstructure:"service_name" yaml:"service_name"`
	ServiceVersion string  `mapstructure:"service_version" yaml:"service_version"`
	SamplingRate   float64 `mapstructure:"sampling_rate" yaml:"sampling_rate"`
	ExporterType   string  `mapstructure:"exporter" yaml:"exporter"` // "stdout", "none"
}

// Tracer returns the pass tracer from the global provider. Until Init runs
// this is the no-op provider, so spans cost almost nothing.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Span is one traced pass.
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// StartPass opens a span for an algorithmic pass over rows positions.
func StartPass(ctx context.Context, op string, rows int) (context.Context, *Span) {
	ctx, span := Tracer().Start(ctx, "strata."+op)
	s := &Span{span: span, startTime: time.Now()}
	s.SetAttribute("pass.op", op)
	s.SetAttribute("pass.rows", rows)
	return ctx, s
}

// SetAttribute adds an attribute to the span (batched until End)
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	case fmt.Stringer:
		attr = attribute.String(key, v.String())
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// AddEvent adds an event to the span
func (s *Span) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// End records the outcome and closes the span. It returns the pass duration.
func (s *Span) End(err error) time.Duration {
	duration := time.Since(s.startTime)
	s.attributes = append(s.attributes, attribute.Float64("pass.duration_seconds", duration.Seconds()))
	s.span.SetAttributes(s.attributes...)

	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}

	s.span.End()
	return duration
}
