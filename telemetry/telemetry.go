// Package telemetry exports session spans over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"samurai-tactics/config"
)

const serviceName = "samurai-tactics"

// Span and event names recorded by a session.
const (
	SelectSpan    = "session.select"
	MoveEvent     = "move.applied"
	GameOverEvent = "game.over"
)

// Attribute keys carried by session spans.
const (
	SessionKey     = attribute.Key("session.id")
	SquareKey      = attribute.Key("square")
	SquareRowKey   = attribute.Key("square.row")
	SquareColKey   = attribute.Key("square.col")
	StateBeforeKey = attribute.Key("state.before")
	StateAfterKey  = attribute.Key("state.after")
	MoveKey        = attribute.Key("move")
	CapturedKey    = attribute.Key("captured")
	WinnerKey      = attribute.Key("winner")
)

// Setup installs a global tracer provider that batches spans to the
// collector named in cfg. The returned function flushes and stops it.
func Setup(ctx context.Context, cfg config.TelemetryConfig, version string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcessRuntimeVersion(),
	)
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func exporterOptions(cfg config.TelemetryConfig) []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// sampler keeps every trace unless a ratio below 1 is configured. Zero
// counts as unset.
func sampler(cfg config.TelemetryConfig) sdktrace.Sampler {
	if cfg.SampleRatio <= 0 || cfg.SampleRatio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

// SelectAttributes describes a click on (row, col) in session id. square is
// the notation of the clicked square.
func SelectAttributes(id, square string, row, col int) []attribute.KeyValue {
	return []attribute.KeyValue{
		SessionKey.String(id),
		SquareKey.String(square),
		SquareRowKey.Int(row),
		SquareColKey.Int(col),
	}
}

// RecordMove adds a move event to span. captured is empty for quiet moves.
func RecordMove(span trace.Span, move, captured string) {
	attrs := []attribute.KeyValue{MoveKey.String(move)}
	if captured != "" {
		attrs = append(attrs, CapturedKey.String(captured))
	}
	span.AddEvent(MoveEvent, trace.WithAttributes(attrs...))
}

// RecordGameOver adds the final event of a game to span.
func RecordGameOver(span trace.Span, winner string) {
	span.AddEvent(GameOverEvent, trace.WithAttributes(WinnerKey.String(winner)))
}
