package playtype

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "defensecli.playtype"
	MeterName  = "defensecli"
)

// organizerTracer instruments the organizer stages. It resolves the global
// providers, so it is a no-op until telemetry is initialized.
type organizerTracer struct {
	tracer        trace.Tracer
	rowsLoaded    metric.Int64Counter
	playersMerged metric.Int64Counter
	failures      metric.Int64Counter
	duration      metric.Float64Histogram
}

func newOrganizerTracer() (*organizerTracer, error) {
	meter := otel.Meter(MeterName)

	rowsLoaded, err := meter.Int64Counter(
		"playtype_rows_loaded_total",
		metric.WithDescription("Total number of play-type rows loaded"),
	)
	if err != nil {
		return nil, err
	}

	playersMerged, err := meter.Int64Counter(
		"playtype_players_merged_total",
		metric.WithDescription("Total number of players in merged tables"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"playtype_failures_total",
		metric.WithDescription("Total number of play-type load or compute failures"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"playtype_organize_duration_seconds",
		metric.WithDescription("Organizer run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &organizerTracer{
		tracer:        otel.Tracer(TracerName),
		rowsLoaded:    rowsLoaded,
		playersMerged: playersMerged,
		failures:      failures,
		duration:      duration,
	}, nil
}

// noopOrganizerTracer is used when instrument creation fails.
func noopOrganizerTracer() *organizerTracer {
	return &organizerTracer{
		tracer:        otel.Tracer(TracerName),
		rowsLoaded:    noop.Int64Counter{},
		playersMerged: noop.Int64Counter{},
		failures:      noop.Int64Counter{},
		duration:      noop.Float64Histogram{},
	}
}

func (t *organizerTracer) startStage(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, fmt.Sprintf("playtype.%s", stage),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func (t *organizerTracer) recordLoad(ctx context.Context, p PlayType, rows int) {
	t.rowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("play_type", p.String())))
}

func (t *organizerTracer) recordFailure(ctx context.Context, span trace.Span, p PlayType, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	t.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("play_type", p.String())))
}

func (t *organizerTracer) recordCompletion(ctx context.Context, span trace.Span, players int, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "organized")
		t.playersMerged.Add(ctx, int64(players))
	}
	span.SetAttributes(
		attribute.Int("playtype.players", players),
		attribute.String("playtype.status", status),
	)
	t.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("status", status)))
}
