package playtype

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "defensecli/internal/errors"
)

// Result is the output of one organizer run. It is read-only.
type Result struct {
	Tables   map[PlayType]*Table
	Merged   *MergedTable
	Averages LeagueAverages
}

// Table returns the annotated table of p
func (r *Result) Table(p PlayType) (*Table, bool) {
	t, ok := r.Tables[p]
	return t, ok
}

// OrderedTables returns the tables in the order of All.
func (r *Result) OrderedTables() []*Table {
	out := make([]*Table, 0, len(r.Tables))
	for _, p := range All {
		if t, ok := r.Tables[p]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Organizer loads the seven play-type tables, computes league averages,
// flags competencies and merges everything into one table per player.
type Organizer struct {
	logger *slog.Logger
	tracer *organizerTracer
}

// NewOrganizer creates an organizer. A nil logger falls back to slog.Default.
func NewOrganizer(logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "playtype_organizer"))

	tracer, err := newOrganizerTracer()
	if err != nil {
		logger.Warn("telemetry instruments unavailable", slog.String("error", err.Error()))
		tracer = noopOrganizerTracer()
	}

	return &Organizer{
		logger: logger,
		tracer: tracer,
	}
}

// LoadAndMerge reads every play type from sources and organizes them. All
// load failures are returned together; no Result is returned unless every
// play type loaded.
func (o *Organizer) LoadAndMerge(ctx context.Context, sources Sources) (*Result, error) {
	start := time.Now()
	ctx, span := o.tracer.startStage(ctx, "load_and_merge", attribute.Int("playtype.sources", len(sources)))
	defer span.End()

	o.logger.InfoContext(ctx, "loading play-type tables", slog.Int("sources", len(sources)))

	if err := checkPlayTypes(sources); err != nil {
		o.tracer.recordCompletion(ctx, span, 0, time.Since(start), err)
		return nil, err
	}

	records := make(map[PlayType][]PlayRecord, len(All))
	var errs []error
	for _, p := range All {
		recs, err := o.load(ctx, p, sources[p])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records[p] = recs
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		o.logger.ErrorContext(ctx, "play-type tables failed to load",
			slog.Int("failed", len(errs)),
			slog.String("error", err.Error()))
		o.tracer.recordCompletion(ctx, span, 0, time.Since(start), err)
		return nil, err
	}

	result, err := o.organize(ctx, records)
	players := 0
	if result != nil {
		players = result.Merged.Len()
	}
	o.tracer.recordCompletion(ctx, span, players, time.Since(start), err)
	return result, err
}

// Organize runs the in-memory part of the pipeline on already loaded
// records. records must hold every play type.
func (o *Organizer) Organize(ctx context.Context, records map[PlayType][]PlayRecord) (*Result, error) {
	start := time.Now()
	ctx, span := o.tracer.startStage(ctx, "organize")
	defer span.End()

	result, err := o.organize(ctx, records)
	players := 0
	if result != nil {
		players = result.Merged.Len()
	}
	o.tracer.recordCompletion(ctx, span, players, time.Since(start), err)
	return result, err
}

func (o *Organizer) organize(ctx context.Context, records map[PlayType][]PlayRecord) (*Result, error) {
	if err := checkPlayTypes(records); err != nil {
		return nil, err
	}

	averages, err := ComputeAverages(records)
	if err != nil {
		o.logger.ErrorContext(ctx, "league averages undefined", slog.String("error", err.Error()))
		return nil, fmt.Errorf("compute averages: %w", err)
	}

	tables := make(map[PlayType]*Table, len(All))
	ordered := make([]*Table, 0, len(All))
	for _, p := range All {
		avg, _ := averages.Get(p)
		t := Annotate(p, records[p], avg)
		tables[p] = t
		ordered = append(ordered, t)

		o.logger.DebugContext(ctx, "play type annotated",
			slog.String("play_type", p.String()),
			slog.Int("players", t.Len()),
			slog.Float64("league_ppp", avg),
			slog.Int("competent", t.CompetentCount()))
	}

	merged := Merge(ordered)

	o.logger.InfoContext(ctx, "play-type tables merged",
		slog.Int("players", merged.Len()),
		slog.Int("play_types", len(merged.PlayTypes)))

	return &Result{
		Tables:   tables,
		Merged:   merged,
		Averages: averages,
	}, nil
}

func (o *Organizer) load(ctx context.Context, p PlayType, src Source) ([]PlayRecord, error) {
	ctx, span := o.tracer.startStage(ctx, "load", attribute.String("play_type", p.String()))
	defer span.End()

	recs, err := LoadRecords(p, src)
	if err != nil {
		o.logger.WarnContext(ctx, "play-type table not loaded",
			slog.String("play_type", p.String()),
			slog.String("error", err.Error()))
		o.tracer.recordFailure(ctx, span, p, err)
		return nil, err
	}

	o.tracer.recordLoad(ctx, p, len(recs))
	o.logger.DebugContext(ctx, "play-type table loaded",
		slog.String("play_type", p.String()),
		slog.String("source", src.Name()),
		slog.Int("rows", len(recs)))
	return recs, nil
}

// checkPlayTypes requires exactly the known play types as keys.
func checkPlayTypes[V any](m map[PlayType]V) error {
	var unknown []string
	for p := range m {
		if !p.IsValid() {
			unknown = append(unknown, string(p))
		}
	}
	var errs []error
	if len(unknown) > 0 {
		sort.Strings(unknown)
		errs = append(errs, apperrors.NewValidationError(fmt.Sprintf("unknown play types %v", unknown), nil))
	}
	for _, p := range All {
		if _, ok := m[p]; !ok {
			errs = append(errs, apperrors.NewMissingSourceError(p.String(), nil))
		}
	}
	return errors.Join(errs...)
}
