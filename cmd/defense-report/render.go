package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"defensecli/internal/charts"
	"defensecli/internal/config"
	apperrors "defensecli/internal/errors"
	"defensecli/internal/infrastructure"
	"defensecli/internal/playtype"
	"defensecli/internal/radar"
)

// renderCharts writes the per play type histograms and scatter plots, the
// competency distribution and, for every requested player, a relative bar
// chart and a radar comparison.
func renderCharts(ctx context.Context, logger *slog.Logger, analysis config.AnalysisConfig, paths *config.Paths, res *playtype.Result, metrics *infrastructure.ReportMetrics) error {
	format, err := charts.ParseFormat(analysis.ChartFormat)
	if err != nil {
		return err
	}
	renderer := charts.NewRenderer(format)
	ext := format.Extension()

	for _, t := range res.OrderedTables() {
		key := t.PlayType.String()
		if err := writeChart(paths.GetChartPath(key+"_possessions"+ext), func(w io.Writer) error {
			return renderer.PossessionHistogram(w, t, analysis.HistogramBins)
		}); err != nil {
			return err
		}
		metrics.RecordChart(ctx, "histogram")

		if err := writeChart(paths.GetChartPath(key+"_poss_ppp"+ext), func(w io.Writer) error {
			return renderer.PossessionScatter(w, t)
		}); err != nil {
			return err
		}
		metrics.RecordChart(ctx, "scatter")
	}

	if err := writeChart(paths.GetChartPath("competency_distribution"+ext), func(w io.Writer) error {
		return renderer.CompetencyBars(w, res.Merged)
	}); err != nil {
		return err
	}
	metrics.RecordChart(ctx, "competency")

	for _, player := range analysis.Players {
		rel, err := res.RelativeProfile(player)
		if errors.Is(err, apperrors.ErrUnknownPlayer) {
			logger.WarnContext(ctx, "Skipping charts for unknown player", slog.String("player", player))
			continue
		}
		if err != nil {
			return err
		}

		slug := fileSlug(player)
		if err := writeChart(paths.GetChartPath(slug+"_relative"+ext), func(w io.Writer) error {
			return renderer.PlayerBars(w, player, rel)
		}); err != nil {
			return err
		}
		metrics.RecordChart(ctx, "player_bars")

		cmp, err := playerComparison(analysis, res, player)
		if err != nil {
			return err
		}
		if err := writeChart(paths.GetChartPath(slug+"_radar.svg"), func(w io.Writer) error {
			return charts.ComparisonSVG(w, cmp, analysis.RadarSize)
		}); err != nil {
			return err
		}
		metrics.RecordChart(ctx, "radar")
	}

	logger.InfoContext(ctx, "Charts rendered",
		slog.String("directory", paths.ChartsDir),
		slog.String("format", string(format)),
		slog.Int("players", len(analysis.Players)))
	return nil
}

// playerComparison overlays player on the league average. Play types the
// player never defended sit at the axis center, the worst end of the range.
func playerComparison(analysis config.AnalysisConfig, res *playtype.Result, player string) (*radar.Comparison, error) {
	profile, err := res.Profile(player)
	if err != nil {
		return nil, err
	}

	center, edge := analysis.RadarBounds()
	ranges := radar.Uniform(len(profile.PlayTypes), radar.Range{Min: center, Max: edge})
	categories := make([]string, len(profile.PlayTypes))
	for i, p := range profile.PlayTypes {
		categories[i] = p.Label()
	}

	cmp, err := radar.Overlay(profile.Player, categories, ranges, analysis.Subdivisions,
		profile.ValuesOr(center), res.LeagueProfile().PPP)
	if err != nil {
		return nil, fmt.Errorf("radar for %s: %w", player, err)
	}
	return cmp, nil
}

// writeChart creates path and hands it to draw, closing it on every path.
func writeChart(path string, draw func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("create %s", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.NewStorageError(fmt.Sprintf("close %s", path), cerr)
		}
	}()

	if err := draw(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// fileSlug turns a player name into a lowercase file name stem.
func fileSlug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
