package charts

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"defensecli/internal/playtype"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
	DefaultBins   = 30
)

// Renderer draws the organizer outputs with go-chart. It never touches the
// filesystem; callers pass the destination writer.
type Renderer struct {
	Format Format
	Width  int
	Height int
}

// NewRenderer returns a renderer with the default canvas size.
func NewRenderer(format Format) *Renderer {
	return &Renderer{Format: format, Width: DefaultWidth, Height: DefaultHeight}
}

// pointStyle renders points only, without connecting lines
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// PossessionHistogram draws the distribution of possessions of one play
// type using bins equal-width bins.
func (r *Renderer) PossessionHistogram(w io.Writer, table *playtype.Table, bins int) error {
	if table.Len() == 0 {
		return fmt.Errorf("histogram of %s: table is empty", table.PlayType)
	}
	if bins < 1 {
		return fmt.Errorf("histogram of %s: %d bins", table.PlayType, bins)
	}

	x := table.Possessions()
	slices.Sort(x)

	// the highest divider must lie strictly above every value
	dividers := make([]float64, bins+1)
	floats.Span(dividers, x[0], x[len(x)-1]+1)
	counts := stat.Histogram(nil, dividers, x, nil)

	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: c,
			Label: strconv.Itoa(int(math.Round(dividers[i]))),
		}
	}

	bc := r.barChart(fmt.Sprintf("Possessions: %s", table.PlayType.Label()), bars, 0, floats.Max(counts))
	return bc.Render(r.Format.provider(), w)
}

// PossessionScatter draws POSS on x against PPP on y for one play type.
func (r *Renderer) PossessionScatter(w io.Writer, table *playtype.Table) error {
	if table.Len() == 0 {
		return fmt.Errorf("scatter of %s: table is empty", table.PlayType)
	}

	xs := table.Possessions()
	ys := table.PPPValues()

	ch := chart.Chart{
		Title:      fmt.Sprintf("POSS vs PPP: %s", table.PlayType.Label()),
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  playtype.ColumnPossessions,
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(floats.Max(xs))},
		},
		YAxis: chart.YAxis{
			Name:  playtype.ColumnPPP,
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(floats.Max(ys))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    table.PlayType.Label(),
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(chart.ColorBlue),
			},
		},
	}
	return ch.Render(r.Format.provider(), w)
}

// CompetencyBars draws how many players are competent at exactly 0..n
// play types.
func (r *Renderer) CompetencyBars(w io.Writer, merged *playtype.MergedTable) error {
	dist := merged.CompetencyDistribution()

	bars := make([]chart.Value, len(dist))
	top := 0.0
	for i, n := range dist {
		bars[i] = chart.Value{Value: float64(n), Label: strconv.Itoa(i)}
		top = math.Max(top, float64(n))
	}

	bc := r.barChart("Players by number of play types defended", bars, 0, top)
	return bc.Render(r.Format.provider(), w)
}

// PlayerBars draws a player's PPP relative to the league average for each
// play type they appear in.
func (r *Renderer) PlayerBars(w io.Writer, player string, values []playtype.RelativeValue) error {
	if len(values) == 0 {
		return fmt.Errorf("bars of %s: no play types", player)
	}

	bars := make([]chart.Value, len(values))
	low, high := 0.0, 0.0
	for i, v := range values {
		style := chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen}
		if v.Delta > 0 {
			style = chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed}
		}
		bars[i] = chart.Value{Value: v.Delta, Label: v.PlayType.Label(), Style: style}
		low = math.Min(low, v.Delta)
		high = math.Max(high, v.Delta)
	}

	bc := r.barChart(fmt.Sprintf("%s: PPP relative to league average", player), bars, low, high)
	bc.UseBaseValue = true
	bc.BaseValue = 0
	return bc.Render(r.Format.provider(), w)
}

func (r *Renderer) barChart(title string, bars []chart.Value, low, high float64) chart.BarChart {
	barWidth := max(4, (r.Width-120)/(2*len(bars)))
	if low == high {
		high = low + 1
	}
	pad := (high - low) * 0.05
	if low < 0 {
		low -= pad
	}

	return chart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: low, Max: high + pad},
		},
		Bars: bars,
	}
}

func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.05
}

