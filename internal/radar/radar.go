package radar

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"

	apperrors "defensecli/internal/errors"
)

const (
	// DefaultSubdivisions is the number of gridline levels per axis.
	DefaultSubdivisions = 6
	// DefaultFillOpacity is used for the filled player polygon of an Overlay.
	DefaultFillOpacity = 0.2
	// LeagueName names the league radar of an Overlay.
	LeagueName = "League Average"
)

// DefaultRange is the PPP range used for every axis of a player radar.
var DefaultRange = Range{Min: 0.01, Max: 1.5}

// Range is the value span of one axis. Min maps to the center and Max to
// the outer edge, so Min > Max draws an inverted axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Inverted reports whether larger values sit closer to the center.
func (r Range) Inverted() bool {
	return r.Min > r.Max
}

// Radius maps v onto [0, 1]; out-of-range values are clamped.
func (r Range) Radius(v float64) float64 {
	t := (v - r.Min) / (r.Max - r.Min)
	return math.Max(0, math.Min(1, t))
}

// Uniform returns n copies of r.
func Uniform(n int, r Range) []Range {
	out := make([]Range, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// Gridline is one circular grid level of an axis.
type Gridline struct {
	Value  float64 `json:"value"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Axis is one radial axis. Angle is in degrees, counter-clockwise from the
// positive x axis.
type Axis struct {
	Label         string     `json:"label"`
	Angle         float64    `json:"angle"`
	LabelRotation float64    `json:"label_rotation"`
	Range         Range      `json:"range"`
	Gridlines     []Gridline `json:"gridlines"`
	GridVisible   bool       `json:"grid_visible"`
}

// Point is a position relative to the shared center on a unit-radius chart.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layer is one traced polygon. Values and Points repeat their first element
// at the end so the outline is closed.
type Layer struct {
	Values  []float64 `json:"values"`
	Points  []Point   `json:"points"`
	Filled  bool      `json:"filled"`
	Opacity float64   `json:"opacity"`
}

// Radar is a drawable multi-axis polar chart: its axes plus every layer
// plotted so far, in drawing order.
type Radar struct {
	// Name labels the radar in a chart legend. Unnamed radars are left out.
	Name   string  `json:"name,omitempty"`
	Axes   []Axis  `json:"axes"`
	Layers []Layer `json:"layers"`
}

// New lays out one axis per category, each scaled to its own range and
// divided into subdivisions gridline levels.
func New(categories []string, ranges []Range, subdivisions int) (*Radar, error) {
	if len(categories) == 0 {
		return nil, apperrors.NewValidationError("build radar", ErrNoCategories)
	}
	if subdivisions < 2 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("build radar with %d levels", subdivisions), ErrTooFewSubdivisions)
	}
	if len(ranges) != len(categories) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("build radar: %d ranges for %d categories", len(ranges), len(categories)), ErrRangeCount)
	}

	step := 360.0 / float64(len(categories))
	axes := make([]Axis, len(categories))
	for i, label := range categories {
		rng := ranges[i]
		if rng.Min == rng.Max || math.IsNaN(rng.Min) || math.IsNaN(rng.Max) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("build radar: axis %q", label), ErrDegenerateRange)
		}

		angle := float64(i) * step
		axes[i] = Axis{
			Label:         label,
			Angle:         angle,
			LabelRotation: angle - 90,
			Range:         rng,
			Gridlines:     gridlines(rng, subdivisions),
			GridVisible:   i == 0,
		}
	}

	return &Radar{Axes: axes}, nil
}

// gridlines lists the levels of rng from the center outward.
func gridlines(rng Range, n int) []Gridline {
	values := make([]float64, n)
	if rng.Inverted() {
		floats.Span(values, rng.Max, rng.Min)
		slices.Reverse(values)
	} else {
		floats.Span(values, rng.Min, rng.Max)
	}

	lines := make([]Gridline, n)
	for i, v := range values {
		lines[i] = Gridline{
			Value:  v,
			Radius: float64(i) / float64(n-1),
			Label:  formatLevel(v),
		}
	}
	lines[0].Label = ""
	return lines
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Plot traces values, one per axis, as a closed outline.
func (r *Radar) Plot(values []float64) (Layer, error) {
	layer, err := r.trace(values)
	if err != nil {
		return Layer{}, err
	}
	r.Layers = append(r.Layers, layer)
	return layer, nil
}

// Fill traces values like Plot and fills the polygon with the given opacity.
func (r *Radar) Fill(values []float64, opacity float64) (Layer, error) {
	if opacity < 0 || opacity > 1 || math.IsNaN(opacity) {
		return Layer{}, apperrors.NewValidationError(fmt.Sprintf("fill with opacity %v", opacity), ErrInvalidOpacity)
	}
	layer, err := r.trace(values)
	if err != nil {
		return Layer{}, err
	}
	layer.Filled = true
	layer.Opacity = opacity
	r.Layers = append(r.Layers, layer)
	return layer, nil
}

func (r *Radar) trace(values []float64) (Layer, error) {
	if len(r.Axes) == 0 {
		return Layer{}, apperrors.NewValidationError("plot", ErrNoCategories)
	}
	if len(values) != len(r.Axes) {
		return Layer{}, apperrors.NewValidationError(
			fmt.Sprintf("plot %d values on %d axes", len(values), len(r.Axes)), ErrValueCount)
	}

	closed := append(slices.Clone(values), values[0])
	points := make([]Point, len(closed))
	for i, v := range closed {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Layer{}, apperrors.NewValidationError(fmt.Sprintf("plot value %d", i), ErrInvalidValue)
		}
		axis := r.Axes[i%len(r.Axes)]
		radius := axis.Range.Radius(v)
		theta := axis.Angle * math.Pi / 180
		points[i] = Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}

	return Layer{Values: closed, Points: points, Opacity: 1}, nil
}

// Comparison is a player radar overlaid on a league-average radar with the
// same layout.
type Comparison struct {
	Title  string `json:"title"`
	Player *Radar `json:"player"`
	League *Radar `json:"league"`
}

// Radars returns the radars in drawing order
func (c *Comparison) Radars() []*Radar {
	return []*Radar{c.Player, c.League}
}

// Overlay builds two identically laid out radars. The player values are
// plotted and filled, the league values only plotted.
func Overlay(title string, categories []string, ranges []Range, subdivisions int, player, league []float64) (*Comparison, error) {
	playerRadar, err := New(categories, ranges, subdivisions)
	if err != nil {
		return nil, err
	}
	playerRadar.Name = title
	if _, err := playerRadar.Plot(player); err != nil {
		return nil, fmt.Errorf("player profile: %w", err)
	}
	if _, err := playerRadar.Fill(player, DefaultFillOpacity); err != nil {
		return nil, fmt.Errorf("player profile: %w", err)
	}

	leagueRadar, err := New(categories, ranges, subdivisions)
	if err != nil {
		return nil, err
	}
	leagueRadar.Name = LeagueName
	if _, err := leagueRadar.Plot(league); err != nil {
		return nil, fmt.Errorf("league profile: %w", err)
	}

	return &Comparison{
		Title:  title,
		Player: playerRadar,
		League: leagueRadar,
	}, nil
}
