package radar

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "defensecli/internal/errors"
)

var sevenPlays = []string{"Isolation", "Post-Up", "Spot-Up", "Handoff", "P&R Roll Man", "P&R Ball Handler", "Off Screen"}

func gridValues(a Axis) []float64 {
	out := make([]float64, len(a.Gridlines))
	for i, g := range a.Gridlines {
		out[i] = g.Value
	}
	return out
}

func gridLabels(a Axis) []string {
	out := make([]string, len(a.Gridlines))
	for i, g := range a.Gridlines {
		out[i] = g.Label
	}
	return out
}

func TestNew(t *testing.T) {
	r, err := New(sevenPlays, Uniform(7, DefaultRange), DefaultSubdivisions)
	require.NoError(t, err)
	require.Len(t, r.Axes, 7)

	step := 360.0 / 7
	for i, axis := range r.Axes {
		assert.Equal(t, sevenPlays[i], axis.Label)
		assert.InDelta(t, float64(i)*step, axis.Angle, 1e-9)
		assert.InDelta(t, axis.Angle-90, axis.LabelRotation, 1e-9)
		assert.Equal(t, i == 0, axis.GridVisible)
		require.Len(t, axis.Gridlines, DefaultSubdivisions)
		assert.Equal(t, 0.0, axis.Gridlines[0].Radius)
		assert.Equal(t, 1.0, axis.Gridlines[DefaultSubdivisions-1].Radius)
	}

	axis := r.Axes[0]
	assert.InDeltaSlice(t, []float64{0.01, 0.308, 0.606, 0.904, 1.202, 1.5}, gridValues(axis), 1e-9)
	assert.Equal(t, []string{"", "0.31", "0.61", "0.9", "1.2", "1.5"}, gridLabels(axis))
	assert.Empty(t, r.Layers)
}

func TestGridlineInversion(t *testing.T) {
	normal, err := New([]string{"x"}, []Range{{Min: 0.01, Max: 1.5}}, 6)
	require.NoError(t, err)
	inverted, err := New([]string{"x"}, []Range{{Min: 1.5, Max: 0.01}}, 6)
	require.NoError(t, err)

	want := gridValues(normal.Axes[0])
	slices.Reverse(want)
	assert.Equal(t, want, gridValues(inverted.Axes[0]))

	assert.Equal(t, "", normal.Axes[0].Gridlines[0].Label)
	assert.Equal(t, "", inverted.Axes[0].Gridlines[0].Label)
	assert.Equal(t, "0.01", inverted.Axes[0].Gridlines[5].Label)
	assert.True(t, inverted.Axes[0].Range.Inverted())
	assert.False(t, normal.Axes[0].Range.Inverted())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name         string
		categories   []string
		ranges       []Range
		subdivisions int
		expected     error
	}{
		{"no categories", nil, nil, 6, ErrNoCategories},
		{"one level", []string{"a"}, []Range{DefaultRange}, 1, ErrTooFewSubdivisions},
		{"range count", []string{"a", "b"}, []Range{DefaultRange}, 6, ErrRangeCount},
		{"degenerate range", []string{"a"}, []Range{{Min: 1, Max: 1}}, 6, ErrDegenerateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.categories, tt.ranges, tt.subdivisions)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestPlot(t *testing.T) {
	r, err := New([]string{"a", "b", "c", "d"}, Uniform(4, Range{Min: 0, Max: 2}), 5)
	require.NoError(t, err)

	layer, err := r.Plot([]float64{1, 2, 0.5, 4})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 0.5, 4, 1}, layer.Values)
	require.Len(t, layer.Points, 5)
	assert.Equal(t, layer.Points[0], layer.Points[4])
	assert.False(t, layer.Filled)

	assert.InDelta(t, 0.5, layer.Points[0].X, 1e-9)
	assert.InDelta(t, 0, layer.Points[0].Y, 1e-9)
	assert.InDelta(t, 0, layer.Points[1].X, 1e-9)
	assert.InDelta(t, 1, layer.Points[1].Y, 1e-9)
	assert.InDelta(t, -0.25, layer.Points[2].X, 1e-9)
	// 4 is clamped to the outer edge
	assert.InDelta(t, -1, layer.Points[3].Y, 1e-9)

	require.Len(t, r.Layers, 1)
}

func TestPlotScalesEachAxis(t *testing.T) {
	r, err := New([]string{"a", "b"}, []Range{{Min: 0, Max: 1}, {Min: 0, Max: 10}}, 3)
	require.NoError(t, err)

	layer, err := r.Plot([]float64{0.5, 5})
	require.NoError(t, err)

	radius := func(p Point) float64 { return math.Hypot(p.X, p.Y) }
	assert.InDelta(t, 0.5, radius(layer.Points[0]), 1e-9)
	assert.InDelta(t, 0.5, radius(layer.Points[1]), 1e-9)
}

func TestPlotInvertedAxis(t *testing.T) {
	r, err := New([]string{"a"}, []Range{{Min: 1.5, Max: 0.01}}, 6)
	require.NoError(t, err)

	layer, err := r.Plot([]float64{0.01})
	require.NoError(t, err)
	assert.InDelta(t, 1, layer.Points[0].X, 1e-9)
}

func TestPlotErrors(t *testing.T) {
	r, err := New([]string{"a", "b"}, Uniform(2, DefaultRange), 6)
	require.NoError(t, err)

	_, err = r.Plot([]float64{1})
	assert.ErrorIs(t, err, ErrValueCount)

	_, err = r.Plot([]float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = r.Fill([]float64{1, 1}, 1.5)
	assert.ErrorIs(t, err, ErrInvalidOpacity)

	assert.Empty(t, r.Layers)

	_, err = (&Radar{}).Plot(nil)
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestFill(t *testing.T) {
	r, err := New([]string{"a", "b", "c"}, Uniform(3, DefaultRange), 6)
	require.NoError(t, err)

	plotted, err := r.Plot([]float64{0.8, 0.9, 1.0})
	require.NoError(t, err)
	filled, err := r.Fill([]float64{0.8, 0.9, 1.0}, 0.2)
	require.NoError(t, err)

	assert.True(t, filled.Filled)
	assert.Equal(t, 0.2, filled.Opacity)
	assert.Equal(t, plotted.Points, filled.Points)
	assert.Len(t, r.Layers, 2)
}

func TestOverlay(t *testing.T) {
	player := []float64{0.7, 0.8, 0.9, 1.0, 0.6, 0.85, 0.95}
	league := []float64{0.9, 0.92, 1.0, 0.88, 1.05, 0.86, 0.93}

	c, err := Overlay("Jrue Holiday", sevenPlays, Uniform(7, DefaultRange), DefaultSubdivisions, player, league)
	require.NoError(t, err)

	assert.Equal(t, "Jrue Holiday", c.Title)
	assert.Equal(t, "Jrue Holiday", c.Player.Name)
	assert.Equal(t, LeagueName, c.League.Name)
	assert.Equal(t, c.Player.Axes, c.League.Axes)
	require.Len(t, c.Player.Layers, 2)
	assert.False(t, c.Player.Layers[0].Filled)
	assert.True(t, c.Player.Layers[1].Filled)
	assert.Equal(t, DefaultFillOpacity, c.Player.Layers[1].Opacity)
	require.Len(t, c.League.Layers, 1)
	assert.Equal(t, append(slices.Clone(league), league[0]), c.League.Layers[0].Values)
	assert.Equal(t, []*Radar{c.Player, c.League}, c.Radars())

	_, err = Overlay("x", sevenPlays, Uniform(7, DefaultRange), DefaultSubdivisions, player[:3], league)
	assert.ErrorIs(t, err, ErrValueCount)
}
