package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"defensecli/internal/radar"
)

// DefaultRadarSize is the width and height of a radar canvas in pixels.
const DefaultRadarSize = 600

var radarPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// RadarSVG draws one or more radars on a shared square canvas. The axes of
// the first radar provide the spokes, labels and gridlines; every radar
// contributes its layers.
func RadarSVG(w io.Writer, title string, size int, radars ...*radar.Radar) error {
	if len(radars) == 0 {
		return errors.New("radar svg: nothing to draw")
	}
	if size <= 0 {
		size = DefaultRadarSize
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	cx, cy := size/2, size/2+20
	outer := float64(size) * 0.36
	project := func(x, y float64) (int, int) {
		return cx + int(math.Round(x*outer)), cy - int(math.Round(y*outer))
	}

	canvas.Start(size, size+40)
	canvas.Rect(0, 0, size, size+40, "fill:white")
	canvas.Gstyle("font-family:Calibri,sans-serif;font-size:11px")
	if title != "" {
		canvas.Text(size/2, 24, title, "text-anchor:middle;font-size:18px;fill:black")
	}

	base := radars[0]
	for _, axis := range base.Axes {
		theta := axis.Angle * math.Pi / 180
		x, y := project(math.Cos(theta), math.Sin(theta))
		canvas.Line(cx, cy, x, y, "stroke:#cccccc;stroke-width:1")

		lx, ly := project(1.12*math.Cos(theta), 1.12*math.Sin(theta))
		canvas.TranslateRotate(lx, ly, -axis.LabelRotation)
		canvas.Text(0, 0, axis.Label, "text-anchor:middle;font-size:13px;fill:black")
		canvas.Gend()

		for _, g := range axis.Gridlines {
			if axis.GridVisible && g.Radius > 0 {
				canvas.Circle(cx, cy, int(math.Round(g.Radius*outer)), "fill:none;stroke:#dddddd;stroke-width:1")
			}
			if g.Label != "" {
				gx, gy := project(g.Radius*math.Cos(theta), g.Radius*math.Sin(theta))
				canvas.Text(gx+3, gy-3, g.Label, "fill:gray")
			}
		}
	}

	for ri, r := range radars {
		color := radarPalette[ri%len(radarPalette)]
		for _, layer := range r.Layers {
			xs := make([]int, len(layer.Points))
			ys := make([]int, len(layer.Points))
			for i, p := range layer.Points {
				xs[i], ys[i] = project(p.X, p.Y)
			}
			if layer.Filled {
				canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:%.2f;stroke:none", color, layer.Opacity))
				continue
			}
			canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", color))
		}
	}

	// Legend swatches share the layer palette, top left clear of the labels.
	row := 0
	for ri, r := range radars {
		if r.Name == "" {
			continue
		}
		if row == 0 {
			canvas.Gid("legend")
		}
		y := 44 + row*18
		canvas.Rect(16, y, 12, 12, "fill:"+radarPalette[ri%len(radarPalette)])
		canvas.Text(34, y+10, r.Name, "font-size:12px;fill:black")
		row++
	}
	if row > 0 {
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
	return ew.err
}

// ComparisonSVG draws a player/league radar comparison.
func ComparisonSVG(w io.Writer, c *radar.Comparison, size int) error {
	return RadarSVG(w, c.Title, size, c.Radars()...)
}
