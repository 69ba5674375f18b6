// Package charts renders organizer results as images.
//
// Histograms, scatter plots and bar charts go through go-chart and can be
// encoded as PNG or SVG. Radar geometry from package radar is drawn with
// svgo. All functions write to an io.Writer.
package charts
