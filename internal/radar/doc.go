// Package radar computes the geometry of multi-axis polar charts.
//
// Every axis shares the center but carries its own value range, so a chart
// can compare quantities on unrelated scales. Coordinates are produced on a
// unit-radius chart with angles counter-clockwise from the positive x axis;
// drawing them is left to a renderer such as charts.RadarSVG.
package radar
