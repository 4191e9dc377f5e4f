// Package export renders a grid snapshot to files for inspection after a
// run: a PNG heatmap drawn with gonum/plot and an interactive HTML heatmap
// built with go-echarts. Row 0 of the plate is drawn at the top.
package export
