// Package alloy models a rectangular plate made of three alloyed metals.
//
// A Grid owns height×width cells. Each cell carries a temperature, a fixed
// composition (the share of each of the three metals) and a color derived
// from its temperature. The grid evaluates the Jacobi stencil for a single
// cell (NextTemperature) without writing anything, so a grid can be read by
// many goroutines while another grid of the same shape is being written.
//
// Cells (0,0) and (height-1,width-1) are anchors. Their temperature is set
// once as a boundary condition and NextTemperature returns it unchanged.
package alloy
