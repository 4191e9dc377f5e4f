package alloy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Snapshot is a detached copy of a grid's state, safe to keep after the
// grid has been reused as a relaxation target.
type Snapshot struct {
	Height       int
	Width        int
	Temperatures []float64     // row-major
	Compositions []Composition // row-major
}

// Snapshot copies the current temperatures and compositions.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		Height:       g.height,
		Width:        g.width,
		Temperatures: make([]float64, len(g.cells)),
		Compositions: make([]Composition, len(g.cells)),
	}
	for i := range g.cells {
		s.Temperatures[i] = g.cells[i].temperature
		s.Compositions[i] = g.cells[i].composition
	}
	return s
}

// At returns the temperature at (row, col). It panics on out-of-range
// coordinates like any slice index.
func (s Snapshot) At(row, col int) float64 {
	return s.Temperatures[row*s.Width+col]
}

// Stats summarizes the temperature field.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Stats computes min, max, mean and standard deviation of the temperatures.
func (s Snapshot) Stats() Stats {
	if len(s.Temperatures) == 0 {
		return Stats{}
	}
	st := Stats{
		Min: floats.Min(s.Temperatures),
		Max: floats.Max(s.Temperatures),
	}
	if len(s.Temperatures) == 1 {
		st.Mean = s.Temperatures[0]
		return st
	}
	st.Mean, st.StdDev = stat.MeanStdDev(s.Temperatures, nil)
	return st
}

// MaxAbsDiff returns the largest absolute temperature difference between two
// snapshots of the same shape.
func MaxAbsDiff(a, b Snapshot) (float64, error) {
	if a.Height != b.Height || a.Width != b.Width {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.Height, a.Width, b.Height, b.Width)
	}
	if len(a.Temperatures) == 0 {
		return 0, nil
	}
	return floats.Distance(a.Temperatures, b.Temperatures, math.Inf(1)), nil
}
