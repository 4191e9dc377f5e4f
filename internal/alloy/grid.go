package alloy

import (
	"fmt"
	"image/color"
)

// Grid is a height×width plate of cells together with the thermal constant
// of each metal. Its dimensions never change after construction.
type Grid struct {
	height, width int
	constants     [Metals]float64
	thresholds    Thresholds
	cells         []Cell
}

type gridOptions struct {
	strategy   Strategy
	thresholds Thresholds
}

// Option customizes NewGrid.
type Option func(*gridOptions)

// WithStrategy sets the composition strategy used for every cell.
func WithStrategy(s Strategy) Option {
	return func(o *gridOptions) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithThresholds sets the temperature range used for cell colors.
func WithThresholds(t Thresholds) Option {
	return func(o *gridOptions) { o.thresholds = t }
}

// NewGrid allocates a grid with every cell at temperature 0. c1, c2 and c3
// are the thermal constants of the three metals.
func NewGrid(height, width int, c1, c2, c3 float64, opts ...Option) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadShape, height, width)
	}
	o := gridOptions{strategy: UniformStrategy(), thresholds: DefaultThresholds}
	for _, opt := range opts {
		opt(&o)
	}
	g := &Grid{
		height:     height,
		width:      width,
		constants:  [Metals]float64{c1, c2, c3},
		thresholds: o.thresholds,
		cells:      make([]Cell, height*width),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			comp := o.strategy.Composition(row, col)
			if err := comp.Validate(); err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", row, col, err)
			}
			cell := &g.cells[row*width+col]
			cell.composition = comp
			cell.refresh(g.thresholds)
		}
	}
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Dims returns height and width.
func (g *Grid) Dims() (int, int) { return g.height, g.width }

// Constants returns the thermal constants c1, c2, c3.
func (g *Grid) Constants() [Metals]float64 { return g.constants }

// Thresholds returns the color thresholds.
func (g *Grid) Thresholds() Thresholds { return g.thresholds }

func (g *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfRange, row, col, g.height, g.width)
	}
	return row*g.width + col, nil
}

// IsAnchor reports whether (row, col) is one of the two fixed corners.
func (g *Grid) IsAnchor(row, col int) bool {
	return (row == 0 && col == 0) || (row == g.height-1 && col == g.width-1)
}

// SetTemperature writes a temperature and refreshes the cell color. It is
// used to seed the anchors and to commit relaxation results.
func (g *Grid) SetTemperature(value float64, row, col int) error {
	idx, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.cells[idx].setTemperature(value, g.thresholds)
	return nil
}

// Temperature returns the temperature at (row, col).
func (g *Grid) Temperature(row, col int) (float64, error) {
	idx, err := g.index(row, col)
	if err != nil {
		return 0, err
	}
	return g.cells[idx].temperature, nil
}

// Color returns the cached color at (row, col).
func (g *Grid) Color(row, col int) (color.RGBA, error) {
	idx, err := g.index(row, col)
	if err != nil {
		return color.RGBA{}, err
	}
	return g.cells[idx].color, nil
}

// Cell returns a copy of the cell at (row, col).
func (g *Grid) Cell(row, col int) (Cell, error) {
	idx, err := g.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[idx], nil
}

// NextTemperature evaluates the Jacobi stencil at (row, col) without writing.
// Anchors return their current temperature. Every other cell gets
//
//	sum over metals m of c_m * (sum over neighbors n of p_m(n)*temp(n)) / |neighbors|
//
// where neighbors are the orthogonal cells inside the grid: 2 at a corner,
// 3 on an edge and 4 in the interior.
func (g *Grid) NextTemperature(row, col int) (float64, error) {
	idx, err := g.index(row, col)
	if err != nil {
		return 0, err
	}
	if g.IsAnchor(row, col) {
		return g.cells[idx].temperature, nil
	}
	var sums [Metals]float64
	neighbors := 0
	if row > 0 {
		g.accumulate(&sums, idx-g.width)
		neighbors++
	}
	if row < g.height-1 {
		g.accumulate(&sums, idx+g.width)
		neighbors++
	}
	if col > 0 {
		g.accumulate(&sums, idx-1)
		neighbors++
	}
	if col < g.width-1 {
		g.accumulate(&sums, idx+1)
		neighbors++
	}
	if neighbors == 0 {
		return g.cells[idx].temperature, nil
	}
	n := float64(neighbors)
	next := 0.0
	for m := range sums {
		next += g.constants[m] * sums[m] / n
	}
	return next, nil
}

func (g *Grid) accumulate(sums *[Metals]float64, idx int) {
	cell := &g.cells[idx]
	for m := range sums {
		sums[m] += cell.composition[m] * cell.temperature
	}
}

// CopyAllTo copies the temperature and composition of every cell into other.
// other must have the same dimensions; otherwise nothing is copied.
func (g *Grid) CopyAllTo(other *Grid) error {
	if other == nil {
		return fmt.Errorf("%w: target grid is nil", ErrDimensionMismatch)
	}
	if other.height != g.height || other.width != g.width {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrDimensionMismatch, g.height, g.width, other.height, other.width)
	}
	if other == g {
		return nil
	}
	copy(other.cells, g.cells)
	if other.thresholds != g.thresholds {
		for i := range other.cells {
			other.cells[i].refresh(other.thresholds)
		}
	}
	return nil
}

// CopyColors writes the cached color of every cell into pix as row-major
// RGBA bytes, the layout ebiten's WritePixels expects. pix must hold exactly
// 4*height*width bytes.
func (g *Grid) CopyColors(pix []byte) error {
	if len(pix) != 4*len(g.cells) {
		return fmt.Errorf("%w: pixel buffer has %d bytes, grid needs %d", ErrDimensionMismatch, len(pix), 4*len(g.cells))
	}
	for i := range g.cells {
		c := g.cells[i].color
		base := i * 4
		pix[base] = c.R
		pix[base+1] = c.G
		pix[base+2] = c.B
		pix[base+3] = c.A
	}
	return nil
}
