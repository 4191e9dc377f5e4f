package relax

import "fmt"

// Region is the half-open rectangle [RowStart,RowEnd) × [ColStart,ColEnd).
type Region struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
}

// FullRegion covers a whole height×width grid.
func FullRegion(height, width int) Region {
	return Region{RowEnd: height, ColEnd: width}
}

// Height returns the number of rows in the region.
func (r Region) Height() int { return r.RowEnd - r.RowStart }

// Width returns the number of columns in the region.
func (r Region) Width() int { return r.ColEnd - r.ColStart }

// Cells returns the number of cells in the region.
func (r Region) Cells() int { return r.Height() * r.Width() }

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.RowStart, r.RowEnd, r.ColStart, r.ColEnd)
}

// splitColumns cuts the region into left and right halves.
func (r Region) splitColumns() (Region, Region) {
	mid := (r.ColStart + r.ColEnd) >> 1
	left, right := r, r
	left.ColEnd = mid
	right.ColStart = mid
	return left, right
}

// splitRows cuts the region into top and bottom halves.
func (r Region) splitRows() (Region, Region) {
	mid := (r.RowStart + r.RowEnd) >> 1
	top, bottom := r, r
	top.RowEnd = mid
	bottom.RowStart = mid
	return top, bottom
}

// quarters cuts the region at both midpoints.
func (r Region) quarters() [4]Region {
	top, bottom := r.splitRows()
	topLeft, topRight := top.splitColumns()
	bottomLeft, bottomRight := bottom.splitColumns()
	return [4]Region{topLeft, topRight, bottomLeft, bottomRight}
}
