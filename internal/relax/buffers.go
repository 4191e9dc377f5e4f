package relax

import "alloyheat/internal/alloy"

// bufferPair holds the two grids of the Jacobi double buffer. Exactly one is
// the source of the next phase; the other is its destination.
type bufferPair struct {
	grids [2]*alloy.Grid
	src   int
}

func newBufferPair(initial, scratch *alloy.Grid) bufferPair {
	return bufferPair{grids: [2]*alloy.Grid{initial, scratch}}
}

// roles returns the source and destination of the next phase.
func (b *bufferPair) roles() (*alloy.Grid, *alloy.Grid) {
	return b.grids[b.src], b.grids[1-b.src]
}

// swap makes the last destination the next source. Only the role flag
// changes; grid contents are never copied.
func (b *bufferPair) swap() {
	b.src = 1 - b.src
}
