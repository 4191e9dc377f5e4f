package alloy_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alloyheat/internal/alloy"
)

const eps = 1e-12

func newGrid(t *testing.T, h, w int, c1, c2, c3 float64, opts ...alloy.Option) *alloy.Grid {
	t.Helper()
	g, err := alloy.NewGrid(h, w, c1, c2, c3, opts...)
	require.NoError(t, err)
	return g
}

func set(t *testing.T, g *alloy.Grid, v float64, row, col int) {
	t.Helper()
	require.NoError(t, g.SetTemperature(v, row, col))
}

func TestNewGrid_Shape(t *testing.T) {
	cases := []struct {
		name string
		h, w int
	}{
		{"ZeroHeight", 0, 3},
		{"ZeroWidth", 3, 0},
		{"Negative", -1, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := alloy.NewGrid(tc.h, tc.w, 1, 1, 1)
			require.ErrorIs(t, err, alloy.ErrBadShape)
		})
	}

	g := newGrid(t, 3, 5, 0.75, 1, 1.25)
	h, w := g.Dims()
	assert.Equal(t, 3, h)
	assert.Equal(t, 5, w)
	assert.Equal(t, [alloy.Metals]float64{0.75, 1, 1.25}, g.Constants())
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c, err := g.Cell(row, col)
			require.NoError(t, err)
			assert.Zero(t, c.Temperature())
			assert.Equal(t, alloy.Uniform, c.Composition())
		}
	}
}

func TestNewGrid_RejectsBadComposition(t *testing.T) {
	bad := alloy.FixedStrategy(alloy.Composition{0.5, 0.5, 0.5})
	_, err := alloy.NewGrid(2, 2, 1, 1, 1, alloy.WithStrategy(bad))
	require.ErrorIs(t, err, alloy.ErrBadComposition)
}

func TestGrid_OutOfRange(t *testing.T) {
	g := newGrid(t, 2, 3, 1, 1, 1)
	coords := [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 3}, {5, 5}}
	for _, rc := range coords {
		_, err := g.Temperature(rc[0], rc[1])
		assert.ErrorIs(t, err, alloy.ErrIndexOutOfRange, "Temperature%v", rc)
		_, err = g.NextTemperature(rc[0], rc[1])
		assert.ErrorIs(t, err, alloy.ErrIndexOutOfRange, "NextTemperature%v", rc)
		assert.ErrorIs(t, g.SetTemperature(1, rc[0], rc[1]), alloy.ErrIndexOutOfRange, "SetTemperature%v", rc)
		_, err = g.Cell(rc[0], rc[1])
		assert.ErrorIs(t, err, alloy.ErrIndexOutOfRange, "Cell%v", rc)
		_, err = g.Color(rc[0], rc[1])
		assert.ErrorIs(t, err, alloy.ErrIndexOutOfRange, "Color%v", rc)
	}
}

// TestNextTemperature_EdgeOfHotCorner is the 3×3 case with only the top left
// corner hot: its east neighbor averages three cells, one of them at 100.
func TestNextTemperature_EdgeOfHotCorner(t *testing.T) {
	g := newGrid(t, 3, 3, 1, 1, 1)
	set(t, g, 100, 0, 0)

	got, err := g.NextTemperature(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3.0, got, eps)

	got, err = g.NextTemperature(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3.0, got, eps)

	got, err = g.NextTemperature(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, eps)
}

func TestNextTemperature_NeighborCounts(t *testing.T) {
	// Uniform composition with constants 1, 2, 3 scales the plain neighbor
	// average by (1+2+3)/3 = 2.
	g := newGrid(t, 3, 3, 1, 2, 3)
	set(t, g, 6, 0, 1)
	set(t, g, 4, 1, 0)
	set(t, g, 8, 2, 1)

	cases := []struct {
		name     string
		row, col int
		want     float64
	}{
		{"CornerTwoNeighbors", 0, 2, 2 * (6 + 0) / 2.0},
		{"CornerBottomLeft", 2, 0, 2 * (4 + 8) / 2.0},
		{"EdgeThreeNeighbors", 1, 2, 2 * (0 + 0 + 0) / 3.0},
		{"EdgeTop", 0, 1, 2 * (0 + 0 + 0) / 3.0},
		{"EdgeLeft", 1, 0, 2 * (0 + 0 + 0) / 3.0},
		{"InteriorFourNeighbors", 1, 1, 2 * (6 + 8 + 4 + 0) / 4.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.NextTemperature(tc.row, tc.col)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, eps)
		})
	}
}

func TestNextTemperature_WeightsByComposition(t *testing.T) {
	// Every cell is pure metal 1, so only c1 matters.
	pure := alloy.FixedStrategy(alloy.Composition{1, 0, 0})
	g := newGrid(t, 1, 3, 2, 5, 7, alloy.WithStrategy(pure))
	set(t, g, 10, 0, 0)
	set(t, g, 30, 0, 2)

	got, err := g.NextTemperature(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2*(10+30)/2.0, got, eps)

	// Column-dependent compositions: the west neighbor is all metal 2, the
	// east neighbor all metal 3.
	mixed := alloy.StrategyFunc(func(_, col int) alloy.Composition {
		switch col {
		case 0:
			return alloy.Composition{0, 1, 0}
		case 2:
			return alloy.Composition{0, 0, 1}
		default:
			return alloy.Uniform
		}
	})
	g = newGrid(t, 1, 4, 2, 5, 7, alloy.WithStrategy(mixed))
	set(t, g, 10, 0, 0)
	set(t, g, 30, 0, 2)
	got, err = g.NextTemperature(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, (5*10+7*30)/2.0, got, eps)
}

func TestNextTemperature_AnchorsHold(t *testing.T) {
	g := newGrid(t, 4, 5, 0.75, 1, 1.25)
	set(t, g, 6000, 0, 0)
	set(t, g, 1234, 3, 4)
	set(t, g, 99, 0, 1)
	set(t, g, 99, 3, 3)

	assert.True(t, g.IsAnchor(0, 0))
	assert.True(t, g.IsAnchor(3, 4))
	assert.False(t, g.IsAnchor(0, 4))
	assert.False(t, g.IsAnchor(3, 0))

	got, err := g.NextTemperature(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, got)
	got, err = g.NextTemperature(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1234.0, got)
}

func TestNextTemperature_SingleCell(t *testing.T) {
	g := newGrid(t, 1, 1, 1, 1, 1)
	set(t, g, 42, 0, 0)
	got, err := g.NextTemperature(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
}

func TestNextTemperature_DoesNotWrite(t *testing.T) {
	g := newGrid(t, 3, 3, 1, 1, 1)
	set(t, g, 100, 0, 0)
	before := g.Snapshot()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			_, err := g.NextTemperature(row, col)
			require.NoError(t, err)
		}
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("NextTemperature changed the grid (-before +after):\n%s", diff)
	}
}

func TestSetTemperature_RefreshesColor(t *testing.T) {
	g := newGrid(t, 2, 2, 1, 1, 1, alloy.WithThresholds(alloy.Thresholds{Low: 0, High: 100}))
	set(t, g, 100, 1, 1)
	c, err := g.Color(1, 1)
	require.NoError(t, err)
	assert.Equal(t, alloy.ColorFor(100, g.Thresholds()), c)

	cell, err := g.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cell.Temperature())
	assert.Equal(t, c, cell.Color())
}

func TestCopyAllTo(t *testing.T) {
	src := newGrid(t, 3, 4, 1, 1, 1, alloy.WithStrategy(alloy.RandomStrategy(7, 0.5)))
	set(t, src, 10, 0, 0)
	set(t, src, 3.5, 1, 2)
	set(t, src, 20, 2, 3)

	dst := newGrid(t, 3, 4, 1, 1, 1)
	require.NoError(t, src.CopyAllTo(dst))
	if diff := cmp.Diff(src.Snapshot(), dst.Snapshot()); diff != "" {
		t.Errorf("CopyAllTo mismatch (-src +dst):\n%s", diff)
	}

	// Later writes to the source do not leak into the copy.
	set(t, src, 99, 1, 1)
	got, err := dst.Temperature(1, 1)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCopyAllTo_DimensionMismatch(t *testing.T) {
	src := newGrid(t, 3, 4, 1, 1, 1)
	set(t, src, 10, 0, 0)
	dst := newGrid(t, 4, 3, 1, 1, 1)
	set(t, dst, 7, 0, 0)

	err := src.CopyAllTo(dst)
	require.ErrorIs(t, err, alloy.ErrDimensionMismatch)

	got, err := dst.Temperature(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got, "no cell may be copied on mismatch")

	require.ErrorIs(t, src.CopyAllTo(nil), alloy.ErrDimensionMismatch)
}

func TestCopyAllTo_RecolorsForTargetThresholds(t *testing.T) {
	src := newGrid(t, 1, 2, 1, 1, 1, alloy.WithThresholds(alloy.Thresholds{Low: 0, High: 100}))
	set(t, src, 50, 0, 1)
	dst := newGrid(t, 1, 2, 1, 1, 1)
	require.NoError(t, src.CopyAllTo(dst))

	c, err := dst.Color(0, 1)
	require.NoError(t, err)
	assert.Equal(t, alloy.ColorFor(50, alloy.DefaultThresholds), c)
}

func TestCopyColors(t *testing.T) {
	g := newGrid(t, 2, 2, 1, 1, 1)
	set(t, g, 1, 1, 1)

	pix := make([]byte, 4*4)
	require.NoError(t, g.CopyColors(pix))
	assert.Equal(t, []byte{0, 0, 0, 255}, pix[0:4])
	assert.Equal(t, []byte{255, 255, 255, 255}, pix[12:16])

	require.ErrorIs(t, g.CopyColors(make([]byte, 15)), alloy.ErrDimensionMismatch)
}
