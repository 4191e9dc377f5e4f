package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"alloyheat/internal/alloy"
)

// ErrEmptySnapshot is returned when there is nothing to draw.
var ErrEmptySnapshot = errors.New("export: snapshot has no cells")

// paletteSize is the number of colors in the PNG heat palette.
const paletteSize = 64

// snapshotGrid adapts a snapshot to plotter.GridXYZ. Plot rows grow upward,
// so plot row r is plate row Height-1-r.
type snapshotGrid struct {
	s alloy.Snapshot
}

func (g snapshotGrid) Dims() (c, r int)   { return g.s.Width, g.s.Height }
func (g snapshotGrid) Z(c, r int) float64 { return g.s.At(g.s.Height-1-r, c) }
func (g snapshotGrid) X(c int) float64    { return float64(c) }
func (g snapshotGrid) Y(r int) float64    { return float64(r) }

// WritePNG draws the snapshot as a heatmap and saves it to path. The parent
// directory is created when missing.
func WritePNG(path string, s alloy.Snapshot, title string) error {
	if s.Height == 0 || s.Width == 0 || len(s.Temperatures) == 0 {
		return ErrEmptySnapshot
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row (bottom up)"

	hm := plotter.NewHeatMap(snapshotGrid{s: s}, palette.Heat(paletteSize, 1))
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	width, height := canvasSize(s.Width, s.Height)
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}

// canvasSize keeps the plate's aspect ratio with the longer side at 12in.
func canvasSize(cols, rows int) (vg.Length, vg.Length) {
	const long = 12 * vg.Inch
	const minSide = 3 * vg.Inch
	if cols >= rows {
		h := long * vg.Length(rows) / vg.Length(cols)
		if h < minSide {
			h = minSide
		}
		return long, h
	}
	w := long * vg.Length(cols) / vg.Length(rows)
	if w < minSide {
		w = minSide
	}
	return w, long
}
