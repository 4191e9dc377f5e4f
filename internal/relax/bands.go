package relax

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// rowBand is a contiguous block of rows [start, end).
type rowBand struct{ start, end int }

// workerRows collects the bands assigned to one worker goroutine.
type workerRows struct {
	bands []rowBand
}

// Bands relaxes the grid with a fixed number of workers, each owning whole
// rows. It is the static counterpart of ForkJoin.
type Bands struct {
	Workers int
	// RowsPerBand sets the band height; 0 splits the rows evenly so each
	// worker gets one band.
	RowsPerBand int
}

// Relax implements Scheduler.
func (b Bands) Relax(ctx context.Context, src Source, dst Destination) error {
	height, width, err := checkPair(src, dst)
	if err != nil {
		return err
	}
	workers := b.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	rowsPer := b.RowsPerBand
	if rowsPer < 1 {
		rowsPer = (height + workers - 1) / workers
	}
	assignments := assignRowBands(workers, splitRowBands(height, rowsPer))

	g, ctx := errgroup.WithContext(ctx)
	for _, rows := range assignments {
		if len(rows.bands) == 0 {
			continue
		}
		g.Go(func() error {
			for _, band := range rows.bands {
				region := Region{RowStart: band.start, RowEnd: band.end, ColEnd: width}
				leaf := Task{src: src, dst: dst, region: region}
				if err := leaf.compute(ctx); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// splitRowBands cuts [0, height) into bands of at most rowsPer rows.
func splitRowBands(height, rowsPer int) []rowBand {
	if rowsPer < 1 {
		rowsPer = 1
	}
	bands := make([]rowBand, 0, (height+rowsPer-1)/rowsPer)
	for start := 0; start < height; start += rowsPer {
		end := start + rowsPer
		if end > height {
			end = height
		}
		bands = append(bands, rowBand{start: start, end: end})
	}
	return bands
}

// assignRowBands distributes bands across workers in round robin fashion.
func assignRowBands(workerCount int, bands []rowBand) []workerRows {
	if workerCount < 1 {
		workerCount = 1
	}
	out := make([]workerRows, workerCount)
	for idx, band := range bands {
		w := idx % workerCount
		out[w].bands = append(out[w].bands, band)
	}
	return out
}
