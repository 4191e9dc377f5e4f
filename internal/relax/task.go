package relax

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the region edge length at or below which a task
// computes its cells directly.
const DefaultThreshold = 16

// Source is the read side of a phase. Implementations must tolerate
// concurrent NextTemperature calls while nothing writes to them.
type Source interface {
	Dims() (int, int)
	NextTemperature(row, col int) (float64, error)
}

// Destination is the write side of a phase. Concurrent SetTemperature calls
// always target distinct cells.
type Destination interface {
	Dims() (int, int)
	SetTemperature(value float64, row, col int) error
}

// Task relaxes one region: it either computes every cell or forks subtasks
// over halves or quarters of the region and waits for all of them.
type Task struct {
	src       Source
	dst       Destination
	region    Region
	threshold int
}

// NewTask builds a task over region. A threshold below 1 is treated as 1.
func NewTask(src Source, dst Destination, region Region, threshold int) Task {
	if threshold < 1 {
		threshold = 1
	}
	return Task{src: src, dst: dst, region: region, threshold: threshold}
}

// Region returns the region the task covers.
func (t Task) Region() Region { return t.region }

// Run relaxes the task's region. It returns only after every descendant
// task has finished; the first failure cancels the remaining siblings.
func (t Task) Run(ctx context.Context) error {
	height, width := t.region.Height(), t.region.Width()
	switch {
	case height <= t.threshold && width <= t.threshold:
		return t.compute(ctx)
	case height <= t.threshold:
		left, right := t.region.splitColumns()
		return t.fork(ctx, left, right)
	case width <= t.threshold:
		top, bottom := t.region.splitRows()
		return t.fork(ctx, top, bottom)
	default:
		q := t.region.quarters()
		return t.fork(ctx, q[:]...)
	}
}

func (t Task) fork(ctx context.Context, regions ...Region) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range regions {
		child := Task{src: t.src, dst: t.dst, region: r, threshold: t.threshold}
		g.Go(func() error { return child.Run(ctx) })
	}
	return g.Wait()
}

// compute is the leaf: read every stencil from the source and write it to
// the destination.
func (t Task) compute(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: region %v: %v", ErrTaskPanic, t.region, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	for row := t.region.RowStart; row < t.region.RowEnd; row++ {
		for col := t.region.ColStart; col < t.region.ColEnd; col++ {
			v, err := t.src.NextTemperature(row, col)
			if err != nil {
				return fmt.Errorf("relaxing region %v: %w", t.region, err)
			}
			if err := t.dst.SetTemperature(v, row, col); err != nil {
				return fmt.Errorf("relaxing region %v: %w", t.region, err)
			}
		}
	}
	return nil
}
