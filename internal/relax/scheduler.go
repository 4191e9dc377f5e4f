package relax

import (
	"context"
	"fmt"

	"alloyheat/internal/alloy"
	"alloyheat/internal/config"
)

// Scheduler performs one full relaxation phase from src into dst.
type Scheduler interface {
	Relax(ctx context.Context, src Source, dst Destination) error
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(ctx context.Context, src Source, dst Destination) error

// Relax implements Scheduler.
func (f SchedulerFunc) Relax(ctx context.Context, src Source, dst Destination) error {
	return f(ctx, src, dst)
}

// ForkJoin relaxes the grid with one recursive Task over its full bounds.
type ForkJoin struct {
	Threshold int
}

// Relax implements Scheduler.
func (f ForkJoin) Relax(ctx context.Context, src Source, dst Destination) error {
	height, width, err := checkPair(src, dst)
	if err != nil {
		return err
	}
	threshold := f.Threshold
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return NewTask(src, dst, FullRegion(height, width), threshold).Run(ctx)
}

// Sequential sweeps every cell in row-major order on the calling goroutine.
// It is the reference the parallel schedulers are checked against.
type Sequential struct{}

// Relax implements Scheduler.
func (Sequential) Relax(ctx context.Context, src Source, dst Destination) error {
	height, width, err := checkPair(src, dst)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			v, err := src.NextTemperature(row, col)
			if err != nil {
				return err
			}
			if err := dst.SetTemperature(v, row, col); err != nil {
				return err
			}
		}
	}
	return nil
}

// SchedulerFor builds the CPU scheduler named by cfg.Scheduler. Backends
// living outside this package, such as OpenCL, are injected with
// WithScheduler instead.
func SchedulerFor(cfg config.Config) (Scheduler, error) {
	switch cfg.Scheduler {
	case config.SchedulerForkJoin, "":
		return ForkJoin{Threshold: cfg.Threshold}, nil
	case config.SchedulerBands:
		return Bands{Workers: cfg.WorkerCount()}, nil
	case config.SchedulerSequential:
		return Sequential{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheduler, cfg.Scheduler)
	}
}

// checkPair verifies that src and dst have the same shape and are not the
// same grid, and returns that shape.
func checkPair(src Source, dst Destination) (int, int, error) {
	sh, sw := src.Dims()
	dh, dw := dst.Dims()
	if sh != dh || sw != dw {
		return 0, 0, fmt.Errorf("%w: source %dx%d, destination %dx%d", alloy.ErrDimensionMismatch, sh, sw, dh, dw)
	}
	if s, ok := src.(*alloy.Grid); ok {
		if d, ok := dst.(*alloy.Grid); ok && s == d {
			return 0, 0, ErrSameGrid
		}
	}
	return sh, sw, nil
}
