package relax

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"alloyheat/internal/alloy"
	"alloyheat/internal/config"
)

// PhaseHook is called after each phase has fully joined and its result has
// been published. phase counts from 1.
type PhaseHook func(phase int, current *alloy.Grid) error

// Driver runs a fixed number of relaxation phases over a double-buffered
// pair of grids.
type Driver struct {
	cfg       config.Config
	scheduler Scheduler
	logger    *slog.Logger
	hook      PhaseHook

	buffers bufferPair
	current atomic.Pointer[alloy.Grid]
	done    atomic.Int64
}

// Option customizes NewDriver.
type Option func(*Driver)

// WithLogger sets the logger for run and progress records.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithScheduler replaces the scheduler chosen from the configuration.
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) { d.scheduler = s }
}

// WithPhaseHook registers a hook run after every phase. A hook error aborts
// the run.
func WithPhaseHook(h PhaseHook) Option {
	return func(d *Driver) { d.hook = h }
}

// NewDriver validates cfg, builds both grids, seeds the anchors on the first
// one and copies it onto the second so the two start identical.
func NewDriver(cfg config.Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	if d.scheduler == nil {
		s, err := SchedulerFor(cfg)
		if err != nil {
			return nil, err
		}
		d.scheduler = s
	}

	strategy, err := alloy.StrategyByName(cfg.Composition, cfg.Width, cfg.Seed, cfg.Spread)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	thresholds := alloy.WithThresholds(alloy.ThresholdsFor(cfg.TopLeftTemperature, cfg.BottomRightTemperature))
	initial, err := alloy.NewGrid(cfg.Height, cfg.Width, cfg.C1, cfg.C2, cfg.C3, alloy.WithStrategy(strategy), thresholds)
	if err != nil {
		return nil, fmt.Errorf("building initial grid: %w", err)
	}
	scratch, err := alloy.NewGrid(cfg.Height, cfg.Width, cfg.C1, cfg.C2, cfg.C3, thresholds)
	if err != nil {
		return nil, fmt.Errorf("building scratch grid: %w", err)
	}
	if err := initial.SetTemperature(cfg.TopLeftTemperature, 0, 0); err != nil {
		return nil, err
	}
	if err := initial.SetTemperature(cfg.BottomRightTemperature, cfg.Height-1, cfg.Width-1); err != nil {
		return nil, err
	}
	if err := initial.CopyAllTo(scratch); err != nil {
		return nil, err
	}
	d.buffers = newBufferPair(initial, scratch)
	d.current.Store(initial)
	return d, nil
}

// Current returns the most recently finished grid, or the seeded initial
// grid before the first phase completes. It is safe to call from any
// goroutine. The returned grid stays untouched for the whole of the next
// phase, which only reads from it.
func (d *Driver) Current() *alloy.Grid {
	return d.current.Load()
}

// PhasesDone returns how many phases have completed.
func (d *Driver) PhasesDone() int {
	return int(d.done.Load())
}

// Phases returns the number of phases Run executes.
func (d *Driver) Phases() int { return d.cfg.Phases }

// Run executes the configured number of phases. Phases never overlap: each
// one joins its whole task tree before the result is published and the
// buffers swap. Cancelling ctx aborts the run with ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	start := time.Now()
	d.logger.Info("relaxation started",
		"height", d.cfg.Height, "width", d.cfg.Width,
		"phases", d.cfg.Phases, "scheduler", d.cfg.Scheduler, "threshold", d.cfg.Threshold)

	for phase := 1; phase <= d.cfg.Phases; phase++ {
		src, dst := d.buffers.roles()
		if err := d.scheduler.Relax(ctx, src, dst); err != nil {
			return fmt.Errorf("phase %d: %w", phase, err)
		}
		d.current.Store(dst)
		d.buffers.swap()
		d.done.Add(1)

		if d.cfg.ProgressInterval > 0 && phase%d.cfg.ProgressInterval == 0 {
			d.logProgress(phase, dst, time.Since(start))
		}
		if d.hook != nil {
			if err := d.hook(phase, dst); err != nil {
				return fmt.Errorf("phase %d hook: %w", phase, err)
			}
		}
	}

	st := d.Current().Snapshot().Stats()
	d.logger.Info("relaxation finished",
		"phases", d.PhasesDone(), "elapsed", time.Since(start),
		"min", st.Min, "max", st.Max, "mean", st.Mean)
	return nil
}

func (d *Driver) logProgress(phase int, g *alloy.Grid, elapsed time.Duration) {
	st := g.Snapshot().Stats()
	d.logger.Info("phase complete", "phase", phase, "of", d.cfg.Phases, "elapsed", elapsed,
		"min", st.Min, "max", st.Max, "mean", st.Mean, "stddev", st.StdDev)
}
