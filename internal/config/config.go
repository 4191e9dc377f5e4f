// Package config holds the values the simulation core reads: anchor
// temperatures, thermal constants, plate size and phase count, plus the
// scheduling and composition knobs of the full application. Values come from
// Default, optionally overlaid by an HCL file (LoadFile) and then by flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Scheduler names.
const (
	SchedulerForkJoin   = "forkjoin"
	SchedulerBands      = "bands"
	SchedulerSequential = "sequential"
	SchedulerOpenCL     = "opencl"
)

// Composition strategy names, mirrored by alloy.StrategyByName.
const (
	CompositionUniform = "uniform"
	CompositionRandom  = "random"
	CompositionBands   = "bands"
)

// Defaults for an 80×320 plate with both corners at 6000.
const (
	DefaultTopLeftTemperature     = 6000
	DefaultBottomRightTemperature = 6000
	DefaultC1                     = 0.75
	DefaultC2                     = 1.0
	DefaultC3                     = 1.25
	DefaultHeight                 = 80
	DefaultWidth                  = 320
	DefaultPhases                 = 10000
	DefaultThreshold              = 16
	DefaultSpread                 = 0.25
	DefaultProgressInterval       = 1000
)

// Config is the full simulation configuration. The hcl tags name the
// attributes accepted by LoadFile; every attribute is optional.
type Config struct {
	TopLeftTemperature     float64 `hcl:"top_left_temperature,optional"`
	BottomRightTemperature float64 `hcl:"bottom_right_temperature,optional"`
	C1                     float64 `hcl:"c1,optional"`
	C2                     float64 `hcl:"c2,optional"`
	C3                     float64 `hcl:"c3,optional"`
	Height                 int     `hcl:"height,optional"`
	Width                  int     `hcl:"width,optional"`
	Phases                 int     `hcl:"phases,optional"`

	// Threshold is the region size at or below which a relaxation task
	// computes directly instead of splitting.
	Threshold int    `hcl:"threshold,optional"`
	Scheduler string `hcl:"scheduler,optional"`
	// Workers sizes the bands scheduler; 0 means one per CPU.
	Workers int `hcl:"workers,optional"`

	Composition string  `hcl:"composition,optional"`
	Seed        int64   `hcl:"seed,optional"`
	Spread      float64 `hcl:"spread,optional"`

	// ProgressInterval is how many phases pass between progress log lines;
	// 0 disables them.
	ProgressInterval int `hcl:"progress_interval,optional"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		TopLeftTemperature:     DefaultTopLeftTemperature,
		BottomRightTemperature: DefaultBottomRightTemperature,
		C1:                     DefaultC1,
		C2:                     DefaultC2,
		C3:                     DefaultC3,
		Height:                 DefaultHeight,
		Width:                  DefaultWidth,
		Phases:                 DefaultPhases,
		Threshold:              DefaultThreshold,
		Scheduler:              SchedulerForkJoin,
		Composition:            CompositionUniform,
		Seed:                   1,
		Spread:                 DefaultSpread,
		ProgressInterval:       DefaultProgressInterval,
	}
}

// WorkerCount resolves Workers, defaulting to the number of CPUs.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Validate rejects configurations that cannot be simulated. It runs before
// any grid is allocated.
func (c Config) Validate() error {
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Phases < 0 {
		return fmt.Errorf("%w: phases must be non-negative, got %d", ErrInvalidConfig, c.Phases)
	}
	if c.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidConfig, c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.ProgressInterval < 0 {
		return fmt.Errorf("%w: progress_interval must be non-negative, got %d", ErrInvalidConfig, c.ProgressInterval)
	}
	for name, v := range map[string]float64{
		"top_left_temperature":     c.TopLeftTemperature,
		"bottom_right_temperature": c.BottomRightTemperature,
		"c1":                       c.C1,
		"c2":                       c.C2,
		"c3":                       c.C3,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, name, v)
		}
	}
	switch c.Scheduler {
	case SchedulerForkJoin, SchedulerBands, SchedulerSequential, SchedulerOpenCL:
	default:
		return fmt.Errorf("%w: unknown scheduler %q", ErrInvalidConfig, c.Scheduler)
	}
	switch c.Composition {
	case CompositionUniform, CompositionRandom, CompositionBands:
	default:
		return fmt.Errorf("%w: unknown composition %q", ErrInvalidConfig, c.Composition)
	}
	if c.Spread < 0 || c.Spread > 1 {
		return fmt.Errorf("%w: spread must be in [0, 1], got %v", ErrInvalidConfig, c.Spread)
	}
	return nil
}
