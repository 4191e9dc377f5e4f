package main

import (
	"flag"

	"alloyheat/internal/config"
)

// Command-line flags. Names and defaults match the classic MetalAlloy CLI; the
// simulation values can also come from an HCL file given with -config, in
// which case only flags set explicitly override the file.
var (
	// topLeftFlag is the constant temperature of the top left corner.
	topLeftFlag = flag.Float64("s", config.DefaultTopLeftTemperature, "the top left corner's constant temperature")

	// bottomRightFlag is the constant temperature of the bottom right corner.
	bottomRightFlag = flag.Float64("t", config.DefaultBottomRightTemperature, "the bottom right corner's constant temperature")

	c1Flag = flag.Float64("c1", config.DefaultC1, "the first metal's thermal constant")
	c2Flag = flag.Float64("c2", config.DefaultC2, "the second metal's thermal constant")
	c3Flag = flag.Float64("c3", config.DefaultC3, "the third metal's thermal constant")

	heightFlag = flag.Int("height", config.DefaultHeight, "the height of the alloy in cells")
	widthFlag  = flag.Int("width", config.DefaultWidth, "the width of the alloy in cells")

	// phasesFlag is the number of relaxation phases run before exiting.
	phasesFlag = flag.Int("phases", config.DefaultPhases, "the number of phases to execute before the program terminates")

	// thresholdFlag is the region edge at or below which tasks stop splitting.
	thresholdFlag = flag.Int("threshold", config.DefaultThreshold, "region size at or below which a relaxation task computes directly")

	schedulerFlag = flag.String("scheduler", config.SchedulerForkJoin, "relaxation backend: forkjoin, bands, sequential or opencl")
	workersFlag   = flag.Int("workers", 0, "worker goroutines for the bands scheduler (0 = one per CPU)")

	// compositionFlag picks how metal percentages are assigned to cells.
	compositionFlag = flag.String("composition", config.CompositionUniform, "cell composition: uniform, random or bands")
	seedFlag        = flag.Int64("seed", 1, "seed for the random composition")
	spreadFlag      = flag.Float64("spread", config.DefaultSpread, "how far random compositions stray from uniform (0-1)")

	progressFlag = flag.Int("progress", config.DefaultProgressInterval, "log progress every N phases (0 disables)")

	configFileFlag = flag.String("config", "", "HCL file with simulation settings")

	// viewFlag opens the live window while the simulation runs.
	viewFlag  = flag.Bool("view", false, "show the alloy in a window while it heats up")
	scaleFlag = flag.Int("scale", defaultCellScale, "window pixels per cell")

	// debugFlag enables the FPS and phase overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and phase overlay in the view")

	snapshotFlag = flag.String("snapshot", "", "write a PNG heatmap of the final grid to this path")
	chartFlag    = flag.String("chart", "", "write an HTML heatmap of the final grid to this path")

	verifyOpenCLFlag = flag.Bool("verify-opencl", false, "recompute every OpenCL phase on the CPU and fail on mismatch")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")

	logLevelFlag  = flag.String("log-level", "info", "logging level: debug, info, warn or error")
	logFormatFlag = flag.String("log-format", "text", "log output format: text or json")
)

func init() {
	// Short spellings kept for old scripts.
	flag.IntVar(widthFlag, "w", config.DefaultWidth, "shorthand for -width")
	flag.IntVar(phasesFlag, "e", config.DefaultPhases, "shorthand for -phases")
}

// buildConfig layers defaults, the optional -config file and explicitly set
// flags, in that order.
func buildConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFileFlag != "" {
		loaded, err := config.LoadFile(*configFileFlag, cfg)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["s"] {
		cfg.TopLeftTemperature = *topLeftFlag
	}
	if set["t"] {
		cfg.BottomRightTemperature = *bottomRightFlag
	}
	if set["c1"] {
		cfg.C1 = *c1Flag
	}
	if set["c2"] {
		cfg.C2 = *c2Flag
	}
	if set["c3"] {
		cfg.C3 = *c3Flag
	}
	if set["height"] {
		cfg.Height = *heightFlag
	}
	if set["width"] || set["w"] {
		cfg.Width = *widthFlag
	}
	if set["phases"] || set["e"] {
		cfg.Phases = *phasesFlag
	}
	if set["threshold"] {
		cfg.Threshold = *thresholdFlag
	}
	if set["scheduler"] {
		cfg.Scheduler = *schedulerFlag
	}
	if set["workers"] {
		cfg.Workers = *workersFlag
	}
	if set["composition"] {
		cfg.Composition = *compositionFlag
	}
	if set["seed"] {
		cfg.Seed = *seedFlag
	}
	if set["spread"] {
		cfg.Spread = *spreadFlag
	}
	if set["progress"] {
		cfg.ProgressInterval = *progressFlag
	}
	return cfg, cfg.Validate()
}
