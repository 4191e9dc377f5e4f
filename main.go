package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"alloyheat/internal/config"
	"alloyheat/internal/relax"
)

func main() {
	flag.Parse()
	logger := newLogger(*logLevelFlag, *logFormatFlag, os.Stderr).With("run", uuid.NewString())
	slog.SetDefault(logger)
	if err := run(logger); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return err
		}
		defer stop()
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	opts := []relax.Option{relax.WithLogger(logger)}
	if cfg.Scheduler == config.SchedulerOpenCL {
		solver, err := newOpenCLAlloySolver(cfg.Height, cfg.Width)
		if err != nil {
			return fmt.Errorf("OpenCL initialization failed: %w", err)
		}
		defer solver.Close()
		logger.Info("OpenCL solver enabled", "device", solver.DeviceName())
		var sched relax.Scheduler = solver
		if *verifyOpenCLFlag {
			sched = &relax.Verified{Primary: solver, Reference: relax.Sequential{}, Tolerance: verifyTolerance}
		}
		opts = append(opts, relax.WithScheduler(sched))
	}

	driver, err := relax.NewDriver(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *viewFlag {
		err = runWithViewer(ctx, driver, logger)
	} else {
		err = driver.Run(ctx)
	}
	if err != nil {
		return err
	}
	return writeExports(driver, logger)
}
