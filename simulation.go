package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"alloyheat/internal/relax"
)

// runWithViewer runs the driver on a background goroutine while the window
// polls the published grid. Closing the window stops the run.
func runWithViewer(ctx context.Context, driver *relax.Driver, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	simDone := make(chan error, 1)
	go func() {
		simDone <- driver.Run(ctx)
	}()

	game := newGame(ctx, driver, simDone, logger)
	height, width := driver.Current().Dims()
	scale := clampScale(*scaleFlag)
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)
	cancel()

	finished, simErr := game.result()
	if !finished {
		simErr = <-simDone
		if errors.Is(simErr, context.Canceled) {
			logger.Info("view closed before the run finished", "phases", driver.PhasesDone())
			simErr = nil
		}
	}
	if runErr != nil && !errors.Is(runErr, errSimulationFailed) {
		return fmt.Errorf("viewer: %w", runErr)
	}
	return simErr
}

func clampScale(s int) int {
	if s < 1 {
		return 1
	}
	if s > maxCellScale {
		return maxCellScale
	}
	return s
}
