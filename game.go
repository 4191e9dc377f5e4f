package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"alloyheat/internal/export"
	"alloyheat/internal/relax"
)

// errSimulationFailed stops the window when the background run fails; the
// run's own error is reported through Game.result.
var errSimulationFailed = errors.New("simulation failed")

// Game is the live view. It never writes to a grid: every frame it reads
// whichever grid the driver last published.
type Game struct {
	ctx     context.Context
	driver  *relax.Driver
	simDone <-chan error
	logger  *slog.Logger

	width, height int
	pixels        []byte

	started    time.Time
	finished   bool
	finishedAt time.Time
	simErr     error
}

// newGame constructs a view over driver. simDone delivers the result of
// driver.Run.
func newGame(ctx context.Context, driver *relax.Driver, simDone <-chan error, logger *slog.Logger) *Game {
	height, width := driver.Current().Dims()
	return &Game{
		ctx:     ctx,
		driver:  driver,
		simDone: simDone,
		logger:  logger,
		width:   width,
		height:  height,
		pixels:  make([]byte, width*height*4),
		started: time.Now(),
	}
}

// Update collects the run result, handles keys and stops the window when
// the context is cancelled.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !g.finished {
		select {
		case err := <-g.simDone:
			g.finished = true
			g.finishedAt = time.Now()
			g.simErr = err
			if err != nil {
				return errSimulationFailed
			}
			g.logger.Info("run complete, close the window to exit", "phases", g.driver.PhasesDone())
		default:
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveSnapshot()
	}
	return nil
}

// result reports whether the run has ended and, if so, its error.
func (g *Game) result() (bool, error) {
	return g.finished, g.simErr
}

// saveSnapshot writes the published grid as a PNG heatmap.
func (g *Game) saveSnapshot() {
	phase := g.driver.PhasesDone()
	path := filepath.Join(snapshotDir, fmt.Sprintf("phase_%06d.png", phase))
	title := fmt.Sprintf("Alloy temperature after %d phases", phase)
	if err := export.WritePNG(path, g.driver.Current().Snapshot(), title); err != nil {
		g.logger.Warn("snapshot failed", "error", err)
		return
	}
	g.logger.Info("saved snapshot", "path", path)
}

// status describes the run for the debug overlay.
func (g *Game) status() string {
	switch {
	case !g.finished:
		return fmt.Sprintf("running %s", time.Since(g.started).Round(time.Second))
	case g.simErr != nil:
		return "failed"
	default:
		return fmt.Sprintf("done in %s", g.finishedAt.Sub(g.started).Round(time.Millisecond))
	}
}
