package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the published grid's cell colors and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.driver.Current()
	if err := grid.CopyColors(g.pixels); err == nil {
		screen.WritePixels(g.pixels)
	}

	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f\nPhase: %d/%d\n%s",
			ebiten.ActualFPS(), g.driver.PhasesDone(), g.driver.Phases(), g.status())
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports one logical pixel per cell; Ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }
