package main

import (
	"fmt"
	"log/slog"

	"alloyheat/internal/export"
	"alloyheat/internal/relax"
)

// writeExports saves the final grid as requested by -snapshot and -chart.
func writeExports(driver *relax.Driver, logger *slog.Logger) error {
	if *snapshotFlag == "" && *chartFlag == "" {
		return nil
	}
	snap := driver.Current().Snapshot()
	title := fmt.Sprintf("Alloy temperature after %d phases", driver.PhasesDone())
	if *snapshotFlag != "" {
		if err := export.WritePNG(*snapshotFlag, snap, title); err != nil {
			return err
		}
		logger.Info("wrote heatmap", "path", *snapshotFlag)
	}
	if *chartFlag != "" {
		if err := export.WriteHTMLFile(*chartFlag, snap, title); err != nil {
			return err
		}
		logger.Info("wrote chart", "path", *chartFlag)
	}
	return nil
}
