package main

// Viewer and runtime constants. Simulation defaults live in internal/config.
const (
	windowTitle      = "Metal Alloy"
	defaultCellScale = 3
	maxCellScale     = 16
	snapshotDir      = "snapshots"
	verifyTolerance  = 1e-9
)
