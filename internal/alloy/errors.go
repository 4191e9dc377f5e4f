package alloy

import "errors"

var (
	// ErrBadShape is returned when a grid is requested with a non-positive
	// height or width.
	ErrBadShape = errors.New("alloy: grid dimensions must be positive")

	// ErrIndexOutOfRange indicates a row or column outside the grid bounds.
	// Callers never get a clamped or wrapped cell instead.
	ErrIndexOutOfRange = errors.New("alloy: index out of range")

	// ErrDimensionMismatch is returned by CopyAllTo when the target grid has
	// different dimensions. No cell is copied in that case.
	ErrDimensionMismatch = errors.New("alloy: dimension mismatch")

	// ErrBadComposition indicates metal percentages that are negative or do
	// not sum to 1.
	ErrBadComposition = errors.New("alloy: composition must be non-negative and sum to 1")
)

// ErrUnknownStrategy is returned by StrategyByName for an unrecognized name.
var ErrUnknownStrategy = errors.New("alloy: unknown composition strategy")
