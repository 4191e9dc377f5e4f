package relax

import "errors"

var (
	// ErrTaskPanic wraps a panic recovered from a leaf relaxation task.
	ErrTaskPanic = errors.New("relax: relaxation task panicked")

	// ErrSameGrid is returned when a phase would read and write one grid.
	ErrSameGrid = errors.New("relax: source and destination are the same grid")

	// ErrUnknownScheduler is returned by SchedulerFor for names it cannot build.
	ErrUnknownScheduler = errors.New("relax: unknown scheduler")
)
