// Package relax runs Jacobi relaxation phases over a pair of alloy grids.
//
// A phase reads every cell's stencil from a source grid and writes the result
// into a destination grid of the same shape. The default ForkJoin scheduler
// splits the grid recursively into regions no larger than a threshold and
// relaxes them on separate goroutines; regions never overlap, so no locking is
// needed on grid contents. Driver alternates the two grids across phases and
// publishes the most recently finished one atomically for concurrent readers.
package relax
