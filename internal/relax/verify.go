package relax

import (
	"context"
	"errors"
	"fmt"
	"math"

	"alloyheat/internal/alloy"
)

// ErrVerifyMismatch is returned by Verified when the primary scheduler's
// result drifts from the reference beyond the tolerance.
var ErrVerifyMismatch = errors.New("relax: scheduler result differs from reference")

// Verified runs Primary for each phase, then recomputes the phase with
// Reference into a private scratch grid and compares the two. It only works
// with *alloy.Grid sources and destinations.
type Verified struct {
	Primary   Scheduler
	Reference Scheduler
	// Tolerance is relative to the largest absolute reference temperature
	// (or 1, whichever is larger).
	Tolerance float64

	scratch *alloy.Grid
}

// Relax implements Scheduler.
func (v *Verified) Relax(ctx context.Context, src Source, dst Destination) error {
	height, width, err := checkPair(src, dst)
	if err != nil {
		return err
	}
	out, ok := dst.(*alloy.Grid)
	if !ok {
		return fmt.Errorf("relax: verification needs an *alloy.Grid destination, got %T", dst)
	}
	if v.scratch == nil || v.scratch.Height() != height || v.scratch.Width() != width {
		scratch, err := alloy.NewGrid(height, width, 0, 0, 0)
		if err != nil {
			return err
		}
		v.scratch = scratch
	}
	if err := v.Primary.Relax(ctx, src, dst); err != nil {
		return err
	}
	reference := v.Reference
	if reference == nil {
		reference = Sequential{}
	}
	if err := reference.Relax(ctx, src, v.scratch); err != nil {
		return fmt.Errorf("reference phase: %w", err)
	}
	want := v.scratch.Snapshot()
	diff, err := alloy.MaxAbsDiff(out.Snapshot(), want)
	if err != nil {
		return err
	}
	st := want.Stats()
	scale := math.Max(1, math.Max(math.Abs(st.Max), math.Abs(st.Min)))
	if diff > v.Tolerance*scale {
		return fmt.Errorf("%w: max abs diff %g exceeds %g", ErrVerifyMismatch, diff, v.Tolerance*scale)
	}
	return nil
}
