// Package coords maps pixel index ranges onto plane-space coordinates and
// performs the pan/zoom interval arithmetic for the viewport.
//
// All plane-coordinate arithmetic lives here; the evaluator and the plot
// orchestrator only ever see Real values, so the precision representation can
// be upgraded without touching them.
package coords

import "iter"

// Real is the plane-coordinate type.
type Real = float64

// Samples yields up to count evenly spaced coordinates over [from, to),
// paired with their pixel index. Values start at from, advance by
// (to-from)/count and stay strictly below to. The sequence is a pure function
// of its inputs and can be ranged over any number of times.
func Samples(from, to Real, count int) iter.Seq2[int, Real] {
	return func(yield func(int, Real) bool) {
		if count <= 0 || to <= from {
			return
		}
		step := (to - from) / Real(count)
		n := from
		for i := 0; i < count && n < to; i++ {
			if !yield(i, n) {
				return
			}
			n += step
		}
	}
}

// Scale rescales the interval symmetrically about its midpoint. A negative
// factor divides the span by |factor| (zoom in); a non-negative factor
// multiplies it (zoom out). Both endpoints move by half the span difference,
// so the center never drifts.
func Scale(from, to Real, factor float64) (Real, Real) {
	span := to - from
	next := span
	if factor < 0 {
		next = span / Real(-factor)
	} else {
		next = span * Real(factor)
	}
	half := (span - next) / 2
	return from + half, to - half
}

// Shift moves both endpoints of the interval by amount.
func Shift(from, to, amount Real) (Real, Real) {
	return from + amount, to + amount
}
