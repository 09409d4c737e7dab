// ABOUTME: Bounded counters with carry propagation for the duration widget
// ABOUTME: Increment rolls 59 over to 0 and carries upward; decrement floors at 0

package duration

import "slices"

// Counter is the range policy of one unit
type Counter struct {
	Min     int
	Max     int  // Ignored when Bounded is false
	Bounded bool // False means no upper limit
}

// Policies holds the counter policy for each Unit, indexed in carry order
var Policies = []Counter{
	Seconds: {Min: 0, Max: 59, Bounded: true},
	Minutes: {Min: 0, Max: 59, Bounded: true},
	Hours:   {Min: 0},
}

// Carry increments values[i] under the given policies and returns a new slice.
// A bounded counter already at its maximum resets to its minimum and the
// increment moves on to the next counter, so several rollovers can cascade in
// one call. values and policies must be ordered smallest unit first.
func Carry(values []int, policies []Counter, i int) []int {
	out := slices.Clone(values)

	for ; i < len(out); i++ {
		p := policies[i]
		if !p.Bounded || out[i] < p.Max {
			out[i]++

			return out
		}

		out[i] = p.Min
	}

	// Carried past the largest counter; only possible if every counter is bounded
	return out
}

// Floor decrements values[i] without going below its minimum.
// It never borrows from a larger counter.
func Floor(values []int, policies []Counter, i int) []int {
	out := slices.Clone(values)
	if out[i] > policies[i].Min {
		out[i]--
	} else {
		out[i] = policies[i].Min
	}

	return out
}

// Increment adds one to unit u, carrying into larger units on rollover
func Increment(d Duration, u Unit) Duration {
	return fromValues(Carry(d.values(), Policies, int(u)))
}

// Decrement subtracts one from unit u, stopping at zero
func Decrement(d Duration, u Unit) Duration {
	return fromValues(Floor(d.values(), Policies, int(u)))
}
