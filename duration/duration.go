// ABOUTME: Duration value held by the hours/minutes/seconds input widget
// ABOUTME: Defines units, the bounded 3-tuple and its total-seconds conversions

// Package duration implements the target-duration value edited in the UI:
// three linked counters with carry propagation on increment, a floor on
// decrement, text sanitization and the formatters used to display durations.
package duration

import "fmt"

// Unit identifies one counter of a Duration, ordered smallest first
type Unit int

// Units in carry order (a carry out of Seconds goes into Minutes, then Hours)
const (
	Seconds Unit = iota
	Minutes
	Hours
)

// Units lists every unit in carry order
var Units = []Unit{Seconds, Minutes, Hours}

// String returns the lowercase unit name
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Duration is the hours/minutes/seconds tuple shown by the input widget.
// Minutes and Seconds stay within [0,59]; Hours has no upper bound.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// TotalSeconds returns hours*3600 + minutes*60 + seconds
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Get returns the value of a single unit
func (d Duration) Get(u Unit) int {
	switch u {
	case Seconds:
		return d.Seconds
	case Minutes:
		return d.Minutes
	default:
		return d.Hours
	}
}

// With returns a copy of d with unit u replaced by v
func (d Duration) With(u Unit, v int) Duration {
	switch u {
	case Seconds:
		d.Seconds = v
	case Minutes:
		d.Minutes = v
	default:
		d.Hours = v
	}

	return d
}

// String renders d with the Spaced style ("1h 30m 15s")
func (d Duration) String() string {
	return Format(d.TotalSeconds(), Spaced)
}

// FromSeconds splits a number of seconds into a Duration.
// Negative input yields the zero Duration.
func FromSeconds(total int) Duration {
	if total < 0 {
		return Duration{}
	}

	return Duration{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// values returns the counters in carry order
func (d Duration) values() []int {
	return []int{d.Seconds, d.Minutes, d.Hours}
}

// fromValues is the inverse of values
func fromValues(v []int) Duration {
	return Duration{Seconds: v[0], Minutes: v[1], Hours: v[2]}
}
