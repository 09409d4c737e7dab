// ABOUTME: Single parameterized formatter for durations expressed in seconds
// ABOUTME: Named styles cover the "1h 1m 1s" summary and the "1:01:01" clock forms

package duration

import (
	"strconv"
	"strings"
)

// ZeroPolicy decides which zero components are left out
type ZeroPolicy int

const (
	// OmitZeros drops every zero component; a zero duration renders as ""
	OmitZeros ZeroPolicy = iota
	// OmitLeadingZeros drops zero hours and, when hours are absent, zero
	// minutes. Seconds are always shown.
	OmitLeadingZeros
)

// Style configures Format
type Style struct {
	Separator string
	Suffixes  [3]string // Appended to hours, minutes, seconds
	Pad       bool      // Zero-pad components that follow a larger one to two digits
	Zeros     ZeroPolicy
}

// Named styles
var (
	// Spaced renders "1h 1m 1s", skipping zero parts (3600 -> "1h", 0 -> "")
	Spaced = Style{
		Separator: " ",
		Suffixes:  [3]string{"h", "m", "s"},
		Zeros:     OmitZeros,
	}

	// Clock renders "1:01:01", "1:01" or "59"
	Clock = Style{
		Separator: ":",
		Pad:       true,
		Zeros:     OmitLeadingZeros,
	}
)

// Format renders totalSeconds using style st. Negative input counts as zero.
func Format(totalSeconds int, st Style) string {
	d := FromSeconds(totalSeconds)
	parts := []int{d.Hours, d.Minutes, d.Seconds}

	var out []string

	for i, v := range parts {
		leading := len(out) == 0
		last := i == len(parts)-1

		switch st.Zeros {
		case OmitZeros:
			if v == 0 {
				continue
			}
		case OmitLeadingZeros:
			if v == 0 && leading && !last {
				continue
			}
		}

		s := strconv.Itoa(v)
		if st.Pad && !leading && v < 10 {
			s = "0" + s
		}

		out = append(out, s+st.Suffixes[i])
	}

	return strings.Join(out, st.Separator)
}
