// ABOUTME: Text entry handling for the duration widget fields
// ABOUTME: Substitutes non-digits with '0', parses, and clamps bounded units at 59

package duration

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnparsable marks a field whose text cannot be read as a number
var ErrUnparsable = errors.New("duration field is not a number")

// Sanitize replaces every rune that is not an ASCII decimal digit with '0'.
// The result has the same number of runes as raw ("a1b2" -> "0102").
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return '0'
	}, raw)
}

// Parse sanitizes raw and returns the value it represents for unit u.
// Minutes and seconds above 59 are forced to 59; hours are never clamped.
func Parse(u Unit, raw string) (int, error) {
	clean := Sanitize(raw)
	if clean == "" {
		return 0, errors.Wrapf(ErrUnparsable, "%s is empty", u)
	}

	p := Policies[u]

	n, err := strconv.Atoi(clean)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) || !p.Bounded {
			return 0, errors.Wrapf(ErrUnparsable, "%s %q", u, raw)
		}

		n = p.Max
	}

	if p.Bounded && n > p.Max {
		n = p.Max
	}

	return n, nil
}

// SetFromText returns d with unit u set from raw text.
// On error d is returned unchanged.
func SetFromText(d Duration, u Unit, raw string) (Duration, error) {
	n, err := Parse(u, raw)
	if err != nil {
		return d, err
	}

	return d.With(u, n), nil
}
