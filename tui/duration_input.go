// ABOUTME: Hours/minutes/seconds text fields bound to the duration counters
// ABOUTME: Rewrites every edit to its canonical number and steps with carry

package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"playlist-timer/duration"
)

// durationInput holds one text field per unit, indexed by duration.Unit
type durationInput struct {
	fields [3]textinput.Model
}

func newDurationInput(d duration.Duration) durationInput {
	var in durationInput

	for _, u := range duration.Units {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.Width = 6
		ti.CharLimit = 0 // Unlimited; Update clamps bounded units after every edit

		in.fields[u] = ti
	}

	in.set(d)

	return in
}

// set writes every unit of d into its field
func (in *durationInput) set(d duration.Duration) {
	for _, u := range duration.Units {
		in.fields[u].SetValue(strconv.Itoa(d.Get(u)))
		in.fields[u].CursorEnd()
	}
}

// Value parses all three fields. The first unparsable field is reported as
// a validation error.
func (in durationInput) Value() (duration.Duration, error) {
	var d duration.Duration

	for _, u := range []duration.Unit{duration.Hours, duration.Minutes, duration.Seconds} {
		next, err := duration.SetFromText(d, u, in.fields[u].Value())
		if err != nil {
			return d, validationError("enter a number for "+u.String(), err)
		}

		d = next
	}

	return d, nil
}

// current reads the fields treating empty ones as zero, for stepping
func (in durationInput) current() duration.Duration {
	var d duration.Duration

	for _, u := range duration.Units {
		if next, err := duration.SetFromText(d, u, in.fields[u].Value()); err == nil {
			d = next
		}
	}

	return d
}

// Step increments (with carry) or decrements (floored) unit u
func (in *durationInput) Step(u duration.Unit, up bool) {
	d := in.current()

	if up {
		d = duration.Increment(d, u)
	} else {
		d = duration.Decrement(d, u)
	}

	in.set(d)
}

// Focus focuses the field for u and blurs the others
func (in *durationInput) Focus(u duration.Unit) tea.Cmd {
	in.Blur()

	return in.fields[u].Focus()
}

// Blur removes focus from every field
func (in *durationInput) Blur() {
	for i := range in.fields {
		in.fields[i].Blur()
	}
}

// Update forwards msg to the field for u and canonicalizes its text: any
// non-empty entry is sanitized, clamped and written back as a plain number.
// An empty field stays empty and fails validation on submit.
func (in *durationInput) Update(u duration.Unit, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	in.fields[u], cmd = in.fields[u].Update(msg)

	raw := in.fields[u].Value()
	if raw == "" {
		return cmd
	}

	n, err := duration.Parse(u, raw)
	if err != nil {
		return cmd
	}

	if canonical := strconv.Itoa(n); canonical != raw {
		in.fields[u].SetValue(canonical)
		in.fields[u].CursorEnd()
	}

	return cmd
}

// View renders one field
func (in durationInput) View(u duration.Unit) string {
	return in.fields[u].View()
}
