// ABOUTME: Scrollable song list with cursor-to-middle scrolling
// ABOUTME: Keeps the highlighted song visible in the viewport like vim/less

package tui

import (
	"strings"
)

// scrollOffset computes the viewport Y offset that keeps cursor visible.
//
// Scrolling behavior:
// - Top: cursor moves freely, viewport stays at 0
// - Middle: cursor stays at middle, content scrolls
// - Bottom: viewport shows the end, cursor moves down
func scrollOffset(height, cursor, total int) int {
	if total == 0 || height < 1 {
		return 0
	}

	middle := height / 2

	if cursor < middle {
		return 0
	}

	if cursor < total-height+middle {
		return cursor - middle
	}

	return max(total-height, 0)
}

// moveCursor moves the song cursor by delta, clamped to the list
func (m *model) moveCursor(delta int) {
	n := len(m.state.response.Songs)
	if n == 0 {
		return
	}

	m.state.cursor = min(max(m.state.cursor+delta, 0), n-1)
	m.updateViewportContent()
}

// updateViewportContent rebuilds the song list and scrolls to the cursor
func (m *model) updateViewportContent() {
	songs := m.state.response.Songs
	labels := songLabels(songs)

	var b strings.Builder

	for i, label := range labels {
		line := statusMarker(m.state.statuses, i) + truncate(label, max(m.viewport.Width-4, minViewportWidth))

		if i == m.state.cursor && m.state.phase == phaseMetadata {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(songStyle.Render(line))
		}

		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.SetYOffset(scrollOffset(m.viewport.Height, m.state.cursor, len(songs)))
}

// statusMarker shows a song's metadata state in front of its label
func statusMarker(statuses []songStatus, i int) string {
	if i >= len(statuses) {
		return ""
	}

	switch statuses[i] {
	case songLoaded:
		return "✓ "
	case songFailed:
		return "✗ "
	case songPending:
		return "… "
	default:
		return "  "
	}
}
