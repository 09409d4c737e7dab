// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function with one renderer per phase

package tui

import (
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"playlist-timer/duration"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("view panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return ""
	}

	var body string

	switch m.state.phase {
	case phaseForm:
		body = m.renderForm()
	case phaseDialog:
		body = m.renderDialog()
	case phaseLoading:
		body = m.renderLoading()
	case phaseConfirm:
		body = m.renderConfirm()
	case phaseMetadata:
		body = m.renderMetadata()
	case phaseError:
		body = m.renderError()
	}

	return body + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

// renderForm renders the duration fields and the folder button
func (m model) renderForm() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Playlist timer") + "\n\n")

	for _, f := range []int{focusHours, focusMinutes, focusSeconds} {
		u := focusUnits[f]
		b.WriteString(labelStyle.Render(u.String()) + m.fieldStyle(f).Render(m.state.input.View(u)) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("folder") +
		m.fieldStyle(focusFolder).Render(m.state.folder.Label(m.state.focus == focusFolder)) + "\n")

	if m.state.validation != "" {
		b.WriteString("\n" + errorStyle.Render(m.state.validation) + "\n")
	}

	return b.String()
}

func (m model) fieldStyle(f int) lipgloss.Style {
	if m.state.focus == f {
		return focusedFieldStyle
	}

	return fieldStyle
}

// renderDialog renders the folder picker
func (m model) renderDialog() string {
	return titleStyle.Render("Choose folder") + "\n" +
		helpStyle.Render(m.dialog.picker.CurrentDirectory) + "\n\n" +
		m.dialog.View()
}

// renderLoading renders the loading indicator
func (m model) renderLoading() string {
	return titleStyle.Render("Playlist timer") + "\n\n" +
		m.spinner.View() + " Building a " + duration.Format(m.state.request.TargetSeconds, duration.Spaced) + " playlist..."
}

// renderPlaylist renders the durations and the scrollable song list
func (m model) renderPlaylist(title string) string {
	achieved, requested := durationSummary(m.state.response.AchievedSeconds, m.state.request.TargetSeconds)

	return titleStyle.Render(title) + "\n" +
		labelStyle.Render("achieved") + achieved + "\n" +
		labelStyle.Render("requested") + requested + "\n\n" +
		m.viewport.View()
}

// renderConfirm renders the playlist with the continue/cancel panel
func (m model) renderConfirm() string {
	panel := metadataStyle.Render("Continue to song details?  [c] continue  [x] cancel")

	return m.renderPlaylist("Your playlist") + "\n\n" + panel
}

// renderMetadata renders the song list beside the shared metadata display
func (m model) renderMetadata() string {
	list := m.renderPlaylist("Now showing")

	d := m.state.display
	if d.Index < 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", metadataStyle.Render("Loading song details..."))
	}

	details := strings.Join([]string{
		titleStyle.Render(d.Title),
		labelStyle.Render("artist") + d.Artist,
		labelStyle.Render("album") + d.Album,
		labelStyle.Render("duration") + d.Duration,
		labelStyle.Render("cover") + truncate(d.Cover, coverWidth),
	}, "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", metadataStyle.Render(details))
}

// renderError renders the failed request with retry and back options
func (m model) renderError() string {
	msg := "unknown error"
	if m.state.err != nil {
		msg = m.state.err.Error()
	}

	return titleStyle.Render("Could not build the playlist") + "\n\n" +
		errorStyle.Render(msg) + "\n\n" +
		"[r] retry  [esc] back to the form"
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	status := m.state.phase.String()

	switch m.state.phase {
	case phaseForm, phaseDialog:
		if m.state.folder.Chosen() {
			status += " | " + m.state.folder.Path()
		}
	case phaseConfirm, phaseMetadata:
		status += " | " + songCount(len(m.state.response.Songs))
		if summary := m.failureSummary(); summary != "" {
			status += " | " + summary + " (r to retry)"
		}
	}

	return statusStyle.Render(status)
}

// renderHelp renders the key hints for the current phase
func (m model) renderHelp() string {
	var help string

	switch m.state.phase {
	case phaseForm:
		help = "tab: next field • ↑/+ ↓/-: adjust • ctrl+o: folder • enter: build • ctrl+c: quit"
	case phaseDialog:
		help = "↑/↓: move • enter: choose • →: open • ←: up • .: this folder • esc: cancel"
	case phaseLoading:
		help = "esc: cancel • q: quit"
	case phaseConfirm:
		help = "c: continue • x: cancel • q: quit"
	case phaseMetadata:
		help = "↑/↓: scroll • r: retry failed • x: start over • q: quit"
	case phaseError:
		help = "r: retry • esc: back • q: quit"
	}

	return helpStyle.Render(help)
}

func songCount(n int) string {
	if n == 1 {
		return "1 song"
	}

	return strconv.Itoa(n) + " songs"
}
