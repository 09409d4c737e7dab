// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and per-phase key handlers

package tui

import (
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("update panic")
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = max(msg.Width-2, minViewportWidth)
		m.viewport.Height = max(msg.Height-totalUIChrome, minViewportHeight)
		m.updateViewportContent()

		var cmd tea.Cmd
		m.dialog.picker, cmd = m.dialog.picker.Update(msg)

		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case loadingDelayMsg:
		if msg.epoch != m.epoch || m.state.phase != phaseLoading {
			return m, nil
		}

		return m, m.requestPlaylist()

	case playlistResultMsg:
		m.handlePlaylistResult(msg)

		return m, nil

	case metadataResultMsg:
		return m, m.handleMetadataResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Directory listings and other picker internals
	var cmd tea.Cmd
	m.dialog.picker, cmd = m.dialog.picker.Update(msg)

	return m, cmd
}

// handleKey dispatches a key press to the handler for the current phase
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m.quit()
	}

	switch m.state.phase {
	case phaseForm:
		return m, m.handleFormKey(msg)

	case phaseDialog:
		return m, m.handleDialogKey(msg)

	case phaseLoading:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Cancel):
			return m, m.reset()
		}

	case phaseConfirm:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Continue):
			return m, m.startMetadata()
		case key.Matches(msg, keys.Cancel):
			return m, m.reset()
		}

	case phaseMetadata:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, keys.Retry):
			return m, m.retryMetadata()
		case key.Matches(msg, keys.Cancel):
			return m, m.reset()
		}

	case phaseError:
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Retry):
			return m, m.retry()
		case key.Matches(msg, keys.Cancel):
			return m, m.back()
		}
	}

	return m, nil
}

// handleFormKey handles focus movement, stepping, the folder dialog and
// submission; anything else is typed into the focused duration field
func (m *model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	unit, onDuration := focusUnits[m.state.focus]

	switch {
	case key.Matches(msg, keys.Next):
		return m.setFocus((m.state.focus + 1) % focusCount)

	case key.Matches(msg, keys.Prev):
		return m.setFocus((m.state.focus + focusCount - 1) % focusCount)

	case key.Matches(msg, keys.Folder):
		return m.openDialog()

	case key.Matches(msg, keys.Submit):
		if !onDuration {
			return m.openDialog()
		}

		return m.submit()

	case onDuration && key.Matches(msg, keys.Up):
		m.state.input.Step(unit, true)

		return nil

	case onDuration && key.Matches(msg, keys.Down):
		m.state.input.Step(unit, false)

		return nil
	}

	if !onDuration {
		return nil
	}

	return m.state.input.Update(unit, msg)
}

// setFocus moves form focus to position f
func (m *model) setFocus(f int) tea.Cmd {
	m.state.focus = f

	if unit, ok := focusUnits[f]; ok {
		return m.state.input.Focus(unit)
	}

	m.state.input.Blur()

	return nil
}

// openDialog shows the folder picker over the form
func (m *model) openDialog() tea.Cmd {
	var cmd tea.Cmd

	m.dialog, cmd = m.dialog.Open()
	m.state.phase = phaseDialog
	m.state.input.Blur()

	return cmd
}

// handleDialogKey forwards keys to the picker until it closes
func (m *model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	dialog, done, path, cmd := m.dialog.Update(msg)
	m.dialog = dialog

	if !done {
		return cmd
	}

	m.state.folder = m.state.folder.Choose(path)
	m.state.phase = phaseForm
	m.state.validation = ""

	m.log.Debug().Str("folder", m.state.folder.Path()).Bool("dismissed", path == "").Msg("folder dialog closed")

	return m.setFocus(focusFolder)
}

// quit cancels outstanding requests and exits
func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()

	return m, tea.Quit
}
