// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model wiring the duration form to the playlist and metadata services

// Package tui provides the interactive terminal UI: a target-duration form,
// a playlist preview and a metadata view for the songs it contains.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"playlist-timer/config"
	"playlist-timer/duration"
)

// Layout constants for UI dimensions
const (
	formHeight      = 8 // Title, duration fields, folder button and spacing
	statusBarHeight = 1
	helpHeight      = 1
	totalUIChrome   = formHeight + statusBarHeight + helpHeight + 2

	minViewportWidth  = 20
	minViewportHeight = 5
	coverWidth        = 60 // Characters of the cover source shown
)

// model holds the TUI state
type model struct {
	// Dependencies
	playlists    PlaylistService
	metadata     MetadataService
	config       ConfigProvider
	log          zerolog.Logger
	newRequestID func() string

	opts  Options
	state State

	// Submission lifecycle
	// Context stored in struct because Bubble Tea's Init/Update/View pattern
	// doesn't allow passing context through function parameters
	ctx    context.Context    //nolint:containedctx // See above
	cancel context.CancelFunc // Cancels in-flight service calls on reset
	epoch  int                // Increments on every submit and reset to drop stale results

	// Sub-views
	dialog   folderDialog
	spinner  spinner.Model
	viewport viewport.Model

	width    int
	height   int
	quitting bool
}

// Key bindings
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	Folder    key.Binding
	Submit    key.Binding
	Continue  key.Binding
	Cancel    key.Binding
	Retry     key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "+", "k"),
		key.WithHelp("↑/+", "increase"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "-", "j"),
		key.WithHelp("↓/-", "decrease"),
	),
	Folder: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "choose folder"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "build playlist"),
	),
	Continue: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "continue"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x", "esc"),
		key.WithHelp("x", "cancel"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Width(9).
			Foreground(lipgloss.Color("245"))

	fieldStyle = lipgloss.NewStyle().
			Padding(0, 1)

	focusedFieldStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	songStyle = lipgloss.NewStyle().
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))

	metadataStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "TUI error")
	}

	if fm, ok := finalModel.(model); ok {
		fm.cancel()
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) model {
	ctx, cancel := context.WithCancel(context.Background())

	newRequestID := deps.NewRequestID
	if newRequestID == nil {
		newRequestID = uuid.NewString
	}

	m := model{
		playlists:    deps.Playlists,
		metadata:     deps.Metadata,
		config:       deps.Config,
		log:          deps.Log,
		newRequestID: newRequestID,

		opts:  opts,
		state: initialState(opts),

		ctx:    ctx,
		cancel: cancel,

		dialog:   newFolderDialog(opts.Folder),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(0, 0), // Width and height set on first WindowSizeMsg
	}

	m.state.input.Focus(duration.Hours)

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// reset discards all view state, as if the UI had just started. Outstanding
// service calls are cancelled and their late results ignored.
func (m *model) reset() tea.Cmd {
	m.cancel()
	m.epoch++
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.state = initialState(m.opts)
	m.updateViewportContent()

	m.log.Debug().Int("epoch", m.epoch).Msg("view reset")

	return m.state.input.Focus(duration.Hours)
}

// currentConfig returns the live config, or defaults without a provider
func (m model) currentConfig() config.Config {
	if m.config == nil {
		return config.DefaultConfig()
	}

	return m.config.Get()
}

// ========== Helpers ==========

// truncate shortens s to maxLen terminal cells, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}

	return ansi.Truncate(s, maxLen, "...")
}
