// ABOUTME: Unit tests for TUI model behavior and shared test fixtures
// ABOUTME: Tests initialization, focus, the folder dialog, cancel and quit

package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"playlist-timer/config"
	"playlist-timer/duration"
	"playlist-timer/playlist"
)

// fakePlaylists records every request and answers with resp or the next error
type fakePlaylists struct {
	mu       sync.Mutex
	requests []playlist.Request
	ctxs     []context.Context
	resp     playlist.Response
	errs     []error // Returned in order, then resp
}

func (f *fakePlaylists) GetPlaylist(ctx context.Context, req playlist.Request) (playlist.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	f.ctxs = append(f.ctxs, ctx)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]

		return playlist.Response{}, err
	}

	return f.resp, nil
}

func (f *fakePlaylists) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

// fakeMetadata answers from a table keyed by path; fail lists failing paths
type fakeMetadata struct {
	mu     sync.Mutex
	byPath map[string]playlist.Metadata
	fail   map[string]bool
	calls  map[string]int
}

func (f *fakeMetadata) GetMetadata(_ context.Context, path string) (playlist.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = map[string]int{}
	}

	f.calls[path]++

	if f.fail[path] {
		return playlist.Metadata{}, errors.Newf("cannot read %s", path)
	}

	return f.byPath[path], nil
}

// fakeConfig is a fixed ConfigProvider
type fakeConfig struct {
	cfg config.Config
}

func (f fakeConfig) Get() config.Config { return f.cfg }

var testSongs = []string{"/music/a/one.mp3", "/music/b/two.flac", "/music/three.ogg"}

func newFakes() (*fakePlaylists, *fakeMetadata) {
	pl := &fakePlaylists{resp: playlist.Response{Songs: testSongs, AchievedSeconds: 125}}
	md := &fakeMetadata{byPath: map[string]playlist.Metadata{
		testSongs[0]: {Title: "One", Artist: "Artist A", Album: "Album A", MIMEType: playlist.Unknown, DurationSeconds: 61},
		testSongs[1]: {Title: "Two", Artist: "Artist B", Album: "Album B", Cover: []byte("png"), MIMEType: "image/png", DurationSeconds: 3661},
		testSongs[2]: {Title: "Three", Artist: "Artist C", Album: "Album C", MIMEType: playlist.Unknown, DurationSeconds: 59},
	}}

	return pl, md
}

// createTestModel creates a model with fake dependencies for testing
func createTestModel(opts Options, pl PlaylistService, md MetadataService, mode string) model {
	cfg := config.DefaultConfig()
	if mode != "" {
		cfg.Metadata.Mode = mode
	}

	m := initModel(opts, Dependencies{
		Playlists:    pl,
		Metadata:     md,
		Config:       fakeConfig{cfg: cfg},
		Log:          zerolog.Nop(),
		NewRequestID: func() string { return "req-1" },
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return next.(model)
}

// send feeds msgs to the model one after another and returns the last command
func send(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd

	for _, msg := range msgs {
		var next tea.Model

		next, cmd = m.Update(msg)
		m = next.(model)
	}

	return m, cmd
}

// runCmd executes cmd and flattens batches into their messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, runCmd(c)...)
	}

	return msgs
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlO    = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyBack     = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestModelInitialization(t *testing.T) {
	m := createTestModel(Options{Folder: "/music", Duration: duration.Duration{Minutes: 5}}, nil, nil, "")

	if m.state.phase != phaseForm {
		t.Errorf("Expected form phase, got %s", m.state.phase)
	}

	if m.state.focus != focusHours {
		t.Errorf("Expected hours focused, got %d", m.state.focus)
	}

	if got := m.state.folder.Path(); got != "/music" {
		t.Errorf("Expected preset folder /music, got %q", got)
	}

	d, err := m.state.input.Value()
	if err != nil || d != (duration.Duration{Minutes: 5}) {
		t.Errorf("Expected preset 5m, got %+v (err %v)", d, err)
	}

	if m.state.display.Index != -1 {
		t.Errorf("Expected empty display, got index %d", m.state.display.Index)
	}
}

func TestFocusCycle(t *testing.T) {
	m := createTestModel(Options{}, nil, nil, "")

	want := []int{focusMinutes, focusSeconds, focusFolder, focusHours}
	for i, f := range want {
		m, _ = send(t, m, keyTab)
		if m.state.focus != f {
			t.Fatalf("tab %d: focus = %d, want %d", i+1, m.state.focus, f)
		}
	}

	m, _ = send(t, m, keyShiftTab)
	if m.state.focus != focusFolder {
		t.Errorf("shift+tab from hours: focus = %d, want folder", m.state.focus)
	}
}

func TestFolderLabel(t *testing.T) {
	tests := []struct {
		name    string
		sel     FolderSelection
		focused bool
		want    string
	}{
		{name: "none selected", sel: FolderSelection{}, want: chooseFolderLabel},
		{name: "none selected focused", sel: FolderSelection{}, focused: true, want: chooseFolderLabel},
		{name: "selected", sel: FolderSelection{}.Choose("/music"), want: "/music"},
		{name: "selected focused", sel: FolderSelection{}.Choose("/music"), focused: true, want: chooseFolderLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Label(tt.focused); got != tt.want {
				t.Errorf("Label(%v) = %q, want %q", tt.focused, got, tt.want)
			}
		})
	}
}

func TestFolderChooseEmptyKeepsPrevious(t *testing.T) {
	sel := FolderSelection{}.Choose("/music").Choose("")
	if sel.Path() != "/music" {
		t.Errorf("Expected /music to be kept, got %q", sel.Path())
	}
}

func TestFolderDialogDismissKeepsSelection(t *testing.T) {
	m := createTestModel(Options{Folder: "/music"}, nil, nil, "")

	m, _ = send(t, m, keyCtrlO)
	if m.state.phase != phaseDialog {
		t.Fatalf("Expected dialog phase, got %s", m.state.phase)
	}

	m, _ = send(t, m, keyEsc)

	if m.state.phase != phaseForm {
		t.Errorf("Expected form phase after esc, got %s", m.state.phase)
	}

	if m.state.folder.Path() != "/music" {
		t.Errorf("Expected /music kept, got %q", m.state.folder.Path())
	}
}

func TestFolderDialogChooseCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	m := createTestModel(Options{Folder: dir}, nil, nil, "")
	m.state.folder = FolderSelection{}

	m, _ = send(t, m, keyCtrlO, runes("."))

	want, _ := filepath.Abs(dir)
	if m.state.folder.Path() != want {
		t.Errorf("Expected %q chosen, got %q", want, m.state.folder.Path())
	}

	if m.state.focus != focusFolder {
		t.Errorf("Expected folder focused after the dialog, got %d", m.state.focus)
	}
}

func TestFolderDialogSelectSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "album"), 0o755); err != nil {
		t.Fatalf("Failed to create folder: %v", err)
	}

	m := createTestModel(Options{Folder: dir}, nil, nil, "")

	m, cmd := send(t, m, keyCtrlO)

	// Deliver the directory listing to the picker
	for _, msg := range runCmd(cmd) {
		m, _ = send(t, m, msg)
	}

	m, _ = send(t, m, keyEnter)

	if m.state.phase != phaseForm {
		t.Fatalf("Expected form phase after choosing, got %s", m.state.phase)
	}

	want, _ := filepath.Abs(filepath.Join(dir, "album"))
	if m.state.folder.Path() != want {
		t.Errorf("Expected %q chosen, got %q", want, m.state.folder.Path())
	}
}

func TestQuitCancelsContext(t *testing.T) {
	m := createTestModel(Options{}, nil, nil, "")
	ctx := m.ctx

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.quitting {
		t.Error("Expected quitting to be set")
	}

	if ctx.Err() == nil {
		t.Error("Expected context to be cancelled on quit")
	}

	if cmd == nil {
		t.Fatal("Expected quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"1. 日本語日本語日本語.mp3", 12, "1. 日本語..."},
		{"1. café-olé-café.flac", 12, "1. café-o..."},
	}

	for _, tt := range tests {
		got := truncate(tt.s, tt.maxLen)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}

		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tt.s, tt.maxLen, got)
		}
	}
}
