// ABOUTME: Folder selection value and the directory-only picker dialog
// ABOUTME: Dismissing the dialog keeps whatever folder was chosen before

package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chooseFolderLabel is shown on the folder button while it has focus or
// while nothing has been chosen yet
const chooseFolderLabel = "Choose folder"

// FolderSelection is the most recently chosen music folder
type FolderSelection struct {
	path string
}

// Chosen reports whether a folder has been selected
func (f FolderSelection) Chosen() bool {
	return f.path != ""
}

// Path returns the selected folder, or "" when none is selected
func (f FolderSelection) Path() string {
	return f.path
}

// Choose returns the selection after a dialog interaction; an empty path
// means the dialog was dismissed and the previous choice stands
func (f FolderSelection) Choose(path string) FolderSelection {
	if path == "" {
		return f
	}

	return FolderSelection{path: path}
}

// Label is the folder button text
func (f FolderSelection) Label(focused bool) string {
	if focused || !f.Chosen() {
		return chooseFolderLabel
	}

	return f.path
}

// Dialog keys
var (
	dialogCancel = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	dialogHere   = key.NewBinding(key.WithKeys("."), key.WithHelp(".", "choose this folder"))
)

// folderDialog lets the user pick a single directory
type folderDialog struct {
	picker filepicker.Model
	open   bool
}

func newFolderDialog(start string) folderDialog {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = false

	// esc closes the dialog instead of going up a level
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))

	if start != "" {
		fp.CurrentDirectory = start
	}

	if abs, err := filepath.Abs(fp.CurrentDirectory); err == nil {
		fp.CurrentDirectory = abs
	}

	return folderDialog{picker: fp}
}

// Open shows the dialog and lists its current directory
func (d folderDialog) Open() (folderDialog, tea.Cmd) {
	d.open = true
	d.picker.Path = ""

	return d, d.picker.Init()
}

// Update handles msg while the dialog is open. done is true once the user
// chose a folder (path set) or dismissed the dialog (path empty).
func (d folderDialog) Update(msg tea.Msg) (next folderDialog, done bool, path string, cmd tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, dialogCancel):
			d.open = false

			return d, true, "", nil

		case key.Matches(km, dialogHere):
			d.open = false

			return d, true, d.picker.CurrentDirectory, nil
		}
	}

	before := d.picker.Path
	d.picker, cmd = d.picker.Update(msg)

	if d.picker.Path != "" && d.picker.Path != before {
		d.open = false
		path = d.picker.Path

		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		// Stay in the chosen folder the next time the dialog opens
		d.picker.CurrentDirectory = path

		return d, true, path, nil
	}

	return d, false, "", cmd
}

// View renders the picker
func (d folderDialog) View() string {
	return d.picker.View()
}
