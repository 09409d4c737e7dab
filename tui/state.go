// ABOUTME: The single UI state value owned by the model
// ABOUTME: Built by initialState and replaced wholesale when the view resets

package tui

import (
	"playlist-timer/duration"
	"playlist-timer/playlist"
)

// phase is the screen currently shown
type phase int

const (
	phaseForm     phase = iota // Duration fields and folder button
	phaseDialog                // Folder picker open over the form
	phaseLoading               // Waiting for the playlist
	phaseConfirm               // Playlist shown, continue or cancel
	phaseMetadata              // Fetching and showing song metadata
	phaseError                 // Playlist request failed
)

func (p phase) String() string {
	switch p {
	case phaseForm:
		return "form"
	case phaseDialog:
		return "dialog"
	case phaseLoading:
		return "loading"
	case phaseConfirm:
		return "confirm"
	case phaseMetadata:
		return "metadata"
	case phaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Form focus positions in tab order
const (
	focusHours = iota
	focusMinutes
	focusSeconds
	focusFolder
	focusCount
)

// focusUnits maps duration focus positions to their unit
var focusUnits = map[int]duration.Unit{
	focusHours:   duration.Hours,
	focusMinutes: duration.Minutes,
	focusSeconds: duration.Seconds,
}

// songStatus tracks one song during the metadata phase
type songStatus int

const (
	songQueued  songStatus = iota // Not requested yet (sequential mode)
	songPending                   // Request in flight
	songLoaded
	songFailed
)

// metadataDisplay is the one shared slot every metadata result writes to
type metadataDisplay struct {
	Index    int // Song the fields belong to, -1 when empty
	Title    string
	Artist   string
	Album    string
	Cover    string // Image source: data URI or the default cover path
	Duration string // Clock style, e.g. "3:05"
}

// State is everything the view shows. It has one initial value per Options
// and is only ever replaced as a whole by model.reset.
type State struct {
	phase phase
	focus int

	input      durationInput
	folder     FolderSelection
	validation string // Visible validation message on the form

	// Submission
	request   playlist.Request
	requestID string
	response  playlist.Response
	err       error // Playlist failure shown on the error panel

	// Metadata
	statuses []songStatus
	failures map[int]error
	display  metadataDisplay
	cursor   int
}

// initialState is the state shown on startup and after cancel
func initialState(opts Options) State {
	return State{
		phase:   phaseForm,
		focus:   focusHours,
		input:   newDurationInput(opts.Duration),
		folder:  FolderSelection{}.Choose(opts.Folder),
		display: metadataDisplay{Index: -1},
	}
}
