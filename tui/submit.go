// ABOUTME: Playlist submission: validation, loading delay, request and result rendering
// ABOUTME: Every result carries the epoch it was issued in so stale ones are dropped

package tui

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"playlist-timer/duration"
	"playlist-timer/playlist"
)

// loadingDelay lets the loading indicator render before the request starts
const loadingDelay = 500 * time.Millisecond

// loadingDelayMsg fires when the loading delay is over
type loadingDelayMsg struct {
	epoch int
}

// playlistResultMsg carries the outcome of one GetPlaylist call
type playlistResultMsg struct {
	epoch     int
	requestID string
	response  playlist.Response
	err       error
}

// buildRequest validates the form. It returns a validation error when a
// duration field is not a number or no folder has been chosen.
func buildRequest(in durationInput, folder FolderSelection) (playlist.Request, error) {
	d, err := in.Value()
	if err != nil {
		return playlist.Request{}, err
	}

	if !folder.Chosen() {
		return playlist.Request{}, validationError("choose a music folder first", nil)
	}

	return playlist.Request{TargetSeconds: d.TotalSeconds(), Folder: folder.Path()}, nil
}

// submit validates the form and, when valid, switches to the loading view
// and schedules the playlist request after loadingDelay. Invalid input is
// reported on the form and nothing is requested.
func (m *model) submit() tea.Cmd {
	req, err := buildRequest(m.state.input, m.state.folder)
	if err != nil {
		m.state.validation = err.Error()
		m.log.Debug().Err(err).Msg("submission rejected")

		return nil
	}

	m.epoch++
	m.state.validation = ""
	m.state.request = req
	m.state.phase = phaseLoading
	m.state.input.Blur()

	epoch := m.epoch

	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(loadingDelay, func(time.Time) tea.Msg { return loadingDelayMsg{epoch: epoch} }),
	)
}

// requestPlaylist issues exactly one GetPlaylist call for the current request
func (m *model) requestPlaylist() tea.Cmd {
	m.state.requestID = m.newRequestID()

	var (
		ctx       = m.ctx
		svc       = m.playlists
		req       = m.state.request
		epoch     = m.epoch
		requestID = m.state.requestID
	)

	m.log.Info().
		Str("request_id", requestID).
		Int("target_seconds", req.TargetSeconds).
		Str("folder", req.Folder).
		Msg("requesting playlist")

	return func() tea.Msg {
		resp, err := fetchPlaylist(ctx, svc, req)
		if err != nil {
			err = serviceError(err, "playlist request %s", requestID)
		}

		return playlistResultMsg{epoch: epoch, requestID: requestID, response: resp, err: err}
	}
}

// fetchPlaylist calls svc, turning a missing service into an error
func fetchPlaylist(ctx context.Context, svc PlaylistService, req playlist.Request) (playlist.Response, error) {
	if svc == nil {
		return playlist.Response{}, errors.New("no playlist service configured")
	}

	return svc.GetPlaylist(ctx, req)
}

// handlePlaylistResult shows the playlist with the confirmation panel, or
// the error panel when the request failed
func (m *model) handlePlaylistResult(msg playlistResultMsg) {
	if msg.epoch != m.epoch || m.state.phase != phaseLoading {
		m.log.Debug().Int("epoch", msg.epoch).Int("current", m.epoch).Msg("ignoring stale playlist result")

		return
	}

	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("request_id", msg.requestID).Msg("playlist request failed")
		m.state.err = msg.err
		m.state.phase = phaseError

		return
	}

	m.log.Info().
		Str("request_id", msg.requestID).
		Int("songs", len(msg.response.Songs)).
		Int("achieved_seconds", msg.response.AchievedSeconds).
		Msg("playlist received")

	m.state.err = nil
	m.state.response = msg.response
	m.state.cursor = 0
	m.state.phase = phaseConfirm
	m.updateViewportContent()
}

// retry re-issues the failed playlist request
func (m *model) retry() tea.Cmd {
	m.epoch++
	m.state.err = nil
	m.state.phase = phaseLoading

	return tea.Batch(m.spinner.Tick, m.requestPlaylist())
}

// back leaves the error panel for the form with its values intact
func (m *model) back() tea.Cmd {
	m.epoch++
	m.state.err = nil
	m.state.phase = phaseForm
	m.state.focus = focusHours

	return m.state.input.Focus(duration.Hours)
}

// songLabels renders "1. name.mp3" for each song, in playlist order
func songLabels(songs []string) []string {
	labels := make([]string, len(songs))
	for i, song := range songs {
		labels[i] = strconv.Itoa(i+1) + ". " + filepath.Base(song)
	}

	return labels
}

// durationSummary shows achieved and requested time in the spaced style
func durationSummary(achieved, requested int) (string, string) {
	return duration.Format(achieved, duration.Spaced), duration.Format(requested, duration.Spaced)
}
