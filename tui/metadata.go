// ABOUTME: Metadata phase: one request per song feeding a single shared display
// ABOUTME: Whichever result arrives last is what the display shows

package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"playlist-timer/config"
	"playlist-timer/duration"
	"playlist-timer/playlist"
)

// metadataResultMsg carries the outcome of one GetMetadata call
type metadataResultMsg struct {
	epoch int
	index int
	path  string
	md    playlist.Metadata
	err   error
}

// startMetadata leaves the confirmation panel and requests metadata for
// every song. In concurrent mode all requests go out at once and complete
// in any order; in sequential mode the next song is requested only after
// the previous one resolved.
func (m *model) startMetadata() tea.Cmd {
	songs := m.state.response.Songs

	m.state.phase = phaseMetadata
	m.state.statuses = make([]songStatus, len(songs))
	m.state.failures = map[int]error{}
	m.state.display = metadataDisplay{Index: -1}
	m.updateViewportContent()

	if len(songs) == 0 {
		return nil
	}

	if m.currentConfig().Metadata.Mode == config.ModeSequential {
		return m.fetchMetadata(0)
	}

	return tea.Batch(m.metadataCmds(indexes(len(songs)))...)
}

// metadataCmds builds one fetch command per song index
func (m *model) metadataCmds(idx []int) []tea.Cmd {
	cmds := make([]tea.Cmd, len(idx))
	for i, n := range idx {
		cmds[i] = m.fetchMetadata(n)
	}

	return cmds
}

// fetchMetadata requests metadata for the song at index
func (m *model) fetchMetadata(index int) tea.Cmd {
	var (
		ctx   = m.ctx
		svc   = m.metadata
		epoch = m.epoch
		path  = m.state.response.Songs[index]
	)

	m.state.statuses[index] = songPending

	return func() tea.Msg {
		md, err := getMetadata(ctx, svc, path)
		if err != nil {
			err = serviceError(err, "metadata for song %d", index+1)
		}

		return metadataResultMsg{epoch: epoch, index: index, path: path, md: md, err: err}
	}
}

// getMetadata calls svc, turning a missing service into an error
func getMetadata(ctx context.Context, svc MetadataService, path string) (playlist.Metadata, error) {
	if svc == nil {
		return playlist.Metadata{}, errors.New("no metadata service configured")
	}

	return svc.GetMetadata(ctx, path)
}

// handleMetadataResult writes a successful result into the shared display
// slot (last writer wins) or records the failure for retry
func (m *model) handleMetadataResult(msg metadataResultMsg) tea.Cmd {
	if msg.epoch != m.epoch || m.state.phase != phaseMetadata || msg.index >= len(m.state.statuses) {
		m.log.Debug().Int("epoch", msg.epoch).Int("current", m.epoch).Msg("ignoring stale metadata result")

		return nil
	}

	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("path", msg.path).Msg("metadata request failed")
		m.state.statuses[msg.index] = songFailed
		m.state.failures[msg.index] = msg.err
	} else {
		m.state.statuses[msg.index] = songLoaded
		delete(m.state.failures, msg.index)
		m.state.display = m.renderDisplay(msg.index, msg.md)
	}

	m.updateViewportContent()

	// Sequential mode chains to the next song
	if m.currentConfig().Metadata.Mode == config.ModeSequential {
		if next := msg.index + 1; next < len(m.state.statuses) && m.state.statuses[next] == songQueued {
			return m.fetchMetadata(next)
		}
	}

	return nil
}

// retryMetadata re-requests only the songs whose metadata failed
func (m *model) retryMetadata() tea.Cmd {
	var failed []int

	for i, s := range m.state.statuses {
		if s == songFailed {
			failed = append(failed, i)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	m.log.Info().Int("songs", len(failed)).Msg("retrying metadata")

	for _, i := range failed {
		delete(m.state.failures, i)
	}

	return tea.Batch(m.metadataCmds(failed)...)
}

// renderDisplay converts metadata into the strings the display shows
func (m model) renderDisplay(index int, md playlist.Metadata) metadataDisplay {
	return metadataDisplay{
		Index:    index,
		Title:    md.Title,
		Artist:   md.Artist,
		Album:    md.Album,
		Cover:    playlist.CoverSource(md, m.currentConfig().Metadata.DefaultCover),
		Duration: duration.Format(md.DurationSeconds, duration.Clock),
	}
}

// failureSummary describes failed songs for the status line
func (m model) failureSummary() string {
	n := len(m.state.failures)
	if n == 0 {
		return ""
	}

	// Show the lowest failing index so the message is stable
	first := -1
	for i := range m.state.failures {
		if first < 0 || i < first {
			first = i
		}
	}

	return strconv.Itoa(n) + " song(s) failed: " + m.state.failures[first].Error()
}

func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	return idx
}
