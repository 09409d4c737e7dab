// ABOUTME: TUI mode configuration and command-line presets
// ABOUTME: Defines the initial form values and the injected dependencies

package tui

import (
	"github.com/rs/zerolog"

	"playlist-timer/duration"
)

// Options contains the values the form starts with (and returns to on cancel)
type Options struct {
	Folder   string            // Preselected music folder, empty for none
	Duration duration.Duration // Preset target duration
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Playlists    PlaylistService
	Metadata     MetadataService
	Config       ConfigProvider // nil uses config.DefaultConfig()
	Log          zerolog.Logger
	NewRequestID func() string // nil uses random UUIDs
}
