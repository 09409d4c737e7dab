// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with fake services

package tui

import (
	"context"

	"playlist-timer/config"
	"playlist-timer/playlist"
)

// PlaylistService assembles a playlist approximating a requested duration
type PlaylistService interface {
	GetPlaylist(ctx context.Context, req playlist.Request) (playlist.Response, error)
}

// MetadataService reads display metadata for one song
type MetadataService interface {
	GetMetadata(ctx context.Context, path string) (playlist.Metadata, error)
}

// ConfigProvider provides thread-safe access to the current configuration
type ConfigProvider interface {
	Get() config.Config
}
