// ABOUTME: Tests for the Library playlist and metadata services
// ABOUTME: Wires a fake prober and seeded random source through the shared config

package playlist

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playlist-timer/config"
)

func newTestLibrary(prober Prober) *Library {
	return NewLibrary(config.NewSharedConfig(config.DefaultConfig()), zerolog.Nop(),
		WithProber(prober), WithRand(rand.New(rand.NewPCG(7, 7))))
}

func TestLibraryGetPlaylist(t *testing.T) {
	dir := writeFiles(t, "a.mp3", "b.mp3", "c.mp3", "d.wav", "skip.txt")
	prober := &fakeProber{durations: map[string]time.Duration{
		"a.mp3": 60 * time.Second,
		"b.mp3": 90 * time.Second,
		"c.mp3": 30 * time.Second,
		"d.wav": 45500 * time.Millisecond,
	}}

	resp, err := newTestLibrary(prober).GetPlaylist(context.Background(), Request{TargetSeconds: 120, Folder: dir})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Songs)

	var total time.Duration
	for _, song := range resp.Songs {
		assert.Equal(t, dir, filepath.Dir(song))
		total += prober.durations[filepath.Base(song)]
	}

	assert.Equal(t, int(total/time.Second), resp.AchievedSeconds)
	assert.GreaterOrEqual(t, resp.AchievedSeconds, 90)
}

func TestLibraryGetPlaylistRejectsBadRequests(t *testing.T) {
	lib := newTestLibrary(&fakeProber{})
	file := filepath.Join(writeFiles(t, "a.mp3"), "a.mp3")

	tests := []struct {
		name string
		req  Request
	}{
		{name: "no folder", req: Request{TargetSeconds: 60}},
		{name: "missing folder", req: Request{TargetSeconds: 60, Folder: filepath.Join(t.TempDir(), "nope")}},
		{name: "file instead of folder", req: Request{TargetSeconds: 60, Folder: file}},
		{name: "negative target", req: Request{TargetSeconds: -1, Folder: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lib.GetPlaylist(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestLibraryUsesReloadedConfig(t *testing.T) {
	dir := writeFiles(t, "a.mp3", "b.m4a")
	prober := &fakeProber{durations: map[string]time.Duration{"a.mp3": time.Minute, "b.m4a": time.Minute}}

	shared := config.NewSharedConfig(config.DefaultConfig())
	lib := NewLibrary(shared, zerolog.Nop(), WithProber(prober))

	resp, err := lib.GetPlaylist(context.Background(), Request{TargetSeconds: 600, Folder: dir})
	require.NoError(t, err)
	assert.Len(t, resp.Songs, 1)

	cfg := shared.Get()
	cfg.Library.Extensions = append(cfg.Library.Extensions, ".m4a")
	shared.Update(cfg)

	resp, err = lib.GetPlaylist(context.Background(), Request{TargetSeconds: 600, Folder: dir})
	require.NoError(t, err)
	assert.Len(t, resp.Songs, 2)
}

func TestLibraryGetMetadata(t *testing.T) {
	dir := writeFiles(t, "Some Song.flac")
	prober := &fakeProber{durations: map[string]time.Duration{"Some Song.flac": 59 * time.Second}}

	md, err := newTestLibrary(prober).GetMetadata(context.Background(), filepath.Join(dir, "Some Song.flac"))
	require.NoError(t, err)

	assert.Equal(t, "Some Song", md.Title)
	assert.Equal(t, Unknown, md.Artist)
	assert.Equal(t, 59, md.DurationSeconds)

	_, err = newTestLibrary(prober).GetMetadata(context.Background(), filepath.Join(dir, "missing.flac"))
	assert.Error(t, err)
}
