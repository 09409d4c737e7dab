// ABOUTME: Library implements the playlist and metadata services on local folders
// ABOUTME: Reads its tuning from the hot-reloadable shared config on every request

package playlist

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"playlist-timer/config"
)

// Library builds playlists from a music folder and reads song metadata
type Library struct {
	shared *config.SharedConfig
	log    zerolog.Logger
	prober Prober

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// LibraryOption customises a Library
type LibraryOption func(*Library)

// WithProber replaces the ffprobe-based duration prober
func WithProber(p Prober) LibraryOption {
	return func(l *Library) { l.prober = p }
}

// WithRand fixes the random source, mostly for reproducible tests
func WithRand(rng *rand.Rand) LibraryOption {
	return func(l *Library) { l.rng = rng }
}

// NewLibrary creates a Library reading settings from shared
func NewLibrary(shared *config.SharedConfig, log zerolog.Logger, opts ...LibraryOption) *Library {
	l := &Library{shared: shared, log: log}

	for _, opt := range opts {
		opt(l)
	}

	if l.rng == nil {
		l.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return l
}

// GetPlaylist scans req.Folder and assembles a playlist approximating
// req.TargetSeconds
func (l *Library) GetPlaylist(ctx context.Context, req Request) (Response, error) {
	if req.TargetSeconds < 0 {
		return Response{}, errors.Newf("target must not be negative, got %d", req.TargetSeconds)
	}

	if err := checkFolder(req.Folder); err != nil {
		return Response{}, err
	}

	cfg := l.shared.Get().Library
	start := time.Now()

	scanned, err := Scan(ctx, req.Folder, ScanOptions{
		Extensions: cfg.Extensions,
		Workers:    cfg.Workers,
		Prober:     l.proberFor(cfg),
	})
	if err != nil {
		return Response{}, err
	}

	for _, path := range scanned.Skipped {
		l.log.Warn().Str("path", path).Msg("skipping file without readable duration")
	}

	l.mu.Lock()
	result := Build(scanned.Tracks, time.Duration(req.TargetSeconds)*time.Second, l.rng, BuildOptions{
		DepthFactor: cfg.DepthFactor,
		StepsFactor: cfg.StepsFactor,
		Loops:       cfg.Loops,
	})
	l.mu.Unlock()

	l.log.Debug().
		Str("folder", req.Folder).
		Int("target", req.TargetSeconds).
		Int("found", len(scanned.Tracks)).
		Int("songs", len(result.Songs)).
		Dur("achieved", result.Total).
		Dur("elapsed", time.Since(start)).
		Msg("playlist built")

	songs := make([]string, len(result.Songs))
	for i, t := range result.Songs {
		songs[i] = t.Path
	}

	return Response{Songs: songs, AchievedSeconds: int(result.Total / time.Second)}, nil
}

// GetMetadata reads the tags, cover and duration of the song at path
func (l *Library) GetMetadata(ctx context.Context, path string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, errors.Wrap(err, "metadata request cancelled")
	}

	md, err := ReadMetadata(ctx, path, l.proberFor(l.shared.Get().Library))
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "failed to read metadata for %s", filepath.Base(path))
	}

	return md, nil
}

// proberFor returns the injected prober or one built from the current config
func (l *Library) proberFor(cfg config.LibraryConfig) Prober {
	if l.prober != nil {
		return l.prober
	}

	return FFProbe{Binary: cfg.FFProbe}
}

func checkFolder(folder string) error {
	if folder == "" {
		return errors.New("no folder given")
	}

	info, err := os.Stat(folder)
	if err != nil {
		return errors.Wrapf(err, "cannot open folder %s", folder)
	}

	if !info.IsDir() {
		return errors.Newf("%s is not a folder", folder)
	}

	return nil
}
