// ABOUTME: Shared initialization code for both modes (build and TUI)
// ABOUTME: Loads config, opens the log, starts the config watcher and builds the library

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"playlist-timer/config"
	"playlist-timer/duration"
	"playlist-timer/logger"
	"playlist-timer/playlist"
	"playlist-timer/tui"
)

// envOptions contains the global command-line options
type envOptions struct {
	ConfigPath string
	Debug      bool
	LogFile    string
}

// appEnv holds everything both modes share
type appEnv struct {
	configPath string
	shared     *config.SharedConfig
	log        zerolog.Logger
	library    *playlist.Library

	logCloser io.Closer
	stopWatch context.CancelFunc
}

// setup loads the config, opens the log and watches the config file for
// edits. A broken config file is reported and the defaults are used.
func setup(opts envOptions) (*appEnv, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, cfgErr := config.LoadConfig(path)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
	}

	logCfg := logConfig(cfg.Log, opts)

	log, closer, err := logger.New(logCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logging")
	}

	if opts.Debug && isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", logCfg.File)
	}

	shared := config.NewSharedConfig(cfg)

	watchCtx, stopWatch := context.WithCancel(context.Background())

	err = config.Watch(watchCtx, path, shared, func(err error) {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config reload failed, keeping previous config")

			return
		}

		log.Info().Str("path", path).Msg("config reloaded")
	})
	if err != nil {
		// The config directory may not exist; live reload is then unavailable
		log.Debug().Err(err).Str("path", path).Msg("config watcher not started")
	}

	log.Info().Str("config", path).Str("mode", cfg.Metadata.Mode).Msg("starting")

	return &appEnv{
		configPath: path,
		shared:     shared,
		log:        log,
		library:    playlist.NewLibrary(shared, log),
		logCloser:  closer,
		stopWatch:  stopWatch,
	}, nil
}

// Close stops the config watcher and closes the log file
func (e *appEnv) Close() {
	e.stopWatch()

	if err := e.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
	}
}

// tuiDependencies wires the library into the TUI
func (e *appEnv) tuiDependencies() tui.Dependencies {
	return tui.Dependencies{
		Playlists:    e.library,
		Metadata:     e.library,
		Config:       e.shared,
		Log:          e.log,
		NewRequestID: uuid.NewString,
	}
}

// logConfig combines the config file with the command-line flags, which win
func logConfig(cfg config.LogConfig, opts envOptions) logger.Config {
	out := logger.Config{Level: cfg.Level, File: cfg.File}

	if opts.LogFile != "" {
		out.File = opts.LogFile
	}

	if opts.Debug {
		out.Level = "debug"

		if out.File == "" {
			out.File = logger.DefaultDebugFile
		}
	}

	return out
}

// presetDuration checks command-line duration parts against the ranges the
// form accepts
func presetDuration(hours, minutes, seconds int) (duration.Duration, error) {
	d := duration.Duration{Hours: hours, Minutes: minutes, Seconds: seconds}

	for _, u := range duration.Units {
		p := duration.Policies[u]
		v := d.Get(u)

		if v < p.Min {
			return duration.Duration{}, errors.Newf("%s must be at least %d, got %d", u, p.Min, v)
		}

		if p.Bounded && v > p.Max {
			return duration.Duration{}, errors.Newf("%s must be at most %d, got %d", u, p.Max, v)
		}
	}

	return d, nil
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// truncate shortens s to maxLen terminal cells, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}

	return ansi.Truncate(s, maxLen, "...")
}
