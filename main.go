// ABOUTME: Entry point for playlist-timer application
// ABOUTME: Handles command-line parsing, profiling, and routing to the build command or the TUI

// Package main provides the entry point for playlist-timer, which fills a
// target duration with songs picked from a music folder.
package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"playlist-timer/config"
	"playlist-timer/tui"
)

var (
	app        = kingpin.New("playlist-timer", "Build playlists that fill a target duration")
	configPath = app.Flag("config", "Config file (default ./playlist-timer.toml or ~/.config/playlist-timer/config.toml)").Envar("PLAYLIST_TIMER_CONFIG").String()
	debugLog   = app.Flag("debug", "Enable debug logging (to playlist-timer-debug.log unless --log-file is set)").Bool()
	logFile    = app.Flag("log-file", "Write logs to this file").String()
	cpuprofile = app.Flag("cpuprofile", "Write cpu profile to file").String()
	memprofile = app.Flag("memprofile", "Write memory profile to file").String()

	// tui command
	tuiCmd     = app.Command("tui", "Interactive playlist builder").Default()
	tuiFolder  = tuiCmd.Flag("folder", "Preselected music folder").Short('f').String()
	tuiHours   = tuiCmd.Flag("hours", "Preset hours").Default("0").Int()
	tuiMinutes = tuiCmd.Flag("minutes", "Preset minutes").Default("0").Int()
	tuiSeconds = tuiCmd.Flag("seconds", "Preset seconds").Default("0").Int()

	// build command
	buildCmd      = app.Command("build", "Build one playlist without the UI")
	buildFolder   = buildCmd.Flag("folder", "Music folder").Short('f').Required().String()
	buildHours    = buildCmd.Flag("hours", "Target hours").Default("0").Int()
	buildMinutes  = buildCmd.Flag("minutes", "Target minutes").Default("0").Int()
	buildSeconds  = buildCmd.Flag("seconds", "Target seconds").Default("0").Int()
	buildMetadata = buildCmd.Flag("metadata", "Print title, artist and album for every song").Bool()
	buildOutput   = buildCmd.Flag("output", "Write the playlist to this M3U8 file").Short('o').String()

	// init-config command
	initConfigCmd = app.Command("init-config", "Write the current settings to the config file")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *cpuprofile != "" {
		stopCPUProfile, err := setupCPUProfile(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	env, err := setup(envOptions{
		ConfigPath: *configPath,
		Debug:      *debugLog,
		LogFile:    *logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}
	defer env.Close()

	switch command {
	case buildCmd.FullCommand():
		target, err := presetDuration(*buildHours, *buildMinutes, *buildSeconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}

		if err := RunBuild(env, BuildOptions{
			Folder:     *buildFolder,
			Target:     target,
			Metadata:   *buildMetadata,
			OutputPath: *buildOutput,
		}); err != nil {
			env.log.Error().Err(err).Msg("build failed")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}

	case initConfigCmd.FullCommand():
		if err := config.SaveConfig(env.configPath, env.shared.Get()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}

		fmt.Printf("Config written to %s\n", env.configPath)

	default:
		preset, err := presetDuration(*tuiHours, *tuiMinutes, *tuiSeconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			return 1
		}

		opts := tui.Options{Folder: *tuiFolder, Duration: preset}

		if err := tui.Run(opts, env.tuiDependencies()); err != nil {
			env.log.Error().Err(err).Msg("TUI exited with error")
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)

			return 1
		}
	}

	return 0
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not create CPU profile")
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()

		return nil, errors.Wrap(err, "could not start CPU profile")
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close CPU profile: %v\n", err)
		}
	}, nil
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close memory profile: %v\n", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
	}
}
