// ABOUTME: Build command: one playlist for a target duration, without the UI
// ABOUTME: Handles the progress spinner, metadata fan-out, result table and M3U8 output

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alitto/pond"
	"github.com/charmbracelet/huh/spinner"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"playlist-timer/duration"
	"playlist-timer/playlist"
	"playlist-timer/tui"
)

// BuildOptions contains the build command's options
type BuildOptions struct {
	Folder     string
	Target     duration.Duration
	Metadata   bool   // Print the metadata table
	OutputPath string // Write an M3U8 playlist when set
}

// songInfo is one playlist entry with its metadata, if it could be read
type songInfo struct {
	Path     string
	Metadata playlist.Metadata
	Err      error
}

// RunBuild builds one playlist and prints it
func RunBuild(env *appEnv, opts BuildOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	req := playlist.Request{TargetSeconds: opts.Target.TotalSeconds(), Folder: opts.Folder}

	env.log.Info().Int("target_seconds", req.TargetSeconds).Str("folder", req.Folder).Msg("building playlist")

	resp, err := buildWithProgress(ctx, env.library, req)
	if err != nil {
		return errors.Wrap(err, "failed to build playlist")
	}

	achieved, requested := duration.Format(resp.AchievedSeconds, duration.Spaced), duration.Format(req.TargetSeconds, duration.Spaced)
	fmt.Printf("\n%d songs, %s of %s requested\n\n", len(resp.Songs), orZero(achieved), orZero(requested))

	if !opts.Metadata && opts.OutputPath == "" {
		writeSongTable(os.Stdout, pathsOnly(resp.Songs), false)

		return nil
	}

	songs := fetchAllMetadata(ctx, env.library, resp.Songs, env.shared.Get().Library.Workers, env.log)
	writeSongTable(os.Stdout, songs, opts.Metadata)

	if opts.OutputPath != "" {
		fmt.Printf("\nWriting playlist to: %s\n", opts.OutputPath)

		if err := playlist.WritePlaylist(opts.OutputPath, playlistTracks(songs)); err != nil {
			return errors.Wrap(err, "failed to write playlist")
		}

		fmt.Println("Done!")
	}

	return nil
}

// buildWithProgress requests the playlist, showing a spinner on terminals
func buildWithProgress(ctx context.Context, svc tui.PlaylistService, req playlist.Request) (playlist.Response, error) {
	var resp playlist.Response

	action := func(ctx context.Context) error {
		var err error
		resp, err = svc.GetPlaylist(ctx, req)

		return err
	}

	if !isTTY(os.Stdout) {
		return resp, action(ctx)
	}

	err := spinner.New().Title("Building playlist...").Context(ctx).ActionWithErr(action).Run()

	return resp, err
}

// fetchAllMetadata reads metadata for every song on a worker pool.
// Results keep playlist order; failures are recorded per song.
func fetchAllMetadata(ctx context.Context, svc tui.MetadataService, paths []string, workers int, log zerolog.Logger) []songInfo {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	songs := pathsOnly(paths)

	pool := pond.New(workers, len(paths))

	for i := range songs {
		pool.Submit(func() {
			md, err := svc.GetMetadata(ctx, songs[i].Path)
			if err != nil {
				log.Warn().Err(err).Str("path", songs[i].Path).Msg("metadata request failed")
				songs[i].Err = err

				return
			}

			songs[i].Metadata = md
		})
	}

	pool.StopAndWait()

	return songs
}

func pathsOnly(paths []string) []songInfo {
	songs := make([]songInfo, len(paths))
	for i, p := range paths {
		songs[i] = songInfo{Path: p}
	}

	return songs
}

// writeSongTable prints the playlist, with metadata columns when requested
func writeSongTable(out io.Writer, songs []songInfo, withMetadata bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if withMetadata {
		fmt.Fprintln(w, "#\tLength\tArtist\tTitle\tAlbum\tFile")
		fmt.Fprintln(w, "---\t------\t------\t-----\t-----\t----")
	} else {
		fmt.Fprintln(w, "#\tFile")
		fmt.Fprintln(w, "---\t----")
	}

	for i, song := range songs {
		label := songLabel(song.Path)

		switch {
		case !withMetadata:
			fmt.Fprintf(w, "%d\t%s\n", i+1, label)
		case song.Err != nil:
			fmt.Fprintf(w, "%d\t-\t-\t-\t-\t%s (%s)\n", i+1, label, truncate(song.Err.Error(), 40))
		default:
			md := song.Metadata
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1,
				duration.Format(md.DurationSeconds, duration.Clock),
				truncate(md.Artist, 20),
				truncate(md.Title, 30),
				truncate(md.Album, 20),
				label,
			)
		}
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to flush output: %v\n", err)
	}
}

// playlistTracks converts fetched songs into tracks for the M3U8 writer.
// Songs whose metadata failed are written with a zero length.
func playlistTracks(songs []songInfo) []playlist.Track {
	tracks := make([]playlist.Track, len(songs))
	for i, s := range songs {
		tracks[i] = playlist.Track{Path: s.Path, Duration: time.Duration(s.Metadata.DurationSeconds) * time.Second}
	}

	return tracks
}

func songLabel(path string) string {
	return truncate(filepath.Base(path), 60)
}

func orZero(s string) string {
	if s == "" {
		return "0s"
	}

	return s
}
