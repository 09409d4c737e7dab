// ABOUTME: Writes assembled playlists to disk as extended M3U8 files
// ABOUTME: Keeps a .bak copy of any playlist file it overwrites

// Package playlist finds audio files, assembles playlists approximating a
// target duration and reads per-song metadata directly from audio file tags.
// Library bundles these into the playlist and metadata services the TUI uses.
package playlist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
)

// WritePlaylist writes tracks to an M3U8 playlist file with #EXTINF lines
// Creates a backup (.bak) of the existing file before overwriting
func WritePlaylist(path string, tracks []Track) (err error) {
	// Create backup if file exists
	if _, statErr := os.Stat(path); statErr == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create playlist")
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "failed to close playlist file")
		}
	}()

	writer := bufio.NewWriter(file)

	if _, err := writer.WriteString("#EXTM3U\n"); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	for _, track := range tracks {
		line := "#EXTINF:" + strconv.Itoa(int(track.Duration.Seconds())) + "," + titleFromPath(track.Path) + "\n" +
			filepath.ToSlash(track.Path) + "\n"

		if _, err := writer.WriteString(line); err != nil {
			return errors.Wrap(err, "failed to write track")
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush writer")
	}

	return nil
}
