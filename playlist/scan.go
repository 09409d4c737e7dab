// ABOUTME: Finds audio files under a folder and probes their durations in parallel
// ABOUTME: Uses the worker pool so large libraries are probed on every CPU

package playlist

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"playlist-timer/pool"
)

// ScanOptions configures Scan
type ScanOptions struct {
	Extensions []string // Lowercase with leading dot, e.g. ".mp3"
	Workers    int      // 0 sizes the pool to available CPUs
	Prober     Prober
}

// ScanResult lists the tracks found and the files that could not be probed
type ScanResult struct {
	Tracks  []Track
	Skipped []string
}

// Scan walks dir recursively and returns every supported audio file with its
// duration, in lexical path order. Files whose duration cannot be read are
// reported in Skipped instead of failing the scan.
func Scan(ctx context.Context, dir string, opts ScanOptions) (ScanResult, error) {
	if opts.Prober == nil {
		return ScanResult{}, errors.New("scan requires a prober")
	}

	paths, err := findAudioFiles(dir, opts.Extensions)
	if err != nil {
		return ScanResult{}, err
	}

	tracks := make([]Track, len(paths))
	ok := make([]bool, len(paths))

	workers := pool.NewWorkerPool(opts.Workers, len(paths))
	defer workers.Close()

	var mu sync.Mutex

	var firstErr error

	for i, path := range paths {
		workers.Submit(func() {
			if ctx.Err() != nil {
				return
			}

			d, err := opts.Prober.Probe(ctx, path)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()

				return
			}

			tracks[i] = Track{Path: path, Duration: d}
			ok[i] = true
		})
	}

	workers.Wait()

	if err := ctx.Err(); err != nil {
		return ScanResult{}, errors.Wrap(err, "scan cancelled")
	}

	var result ScanResult

	for i := range paths {
		if ok[i] {
			result.Tracks = append(result.Tracks, tracks[i])
		} else {
			result.Skipped = append(result.Skipped, paths[i])
		}
	}

	if len(result.Tracks) == 0 && firstErr != nil {
		return result, errors.Wrap(firstErr, "no audio file could be probed")
	}

	return result, nil
}

// findAudioFiles lists files under dir whose extension is in exts
func findAudioFiles(dir string, exts []string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The root itself must be readable; unreadable subfolders are skipped
			if path == dir {
				return err
			}

			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() && isAudio(path, exts) {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read folder %s", dir)
	}

	return paths, nil
}

// isAudio checks the file extension case-insensitively
func isAudio(path string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}
