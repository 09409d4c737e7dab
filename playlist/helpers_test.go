// ABOUTME: Shared fixtures for playlist tests
// ABOUTME: A map-backed prober and a helper that lays out fake audio files

package playlist

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

// fakeProber answers from a table keyed by file base name
type fakeProber struct {
	durations map[string]time.Duration
	calls     atomic.Int64
}

func (p *fakeProber) Probe(ctx context.Context, path string) (time.Duration, error) {
	p.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d, ok := p.durations[filepath.Base(path)]
	if !ok {
		return 0, errors.Newf("no duration for %s", path)
	}

	return d, nil
}

// writeFiles creates empty files (relative to dir) and returns dir
func writeFiles(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()

	for _, name := range names {
		path := filepath.Join(dir, name)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create folder: %v", err)
		}

		if err := os.WriteFile(path, []byte("not really audio"), 0o600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	return dir
}
