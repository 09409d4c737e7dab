// ABOUTME: Duration probing for audio files via an external ffprobe binary
// ABOUTME: Defines the Prober interface so scanning can be tested without ffprobe

package playlist

import (
	"context"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Prober reports the playing time of an audio file
type Prober interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// FFProbe runs ffprobe to read the container duration
type FFProbe struct {
	Binary string // Defaults to "ffprobe"
}

// Probe implements Prober
func (p FFProbe) Probe(ctx context.Context, path string) (time.Duration, error) {
	bin := p.Binary
	if bin == "" {
		bin = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return 0, errors.Wrapf(err, "ffprobe failed for %s", path)
	}

	return parseProbeOutput(string(out))
}

// parseProbeOutput converts ffprobe's "123.456000" into a duration
func parseProbeOutput(out string) (time.Duration, error) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, errors.Newf("no duration reported")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, errors.Newf("invalid duration %q", s)
	}

	return time.Duration(secs * float64(time.Second)), nil
}
