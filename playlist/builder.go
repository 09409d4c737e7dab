// ABOUTME: Assembles a playlist whose total playing time approximates a target
// ABOUTME: Random fill followed by greedy swap passes against unused tracks

package playlist

import (
	"math/rand/v2"
	"time"
)

// BuildOptions tunes the swap phase of Build
type BuildOptions struct {
	DepthFactor int // Percent of unused tracks tried for every swap
	StepsFactor int // Percent of playlist positions visited per pass
	Loops       int // Extra passes after the first
}

// DefaultBuildOptions matches the values the config ships with
var DefaultBuildOptions = BuildOptions{DepthFactor: 100, StepsFactor: 100, Loops: 1}

// Result is an ordered selection of tracks and its summed duration
type Result struct {
	Songs []Track
	Total time.Duration
}

// Build picks random tracks until their total reaches target, then visits
// playlist positions and replaces each track with the unused candidate that
// brings the total closest to target. tracks is not modified.
func Build(tracks []Track, target time.Duration, rng *rand.Rand, opts BuildOptions) Result {
	b := builder{
		unused: append([]Track(nil), tracks...),
		target: target,
		rng:    rng,
	}

	b.fill()

	depth := len(b.unused) * opts.DepthFactor / 100
	steps := len(b.used) * opts.StepsFactor / 100

	for range opts.Loops + 1 {
		for i := range steps {
			b.swap(i, depth)
		}
	}

	return Result{Songs: b.used, Total: b.total}
}

type builder struct {
	used   []Track
	unused []Track
	total  time.Duration
	target time.Duration
	rng    *rand.Rand
}

// fill moves random unused tracks into the playlist until target is reached
func (b *builder) fill() {
	for b.total < b.target && len(b.unused) > 0 {
		i := b.rng.IntN(len(b.unused))
		t := b.unused[i]

		b.unused = append(b.unused[:i], b.unused[i+1:]...)
		b.used = append(b.used, t)
		b.total += t.Duration
	}
}

// swap tries depth random unused tracks in place of used[index] and keeps
// whichever gives the total nearest to target. The replaced track goes back
// into the unused pool.
func (b *builder) swap(index, depth int) {
	if depth <= 0 || index >= len(b.used) {
		return
	}

	current := b.used[index]
	rest := b.total - current.Duration

	best := -1
	bestDist := distance(rest+current.Duration, b.target)

	for _, c := range b.rng.Perm(len(b.unused))[:min(depth, len(b.unused))] {
		if d := distance(rest+b.unused[c].Duration, b.target); d < bestDist {
			best, bestDist = c, d
		}
	}

	if best < 0 {
		return
	}

	b.used[index], b.unused[best] = b.unused[best], current
	b.total = rest + b.used[index].Duration
}

func distance(total, target time.Duration) time.Duration {
	if total > target {
		return total - target
	}

	return target - total
}
