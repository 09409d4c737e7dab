// ABOUTME: Defines Track, request/response and Metadata types plus tag reading
// ABOUTME: Reads title, artist, album and cover art directly from audio file tags

package playlist

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// Unknown replaces any tag value that could not be read
const Unknown = "Unknown"

// Track is an audio file together with its playing time
type Track struct {
	Path     string        // Absolute path of the audio file
	Duration time.Duration // Playing time reported by the prober
}

// Request asks for a playlist approximating TargetSeconds from Folder
type Request struct {
	TargetSeconds int
	Folder        string
}

// Response is an ordered playlist and the total time it actually reaches
type Response struct {
	Songs           []string // Song paths in play order
	AchievedSeconds int
}

// Metadata is what the UI displays for a single song
type Metadata struct {
	Title           string
	Artist          string
	Album           string
	Cover           []byte // nil when the file has no embedded picture
	MIMEType        string
	DurationSeconds int
}

// ReadMetadata reads tags and cover art from the file at path and asks
// prober for its duration. Missing tags are reported as Unknown, the title
// falls back to the file name without extension and an unknown duration is 0.
func ReadMetadata(ctx context.Context, path string, prober Prober) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = file.Close() }()

	var md Metadata

	// Files without tags are still playable; only the fallbacks apply
	if tags, err := tag.ReadFrom(file); err == nil {
		md.Title = strings.TrimSpace(tags.Title())
		md.Artist = strings.TrimSpace(tags.Artist())
		md.Album = strings.TrimSpace(tags.Album())

		if pic := tags.Picture(); pic != nil && len(pic.Data) > 0 {
			md.Cover = pic.Data
			md.MIMEType = pictureMIMEType(pic)
		}
	}

	if md.Title == "" {
		md.Title = titleFromPath(path)
	}

	if prober != nil {
		d, err := prober.Probe(ctx, path)
		if err != nil && ctx.Err() != nil {
			return Metadata{}, errors.Wrap(ctx.Err(), "metadata request cancelled")
		}

		if err == nil {
			md.DurationSeconds = int(d / time.Second)
		}
	}

	return md.withDefaults(), nil
}

// withDefaults replaces empty text fields with Unknown
func (m Metadata) withDefaults() Metadata {
	for _, f := range []*string{&m.Title, &m.Artist, &m.Album, &m.MIMEType} {
		if *f == "" {
			*f = Unknown
		}
	}

	return m
}

// titleFromPath returns the file name without its extension
func titleFromPath(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pictureMIMEType prefers the tag's MIME type and falls back to the extension
func pictureMIMEType(pic *tag.Picture) string {
	if pic.MIMEType != "" {
		return pic.MIMEType
	}

	if pic.Ext != "" {
		if t := mime.TypeByExtension("." + strings.TrimPrefix(pic.Ext, ".")); t != "" {
			return t
		}
	}

	return ""
}
