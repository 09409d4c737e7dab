// ABOUTME: Tests for reading song metadata from tags with fallbacks
// ABOUTME: Builds a tiny ID3v2.3 tag in memory instead of shipping audio fixtures

package playlist

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// id3Frame encodes one ID3v2.3 frame
func id3Frame(id string, body []byte) []byte {
	var b bytes.Buffer

	b.WriteString(id)
	_ = binary.Write(&b, binary.BigEndian, uint32(len(body)))
	b.Write([]byte{0, 0})
	b.Write(body)

	return b.Bytes()
}

func textFrame(id, text string) []byte {
	return id3Frame(id, append([]byte{0}, text...))
}

// id3Tag wraps frames in an ID3v2.3 header followed by zero padding
func id3Tag(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	body = append(body, make([]byte, 20)...)

	size := len(body)
	header := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f)}

	return append(header, body...)
}

func TestReadMetadataFromTags(t *testing.T) {
	cover := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}
	apic := append([]byte{0}, "image/png\x00"...)
	apic = append(apic, 3, 0) // front cover, empty description
	apic = append(apic, cover...)

	data := id3Tag(
		textFrame("TIT2", "Running"),
		textFrame("TPE1", "Calibre"),
		textFrame("TALB", "Spill"),
		id3Frame("APIC", apic),
	)

	path := filepath.Join(t.TempDir(), "02 Running.mp3")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	prober := &fakeProber{durations: map[string]time.Duration{"02 Running.mp3": 3661500 * time.Millisecond}}

	got, err := ReadMetadata(context.Background(), path, prober)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}

	if got.Title != "Running" || got.Artist != "Calibre" || got.Album != "Spill" {
		t.Errorf("tags = %q/%q/%q, want Running/Calibre/Spill", got.Title, got.Artist, got.Album)
	}

	if got.MIMEType != "image/png" || !bytes.Equal(got.Cover, cover) {
		t.Errorf("cover = %q %v, want image/png %v", got.MIMEType, got.Cover, cover)
	}

	if got.DurationSeconds != 3661 {
		t.Errorf("DurationSeconds = %d, want 3661", got.DurationSeconds)
	}
}

func TestReadMetadataFallbacks(t *testing.T) {
	dir := writeFiles(t, "Artist/Album/07 No Tags.ogg")
	path := filepath.Join(dir, "Artist", "Album", "07 No Tags.ogg")

	got, err := ReadMetadata(context.Background(), path, &fakeProber{})
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}

	want := Metadata{Title: "07 No Tags", Artist: Unknown, Album: Unknown, MIMEType: Unknown}
	if got.Title != want.Title || got.Artist != want.Artist || got.Album != want.Album || got.MIMEType != want.MIMEType {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if got.Cover != nil || got.DurationSeconds != 0 {
		t.Errorf("expected no cover and zero duration, got %v %d", got.Cover, got.DurationSeconds)
	}
}

func TestReadMetadataMissingFile(t *testing.T) {
	if _, err := ReadMetadata(context.Background(), filepath.Join(t.TempDir(), "gone.mp3"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadMetadataCancelled(t *testing.T) {
	dir := writeFiles(t, "a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadMetadata(ctx, filepath.Join(dir, "a.mp3"), &fakeProber{}); err == nil {
		t.Error("expected an error for a cancelled request")
	}
}
