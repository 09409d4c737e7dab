// ABOUTME: Turns embedded cover art into an inline data URI image source
// ABOUTME: Falls back to a fixed image path when a song carries no picture

package playlist

import (
	"encoding/base64"
)

// DataURI encodes data as "data:<mime>;base64,<payload>"
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// CoverSource returns the image source to display for m: a data URI of its
// cover, or fallback when it has none
func CoverSource(m Metadata, fallback string) string {
	if len(m.Cover) == 0 {
		return fallback
	}

	return DataURI(m.MIMEType, m.Cover)
}
