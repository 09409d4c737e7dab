// ABOUTME: Tests for cover art data URIs and the default image fallback
// ABOUTME: Checks the exact data URI shape the UI displays

package playlist

import "testing"

func TestCoverSource(t *testing.T) {
	tests := []struct {
		name string
		md   Metadata
		want string
	}{
		{
			name: "png cover",
			md:   Metadata{Cover: []byte("hello"), MIMEType: "image/png"},
			want: "data:image/png;base64,aGVsbG8=",
		},
		{
			name: "no cover",
			md:   Metadata{MIMEType: Unknown},
			want: "assets/default-cover.png",
		},
		{
			name: "empty cover",
			md:   Metadata{Cover: []byte{}, MIMEType: "image/jpeg"},
			want: "assets/default-cover.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoverSource(tt.md, "assets/default-cover.png"); got != tt.want {
				t.Errorf("CoverSource() = %q, want %q", got, tt.want)
			}
		})
	}
}
