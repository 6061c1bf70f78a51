package pathmap_test

import (
	"testing"

	"flacmirror/internal/pathmap"
)

func TestTranslateRewritesBaseAndExtension(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		base    string
		dest    string
		ext     string
		want    string
	}{
		{
			name: "basic",
			path: "/music/flac/artist/album/01 song.flac",
			base: "/music/flac",
			dest: "/music/aac",
			ext:  ".m4a",
			want: "/music/aac/artist/album/01 song.m4a",
		},
		{
			name: "no extension swap",
			path: "/music/flac/a.flac",
			base: "/music/flac",
			dest: "/music/ogg",
			ext:  "",
			want: "/music/ogg/a.flac",
		},
		{
			name: "only first base occurrence rewritten",
			path: "/data/flac/flac/a.flac",
			base: "/data/flac",
			dest: "/data/mp3",
			ext:  ".mp3",
			want: "/data/mp3/flac/a.mp3",
		},
		{
			name: "dots in directory names are preserved",
			path: "/music/flac/A.B. Artist/track.flac",
			base: "/music/flac",
			dest: "/music/aac",
			ext:  ".m4a",
			want: "/music/aac/A.B. Artist/track.m4a",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pathmap.Translate(tc.path, tc.base, tc.dest, tc.ext)
			if got != tc.want {
				t.Fatalf("Translate(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestInvertRoundTrips(t *testing.T) {
	base := "/music/flac"
	dest := "/music/aac"
	paths := []string{
		"/music/flac/artist/album/01 track.flac",
		"/music/flac/single.flac",
		"/music/flac/deep/nested/dirs/a b c.flac",
	}
	for _, p := range paths {
		mapped := pathmap.Translate(p, base, dest, ".m4a")
		back := pathmap.Invert(mapped, base, dest, ".flac")
		if back != p {
			t.Fatalf("round trip of %q: got %q via %q", p, back, mapped)
		}
	}
}
