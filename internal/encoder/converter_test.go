package encoder

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFileAt(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("flacmirror test payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("wav", "/music/flac/a.flac", Options{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewMapsDestinationPerFormat(t *testing.T) {
	opts := Options{BaseDir: "/music/flac", DestDir: "/music/out", Quality: "0.35"}
	for format, want := range map[string]string{
		FormatAAC: "/music/out/album/a.m4a",
		FormatOGG: "/music/out/album/a.ogg",
		FormatMP3: "/music/out/album/a.mp3",
	} {
		conv, err := New(format, "/music/flac/album/a.flac", opts)
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if conv.Dest() != want {
			t.Fatalf("New(%s) dest = %q, want %q", format, conv.Dest(), want)
		}
	}
}

func TestSkipEncodeLifecycle(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "flac")
	dest := filepath.Join(dir, "aac")
	src := filepath.Join(base, "album", "a.flac")
	t1 := time.Now().Add(-time.Hour)

	writeFileAt(t, src, t1)
	conv, err := New(FormatAAC, src, Options{BaseDir: base, DestDir: dest, Quality: "0.35"})
	if err != nil {
		t.Fatal(err)
	}

	// No destination yet: work needed.
	if conv.SkipEncode() {
		t.Fatal("expected SkipEncode=false with absent destination")
	}

	// Destination postdating the source: no work.
	writeFileAt(t, conv.Dest(), t1.Add(time.Minute))
	if !conv.SkipEncode() {
		t.Fatal("expected SkipEncode=true with fresh destination")
	}

	// Source touched after the destination was produced.
	writeFileAt(t, src, t1.Add(2*time.Minute))
	if conv.SkipEncode() {
		t.Fatal("expected SkipEncode=false after source mtime bump")
	}
}

func TestSkipEncodeConsidersCover(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "flac")
	dest := filepath.Join(dir, "ogg")
	src := filepath.Join(base, "album", "a.flac")
	cover := filepath.Join(base, "album", "cover.jpg")
	t1 := time.Now().Add(-time.Hour)

	writeFileAt(t, src, t1)
	writeFileAt(t, cover, t1)
	conv, err := New(FormatOGG, src, Options{BaseDir: base, DestDir: dest, Quality: "5"})
	if err != nil {
		t.Fatal(err)
	}
	writeFileAt(t, conv.Dest(), t1.Add(time.Minute))

	if !conv.SkipEncode() {
		t.Fatal("expected SkipEncode=true when destination postdates audio and cover")
	}

	// A cover newer than the destination forces a rebuild even though
	// the audio is unchanged.
	writeFileAt(t, cover, t1.Add(2*time.Minute))
	if conv.SkipEncode() {
		t.Fatal("expected SkipEncode=false after cover mtime bump")
	}
}

func TestFindCoverPrefersOrder(t *testing.T) {
	dir := t.TempDir()
	writeFileAt(t, filepath.Join(dir, "album.jpg"), time.Now())
	writeFileAt(t, filepath.Join(dir, "folder.jpg"), time.Now())

	if got := FindCover(dir); got != filepath.Join(dir, "folder.jpg") {
		t.Fatalf("FindCover = %q, want folder.jpg preferred over album.jpg", got)
	}
	if got := FindCover(t.TempDir()); got != "" {
		t.Fatalf("FindCover on empty dir = %q, want empty", got)
	}
}

func TestDestDirName(t *testing.T) {
	if got := DestDirName("/data/flac", FormatAAC); got != "/data/aac" {
		t.Fatalf("DestDirName = %q", got)
	}
}
