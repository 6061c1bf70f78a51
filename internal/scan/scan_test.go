package scan_test

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"flacmirror/internal/scan"
	"flacmirror/internal/testsupport"
)

func sourceTree(t *testing.T) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "flac")
	now := time.Now()
	for _, rel := range []string{
		"albumA/01 one.flac",
		"albumA/02 two.flac",
		"albumB/01 other.flac",
		"albumB/notes.txt",
	} {
		testsupport.WriteFileAt(t, filepath.Join(base, rel), now)
	}
	return base
}

func TestSourcesCollectsOnlyFlacFiles(t *testing.T) {
	base := sourceTree(t)

	files, err := scan.Sources(base, nil)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	sort.Strings(files)

	want := []string{
		filepath.Join(base, "albumA", "01 one.flac"),
		filepath.Join(base, "albumA", "02 two.flac"),
		filepath.Join(base, "albumB", "01 other.flac"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestSourcesHonorsFilters(t *testing.T) {
	base := sourceTree(t)

	filters, err := scan.NormalizeFilters(base, []string{"albumA"})
	if err != nil {
		t.Fatalf("NormalizeFilters: %v", err)
	}
	files, err := scan.Sources(base, filters)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("filter albumA should keep 2 files, got %v", files)
	}
	for _, f := range files {
		if filepath.Dir(f) != filepath.Join(base, "albumA") {
			t.Fatalf("file outside filter: %s", f)
		}
	}
}

func TestFilterPrefixDoesNotMatchSiblings(t *testing.T) {
	base := filepath.Join(t.TempDir(), "flac")
	now := time.Now()
	testsupport.WriteFileAt(t, filepath.Join(base, "album", "a.flac"), now)
	testsupport.WriteFileAt(t, filepath.Join(base, "album-deluxe", "b.flac"), now)

	filters, err := scan.NormalizeFilters(base, []string{"album"})
	if err != nil {
		t.Fatal(err)
	}
	files, err := scan.Sources(base, filters)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.flac" {
		t.Fatalf("directory filter must not match sibling prefix: %v", files)
	}
}

func TestNormalizeFiltersRejectsUnknownPaths(t *testing.T) {
	base := sourceTree(t)
	if _, err := scan.NormalizeFilters(base, []string{"no-such-album"}); err == nil {
		t.Fatal("expected fatal error for unresolvable filter")
	}
}

func TestNormalizeFiltersDeduplicates(t *testing.T) {
	base := sourceTree(t)
	filters, err := scan.NormalizeFilters(base, []string{"albumA", "albumA"})
	if err != nil {
		t.Fatal(err)
	}
	if len(filters) != 1 {
		t.Fatalf("expected dedup to 1 filter, got %v", filters)
	}
}
