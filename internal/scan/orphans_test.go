package scan_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flacmirror/internal/pathmap"
	"flacmirror/internal/scan"
	"flacmirror/internal/testsupport"
)

// mirrorPair builds a source tree and a destination tree where every
// destination path is produced by the mapper itself.
func mirrorPair(t *testing.T, srcRel []string, extraDest []string) (base, dest string) {
	t.Helper()
	root := t.TempDir()
	base = filepath.Join(root, "flac")
	dest = filepath.Join(root, "aac")
	now := time.Now()
	for _, rel := range srcRel {
		src := filepath.Join(base, rel)
		testsupport.WriteFileAt(t, src, now)
		testsupport.WriteFileAt(t, pathmap.Translate(src, base, dest, ".m4a"), now)
	}
	for _, rel := range extraDest {
		testsupport.WriteFileAt(t, filepath.Join(dest, rel), now)
	}
	return base, dest
}

func TestOrphansNeverReportsMappedPairs(t *testing.T) {
	base, dest := mirrorPair(t,
		[]string{"albumA/01.flac", "albumA/02.flac", "albumB/01.flac"},
		[]string{"albumC/orphan.m4a"},
	)

	orphans, err := scan.Orphans(dest, base, nil)
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if len(orphans) != 1 {
		t.Fatalf("expected exactly the orphan, got %v", orphans)
	}
	if filepath.Base(orphans[0]) != "orphan.m4a" {
		t.Fatalf("unexpected orphan: %v", orphans)
	}
}

func TestOrphansRespectsSourceFilters(t *testing.T) {
	base, dest := mirrorPair(t,
		[]string{"albumA/01.flac"},
		[]string{"albumA/gone.m4a", "albumB/gone.m4a"},
	)

	filters := []string{filepath.Join(base, "albumA")}
	orphans, err := scan.Orphans(dest, base, filters)
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if len(orphans) != 1 || !strings.Contains(orphans[0], "albumA") {
		t.Fatalf("filter albumA should restrict orphans, got %v", orphans)
	}
}

func TestPrunerInteractiveAnswers(t *testing.T) {
	base, dest := mirrorPair(t, nil, []string{
		"a/1.m4a", "a/2.m4a", "a/3.m4a",
	})

	// Keep the first, then remove everything remaining via "all".
	p := &scan.Pruner{
		In:     strings.NewReader("no\nall\n"),
		Out:    &strings.Builder{},
		Logger: testsupport.DiscardLogger(),
	}
	removed, err := p.Prune(dest, base, nil)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, err := os.Stat(filepath.Join(dest, "a", "1.m4a")); err != nil {
		t.Fatal("declined orphan must stay on disk")
	}
	if _, err := os.Stat(filepath.Join(dest, "a", "2.m4a")); err == nil {
		t.Fatal("accepted orphan should be gone")
	}
}

func TestPrunerNoneAbortsImmediately(t *testing.T) {
	base, dest := mirrorPair(t, nil, []string{"a/1.m4a", "a/2.m4a"})

	var out strings.Builder
	p := &scan.Pruner{
		In:     strings.NewReader("none\n"),
		Out:    &out,
		Logger: testsupport.DiscardLogger(),
	}
	removed, err := p.Prune(dest, base, nil)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if got := strings.Count(out.String(), "remove orphan"); got != 1 {
		t.Fatalf("\"none\" must short-circuit without visiting the rest; %d prompts", got)
	}
}

func TestPrunerDefaultsToYesOnEmptyInput(t *testing.T) {
	base, dest := mirrorPair(t, nil, []string{"a/1.m4a"})

	p := &scan.Pruner{
		In:     strings.NewReader("\n"),
		Out:    &strings.Builder{},
		Logger: testsupport.DiscardLogger(),
	}
	removed, err := p.Prune(dest, base, nil)
	if err != nil || removed != 1 {
		t.Fatalf("empty input should confirm removal: removed=%d err=%v", removed, err)
	}
}

func TestPrunerForceRemovesWithoutPrompting(t *testing.T) {
	base, dest := mirrorPair(t,
		[]string{"albumA/keep.flac"},
		[]string{"albumA/gone.m4a", "empty-album/gone.m4a"},
	)

	var out strings.Builder
	p := &scan.Pruner{
		In:     strings.NewReader(""),
		Out:    &out,
		Force:  true,
		Logger: testsupport.DiscardLogger(),
	}
	removed, err := p.Prune(dest, base, nil)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if out.Len() != 0 {
		t.Fatalf("forced prune must not prompt: %q", out.String())
	}

	// The emptied album directory is swept; the destination root and
	// directories with live files survive.
	if _, err := os.Stat(filepath.Join(dest, "empty-album")); err == nil {
		t.Fatal("emptied directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(dest, "albumA")); err != nil {
		t.Fatal("directory with live files must survive the sweep")
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatal("destination root must never be removed")
	}
}
