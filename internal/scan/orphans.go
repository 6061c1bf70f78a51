package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"flacmirror/internal/pathmap"
)

// Orphans walks destDir and returns every file that has no live source
// counterpart: the hypothetical source path (destination reverse-mapped
// into baseDir with the source extension) does not exist on disk. When
// filters are given they are translated into destination space and act
// as inclusive prefixes.
//
// The result is collated for a stable prompt order; detection itself
// does not depend on ordering.
func Orphans(destDir, baseDir string, filters []string) ([]string, error) {
	destFilters := TranslateFilters(filters, baseDir, destDir)

	var (
		mu      sync.Mutex
		orphans []string
	)
	conf := &fastwalk.Config{Follow: true}
	err := fastwalk.Walk(conf, destDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if !matchesFilters(abs, destFilters) {
			return nil
		}
		src := pathmap.Invert(abs, baseDir, destDir, SourceExt)
		if _, err := os.Stat(src); err == nil {
			return nil
		}
		mu.Lock()
		orphans = append(orphans, abs)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", destDir, err)
	}

	collate.New(language.Und, collate.Numeric).SortStrings(orphans)
	return orphans, nil
}
