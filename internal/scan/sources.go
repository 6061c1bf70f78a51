package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// SourceExt is the extension of lossless input files.
const SourceExt = ".flac"

// Sources recursively walks baseDir (following symbolic links) and
// returns the absolute paths of all FLAC files, restricted to the
// normalized filter prefixes when filters is non-empty. Ordering is
// filesystem-walk order and not stable across runs; callers must not
// depend on it for correctness.
func Sources(baseDir string, filters []string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := &fastwalk.Config{Follow: true}
	err := fastwalk.Walk(conf, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal; the run
			// proceeds with whatever is reachable.
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if !matchesFilters(abs, filters) {
			return nil
		}
		mu.Lock()
		files = append(files, abs)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", baseDir, err)
	}
	return files, nil
}
