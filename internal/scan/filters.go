package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flacmirror/internal/pathmap"
)

// NormalizeFilters resolves each caller-supplied filter to an absolute
// path. A filter is tried first as given (relative to the working
// directory), then joined under baseDir. A filter that resolves to
// neither is a configuration error, reported before any scanning
// begins.
func NormalizeFilters(baseDir string, filters []string) ([]string, error) {
	seen := make(map[string]struct{}, len(filters))
	normalized := make([]string, 0, len(filters))
	for _, f := range filters {
		resolved, err := resolveFilter(baseDir, f)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		normalized = append(normalized, resolved)
	}
	sort.Strings(normalized)
	return normalized, nil
}

func resolveFilter(baseDir, filter string) (string, error) {
	if _, err := os.Stat(filter); err == nil {
		return filepath.Abs(filter)
	}
	joined := filepath.Join(baseDir, filter)
	if _, err := os.Stat(joined); err == nil {
		return filepath.Abs(joined)
	}
	return "", fmt.Errorf("filter path %q does not exist (tried %q and %q)", filter, filter, joined)
}

// TranslateFilters rewrites source-space filters into destination-space
// prefixes for restricting the orphan walk.
func TranslateFilters(filters []string, baseDir, destDir string) []string {
	if len(filters) == 0 {
		return nil
	}
	translated := make([]string, 0, len(filters))
	for _, f := range filters {
		translated = append(translated, pathmap.Translate(f, baseDir, destDir, ""))
	}
	return translated
}

// matchesFilters reports whether path falls under any filter prefix.
// An empty filter list matches everything.
func matchesFilters(path string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if path == f || strings.HasPrefix(path, f+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
