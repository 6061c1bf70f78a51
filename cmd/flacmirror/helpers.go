package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// resolveBaseDir validates the positional BASE_DIR argument: it must
// name an existing directory. Returned absolute.
func resolveBaseDir(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("BASE_DIR %q is not a valid path", arg)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("BASE_DIR %q is not a directory", arg)
	}
	return absolutePath(arg)
}

func absolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return abs, nil
}

// lockPathFor places the per-destination sync lock outside the mirror
// itself so the lock file never shows up as an orphan.
func lockPathFor(destDir string) string {
	sum := sha256.Sum256([]byte(destDir))
	name := fmt.Sprintf("flacmirror-%x.lock", sum[:8])
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), name)
	}
	dir := filepath.Join(cacheDir, "flacmirror")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), name)
	}
	return filepath.Join(dir, name)
}
