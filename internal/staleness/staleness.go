// Package staleness decides whether a destination artifact must be
// regenerated from its source.
//
// A destination is stale when it is absent or strictly older than the
// source. A missing source is a precondition violation, never a
// staleness verdict: by the time the oracle is consulted the source has
// already been discovered on disk.
package staleness

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/djherbis/times"
)

// ErrSourceMissing reports that the first argument to Newer did not
// exist. Callers treat this as a programming error.
var ErrSourceMissing = errors.New("staleness: source file does not exist")

// Newer reports whether dst must be (re)produced from src: true when dst
// is absent or src's modification time strictly exceeds dst's. src must
// exist.
func Newer(src, dst string) (bool, error) {
	srcTimes, err := times.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return false, fmt.Errorf("stat %s: %w", src, err)
	}

	dstTimes, err := times.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", dst, err)
	}

	return srcTimes.ModTime().After(dstTimes.ModTime()), nil
}
