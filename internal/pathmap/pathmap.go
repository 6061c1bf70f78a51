// Package pathmap translates paths between the source tree and the
// mirrored destination tree.
//
// The mapping is a pure string transform: the leading base directory is
// rewritten to the destination directory and the file extension is
// swapped. No index is kept on disk; every destination path is derivable
// from exactly one source path and vice versa.
package pathmap

import (
	"path/filepath"
	"strings"
)

// Translate rewrites the leading baseDir prefix of path to destDir (first
// occurrence only) and replaces the extension with newExt when newExt is
// non-empty. newExt must include the leading dot.
//
// Callers guarantee that path starts with baseDir; inputs are always
// discovered under baseDir, so the precondition holds by construction.
func Translate(path, baseDir, destDir, newExt string) string {
	if baseDir != "" && destDir != "" {
		path = strings.Replace(path, baseDir, destDir, 1)
	}
	if newExt != "" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + newExt
	}
	return path
}

// Invert maps a destination path back to its hypothetical source path.
// It is Translate with the directory arguments reversed, restoring the
// source extension.
func Invert(path, baseDir, destDir, srcExt string) string {
	return Translate(path, destDir, baseDir, srcExt)
}
