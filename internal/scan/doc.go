// Package scan walks the source and destination trees.
//
// It discovers FLAC input files under the base directory, normalizes the
// caller-supplied path filters that restrict a run to a subset of the
// library, and finds orphaned destination files whose source has been
// deleted or renamed. The interactive pruner that removes orphans also
// lives here because it shares the walk and filter logic.
package scan
