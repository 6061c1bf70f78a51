package encoder

import (
	"context"
	"fmt"
	"path/filepath"

	"flacmirror/internal/metadata"
	"flacmirror/internal/pathmap"
	"flacmirror/internal/staleness"
)

// Supported output formats. The destination directory default and the
// destination extension derive from these names.
const (
	FormatAAC = "aac"
	FormatOGG = "ogg"
	FormatMP3 = "mp3"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatAAC, FormatOGG, FormatMP3}
}

// Ext returns the destination file extension for a format.
func Ext(format string) string {
	switch format {
	case FormatAAC:
		return ".m4a"
	case FormatOGG:
		return ".ogg"
	case FormatMP3:
		return ".mp3"
	default:
		return ""
	}
}

// Converter performs the per-file conversion steps for one output
// format: transcode, tag transfer, and cover embedding.
type Converter interface {
	Source() string
	Dest() string

	// SkipEncode reports that the destination postdates both the
	// source audio and (when present) the cover art, so the job needs
	// no work at all.
	SkipEncode() bool

	// Encode transcodes when force is set or the audio source is newer
	// than the destination. It reports whether work actually happened.
	Encode(ctx context.Context, force bool) (bool, error)

	// Tag copies the normalized field set into the destination
	// container. A no-op for formats whose encoder writes tags inline
	// during encode.
	Tag(ctx context.Context, tags metadata.Tags) error

	// SetCover embeds the resized cover thumbnail when the cover is
	// newer than the destination or force is set. A no-op when no
	// cover was resolved.
	SetCover(ctx context.Context, force bool) error
}

// Options configures converter construction for a run.
type Options struct {
	BaseDir string
	DestDir string
	Quality string
}

// New constructs the Converter variant for format, binding src to its
// mirrored destination path. Cover art is resolved once, here, and
// treated as immutable for the job's lifetime.
func New(format, src string, opts Options) (Converter, error) {
	switch format {
	case FormatAAC:
		return &aacConverter{newJob(src, Ext(FormatAAC), opts)}, nil
	case FormatOGG:
		return &oggConverter{newJob(src, Ext(FormatOGG), opts)}, nil
	case FormatMP3:
		return &mp3Converter{newJob(src, Ext(FormatMP3), opts)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// job carries the state shared by every converter variant. All fields
// are exclusively owned by the job and never shared across workers.
type job struct {
	src     string
	dst     string
	cover   string
	quality string
}

func newJob(src, ext string, opts Options) job {
	return job{
		src:     src,
		dst:     pathmap.Translate(src, opts.BaseDir, opts.DestDir, ext),
		cover:   FindCover(filepath.Dir(src)),
		quality: opts.Quality,
	}
}

func (j job) Source() string { return j.src }

func (j job) Dest() string { return j.dst }

// SkipEncode is queried once before scheduling; a stat error on either
// artifact counts as needs-work so the failure surfaces inside the job
// where it can be reported with file context.
func (j job) SkipEncode() bool {
	newer, err := staleness.Newer(j.src, j.dst)
	if err != nil || newer {
		return false
	}
	if j.cover != "" {
		coverNewer, err := staleness.Newer(j.cover, j.dst)
		if err != nil || coverNewer {
			return false
		}
	}
	return true
}

func (j job) shouldEncode(force bool) (bool, error) {
	if force {
		return true, nil
	}
	return staleness.Newer(j.src, j.dst)
}

func (j job) shouldSetCover(force bool) (bool, error) {
	if j.cover == "" {
		return false, nil
	}
	if force {
		return true, nil
	}
	return staleness.Newer(j.cover, j.dst)
}

// DestDirName returns the default destination directory for baseDir and
// format: a sibling of baseDir named after the format.
func DestDirName(baseDir, format string) string {
	return filepath.Join(filepath.Dir(baseDir), format)
}
