// Package metadata reads the tag field set flacmirror copies from FLAC
// sources into transcoded destinations.
package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Tags is the normalized field set carried from a FLAC source into the
// destination container. Absent fields stay zero-valued.
type Tags struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Composer    string
	Genre       string
	Comment     string
	Year        int
	Track       int
	TotalTracks int
	Disc        int
	TotalDiscs  int

	Compilation bool
	License     string
	Performer   string
	Copyright   string
	Description string

	// Replay-gain values as stored in the source vorbis comments,
	// e.g. "-8.25 dB" for gains and "0.988525" for peaks.
	TrackGain string
	TrackPeak string
	AlbumGain string
	AlbumPeak string
}

// Read extracts the tag set from the FLAC file at path.
func Read(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags from %s: %w", path, err)
	}
	return fromMetadata(m), nil
}

func fromMetadata(m tag.Metadata) Tags {
	track, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()
	raw := m.Raw()

	return Tags{
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		AlbumArtist: m.AlbumArtist(),
		Composer:    m.Composer(),
		Genre:       m.Genre(),
		Comment:     m.Comment(),
		Year:        m.Year(),
		Track:       track,
		TotalTracks: totalTracks,
		Disc:        disc,
		TotalDiscs:  totalDiscs,
		Compilation: rawString(raw, "compilation") == "1",
		License:     rawString(raw, "license"),
		Performer:   rawString(raw, "performer"),
		Copyright:   rawString(raw, "copyright"),
		Description: rawString(raw, "description"),
		TrackGain:   rawString(raw, "replaygain_track_gain"),
		TrackPeak:   rawString(raw, "replaygain_track_peak"),
		AlbumGain:   rawString(raw, "replaygain_album_gain"),
		AlbumPeak:   rawString(raw, "replaygain_album_peak"),
	}
}

func rawString(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// ParseDecibels parses a replay-gain string like "-8.25 dB" into its
// numeric decibel value.
func ParseDecibels(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty replay-gain value")
	}
	db, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse replay-gain %q: %w", s, err)
	}
	return db, nil
}
