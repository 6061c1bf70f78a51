package encoder

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"flacmirror/internal/fileutil"
	"flacmirror/internal/metadata"
)

// aacConverter transcodes to AAC via neroAacEnc and tags with
// neroAacTag. Replay-gain is translated to iTunes Sound Check.
type aacConverter struct {
	job
}

func (c *aacConverter) Encode(ctx context.Context, force bool) (bool, error) {
	run, err := c.shouldEncode(force)
	if err != nil || !run {
		return false, err
	}
	if err := fileutil.EnsureParentDir(c.dst); err != nil {
		return false, err
	}
	err = runPipeline(ctx, c.dst,
		command{"flac", []string{"-d", "-c", "-s", c.src}},
		command{"neroAacEnc", []string{"-q", c.quality, "-if", "-", "-of", c.dst}},
	)
	if err != nil {
		return false, fmt.Errorf("aac encode: %w", err)
	}
	return true, nil
}

func (c *aacConverter) Tag(ctx context.Context, tags metadata.Tags) error {
	args := append([]string{c.dst}, aacMetaArgs(tags)...)
	if err := runTool(ctx, "neroAacTag", args...); err != nil {
		return fmt.Errorf("aac tag: %w", err)
	}
	return nil
}

func (c *aacConverter) SetCover(ctx context.Context, force bool) error {
	run, err := c.shouldSetCover(force)
	if err != nil || !run {
		return err
	}
	thumb, err := Thumbnail(c.cover)
	if err != nil {
		return err
	}
	tmp, err := fileutil.WriteTemp("flacmirror-cover-*.jpg", thumb.Data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	err = runTool(ctx, "neroAacTag", c.dst, "-remove-cover:all", "-add-cover:front:"+tmp)
	if err != nil {
		return fmt.Errorf("aac cover: %w", err)
	}
	return nil
}

// aacMetaArgs renders the tag set as neroAacTag arguments, omitting
// absent fields.
func aacMetaArgs(tags metadata.Tags) []string {
	var args []string
	meta := func(field, value string) {
		if value != "" {
			args = append(args, fmt.Sprintf("-meta:%s=%s", field, value))
		}
	}
	metaInt := func(field string, value int) {
		if value > 0 {
			meta(field, strconv.Itoa(value))
		}
	}

	meta("artist", tags.Artist)
	meta("title", tags.Title)
	meta("album", tags.Album)
	meta("genre", tags.Genre)
	meta("composer", tags.Composer)
	meta("comment", tags.Comment)
	metaInt("year", tags.Year)
	metaInt("track", tags.Track)
	metaInt("totaltracks", tags.TotalTracks)
	metaInt("disc", tags.Disc)
	metaInt("totaldiscs", tags.TotalDiscs)
	if tags.AlbumArtist != "" {
		args = append(args, fmt.Sprintf("-meta-user:ALBUMARTIST=%s", tags.AlbumArtist))
	}
	if sc, err := soundCheck(tags.TrackGain); err == nil {
		args = append(args, fmt.Sprintf("-meta-user:iTunNORM=%s", sc))
	}
	return args
}
