package encoder

import (
	"context"
	"fmt"

	"flacmirror/internal/fileutil"
	"flacmirror/internal/metadata"
)

// oggConverter transcodes to Ogg Vorbis via oggenc, which copies the
// source vorbis comments inline during the encode.
type oggConverter struct {
	job
}

func (c *oggConverter) Encode(ctx context.Context, force bool) (bool, error) {
	run, err := c.shouldEncode(force)
	if err != nil || !run {
		return false, err
	}
	if err := fileutil.EnsureParentDir(c.dst); err != nil {
		return false, err
	}
	err = runPipeline(ctx, c.dst,
		command{"oggenc", []string{"-Q", "-q", c.quality, "-o", c.dst, c.src}},
	)
	if err != nil {
		return false, fmt.Errorf("ogg encode: %w", err)
	}
	return true, nil
}

// Tag is a no-op: oggenc transfers FLAC vorbis comments, replay-gain
// fields included, while encoding.
func (c *oggConverter) Tag(ctx context.Context, tags metadata.Tags) error {
	return nil
}

func (c *oggConverter) SetCover(ctx context.Context, force bool) error {
	run, err := c.shouldSetCover(force)
	if err != nil || !run {
		return err
	}
	thumb, err := Thumbnail(c.cover)
	if err != nil {
		return err
	}
	comment := "METADATA_BLOCK_PICTURE=" + pictureBlock(thumb)
	if err := runTool(ctx, "vorbiscomment", "-a", "-t", comment, c.dst); err != nil {
		return fmt.Errorf("ogg cover: %w", err)
	}
	return nil
}
