package encoder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"

	"flacmirror/internal/fileutil"
	"flacmirror/internal/metadata"
)

// mp3Converter transcodes to MP3 via lame and writes ID3v2 tags
// in-process. Replay-gain values are carried through as TXXX frames.
type mp3Converter struct {
	job
}

func (c *mp3Converter) Encode(ctx context.Context, force bool) (bool, error) {
	run, err := c.shouldEncode(force)
	if err != nil || !run {
		return false, err
	}
	if err := fileutil.EnsureParentDir(c.dst); err != nil {
		return false, err
	}
	err = runPipeline(ctx, c.dst,
		command{"flac", []string{"-d", "-c", "-s", c.src}},
		command{"lame", []string{"--quiet", "-V", c.quality, "-", c.dst}},
	)
	if err != nil {
		return false, fmt.Errorf("mp3 encode: %w", err)
	}
	return true, nil
}

func (c *mp3Converter) Tag(ctx context.Context, tags metadata.Tags) error {
	id3, err := id3v2.Open(c.dst, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("mp3 tag: open %s: %w", c.dst, err)
	}
	defer id3.Close()

	enc := id3v2.EncodingUTF8
	id3.SetDefaultEncoding(enc)

	setText := func(id, value string) {
		if value != "" {
			id3.AddTextFrame(id, enc, value)
		}
	}

	id3.SetTitle(tags.Title)
	id3.SetArtist(tags.Artist)
	id3.SetAlbum(tags.Album)
	id3.SetGenre(tags.Genre)
	if tags.Year > 0 {
		id3.SetYear(strconv.Itoa(tags.Year))
	}
	setText("TPE2", tags.AlbumArtist)
	setText("TCOM", tags.Composer)
	setText("TCOP", tags.Copyright)
	setText("TRCK", numbering(tags.Track, tags.TotalTracks))
	setText("TPOS", numbering(tags.Disc, tags.TotalDiscs))
	if tags.Compilation {
		setText("TCMP", "1")
	}
	if tags.Comment != "" {
		id3.AddCommentFrame(id3v2.CommentFrame{
			Encoding: enc,
			Language: "eng",
			Text:     tags.Comment,
		})
	}

	userText := func(description, value string) {
		if value != "" {
			id3.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
				Encoding:    enc,
				Description: description,
				Value:       value,
			})
		}
	}
	userText("REPLAYGAIN_TRACK_GAIN", tags.TrackGain)
	userText("REPLAYGAIN_TRACK_PEAK", tags.TrackPeak)
	userText("REPLAYGAIN_ALBUM_GAIN", tags.AlbumGain)
	userText("REPLAYGAIN_ALBUM_PEAK", tags.AlbumPeak)
	userText("LICENSE", tags.License)
	userText("PERFORMER", tags.Performer)
	userText("DESCRIPTION", tags.Description)

	if err := id3.Save(); err != nil {
		return fmt.Errorf("mp3 tag: save %s: %w", c.dst, err)
	}
	return nil
}

func (c *mp3Converter) SetCover(ctx context.Context, force bool) error {
	run, err := c.shouldSetCover(force)
	if err != nil || !run {
		return err
	}
	thumb, err := Thumbnail(c.cover)
	if err != nil {
		return err
	}

	id3, err := id3v2.Open(c.dst, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("mp3 cover: open %s: %w", c.dst, err)
	}
	defer id3.Close()

	id3.DeleteFrames(id3.CommonID("Attached picture"))
	id3.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Picture:     thumb.Data,
	})
	if err := id3.Save(); err != nil {
		return fmt.Errorf("mp3 cover: save %s: %w", c.dst, err)
	}
	return nil
}

// numbering renders "n" or "n/total" for TRCK/TPOS frames.
func numbering(n, total int) string {
	if n <= 0 {
		return ""
	}
	if total > 0 {
		return fmt.Sprintf("%d/%d", n, total)
	}
	return strconv.Itoa(n)
}
