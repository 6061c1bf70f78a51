package encoder

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // cover candidates are occasionally PNGs renamed to .jpg
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// coverNames lists album-cover candidate filenames in preferential
// order; the first match in a source directory wins.
var coverNames = []string{"cover.jpg", "folder.jpg", "front.jpg", "album.jpg"}

// thumbSize bounds cover thumbnails to this many pixels per side.
const thumbSize = 250

// FindCover returns the path of the first cover-art candidate present
// in dir, or "" when the directory holds none.
func FindCover(dir string) string {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Thumb is a resized cover image ready for embedding.
type Thumb struct {
	Data   []byte // JPEG-encoded
	Width  int
	Height int
}

// Thumbnail decodes the image at path and scales it down to fit within
// thumbSize on both axes, preserving aspect ratio. Images already small
// enough are re-encoded unscaled.
func Thumbnail(path string) (Thumb, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Thumb{}, fmt.Errorf("read cover %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Thumb{}, fmt.Errorf("decode cover %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > thumbSize || height > thumbSize {
		ratio := float64(width) / float64(height)
		if ratio >= 1 {
			width = thumbSize
			height = int(float64(thumbSize) / ratio)
		} else {
			height = thumbSize
			width = int(float64(thumbSize) * ratio)
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return Thumb{}, fmt.Errorf("encode thumbnail for %s: %w", path, err)
	}
	return Thumb{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// pictureBlock renders the thumbnail as a base64 FLAC
// METADATA_BLOCK_PICTURE structure, the representation vorbis comments
// use for embedded images.
func pictureBlock(thumb Thumb) string {
	var buf bytes.Buffer
	writeUint32 := func(v uint32) {
		_ = binary.Write(&buf, binary.BigEndian, v)
	}
	const frontCover = 3
	mime := "image/jpeg"

	writeUint32(frontCover)
	writeUint32(uint32(len(mime)))
	buf.WriteString(mime)
	writeUint32(0) // empty description
	writeUint32(uint32(thumb.Width))
	writeUint32(uint32(thumb.Height))
	writeUint32(24) // bits per pixel
	writeUint32(0)  // not an indexed image
	writeUint32(uint32(len(thumb.Data)))
	buf.Write(thumb.Data)

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
