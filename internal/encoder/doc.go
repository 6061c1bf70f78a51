// Package encoder converts single FLAC files into their mirrored
// destination artifacts.
//
// A Converter binds one source file to its destination path, resolved
// cover art, and format-specific quality value. One implementation
// exists per output format (AAC, OGG, MP3); the set is closed and
// selected once at configuration time. External tools (flac, neroAacEnc,
// neroAacTag, oggenc, vorbiscomment, lame) do the audio work; their
// non-zero exits surface as errors carrying the captured stderr, and a
// cancelled encode removes the partially written destination before
// returning.
package encoder
