package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"flacmirror/internal/encoder"
)

// syncFlags carries every command-line override for one sync pass.
type syncFlags struct {
	configPath    string
	threads       int
	force         bool
	encType       string
	ignoreOrphans bool
	purgeOrphans  bool
	destDir       string
	aacQuality    string
	oggQuality    string
	mp3Quality    string
	logLevel      string
	logFormat     string
}

func newRootCommand() *cobra.Command {
	flags := &syncFlags{}

	rootCmd := &cobra.Command{
		Use:   "flacmirror [flags] BASE_DIR [SOURCE ...]",
		Short: "Mirror a FLAC tree into a transcoded AAC/OGG/MP3 tree",
		Long: strings.TrimSpace(`
Recursively mirror a directory tree of FLAC audio files into a parallel
tree of transcoded, tagged output files. Only missing or out-of-date
destinations are re-encoded, and orphaned outputs can be pruned.

BASE_DIR is the root of the FLAC hierarchy. The default output
directory is a sibling of BASE_DIR named after the output format (for
BASE_DIR /data/flac and AAC output, /data/aac).

SOURCE arguments optionally restrict the run to sub-directories or
files, given relative to BASE_DIR or the working directory.`),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("BASE_DIR is required")
			}
			return runSync(cmd, flags, args[0], args[1:])
		},
	}

	registerSyncFlags(rootCmd.Flags(), flags)

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDepsCommand())

	return rootCmd
}

func registerSyncFlags(fs *pflag.FlagSet, flags *syncFlags) {
	fs.StringVar(&flags.configPath, "config", "", "configuration file path")
	fs.IntVarP(&flags.threads, "threads", "c", 0, "max number of encoding workers (default: host core count)")
	fs.BoolVarP(&flags.force, "force", "f", false, "re-encode every source file even when the destination is up to date")
	fs.StringVarP(&flags.encType, "type", "t", "", fmt.Sprintf("output transcode format: %s", strings.Join(encoder.Formats(), ", ")))
	fs.BoolVarP(&flags.ignoreOrphans, "ignore-orphans", "o", false, "keep destination files that have no corresponding source file")
	fs.BoolVar(&flags.purgeOrphans, "purge-orphans", false, "remove orphaned destination files without prompting")
	fs.StringVarP(&flags.destDir, "destination", "d", "", "alternate destination directory")
	fs.StringVarP(&flags.aacQuality, "aac-quality", "q", "", "AAC encoder quality, float 0..1")
	fs.StringVarP(&flags.oggQuality, "ogg-quality", "g", "", "Ogg Vorbis encoder quality, float -1..10")
	fs.StringVarP(&flags.mp3Quality, "mp3-quality", "m", "", "Lame MP3 encoder quality, integer 9..0")
	fs.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&flags.logFormat, "log-format", "", "log format: console or json")
}
