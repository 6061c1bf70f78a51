package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"flacmirror/internal/config"
	"flacmirror/internal/deps"
	"flacmirror/internal/dispatch"
	"flacmirror/internal/encoder"
	"flacmirror/internal/logging"
	"flacmirror/internal/scan"
)

func runSync(cmd *cobra.Command, flags *syncFlags, baseArg string, sources []string) error {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, flags, cmd); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	baseDir, err := resolveBaseDir(baseArg)
	if err != nil {
		return err
	}
	filters, err := scan.NormalizeFilters(baseDir, sources)
	if err != nil {
		return err
	}

	destDir := flags.destDir
	if destDir == "" {
		destDir = encoder.DestDirName(baseDir, cfg.Encoder.Type)
	}
	destDir, err = absolutePath(destDir)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logging.With(logger, logging.String("session", uuid.NewString()))

	statuses, err := deps.Verify(cfg.Encoder.Type)
	if err != nil {
		return fmt.Errorf("missing required tools: %w", err)
	}
	for _, status := range statuses {
		if !status.Available {
			logger.Warn("optional tool unavailable",
				logging.String("tool", status.Command),
				logging.String("detail", status.Detail))
		}
	}

	// One writer per mirror: a second run against the same destination
	// would race the first on staleness checks and partial outputs.
	lock := flock.New(lockPathFor(destDir))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire sync lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another flacmirror run is already writing to %s", destDir)
	}
	defer lock.Unlock() //nolint:errcheck

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("ensure destination %s: %w", destDir, err)
	}

	logger.Info("starting sync",
		logging.String("base", baseDir),
		logging.String("dest", destDir),
		logging.String("format", cfg.Encoder.Type),
		logging.Int("threads", cfg.Sync.Threads))

	started := time.Now()

	files, err := scan.Sources(baseDir, filters)
	if err != nil {
		return err
	}

	opts := encoder.Options{BaseDir: baseDir, DestDir: destDir, Quality: cfg.Quality()}
	var jobs []dispatch.Job
	skipped := 0
	for _, src := range files {
		conv, err := encoder.New(cfg.Encoder.Type, src, opts)
		if err != nil {
			return err
		}
		if !flags.force && conv.SkipEncode() {
			skipped++
			continue
		}
		jobs = append(jobs, conv)
	}

	orphansRemoved := 0
	if cfg.Sync.DeleteOrphans && !flags.ignoreOrphans {
		orphansRemoved, err = pruneOrphans(cmd, flags, logger, destDir, baseDir, filters)
		if err != nil {
			return err
		}
	}

	dispatcher := &dispatch.Dispatcher{
		Workers: cfg.Sync.Threads,
		Force:   flags.force,
		Logger:  logger,
		Out:     cmd.OutOrStdout(),
	}
	result, runErr := dispatcher.Run(cmd.Context(), jobs)

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result, skipped, orphansRemoved, time.Since(started)))

	if runErr != nil {
		return fmt.Errorf("%d of %d conversions failed", result.Failed, len(jobs))
	}
	return nil
}

func pruneOrphans(cmd *cobra.Command, flags *syncFlags, logger *slog.Logger, destDir, baseDir string, filters []string) (int, error) {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if !flags.purgeOrphans && !interactive {
		logger.Warn("stdin is not a terminal; skipping orphan pruning (use --purge-orphans to delete unattended)")
		return 0, nil
	}
	pruner := &scan.Pruner{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Force:  flags.purgeOrphans,
		Logger: logger,
	}
	return pruner.Prune(destDir, baseDir, filters)
}

// applyFlags overlays changed command-line flags onto the loaded
// configuration and rejects quality options given for a format other
// than the selected one.
func applyFlags(cfg *config.Config, flags *syncFlags, cmd *cobra.Command) error {
	fs := cmd.Flags()

	if fs.Changed("type") {
		cfg.Encoder.Type = flags.encType
	}
	if fs.Changed("threads") {
		cfg.Sync.Threads = flags.threads
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}

	qualityFlags := []struct {
		name   string
		format string
		value  string
		target *string
	}{
		{"aac-quality", encoder.FormatAAC, flags.aacQuality, &cfg.Encoder.AACQuality},
		{"ogg-quality", encoder.FormatOGG, flags.oggQuality, &cfg.Encoder.OGGQuality},
		{"mp3-quality", encoder.FormatMP3, flags.mp3Quality, &cfg.Encoder.MP3Quality},
	}
	for _, qf := range qualityFlags {
		if !fs.Changed(qf.name) {
			continue
		}
		if cfg.Encoder.Type != qf.format {
			return fmt.Errorf("option --%s is not allowed with the %s encoder", qf.name, cfg.Encoder.Type)
		}
		*qf.target = qf.value
	}
	return nil
}
