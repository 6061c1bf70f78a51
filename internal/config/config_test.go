package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flacmirror/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved == "" {
		t.Fatal("expected resolved default path")
	}
	def := config.Default()
	if cfg.Encoder.Type != def.Encoder.Type || cfg.Sync.Threads != def.Sync.Threads {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if !cfg.Sync.DeleteOrphans {
		t.Fatal("orphan pruning should default to on")
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[encoder]\ntype = \"ogg\"\nogg_quality = \"8\"\n\n[sync]\nthreads = 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected file to exist")
	}
	if cfg.Encoder.Type != "ogg" || cfg.Encoder.OGGQuality != "8" || cfg.Sync.Threads != 2 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched sections keep their defaults.
	if cfg.Encoder.AACQuality != "0.35" || cfg.Logging.Level != "info" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Quality() != "8" {
		t.Fatalf("Quality() = %q, want ogg value", cfg.Quality())
	}
}

func TestLoadExplicitMissingPathIsError(t *testing.T) {
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicitly named missing config must error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad type", func(c *config.Config) { c.Encoder.Type = "wav" }, "encoder.type"},
		{"aac out of range", func(c *config.Config) { c.Encoder.AACQuality = "1.5" }, "aac_quality"},
		{"ogg not a number", func(c *config.Config) { c.Encoder.OGGQuality = "loud" }, "ogg_quality"},
		{"mp3 out of range", func(c *config.Config) { c.Encoder.MP3Quality = "12" }, "mp3_quality"},
		{"zero threads", func(c *config.Config) { c.Sync.Threads = 0 }, "sync.threads"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err, tc.want)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestSampleParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("WriteSample must refuse to overwrite")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("Load sample: exists=%v err=%v", exists, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config must validate: %v", err)
	}
}
