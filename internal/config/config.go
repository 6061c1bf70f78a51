package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sync holds run-wide knobs.
type Sync struct {
	Threads       int  `toml:"threads"`
	DeleteOrphans bool `toml:"delete_orphans"`
}

// Encoder selects the output format and per-format quality values.
type Encoder struct {
	Type       string `toml:"type"`
	AACQuality string `toml:"aac_quality"`
	OGGQuality string `toml:"ogg_quality"`
	MP3Quality string `toml:"mp3_quality"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full flacmirror configuration.
type Config struct {
	Sync    Sync    `toml:"sync"`
	Encoder Encoder `toml:"encoder"`
	Logging Logging `toml:"logging"`
}

// Quality returns the quality value for the selected output format.
func (c *Config) Quality() string {
	switch c.Encoder.Type {
	case "aac":
		return c.Encoder.AACQuality
	case "ogg":
		return c.Encoder.OGGQuality
	case "mp3":
		return c.Encoder.MP3Quality
	default:
		return ""
	}
}

// DefaultConfigPath returns the user-level config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "flacmirror", "config.toml"), nil
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file is not an error: defaults are returned
// with exists=false so callers can report where the file would live.
func Load(path string) (*Config, string, bool, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		var err error
		resolved, err = DefaultConfigPath()
		if err != nil {
			return nil, "", false, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && strings.TrimSpace(path) == "" {
			return &cfg, resolved, false, nil
		}
		return nil, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return &cfg, resolved, true, nil
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
