package config

import (
	"errors"
	"fmt"
	"strconv"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSync() error {
	if c.Sync.Threads < 1 {
		return errors.New("sync.threads must be at least 1")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	switch c.Encoder.Type {
	case "aac", "ogg", "mp3":
	default:
		return fmt.Errorf("encoder.type must be one of aac, ogg, mp3; got %q", c.Encoder.Type)
	}

	aac, err := strconv.ParseFloat(c.Encoder.AACQuality, 64)
	if err != nil || aac < 0 || aac > 1 {
		return fmt.Errorf("encoder.aac_quality must be a float in 0..1; got %q", c.Encoder.AACQuality)
	}
	ogg, err := strconv.ParseFloat(c.Encoder.OGGQuality, 64)
	if err != nil || ogg < -1 || ogg > 10 {
		return fmt.Errorf("encoder.ogg_quality must be a float in -1..10; got %q", c.Encoder.OGGQuality)
	}
	mp3, err := strconv.Atoi(c.Encoder.MP3Quality)
	if err != nil || mp3 < 0 || mp3 > 9 {
		return fmt.Errorf("encoder.mp3_quality must be an integer in 9..0; got %q", c.Encoder.MP3Quality)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	return nil
}
