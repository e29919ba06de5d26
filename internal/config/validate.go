package config

import (
	"errors"
	"fmt"

	"voxnote/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	if t.Model == "" {
		return errors.New("transcription.model must be set")
	}
	if err := language.Validate(t.Language); err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	switch t.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("transcription.device must be \"cpu\" or \"cuda\", got %q", t.Device)
	}
	if t.Runner == "" {
		return errors.New("transcription.runner must be set")
	}
	if t.BatchSize < 0 {
		return errors.New("transcription.batch_size must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
