package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

// normalizeTranscription applies environment overrides and trims values.
// VOXNOTE_MODEL, VOXNOTE_LANGUAGE and VOXNOTE_DEVICE win over the file;
// HF_TOKEN is only a fallback for an unset hf_token.
func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	if value, ok := lookupEnv("VOXNOTE_MODEL"); ok {
		t.Model = value
	}
	if value, ok := lookupEnv("VOXNOTE_LANGUAGE"); ok {
		t.Language = value
	}
	if value, ok := lookupEnv("VOXNOTE_DEVICE"); ok {
		t.Device = value
	}
	if strings.TrimSpace(t.HFToken) == "" {
		if value, ok := lookupEnv("HF_TOKEN"); ok {
			t.HFToken = value
		}
	}

	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = defaultModel
	}
	t.Language = strings.TrimSpace(t.Language)
	if t.Language == "" {
		t.Language = defaultLanguage
	}
	t.Device = strings.ToLower(strings.TrimSpace(t.Device))
	if t.Device == "" {
		t.Device = defaultDevice
	}
	t.ComputeType = strings.TrimSpace(t.ComputeType)
	t.Runner = strings.TrimSpace(t.Runner)
	if t.Runner == "" {
		t.Runner = defaultRunner
	}
	if t.BatchSize == 0 {
		t.BatchSize = defaultBatchSize
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}
