package whisperx

import (
	"strings"

	"voxnote/internal/config"
)

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the WhisperX model to use (e.g., "small", "large-v3").
	Model string
	// Device is "cpu" or "cuda".
	Device string
	// ComputeType overrides the device default ("float32" on cpu).
	ComputeType string
	// Runner is the launcher binary; uvx resolves whisperx on demand.
	Runner string
	// BatchSize is forwarded as --batch_size when positive.
	BatchSize int
	// HFToken is exported to the child as HF_TOKEN when set.
	HFToken string
	// CacheDir receives downloaded models (HF_HOME).
	CacheDir string
}

// WhisperX configuration constants.
const (
	DefaultModel   = "small"
	CUDAIndexURL   = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL   = "https://pypi.org/simple"
	OutputFormat   = "json"
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	CPUComputeType = "float32"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)

// ConfigFromApp maps the application configuration onto engine settings.
func ConfigFromApp(cfg *config.Config) Config {
	if cfg == nil {
		return Config{}
	}
	return Config{
		Model:       cfg.Transcription.Model,
		Device:      cfg.Transcription.Device,
		ComputeType: cfg.Transcription.ComputeType,
		Runner:      cfg.Transcription.Runner,
		BatchSize:   cfg.Transcription.BatchSize,
		HFToken:     cfg.Transcription.HFToken,
		CacheDir:    cfg.ModelCacheDir(),
	}
}

func (c Config) model() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return DefaultModel
}

func (c Config) device() string {
	if strings.EqualFold(strings.TrimSpace(c.Device), CUDADevice) {
		return CUDADevice
	}
	return CPUDevice
}

func (c Config) runner() string {
	if r := strings.TrimSpace(c.Runner); r != "" {
		return r
	}
	return UVXCommand
}
