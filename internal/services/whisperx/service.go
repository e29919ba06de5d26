package whisperx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"voxnote/internal/language"
	"voxnote/internal/logging"
	"voxnote/internal/services"
)

// CommandRunner executes an external command. env holds extra KEY=VALUE
// entries appended to the parent environment.
type CommandRunner func(ctx context.Context, env []string, name string, args ...string) error

// Result is the outcome of one transcription.
type Result struct {
	// Text is the trimmed segment texts joined by single spaces.
	Text string
	// Language is the code WhisperX reports for the audio.
	Language string
}

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner CommandRunner
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisperx"),
	}
}

// Open prepares a service for use: the runner must be on PATH and the model
// cache directory must exist.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	svc := NewService(cfg, logger)
	if err := svc.prepare(); err != nil {
		return nil, err
	}
	svc.logger.Info("whisperx engine ready",
		logging.String("model", cfg.model()),
		logging.String("device", cfg.device()),
		logging.String("runner", cfg.runner()),
	)
	return svc, nil
}

func (s *Service) prepare() error {
	if _, err := exec.LookPath(s.cfg.runner()); err != nil {
		return services.Wrap(services.ErrConfiguration, "whisperx", "open",
			fmt.Sprintf("runner %q not found on PATH", s.cfg.runner()), err)
	}
	if dir := strings.TrimSpace(s.cfg.CacheDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrConfiguration, "whisperx", "open", "create model cache", err)
		}
	}
	return nil
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.model()
}

// Device returns the execution device.
func (s *Service) Device() string {
	return s.cfg.device()
}

// Close releases engine resources. WhisperX runs per call so nothing is held.
func (s *Service) Close() error {
	return nil
}

// Transcribe runs WhisperX on audioPath. An empty hint lets the engine detect
// the language.
func (s *Service) Transcribe(ctx context.Context, audioPath, hint string) (Result, error) {
	var result Result

	if strings.TrimSpace(audioPath) == "" {
		return result, services.Wrap(services.ErrValidation, "whisperx", "transcribe", "audio path required", nil)
	}

	outputDir, err := os.MkdirTemp("", "voxnote-whisperx-")
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "whisperx", "transcribe", "create output dir", err)
	}
	defer os.RemoveAll(outputDir)

	args := s.buildArgs(audioPath, outputDir, hint)
	s.logger.Debug("running whisperx",
		logging.String("audio", audioPath),
		logging.String("hint", hint),
	)
	if err := s.run(ctx, s.buildEnv(), s.cfg.runner(), args...); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "whisperx", "transcribe", "whisperx failed", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	payload, err := loadPayload(filepath.Join(outputDir, stem+".json"))
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "whisperx", "transcribe", "read transcript", err)
	}

	result.Text = joinSegments(payload.Segments)
	result.Language = strings.TrimSpace(payload.Language)
	return result, nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, env []string, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, env, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Env = append(os.Environ(), env...)

	if output, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s: %w: %s", name, err, lastLines(string(output), 5))
	}
	return nil
}

func (s *Service) buildEnv() []string {
	var env []string
	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		env = append(env, "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	if dir := strings.TrimSpace(s.cfg.CacheDir); dir != "" {
		env = append(env, "HF_HOME="+dir)
	}
	if token := strings.TrimSpace(s.cfg.HFToken); token != "" {
		env = append(env, "HF_TOKEN="+token)
	}
	return env
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, hint string) []string {
	args := make([]string, 0, 24)

	if s.cfg.device() == CUDADevice {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.cfg.model(),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--device", s.cfg.device(),
	)

	if s.cfg.BatchSize > 0 {
		args = append(args, "--batch_size", strconv.Itoa(s.cfg.BatchSize))
	}

	computeType := strings.TrimSpace(s.cfg.ComputeType)
	if computeType == "" && s.cfg.device() == CPUDevice {
		computeType = CPUComputeType
	}
	if computeType != "" {
		args = append(args, "--compute_type", computeType)
	}

	if lang := language.Hint(hint); lang != "" {
		args = append(args, "--language", lang)
	}

	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// payload is the JSON structure from WhisperX output.
type payload struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

func loadPayload(jsonPath string) (payload, error) {
	var p payload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, fmt.Errorf("whisperx produced no output at %s", jsonPath)
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse whisperx json: %w", err)
	}
	return p, nil
}

func joinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
