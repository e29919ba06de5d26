package transcription

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"voxnote/internal/config"
	"voxnote/internal/language"
	"voxnote/internal/logging"
	"voxnote/internal/services/whisperx"
)

// Engine is an opened speech-to-text engine.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, hint string) (whisperx.Result, error)
	Close() error
}

// Opener loads an engine. It is called on first use and again after a
// failed attempt.
type Opener func(ctx context.Context) (Engine, error)

// Options describe the engine for log output.
type Options struct {
	Model  string
	Device string
}

// Gateway hands audio to a lazily opened engine and reports text plus the
// detected language. It is safe for concurrent use.
type Gateway struct {
	opener Opener
	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	engine Engine
}

// New constructs a gateway around opener. The engine is not opened until the
// first Transcribe call.
func New(opener Opener, opts Options, logger *slog.Logger) *Gateway {
	return &Gateway{
		opener: opener,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "transcription"),
	}
}

// NewWhisperX builds a gateway backed by the WhisperX service.
func NewWhisperX(cfg *config.Config, logger *slog.Logger) *Gateway {
	engineCfg := whisperx.ConfigFromApp(cfg)
	opener := func(ctx context.Context) (Engine, error) {
		svc, err := whisperx.Open(ctx, engineCfg, logger)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	svc := whisperx.NewService(engineCfg, nil)
	return New(opener, Options{Model: svc.Model(), Device: svc.Device()}, logger)
}

// Transcribe returns the transcript of audioPath and the language the engine
// detected. A preference of "auto" (or blank) lets the engine detect the
// language; any other value is forwarded as a hint. The engine's reported
// language is returned as is; the hint is used only when the engine reports
// none.
func (g *Gateway) Transcribe(ctx context.Context, audioPath, languagePreference string) (string, string, error) {
	engine, err := g.ensureEngine(ctx)
	if err != nil {
		return "", "", err
	}

	hint := language.Hint(languagePreference)
	result, err := engine.Transcribe(ctx, audioPath, hint)
	if err != nil {
		return "", "", err
	}

	detected := strings.TrimSpace(result.Language)
	if detected == "" {
		detected = hint
	}
	return result.Text, detected, nil
}

func (g *Gateway) ensureEngine(ctx context.Context) (Engine, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.engine != nil {
		return g.engine, nil
	}

	started := time.Now()
	engine, err := g.opener(ctx)
	if err != nil {
		return nil, err
	}
	g.engine = engine
	g.logger.Info("transcription engine initialized",
		logging.String("model", g.opts.Model),
		logging.String("device", g.opts.Device),
		logging.Duration("elapsed", time.Since(started)),
	)
	return engine, nil
}

// Close releases the engine if it was opened. The gateway reopens on the
// next Transcribe call.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.engine == nil {
		return nil
	}
	err := g.engine.Close()
	g.engine = nil
	return err
}
