package note

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"voxnote/internal/history"
	"voxnote/internal/logging"
	"voxnote/internal/services"
)

// ErrAudioNotFound reports that a supported audio path does not exist. It is
// also tagged with services.ErrNotFound.
var ErrAudioNotFound = errors.New("audio file not found")

// Transcriber turns an audio file into text plus the detected language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languagePreference string) (string, string, error)
}

// Recorder stores a ledger entry for a processed file.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Options configure a Pipeline.
type Options struct {
	// Language is "auto" or an explicit code handed to the transcriber.
	Language string
	// Model is recorded in history entries.
	Model string
	// LockDir enables per-file locking when set.
	LockDir string
	// Recorder receives an entry after each written note. Optional.
	Recorder Recorder
}

// Pipeline decides whether an audio file needs a note and produces it.
type Pipeline struct {
	transcriber Transcriber
	opts        Options
	logger      *slog.Logger
	now         func() time.Time
}

// NewPipeline constructs a pipeline around transcriber.
func NewPipeline(transcriber Transcriber, opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		opts:        opts,
		logger:      logging.NewComponentLogger(logger, "note"),
		now:         time.Now,
	}
}

// Process transcribes audioPath into a sibling note. It returns true when a
// note was written and false when the file was skipped, either because the
// extension is unsupported or because the note already exists. A missing
// audio file yields ErrAudioNotFound; transcription failures propagate as is.
func (p *Pipeline) Process(ctx context.Context, audioPath string) (bool, error) {
	ctx = services.WithAudioPath(ctx, audioPath)
	logger := logging.WithContext(ctx, p.logger)

	if !IsSupported(audioPath) {
		logger.Debug("skipping unsupported file")
		return false, nil
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, services.Wrap(services.ErrNotFound, "note", "process", audioPath, ErrAudioNotFound)
		}
		return false, services.Wrap(services.ErrExternalTool, "note", "stat audio", audioPath, err)
	}
	if info.IsDir() {
		return false, services.Wrap(services.ErrValidation, "note", "process", audioPath+" is a directory", nil)
	}

	notePath := NotePath(audioPath)
	exists, err := noteExists(notePath)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Info("note already exists, skipping", logging.String("note_path", notePath))
		return false, nil
	}

	if dir := strings.TrimSpace(p.opts.LockDir); dir != "" {
		lock, err := acquireFileLock(ctx, dir, audioPath)
		if err != nil {
			return false, services.Wrap(services.ErrExternalTool, "note", "lock", audioPath, err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release file lock", logging.Error(err))
			}
		}()

		exists, err = noteExists(notePath)
		if err != nil {
			return false, err
		}
		if exists {
			logger.Info("note written by concurrent run, skipping", logging.String("note_path", notePath))
			return false, nil
		}
	}

	logger.Info("transcribing audio", logging.String("language", p.opts.Language))
	started := p.now()
	text, detected, err := p.transcriber.Transcribe(ctx, audioPath, p.opts.Language)
	if err != nil {
		return false, err
	}
	elapsed := p.now().Sub(started)

	content := BuildAt(audioPath, text, detected, p.now())
	written, err := writeNote(notePath, content)
	if err != nil {
		return false, err
	}
	if !written {
		logger.Info("note appeared during transcription, skipping", logging.String("note_path", notePath))
		return false, nil
	}

	logger.Info("note written",
		logging.String("note_path", notePath),
		logging.String("language", detected),
		logging.Int("transcript_chars", len(text)),
		logging.Duration("elapsed", elapsed),
	)

	p.record(ctx, logger, history.Entry{
		AudioPath:       audioPath,
		NotePath:        notePath,
		Language:        detected,
		Model:           p.opts.Model,
		TranscriptChars: len(text),
		Duration:        elapsed,
	})
	return true, nil
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, entry history.Entry) {
	if p.opts.Recorder == nil {
		return
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		entry.RequestID = rid
	}
	if err := p.opts.Recorder.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "failed to record history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			logging.String(logging.FieldImpact, "note written but missing from history"),
		)
	}
}

func noteExists(notePath string) (bool, error) {
	_, err := os.Stat(notePath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, services.Wrap(services.ErrExternalTool, "note", "stat note", notePath, err)
}

// writeNote creates notePath exclusively. It returns false without error when
// the file already exists.
func writeNote(notePath, content string) (bool, error) {
	file, err := os.OpenFile(notePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, services.Wrap(services.ErrExternalTool, "note", "create note", notePath, err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		_ = os.Remove(notePath)
		return false, services.Wrap(services.ErrExternalTool, "note", "write note", notePath, err)
	}
	if err := file.Close(); err != nil {
		return false, services.Wrap(services.ErrExternalTool, "note", "close note", notePath, err)
	}
	return true, nil
}
