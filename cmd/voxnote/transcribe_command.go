package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"voxnote/internal/config"
	"voxnote/internal/history"
	"voxnote/internal/language"
	"voxnote/internal/logging"
	"voxnote/internal/note"
	"voxnote/internal/services"
	"voxnote/internal/transcription"
)

type transcribeOptions struct {
	model    string
	language string
}

func bindTranscribeFlags(cmd *cobra.Command, opts *transcribeOptions) {
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "WhisperX model (default from config, \"small\")")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Language code or \"auto\" (default from config)")
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var opts transcribeOptions

	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe one audio file into a sibling Markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, ctx, args[0], opts)
		},
	}
	bindTranscribeFlags(cmd, &opts)
	return cmd
}

func runTranscribe(cmd *cobra.Command, ctx *commandContext, audioPath string, opts transcribeOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	effective, err := applyTranscribeOverrides(cfg, opts)
	if err != nil {
		return err
	}

	gateway := transcription.NewWhisperX(effective, logger)
	defer func() {
		if closeErr := gateway.Close(); closeErr != nil {
			logger.Warn("failed to close transcription engine", logging.Error(closeErr))
		}
	}()

	pipelineOpts := note.Options{
		Language: effective.Transcription.Language,
		Model:    effective.Transcription.Model,
		LockDir:  effective.LockDir(),
	}
	if store := openHistory(effective, logger); store != nil {
		defer store.Close()
		pipelineOpts.Recorder = store
	}

	pipeline := note.NewPipeline(gateway, pipelineOpts, logger)
	runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())

	processed, err := pipeline.Process(runCtx, audioPath)
	if err != nil {
		logTranscribeFailure(logging.WithContext(services.WithAudioPath(runCtx, audioPath), logger), err)
		return err
	}

	out := cmd.OutOrStdout()
	if processed {
		fmt.Fprintf(out, "processed %s\n", note.NotePath(audioPath))
	} else {
		fmt.Fprintf(out, "skipped %s\n", audioPath)
	}
	return nil
}

// applyTranscribeOverrides returns a copy of cfg with command-line flags applied.
func applyTranscribeOverrides(cfg *config.Config, opts transcribeOptions) (*config.Config, error) {
	effective := *cfg
	if model := strings.TrimSpace(opts.model); model != "" {
		effective.Transcription.Model = model
	}
	if lang := strings.TrimSpace(opts.language); lang != "" {
		if err := language.Validate(lang); err != nil {
			return nil, services.Wrap(services.ErrValidation, "cli", "language flag", "", err)
		}
		effective.Transcription.Language = lang
	}
	return &effective, nil
}

func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete or fix "+cfg.HistoryPath()),
			logging.String(logging.FieldImpact, "notes will not be recorded in history"),
		)
		return nil
	}
	return store
}

func logTranscribeFailure(logger *slog.Logger, err error) {
	switch {
	case services.IsCallerError(err):
		logging.ErrorWithContext(logger, "invalid input", "input_error",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the audio path"),
		)
	case err != nil:
		logging.ErrorWithContext(logger, "transcription failed", "transcription_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `voxnote doctor` and check the log file"),
		)
	}
}
