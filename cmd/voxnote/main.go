package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voxnote/internal/note"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitAudioMissing = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error onto the process status: a missing input file
// is distinct from every other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, note.ErrAudioNotFound):
		return exitAudioMissing
	default:
		return exitFailure
	}
}
