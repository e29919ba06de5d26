package note

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"voxnote/internal/textutil"
)

const lockRetryDelay = 250 * time.Millisecond

// lockName derives a stable, filesystem-safe lock file name for audioPath.
func lockName(audioPath string) string {
	abs, err := filepath.Abs(audioPath)
	if err != nil {
		abs = audioPath
	}
	sum := sha256.Sum256([]byte(abs))
	stem := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	token := textutil.SanitizeToken(stem)
	if len(token) > 48 {
		token = token[:48]
	}
	return token + "-" + hex.EncodeToString(sum[:6]) + ".lock"
}

// acquireFileLock blocks until the per-file lock is held or ctx ends.
func acquireFileLock(ctx context.Context, lockDir, audioPath string) (*flock.Flock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock dir: %w", err)
	}
	lock := flock.New(filepath.Join(lockDir, lockName(audioPath)))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire lock: %s is busy", lock.Path())
	}
	return lock, nil
}
