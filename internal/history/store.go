package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Entry records one processed audio file.
type Entry struct {
	ID              int64
	AudioPath       string
	NotePath        string
	Language        string
	Model           string
	TranscriptChars int
	Duration        time.Duration
	RequestID       string
	CreatedAt       time.Time
}

// Store manages the processed-notes ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an entry. A zero CreatedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.AudioPath) == "" || strings.TrimSpace(entry.NotePath) == "" {
		return errors.New("record history: audio and note paths required")
	}
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO notes (
            audio_path, note_path, language, model,
            transcript_chars, duration_ms, request_id, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.AudioPath,
		entry.NotePath,
		nullableString(entry.Language),
		nullableString(entry.Model),
		entry.TranscriptChars,
		entry.Duration.Milliseconds(),
		nullableString(entry.RequestID),
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, audio_path, note_path, language, model,
            transcript_chars, duration_ms, request_id, created_at
        FROM notes ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			lang       sql.NullString
			model      sql.NullString
			requestID  sql.NullString
			durationMS int64
			created    string
		)
		if err := rows.Scan(&entry.ID, &entry.AudioPath, &entry.NotePath, &lang, &model,
			&entry.TranscriptChars, &durationMS, &requestID, &created); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.Language = lang.String
		entry.Model = model.String
		entry.RequestID = requestID.String
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
