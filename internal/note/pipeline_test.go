package note

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"voxnote/internal/history"
	"voxnote/internal/services"
)

type fakeTranscriber struct {
	mu       sync.Mutex
	calls    int
	text     string
	language string
	err      error
	prefs    []string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, pref string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prefs = append(f.prefs, pref)
	return f.text, f.language, f.err
}

func (f *fakeTranscriber) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, entry history.Entry) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func writeAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestProcessSkipsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fake := &fakeTranscriber{}
	p := NewPipeline(fake, Options{Language: "auto"}, nil)

	for _, path := range []string{existing, filepath.Join(dir, "missing.mp4"), filepath.Join(dir, "MISSING.DOCX")} {
		processed, err := p.Process(context.Background(), path)
		if err != nil {
			t.Fatalf("Process(%s): %v", path, err)
		}
		if processed {
			t.Fatalf("Process(%s) reported processed", path)
		}
	}
	if fake.count() != 0 {
		t.Fatalf("transcriber called %d times", fake.count())
	}
}

func TestProcessMissingAudio(t *testing.T) {
	fake := &fakeTranscriber{}
	p := NewPipeline(fake, Options{Language: "auto"}, nil)

	_, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "gone.m4a"))
	if !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected services.ErrNotFound tag, got %v", err)
	}
	if errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("missing audio must not be a runtime error: %v", err)
	}
	if fake.count() != 0 {
		t.Fatal("transcriber must not be called")
	}
}

func TestProcessDirectoryIsValidationError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "folder.wav")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := NewPipeline(&fakeTranscriber{}, Options{}, nil)

	if _, err := p.Process(context.Background(), dir); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProcessSkipsExistingNote(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "memo.m4a")
	notePath := filepath.Join(dir, "memo.md")
	if err := os.WriteFile(notePath, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	fake := &fakeTranscriber{text: "should not appear"}
	p := NewPipeline(fake, Options{Language: "auto"}, nil)

	processed, err := p.Process(context.Background(), audio)
	if err != nil || processed {
		t.Fatalf("Process = %v, %v; want false, nil", processed, err)
	}
	if fake.count() != 0 {
		t.Fatal("transcriber must not be called")
	}
	data, _ := os.ReadFile(notePath)
	if string(data) != "keep me" {
		t.Fatalf("existing note modified: %q", data)
	}
}

func TestProcessWritesNote(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "Memo.MP3")
	fake := &fakeTranscriber{text: "One. Two. Three. Four.", language: "de"}
	rec := &fakeRecorder{}
	p := NewPipeline(fake, Options{Language: "auto", Model: "small", LockDir: filepath.Join(dir, "locks"), Recorder: rec}, nil)

	ctx := services.WithRequestID(context.Background(), "req-42")
	processed, err := p.Process(ctx, audio)
	if err != nil || !processed {
		t.Fatalf("Process = %v, %v; want true, nil", processed, err)
	}
	if fake.count() != 1 {
		t.Fatalf("transcriber called %d times, want 1", fake.count())
	}
	if fake.prefs[0] != "auto" {
		t.Fatalf("language preference = %q", fake.prefs[0])
	}

	data, err := os.ReadFile(filepath.Join(dir, "Memo.md"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(data)
	for _, needle := range []string{"language: de", `audio: "[[Memo.MP3]]"`, "One. Two. Three.\n\nFour."} {
		if !strings.Contains(note, needle) {
			t.Fatalf("note missing %q:\n%s", needle, note)
		}
	}

	if len(rec.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(rec.entries))
	}
	entry := rec.entries[0]
	if entry.NotePath != filepath.Join(dir, "Memo.md") || entry.Model != "small" || entry.RequestID != "req-42" || entry.Language != "de" {
		t.Fatalf("unexpected history entry: %+v", entry)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "clip.wav")
	fake := &fakeTranscriber{text: "Hello.", language: "en"}
	p := NewPipeline(fake, Options{Language: "auto"}, nil)

	first, err := p.Process(context.Background(), audio)
	if err != nil || !first {
		t.Fatalf("first run = %v, %v", first, err)
	}
	second, err := p.Process(context.Background(), audio)
	if err != nil || second {
		t.Fatalf("second run = %v, %v; want false, nil", second, err)
	}
	if fake.count() != 1 {
		t.Fatalf("transcriber called %d times, want 1", fake.count())
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	if len(matches) != 1 {
		t.Fatalf("expected exactly one note, got %v", matches)
	}
}

func TestProcessConcurrentRunsTranscribeOnce(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "shared.ogg")
	fake := &fakeTranscriber{text: "Hi.", language: "en"}
	lockDir := filepath.Join(dir, "locks")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := NewPipeline(fake, Options{Language: "auto", LockDir: lockDir}, nil)
			ok, err := p.Process(context.Background(), audio)
			if err != nil {
				t.Errorf("Process: %v", err)
				return
			}
			if ok {
				mu.Lock()
				processed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if processed != 1 {
		t.Fatalf("processed %d times, want 1", processed)
	}
	if fake.count() != 1 {
		t.Fatalf("transcriber called %d times, want 1", fake.count())
	}
}

func TestProcessTranscriptionFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "bad.opus")
	engineErr := services.Wrap(services.ErrExternalTool, "whisperx", "transcribe", "whisperx failed", errors.New("corrupt"))
	p := NewPipeline(&fakeTranscriber{err: engineErr}, Options{Language: "auto"}, nil)

	_, err := p.Process(context.Background(), audio)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected engine error, got %v", err)
	}
	if errors.Is(err, ErrAudioNotFound) {
		t.Fatal("engine failure must not look like missing input")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad.md")); !os.IsNotExist(statErr) {
		t.Fatalf("no note should be written on failure, stat err %v", statErr)
	}
}

func TestProcessHistoryFailureDoesNotFail(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "memo.webm")
	rec := &fakeRecorder{err: errors.New("database locked")}
	p := NewPipeline(&fakeTranscriber{text: "ok.", language: "en"}, Options{Recorder: rec}, nil)

	processed, err := p.Process(context.Background(), audio)
	if err != nil || !processed {
		t.Fatalf("Process = %v, %v; want true, nil", processed, err)
	}
}
