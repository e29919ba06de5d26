package transcription

import (
	"context"
	"errors"
	"sync"
	"testing"

	"voxnote/internal/services/whisperx"
)

type fakeEngine struct {
	mu     sync.Mutex
	result whisperx.Result
	err    error
	hints  []string
	closed int
}

func (f *fakeEngine) Transcribe(_ context.Context, _ string, hint string) (whisperx.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hints = append(f.hints, hint)
	return f.result, f.err
}

func (f *fakeEngine) Close() error {
	f.closed++
	return nil
}

type countingOpener struct {
	mu     sync.Mutex
	calls  int
	engine *fakeEngine
	errs   []error
}

func (o *countingOpener) open(context.Context) (Engine, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	if len(o.errs) > 0 {
		err := o.errs[0]
		o.errs = o.errs[1:]
		return nil, err
	}
	return o.engine, nil
}

func TestTranscribeLanguagePreference(t *testing.T) {
	tests := []struct {
		name       string
		preference string
		reported   string
		wantHint   string
		wantLang   string
	}{
		{name: "auto uses detection", preference: "auto", reported: "de", wantHint: "", wantLang: "de"},
		{name: "blank is auto", preference: "  ", reported: "en", wantHint: "", wantLang: "en"},
		{name: "AUTO case-insensitive", preference: "AUTO", reported: "fr", wantHint: "", wantLang: "fr"},
		{name: "explicit forwarded", preference: "en", reported: "en", wantHint: "en", wantLang: "en"},
		{name: "engine report wins", preference: "en", reported: "de", wantHint: "en", wantLang: "de"},
		{name: "hint fills empty report", preference: "es", reported: "", wantHint: "es", wantLang: "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{result: whisperx.Result{Text: "hello", Language: tt.reported}}
			opener := &countingOpener{engine: engine}
			g := New(opener.open, Options{Model: "small", Device: "cpu"}, nil)

			text, lang, err := g.Transcribe(context.Background(), "/a.m4a", tt.preference)
			if err != nil {
				t.Fatalf("Transcribe: %v", err)
			}
			if text != "hello" {
				t.Fatalf("text = %q", text)
			}
			if lang != tt.wantLang {
				t.Fatalf("language = %q, want %q", lang, tt.wantLang)
			}
			if engine.hints[0] != tt.wantHint {
				t.Fatalf("hint = %q, want %q", engine.hints[0], tt.wantHint)
			}
		})
	}
}

func TestEngineOpenedOnce(t *testing.T) {
	engine := &fakeEngine{result: whisperx.Result{Text: "x", Language: "en"}}
	opener := &countingOpener{engine: engine}
	g := New(opener.open, Options{}, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := g.Transcribe(context.Background(), "/a.wav", "auto"); err != nil {
				t.Errorf("Transcribe: %v", err)
			}
		}()
	}
	wg.Wait()

	if opener.calls != 1 {
		t.Fatalf("opener called %d times, want 1", opener.calls)
	}
	if len(engine.hints) != 8 {
		t.Fatalf("engine called %d times, want 8", len(engine.hints))
	}
}

func TestFailedOpenIsRetried(t *testing.T) {
	openErr := errors.New("model download failed")
	engine := &fakeEngine{result: whisperx.Result{Text: "ok", Language: "en"}}
	opener := &countingOpener{engine: engine, errs: []error{openErr}}
	g := New(opener.open, Options{}, nil)

	if _, _, err := g.Transcribe(context.Background(), "/a.wav", "auto"); !errors.Is(err, openErr) {
		t.Fatalf("expected open error, got %v", err)
	}
	if _, _, err := g.Transcribe(context.Background(), "/a.wav", "auto"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opener.calls != 2 {
		t.Fatalf("opener called %d times, want 2", opener.calls)
	}
}

func TestEngineErrorPropagates(t *testing.T) {
	engineErr := errors.New("decode failed")
	engine := &fakeEngine{err: engineErr}
	opener := &countingOpener{engine: engine}
	g := New(opener.open, Options{}, nil)

	if _, _, err := g.Transcribe(context.Background(), "/a.wav", "en"); !errors.Is(err, engineErr) {
		t.Fatalf("expected engine error, got %v", err)
	}
	if len(engine.hints) != 1 {
		t.Fatalf("engine called %d times, want exactly 1 (no retry)", len(engine.hints))
	}
}

func TestCloseReleasesEngine(t *testing.T) {
	engine := &fakeEngine{result: whisperx.Result{Text: "x"}}
	opener := &countingOpener{engine: engine}
	g := New(opener.open, Options{}, nil)

	if err := g.Close(); err != nil {
		t.Fatalf("Close before open: %v", err)
	}
	if _, _, err := g.Transcribe(context.Background(), "/a.wav", "auto"); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if engine.closed != 1 {
		t.Fatalf("closed %d times, want 1", engine.closed)
	}
}
