package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxnote/internal/config"
	"voxnote/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestPrettyHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))
	logger = NewComponentLogger(logger, "note")

	logger.Info("note written", slog.String("path", "/vault/a b.md"), slog.Int("chars", 42))

	line := buf.String()
	if !strings.Contains(line, " INFO note: note written") {
		t.Fatalf("missing level/component/message: %q", line)
	}
	if !strings.Contains(line, `path="/vault/a b.md"`) {
		t.Fatalf("expected quoted path, got %q", line)
	}
	if !strings.Contains(line, "chars=42") {
		t.Fatalf("expected chars attr, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix only: %q", line)
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "WARN shown") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, new(slog.LevelVar), false))
	logger.Info("engine ready", slog.String("model", "small"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v, want info", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["model"] != "small" {
		t.Fatalf("model = %v", payload["model"])
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))

	ctx := services.WithAudioPath(context.Background(), "/tmp/rec.m4a")
	ctx = services.WithRequestID(ctx, "req-1")
	WithContext(ctx, base).Info("processing")

	line := buf.String()
	if !strings.Contains(line, "audio_path=/tmp/rec.m4a") || !strings.Contains(line, "correlation_id=req-1") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))

	WarnWithContext(logger, "history unavailable", "history_record_failed", String(FieldErrorHint, "check state_dir"))

	line := buf.String()
	if !strings.Contains(line, "event_type=history_record_failed") {
		t.Fatalf("event_type missing: %q", line)
	}
	if !strings.Contains(line, `error_hint="check state_dir"`) {
		t.Fatalf("explicit hint should win: %q", line)
	}
	if !strings.Contains(line, "impact=") {
		t.Fatalf("impact default missing: %q", line)
	}
}

func TestNewFromConfigCreatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "voxnote.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}
