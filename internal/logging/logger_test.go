package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snapsort/internal/config"
	"snapsort/internal/logging"
)

func newFileLogger(t *testing.T, opts logging.Options) (*slog.Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "nested", "debug.log")
	opts.OutputPaths = []string{logPath}
	logger, closer, err := logging.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	return logger, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigTruncatesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(cfg.Logging.File, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, closer, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("fresh run")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content := readLog(t, cfg.Logging.File)
	if strings.Contains(content, "previous run") {
		t.Fatalf("expected log file to be truncated, got %q", content)
	}
	if !strings.Contains(content, "fresh run") {
		t.Fatalf("expected new entry, got %q", content)
	}
}

func TestAppendModeKeepsExistingLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")
	if err := os.WriteFile(logPath, []byte("earlier\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger, closer, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("later")
	_ = closer.Close()

	content := readLog(t, logPath)
	if !strings.HasPrefix(content, "earlier\n") || !strings.Contains(content, "later") {
		t.Fatalf("expected appended output, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "info"})
	logger.Info("message without caller")

	if content := readLog(t, logPath); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "debug"})
	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "info"})
	logging.NewComponentLogger(logger, "organizer").Warn("not sorted",
		logging.String(logging.FieldFile, "/in/a b.jpg"),
		logging.Error(errors.New("boom")),
		logging.Int("suffix", 2),
	)

	content := readLog(t, logPath)
	for _, want := range []string{"WARN ", "organizer: not sorted", `file="/in/a b.jpg"`, "error=boom", "suffix=2"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should be rendered as a prefix, got %q", content)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "warn"})
	logger.Info("hidden")
	logger.Warn("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "shown") {
		t.Fatalf("unexpected level filtering: %q", content)
	}
}

func TestNewJSONLogger(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "json", Level: "info"})
	logger.Info("json message", logging.String("k", "v"))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace([]byte(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["msg"] != "json message" || entry["level"] != "info" || entry["k"] != "v" {
		t.Fatalf("unexpected json entry: %#v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", entry)
	}
}

func TestJSONLoggerFileFields(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "json", Level: "info"})
	logger.Info("file sorted",
		logging.String(logging.FieldFile, "/in/IMG_0001.JPG"),
		logging.String(logging.FieldOutcome, "relocated"),
		logging.String(logging.FieldReason, ""),
		logging.String(logging.FieldDestination, "/out/2019/6/2019_06_15_08_30_05.jpg"),
		logging.Duration("elapsed", 1500*time.Millisecond),
	)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace([]byte(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if _, ok := entry[logging.FieldReason]; ok {
		t.Fatalf("empty reason should be omitted: %#v", entry)
	}
	if entry[logging.FieldOutcome] != "relocated" || entry[logging.FieldDestination] != "/out/2019/6/2019_06_15_08_30_05.jpg" {
		t.Fatalf("unexpected file fields: %#v", entry)
	}
	if entry["elapsed"] != "1.5s" {
		t.Fatalf("expected duration as text, got %#v", entry["elapsed"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "invalid"})
	logger.Debug("debug dropped")
	logger.Info("info kept")

	content := readLog(t, logPath)
	if strings.Contains(content, "debug dropped") || !strings.Contains(content, "info kept") {
		t.Fatalf("expected info level, got %q", content)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	logger, logPath := newFileLogger(t, logging.Options{Format: "console", Level: "info"})
	ctx := logging.WithRunID(context.Background(), "run-123")

	logging.WithContext(ctx, logger).Info("contextual log")

	if content := readLog(t, logPath); !strings.Contains(content, "run_id=run-123") {
		t.Fatalf("expected run id field, got %q", content)
	}
	if id, ok := logging.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id %q ok=%v", id, ok)
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on bare context")
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("discarded")
}
