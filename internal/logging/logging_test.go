package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_AutoFormatIsJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: slog.LevelInfo, Format: "auto", Console: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer closer.Close()

	logger.Info("logger initialized", "app", "demo")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "logger initialized" || rec["app"] != "demo" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: slog.LevelWarn, Format: "text", Console: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "plugin", "fps")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "plugin=fps") {
		t.Fatalf("expected text warning, got %q", out)
	}
}

func TestNew_FileSinkFansOut(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "vkb.log")
	logger, closer, err := New(Options{Level: slog.LevelDebug, Format: "text", File: path, Console: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Error("application failed", "app", "demo")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if !strings.Contains(buf.String(), "application failed") {
		t.Fatalf("expected console record, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"app":"demo"`) {
		t.Fatalf("expected JSON record in file, got %q", data)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Format: "xml", Console: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
