package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Name: "test", Level: Warn, Writer: &buf, NoColor: true})

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("shown %d", 3)
	logger.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug and info to be filtered, got %q", out)
	}
	if strings.Count(out, "shown") != 2 {
		t.Errorf("Expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "WARN  [test] shown 3") {
		t.Errorf("Expected formatted warn line, got %q", out)
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Name: "capture", Level: Debug, Writer: &buf, JSON: true})

	logger.Named("disk").Info("captured %s", "/tmp")

	var entry logEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if entry.Service != "capture/disk" || entry.Level != "INFO" || entry.Message != "captured /tmp" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: Info, Writer: &buf, NoColor: true})

	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal("boom")
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.log")
	logger := New(Options{Level: Info, File: path, NoTerminal: true})

	logger.Info("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(content), "to file") || strings.Contains(string(content), "\033[") {
		t.Errorf("Unexpected file content %q", content)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Error("discarded")
	logger.Named("child").Fatal("not exiting")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"warning": Warn,
		" error ": Error,
		"fatal":   Fatal,
	}

	for input, expected := range tests {
		level, err := ParseLevel(input)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", input, err)
		}
		if level != expected {
			t.Errorf("ParseLevel(%q): expected %s, got %s", input, expected, level)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("Expected error for unknown level")
	}
}
