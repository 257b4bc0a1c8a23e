package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := NewLogger(LoggerConfig{Level: level, Output: buf, Prefix: "test"})
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return l
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Line(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelInfo)

	logger.WithFields(map[string]any{"path": "a.bin", "bytes": 4}).Info("saved %s", "file")

	want := "2024-05-01T12:30:00.000 [INFO] test: saved file {bytes=4, path=a.bin}\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q\nwant   %q", got, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	for _, hidden := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, hidden) {
			t.Errorf("expected %s to be filtered out", hidden)
		}
	}
	for _, shown := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(output, shown) {
			t.Errorf("expected %s in output", shown)
		}
	}

	buf.Reset()
	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("expected output after SetLevel")
	}
}

func TestLogger_WithComponentSharesOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := newTestLogger(&buf1, LogLevelInfo)
	child := logger.WithComponent("watcher")

	child.Info("event")
	if !strings.Contains(buf1.String(), "component=watcher") {
		t.Errorf("expected component in output, got: %s", buf1.String())
	}

	logger.SetOutput(&buf2)
	logger.Info("moved")
	if !strings.Contains(buf2.String(), "moved") {
		t.Error("expected output to buf2")
	}
	if strings.Contains(buf1.String(), "moved") {
		t.Error("parent output still going to buf1")
	}
}

func TestLogger_DefaultOutputDiscards(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.output == nil {
		t.Fatal("expected default output to be set")
	}
	logger.Error("nowhere")

	if cfg := DefaultLoggerConfig(); cfg.Prefix != "hexstorm" || cfg.Level != LogLevelInfo {
		t.Errorf("default config = %+v", cfg)
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.Info("test")
	NullLogger.WithComponent("x").Warn("test")
	NullLogger.SetLevel(LogLevelDebug)
	NullLogger.Error("test")
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hexstorm.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile error = %v", err)
	}

	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f})
	logger.Info("first")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") {
		t.Errorf("log file = %q", data)
	}
}
