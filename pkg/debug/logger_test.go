package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.SetLevel(LogLevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Expected messages below WARN to be dropped:\n%s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("Expected WARN and ERROR messages to pass:\n%s", output)
	}
}

func TestLoggerLinePrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info("hello %d", 42)

	line := buf.String()
	if !strings.Contains(line, "[INFO] hello 42") {
		t.Errorf("Unexpected log line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("Expected log line to end with a newline")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestSetColorScheme(t *testing.T) {
	logger := New(&bytes.Buffer{})
	if err := logger.SetColorScheme("dark"); err != nil {
		t.Errorf("Expected dark scheme to resolve, got %v", err)
	}
	if err := logger.SetColorScheme("light"); err != nil {
		t.Errorf("Expected light scheme to resolve, got %v", err)
	}
	if err := logger.SetColorScheme("mauve"); err == nil {
		t.Error("Expected unknown scheme to fail")
	}
}
