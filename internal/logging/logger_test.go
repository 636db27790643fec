package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mddecor/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"case insensitive Info", "Info", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}

			if logger.GetLevel() != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, logger.GetLevel())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.

	// Save original and restore after test.
	original := logging.Default()
	defer logging.SetDefault(original)

	// Create a fresh logger for testing.
	testLogger := logging.New("info")
	logging.SetDefault(testLogger)

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.

	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	if logger == nil {
		t.Fatal("NewInteractive returned nil logger")
	}

	// Interactive loggers should default to info level
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected info level, got %v", logger.GetLevel())
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("stale checkbox", logging.FieldLine, 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "stale checkbox") || !strings.Contains(out, "line=3") {
		t.Errorf("missing warn message or field: %q", out)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	if logging.FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext without a logger returned nil")
	}
}

func TestWithPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))
	ctx, logger := logging.WithPath(ctx, "notes.md")
	logger.Debug("decorated", logging.FieldDecorations, 4)
	logging.FromContext(ctx).Info("again")

	out := buf.String()
	if strings.Count(out, "path=notes.md") != 2 {
		t.Errorf("path field missing from child logger output: %q", out)
	}
	if !strings.Contains(out, "decorations=4") {
		t.Errorf("missing decorations field: %q", out)
	}
}
