package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"mixed case", "Info", slog.LevelInfo},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORBITAL_LOG_LEVEL", tt.envValue)
			level := getLogLevelFromEnv()
			if level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestSessionID(t *testing.T) {
	t.Run("generate session ID", func(t *testing.T) {
		id1 := GenerateSessionID()
		id2 := GenerateSessionID()

		if id1 == "" || id2 == "" {
			t.Error("GenerateSessionID() returned empty string")
		}
		if id1 == id2 {
			t.Error("GenerateSessionID() returned duplicate IDs")
		}
		if len(id1) != 16 {
			t.Errorf("GenerateSessionID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context with session ID", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "run-42")
		if got := GetSessionID(ctx); got != "run-42" {
			t.Errorf("GetSessionID() = %q, want %q", got, "run-42")
		}
	})

	t.Run("context without session ID", func(t *testing.T) {
		if got := GetSessionID(context.Background()); got != "" {
			t.Errorf("GetSessionID() = %q, want empty string", got)
		}
	})

	t.Run("auto-generate session ID", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "")
		if got := GetSessionID(ctx); len(got) != 16 {
			t.Errorf("auto-generated session ID has wrong length: %q", got)
		}
	})
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	return entry
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)
	ctx := WithSessionID(context.Background(), "session-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "simulation created", "ships", 3)

		entry := decodeEntry(t, &buf)
		if entry["msg"] != "simulation created" {
			t.Errorf("Expected message 'simulation created', got %v", entry["msg"])
		}
		if entry["level"] != "INFO" {
			t.Errorf("Expected level 'INFO', got %v", entry["level"])
		}
		if entry["session_id"] != "session-123" {
			t.Errorf("Expected session_id 'session-123', got %v", entry["session_id"])
		}
		if entry["ships"] != float64(3) {
			t.Errorf("Expected ships 3, got %v", entry["ships"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "export failed", errors.New("sink closed"), "entries", 10)

		entry := decodeEntry(t, &buf)
		if entry["level"] != "ERROR" {
			t.Errorf("Expected level 'ERROR', got %v", entry["level"])
		}
		if entry["error"] != "sink closed" {
			t.Errorf("Expected error 'sink closed', got %v", entry["error"])
		}
	})

	t.Run("debug logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "ship destroyed", "ship", 1)

		entry := decodeEntry(t, &buf)
		if entry["level"] != "DEBUG" {
			t.Errorf("Expected level 'DEBUG', got %v", entry["level"])
		}
	})

	t.Run("warn logging", func(t *testing.T) {
		buf.Reset()
		logger.Warn(ctx, "backlog dropped", "steps", 7)

		entry := decodeEntry(t, &buf)
		if entry["level"] != "WARN" {
			t.Errorf("Expected level 'WARN', got %v", entry["level"])
		}
	})
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelWarn)

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below WARN, got %q", buf.String())
	}

	logger.Warn(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected WARN entry, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error(context.Background(), "nobody hears this", errors.New("boom"))
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger should not enable ERROR")
	}
}

func TestLogWithoutSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)

	logger.Info(context.Background(), "test message")

	if strings.Contains(buf.String(), "session_id") {
		t.Error("Log should not contain session_id when none is set in context")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		if result := WrapError(nil, "context"); result != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", result)
		}
	})

	t.Run("wrap error with context", func(t *testing.T) {
		originalErr := errors.New("original error")
		wrapped := WrapError(originalErr, "additional context")

		if wrapped.Error() != "additional context: original error" {
			t.Errorf("WrapError() = %q", wrapped.Error())
		}
		if !errors.Is(wrapped, originalErr) {
			t.Error("WrapError() should preserve original error")
		}
	})

	t.Run("wrap error with formatted context", func(t *testing.T) {
		wrapped := WrapError(errors.New("original error"), "level %s tick %d", "hills", 42)
		if wrapped.Error() != "level hills tick 42: original error" {
			t.Errorf("WrapError() = %q", wrapped.Error())
		}
	})
}
