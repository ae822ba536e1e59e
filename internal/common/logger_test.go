package common

import (
	"log/slog"
	"testing"
)

func TestLogLevel_StringAndSlog(t *testing.T) {
	cases := []struct {
		level LogLevel
		str   string
		slvl  slog.Level
	}{
		{LogLevelError, "error", slog.LevelError},
		{LogLevelWarn, "warn", slog.LevelWarn},
		{LogLevelInfo, "info", slog.LevelInfo},
		{LogLevelDebug, "debug", slog.LevelDebug},
	}
	for _, c := range cases {
		if c.level.String() != c.str {
			t.Fatalf("String(): expected %q, got %q", c.str, c.level.String())
		}
		if c.level.ToSlogLevel() != c.slvl {
			t.Fatalf("ToSlogLevel(): expected %v, got %v", c.slvl, c.level.ToSlogLevel())
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("DEBUG") != LogLevelDebug {
		t.Fatalf("expected debug")
	}
	if ParseLogLevel(" warning ") != LogLevelWarn {
		t.Fatalf("expected warn")
	}
	if ParseLogLevel("nonsense") != LogLevelInfo {
		t.Fatalf("unknown level should fall back to info")
	}
}

func TestLogger_WithComponentKeepsLevelAndMasker(t *testing.T) {
	l := NewLogger(LogLevelDebug)
	c := l.WithComponent("pipeline")
	if c.Level() != LogLevelDebug {
		t.Fatalf("expected level to carry over, got %v", c.Level())
	}
	if c.Masker() != l.Masker() {
		t.Fatalf("expected masker to be shared")
	}
}

func TestSetDefaultLogger(t *testing.T) {
	orig := GetLogger()
	defer SetDefaultLogger(orig)

	l := NewJSONLogger(LogLevelWarn)
	SetDefaultLogger(l)
	if GetLogger() != l {
		t.Fatalf("default logger not replaced")
	}
}
