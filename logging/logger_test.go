package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSingleton(t *testing.T) {
	a := NewLogger("test-component")
	b := NewLogger("test-component")
	if a != b {
		t.Error("expected the same logger entry for repeated NewLogger calls")
	}
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("PULSE_LOG_LEVEL", "debug")
	logger := NewLogger("env-level-component")
	if logger.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.Logger.GetLevel())
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}
	entry := &logrus.Entry{
		Time:    time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "scan poll failed",
		Data:    logrus.Fields{"component": "poller", "attempt": 3},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "2025-03-01 12:30:00") {
		t.Errorf("missing timestamp in %q", s)
	}
	if !strings.Contains(s, "[WARN]") {
		t.Errorf("expected [WARN] level tag in %q", s)
	}
	if !strings.Contains(s, "poller") {
		t.Errorf("missing component in %q", s)
	}
	if !strings.Contains(s, "scan poll failed") {
		t.Errorf("missing message in %q", s)
	}
	if !strings.Contains(s, "attempt=3") {
		t.Errorf("missing extra field in %q", s)
	}
}

func TestTextFormatterSimplePreset(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{
		DisableTimestamp: true,
		DisableComponent: true,
	}}
	entry := &logrus.Entry{
		Time:    time.Now(),
		Level:   logrus.InfoLevel,
		Message: "dashboard loaded",
		Data:    logrus.Fields{"component": "loader"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	s := string(out)

	if strings.Contains(s, "loader") {
		t.Errorf("component should be suppressed in %q", s)
	}
	if !strings.HasPrefix(s, "[INFO]") {
		t.Errorf("expected output to start with level tag, got %q", s)
	}
}
