package telemetry

import (
	"bytes"
	"os"
	"testing"
)

func TestNewLoggerWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Info("hello", "key", "value")
	if buf.Len() == 0 {
		t.Fatalf("expected log output to be written")
	}
}

func TestDebugEnabledReflectsEnv(t *testing.T) {
	os.Unsetenv(envDebug)
	if DebugEnabled() {
		t.Fatalf("expected debug disabled by default")
	}
	os.Setenv(envDebug, "1")
	defer os.Unsetenv(envDebug)
	if !DebugEnabled() {
		t.Fatalf("expected debug enabled once env var is set")
	}
}
