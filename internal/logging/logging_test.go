package logging

import (
	"strings"
	"testing"
	"time"
)

func TestTestLoggerCapturesOutput(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("Synchronization finished", "repos", 2)
	out := buf.String()
	if !strings.Contains(out, "Synchronization finished") {
		t.Errorf("message missing from output:\n%s", out)
	}
	if !strings.Contains(out, "repos") {
		t.Errorf("key-value pair missing from output:\n%s", out)
	}
}

func TestDebugObjectDumpsValue(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.DebugObject("settings", struct{ Root string }{Root: "/srv/adt/data"})
	out := buf.String()
	if !strings.Contains(out, "settings") {
		t.Errorf("object name missing from output:\n%s", out)
	}
	if !strings.Contains(out, "/srv/adt/data") {
		t.Errorf("object fields missing from output:\n%s", out)
	}
}

func TestLogPerformanceRecordsOperation(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.LogPerformance("repository sync", time.Now().Add(-5*time.Millisecond))
	out := buf.String()
	if !strings.Contains(out, "repository sync") {
		t.Errorf("operation missing from output:\n%s", out)
	}
	if !strings.Contains(out, "duration") {
		t.Errorf("duration missing from output:\n%s", out)
	}
}
