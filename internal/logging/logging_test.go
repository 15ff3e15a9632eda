package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sync.log")

	log, closeLog, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Info("synced", "files", 3)
	if err := closeLog(); err != nil {
		t.Fatalf("failed to close log: %v", err)
	}

	// A second run must append, not truncate
	log, closeLog, err = Setup(path)
	if err != nil {
		t.Fatalf("second Setup failed: %v", err)
	}
	log.Info("nothing to sync")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "msg=synced") || !strings.Contains(content, "files=3") {
		t.Errorf("first run missing from log:\n%s", content)
	}
	if !strings.Contains(content, `msg="nothing to sync"`) {
		t.Errorf("second run missing from log:\n%s", content)
	}
	if !strings.Contains(content, "time=") {
		t.Errorf("log lines are not timestamped:\n%s", content)
	}
}

func TestSetupStderrFallback(t *testing.T) {
	log, closeLog, err := Setup("")
	if err != nil {
		t.Fatalf("Setup with empty path failed: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
	if err := closeLog(); err != nil {
		t.Errorf("stderr closer must be a no-op: %v", err)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Info("dropped")
}
