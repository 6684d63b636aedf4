package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSettingsSaveLoad(t *testing.T) {
	t.Log("Testing settings saving and loading")

	tempDir := t.TempDir()
	settingsPath := filepath.Join(tempDir, "settings.yaml")

	original := Settings{
		WorkspaceRoot:        "/test/data",
		ReposRoot:            "/test/repos",
		EnvStorePath:         "/test/.env",
		EnvTemplatePath:      "/test/.env.template",
		UtilityRepo:          "adt-utilities",
		ServiceURL:           "http://localhost:8000",
		ReadinessTimeoutSecs: 60,
		Version:              "1.0",
		InitTime:             time.Now().Unix(),
	}

	if err := original.SaveTo(settingsPath); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(settingsPath)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if *loaded != original {
		t.Errorf("loaded settings = %+v, want %+v", *loaded, original)
	}
}

func TestSettingsSaveToSetsInitTime(t *testing.T) {
	tempDir := t.TempDir()
	settingsPath := filepath.Join(tempDir, "settings.yaml")

	settings := DefaultSettings()
	if settings.InitTime != 0 {
		t.Fatal("defaults should not carry an init time")
	}

	if err := settings.SaveTo(settingsPath); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}
	if settings.InitTime == 0 {
		t.Error("InitTime was not set on first save")
	}

	// Settings file must not be world-readable
	info, err := os.Stat(settingsPath)
	if err != nil {
		t.Fatalf("cannot stat settings file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("settings file permissions = %o, want 0600", perm)
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.WorkspaceRoot == "" || settings.ReposRoot == "" {
		t.Error("defaults must include workspace and repos roots")
	}
	if settings.UtilityRepo != "adt-utilities" {
		t.Errorf("utility repo = %q, want adt-utilities", settings.UtilityRepo)
	}
	if settings.ReadinessTimeoutSecs <= 0 {
		t.Error("readiness timeout must be positive")
	}
}

func TestSlotPaths(t *testing.T) {
	settings := Settings{WorkspaceRoot: "/data"}

	if got, want := settings.InputSlot(), filepath.Join("/data", "input"); got != want {
		t.Errorf("InputSlot() = %q, want %q", got, want)
	}
	if got, want := settings.OutputSlot(), filepath.Join("/data", "output"); got != want {
		t.Errorf("OutputSlot() = %q, want %q", got, want)
	}
}

func TestReadinessTimeout(t *testing.T) {
	settings := Settings{ReadinessTimeoutSecs: 90}
	if got := settings.ReadinessTimeout(); got != 90*time.Second {
		t.Errorf("ReadinessTimeout() = %v, want 90s", got)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFrom() expected error for missing file")
	}
}
