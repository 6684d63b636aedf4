package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"adtsetup/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "adtsetup" // application name used for config and data directories

// Settings holds the bootstrap configuration for adtsetup.
type Settings struct {
	// WorkspaceRoot is the directory that holds the input/output workspace
	// slots the editing application consumes.
	WorkspaceRoot string `yaml:"workspace_root"`
	// ReposRoot is the directory that holds the synchronized checkouts.
	ReposRoot string `yaml:"repos_root"`
	// EnvStorePath is the flat KEY=value configuration store.
	EnvStorePath string `yaml:"env_store_path"`
	// EnvTemplatePath is the template the store is reconciled against.
	EnvTemplatePath string `yaml:"env_template_path"`
	// UtilityRepo is the name of the supporting repository that is synced
	// best-effort and never offered for selection.
	UtilityRepo string `yaml:"utility_repo"`
	// ServiceURL is the base URL of the editing service to wait for.
	ServiceURL string `yaml:"service_url"`
	// ReadinessTimeoutSecs bounds how long the bootstrap waits for the
	// editing service to report healthy.
	ReadinessTimeoutSecs int `yaml:"readiness_timeout_secs"`

	Version  string `yaml:"version"`   // Track settings version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard settings file path for the current platform.
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "settings.yaml")

	logging.Debug("Determined settings path", "path", configPath)
	return configPath, nil
}

// Load loads the settings from the standard location. When no settings file
// exists yet, defaults are written there first so a fresh machine works
// without manual setup.
func Load() (*Settings, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading settings from", "path", configPath)
	if !exists {
		settings := DefaultSettings()
		if err := settings.SaveTo(configPath); err != nil {
			return nil, fmt.Errorf("failed to write default settings: %w", err)
		}
		logging.Info("Created default settings", "path", configPath)
		return &settings, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads settings from a specific path.
func LoadFrom(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	var settings Settings
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return &settings, nil
}

// FindConfigFile returns the path to an existing settings file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get settings path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		return primary, true
	}

	// Return primary path for new settings
	return primary, false
}

// IsFirstRun checks if this is the first time the application is run.
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultSettings returns Settings with sensible defaults rooted in the
// XDG data directory.
func DefaultSettings() Settings {
	base := filepath.Join(xdg.DataHome, APP_NAME)

	return Settings{
		WorkspaceRoot:        filepath.Join(base, "data"),
		ReposRoot:            filepath.Join(base, "repos"),
		EnvStorePath:         filepath.Join(base, ".env"),
		EnvTemplatePath:      filepath.Join(base, ".env.template"),
		UtilityRepo:          "adt-utilities",
		ServiceURL:           "http://localhost:8000",
		ReadinessTimeoutSecs: 120,
		Version:              "1.0",
		InitTime:             0, // Will be set during first save
	}
}

// InputSlot returns the path of the input workspace slot.
func (s *Settings) InputSlot() string {
	return filepath.Join(s.WorkspaceRoot, "input")
}

// OutputSlot returns the path of the output workspace slot.
func (s *Settings) OutputSlot() string {
	return filepath.Join(s.WorkspaceRoot, "output")
}

// ReadinessTimeout returns the readiness timeout as a duration.
func (s *Settings) ReadinessTimeout() time.Duration {
	return time.Duration(s.ReadinessTimeoutSecs) * time.Second
}

// SaveTo writes the settings to a specific path.
func (s *Settings) SaveTo(path string) error {
	// Set init time if this is the first save
	if s.InitTime == 0 {
		s.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Restrictive permissions: the file can name private repositories
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
