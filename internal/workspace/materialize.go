package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"adtsetup/internal/config"
	"adtsetup/internal/logging"
	"adtsetup/pkg/fileops"
)

// Strategy is how a slot is populated: a deep copy or a live alias.
type Strategy string

const (
	StrategyDuplicate Strategy = "duplicate"
	StrategyReference Strategy = "reference"
)

// Materializer projects a chosen source directory into the two fixed
// workspace slots under its root:
//
//   - input is always a deep copy, so the editing pipeline never observes
//     upstream changes mid-session
//   - output is a symlink back to the source where the platform allows it,
//     a deep copy otherwise
//
// Slots are destroyed and recreated on every materialization, never
// incrementally updated.
type Materializer struct {
	root   string
	input  string
	output string
	logger *logging.AppLogger

	// symlinksSupported probes whether the reference strategy is usable;
	// overridable in tests to force the duplicate fallback.
	symlinksSupported func(string) bool
}

// NewMaterializer creates a Materializer over the workspace the settings
// describe.
func NewMaterializer(settings *config.Settings, logger *logging.AppLogger) *Materializer {
	return &Materializer{
		root:              settings.WorkspaceRoot,
		input:             settings.InputSlot(),
		output:            settings.OutputSlot(),
		logger:            logger,
		symlinksSupported: fileops.SymlinksSupported,
	}
}

// InputPath returns the input slot's path.
func (m *Materializer) InputPath() string { return m.input }

// OutputPath returns the output slot's path.
func (m *Materializer) OutputPath() string { return m.output }

// Materialize projects sourcePath into both slots and returns the strategy
// used for the output slot.
//
// On any failure both slots are torn down before the error is returned, so
// callers never observe an "input exists, output missing" half-state. The
// returned MaterializationError names the slot and step that failed.
func (m *Materializer) Materialize(sourcePath string) (Strategy, error) {
	source, err := filepath.Abs(fileops.ExpandPath(sourcePath))
	if err != nil {
		return "", &MaterializationError{Step: "resolve source", Err: err}
	}

	// Prior projections are removed unconditionally, symlinks and
	// directories alike, before anything else can fail.
	if err := m.removeSlots(); err != nil {
		return "", &MaterializationError{Step: "remove previous slots", Err: err}
	}
	if err := fileops.EnsureDirectoryExists(m.root); err != nil {
		return "", &MaterializationError{Step: "create workspace root", Err: err}
	}

	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return "", &MaterializationError{
			Step: "resolve source",
			Err:  fmt.Errorf("source is not an existing directory: %s", source),
		}
	}

	if err := fileops.CopyDir(source, m.InputPath()); err != nil {
		m.teardown()
		return "", &MaterializationError{Slot: "input", Step: "snapshot copy", Err: err}
	}

	strategy := StrategyReference
	if m.symlinksSupported(m.root) {
		if err := fileops.CreateAbsoluteSymlink(source, m.OutputPath()); err != nil {
			m.teardown()
			return "", &MaterializationError{Slot: "output", Step: "create reference", Err: err}
		}
	} else {
		strategy = StrategyDuplicate
		if err := fileops.CopyDir(source, m.OutputPath()); err != nil {
			m.teardown()
			return "", &MaterializationError{Slot: "output", Step: "fallback copy", Err: err}
		}
	}

	m.logger.Info("Workspace materialized",
		"source", source,
		"input", m.InputPath(),
		"output", m.OutputPath(),
		"outputStrategy", string(strategy))
	return strategy, nil
}

func (m *Materializer) removeSlots() error {
	if err := fileops.RemovePath(m.InputPath()); err != nil {
		return err
	}
	return fileops.RemovePath(m.OutputPath())
}

// teardown removes both slots after a failed materialization. Errors here
// are logged only; the original failure is what the caller needs to see.
func (m *Materializer) teardown() {
	if err := m.removeSlots(); err != nil {
		m.logger.Error("Failed to clean up partial workspace", "error", err)
	}
}
