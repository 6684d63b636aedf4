package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"adtsetup/internal/config"
	"adtsetup/internal/logging"
	"adtsetup/internal/prompt"
	"adtsetup/pkg/fileops"

	"github.com/samber/lo"
)

// Selector maps an operator's choice to the source path the materializer
// projects. It operates either over the synchronized checkouts (menu) or on
// a single externally supplied directory.
type Selector struct {
	prompter *prompt.Prompter
	logger   *logging.AppLogger
	// excluded holds directory names hidden from the menu: the workspace
	// slots plus the utility repository.
	excluded []string
}

// NewSelector creates a Selector. The settings' slot directories and the
// configured utility repository, when set, are never offered for selection.
func NewSelector(prompter *prompt.Prompter, logger *logging.AppLogger, settings *config.Settings) *Selector {
	excluded := []string{
		filepath.Base(settings.InputSlot()),
		filepath.Base(settings.OutputSlot()),
	}
	if settings.UtilityRepo != "" {
		excluded = append(excluded, settings.UtilityRepo)
	}
	return &Selector{prompter: prompter, logger: logger, excluded: excluded}
}

// Candidates enumerates the selectable repository directories under
// reposRoot, in directory order, with slot names and the utility repository
// filtered out.
func (s *Selector) Candidates(reposRoot string) ([]string, error) {
	entries, err := os.ReadDir(reposRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot list repositories in %s: %w", reposRoot, err)
	}

	dirs := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		return entry.Name(), entry.IsDir()
	})
	return lo.Filter(dirs, func(name string, _ int) bool {
		return !lo.Contains(s.excluded, name)
	}), nil
}

// ResolveChoice maps a raw menu answer to a 0-based candidate index. A
// non-numeric or out-of-range answer yields InvalidSelectionError; the
// answer is never auto-corrected.
func ResolveChoice(answer string, count int) (int, error) {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > count {
		return 0, &InvalidSelectionError{Input: answer, Max: count}
	}
	return n - 1, nil
}

// SelectInteractive presents the numbered menu over the synchronized
// repositories and returns the chosen directory's path. Invalid answers are
// reported and the menu is shown again; only prompting failures and an
// empty candidate set are terminal.
func (s *Selector) SelectInteractive(reposRoot string) (string, error) {
	candidates, err := s.Candidates(reposRoot)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no repositories available for selection in %s", reposRoot)
	}

	for {
		answer, err := s.prompter.Menu("Select the ADT to work on", candidates)
		if err != nil {
			return "", err
		}

		idx, err := ResolveChoice(answer, len(candidates))
		if err != nil {
			s.prompter.Errorf("%v", err)
			continue
		}

		chosen := filepath.Join(reposRoot, candidates[idx])
		s.logger.Info("Workspace selected", "repo", candidates[idx], "path", chosen)
		return chosen, nil
	}
}

// SelectSingle validates the externally supplied directory used in
// single-repository mode. No menu is shown and no version-control metadata
// is required; the path has to exist and must not attempt traversal.
func (s *Selector) SelectSingle(path string) (string, error) {
	if err := fileops.ValidatePathSecurity(path); err != nil {
		return "", fmt.Errorf("rejected ADT directory %q: %w", path, err)
	}

	expanded := fileops.ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil || !info.IsDir() {
		return "", &PathNotFoundError{Path: expanded}
	}

	s.logger.Info("Workspace selected", "path", expanded, "mode", "single-repository")
	return expanded, nil
}
