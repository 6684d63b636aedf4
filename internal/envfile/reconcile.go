package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adtsetup/internal/logging"
	"adtsetup/internal/prompt"
	"adtsetup/pkg/fileops"
)

// Reconciler merges a template's declared keys into the persisted store,
// prompting the operator for missing or invalid values.
type Reconciler struct {
	prompter *prompt.Prompter
	logger   *logging.AppLogger
}

// NewReconciler creates a Reconciler driven by the given prompter.
func NewReconciler(prompter *prompt.Prompter, logger *logging.AppLogger) *Reconciler {
	return &Reconciler{prompter: prompter, logger: logger}
}

// Reconcile brings the store at storePath in line with the template:
//
//   - a missing store is created by copying the template verbatim
//   - auto keys are upserted silently with their current-or-default value
//   - list keys collect additional entries and merge them onto the
//     existing space-joined value
//   - scalar keys prompt with the current value as the keepable default,
//     repeating until the value passes the key's validation
//
// Keys already in the store are rewritten in place; new keys are appended.
// Lines the template does not declare are preserved untouched. The updated
// store is saved atomically and returned.
func (r *Reconciler) Reconcile(templatePath, storePath string) (*Store, error) {
	specs, err := LoadTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		if err := fileops.EnsureDirectoryExists(filepath.Dir(storePath)); err != nil {
			return nil, err
		}
		if err := fileops.AtomicCopy(templatePath, storePath); err != nil {
			return nil, fmt.Errorf("failed to create store from template: %w", err)
		}
		r.logger.Info("Created configuration store from template", "path", storePath)
	}

	store, err := LoadStore(storePath)
	if err != nil {
		return nil, err
	}

	for _, spec := range specs {
		value, err := r.resolveValue(spec, store)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile key %s: %w", spec.Name, err)
		}
		store.Set(spec.Name, value)
	}

	if err := store.Save(); err != nil {
		return nil, err
	}
	r.logger.Info("Configuration store reconciled", "path", storePath, "keys", len(specs))
	return store, nil
}

// resolveValue produces the final value for one key, prompting as the
// key's policy demands.
func (r *Reconciler) resolveValue(spec KeySpec, store *Store) (string, error) {
	current, _ := store.Get(spec.Name)

	if spec.Auto {
		if current != "" {
			return current, nil
		}
		return spec.Default, nil
	}

	if spec.Cardinality == List {
		return r.collectList(spec, current)
	}

	return r.promptScalar(spec, current)
}

// collectList appends newly entered values onto the existing space-joined
// list. Entering nothing keeps the list as it is.
func (r *Reconciler) collectList(spec KeySpec, current string) (string, error) {
	entered, err := r.prompter.AskList(spec.Name)
	if err != nil {
		return "", err
	}

	merged := append(strings.Fields(current), entered...)
	return strings.Join(merged, " "), nil
}

// promptScalar asks for a single value, keeping the shown value on an
// empty answer and reprompting until validation passes. An invalid answer
// is never retained as the next shown default.
func (r *Reconciler) promptScalar(spec KeySpec, current string) (string, error) {
	shown := current
	if shown == "" {
		shown = spec.Default
	}

	for {
		display := spec.DisplayValue(shown)

		var input string
		var err error
		if spec.Sensitive {
			input, err = r.prompter.AskMasked(spec.Name, display)
		} else {
			input, err = r.prompter.Ask(spec.Name, display)
		}
		if err != nil {
			return "", err
		}

		value := input
		if value == "" {
			value = shown
		}

		if err := spec.Validate(value); err != nil {
			r.prompter.Errorf("%v", err)
			continue
		}
		return value, nil
	}
}
