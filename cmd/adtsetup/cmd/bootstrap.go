package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adtsetup/internal/config"
	"adtsetup/internal/envfile"
	"adtsetup/internal/logging"
	"adtsetup/internal/prompt"
	"adtsetup/internal/repository"
	"adtsetup/internal/workspace"
	"adtsetup/pkg/fileops"
)

// defaultTemplate seeds the environment template on machines that have
// never run the bootstrap. The key set matches what the editing service
// reads.
const defaultTemplate = `# ADT editor configuration
OPENAI_API_KEY=
GITHUB_TOKEN=
JWT_SECRET_KEY=change-me
ADTS=
ADT_DIR=
`

// ensureTemplate writes the default template when none exists yet.
func ensureTemplate(settings *config.Settings) error {
	if _, err := os.Stat(settings.EnvTemplatePath); err == nil {
		return nil
	}
	if err := fileops.EnsureDirectoryExists(filepath.Dir(settings.EnvTemplatePath)); err != nil {
		return err
	}
	return fileops.AtomicWriteFile(settings.EnvTemplatePath, []byte(defaultTemplate), 0644)
}

// reconcileEnv runs the interactive configuration reconciliation and
// returns the resulting store.
func reconcileEnv(settings *config.Settings, logger *logging.AppLogger) (*envfile.Store, error) {
	if err := ensureTemplate(settings); err != nil {
		return nil, fmt.Errorf("failed to prepare environment template: %w", err)
	}

	p := prompt.NewStdio()
	r := envfile.NewReconciler(p, logger)
	store, err := r.Reconcile(settings.EnvTemplatePath, settings.EnvStorePath)
	if err != nil {
		return nil, fmt.Errorf("environment reconciliation failed: %w", err)
	}

	offerTokenPersistence(store, p, logger)
	return store, nil
}

// offerTokenPersistence asks whether a token that only lives in the store
// should be kept in the OS keyring, so later runs find it without the store.
// Declining, or a token already available from the environment or keyring,
// leaves everything as it is.
func offerTokenPersistence(store *envfile.Store, p *prompt.Prompter, logger *logging.AppLogger) {
	token, _ := store.Get("GITHUB_TOKEN")
	token = strings.TrimSpace(token)
	if token == "" || os.Getenv("GITHUB_TOKEN") != "" {
		return
	}
	if repository.ResolveToken() == token {
		return
	}

	ok, err := p.Confirm("Store the GitHub token in the OS keyring for future runs", false)
	if err != nil || !ok {
		return
	}
	if err := repository.StoreToken(token); err != nil {
		logger.Warn("Could not store the token in the keyring", "error", err)
		return
	}
	p.Notify("GitHub token stored in the OS keyring.")
}

// loadStore opens an existing store without prompting; commands that do
// not reconcile point the operator at `adtsetup env` when it is missing.
func loadStore(settings *config.Settings) (*envfile.Store, error) {
	if _, err := os.Stat(settings.EnvStorePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no environment store at %s, run `adtsetup env` first", settings.EnvStorePath)
	}
	return envfile.LoadStore(settings.EnvStorePath)
}

// declaredRefs parses the space-separated ADTS list into remote
// references. An empty list signals single-repository mode.
func declaredRefs(store *envfile.Store) ([]repository.RemoteRef, error) {
	raw, _ := store.Get("ADTS")

	var refs []repository.RemoteRef
	for _, entry := range strings.Fields(raw) {
		ref, err := repository.ParseRemoteRef(entry)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// resolveToken picks the GitHub token: environment and keyring first, the
// store's GITHUB_TOKEN entry as a fallback.
func resolveToken(store *envfile.Store) string {
	if token := repository.ResolveToken(); token != "" {
		return token
	}
	token, _ := store.Get("GITHUB_TOKEN")
	return strings.TrimSpace(token)
}

// utilityRef derives the utility repository's reference. It lives next to
// the declared ADTs, under the same host and owner.
func utilityRef(refs []repository.RemoteRef, name string) (repository.RemoteRef, bool) {
	if name == "" || len(refs) == 0 {
		return repository.RemoteRef{}, false
	}
	return repository.RemoteRef{Host: refs[0].Host, Owner: refs[0].Owner, Repo: name}, true
}

// syncRepositories reconciles every declared remote, fail-fast, then the
// utility repository best-effort. It returns nil results without error
// when no remotes are declared.
func syncRepositories(settings *config.Settings, store *envfile.Store, logger *logging.AppLogger) ([]repository.SyncedRepo, error) {
	refs, err := declaredRefs(store)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		logger.Info("No ADT remotes declared, skipping synchronization")
		return nil, nil
	}
	defer logger.LogPerformance("repository sync", time.Now())

	resolver := repository.NewResolver(resolveToken(store), logger)
	reconciler := repository.NewReconciler(resolver, settings.ReposRoot, logger)

	results, err := reconciler.ReconcileAll(refs)
	if err != nil {
		return nil, err
	}

	if util, ok := utilityRef(refs, settings.UtilityRepo); ok {
		reconciler.ReconcileBestEffort(util)
	}
	return results, nil
}

// selectWorkspace resolves the source directory to project: the numbered
// menu over synchronized repositories, or the single supplied directory
// when no remotes are declared. adtDir, when non-empty, overrides the
// store's ADT_DIR.
func selectWorkspace(settings *config.Settings, store *envfile.Store, synced []repository.SyncedRepo, adtDir string, logger *logging.AppLogger) (string, error) {
	p := prompt.NewStdio()
	selector := workspace.NewSelector(p, logger, settings)

	if len(synced) > 0 {
		return selector.SelectInteractive(settings.ReposRoot)
	}

	dir := adtDir
	if dir == "" {
		dir, _ = store.Get("ADT_DIR")
	}
	if dir == "" {
		answer, err := p.Ask("ADT directory", "")
		if err != nil {
			return "", err
		}
		dir = answer
	}
	return selector.SelectSingle(dir)
}
