package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"adtsetup/internal/logging"
	"adtsetup/pkg/fileops"

	"github.com/go-git/go-git/v6"
)

// RepoState classifies what occupies a repository's local path before
// synchronization.
type RepoState int

const (
	// StateAbsent means the path does not exist or is an empty directory.
	StateAbsent RepoState = iota
	// StateTracked means the path holds a git checkout.
	StateTracked
	// StateOpaque means the path holds non-git content that must be
	// replaced before the repository can be acquired.
	StateOpaque
)

func (s RepoState) String() string {
	switch s {
	case StateTracked:
		return "tracked"
	case StateOpaque:
		return "opaque"
	default:
		return "absent"
	}
}

// ClassifyPath determines the RepoState of a local path.
func ClassifyPath(path string) (RepoState, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return StateAbsent, nil
	}
	if err != nil {
		return StateAbsent, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return StateOpaque, nil
	}

	if _, err := git.PlainOpen(path); err == nil {
		return StateTracked, nil
	}

	empty, err := fileops.IsDirEmpty(path)
	if err != nil {
		return StateAbsent, err
	}
	if empty {
		return StateAbsent, nil
	}
	return StateOpaque, nil
}

// SyncedRepo describes the outcome of reconciling one repository.
type SyncedRepo struct {
	Ref       RemoteRef
	Path      string
	State     RepoState     // state found before reconciling
	Transport TransportForm // transport that succeeded
}

// Reconciler drives repository state toward "tracked and current": absent
// paths are cloned, opaque paths are replaced, tracked checkouts are
// updated.
type Reconciler struct {
	resolver *Resolver
	root     string // directory that holds all checkouts
	logger   *logging.AppLogger
}

// NewReconciler creates a Reconciler placing checkouts under root.
func NewReconciler(resolver *Resolver, root string, logger *logging.AppLogger) *Reconciler {
	return &Reconciler{resolver: resolver, root: root, logger: logger}
}

// LocalPath returns where a reference's checkout lives under the root.
func (rc *Reconciler) LocalPath(ref RemoteRef) string {
	return filepath.Join(rc.root, ref.Name())
}

// Reconcile brings one repository's local checkout in line with its remote
// reference and returns what was done.
//
// The action depends on the state found at the local path:
//
//   - absent: clone through the credential chain
//   - opaque: delete the foreign content, then clone
//   - tracked: update, repointing the remote if the reference changed
//
// A stale index.lock left by an interrupted run is removed before any
// update so the checkout is not wedged forever.
func (rc *Reconciler) Reconcile(ref RemoteRef) (SyncedRepo, error) {
	path := rc.LocalPath(ref)

	state, err := ClassifyPath(path)
	if err != nil {
		return SyncedRepo{}, err
	}

	result := SyncedRepo{Ref: ref, Path: path, State: state}

	mode := ModeClone
	switch state {
	case StateOpaque:
		rc.logger.Warn("Replacing non-repository content", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return SyncedRepo{}, fmt.Errorf("cannot replace %s: %w", path, err)
		}
	case StateTracked:
		rc.clearStaleLock(path)
		mode = ModeUpdate
	}

	if mode == ModeClone {
		if err := fileops.EnsureDirectoryExists(rc.root); err != nil {
			return SyncedRepo{}, err
		}
	}

	transport, err := rc.resolver.Acquire(ref, path, mode)
	if err != nil {
		return SyncedRepo{}, err
	}
	result.Transport = transport
	return result, nil
}

// ReconcileAll reconciles every reference in order, failing fast: the first
// repository that cannot be acquired aborts the run, and the error names
// every transport that was tried for it.
func (rc *Reconciler) ReconcileAll(refs []RemoteRef) ([]SyncedRepo, error) {
	results := make([]SyncedRepo, 0, len(refs))
	for _, ref := range refs {
		synced, err := rc.Reconcile(ref)
		if err != nil {
			return results, fmt.Errorf("failed to sync %s: %w", ref.Name(), err)
		}
		rc.logger.Info("Repository synced",
			"repo", ref.Name(),
			"state", synced.State.String(),
			"transport", synced.Transport.String())
		results = append(results, synced)
	}
	return results, nil
}

// ReconcileBestEffort reconciles a supporting repository whose absence must
// not block the run. Failure is logged and swallowed; the returned bool
// reports whether the checkout is usable.
func (rc *Reconciler) ReconcileBestEffort(ref RemoteRef) (SyncedRepo, bool) {
	synced, err := rc.Reconcile(ref)
	if err != nil {
		rc.logger.Warn("Optional repository unavailable, continuing without it",
			"repo", ref.Name(),
			"error", err)
		return SyncedRepo{}, false
	}
	return synced, true
}

// clearStaleLock removes a leftover index.lock so a checkout interrupted
// mid-operation can still be updated.
func (rc *Reconciler) clearStaleLock(path string) {
	lock := filepath.Join(path, ".git", "index.lock")
	if _, err := os.Stat(lock); err == nil {
		rc.logger.Warn("Removing stale git index lock", "path", lock)
		os.Remove(lock)
	}
}
