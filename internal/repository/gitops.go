package repository

import (
	"errors"
	"fmt"
	"strings"

	"adtsetup/internal/logging"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport"
)

// gitRunner abstracts the two git operations the resolver performs, so the
// transport chain can be exercised in tests without network access.
type gitRunner interface {
	Clone(url string, auth transport.AuthMethod, dest string) error
	Update(dest, url string, auth transport.AuthMethod) error
}

// goGitRunner is the production gitRunner backed by go-git.
type goGitRunner struct {
	logger *logging.AppLogger
}

// Clone performs an initial clone of url into dest.
func (g *goGitRunner) Clone(url string, auth transport.AuthMethod, dest string) error {
	if g.logger != nil {
		g.logger.Debug("Cloning repository", "url", redactURL(url), "dest", dest)
	}

	_, err := git.PlainClone(dest, &git.CloneOptions{
		URL:  url,
		Auth: auth,
	})
	if err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}
	return nil
}

// Update refreshes an existing checkout at dest from url.
//
// The recorded origin remote is rewritten only when it points at a
// different repository than url; a URL differing in transport form alone
// is left as recorded, and the attempt's URL is used for the pull itself.
// The pull tries branches in order: main, then master, then the current
// branch's configured upstream. The first branch that pulls cleanly wins.
//
// A dirty working tree is never overwritten: the update is skipped with a
// warning and reported as success so local edits survive.
func (g *goGitRunner) Update(dest, url string, auth transport.AuthMethod) error {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	if err := g.ensureOrigin(repo, url); err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get working tree status: %w", err)
	}
	if !status.IsClean() {
		if g.logger != nil {
			g.logger.Warn("Working tree has uncommitted changes, skipping update", "path", dest)
		}
		return nil
	}

	var pullErrs []string
	for _, branch := range g.branchCandidates(repo) {
		err := worktree.Pull(&git.PullOptions{
			RemoteName: "origin",
			// The attempt's transport URL, without touching the
			// recorded remote.
			RemoteURL:     url,
			ReferenceName: plumbing.NewBranchReferenceName(branch),
			SingleBranch:  true,
			Auth:          auth,
			Force:         true,
		})
		if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
			if g.logger != nil {
				g.logger.Debug("Repository updated", "path", dest, "branch", branch)
			}
			return nil
		}
		pullErrs = append(pullErrs, fmt.Sprintf("%s: %v", branch, err))
	}

	return fmt.Errorf("pull failed on every candidate branch: %s", strings.Join(pullErrs, "; "))
}

// ensureOrigin repoints the origin remote at url only when the recorded
// remote refers to a different repository. A recorded URL that is another
// transport form of the same repository is kept as it is.
func (g *goGitRunner) ensureOrigin(repo *git.Repository, url string) error {
	remote, err := repo.Remote("origin")
	if err == nil {
		cfg := remote.Config()
		if cfg != nil && len(cfg.URLs) > 0 {
			if ref, perr := ParseRemoteRef(url); perr == nil && ref.SameRepo(cfg.URLs[0]) {
				return nil
			}
			if g.logger != nil {
				g.logger.Warn("Declared remote changed, repointing origin",
					"old", redactURL(cfg.URLs[0]), "new", redactURL(url))
			}
		}
		if err := repo.DeleteRemote("origin"); err != nil {
			return fmt.Errorf("failed to replace origin remote: %w", err)
		}
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("failed to configure origin remote: %w", err)
	}
	return nil
}

// branchCandidates returns the ordered list of branches an update should
// try: main, master, then the current branch's configured upstream. A
// branch with no upstream configuration falls back to the branch itself.
func (g *goGitRunner) branchCandidates(repo *git.Repository) []string {
	candidates := []string{"main", "master"}
	seen := map[string]bool{"main": true, "master": true}

	head, err := repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return candidates
	}

	fallback := head.Name().Short()
	if cfg, err := repo.Config(); err == nil {
		if branch, ok := cfg.Branches[fallback]; ok && branch.Merge != "" {
			fallback = branch.Merge.Short()
		}
	}

	if !seen[fallback] {
		candidates = append(candidates, fallback)
	}
	return candidates
}

// redactURL strips embedded credentials from a URL before it reaches logs.
func redactURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
