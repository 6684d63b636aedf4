package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"adtsetup/internal/logging"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

func newTestGitRunner() *goGitRunner {
	logger, _ := logging.NewTestLogger()
	return &goGitRunner{logger: logger}
}

func commitFile(t *testing.T, repo *git.Repository, name string) {
	t.Helper()
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get working tree: %v", err)
	}
	path := filepath.Join(worktree.Filesystem.Root(), name)
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatalf("failed to stage %s: %v", name, err)
	}
	_, err = worktree.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

func originURL(t *testing.T, repo *git.Repository) string {
	t.Helper()
	remote, err := repo.Remote("origin")
	if err != nil {
		t.Fatalf("origin remote missing: %v", err)
	}
	return remote.Config().URLs[0]
}

func TestEnsureOriginKeepsTransportVariant(t *testing.T) {
	repo, err := git.PlainInit(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	recorded := "git@github.com:acme/adt-content.git"
	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{recorded}}); err != nil {
		t.Fatal(err)
	}

	runner := newTestGitRunner()
	if err := runner.ensureOrigin(repo, "https://github.com/acme/adt-content.git"); err != nil {
		t.Fatalf("ensureOrigin() failed: %v", err)
	}

	// Same repository over another transport: the recorded URL survives.
	if got := originURL(t, repo); got != recorded {
		t.Errorf("origin = %q, want recorded %q", got, recorded)
	}
}

func TestEnsureOriginRepointsChangedRemote(t *testing.T) {
	repo, err := git.PlainInit(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/acme/retired.git"},
	}); err != nil {
		t.Fatal(err)
	}

	runner := newTestGitRunner()
	declared := "https://github.com/acme/adt-content.git"
	if err := runner.ensureOrigin(repo, declared); err != nil {
		t.Fatalf("ensureOrigin() failed: %v", err)
	}

	if got := originURL(t, repo); got != declared {
		t.Errorf("origin = %q, want repointed %q", got, declared)
	}
}

func TestEnsureOriginCreatesMissingRemote(t *testing.T) {
	repo, err := git.PlainInit(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}

	runner := newTestGitRunner()
	declared := "https://github.com/acme/adt-content.git"
	if err := runner.ensureOrigin(repo, declared); err != nil {
		t.Fatalf("ensureOrigin() failed: %v", err)
	}

	if got := originURL(t, repo); got != declared {
		t.Errorf("origin = %q, want %q", got, declared)
	}
}

func TestBranchCandidates(t *testing.T) {
	runner := newTestGitRunner()

	t.Run("unborn head yields defaults only", func(t *testing.T) {
		repo, err := git.PlainInit(t.TempDir(), false)
		if err != nil {
			t.Fatal(err)
		}
		got := runner.branchCandidates(repo)
		if want := []string{"main", "master"}; !reflect.DeepEqual(got, want) {
			t.Errorf("candidates = %v, want %v", got, want)
		}
	})

	t.Run("default branch is not repeated", func(t *testing.T) {
		repo, err := git.PlainInit(t.TempDir(), false)
		if err != nil {
			t.Fatal(err)
		}
		commitFile(t, repo, "readme.md")

		got := runner.branchCandidates(repo)
		if want := []string{"main", "master"}; !reflect.DeepEqual(got, want) {
			t.Errorf("candidates = %v, want %v", got, want)
		}
	})

	t.Run("branch without upstream falls back to itself", func(t *testing.T) {
		repo, err := git.PlainInit(t.TempDir(), false)
		if err != nil {
			t.Fatal(err)
		}
		commitFile(t, repo, "readme.md")

		worktree, err := repo.Worktree()
		if err != nil {
			t.Fatal(err)
		}
		err = worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("work"),
			Create: true,
		})
		if err != nil {
			t.Fatal(err)
		}

		got := runner.branchCandidates(repo)
		if want := []string{"main", "master", "work"}; !reflect.DeepEqual(got, want) {
			t.Errorf("candidates = %v, want %v", got, want)
		}
	})

	t.Run("configured upstream wins over the branch name", func(t *testing.T) {
		repo, err := git.PlainInit(t.TempDir(), false)
		if err != nil {
			t.Fatal(err)
		}
		commitFile(t, repo, "readme.md")

		worktree, err := repo.Worktree()
		if err != nil {
			t.Fatal(err)
		}
		err = worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("work"),
			Create: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		err = repo.CreateBranch(&config.Branch{
			Name:   "work",
			Remote: "origin",
			Merge:  plumbing.NewBranchReferenceName("develop"),
		})
		if err != nil {
			t.Fatal(err)
		}

		got := runner.branchCandidates(repo)
		if want := []string{"main", "master", "develop"}; !reflect.DeepEqual(got, want) {
			t.Errorf("candidates = %v, want %v", got, want)
		}
	})
}
