package cmd

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/pders01/knowsync/internal/testutil"
)

func TestRestoreDeletedCommand(t *testing.T) {
	viper.Reset()

	repo := testutil.NewTempGitRepo(t)
	chdir(t, repo.Path)

	repo.CreateFile("notes.md", "notes\n")
	repo.Commit("Add notes")

	repo.RemoveFile("README.md")
	repo.RemoveFile("notes.md")
	before := repo.CommitCount()

	if err := runRestore(nil, []string{}); err != nil {
		t.Fatalf("restore-deleted failed: %v", err)
	}

	if !repo.FileExists("README.md") || !repo.FileExists("notes.md") {
		t.Error("deleted files were not restored")
	}

	// Restore is an independent action: no commit, no push
	if repo.CommitCount() != before {
		t.Error("restore-deleted must not create a commit")
	}
}

func TestRestoreDeletedCleanTree(t *testing.T) {
	viper.Reset()

	repo := testutil.NewTempGitRepo(t)
	chdir(t, repo.Path)

	if err := runRestore(nil, []string{}); err != nil {
		t.Fatalf("restore-deleted on clean tree failed: %v", err)
	}
}

func TestRestoreDeletedOutsideRepository(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())

	if err := runRestore(nil, []string{}); err == nil {
		t.Error("expected error outside a git repository")
	}
}

func TestRestoreDeletedLeavesOtherChanges(t *testing.T) {
	viper.Reset()

	repo := testutil.NewTempGitRepo(t)
	chdir(t, repo.Path)

	repo.CreateFile("new.md", "new\n")
	repo.RemoveFile("README.md")

	if err := runRestore(nil, []string{}); err != nil {
		t.Fatalf("restore-deleted failed: %v", err)
	}

	if !repo.FileExists("README.md") {
		t.Error("README.md was not restored")
	}
	if !repo.FileExists("new.md") {
		t.Error("untracked file must be left alone")
	}
}
