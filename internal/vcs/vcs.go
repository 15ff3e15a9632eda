// Package vcs abstracts the version-control operations knowsync needs.
// The sync engine only ever talks to the Client interface, so tests can
// substitute a fake without touching a real repository.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/pders01/knowsync/internal/models"
)

// Sentinel errors that can be checked with errors.Is().
var (
	// ErrNotARepository indicates the path is not inside a git working tree.
	ErrNotARepository = errors.New("not a git repository")

	// ErrNothingToCommit indicates the index had no staged changes.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrAlreadyUpToDate indicates the remote already has the local state.
	ErrAlreadyUpToDate = errors.New("already up to date")
)

// Client is the version-control capability injected into the sync engine.
// All calls are synchronous; each returns a typed result or an error that
// is terminal for the run.
type Client interface {
	// Status classifies the working tree into added, modified and deleted
	// paths relative to the last commit.
	Status(ctx context.Context) (models.ChangeSet, error)

	// Staged returns the paths currently staged for the next commit.
	Staged(ctx context.Context) ([]string, error)

	// Add stages the given paths. Staging a locally deleted path stages
	// the deletion.
	Add(ctx context.Context, paths ...string) error

	// Restore undoes local deletions by restoring the given paths from
	// the last committed revision, in both index and working tree.
	Restore(ctx context.Context, paths ...string) error

	// Commit creates a commit from the staged changes and returns its
	// hash. Returns ErrNothingToCommit when the index is clean.
	Commit(ctx context.Context, message string) (string, error)

	// Push updates the remote. An empty branch pushes the current branch.
	// Returns ErrAlreadyUpToDate when there is nothing to push.
	Push(ctx context.Context, remote, branch string) error
}

// wrap adds context to an error while keeping errors.Is checks working.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
