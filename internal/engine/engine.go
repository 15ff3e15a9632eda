// Package engine implements the sync policy: it classifies working-tree
// changes, decides per mode what gets staged, and drives commit and push.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pders01/knowsync/internal/logging"
	"github.com/pders01/knowsync/internal/models"
	"github.com/pders01/knowsync/internal/vcs"
)

// DefaultMessagePrefix starts the generated commit message when the
// caller does not provide one.
const DefaultMessagePrefix = "Update knowledge repository"

// Result is the terminal report of a single sync run.
type Result struct {
	Outcome  models.Outcome
	Decision models.StagingDecision
	Staged   []string
	Commit   string
	Message  string
}

// Engine applies a SyncMode to the current ChangeSet and delegates the
// resulting staging, commit and push to the injected client. One pass per
// run, no retries, no state kept between runs.
type Engine struct {
	client vcs.Client
	log    *slog.Logger
	remote string
	branch string
	now    func() time.Time
}

// Config carries the per-run configuration for an Engine.
type Config struct {
	Remote string
	Branch string

	// Now supplies the timestamp for generated commit messages.
	// Defaults to time.Now.
	Now func() time.Time
}

// New creates an Engine around the given client. A nil logger discards
// all log output.
func New(client vcs.Client, log *slog.Logger, cfg Config) *Engine {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		client: client,
		log:    log,
		remote: cfg.Remote,
		branch: cfg.Branch,
		now:    cfg.Now,
	}
}

// Decide computes the staging decision for a change set under a mode.
// It is deterministic and has no side effects.
func Decide(cs models.ChangeSet, mode models.SyncMode) models.StagingDecision {
	var d models.StagingDecision

	switch mode {
	case models.ModeNewFilesOnly:
		d.Stage = append(d.Stage, cs.Added...)
		d.Skip = append(d.Skip, cs.Modified...)
		d.Skip = append(d.Skip, cs.Deleted...)
	case models.ModeAllowDeletions:
		d.Stage = append(d.Stage, cs.Added...)
		d.Stage = append(d.Stage, cs.Modified...)
		d.Stage = append(d.Stage, cs.Deleted...)
	default: // models.ModePreserveDeletions
		d.Stage = append(d.Stage, cs.Added...)
		d.Stage = append(d.Stage, cs.Modified...)
		d.Restore = append(d.Restore, cs.Deleted...)
	}

	return d
}

// DefaultMessage generates the commit message used when none is given.
func DefaultMessage(now time.Time) string {
	return fmt.Sprintf("%s - %s", DefaultMessagePrefix, now.Format(time.RFC3339))
}

// Sync runs one pass of the policy: classify, apply, commit, push.
// The returned Result is always populated, also on error; the error
// carries the failing stage for the caller's exit code and log line.
func (e *Engine) Sync(ctx context.Context, mode models.SyncMode, message string) (*Result, error) {
	res := &Result{}

	cs, err := e.client.Status(ctx)
	if err != nil {
		return res, fmt.Errorf("status query failed: %w", err)
	}
	e.log.Info("classified working tree",
		"mode", mode,
		"added", len(cs.Added),
		"modified", len(cs.Modified),
		"deleted", len(cs.Deleted))

	res.Decision = Decide(cs, mode)
	for _, path := range res.Decision.Skip {
		e.log.Info("leaving change unstaged", "path", path)
	}

	// Restores must happen before the staged-set check, so a run that
	// only reverts deletions still reports its other changes correctly.
	if len(res.Decision.Restore) > 0 {
		if err := e.client.Restore(ctx, res.Decision.Restore...); err != nil {
			return res, fmt.Errorf("restore failed: %w", err)
		}
		e.log.Info("restored locally deleted files", "count", len(res.Decision.Restore))
	}

	if len(res.Decision.Stage) > 0 {
		if err := e.client.Add(ctx, res.Decision.Stage...); err != nil {
			return res, fmt.Errorf("staging failed: %w", err)
		}
		e.log.Info("staged changes", "count", len(res.Decision.Stage))
	}

	staged, err := e.client.Staged(ctx)
	if err != nil {
		return res, fmt.Errorf("status query failed: %w", err)
	}
	res.Staged = staged

	if len(staged) == 0 {
		res.Outcome = models.OutcomeNoChanges
		e.log.Info("nothing staged, no commit attempted")
		return res, nil
	}

	if message == "" {
		message = DefaultMessage(e.now())
	}
	res.Message = message

	hash, err := e.client.Commit(ctx, message)
	if err != nil {
		if errors.Is(err, vcs.ErrNothingToCommit) {
			res.Outcome = models.OutcomeNoChanges
			e.log.Info("nothing to commit")
			return res, nil
		}
		res.Outcome = models.OutcomeCommitFailed
		e.log.Error("commit failed", "error", err)
		return res, fmt.Errorf("commit failed: %w", err)
	}
	res.Commit = hash
	e.log.Info("created commit", "hash", hash, "message", message)

	if err := e.client.Push(ctx, e.remote, e.branch); err != nil && !errors.Is(err, vcs.ErrAlreadyUpToDate) {
		// The local commit is kept; only the remote is behind.
		res.Outcome = models.OutcomePushFailed
		e.log.Error("push failed, local commit kept", "hash", hash, "error", err)
		return res, fmt.Errorf("push failed: %w", err)
	}
	e.log.Info("pushed to remote", "remote", e.remote)

	res.Outcome = models.OutcomeCommitted
	return res, nil
}

// RestoreDeleted restores every deleted tracked path from the last commit
// without committing or pushing anything. It returns the restored paths.
func (e *Engine) RestoreDeleted(ctx context.Context) ([]string, error) {
	cs, err := e.client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("status query failed: %w", err)
	}

	if len(cs.Deleted) == 0 {
		e.log.Info("no deleted files to restore")
		return nil, nil
	}

	if err := e.client.Restore(ctx, cs.Deleted...); err != nil {
		return nil, fmt.Errorf("restore failed: %w", err)
	}
	e.log.Info("restored locally deleted files", "count", len(cs.Deleted))

	return cs.Deleted, nil
}
