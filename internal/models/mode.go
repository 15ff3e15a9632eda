package models

import "fmt"

// SyncMode selects which change categories are eligible for staging.
type SyncMode string

const (
	// ModePreserveDeletions stages additions and modifications and
	// restores locally deleted files from the last commit, so the remote
	// never receives a deletion. This is the default.
	ModePreserveDeletions SyncMode = "preserve-deletions"

	// ModeAllowDeletions stages every change, deletions included.
	ModeAllowDeletions SyncMode = "allow-deletions"

	// ModeNewFilesOnly stages only untracked files; modifications and
	// deletions are reported but left untouched.
	ModeNewFilesOnly SyncMode = "new-files-only"
)

// ParseSyncMode validates a mode string from a flag or config value.
func ParseSyncMode(s string) (SyncMode, error) {
	switch SyncMode(s) {
	case ModePreserveDeletions, ModeAllowDeletions, ModeNewFilesOnly:
		return SyncMode(s), nil
	}
	return "", fmt.Errorf("invalid sync mode: %s (must be: %s, %s, %s)",
		s, ModePreserveDeletions, ModeAllowDeletions, ModeNewFilesOnly)
}

// Outcome is the terminal status of a sync run.
type Outcome string

const (
	OutcomeNoChanges    Outcome = "no-changes"
	OutcomeCommitted    Outcome = "committed"
	OutcomeCommitFailed Outcome = "commit-failed"
	OutcomePushFailed   Outcome = "push-failed"
)
